package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
	"github.com/soar/inputview/internal/hub"
)

type fakeController struct {
	mu       sync.Mutex
	override string
	state    gamepad.GamepadState
}

func (c *fakeController) SetProfileOverride(name string) error {
	switch {
	case name == "":
	case strings.EqualFold(name, "Xbox"):
		name = "Xbox"
	default:
		return fmt.Errorf("%w: %q", gamepad.ErrUnknownProfile, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.override = name
	return nil
}

func (c *fakeController) State() gamepad.GamepadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *fakeController) Diagnostics() gamepad.Diagnostics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gamepad.Diagnostics{
		Connected: c.state.Connected,
		ID:        c.state.ID,
		Profile:   c.state.Profile,
		Override:  c.override,
	}
}

func (c *fakeController) Profiles() []string {
	return []string{"Xbox", gamepad.GenericProfileName}
}

func (c *fakeController) currentOverride() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.override
}

var testFrontend = fstest.MapFS{
	"index.html": {Data: []byte("<!doctype html>\n<html>\n  <body>\n    <p>  pad  </p>\n  </body>\n</html>\n")},
	"app.js":     {Data: []byte("function  hello ( )  {  return 1 ;  }\n")},
}

type testServer struct {
	*httptest.Server
	ctrl    *fakeController
	stopHub context.CancelFunc
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	// Client goroutines outlive the test body, so their logs go nowhere.
	logger := zap.NewNop()

	ctrl := &fakeController{state: gamepad.GamepadState{Connected: true, ID: "Xbox Wireless Controller", Profile: "Xbox"}}
	h := hub.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	b := hub.NewBroadcaster(h, nil)

	srv, err := New(h, b, ctrl, testFrontend, ":0", logger)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, ctrl: ctrl, stopHub: cancel}
}

func TestHandleStatusAndState(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var d gamepad.Diagnostics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	assert.True(t, d.Connected)
	assert.Equal(t, "Xbox", d.Profile)

	resp2, err := http.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer resp2.Body.Close()

	var s gamepad.GamepadState
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&s))
	assert.Equal(t, "Xbox Wireless Controller", s.ID)
}

func TestHandleProfiles(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/profiles")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body profilesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"Xbox", "Generic"}, body.Profiles)
	assert.Equal(t, "Xbox", body.Active)
}

func TestHandleSelectProfile(t *testing.T) {
	ts := newTestServer(t)
	ctrl := ts.ctrl

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"known", `{"profile":"Xbox"}`, http.StatusOK},
		{"unknown", `{"profile":"Atari"}`, http.StatusNotFound},
		{"malformed", `{"profile":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/profile", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
	assert.Equal(t, "Xbox", ctrl.currentOverride())
}

func TestStaticFilesAreMinified(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "pad")
	assert.Less(t, len(body), len(testFrontend["index.html"].Data))

	resp2, err := http.Get(ts.URL + "/app.js")
	require.NoError(t, err)
	defer resp2.Body.Close()
	js, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	assert.Less(t, len(js), len(testFrontend["app.js"].Data))

	resp3, err := http.Get(ts.URL + "/missing.css")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

func TestWebSocketSelectProfile(t *testing.T) {
	ts := newTestServer(t)
	ctrl := ts.ctrl

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readMsg := func() hub.WSMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg hub.WSMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	assert.Equal(t, "full", readMsg().Type)

	require.NoError(t, conn.WriteJSON(hub.ClientMessage{Type: "select_profile", Profile: "xbox"}))
	msg := readMsg()
	assert.Equal(t, "profile_selected", msg.Type)
	assert.Equal(t, "Xbox", msg.Profile)
	assert.Equal(t, "Xbox", ctrl.currentOverride())

	require.NoError(t, conn.WriteJSON(hub.ClientMessage{Type: "select_profile", Profile: "Atari"}))
	msg = readMsg()
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "unknown profile")
}

func TestWebSocketSelectProfileAfterHubStopped(t *testing.T) {
	ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg hub.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "full", msg.Type)

	ts.stopHub()

	// The reply races the hub closing the connection; either way the
	// server must not crash and the socket must end.
	_ = conn.WriteJSON(hub.ClientMessage{Type: "select_profile", Profile: "Xbox"})
	for {
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
	}

	// A client arriving after shutdown is closed straight away.
	late, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer late.Close()
	require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = late.ReadMessage()
	assert.Error(t, err)
}

func TestShutdownBeforeListen(t *testing.T) {
	srv, err := New(hub.NewHub(zap.NewNop()), nil, &fakeController{}, testFrontend, "127.0.0.1:0", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.ErrorIs(t, srv.ListenAndServe(), http.ErrServerClosed)
}

type unreadableFS struct{}

func (unreadableFS) Open(string) (fs.File, error) { return nil, fs.ErrPermission }

func TestNewRejectsUnreadableFrontend(t *testing.T) {
	_, err := New(hub.NewHub(zap.NewNop()), nil, &fakeController{}, unreadableFS{}, ":0", zap.NewNop())
	assert.ErrorIs(t, err, fs.ErrPermission)
}
