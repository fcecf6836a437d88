package tray

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
)

type fakeCheckbox struct {
	checked bool
}

func (c *fakeCheckbox) Check() { c.checked = true }
func (c *fakeCheckbox) Uncheck() { c.checked = false }

type fakeSelector struct {
	mu           sync.Mutex
	override     string
	subs         []gamepad.OverrideSubscriber
	unsubscribed int
}

func (s *fakeSelector) SetProfileOverride(name string) error {
	s.mu.Lock()
	s.override = name
	subs := append([]gamepad.OverrideSubscriber(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(name)
	}
	return nil
}

func (s *fakeSelector) SubscribeOverride(fn gamepad.OverrideSubscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = nil
		s.unsubscribed++
	}
}

func (s *fakeSelector) Diagnostics() gamepad.Diagnostics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gamepad.Diagnostics{Override: s.override}
}

func (s *fakeSelector) Profiles() []string { return []string{"Xbox", "DualSense"} }

func newTestTray(sel *fakeSelector) (*Tray, map[string]*fakeCheckbox) {
	t := New(func() {}, sel, "http://localhost:8080", zap.NewNop())
	items := map[string]*fakeCheckbox{"": {}, "Xbox": {}, "DualSense": {}}
	for name, item := range items {
		t.profileItems[name] = item
	}
	return t, items
}

func checked(items map[string]*fakeCheckbox) []string {
	var out []string
	for name, item := range items {
		if item.checked {
			out = append(out, name)
		}
	}
	return out
}

func TestTrayFollowsOverridesFromElsewhere(t *testing.T) {
	sel := &fakeSelector{override: "DualSense"}
	tr, items := newTestTray(sel)

	tr.followOverride()
	assert.Equal(t, []string{"DualSense"}, checked(items), "starts on the active override")

	// A change made through the web UI reaches the tray.
	require.NoError(t, sel.SetProfileOverride("Xbox"))
	assert.Equal(t, []string{"Xbox"}, checked(items))

	require.NoError(t, sel.SetProfileOverride(""))
	assert.Equal(t, []string{""}, checked(items))

	require.NoError(t, sel.SetProfileOverride("Added Later"))
	assert.Empty(t, checked(items))
}

func TestTrayExitUnsubscribes(t *testing.T) {
	sel := &fakeSelector{}
	tr, items := newTestTray(sel)
	tr.followOverride()

	tr.onExit()
	tr.onExit()
	assert.Equal(t, 1, sel.unsubscribed)

	require.NoError(t, sel.SetProfileOverride("Xbox"))
	assert.Equal(t, []string{""}, checked(items))

	// Late deliveries after exit leave the menu alone.
	tr.checkProfile("DualSense")
	assert.Equal(t, []string{""}, checked(items))
}
