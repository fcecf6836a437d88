package hub

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
)

// ProfileSelector forces a controller profile by name; "" restores
// auto-detection.
type ProfileSelector interface {
	SetProfileOverride(name string) error
	Diagnostics() gamepad.Diagnostics
}

// Client represents a connected WebSocket client.
type Client struct {
	ID   uuid.UUID
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPumpWithHandler reads messages from the WebSocket and handles client commands.
func (c *Client) ReadPumpWithHandler(selector ProfileSelector) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	logger := c.hub.logger.With(zap.Stringer("client", c.ID))

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			logger.Warn("Error parsing client message", zap.Error(err))
			continue
		}

		switch clientMsg.Type {
		case "select_profile":
			if err := selector.SetProfileOverride(clientMsg.Profile); err != nil {
				logger.Warn("Profile selection rejected", zap.String("profile", clientMsg.Profile), zap.Error(err))
				c.reply(NewErrorMessage(err.Error()))
				continue
			}
			// Echo the resolved name, not the one the client typed.
			name := selector.Diagnostics().Override
			c.reply(NewProfileSelectedMessage(name))
			logger.Info("Client selected profile", zap.String("profile", name))
		}
	}
}

func (c *Client) reply(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.hub.Send(c, data)
}
