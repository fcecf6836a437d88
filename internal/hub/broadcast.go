package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
)

const (
	// Connected clients get a full snapshot at least this often, so a
	// dropped delta heals quickly.
	fullSyncInterval = 5 * time.Second
	// Every deltasPerFull-th change goes out as a full snapshot.
	deltasPerFull = 100
)

// Broadcaster turns the manager's snapshot stream into full/delta messages.
type Broadcaster struct {
	hub     *Hub
	changes <-chan gamepad.GamepadState
	logger  *zap.Logger

	mu     sync.Mutex
	last   gamepad.GamepadState
	seq    int64
	deltas int
}

func NewBroadcaster(h *Hub, changes <-chan gamepad.GamepadState) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		changes: changes,
		logger:  h.logger.Named("broadcast"),
	}
}

// Run publishes changes until ctx is done or the changes channel closes.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case state, ok := <-b.changes:
			if !ok {
				return
			}
			if msg := b.apply(state); msg != nil {
				b.publish(msg)
			}

		case <-ticker.C:
			if msg := b.resync(); msg != nil {
				b.publish(msg)
			}
		}
	}
}

// apply records state and returns the message describing the change, or nil
// when nothing a client can see has changed.
func (b *Broadcaster) apply(state gamepad.GamepadState) *WSMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	delta := gamepad.ComputeDelta(b.last, state)
	b.last = state
	if delta.IsEmpty() {
		return nil
	}

	b.seq++
	b.deltas++
	if b.deltas >= deltasPerFull {
		b.deltas = 0
		return NewFullMessage(b.seq, &state)
	}
	return NewDeltaMessage(b.seq, delta)
}

func (b *Broadcaster) resync() *WSMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.last.Connected {
		return nil
	}
	b.seq++
	state := b.last
	return NewFullMessage(b.seq, &state)
}

// InitialState returns the encoded full snapshot for a newly connected client.
func (b *Broadcaster) InitialState() ([]byte, error) {
	b.mu.Lock()
	b.seq++
	state := b.last
	msg := NewFullMessage(b.seq, &state)
	b.mu.Unlock()
	return json.Marshal(msg)
}

// SendInitialState queues the current full snapshot on a registered client.
// It is a no-op once the client has left or the hub has stopped.
func (b *Broadcaster) SendInitialState(c *Client) {
	data, err := b.InitialState()
	if err != nil {
		b.logger.Error("Encode initial state", zap.Error(err))
		return
	}
	b.hub.Send(c, data)
}

func (b *Broadcaster) publish(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.Error("Encode message", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	b.hub.Broadcast(data)
}
