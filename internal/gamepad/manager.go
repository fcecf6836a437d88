package gamepad

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultPollInterval = 16 * time.Millisecond // ~60Hz

var ErrAlreadyRunning = errors.New("manager already running")

// Subscriber receives every new canonical snapshot. Calls never overlap and
// arrive in the order the snapshots were produced. A subscriber must return
// quickly and must not call back into the Manager's mutating methods.
type Subscriber func(GamepadState)

// OverrideSubscriber receives the resolved override name ("" for automatic
// detection) whenever it changes.
type OverrideSubscriber func(name string)

// ChannelSubscriber forwards snapshots to ch, dropping them when ch is full
// so the polling loop never blocks.
func ChannelSubscriber(ch chan<- GamepadState) Subscriber {
	return func(s GamepadState) {
		select {
		case ch <- s:
		default:
		}
	}
}

type subscription struct {
	id       int
	fn       Subscriber
	override OverrideSubscriber
}

// Diagnostics describes what the manager is tracking and why a profile was
// chosen.
type Diagnostics struct {
	Connected bool       `json:"connected"`
	Index     int        `json:"index"`
	ID        string     `json:"id"`
	Profile   string     `json:"profile"`
	Detection *Detection `json:"detection,omitempty"`
	Override  string     `json:"override,omitempty"`
	Attached  []int      `json:"attached,omitempty"`
}

// Manager owns the connect/disconnect lifecycle of one tracked device,
// polls it and fans canonical snapshots out to subscribers.
type Manager struct {
	host   Host
	db     *Database
	mapper Mapper
	logger *zap.Logger

	mu        sync.RWMutex
	state     GamepadState
	tracking  bool
	index     int
	detection Detection
	lastRaw   RawSnapshot
	override  string
	attached  []int

	// deliverMu is held across every map-store-notify pass so subscribers
	// see one snapshot at a time, in order.
	deliverMu sync.Mutex

	subMu  sync.Mutex
	subs   []subscription
	nextID int

	runMu  sync.Mutex
	cancel context.CancelFunc
}

func NewManager(host Host, db *Database, mapper Mapper, logger *zap.Logger) *Manager {
	if db == nil {
		db = DefaultDatabase()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		host:   host,
		db:     db,
		mapper: mapper,
		logger: logger,
	}
}

// Subscribe registers fn and returns a func removing it.
func (m *Manager) Subscribe(fn Subscriber) (unsubscribe func()) {
	return m.add(subscription{fn: fn})
}

// SubscribeOverride registers fn for override changes and returns a func
// removing it.
func (m *Manager) SubscribeOverride(fn OverrideSubscriber) (unsubscribe func()) {
	return m.add(subscription{override: fn})
}

func (m *Manager) add(sub subscription) func() {
	m.subMu.Lock()
	m.nextID++
	id := m.nextID
	sub.id = id
	m.subs = append(m.subs, sub)
	m.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// State returns the current snapshot.
func (m *Manager) State() GamepadState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Connected reports whether a device is tracked.
func (m *Manager) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tracking
}

// ProfileName returns the active profile name, or "" when disconnected.
func (m *Manager) ProfileName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.tracking {
		return ""
	}
	return m.detection.Profile.Name
}

// Profiles returns every profile name in match order.
func (m *Manager) Profiles() []string {
	return m.db.Names()
}

func (m *Manager) Diagnostics() Diagnostics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d := Diagnostics{
		Connected: m.tracking,
		Index:     m.index,
		ID:        m.state.ID,
		Override:  m.override,
		Attached:  append([]int(nil), m.attached...),
	}
	if m.tracking {
		det := m.detection
		d.Profile = det.Profile.Name
		d.Detection = &det
	}
	return d
}

// SetProfileOverride forces a profile by name instead of auto-detection.
// An empty name restores detection. The change applies immediately to a
// connected device.
func (m *Manager) SetProfileOverride(name string) error {
	if name != "" {
		p, err := m.db.Lookup(name)
		if err != nil {
			return err
		}
		name = p.Name
	}

	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	changed := m.override != name
	m.override = name
	tracking := m.tracking
	var s GamepadState
	if tracking {
		m.detection = m.resolve(m.lastRaw.ID)
		m.state = m.mapper.Map(m.lastRaw, m.detection.Profile)
		s = m.state
	}
	m.mu.Unlock()

	if tracking {
		m.logger.Info("Profile override applied",
			zap.String("override", name),
			zap.String("profile", s.Profile))
		m.notify(s)
	} else {
		m.logger.Info("Profile override set", zap.String("profile", name))
	}
	if changed {
		m.notifyOverride(name)
	}
	return nil
}

// HandleConnect starts tracking the device at index unless one is already
// tracked. Repeated notifications for the same index are ignored.
func (m *Manager) HandleConnect(index int) {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	if m.tracking {
		if index != m.index && !containsInt(m.attached, index) {
			m.attached = append(m.attached, index)
			m.logger.Info("Controller attached (not tracked)", zap.Int("index", index))
		}
		m.mu.Unlock()
		return
	}

	raw, ok := m.host.Snapshot(index)
	if !ok {
		m.mu.Unlock()
		m.logger.Warn("Connected controller has no snapshot", zap.Int("index", index))
		return
	}
	m.track(index, raw)
	s := m.state
	m.mu.Unlock()

	m.notify(s)
}

// HandleDisconnect resets to the disconnected snapshot when index is the
// tracked device, then promotes the next attached device if any.
func (m *Manager) HandleDisconnect(index int) {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	m.attached = removeInt(m.attached, index)
	if !m.tracking || index != m.index {
		m.mu.Unlock()
		return
	}

	m.logger.Info("Controller disconnected",
		zap.Int("index", index),
		zap.String("id", m.state.ID))
	m.untrack()
	states := []GamepadState{m.state}

	for len(m.attached) > 0 {
		next := m.attached[0]
		m.attached = m.attached[1:]
		raw, ok := m.host.Snapshot(next)
		if !ok {
			continue
		}
		m.track(next, raw)
		states = append(states, m.state)
		break
	}
	m.mu.Unlock()

	for _, s := range states {
		m.notify(s)
	}
}

// Poll reads, maps and publishes the tracked device once. It is a no-op
// while disconnected.
func (m *Manager) Poll() {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	if !m.tracking {
		m.mu.Unlock()
		return
	}
	raw, ok := m.host.Snapshot(m.index)
	if !ok {
		m.mu.Unlock()
		return
	}
	m.lastRaw = raw
	m.state = m.mapper.Map(raw, m.detection.Profile)
	s := m.state
	m.mu.Unlock()

	m.notify(s)
}

// Run opens the host and polls it every interval until ctx is done or
// Stop is called. The host is driven from a locked OS thread.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.runMu.Lock()
	if m.cancel != nil {
		m.runMu.Unlock()
		return ErrAlreadyRunning
	}
	m.cancel = cancel
	m.runMu.Unlock()
	defer func() {
		m.runMu.Lock()
		m.cancel = nil
		m.runMu.Unlock()
	}()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := m.host.Open(); err != nil {
		return fmt.Errorf("open host: %w", err)
	}
	defer m.host.Close()

	remove := m.host.Listen(m.HandleConnect, m.HandleDisconnect)
	defer remove()

	m.logger.Info("Polling started", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.release()
			m.logger.Info("Polling stopped")
			return nil
		case <-ticker.C:
			m.host.Pump()
			m.Poll()
		}
	}
}

// Stop ends a running Run loop. It is safe to call at any time.
func (m *Manager) Stop() {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Manager) release() {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	wasTracking := m.tracking
	m.untrack()
	m.attached = nil
	s := m.state
	m.mu.Unlock()

	if wasTracking {
		m.notify(s)
	}
}

// track must be called with mu held.
func (m *Manager) track(index int, raw RawSnapshot) {
	det := m.resolve(raw.ID)
	m.tracking = true
	m.index = index
	m.detection = det
	m.lastRaw = raw
	m.state = m.mapper.Map(raw, det.Profile)

	fields := []zap.Field{
		zap.Int("index", index),
		zap.String("id", raw.ID),
		zap.String("profile", det.Profile.Name),
		zap.Stringer("reason", det.Reason),
		zap.String("detail", det.Detail),
		zap.Int("axes", len(raw.Axes)),
		zap.Int("buttons", len(raw.Buttons)),
	}
	if det.Fallback() {
		m.logger.Warn("Controller connected without a specific profile", fields...)
	} else {
		m.logger.Info("Controller connected", fields...)
	}
}

// untrack must be called with mu held.
func (m *Manager) untrack() {
	m.tracking = false
	m.index = 0
	m.detection = Detection{}
	m.lastRaw = RawSnapshot{}
	m.state = DisconnectedState()
}

func (m *Manager) resolve(id string) Detection {
	if m.override != "" {
		if p, err := m.db.Lookup(m.override); err == nil {
			det := Detection{Profile: p, Reason: MatchOverride, Detail: p.Name}
			if ids, ok := ParseDeviceIDs(id); ok {
				det.IDs = &ids
			}
			return det
		}
	}
	return m.db.Detect(id)
}

// notify and notifyOverride must be called with deliverMu held.
func (m *Manager) notify(s GamepadState) {
	for _, sub := range m.snapshot() {
		if sub.fn != nil {
			m.deliver(sub, func() { sub.fn(s) })
		}
	}
}

func (m *Manager) notifyOverride(name string) {
	for _, sub := range m.snapshot() {
		if sub.override != nil {
			m.deliver(sub, func() { sub.override(name) })
		}
	}
}

func (m *Manager) snapshot() []subscription {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	return append([]subscription(nil), m.subs...)
}

func (m *Manager) deliver(sub subscription, call func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Subscriber panicked",
				zap.Int("subscriber", sub.id),
				zap.Any("panic", r))
		}
	}()
	call()
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func removeInt(list []int, v int) []int {
	out := list[:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
