package gamepad

import "time"

// RawButton is one button record as reported by the host.
type RawButton struct {
	Pressed bool
	Value   float64
}

// RawSnapshot is the current state of one attached device, exactly as the
// host reports it.
type RawSnapshot struct {
	Index     int
	ID        string
	Axes      []float64
	Buttons   []RawButton
	Timestamp time.Time
}

// Host is the platform game-controller facility. Connection changes are
// pushed through the Listen callbacks when Pump runs; values are read with
// Snapshot.
type Host interface {
	Open() error
	Close()
	// Listen registers connect/disconnect callbacks, including a connect for
	// every device already attached, and returns a func removing them.
	Listen(onConnect, onDisconnect func(index int)) (remove func())
	// Pump dispatches pending host notifications. It must not block.
	Pump()
	Snapshot(index int) (RawSnapshot, bool)
}
