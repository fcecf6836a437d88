package gamepad

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SticksState struct {
	Left  Vector `json:"left"`
	Right Vector `json:"right"`
}

type TriggersState struct {
	LT float64 `json:"lt"`
	RT float64 `json:"rt"`
}

// ButtonSet holds one pressed flag per canonical button. Being a fixed
// array, every button is always present.
type ButtonSet [ButtonCount]bool

func (s ButtonSet) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, ButtonCount)
	for b, pressed := range s {
		m[Button(b).String()] = pressed
	}
	return json.Marshal(m)
}

func (s *ButtonSet) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = ButtonSet{}
	for name, pressed := range m {
		b, err := ParseButton(name)
		if err != nil {
			return fmt.Errorf("button set: %w", err)
		}
		s[b] = pressed
	}
	return nil
}

// Pressed returns the names of every pressed button, in enum order.
func (s ButtonSet) Pressed() []string {
	var out []string
	for b, pressed := range s {
		if pressed {
			out = append(out, Button(b).String())
		}
	}
	return out
}

// GamepadState is the canonical snapshot consumed by the rest of the
// application. It is replaced every tick, never mutated in place.
type GamepadState struct {
	Connected bool          `json:"connected"`
	ID        string        `json:"id"`
	Profile   string        `json:"profile"`
	Sticks    SticksState   `json:"sticks"`
	Triggers  TriggersState `json:"triggers"`
	Buttons   ButtonSet     `json:"buttons"`
	Timestamp time.Time     `json:"timestamp"`
}

// DisconnectedState returns the all-zero snapshot reported when no device
// is tracked.
func DisconnectedState() GamepadState {
	return GamepadState{}
}

type DeltaChanges struct {
	Connected *bool          `json:"connected,omitempty"`
	ID        *string        `json:"id,omitempty"`
	Profile   *string        `json:"profile,omitempty"`
	Buttons   *ButtonSet     `json:"buttons,omitempty"`
	Sticks    *SticksState   `json:"sticks,omitempty"`
	Triggers  *TriggersState `json:"triggers,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Connected == nil &&
		d.ID == nil &&
		d.Profile == nil &&
		d.Buttons == nil &&
		d.Sticks == nil &&
		d.Triggers == nil
}

const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

func ComputeDelta(old, new_ GamepadState) *DeltaChanges {
	d := &DeltaChanges{}

	if old.Connected != new_.Connected {
		d.Connected = &new_.Connected
	}
	if old.ID != new_.ID {
		d.ID = &new_.ID
	}
	if old.Profile != new_.Profile {
		d.Profile = &new_.Profile
	}
	if old.Buttons != new_.Buttons {
		d.Buttons = &new_.Buttons
	}

	if !floatEqual(old.Sticks.Left.X, new_.Sticks.Left.X) ||
		!floatEqual(old.Sticks.Left.Y, new_.Sticks.Left.Y) ||
		!floatEqual(old.Sticks.Right.X, new_.Sticks.Right.X) ||
		!floatEqual(old.Sticks.Right.Y, new_.Sticks.Right.Y) {
		d.Sticks = &new_.Sticks
	}

	if !floatEqual(old.Triggers.LT, new_.Triggers.LT) ||
		!floatEqual(old.Triggers.RT, new_.Triggers.RT) {
		d.Triggers = &new_.Triggers
	}

	return d
}
