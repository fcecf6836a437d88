package gamepad

import "math"

const (
	DefaultStickDeadzone   = 0.1
	DefaultTriggerDeadzone = 0.05

	triggerPressPoint = 0.5
	dpadAxisThreshold = 0.5
)

// Mapper turns raw snapshots into canonical state. It holds no state
// between calls.
type Mapper struct {
	StickDeadzone   float64
	TriggerDeadzone float64
}

func DefaultMapper() Mapper {
	return Mapper{
		StickDeadzone:   DefaultStickDeadzone,
		TriggerDeadzone: DefaultTriggerDeadzone,
	}
}

// NormalizeRange converts a raw axis value of the given kind to the
// canonical range for that kind.
func NormalizeRange(v float64, kind RangeKind) float64 {
	if kind == NegativeOneReleased {
		return (v + 1) / 2
	}
	return v
}

// ApplyDeadzone zeroes values inside the deadzone and rescales the rest so
// the deadzone edge maps to 0 and ±1 stays ±1.
func ApplyDeadzone(v, deadzone float64) float64 {
	a := math.Abs(v)
	if a < deadzone || a == 0 {
		return 0
	}
	scaled := (a - deadzone) / (1 - deadzone)
	if scaled > 1 {
		scaled = 1
	}
	return math.Copysign(scaled, v)
}

// RadialDeadzone applies the deadzone to the stick magnitude, preserving
// direction.
func RadialDeadzone(x, y, deadzone float64) (float64, float64) {
	mag := math.Hypot(x, y)
	if mag < deadzone || mag == 0 {
		return 0, 0
	}
	scaled := (mag - deadzone) / (1 - deadzone)
	if scaled > 1 {
		scaled = 1
	}
	return clamp(x/mag*scaled, -1, 1), clamp(y/mag*scaled, -1, 1)
}

// Map produces the canonical state for one raw snapshot.
func (m Mapper) Map(raw RawSnapshot, p *Profile) GamepadState {
	state := GamepadState{
		Connected: true,
		ID:        raw.ID,
		Profile:   p.Name,
		Timestamp: raw.Timestamp,
	}

	state.Sticks.Left = m.readStick(raw, p.Axes.LeftX, p.Axes.LeftY)
	state.Sticks.Right = m.readStick(raw, p.Axes.RightX, p.Axes.RightY)
	state.Triggers.LT = m.readTrigger(raw, p.Axes.LeftTrigger, p.Buttons, ButtonLT)
	state.Triggers.RT = m.readTrigger(raw, p.Axes.RightTrigger, p.Buttons, ButtonRT)

	for b, bm := range p.Buttons {
		state.Buttons[b] = readButton(raw, bm)
	}

	if !p.Quirks.TriggersAreButtons {
		state.Buttons[ButtonLT] = state.Triggers.LT > triggerPressPoint
		state.Buttons[ButtonRT] = state.Triggers.RT > triggerPressPoint
	}

	if d := p.Quirks.DpadAxes; d != nil {
		x, _ := rawAxis(raw, d.X)
		y, _ := rawAxis(raw, d.Y)
		state.Buttons[ButtonDpadUp] = y < -dpadAxisThreshold
		state.Buttons[ButtonDpadDown] = y > dpadAxisThreshold
		state.Buttons[ButtonDpadLeft] = x < -dpadAxisThreshold
		state.Buttons[ButtonDpadRight] = x > dpadAxisThreshold
	}

	if p.Quirks.SwapFaceButtons {
		b := &state.Buttons
		b[ButtonA], b[ButtonB] = b[ButtonB], b[ButtonA]
		b[ButtonX], b[ButtonY] = b[ButtonY], b[ButtonX]
	}

	return state
}

func (m Mapper) readStick(raw RawSnapshot, xm, ym *AxisMapping) Vector {
	x, _ := readAxis(raw, xm)
	y, _ := readAxis(raw, ym)

	dz := m.StickDeadzone
	if xm != nil && xm.Deadzone > 0 {
		dz = xm.Deadzone
	} else if ym != nil && ym.Deadzone > 0 {
		dz = ym.Deadzone
	}

	x, y = RadialDeadzone(clamp(x, -1, 1), clamp(y, -1, 1), dz)
	return Vector{X: x, Y: y}
}

func (m Mapper) readTrigger(raw RawSnapshot, am *AxisMapping, buttons map[Button]ButtonMapping, b Button) float64 {
	var fromAxis, fromButton float64

	if v, ok := readAxis(raw, am); ok {
		dz := m.TriggerDeadzone
		if am.Deadzone > 0 {
			dz = am.Deadzone
		}
		fromAxis = ApplyDeadzone(clamp(v, 0, 1), dz)
	}

	if bm, ok := buttons[b]; ok {
		if rb, ok := rawButton(raw, bm.Index); ok {
			fromButton = buttonValue(rb)
		}
	}

	return clamp(math.Max(fromAxis, fromButton), 0, 1)
}

// readAxis returns the normalized value of a mapped axis, or false when the
// axis is unmapped or the device does not report it.
func readAxis(raw RawSnapshot, am *AxisMapping) (float64, bool) {
	if am == nil {
		return 0, false
	}
	v, ok := rawAxis(raw, am.Index)
	if !ok {
		return 0, false
	}
	if am.Invert {
		v = -v
	}
	return NormalizeRange(v, am.Range), true
}

func readButton(raw RawSnapshot, bm ButtonMapping) bool {
	rb, ok := rawButton(raw, bm.Index)
	if !ok {
		return false
	}
	if bm.Threshold > 0 {
		return buttonValue(rb) >= bm.Threshold
	}
	return rb.Pressed
}

// buttonValue prefers the analog value and falls back to the pressed flag
// for hosts that leave the value at zero.
func buttonValue(rb RawButton) float64 {
	v := rb.Value
	if math.IsNaN(v) {
		v = 0
	}
	if v == 0 && rb.Pressed {
		v = 1
	}
	return clamp(v, 0, 1)
}

func rawAxis(raw RawSnapshot, index int) (float64, bool) {
	if index < 0 || index >= len(raw.Axes) {
		return 0, false
	}
	v := raw.Axes[index]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func rawButton(raw RawSnapshot, index int) (RawButton, bool) {
	if index < 0 || index >= len(raw.Buttons) {
		return RawButton{}, false
	}
	return raw.Buttons[index], true
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
