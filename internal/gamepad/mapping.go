package gamepad

import (
	"fmt"
	"strings"
)

// RangeKind is the numeric convention a raw axis uses.
type RangeKind int

const (
	// MinusOneToOne is already centered at 0.
	MinusOneToOne RangeKind = iota
	// ZeroToOne is already 0..1.
	ZeroToOne
	// NegativeOneReleased rests at -1 and reaches +1 fully pressed.
	NegativeOneReleased
)

func (k RangeKind) String() string {
	switch k {
	case MinusOneToOne:
		return "minusOneToOne"
	case ZeroToOne:
		return "zeroToOne"
	case NegativeOneReleased:
		return "negativeOneReleased"
	default:
		return "unknown"
	}
}

// ParseRangeKind accepts the names returned by RangeKind.String, in any case.
// An empty name yields MinusOneToOne.
func ParseRangeKind(name string) (RangeKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "minusonetoone":
		return MinusOneToOne, nil
	case "zerotoone":
		return ZeroToOne, nil
	case "negativeonereleased":
		return NegativeOneReleased, nil
	}
	return 0, fmt.Errorf("unknown range kind %q", name)
}

// AxisMapping defines how a canonical axis is read from a raw axis index.
type AxisMapping struct {
	Index  int
	Invert bool
	Range  RangeKind
	// Deadzone overrides the mapper default when non-zero.
	Deadzone float64
}

// ButtonMapping defines how a canonical button is read from a raw button index.
type ButtonMapping struct {
	Index int
	// Threshold > 0 marks an analog-valued button; it counts as pressed once
	// its value reaches the threshold.
	Threshold float64
}

// AxisSet carries one mapping per canonical axis. A nil entry means the
// hardware does not expose that axis.
type AxisSet struct {
	LeftX, LeftY, RightX, RightY *AxisMapping
	LeftTrigger, RightTrigger    *AxisMapping
}

// Get returns the mapping for a canonical axis.
func (s AxisSet) Get(a Axis) *AxisMapping {
	switch a {
	case AxisLeftX:
		return s.LeftX
	case AxisLeftY:
		return s.LeftY
	case AxisRightX:
		return s.RightX
	case AxisRightY:
		return s.RightY
	case AxisLeftTrigger:
		return s.LeftTrigger
	case AxisRightTrigger:
		return s.RightTrigger
	}
	return nil
}

func (s *AxisSet) set(a Axis, m *AxisMapping) {
	switch a {
	case AxisLeftX:
		s.LeftX = m
	case AxisLeftY:
		s.LeftY = m
	case AxisRightX:
		s.RightX = m
	case AxisRightY:
		s.RightY = m
	case AxisLeftTrigger:
		s.LeftTrigger = m
	case AxisRightTrigger:
		s.RightTrigger = m
	}
}

// DpadAxes names the two raw axes a D-pad is reported on.
type DpadAxes struct {
	X, Y int
}

// Quirks are documented deviations from the uniform mapping model.
type Quirks struct {
	// SwapFaceButtons exchanges A/B and X/Y after reading, for hardware
	// whose labels sit in the Nintendo positions.
	SwapFaceButtons bool
	// TriggersAreButtons reads LT/RT from their button mappings instead of
	// deriving them from the analog trigger value.
	TriggersAreButtons bool
	// DpadAxes, when set, replaces any button-based D-pad reading.
	DpadAxes *DpadAxes
}

// MatchRule recognises a hardware family from its identifier string.
type MatchRule struct {
	Patterns []string
	Vendors  []string
	Products []string
}

// Profile describes how one controller family reports its inputs.
// Profiles are built once and must not be modified afterwards.
type Profile struct {
	Name    string
	Match   MatchRule
	Axes    AxisSet
	Buttons map[Button]ButtonMapping
	Quirks  Quirks
}

func stick(index int, invert bool) *AxisMapping {
	return &AxisMapping{Index: index, Invert: invert}
}

func trigger(index int, kind RangeKind) *AxisMapping {
	return &AxisMapping{Index: index, Range: kind}
}
