package gamepad

import (
	"fmt"
	"strings"
)

// Button names a logical input in vendor-neutral terms.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonLT
	ButtonRT
	ButtonSelect
	ButtonStart
	ButtonL3
	ButtonR3
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight
	ButtonHome
	ButtonCapture
	ButtonTouchpad

	ButtonCount
)

var buttonNames = [ButtonCount]string{
	ButtonA:         "a",
	ButtonB:         "b",
	ButtonX:         "x",
	ButtonY:         "y",
	ButtonLB:        "lb",
	ButtonRB:        "rb",
	ButtonLT:        "lt",
	ButtonRT:        "rt",
	ButtonSelect:    "select",
	ButtonStart:     "start",
	ButtonL3:        "l3",
	ButtonR3:        "r3",
	ButtonDpadUp:    "dpad_up",
	ButtonDpadDown:  "dpad_down",
	ButtonDpadLeft:  "dpad_left",
	ButtonDpadRight: "dpad_right",
	ButtonHome:      "home",
	ButtonCapture:   "capture",
	ButtonTouchpad:  "touchpad",
}

func (b Button) String() string {
	if b < 0 || b >= ButtonCount {
		return fmt.Sprintf("button(%d)", int(b))
	}
	return buttonNames[b]
}

// ParseButton resolves a canonical button name, case-insensitively.
func ParseButton(name string) (Button, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b, n := range buttonNames {
		if n == name {
			return Button(b), nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// Axis names a logical analog input.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger

	AxisCount
)

var axisNames = [AxisCount]string{
	AxisLeftX:        "left_x",
	AxisLeftY:        "left_y",
	AxisRightX:       "right_x",
	AxisRightY:       "right_y",
	AxisLeftTrigger:  "left_trigger",
	AxisRightTrigger: "right_trigger",
}

func (a Axis) String() string {
	if a < 0 || a >= AxisCount {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis resolves a canonical axis name, case-insensitively.
func ParseAxis(name string) (Axis, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range axisNames {
		if n == name {
			return Axis(a), nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q", name)
}
