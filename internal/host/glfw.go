package host

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
)

// GLFW reads controllers through the GLFW joystick API. GLFW reports hats
// after the buttons already, in the same up/right/down/left order the SDL
// backend uses. All methods must be called from the thread that called Open.
type GLFW struct {
	logger  *zap.Logger
	present map[glfw.Joystick]string

	onConnect    func(int)
	onDisconnect func(int)
}

func NewGLFW(logger *zap.Logger) *GLFW {
	return &GLFW{
		logger:  logger.Named("glfw"),
		present: make(map[glfw.Joystick]string),
	}
}

func (h *GLFW) Open() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("GLFW init: %w", err)
	}
	glfw.SetJoystickCallback(h.joystickCallback)
	h.logger.Info("GLFW joystick input initialized")
	return nil
}

func (h *GLFW) Close() {
	glfw.SetJoystickCallback(nil)
	for joy := range h.present {
		delete(h.present, joy)
	}
	glfw.Terminate()
}

func (h *GLFW) Listen(onConnect, onDisconnect func(int)) func() {
	h.onConnect = onConnect
	h.onDisconnect = onDisconnect

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() {
			h.connected(joy)
		}
	}

	return func() {
		h.onConnect = nil
		h.onDisconnect = nil
	}
}

// Pump lets GLFW deliver joystick callbacks.
func (h *GLFW) Pump() {
	glfw.PollEvents()
}

func (h *GLFW) Snapshot(index int) (gamepad.RawSnapshot, bool) {
	joy := glfw.Joystick(index)
	ident, ok := h.present[joy]
	if !ok || !joy.Present() {
		return gamepad.RawSnapshot{}, false
	}

	axes := joy.GetAxes()
	buttons := joy.GetButtons()

	raw := gamepad.RawSnapshot{
		Index:     index,
		ID:        ident,
		Axes:      make([]float64, len(axes)),
		Buttons:   make([]gamepad.RawButton, len(buttons)),
		Timestamp: time.Now(),
	}
	for i, v := range axes {
		raw.Axes[i] = float64(v)
	}
	for i, action := range buttons {
		raw.Buttons[i] = digital(action == glfw.Press)
	}
	return raw, true
}

func (h *GLFW) joystickCallback(joy glfw.Joystick, event glfw.PeripheralEvent) {
	switch event {
	case glfw.Connected:
		h.connected(joy)
	case glfw.Disconnected:
		h.disconnected(joy)
	}
}

func (h *GLFW) connected(joy glfw.Joystick) {
	if _, exists := h.present[joy]; exists {
		return
	}
	ident := PrefixIdentifier(joy.GetName(), joy.GetGUID())
	h.present[joy] = ident

	h.logger.Info("Joystick present",
		zap.Int("joystick", int(joy)),
		zap.String("id", ident),
		zap.Int("axes", len(joy.GetAxes())),
		zap.Int("buttons", len(joy.GetButtons())))

	if h.onConnect != nil {
		h.onConnect(int(joy))
	}
}

func (h *GLFW) disconnected(joy glfw.Joystick) {
	ident, exists := h.present[joy]
	if !exists {
		return
	}
	delete(h.present, joy)
	h.logger.Info("Joystick gone", zap.String("id", ident))

	if h.onDisconnect != nil {
		h.onDisconnect(int(joy))
	}
}
