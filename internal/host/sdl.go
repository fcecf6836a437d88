package host

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
)

const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

type sdlDevice struct {
	joystick *sdl.Joystick
	id       sdl.JoystickID
	ident    string
}

// SDL reads controllers through the SDL3 joystick API. All methods must be
// called from the thread that called Open.
type SDL struct {
	logger  *zap.Logger
	devices map[sdl.JoystickID]*sdlDevice

	onConnect    func(int)
	onDisconnect func(int)
}

func NewSDL(logger *zap.Logger) *SDL {
	return &SDL{
		logger:  logger.Named("sdl"),
		devices: make(map[sdl.JoystickID]*sdlDevice),
	}
}

func (h *SDL) Open() error {
	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("SDL init: %s", sdl.GetError())
	}
	h.logger.Info("SDL3 joystick subsystem initialized")
	return nil
}

func (h *SDL) Close() {
	for id, d := range h.devices {
		sdl.CloseJoystick(d.joystick)
		delete(h.devices, id)
	}
	sdl.Quit()
}

func (h *SDL) Listen(onConnect, onDisconnect func(int)) func() {
	h.onConnect = onConnect
	h.onDisconnect = onDisconnect

	for _, id := range sdl.GetJoysticks() {
		h.openJoystick(id)
	}

	return func() {
		h.onConnect = nil
		h.onDisconnect = nil
	}
}

func (h *SDL) Pump() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			h.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			h.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown, sdl.EventJoystickButtonUp:
			be := event.JButton()
			h.logger.Debug("Button",
				zap.Any("index", be.Button),
				zap.Bool("down", event.Type() == sdl.EventJoystickButtonDown),
				zap.Uint32("joystick", uint32(be.Which)))

		case sdl.EventJoystickHatMotion:
			he := event.JHat()
			h.logger.Debug("Hat",
				zap.Any("index", he.Hat),
				zap.Any("value", he.Value),
				zap.Uint32("joystick", uint32(he.Which)))
		}
	}
}

func (h *SDL) Snapshot(index int) (gamepad.RawSnapshot, bool) {
	d, ok := h.devices[sdl.JoystickID(index)]
	if !ok || !sdl.JoystickConnected(d.joystick) {
		return gamepad.RawSnapshot{}, false
	}
	js := d.joystick

	numAxes := sdl.GetNumJoystickAxes(js)
	numButtons := sdl.GetNumJoystickButtons(js)
	numHats := sdl.GetNumJoystickHats(js)

	raw := gamepad.RawSnapshot{
		Index:     index,
		ID:        d.ident,
		Axes:      make([]float64, 0, max(numAxes, 0)),
		Buttons:   make([]gamepad.RawButton, 0, max(numButtons+4*numHats, 0)),
		Timestamp: time.Now(),
	}

	for i := int32(0); i < numAxes; i++ {
		raw.Axes = append(raw.Axes, normalizeAxis(sdl.GetJoystickAxis(js, i)))
	}
	for i := int32(0); i < numButtons; i++ {
		raw.Buttons = append(raw.Buttons, digital(sdl.GetJoystickButton(js, i)))
	}
	for i := int32(0); i < numHats; i++ {
		hat := sdl.GetJoystickHat(js, i)
		raw.Buttons = append(raw.Buttons,
			digital(hat&hatUp != 0),
			digital(hat&hatRight != 0),
			digital(hat&hatDown != 0),
			digital(hat&hatLeft != 0),
		)
	}
	return raw, true
}

func (h *SDL) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := h.devices[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		h.logger.Warn("Failed to open joystick",
			zap.Uint32("joystick", uint32(instanceID)),
			zap.Error(errors.New(sdl.GetError())))
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)

	d := &sdlDevice{
		joystick: js,
		id:       jsID,
		ident:    VendorProductIdentifier(name, vendorID, productID),
	}
	h.devices[jsID] = d

	h.logger.Info("Joystick opened",
		zap.String("name", name),
		zap.String("vid", fmt.Sprintf("%04X", vendorID)),
		zap.String("pid", fmt.Sprintf("%04X", productID)),
		zap.Int32("axes", sdl.GetNumJoystickAxes(js)),
		zap.Int32("buttons", sdl.GetNumJoystickButtons(js)),
		zap.Int32("hats", sdl.GetNumJoystickHats(js)))

	if h.onConnect != nil {
		h.onConnect(int(jsID))
	}
}

func (h *SDL) removeJoystick(instanceID sdl.JoystickID) {
	d, exists := h.devices[instanceID]
	if !exists {
		return
	}

	h.logger.Info("Joystick closed", zap.String("id", d.ident))
	sdl.CloseJoystick(d.joystick)
	delete(h.devices, instanceID)

	if h.onDisconnect != nil {
		h.onDisconnect(int(instanceID))
	}
}

// normalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func normalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

func digital(pressed bool) gamepad.RawButton {
	if pressed {
		return gamepad.RawButton{Pressed: true, Value: 1}
	}
	return gamepad.RawButton{}
}
