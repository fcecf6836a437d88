package host

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
)

const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// New returns the host for a backend name.
func New(backend string, logger *zap.Logger) (gamepad.Host, error) {
	switch backend {
	case BackendSDL, "":
		return NewSDL(logger), nil
	case BackendGLFW:
		return NewGLFW(logger), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
