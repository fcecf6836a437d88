// Package config loads service settings from flags, environment and an
// optional inputview.yaml file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/inputview/internal/gamepad"
)

var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "INPUTVIEW"

type Config struct {
	Addr            string        `mapstructure:"addr"`
	Backend         string        `mapstructure:"backend"`
	PollInterval    time.Duration `mapstructure:"poll-interval"`
	StickDeadzone   float64       `mapstructure:"stick-deadzone"`
	TriggerDeadzone float64       `mapstructure:"trigger-deadzone"`
	Profile         string        `mapstructure:"profile"`
	ProfilesFile    string        `mapstructure:"profiles-file"`
	Tray            bool          `mapstructure:"tray"`
	LogLevel        string        `mapstructure:"log-level"`
	Dev             bool          `mapstructure:"dev"`
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		Backend:         "sdl",
		PollInterval:    gamepad.DefaultPollInterval,
		StickDeadzone:   gamepad.DefaultStickDeadzone,
		TriggerDeadzone: gamepad.DefaultTriggerDeadzone,
		LogLevel:        "info",
	}
}

// Mapper returns the mapper configured by the deadzone settings.
func (c Config) Mapper() gamepad.Mapper {
	return gamepad.Mapper{
		StickDeadzone:   c.StickDeadzone,
		TriggerDeadzone: c.TriggerDeadzone,
	}
}

func (c Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll-interval must be positive, got %s", ErrInvalidConfig, c.PollInterval)
	}
	if !(c.StickDeadzone >= 0 && c.StickDeadzone < 1) {
		return fmt.Errorf("%w: stick-deadzone must be in [0,1), got %v", ErrInvalidConfig, c.StickDeadzone)
	}
	if !(c.TriggerDeadzone >= 0 && c.TriggerDeadzone < 1) {
		return fmt.Errorf("%w: trigger-deadzone must be in [0,1), got %v", ErrInvalidConfig, c.TriggerDeadzone)
	}
	switch c.Backend {
	case "sdl", "glfw":
	default:
		return fmt.Errorf("%w: backend must be sdl or glfw, got %q", ErrInvalidConfig, c.Backend)
	}
	return nil
}

// Load parses args (without the program name) and merges environment and
// config file values.
func Load(args []string) (Config, error) {
	def := Default()

	fs := pflag.NewFlagSet("inputview", pflag.ContinueOnError)
	fs.String("config", "", "config file (default: inputview.yaml in . or the user config dir)")
	fs.String("addr", def.Addr, "HTTP listen address")
	fs.String("backend", def.Backend, "controller backend: sdl or glfw")
	fs.Duration("poll-interval", def.PollInterval, "controller polling interval")
	fs.Float64("stick-deadzone", def.StickDeadzone, "radial stick deadzone")
	fs.Float64("trigger-deadzone", def.TriggerDeadzone, "trigger deadzone")
	fs.String("profile", "", "force a controller profile by name")
	fs.String("profiles-file", "", "YAML file with extra controller profiles")
	fs.Bool("tray", false, "show the system tray icon (always on for Windows)")
	fs.String("log-level", def.LogLevel, "log level: debug, info, warn, error")
	fs.Bool("dev", false, "development logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("inputview")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "inputview"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := def
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Backend = strings.ToLower(cfg.Backend)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
