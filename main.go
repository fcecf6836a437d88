package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/soar/inputview/internal/config"
	"github.com/soar/inputview/internal/gamepad"
	"github.com/soar/inputview/internal/host"
	"github.com/soar/inputview/internal/hub"
	"github.com/soar/inputview/internal/logging"
	"github.com/soar/inputview/internal/server"
	"github.com/soar/inputview/internal/tray"
)

// os.Interrupt covers Ctrl+C on Windows as well as SIGINT elsewhere.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("inputview failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	db := gamepad.DefaultDatabase()
	if cfg.ProfilesFile != "" {
		extra, err := gamepad.LoadProfilesFile(cfg.ProfilesFile)
		if err != nil {
			return err
		}
		if db, err = db.WithProfiles(extra...); err != nil {
			return fmt.Errorf("profiles file: %w", err)
		}
		logger.Info("Loaded user profiles", zap.String("file", cfg.ProfilesFile), zap.Int("count", len(extra)))
	}

	h, err := host.New(cfg.Backend, logger)
	if err != nil {
		return err
	}

	manager := gamepad.NewManager(h, db, cfg.Mapper(), logger.Named("gamepad"))
	if cfg.Profile != "" {
		if err := manager.SetProfileOverride(cfg.Profile); err != nil {
			return err
		}
	}

	changes := make(chan gamepad.GamepadState, 64)
	manager.Subscribe(gamepad.ChannelSubscriber(changes))

	wsHub := hub.NewHub(logger)
	go wsHub.Run(ctx)

	broadcaster := hub.NewBroadcaster(wsHub, changes)
	go broadcaster.Run(ctx)

	srv, err := server.New(wsHub, broadcaster, manager, frontendFS(), cfg.Addr, logger)
	if err != nil {
		return fmt.Errorf("HTTP server: %w", err)
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := "http://" + localURLHost(cfg.Addr)
	logger.Info("inputview started", zap.String("url", url), zap.String("backend", cfg.Backend))

	shutdownRequested := make(chan struct{})

	if runtime.GOOS == "windows" || cfg.Tray {
		go func() {
			t := tray.New(func() {
				close(shutdownRequested)
			}, manager, url, logger)
			t.Run(tray.GetIcon())
		}()
	} else {
		logger.Info("Press Ctrl+C to exit")
	}

	managerDone := make(chan error, 1)
	go func() {
		managerDone <- manager.Run(ctx, cfg.PollInterval)
	}()

	var runErr error
	managerExited := false
	select {
	case <-sigCh:
		logger.Info("Shutting down...")
	case <-shutdownRequested:
		logger.Info("Shutdown requested from tray")
	case err := <-serverErrCh:
		runErr = fmt.Errorf("HTTP server: %w", err)
	case err := <-managerDone:
		managerExited = true
		if err != nil {
			runErr = fmt.Errorf("controller polling: %w", err)
		}
	}
	cancel()

	// Wait for the polling loop to release the host
	if !managerExited {
		if err := <-managerDone; err != nil && runErr == nil {
			runErr = fmt.Errorf("controller polling: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("inputview stopped")
	return runErr
}

// localURLHost turns a listen address such as ":8080" into "localhost:8080".
func localURLHost(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
