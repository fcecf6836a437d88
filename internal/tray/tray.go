package tray

import (
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
)

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// ProfileSelector forces a controller profile; "" restores auto-detection.
// The tray follows overrides made from any source through SubscribeOverride.
type ProfileSelector interface {
	SetProfileOverride(name string) error
	SubscribeOverride(fn gamepad.OverrideSubscriber) (unsubscribe func())
	Diagnostics() gamepad.Diagnostics
	Profiles() []string
}

// checkbox is the part of *systray.MenuItem the profile menu toggles.
type checkbox interface {
	Check()
	Uncheck()
}

// Tray manages the system tray icon and menu
type Tray struct {
	shutdownFunc ShutdownFunc
	selector     ProfileSelector
	url          string
	logger       *zap.Logger
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuExit     *systray.MenuItem

	profileMu    sync.Mutex
	profileItems map[string]checkbox // "" is Auto
	unsubscribe  func()
}

// New creates a new Tray instance
func New(shutdownFn ShutdownFunc, selector ProfileSelector, url string, logger *zap.Logger) *Tray {
	return &Tray{
		shutdownFunc: shutdownFn,
		selector:     selector,
		url:          url,
		logger:       logger.Named("tray"),
		profileItems: make(map[string]checkbox),
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// onReady is called when the tray is ready
func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("inputview")
	systray.SetTooltip("inputview - " + t.url)

	t.menuOpen = systray.AddMenuItem("Open Browser", "Open web interface")
	t.addProfileMenu()
	t.followOverride()
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	t.logger.Info("System tray initialized")
}

func (t *Tray) addProfileMenu() {
	menu := systray.AddMenuItem("Profile", "Force a controller profile")

	auto := menu.AddSubMenuItemCheckbox("Auto", "Detect the profile from the device", true)
	t.profileItems[""] = auto
	go t.handleProfileClicks(auto, "")

	for _, name := range t.selector.Profiles() {
		item := menu.AddSubMenuItemCheckbox(name, "Use the "+name+" profile", false)
		t.profileItems[name] = item
		go t.handleProfileClicks(item, name)
	}
}

func (t *Tray) handleProfileClicks(item *systray.MenuItem, name string) {
	for range item.ClickedCh {
		if t.shuttingDown.Load() {
			return
		}
		if err := t.selector.SetProfileOverride(name); err != nil {
			t.logger.Warn("Profile selection failed", zap.String("profile", name), zap.Error(err))
		}
	}
}

// followOverride keeps the checked item in step with the active override,
// including changes made from the web UI or the REST API.
func (t *Tray) followOverride() {
	unsubscribe := t.selector.SubscribeOverride(t.checkProfile)

	// Holding profileMu orders the initial check before any notification
	// that races with it.
	t.profileMu.Lock()
	defer t.profileMu.Unlock()
	t.unsubscribe = unsubscribe
	t.checkLocked(t.selector.Diagnostics().Override)
}

// checkProfile leaves exactly one profile item checked. Names without an
// item, such as profiles added after startup, leave nothing checked.
func (t *Tray) checkProfile(name string) {
	t.profileMu.Lock()
	defer t.profileMu.Unlock()
	t.checkLocked(name)
}

func (t *Tray) checkLocked(name string) {
	if t.shuttingDown.Load() {
		return
	}
	for n, item := range t.profileItems {
		if n == name {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// handleMenuClicks processes menu item clicks without blocking
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

// onExit is called when the tray is exiting
func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	t.profileMu.Lock()
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	t.profileMu.Unlock()
	t.logger.Info("System tray exiting")
}

// openBrowser opens the default web browser
func (t *Tray) openBrowser() {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", t.url)
	case "darwin":
		cmd = exec.Command("open", t.url)
	default:
		cmd = exec.Command("xdg-open", t.url)
	}

	if err := cmd.Start(); err != nil {
		t.logger.Warn("Failed to open browser", zap.Error(err))
	}
}
