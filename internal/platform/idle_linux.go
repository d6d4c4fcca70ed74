//go:build linux

package platform

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"eyerest/internal/core/timekeeper"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"
)

// idleProvider asks the X screensaver extension for the time since last input.
type idleProvider struct {
	mu   sync.Mutex
	conn *xgb.Conn
	root xproto.Window
}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if err := provider.connectLocked(); err != nil {
		return 0, err
	}

	info, err := screensaver.QueryInfo(provider.conn, xproto.Drawable(provider.root)).Reply()
	if err != nil {
		provider.conn.Close()
		provider.conn = nil
		return 0, fmt.Errorf("query screensaver info: %w", err)
	}
	return time.Duration(info.MsSinceUserInput) * time.Millisecond, nil
}

func (provider *idleProvider) connectLocked() error {
	if provider.conn != nil {
		return nil
	}
	// XWayland only sees input sent to X clients; the value would be wrong.
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return timekeeper.ErrIdleUnsupported
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("%w: %v", timekeeper.ErrIdleUnsupported, err)
	}
	if err := screensaver.Init(conn); err != nil {
		conn.Close()
		return fmt.Errorf("%w: screensaver extension: %v", timekeeper.ErrIdleUnsupported, err)
	}

	provider.conn = conn
	provider.root = xproto.Setup(conn).DefaultScreen(conn).Root
	return nil
}
