// Package alert tells the user that a rest phase has ended.
package alert

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsNotify = notificationsDest + ".Notify"

	defaultExpireTimeout = 5000
)

// Notification describes a desktop notification.
type Notification struct {
	Summary       string
	Body          string
	Icon          string
	ExpireTimeout int32
}

// Notifier sends notifications over the session bus.
type Notifier struct {
	mu      sync.Mutex
	appName string
	logger  *slog.Logger
	conn    *dbus.Conn
	lastID  uint32
}

// NewNotifier creates a Notifier. The bus is connected lazily.
func NewNotifier(appName string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{appName: appName, logger: logger}
}

// Send shows notification, replacing the previous one from this Notifier.
func (n *Notifier) Send(notification Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.conn == nil {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("connect session bus: %w", err)
		}
		n.conn = conn
	}

	expire := notification.ExpireTimeout
	if expire == 0 {
		expire = defaultExpireTimeout
	}

	obj := n.conn.Object(notificationsDest, notificationsPath)
	call := obj.Call(notificationsNotify, 0,
		n.appName,
		n.lastID,
		notification.Icon,
		notification.Summary,
		notification.Body,
		[]string{},
		hints(n.appName),
		expire,
	)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}
	if err := call.Store(&n.lastID); err != nil {
		return fmt.Errorf("read notification id: %w", err)
	}
	n.logger.Debug("notification sent", "id", n.lastID, "summary", notification.Summary)
	return nil
}

// Close disconnects from the bus.
func (n *Notifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

func hints(appName string) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(1)),
		"category":      dbus.MakeVariant("presence"),
		"transient":     dbus.MakeVariant(true),
		"desktop-entry": dbus.MakeVariant(appName),
	}
}

// RestCompleteNotification is shown when a rest phase ends.
func RestCompleteNotification(restSeconds int, running bool) Notification {
	body := fmt.Sprintf("You rested for %s.", describeSeconds(restSeconds))
	if running {
		body += " The next work interval has started."
	}
	return Notification{
		Summary: "Rest complete",
		Body:    body,
		Icon:    "face-smile",
	}
}

func describeSeconds(seconds int) string {
	minutes, secs := seconds/60, seconds%60
	switch {
	case minutes == 0:
		return plural(secs, "second")
	case secs == 0:
		return plural(minutes, "minute")
	default:
		return plural(minutes, "minute") + " " + plural(secs, "second")
	}
}

func plural(count int, unit string) string {
	if count == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
