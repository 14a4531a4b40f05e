// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	pkgerrors "github.com/zhubert/chatclone/internal/errors"
	"github.com/zhubert/chatclone/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "ChatClone"

// notify is the platform call, swapped out in tests.
var notify = beeep.Notify

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores the beeep notifier.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("Notification: Sending notification - title=%q, message=%q", title, message)
	// Empty icon lets beeep pick the platform default
	if err := notify(title, message, ""); err != nil {
		logger.Warn("Notification: Failed to send notification: %v", err)
		return pkgerrors.NotificationFailed(title, err)
	}
	return nil
}

// ChatReplied announces that a reply landed in the named chat.
func ChatReplied(chatTitle string) error {
	return Send(AppName, chatTitle+" replied")
}
