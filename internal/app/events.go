package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/logger"
	"github.com/zhubert/chatclone/internal/notification"
	"github.com/zhubert/chatclone/internal/session"
)

// handleStoreEvent observes store changes. The store calls it on the
// goroutine that made the change, which is always the Update loop here, so
// it only queues commands for Update to return.
func (m *Model) handleStoreEvent(e session.Event) {
	log := logger.WithChat(e.ChatID).With("component", "app")
	log.Debug("store event", "kind", e.Kind.String())

	switch e.Kind {
	case session.ReplyDelivered:
		if !m.windowFocused && m.config.GetNotificationsEnabled() {
			m.queued = append(m.queued, notifyReply(e.Title))
		}
		if e.ChatID != m.store.ActiveID() {
			m.queued = append(m.queued, m.ShowFlashInfo("New reply in "+e.Title))
		}
	case session.ReplyDropped:
		log.Info("reply dropped for deleted chat")
	}
}

// notifyReply sends the desktop notification off the Update loop
func notifyReply(title string) tea.Cmd {
	return func() tea.Msg {
		if err := notification.ChatReplied(title); err != nil {
			logger.WithComponent("app").Warn("notification failed", "error", err)
		}
		return nil
	}
}
