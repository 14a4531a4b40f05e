package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/config"
	"github.com/zhubert/chatclone/internal/logger"
	"github.com/zhubert/chatclone/internal/session"
	"github.com/zhubert/chatclone/internal/ui"
	"github.com/zhubert/chatclone/internal/ui/modals"
)

// =============================================================================
// Focus Management
// =============================================================================

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusSidebar {
		m.focusChat()
	} else {
		m.focusSidebar()
	}
	return nil
}

func (m *Model) focusChat() {
	if m.sidebar.IsSearchMode() {
		m.sidebar.ExitSearchMode()
	}
	m.focus = FocusChat
	m.sidebar.SetFocused(false)
	m.chat.SetFocused(true)
}

// focusSidebar moves focus to the chat list, showing it if it was collapsed.
func (m *Model) focusSidebar() {
	if m.sidebarHidden {
		m.setSidebarHidden(false)
	}
	m.focus = FocusSidebar
	m.sidebar.SetFocused(true)
	m.chat.SetFocused(false)
}

// toggleSidebar collapses or restores the chat list. Collapsing it while it
// has focus hands focus to the composer.
func (m *Model) toggleSidebar() tea.Cmd {
	m.setSidebarHidden(!m.sidebarHidden)
	if m.sidebarHidden && m.focus == FocusSidebar {
		m.focusChat()
	}
	return nil
}

func (m *Model) setSidebarHidden(hidden bool) {
	m.sidebarHidden = hidden
	if m.width > 0 && m.height > 0 {
		m.updateSizes()
	}
	logger.WithComponent("app").Debug("sidebar toggled", "hidden", hidden)
}

// =============================================================================
// Chat Lifecycle
// =============================================================================

// createChat starts a new chat and moves focus to its composer
func (m *Model) createChat() tea.Cmd {
	id := m.store.CreateChat()
	logger.WithChat(id).Info("chat created")
	if m.sidebar.IsSearchMode() {
		m.sidebar.ExitSearchMode()
	}
	cmd := m.afterStoreChange()
	m.focusChat()
	return cmd
}

// selectChat makes id the active chat. The composer draft is kept across
// switches.
func (m *Model) selectChat(id string) tea.Cmd {
	if id == "" || id == m.store.ActiveID() {
		return nil
	}
	if !m.store.SelectChat(id) {
		return nil
	}
	return m.afterStoreChange()
}

// deleteChat removes id once the user confirmed it
func (m *Model) deleteChat(id, title string) tea.Cmd {
	if !m.store.DeleteChat(id) {
		return m.ShowFlashWarning("Can't delete the only chat")
	}
	logger.WithChat(id).Info("chat deleted")
	return tea.Batch(m.afterStoreChange(), m.ShowFlashSuccess("Deleted "+title))
}

// renameChat applies a new title. It reports false when the title is empty.
func (m *Model) renameChat(id, title string) (bool, tea.Cmd) {
	if !m.store.RenameChat(id, title) {
		return false, nil
	}
	return true, m.afterStoreChange()
}

// =============================================================================
// Messages
// =============================================================================

// sendMessage sends the composer text to the active chat
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	content := m.chat.GetInput()
	if content == "" {
		return m, nil
	}
	if !m.store.SendMessage(content) {
		// Locked composers swallow typing, so this only happens in a race
		// with a scope change. Keep the draft.
		return m, nil
	}
	m.chat.ClearInput()
	m.chat.ClearReplySelection()
	return m, m.afterStoreChange()
}

// sendExample sends a welcome example as the first message
func (m *Model) sendExample(example string) (tea.Model, tea.Cmd) {
	if !m.store.SendMessage(example) {
		return m, nil
	}
	return m, m.afterStoreChange()
}

// regenerate replaces the last reply of the active chat
func (m *Model) regenerate() tea.Cmd {
	if !m.store.Regenerate() {
		return m.ShowFlashWarning("Nothing to regenerate right now")
	}
	return m.afterStoreChange()
}

// copySelectedReply copies the reply picked with [ and ], or the most
// recent reply when none is picked.
func (m *Model) copySelectedReply() tea.Cmd {
	if msg, ok := m.chat.SelectedReply(); ok {
		return m.copyReply(msg)
	}
	return m.copyLastReply()
}

// copyLastReply copies the active chat's most recent reply to the clipboard
func (m *Model) copyLastReply() tea.Cmd {
	msg, ok := m.store.ActiveChat().LastAssistantMessage()
	if !ok {
		return m.ShowFlashWarning("No reply to copy yet")
	}
	return m.copyReply(msg)
}

func (m *Model) copyReply(msg session.Message) tea.Cmd {
	if err := m.copyText(msg.Content); err != nil {
		logger.WithComponent("app").Warn("copy failed", "error", err, "messageID", msg.ID)
		return m.ShowFlashError("Copy failed: clipboard unavailable")
	}
	return m.ShowFlashSuccess("Copied to clipboard")
}

// =============================================================================
// Settings
// =============================================================================

func (m *Model) currentSettings() modals.SettingsValues {
	minDelay, maxDelay := m.config.GetReplyDelay()
	return modals.SettingsValues{
		Theme:                string(ui.CurrentThemeName()),
		NotificationsEnabled: m.config.GetNotificationsEnabled(),
		GlobalPending:        m.store.PendingScope() == session.ScopeGlobal,
		ReplyDelayMinMS:      int(minDelay.Milliseconds()),
		ReplyDelayMaxMS:      int(maxDelay.Milliseconds()),
	}
}

func (m *Model) showSettings() {
	names := ui.ThemeNames()
	themes := make([]string, len(names))
	for i, n := range names {
		themes[i] = string(n)
	}
	m.modal.Show(modals.NewSettingsState(themes, ui.ThemeDisplayNames(), m.currentSettings()))
}

// applySettings validates and saves the settings modal values. The returned
// command restarts the animation ticks when the new settings need them.
func (m *Model) applySettings(v modals.SettingsValues) (tea.Cmd, error) {
	if err := m.config.SetReplyDelay(v.ReplyDelayMinMS, v.ReplyDelayMaxMS); err != nil {
		return nil, err
	}
	scope := config.PendingScopeChat
	if v.GlobalPending {
		scope = config.PendingScopeGlobal
	}
	if err := m.config.SetPendingScope(scope); err != nil {
		return nil, err
	}
	m.config.SetTheme(v.Theme)
	m.config.SetNotificationsEnabled(v.NotificationsEnabled)

	ui.SetThemeByName(v.Theme)
	m.store.SetPendingScope(session.ParsePendingScope(scope))
	minDelay, maxDelay := m.config.GetReplyDelay()
	m.store.SetReplyDelay(minDelay, maxDelay)

	// Restyle the composer for the new palette
	m.chat.RefreshStyles()
	cmd := m.refresh()

	return cmd, m.config.Save()
}

// =============================================================================
// Startup
// =============================================================================

func (m *Model) handleStartupModals() (tea.Model, tea.Cmd) {
	if !m.config.HasSeenWelcome() {
		m.modal.Show(modals.NewWelcomeState())
	}
	return m, nil
}

// dismissWelcome records that the welcome modal was seen
func (m *Model) dismissWelcome() tea.Cmd {
	m.modal.Hide()
	m.config.MarkWelcomeShown()
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Warn("failed to save config", "error", err)
		return m.ShowFlashError("Could not save preferences: " + firstLine(err.Error()))
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
