package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/keys"
	"github.com/zhubert/chatclone/internal/ui/modals"
)

// handleModalKey routes modal key events to the handler for the modal's
// state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.RenameChatState:
		return m.handleRenameChatModal(key, msg, s)
	case *modals.ConfirmDeleteState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *modals.WelcomeState:
		return m.handleWelcomeModal(key, msg)
	}

	// Unknown modal: escape closes it, everything else goes to the state
	if key == keys.Escape {
		m.modal.Hide()
		return m, nil
	}
	return m.forwardToModal(msg)
}

func (m *Model) forwardToModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleRenameChatModal handles key events for the rename modal.
func (m *Model) handleRenameChatModal(key string, msg tea.KeyPressMsg, state *modals.RenameChatState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		title := state.GetNewTitle()
		if title == "" {
			m.modal.SetError("Title cannot be empty")
			return m, nil
		}
		ok, cmd := m.renameChat(state.ChatID, title)
		if !ok {
			m.modal.SetError("That chat no longer exists")
			return m, nil
		}
		m.modal.Hide()
		return m, cmd
	}
	return m.forwardToModal(msg)
}

// handleConfirmDeleteModal handles key events for the delete confirmation.
func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmDeleteState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if !state.Confirmed() {
			return m, nil
		}
		return m, m.deleteChat(state.ChatID, state.ChatTitle)
	}
	return m.forwardToModal(msg)
}

// handleSettingsModal handles key events for the settings form. Enter saves
// every field at once.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		values, err := state.Values()
		if err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
		cmd, err := m.applySettings(values)
		if err != nil {
			m.modal.SetError(firstLine(err.Error()))
			return m, cmd
		}
		m.modal.Hide()
		return m, tea.Batch(cmd, m.ShowFlashSuccess("Settings saved"))
	}
	return m.forwardToModal(msg)
}

// handleHelpModal handles key events for the help modal. Enter runs the
// highlighted shortcut.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While typing a filter the list owns Enter and Escape
	if state.IsFiltering() {
		return m.forwardToModal(msg)
	}

	switch key {
	case keys.Escape, "q", "?":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		sc := state.GetSelectedShortcut()
		if sc == nil {
			return m, nil
		}
		return m, func() tea.Msg {
			return modals.HelpShortcutTriggeredMsg{Key: sc.Key}
		}
	}
	return m.forwardToModal(msg)
}

// handleWelcomeModal closes the first-run welcome on Enter or Escape.
func (m *Model) handleWelcomeModal(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.Enter:
		return m, m.dismissWelcome()
	}
	return m.forwardToModal(msg)
}
