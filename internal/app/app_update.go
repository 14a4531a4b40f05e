package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/keys"
	"github.com/zhubert/chatclone/internal/logger"
	"github.com/zhubert/chatclone/internal/ui"
	"github.com/zhubert/chatclone/internal/ui/modals"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.FocusMsg:
		m.windowFocused = true

	case tea.BlurMsg:
		m.windowFocused = false

	case tea.KeyboardEnhancementsMsg:
		m.kittyKeyboard = msg.SupportsKeyDisambiguation()

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to focused panel

	case ReplyDueMsg:
		if m.replies.Fire(msg.ID) {
			return m, m.afterStoreChange()
		}
		return m, nil

	case StartupModalMsg:
		return m.handleStartupModals()

	case modals.HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)

	case ui.FlashTickMsg:
		return m, m.handleFlashTick()

	case ui.StopwatchTickMsg:
		return m, m.handleStopwatchTick(msg)

	case ui.SidebarTickMsg:
		return m, m.handleSidebarTick(msg)
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	// Update focused panel for other messages
	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
	} else {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleStopwatchTick animates the typing indicator. One tick chain runs
// while any reply is pending.
func (m *Model) handleStopwatchTick(msg ui.StopwatchTickMsg) tea.Cmd {
	m.chat.Update(msg)
	if !m.store.AnyPending() {
		m.stopwatchRunning = false
		return nil
	}
	return ui.StopwatchTick()
}

// handleSidebarTick animates the pending spinners in the chat list
func (m *Model) handleSidebarTick(msg ui.SidebarTickMsg) tea.Cmd {
	m.sidebar.Update(msg)
	if !m.store.AnyPending() {
		m.sidebarTicking = false
		return nil
	}
	return ui.SidebarTick()
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	logger.WithComponent("app").Debug("key", "key", key, "focus", m.focus.String(), "modal", m.modal.IsVisible())

	// ctrl+c always quits, even over a modal
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if key == keys.Escape {
		if result, cmd, handled := m.handleEscapeKey(); handled {
			return result, cmd
		}
	}

	if m.sidebar.IsSearchMode() {
		return m.handleSearchKeys(msg)
	}

	if m.focus == FocusChat {
		if result, cmd, handled := m.handleChatFocusedKeys(msg); handled {
			return result, cmd
		}
	}

	// Try executing from shortcut registry
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	if m.focus == FocusSidebar {
		switch key {
		case keys.ShiftTab:
			return m, m.toggleFocus()
		case keys.Enter:
			return m.handleSidebarEnter()
		}
	}

	return nil, nil
}

// handleEscapeKey leaves search mode or returns to the chat list
func (m *Model) handleEscapeKey() (tea.Model, tea.Cmd, bool) {
	if m.sidebar.IsSearchMode() {
		m.sidebar.ExitSearchMode()
		return m, nil, true
	}
	if m.focus == FocusChat {
		m.focusSidebar()
		return m, nil, true
	}
	return m, nil, false
}

// handleSearchKeys routes keys while the sidebar search box is open. Enter
// opens the highlighted match.
func (m *Model) handleSearchKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keys.Enter {
		id := m.sidebar.SelectedID()
		m.sidebar.ExitSearchMode()
		cmd := m.selectChat(id)
		m.focusChat()
		return m, cmd
	}
	sidebar, cmd := m.sidebar.Update(msg)
	m.sidebar = sidebar
	return m, cmd
}

// handleSidebarEnter opens the chat under the cursor and focuses its composer
func (m *Model) handleSidebarEnter() (tea.Model, tea.Cmd) {
	cmd := m.selectChat(m.sidebar.SelectedID())
	m.focusChat()
	return m, cmd
}

// handleChatFocusedKeys handles keys that mean something special in the
// composer. Everything else goes to the textarea.
func (m *Model) handleChatFocusedKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case keys.Enter:
		if m.store.InputLocked() {
			return m, nil, true
		}
		if m.chat.GetInput() == "" {
			if example, ok := m.chat.SelectedExample(); ok {
				result, cmd := m.sendExample(example)
				return result, cmd, true
			}
			return m, nil, true
		}
		result, cmd := m.sendMessage()
		return result, cmd, true

	case keys.AltEnter, keys.ShiftEnter:
		m.chat.InsertNewline()
		return m, nil, true

	case keys.ShiftTab:
		m.focusSidebar()
		return m, nil, true
	}
	return m, nil, false
}

// handleHelpShortcutTrigger runs the shortcut picked in the help modal
func (m *Model) handleHelpShortcutTrigger(key string) (tea.Model, tea.Cmd) {
	m.modal.Hide()
	for _, s := range ShortcutRegistry {
		if s.Key == key || s.DisplayKey == key {
			result, cmd, _ := m.ExecuteShortcut(s.Key)
			return result, cmd
		}
	}
	return m, nil
}
