package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/keys"
	"github.com/zhubert/chatclone/internal/logger"
	"github.com/zhubert/chatclone/internal/session"
	"github.com/zhubert/chatclone/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key             string                              // The key binding (e.g., "n", "ctrl+n")
	DisplayKey      string                              // Display name in help (e.g., "Ctrl+N"); defaults to Key
	Description     string                              // Human-readable description
	Category        string                              // Section for help modal grouping
	RequiresSidebar bool                                // Must not be in chat focus
	Handler         func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition       func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation    = "Navigation"
	CategoryChats         = "Chats"
	CategoryMessages      = "Messages"
	CategoryConfiguration = "Configuration"
	CategoryComposer      = "Composer (when focused)"
	CategoryGeneral       = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryChats,
	CategoryMessages,
	CategoryConfiguration,
	CategoryComposer,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of keyboard shortcuts. Entries
// appear in the help modal and run from both key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Switch between chat list and composer",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:         keys.CtrlB,
		DisplayKey:  "ctrl-b",
		Description: "Show or hide the chat list",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleSidebar,
	},
	{
		Key:             "/",
		Description:     "Search chats",
		Category:        CategoryNavigation,
		RequiresSidebar: true,
		Handler:         shortcutSearch,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSearchMode() },
	},

	// Chats
	{
		Key:             "n",
		Description:     "New chat",
		Category:        CategoryChats,
		RequiresSidebar: true,
		Handler:         shortcutNewChat,
	},
	{
		Key:         keys.CtrlN,
		DisplayKey:  "ctrl-n",
		Description: "New chat from anywhere",
		Category:    CategoryChats,
		Handler:     shortcutNewChat,
	},
	{
		Key:             "e",
		Description:     "Rename selected chat",
		Category:        CategoryChats,
		RequiresSidebar: true,
		Handler:         shortcutRenameChat,
		Condition:       hasSelectedChat,
	},
	{
		Key:             "d",
		Description:     "Delete selected chat",
		Category:        CategoryChats,
		RequiresSidebar: true,
		Handler:         shortcutDeleteChat,
		Condition:       hasSelectedChat,
	},

	// Messages
	{
		Key:             "y",
		Description:     "Copy selected or last reply",
		Category:        CategoryMessages,
		RequiresSidebar: true,
		Handler:         shortcutCopyReply,
	},
	{
		Key:         keys.CtrlY,
		DisplayKey:  "ctrl-y",
		Description: "Copy selected or last reply from anywhere",
		Category:    CategoryMessages,
		Handler:     shortcutCopyReply,
	},
	{
		Key:             "r",
		Description:     "Regenerate last reply",
		Category:        CategoryMessages,
		RequiresSidebar: true,
		Handler:         shortcutRegenerate,
		Condition:       canRegenerate,
	},
	{
		Key:         keys.CtrlR,
		DisplayKey:  "ctrl-r",
		Description: "Regenerate from anywhere",
		Category:    CategoryMessages,
		Handler:     shortcutRegenerate,
		Condition:   canRegenerate,
	},

	// Configuration
	{
		Key:             ",",
		Description:     "Settings",
		Category:        CategoryConfiguration,
		RequiresSidebar: true,
		Handler:         shortcutSettings,
	},

	// General
	{
		Key:             "q",
		Description:     "Quit",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutQuit,
	},
}

// DisplayOnlyShortcuts document keys handled outside the registry
var DisplayOnlyShortcuts = []Shortcut{
	{Key: "↑/↓ j/k", Description: "Move through chats", Category: CategoryNavigation},
	{Key: "Enter", Description: "Open selected chat", Category: CategoryNavigation},
	{Key: "Esc", Description: "Close dialog or search", Category: CategoryNavigation},
	{Key: "Enter", Description: "Send message", Category: CategoryComposer},
	{Key: "opt-enter", Description: "Insert newline", Category: CategoryComposer},
	{Key: "↑/↓", Description: "Pick an example on an empty chat", Category: CategoryComposer},
	{Key: "PgUp/PgDn", Description: "Scroll the conversation", Category: CategoryComposer},
	{Key: "[ / ]", Description: "Select an older or newer reply", Category: CategoryMessages},
	{Key: "?", Description: "Show this help", Category: CategoryGeneral},
	{Key: "ctrl-c", Description: "Quit", Category: CategoryGeneral},
}

func hasSelectedChat(m *Model) bool {
	return m.sidebar.SelectedID() != ""
}

// canRegenerate reports whether the active chat ends with a reply that
// can be replaced right now.
func canRegenerate(m *Model) bool {
	if m.store.InputLocked() {
		return false
	}
	last, ok := m.store.ActiveChat().LastMessage()
	return ok && last.Role == session.RoleAssistant
}

// isShortcutApplicable reports whether a shortcut's guards pass right now
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresSidebar && m.focus != FocusSidebar {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut runs the registry entry for key. It reports false when no
// entry matches or a guard fails, so the key can fall through to the
// focused panel.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// Keys typed into the search box belong to the search input
	if m.sidebar.IsSearchMode() && key != "/" {
		return m, nil, false
	}

	// Help is handled outside the registry to avoid an init cycle
	if key == "?" {
		if m.focus != FocusSidebar {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			logger.WithComponent("shortcuts").Debug("guard failed", "key", key, "focus", m.focus.String())
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help sections from the shortcuts that
// apply in the current state, in category order.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range registry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	for _, s := range displayOnly {
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleFocus()
}

func shortcutToggleSidebar(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleSidebar()
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sidebar.EnterSearchMode()
}

func shortcutNewChat(m *Model) (tea.Model, tea.Cmd) {
	return m, m.createChat()
}

func shortcutRenameChat(m *Model) (tea.Model, tea.Cmd) {
	c, ok := m.sidebar.SelectedChat()
	if !ok {
		return m, nil
	}
	m.modal.Show(modals.NewRenameChatState(c.ID, c.Title))
	return m, nil
}

func shortcutDeleteChat(m *Model) (tea.Model, tea.Cmd) {
	c, ok := m.sidebar.SelectedChat()
	if !ok {
		return m, nil
	}
	if m.store.Len() <= 1 {
		return m, m.ShowFlashWarning("Can't delete the only chat")
	}
	m.modal.Show(modals.NewConfirmDeleteState(c.ID, c.Title, c.Pending))
	return m, nil
}

func shortcutCopyReply(m *Model) (tea.Model, tea.Cmd) {
	return m, m.copySelectedReply()
}

func shortcutRegenerate(m *Model) (tea.Model, tea.Cmd) {
	return m, m.regenerate()
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.showSettings()
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	sections := m.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpStateFromSections(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}
