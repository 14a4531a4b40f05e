package modals

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// RenameChatState - State for the Rename Chat modal
// =============================================================================

type RenameChatState struct {
	ChatID    string
	ChatTitle string
	NameInput textinput.Model
}

func (*RenameChatState) modalState() {}

func (s *RenameChatState) Title() string { return "Rename Chat" }

func (s *RenameChatState) Help() string {
	return "Enter: save  Esc: cancel"
}

func (s *RenameChatState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	currentLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Current title:")

	currentName := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render("  " + TruncateString(s.ChatTitle, ModalInputWidth))

	newLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("New title:")

	inputView := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1).
		Render(s.NameInput.View())

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		currentLabel,
		currentName,
		newLabel,
		inputView,
		help,
	)
}

func (s *RenameChatState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.NameInput, cmd = s.NameInput.Update(msg)
	return s, cmd
}

// GetNewTitle returns the entered title with surrounding space removed.
func (s *RenameChatState) GetNewTitle() string {
	return strings.TrimSpace(s.NameInput.Value())
}

// NewRenameChatState creates a rename modal prefilled with the current title.
func NewRenameChatState(chatID, currentTitle string) *RenameChatState {
	nameInput := textinput.New()
	nameInput.Placeholder = "enter a title"
	nameInput.CharLimit = ChatTitleCharLimit
	nameInput.SetWidth(ModalInputWidth)
	nameInput.SetValue(currentTitle)
	nameInput.Focus()

	return &RenameChatState{
		ChatID:    chatID,
		ChatTitle: currentTitle,
		NameInput: nameInput,
	}
}

// =============================================================================
// ConfirmDeleteState - State for the Delete Chat confirmation
// =============================================================================

const (
	deleteOptionCancel = iota
	deleteOptionDelete
)

type ConfirmDeleteState struct {
	ChatID        string
	ChatTitle     string
	Pending       bool
	Options       []string
	SelectedIndex int
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete chat?" }

func (s *ConfirmDeleteState) Help() string {
	return "up/down: select  Enter: confirm  Esc: cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	chatLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(TruncateString(s.ChatTitle, ModalInputWidth))

	text := "This will delete the conversation and all of its messages."
	if s.Pending {
		text += " The reply that is still being written will be discarded."
	}
	message := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(ModalInputWidth).
		MarginBottom(1).
		Render(text)

	options := RenderSelectableList(s.Options, s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, chatLabel, message, options, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		case "y":
			s.SelectedIndex = deleteOptionDelete
		case "n":
			s.SelectedIndex = deleteOptionCancel
		}
	}
	return s, nil
}

// Confirmed reports whether the delete option is highlighted.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.SelectedIndex == deleteOptionDelete
}

// NewConfirmDeleteState creates a delete confirmation with Cancel highlighted.
func NewConfirmDeleteState(chatID, chatTitle string, pending bool) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		ChatID:        chatID,
		ChatTitle:     chatTitle,
		Pending:       pending,
		Options:       []string{"Cancel", "Delete chat"},
		SelectedIndex: deleteOptionCancel,
	}
}
