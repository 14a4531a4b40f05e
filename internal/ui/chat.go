package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/chatclone/internal/keys"
	"github.com/zhubert/chatclone/internal/session"
	"github.com/zhubert/chatclone/internal/ui/modals"
)

// Chat represents the right panel: the thread and the composer below it
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	chatID   string
	title    string
	messages []session.Message

	// locked disables the composer while a reply is pending in scope
	locked bool

	// waiting shows the typing indicator for this chat
	waiting   bool
	waitStart time.Time
	spinner   spinner

	// exampleCursor highlights a welcome example, -1 for none
	exampleCursor int

	// replyCursor is the index in messages of the selected reply, -1 for none
	replyCursor int

	now func() time.Time
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = ComposerPlaceholder
	ti.CharLimit = ComposerCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	modals.ApplyTextareaStyles(&ti)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport:      vp,
		input:         ti,
		exampleCursor: -1,
		replyCursor:   -1,
		now:           time.Now,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	threadHeight := height - InputTotalHeight
	innerWidth := ctx.InnerWidth(width)
	viewportHeight := max(ctx.InnerHeight(threadHeight), 1)

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// The composer accounts for its own border and padding
	c.input.SetWidth(innerWidth - InputPaddingWidth)

	ctx.Log("chat resized", "width", width, "height", height, "viewportHeight", viewportHeight)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	c.syncInputFocus()
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

func (c *Chat) syncInputFocus() {
	if c.focused && !c.locked {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// SetChat shows a chat's thread. Switching to a different chat resets the
// welcome example highlight and the reply selection.
func (c *Chat) SetChat(chat session.Chat) {
	if chat.ID != c.chatID {
		c.exampleCursor = -1
		c.replyCursor = -1
	}
	c.chatID = chat.ID
	c.title = chat.Title
	c.messages = chat.Messages
	if !c.isReply(c.replyCursor) {
		c.replyCursor = -1
	}
	c.updateContent()
}

// RefreshStyles re-applies the theme to the composer and re-renders the thread
func (c *Chat) RefreshStyles() {
	modals.ApplyTextareaStyles(&c.input)
	c.updateContent()
}

// ChatID returns the id of the chat on screen
func (c *Chat) ChatID() string {
	return c.chatID
}

// Title returns the title of the chat on screen
func (c *Chat) Title() string {
	return c.title
}

// Messages returns the messages on screen
func (c *Chat) Messages() []session.Message {
	return c.messages
}

// IsWelcome reports whether the welcome screen is showing.
func (c *Chat) IsWelcome() bool {
	return len(c.messages) == 0 && !c.waiting
}

// SetLocked enables or disables the composer.
func (c *Chat) SetLocked(locked bool) {
	c.locked = locked
	if locked {
		c.input.Placeholder = ComposerLockedPlaceholder
	} else {
		c.input.Placeholder = ComposerPlaceholder
	}
	c.syncInputFocus()
}

// IsLocked reports whether the composer is disabled.
func (c *Chat) IsLocked() bool {
	return c.locked
}

// SetWaiting shows or hides the typing indicator. Turning it on when it is
// already on keeps the running stopwatch.
func (c *Chat) SetWaiting(waiting bool) {
	if waiting && !c.waiting {
		c.waitStart = c.now()
		c.spinner.reset()
	}
	c.waiting = waiting
	c.updateContent()
}

// IsWaiting returns whether the typing indicator is showing
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// GetInput returns the composer text with surrounding space removed
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the composer
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput replaces the composer text
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertNewline adds a line break at the cursor.
func (c *Chat) InsertNewline() {
	if !c.locked {
		c.input.InsertString("\n")
	}
}

// ExampleCursor returns the highlighted welcome example, or -1.
func (c *Chat) ExampleCursor() int {
	return c.exampleCursor
}

// MoveExampleCursor moves the example highlight by delta, clamped to the list.
func (c *Chat) MoveExampleCursor(delta int) {
	next := c.exampleCursor + delta
	if c.exampleCursor < 0 && delta < 0 {
		next = len(WelcomeExamples) - 1
	}
	c.exampleCursor = max(0, min(next, len(WelcomeExamples)-1))
	c.updateContent()
}

// SelectedExample returns the highlighted example prompt.
func (c *Chat) SelectedExample() (string, bool) {
	if !c.IsWelcome() || c.exampleCursor < 0 || c.exampleCursor >= len(WelcomeExamples) {
		return "", false
	}
	return WelcomeExamples[c.exampleCursor], true
}

func (c *Chat) isReply(i int) bool {
	return i >= 0 && i < len(c.messages) && c.messages[i].Role == session.RoleAssistant
}

// MoveReplyCursor selects an older (delta < 0) or newer (delta > 0) reply.
// Moving back from no selection picks the newest reply. Moving forward past
// the newest reply clears the selection.
func (c *Chat) MoveReplyCursor(delta int) {
	if delta == 0 {
		return
	}
	start := c.replyCursor
	if start < 0 {
		if delta > 0 {
			return
		}
		start = len(c.messages)
	}

	step := 1
	if delta < 0 {
		step = -1
	}
	for i := start + step; i >= 0 && i < len(c.messages); i += step {
		if c.isReply(i) {
			c.replyCursor = i
			c.updateContent()
			return
		}
	}
	if delta > 0 {
		c.replyCursor = -1
		c.updateContent()
	}
}

// ClearReplySelection drops the selected reply.
func (c *Chat) ClearReplySelection() {
	if c.replyCursor >= 0 {
		c.replyCursor = -1
		c.updateContent()
	}
}

// SelectedReply returns the reply picked with the message cursor.
func (c *Chat) SelectedReply() (session.Message, bool) {
	if !c.isReply(c.replyCursor) {
		return session.Message{}, false
	}
	return c.messages[c.replyCursor], true
}

// ScrollToBottom shows the newest message.
func (c *Chat) ScrollToBottom() {
	c.viewport.GotoBottom()
}

// AtBottom reports whether the newest message is in view.
func (c *Chat) AtBottom() bool {
	return c.viewport.AtBottom()
}

func (c *Chat) wrapWidth() int {
	if w := c.viewport.Width(); w > 0 {
		return w
	}
	return DefaultWrapWidth
}

func (c *Chat) updateContent() {
	width := c.wrapWidth()

	if c.IsWelcome() {
		c.viewport.SetContent(renderWelcome(width, c.exampleCursor))
		c.viewport.GotoTop()
		return
	}

	now := c.now()
	var sb strings.Builder
	selectedLine := -1
	for i, msg := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if i == c.replyCursor {
			selectedLine = strings.Count(sb.String(), "\n")
		}
		sb.WriteString(renderMessage(msg, width, now, i == c.replyCursor))
	}

	if c.waiting {
		if len(c.messages) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderTypingIndicator(c.spinner.Verb, c.spinner.Idx, now.Sub(c.waitStart)))
	}

	c.viewport.SetContent(sb.String())
	if selectedLine >= 0 {
		c.viewport.SetYOffset(selectedLine)
		return
	}
	c.viewport.GotoBottom()
}

// handleStopwatchTick advances the typing indicator
func (c *Chat) handleStopwatchTick() tea.Cmd {
	if !c.waiting {
		return nil
	}
	c.spinner.advance()
	c.updateContent()
	return StopwatchTick()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if _, ok := msg.(StopwatchTickMsg); ok {
		return c, c.handleStopwatchTick()
	}

	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey && c.focused {
		switch keyMsg.String() {
		case keys.PgUp, keys.PgDown, keys.Home, keys.End, keys.CtrlU, keys.CtrlD,
			"ctrl+up", "ctrl+down":
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		case "[", "]":
			if c.GetInput() == "" && !c.IsWelcome() {
				if keyMsg.String() == "[" {
					c.MoveReplyCursor(-1)
				} else {
					c.MoveReplyCursor(1)
				}
				return c, nil
			}
		case keys.Up, keys.Down:
			if c.IsWelcome() && c.GetInput() == "" {
				if keyMsg.String() == keys.Up {
					c.MoveExampleCursor(-1)
				} else {
					c.MoveExampleCursor(1)
				}
				return c, nil
			}
		}

		// A locked composer swallows typing
		if c.locked {
			return c, nil
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	// Non-key events (mouse wheel, resize) go to the viewport
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	threadHeight := c.height - InputTotalHeight
	thread := panelStyle.Width(c.width).Height(threadHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	switch {
	case c.locked:
		inputStyle = ChatInputLockedStyle
	case c.focused:
		inputStyle = ChatInputFocusedStyle
	}
	composer := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, thread, composer)
}
