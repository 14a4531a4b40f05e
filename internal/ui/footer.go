package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Disclaimer is shown under the conversation at all times.
const Disclaimer = "ChatGPT can make mistakes. Consider checking important information."

// DefaultFlashDuration is how long a flash message stays visible.
const DefaultFlashDuration = 3 * time.Second

// flashTickInterval is how often expired flash messages are checked.
const flashTickInterval = 500 * time.Millisecond

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the icon and color of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

func (t FlashType) icon() string {
	switch t {
	case FlashSuccess:
		return "✓"
	case FlashWarning:
		return "⚠"
	case FlashError:
		return "✕"
	default:
		return "ℹ"
	}
}

func (t FlashType) style() lipgloss.Style {
	switch t {
	case FlashSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	case FlashWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case FlashError:
		return lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorInfo)
	}
}

// FlashMessage is a transient status line that replaces the key hints.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) >= m.Duration
}

// FlashTickMsg asks the app to drop expired flash messages.
type FlashTickMsg time.Time

// FlashTick schedules the next flash expiry check.
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer renders the disclaimer line and the key hint line.
type Footer struct {
	width          int
	sidebarFocused bool
	searching      bool
	locked         bool
	welcome        bool
	kittyKeyboard  bool
	flashMessage   *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{sidebarFocused: true}
}

// SetContext updates the state that decides which hints are shown.
func (f *Footer) SetContext(sidebarFocused, searching, locked, welcome, kittyKeyboard bool) {
	f.sidebarFocused = sidebarFocused
	f.searching = searching
	f.locked = locked
	f.welcome = welcome
	f.kittyKeyboard = kittyKeyboard
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows text for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, t FlashType) {
	f.SetFlashWithDuration(text, t, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for the given duration.
func (f *Footer) SetFlashWithDuration(text string, t FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      t,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is set.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// FlashText returns the current flash text, or "" when none is set.
func (f *Footer) FlashText() string {
	if f.flashMessage == nil {
		return ""
	}
	return f.flashMessage.Text
}

// ClearIfExpired drops an expired flash message and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the hints for the current context.
func (f *Footer) Bindings() []KeyBinding {
	newline := "opt+enter"
	if f.kittyKeyboard {
		newline = "shift+enter"
	}

	switch {
	case f.sidebarFocused && f.searching:
		return []KeyBinding{
			{Key: "type", Desc: "filter"},
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "esc", Desc: "cancel"},
		}
	case f.sidebarFocused:
		return []KeyBinding{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "n", Desc: "new chat"},
			{Key: "e", Desc: "rename"},
			{Key: "d", Desc: "delete"},
			{Key: "/", Desc: "search"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case f.locked:
		return []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+n", Desc: "new chat"},
		}
	case f.welcome:
		return []KeyBinding{
			{Key: "↑/↓", Desc: "pick example"},
			{Key: "enter", Desc: "send"},
			{Key: "tab", Desc: "switch pane"},
		}
	default:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: newline, Desc: "newline"},
			{Key: "ctrl+r", Desc: "regenerate"},
			{Key: "ctrl+y", Desc: "copy"},
			{Key: "[/]", Desc: "pick reply"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "tab", Desc: "switch pane"},
		}
	}
}

// View renders the footer
func (f *Footer) View() string {
	text := Disclaimer
	if f.width > 0 {
		text = ansi.Truncate(text, f.width, "…")
	}
	disclaimer := FooterDisclaimerStyle.
		Width(f.width).
		Align(lipgloss.Center).
		Render(text)

	if f.flashMessage != nil {
		msg := f.flashMessage.Type.style().Render(f.flashMessage.Type.icon() + " " + f.flashMessage.Text)
		return lipgloss.JoinVertical(lipgloss.Left, disclaimer, f.line(msg))
	}

	var parts []string
	for _, b := range f.Bindings() {
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}
	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	return lipgloss.JoinVertical(lipgloss.Left, disclaimer, f.line(strings.Join(parts, sep)))
}

// line renders content on a single footer row, cutting what does not fit.
func (f *Footer) line(content string) string {
	if f.width > InputPaddingWidth {
		content = ansi.Truncate(content, f.width-InputPaddingWidth, "…")
	}
	return FooterStyle.Width(f.width).Render(content)
}
