package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/zhubert/chatclone/internal/keys"
	"github.com/zhubert/chatclone/internal/session"
)

// sidebarSpinnerHoldTimes defines how long each frame should be held (in ticks)
// First and last frames hold longer for a "breathing" effect
var sidebarSpinnerHoldTimes = []int{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3}

// sidebarTickInterval is the sidebar spinner frame period
const sidebarTickInterval = 300 * time.Millisecond

// SidebarTickMsg is sent to advance the spinner animation
type SidebarTickMsg time.Time

// SidebarTick returns a command that sends a tick message after a delay
func SidebarTick() tea.Cmd {
	return tea.Tick(sidebarTickInterval, func(t time.Time) tea.Msg {
		return SidebarTickMsg(t)
	})
}

// chatTitles implements fuzzy.Source over chat summaries
type chatTitles []session.ChatSummary

func (c chatTitles) String(i int) string { return c[i].Title }
func (c chatTitles) Len() int            { return len(c) }

// Sidebar represents the left panel with the chat list
type Sidebar struct {
	chats        []session.ChatSummary
	filtered     []session.ChatSummary // chats matching the search query, best match first
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int

	spinnerFrame int
	spinnerTick  int

	searchMode  bool
	searchInput textinput.Model

	now func() time.Time
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "search chats..."
	ti.CharLimit = SidebarSearchCharLimit

	return &Sidebar{
		searchInput: ti,
		now:         time.Now,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height

	ctx := GetViewContext()
	ctx.Log("Sidebar.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"innerWidth", ctx.InnerWidth(width),
		"innerHeight", ctx.InnerHeight(height),
	)
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetChats replaces the chat list. The cursor stays on the same chat when it
// still exists.
func (s *Sidebar) SetChats(chats []session.ChatSummary) {
	selectedID := s.SelectedID()
	s.chats = chats
	if s.searchMode {
		s.applyFilter(s.searchInput.Value())
	}
	if !s.SelectChat(selectedID) {
		s.clampSelection()
	}
}

// Chats returns the chat list in store order
func (s *Sidebar) Chats() []session.ChatSummary {
	return s.chats
}

// SelectChat moves the cursor to the chat with the given id. It reports
// whether the chat is visible.
func (s *Sidebar) SelectChat(id string) bool {
	if id == "" {
		return false
	}
	for i, c := range s.visibleChats() {
		if c.ID == id {
			s.selectedIdx = i
			return true
		}
	}
	return false
}

// SelectedID returns the id of the chat under the cursor, or "" when the
// list is empty.
func (s *Sidebar) SelectedID() string {
	if c, ok := s.SelectedChat(); ok {
		return c.ID
	}
	return ""
}

// SelectedChat returns the chat under the cursor
func (s *Sidebar) SelectedChat() (session.ChatSummary, bool) {
	visible := s.visibleChats()
	if s.selectedIdx < 0 || s.selectedIdx >= len(visible) {
		return session.ChatSummary{}, false
	}
	return visible[s.selectedIdx], true
}

// HasPending reports whether any chat is waiting for a reply
func (s *Sidebar) HasPending() bool {
	for _, c := range s.chats {
		if c.Pending {
			return true
		}
	}
	return false
}

func (s *Sidebar) visibleChats() []session.ChatSummary {
	if s.searchMode && s.searchInput.Value() != "" {
		return s.filtered
	}
	return s.chats
}

func (s *Sidebar) clampSelection() {
	n := len(s.visibleChats())
	s.selectedIdx = max(0, min(s.selectedIdx, n-1))
}

// EnterSearchMode activates search mode
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.applyFilter("")
	return s.searchInput.Focus()
}

// ExitSearchMode deactivates search mode and clears the filter. The cursor
// stays on the chat it was on.
func (s *Sidebar) ExitSearchMode() {
	selectedID := s.SelectedID()
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
	s.filtered = nil
	if !s.SelectChat(selectedID) {
		s.clampSelection()
	}
}

// IsSearchMode returns whether search mode is active
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// GetSearchQuery returns the current search query
func (s *Sidebar) GetSearchQuery() string {
	return s.searchInput.Value()
}

// applyFilter ranks chats by fuzzy match of their titles against the query
func (s *Sidebar) applyFilter(query string) {
	s.filtered = nil
	if query != "" {
		for _, m := range fuzzy.FindFrom(query, chatTitles(s.chats)) {
			s.filtered = append(s.filtered, s.chats[m.Index])
		}
	}
	s.selectedIdx = 0
	s.scrollOffset = 0
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case SidebarTickMsg:
		if !s.HasPending() {
			return s, nil
		}
		// Advance the spinner with easing (some frames hold longer)
		s.spinnerTick++
		holdTime := sidebarSpinnerHoldTimes[s.spinnerFrame%len(sidebarSpinnerHoldTimes)]
		if s.spinnerTick >= holdTime {
			s.spinnerTick = 0
			s.spinnerFrame = (s.spinnerFrame + 1) % len(spinnerFrames)
		}
		return s, SidebarTick()

	case tea.KeyPressMsg:
		if !s.focused {
			return s, nil
		}

		if s.searchMode {
			switch msg.String() {
			case keys.Up:
				s.moveSelection(-1)
				return s, nil
			case keys.Down:
				s.moveSelection(1)
				return s, nil
			default:
				var cmd tea.Cmd
				s.searchInput, cmd = s.searchInput.Update(msg)
				s.applyFilter(s.searchInput.Value())
				return s, cmd
			}
		}

		switch msg.String() {
		case keys.Up, "k":
			s.moveSelection(-1)
		case keys.Down, "j":
			s.moveSelection(1)
		case keys.Home, "g":
			s.selectedIdx = 0
		case keys.End, "G":
			s.selectedIdx = max(len(s.visibleChats())-1, 0)
		}
	}

	return s, nil
}

func (s *Sidebar) moveSelection(delta int) {
	next := s.selectedIdx + delta
	if next >= 0 && next < len(s.visibleChats()) {
		s.selectedIdx = next
	}
}

// relativeDate labels a chat's last activity the way the chat list groups it.
func relativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.In(t.Location()).Date()
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(day).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// renderRow renders one chat row: a spinner or cursor marker, the title
// truncated to fit, and the relative date on the right.
func (s *Sidebar) renderRow(c session.ChatSummary, width int, selected bool) string {
	style := SidebarItemStyle
	if selected {
		style = SidebarSelectedStyle
	}
	avail := width - style.GetHorizontalPadding() - 2

	marker := "  "
	if selected {
		marker = "> "
	}
	if c.Pending {
		marker = SidebarPendingStyle.Render(spinnerFrames[s.spinnerFrame%len(spinnerFrames)]) + " "
	}

	date := relativeDate(c.UpdatedAt, s.now())
	titleWidth := avail - runewidth.StringWidth(date) - 1
	if titleWidth < 4 {
		date = ""
		titleWidth = avail
	}
	title := runewidth.Truncate(c.Title, max(titleWidth, 1), "…")

	row := marker + title
	if date != "" {
		gap := max(avail-runewidth.StringWidth(title)-runewidth.StringWidth(date), 1)
		row += strings.Repeat(" ", gap) + lipgloss.NewStyle().Foreground(ColorTextMuted).Render(date)
	}
	return style.Width(width).Render(row)
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)

	var lines []string
	if s.searchMode {
		searchStyle := lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
		s.searchInput.SetWidth(max(innerWidth-3, 1)) // Leave room for "/ "
		lines = append(lines, searchStyle.Render("/")+" "+s.searchInput.View())
		innerHeight--
	}

	visible := s.visibleChats()
	if len(visible) == 0 {
		emptyMsg := "No chats."
		if s.searchMode && s.searchInput.Value() != "" {
			emptyMsg = "No matches."
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render(emptyMsg))
	} else {
		// Keep the selected row on screen
		visibleHeight := max(innerHeight, 1)
		if s.selectedIdx < s.scrollOffset {
			s.scrollOffset = s.selectedIdx
		} else if s.selectedIdx >= s.scrollOffset+visibleHeight {
			s.scrollOffset = s.selectedIdx - visibleHeight + 1
		}
		s.scrollOffset = max(0, min(s.scrollOffset, len(visible)-visibleHeight))

		end := min(s.scrollOffset+visibleHeight, len(visible))
		for i := s.scrollOffset; i < end; i++ {
			lines = append(lines, s.renderRow(visible[i], innerWidth, i == s.selectedIdx))
		}
	}

	return style.Width(s.width).Height(s.height).Render(strings.Join(lines, "\n"))
}
