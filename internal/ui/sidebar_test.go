package ui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/chatclone/internal/session"
)

var sidebarTestNow = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func testSummaries() []session.ChatSummary {
	return []session.ChatSummary{
		{ID: "a", Title: "Quantum computing", UpdatedAt: sidebarTestNow},
		{ID: "b", Title: "Birthday ideas", UpdatedAt: sidebarTestNow.Add(-24 * time.Hour)},
		{ID: "c", Title: "HTTP requests", UpdatedAt: sidebarTestNow.Add(-72 * time.Hour)},
	}
}

func newTestSidebar(t *testing.T) *Sidebar {
	t.Helper()
	s := NewSidebar()
	s.now = func() time.Time { return sidebarTestNow }
	s.SetSize(40, 12)
	s.SetFocused(true)
	s.SetChats(testSummaries())
	return s
}

func TestRelativeDate(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"earlier today", sidebarTestNow.Add(-3 * time.Hour), "Today"},
		{"late yesterday", time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC), "Yesterday"},
		{"three days", time.Date(2024, 3, 7, 8, 0, 0, 0, time.UTC), "3 days ago"},
		{"six days", time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), "6 days ago"},
		{"a week or more", time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), "Feb 1, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relativeDate(tt.t, sidebarTestNow); got != tt.want {
				t.Errorf("relativeDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSidebar_Navigation(t *testing.T) {
	s := newTestSidebar(t)

	if s.SelectedID() != "a" {
		t.Fatalf("SelectedID() = %q, want %q", s.SelectedID(), "a")
	}

	tests := []struct {
		key  string
		want string
	}{
		{"j", "b"},
		{"down", "c"},
		{"j", "c"},
		{"k", "b"},
		{"up", "a"},
		{"up", "a"},
		{"G", "c"},
		{"g", "a"},
	}
	for _, tt := range tests {
		s.Update(keyPress(tt.key))
		if got := s.SelectedID(); got != tt.want {
			t.Errorf("after %q SelectedID() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestSidebar_IgnoresKeysWhenBlurred(t *testing.T) {
	s := newTestSidebar(t)
	s.SetFocused(false)

	s.Update(keyPress("j"))

	if s.SelectedID() != "a" {
		t.Errorf("blurred sidebar moved to %q", s.SelectedID())
	}
}

func TestSidebar_SetChatsKeepsSelection(t *testing.T) {
	s := newTestSidebar(t)
	s.SelectChat("b")

	// A new chat is inserted at the front
	chats := append([]session.ChatSummary{{ID: "d", Title: session.PlaceholderTitle, UpdatedAt: sidebarTestNow}}, testSummaries()...)
	s.SetChats(chats)

	if s.SelectedID() != "b" {
		t.Errorf("SelectedID() = %q after refresh, want %q", s.SelectedID(), "b")
	}

	// The selected chat is deleted
	s.SetChats(chats[:2])
	if s.SelectedID() != "a" {
		t.Errorf("SelectedID() = %q after deletion, want %q", s.SelectedID(), "a")
	}
}

func TestSidebar_SelectChatUnknown(t *testing.T) {
	s := newTestSidebar(t)

	if s.SelectChat("missing") {
		t.Error("SelectChat(missing) = true")
	}
	if s.SelectChat("") {
		t.Error("SelectChat(\"\") = true")
	}
	if s.SelectedID() != "a" {
		t.Errorf("SelectedID() = %q, want unchanged", s.SelectedID())
	}
}

func TestSidebar_EmptyList(t *testing.T) {
	s := NewSidebar()
	s.SetSize(40, 12)

	if s.SelectedID() != "" {
		t.Errorf("SelectedID() = %q on empty list", s.SelectedID())
	}
	if view := ansi.Strip(s.View()); !strings.Contains(view, "No chats.") {
		t.Errorf("empty sidebar view = %q", view)
	}
}

func TestSidebar_Search(t *testing.T) {
	s := newTestSidebar(t)
	update := func(m tea.Msg) { s.Update(m) }

	s.EnterSearchMode()
	if !s.IsSearchMode() {
		t.Fatal("IsSearchMode() = false after EnterSearchMode")
	}

	typeText(update, "ideas")
	if s.GetSearchQuery() != "ideas" {
		t.Fatalf("GetSearchQuery() = %q", s.GetSearchQuery())
	}
	if s.SelectedID() != "b" {
		t.Errorf("SelectedID() = %q, want best match %q", s.SelectedID(), "b")
	}

	view := ansi.Strip(s.View())
	if !strings.Contains(view, "Birthday ideas") || strings.Contains(view, "Quantum computing") {
		t.Errorf("filtered view should show only the match:\n%s", view)
	}

	// Exiting keeps the cursor on the chosen chat
	s.ExitSearchMode()
	if s.IsSearchMode() || s.GetSearchQuery() != "" {
		t.Error("ExitSearchMode should clear the query")
	}
	if s.SelectedID() != "b" {
		t.Errorf("SelectedID() = %q after exit, want %q", s.SelectedID(), "b")
	}
}

func TestSidebar_SearchNoMatches(t *testing.T) {
	s := newTestSidebar(t)
	update := func(m tea.Msg) { s.Update(m) }

	s.EnterSearchMode()
	typeText(update, "zzz")

	if s.SelectedID() != "" {
		t.Errorf("SelectedID() = %q with no matches", s.SelectedID())
	}
	if view := ansi.Strip(s.View()); !strings.Contains(view, "No matches.") {
		t.Errorf("view should report no matches:\n%s", view)
	}
}

func TestSidebar_View(t *testing.T) {
	s := newTestSidebar(t)

	view := ansi.Strip(s.View())
	for _, want := range []string{"Quantum computing", "Today", "Yesterday", "3 days ago"} {
		if !strings.Contains(view, want) {
			t.Errorf("sidebar view missing %q:\n%s", want, view)
		}
	}
}

func TestSidebar_TruncatesLongTitles(t *testing.T) {
	s := NewSidebar()
	s.now = func() time.Time { return sidebarTestNow }
	s.SetSize(MinSidebarWidth, 8)
	s.SetChats([]session.ChatSummary{
		{ID: "a", Title: strings.Repeat("long title ", 10), UpdatedAt: sidebarTestNow},
	})

	for _, line := range strings.Split(s.View(), "\n") {
		if w := ansi.StringWidth(line); w > MinSidebarWidth {
			t.Errorf("line width %d exceeds panel width %d: %q", w, MinSidebarWidth, ansi.Strip(line))
		}
	}
}

func TestSidebar_PendingSpinner(t *testing.T) {
	s := newTestSidebar(t)

	if _, cmd := s.Update(SidebarTickMsg(sidebarTestNow)); cmd != nil {
		t.Error("ticks should stop when nothing is pending")
	}

	chats := testSummaries()
	chats[1].Pending = true
	s.SetChats(chats)

	if !s.HasPending() {
		t.Fatal("HasPending() = false")
	}
	if _, cmd := s.Update(SidebarTickMsg(sidebarTestNow)); cmd == nil {
		t.Error("ticks should continue while a chat is pending")
	}

	view := ansi.Strip(s.View())
	if !strings.Contains(view, spinnerFrames[s.spinnerFrame]+" Birthday ideas") {
		t.Errorf("pending row should start with the spinner:\n%s", view)
	}
}
