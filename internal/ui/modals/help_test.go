package modals

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func testSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Navigation",
			Shortcuts: []HelpShortcut{
				{Key: "tab", Desc: "switch pane"},
				{Key: "j/k", Desc: "move between chats"},
			},
		},
		{
			Title: "Chats",
			Shortcuts: []HelpShortcut{
				{Key: "n", Desc: "new chat"},
			},
		},
	}
}

func TestNewHelpStateFromSections_SelectsFirstShortcut(t *testing.T) {
	s := NewHelpStateFromSections(testSections())

	got := s.GetSelectedShortcut()
	if got == nil || got.Key != "tab" {
		t.Fatalf("GetSelectedShortcut() = %+v, want tab", got)
	}
}

func TestHelpState_NavigationSkipsNothingAndStopsAtEnd(t *testing.T) {
	s := NewHelpStateFromSections(testSections())

	s.Update(keyPress("down"))
	if got := s.GetSelectedShortcut(); got == nil || got.Key != "j/k" {
		t.Fatalf("after down selected %+v, want j/k", got)
	}

	// Next row is the "Chats" header, which has no shortcut.
	s.Update(keyPress("down"))
	if got := s.GetSelectedShortcut(); got != nil {
		t.Errorf("section header should not yield a shortcut, got %+v", got)
	}

	s.Update(keyPress("down"))
	if got := s.GetSelectedShortcut(); got == nil || got.Key != "n" {
		t.Errorf("after third down selected %+v, want n", got)
	}
}

func TestHelpState_Render(t *testing.T) {
	s := NewHelpStateFromSections(testSections())
	s.SetSize(60, 20)

	view := ansi.Strip(s.Render())
	for _, want := range []string{"Keyboard Shortcuts", "Navigation", "switch pane", "new chat"} {
		if !strings.Contains(view, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
	if s.IsFiltering() {
		t.Error("help should not start in filter mode")
	}
}

func TestHelpState_EmptySections(t *testing.T) {
	s := NewHelpStateFromSections(nil)
	if got := s.GetSelectedShortcut(); got != nil {
		t.Errorf("GetSelectedShortcut() = %+v, want nil", got)
	}
}
