package ui

import (
	"fmt"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// StopwatchTickMsg is sent to update the animated typing indicator
type StopwatchTickMsg time.Time

// stopwatchInterval is the typing indicator frame period.
const stopwatchInterval = 200 * time.Millisecond

// thinkingVerbs cycle while a reply is pending
var thinkingVerbs = []string{
	"Thinking",
	"Reasoning",
	"Pondering",
	"Contemplating",
	"Musing",
	"Considering",
	"Reflecting",
	"Composing",
	"Drafting",
	"Formulating",
	"Brainstorming",
	"Typing",
}

// randomThinkingVerb returns a random verb from the list
func randomThinkingVerb() string {
	return thinkingVerbs[rand.IntN(len(thinkingVerbs))]
}

// spinnerFrames are the characters used for the shimmering spinner animation
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// spinner tracks the current frame of a spinner animation.
type spinner struct {
	Verb string
	Idx  int
}

func (s *spinner) reset() {
	s.Verb = randomThinkingVerb()
	s.Idx = 0
}

func (s *spinner) advance() {
	s.Idx = (s.Idx + 1) % len(spinnerFrames)
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(stopwatchInterval, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// renderSpinner renders the spinner character followed by the verb.
func renderSpinner(verb string, frameIdx int) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]

	spinnerStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	verbStyle := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	return spinnerStyle.Render(frame) + " " + verbStyle.Render(verb+"...")
}

// formatElapsed formats a duration for display (e.g., "12s", "1m30s")
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%ds", secs/60, secs%60)
}
