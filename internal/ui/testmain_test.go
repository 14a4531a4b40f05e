package ui

import (
	"os"
	"testing"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/logger"
)

func TestMain(m *testing.M) {
	// Keep test runs out of /tmp/chatclone-debug.log
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

// keyPress builds the key event bubbletea delivers for a named key or a
// single printable character.
func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	}
	r, _ := utf8.DecodeRuneInString(s)
	return tea.KeyPressMsg{Code: r, Text: s}
}

// typeText sends each rune of text as a key press.
func typeText(update func(tea.Msg), text string) {
	for _, r := range text {
		update(keyPress(string(r)))
	}
}
