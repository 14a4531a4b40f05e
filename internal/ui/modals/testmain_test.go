package modals

import (
	"os"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/chatclone/internal/logger"
)

func TestMain(m *testing.M) {
	// Keep test runs out of /tmp/chatclone-debug.log
	logger.Reset()
	logger.Init(os.DevNull)

	SetStyles(
		lipgloss.NewStyle().Bold(true),
		lipgloss.NewStyle().Italic(true),
		lipgloss.NewStyle(),
		lipgloss.NewStyle().Bold(true),
		lipgloss.NewStyle(),
		lipgloss.Color("#10A37F"),
		lipgloss.Color("#19C37D"),
		lipgloss.Color("#ECECF1"),
		lipgloss.Color("#8E8EA0"),
		lipgloss.Color("#FFFFFF"),
		lipgloss.Color("#F59E0B"),
		lipgloss.Color("#EF4146"),
		50, 120, 80,
	)
	ModalWidthWide = 100

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}
