package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const (
	// BrandName is shown at the left edge of the header
	BrandName = "ChatGPT"
	// ModelName is shown next to the brand, muted
	ModelName = "GPT-3.5"
)

// Header represents the top header bar
type Header struct {
	width     int
	chatTitle string
	pending   bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetChatTitle sets the title of the active chat
func (h *Header) SetChatTitle(title string) {
	h.chatTitle = title
}

// SetPending marks the active chat as waiting on a reply
func (h *Header) SetPending(pending bool) {
	h.pending = pending
}

// View renders the header
func (h *Header) View() string {
	left := " " + BrandName + " " + ModelName
	right := ""
	if h.chatTitle != "" {
		right = h.chatTitle
		if h.pending {
			right += " …"
		}
		right += " "
	}

	room := h.width - runewidth.StringWidth(left) - 1
	if runewidth.StringWidth(right) > room {
		right = runewidth.Truncate(right, max(room, 0), "… ")
	}

	padding := max(h.width-runewidth.StringWidth(left)-runewidth.StringWidth(right), 0)
	return h.renderGradient(left + strings.Repeat(" ", padding) + right)
}

// parseHexColor parses a hex color string (e.g., "#10A37F") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient paints content over a background that fades from the
// theme's primary color into the main background. The brand is bold and the
// model name muted.
func (h *Header) renderGradient(content string) string {
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	brandEnd := 1 + len([]rune(BrandName))
	modelEnd := brandEnd + 1 + len([]rune(ModelName))

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < brandEnd)
		if i > brandEnd && i < modelEnd {
			style = style.Foreground(mutedColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
