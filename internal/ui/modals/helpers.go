package modals

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderSelectableList renders items one per line, highlighting selectedIndex.
func RenderSelectableList(items []string, selectedIndex int) string {
	var result strings.Builder
	for i, item := range items {
		style := SidebarItemStyle
		prefix := "  "
		if i == selectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return result.String()
}

// TruncateString shortens s to maxWidth terminal cells, ending in an ellipsis.
func TruncateString(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}
