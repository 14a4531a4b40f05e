package session

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// PlaceholderTitle names a chat that has no messages yet.
	PlaceholderTitle = "New chat"

	// MaxDerivedTitleLength is how many user-perceived characters of the
	// first message become the chat title.
	MaxDerivedTitleLength = 30

	titleEllipsis = "..."
)

// DeriveTitle builds a chat title from the first message of a chat.
// Content longer than MaxDerivedTitleLength grapheme clusters is cut and
// suffixed with "...".
func DeriveTitle(content string) string {
	content = strings.TrimSpace(content)
	if uniseg.GraphemeClusterCount(content) <= MaxDerivedTitleLength {
		return content
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(content)
	for n := 0; n < MaxDerivedTitleLength && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString(titleEllipsis)
	return b.String()
}
