package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/zhubert/chatclone/internal/session"
)

// Welcome screen copy
var (
	WelcomeExamples = []string{
		"Explain quantum computing in simple terms",
		"Got any creative ideas for a 10 year old's birthday?",
		"How do I make an HTTP request in Javascript?",
	}

	welcomeCapabilities = []string{
		"Remembers what user said earlier in the conversation",
		"Allows user to provide follow-up corrections",
		"Trained to decline inappropriate requests",
	}

	welcomeLimitations = []string{
		"May occasionally generate incorrect information",
		"May occasionally produce harmful instructions or biased content",
		"Limited knowledge of world and events after 2021",
	}
)

// welcomeColumnsMinWidth is the narrowest thread that still fits three columns.
const welcomeColumnsMinWidth = 90

// Compiled regex patterns for markdown parsing
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	underscoreItalic  = regexp.MustCompile(`(^|[^a-zA-Z0-9_])_([^_]+)_([^a-zA-Z0-9_]|$)`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	numberedPattern   = regexp.MustCompile(`^(\d{1,3})\. (.*)$`)
)

// highlightCode applies syntax highlighting to code using chroma and the
// active theme's code style
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderInlineMarkdown applies inline formatting (bold, italic, code, links) to a line
func renderInlineMarkdown(line string) string {
	// Code spans are swapped for placeholders so nothing inside them is styled.
	var codeSpans []string
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		codeSpans = append(codeSpans, MarkdownInlineCodeStyle.Render(code))
		return fmt.Sprintf("\x00CODE%d\x00", len(codeSpans)-1)
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return MarkdownBoldStyle.Render(boldPattern.FindStringSubmatch(match)[1])
	})

	// Underscores inside identifiers like foo_bar_baz are left alone.
	line = underscoreItalic.ReplaceAllStringFunc(line, func(match string) string {
		m := underscoreItalic.FindStringSubmatch(match)
		return m[1] + MarkdownItalicStyle.Render(m[2]) + m[3]
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		return MarkdownLinkStyle.Render(parts[1]) + " (" + MarkdownLinkStyle.Render(parts[2]) + ")"
	})

	for i, rendered := range codeSpans {
		line = strings.Replace(line, fmt.Sprintf("\x00CODE%d\x00", i), rendered, 1)
	}

	return line
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// indentContinuation prefixes every line after the first with indent.
func indentContinuation(text, indent string) string {
	return strings.ReplaceAll(text, "\n", "\n"+indent)
}

// renderMarkdownLine renders a single line with markdown formatting
func renderMarkdownLine(line string, width int) string {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "#### "):
		return MarkdownH4Style.Render(strings.TrimPrefix(trimmed, "#### "))
	case strings.HasPrefix(trimmed, "### "):
		return MarkdownH3Style.Render(strings.TrimPrefix(trimmed, "### "))
	case strings.HasPrefix(trimmed, "## "):
		return MarkdownH2Style.Render(strings.TrimPrefix(trimmed, "## "))
	case strings.HasPrefix(trimmed, "# "):
		return MarkdownH1Style.Render(strings.TrimPrefix(trimmed, "# "))
	case trimmed == "---" || trimmed == "***" || trimmed == "___":
		return MarkdownHRStyle.Render(strings.Repeat("─", min(width, 32)))
	case strings.HasPrefix(trimmed, "> "):
		content := strings.TrimPrefix(trimmed, "> ")
		return MarkdownBlockquoteStyle.Render(wrapText(renderInlineMarkdown(content), width-4))
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		bullet := MarkdownListBulletStyle.Render("•")
		wrapped := wrapText(renderInlineMarkdown(trimmed[2:]), width-6)
		return "  " + bullet + " " + indentContinuation(wrapped, "    ")
	}

	if m := numberedPattern.FindStringSubmatch(trimmed); m != nil {
		number := MarkdownListBulletStyle.Render(m[1] + ".")
		wrapped := wrapText(renderInlineMarkdown(m[2]), width-6)
		return "  " + number + " " + indentContinuation(wrapped, strings.Repeat(" ", len(m[1])+4))
	}

	return wrapText(renderInlineMarkdown(line), width)
}

// renderMarkdown renders markdown content with syntax-highlighted code blocks
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result strings.Builder
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlock strings.Builder

	flushCode := func() {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(highlightCode(codeBlock.String(), codeBlockLang))
		result.WriteString("\n")
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				codeBlock.Reset()
			} else {
				inCodeBlock = false
				flushCode()
				codeBlockLang = ""
			}
			continue
		}

		if inCodeBlock {
			if codeBlock.Len() > 0 {
				codeBlock.WriteString("\n")
			}
			codeBlock.WriteString(line)
			continue
		}

		result.WriteString(renderMarkdownLine(line, width))
		result.WriteString("\n")
	}

	// An unterminated fence still shows its code.
	if inCodeBlock {
		flushCode()
	}

	return strings.TrimRight(result.String(), "\n")
}

// roleLabel returns the display name and style for a message author.
func roleLabel(role session.Role) (string, lipgloss.Style) {
	if role == session.RoleUser {
		return "You", ChatUserStyle
	}
	return BrandName, ChatAssistantStyle
}

// selectedMarker tags the reply picked with the message cursor.
const selectedMarker = "▶ "

// renderMessage renders one message with its author label and relative time.
// A selected message gets a marker in front of its label.
func renderMessage(msg session.Message, width int, now time.Time, selected bool) string {
	name, style := roleLabel(msg.Role)

	var sb strings.Builder
	if selected {
		sb.WriteString(ChatSelectedStyle.Render(selectedMarker))
	}
	sb.WriteString(style.Render(name))
	if !msg.Timestamp.IsZero() {
		sb.WriteString(ChatTimestampStyle.Render("  " + humanize.RelTime(msg.Timestamp, now, "ago", "from now")))
	}
	if selected {
		sb.WriteString(ChatSelectedStyle.Render("  (selected)"))
	}
	sb.WriteString("\n")
	sb.WriteString(renderMarkdown(strings.TrimSpace(msg.Content), width))
	return sb.String()
}

// renderTypingIndicator renders the assistant label followed by the spinner,
// the thinking verb and the elapsed time.
func renderTypingIndicator(verb string, frameIdx int, elapsed time.Duration) string {
	stopwatch := lipgloss.NewStyle().Foreground(ColorTextMuted).Render("(" + formatElapsed(elapsed) + ")")
	return ChatAssistantStyle.Render(BrandName) + "\n" + renderSpinner(verb, frameIdx) + " " + stopwatch
}

// renderWelcome renders the empty-chat screen. cursor is the highlighted
// example, or -1 for none.
func renderWelcome(width, cursor int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	title := WelcomeTitleStyle.Width(width).Align(lipgloss.Center).Render(BrandName)

	examples := make([]string, len(WelcomeExamples))
	for i, ex := range WelcomeExamples {
		examples[i] = fmt.Sprintf("%q →", ex)
	}

	if width >= welcomeColumnsMinWidth {
		colWidth := (width - 4) / 3
		columns := lipgloss.JoinHorizontal(lipgloss.Top,
			renderWelcomeColumn("☀ Examples", examples, colWidth, true, cursor), "  ",
			renderWelcomeColumn("⚡ Capabilities", welcomeCapabilities, colWidth, false, -1), "  ",
			renderWelcomeColumn("⚠ Limitations", welcomeLimitations, colWidth, false, -1),
		)
		return lipgloss.JoinVertical(lipgloss.Center, title, columns)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		renderWelcomeColumn("☀ Examples", examples, width, true, cursor),
		"",
		renderWelcomeColumn("⚡ Capabilities", welcomeCapabilities, width, false, -1),
		"",
		renderWelcomeColumn("⚠ Limitations", welcomeLimitations, width, false, -1),
	)
}

// renderWelcomeColumn renders a titled column of boxed items. Selectable
// columns highlight the item at cursor.
func renderWelcomeColumn(heading string, items []string, width int, selectable bool, cursor int) string {
	rows := []string{WelcomeColumnTitleStyle.Width(width).Align(lipgloss.Center).Render(heading)}
	for i, item := range items {
		style := WelcomeItemStyle
		if selectable {
			style = WelcomeExampleStyle
			if i == cursor {
				style = WelcomeExampleSelectedStyle
			}
		}
		rows = append(rows, style.Width(width).Render(item))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
