// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI.
package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/zhubert/chatclone/internal/ui/modals"
)

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (focus, highlights, the send button)
	Primary string
	// Secondary is used for assistant labels and key hints
	Secondary string

	// Background colors
	Bg         string // Main conversation background
	BgSidebar  string // Chat list background (defaults to Bg if empty)
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string
	TextMuted   string
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	User      string
	Assistant string
	Warning   string
	Error     string
	Info      string
	Success   string

	// Border colors
	Border      string
	BorderFocus string // defaults to Primary if empty

	// Markdown colors
	MarkdownH1       string
	MarkdownH2       string
	MarkdownH3       string
	MarkdownCode     string
	MarkdownCodeBg   string
	MarkdownLink     string
	MarkdownListItem string

	// CodeStyle names the chroma style used for fenced code blocks
	CodeStyle string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// GetBgSidebar returns the sidebar background, defaulting to Bg
func (t Theme) GetBgSidebar() string {
	if t.BgSidebar != "" {
		return t.BgSidebar
	}
	return t.Bg
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeChatGPT      ThemeName = "chatgpt"
	ThemeChatGPTLight ThemeName = "chatgpt-light"
	ThemeNord         ThemeName = "nord"
	ThemeDracula      ThemeName = "dracula"
	ThemeGruvbox      ThemeName = "gruvbox"
	ThemeTokyoNight   ThemeName = "tokyo-night"
	ThemeCatppuccin   ThemeName = "catppuccin"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeChatGPT

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeChatGPT: {
		Name:             "ChatGPT",
		Primary:          "#10A37F",
		Secondary:        "#19C37D",
		Bg:               "#343541",
		BgSidebar:        "#202123",
		BgSelected:       "#343541",
		Text:             "#ECECF1",
		TextMuted:        "#8E8EA0",
		TextInverse:      "#FFFFFF",
		User:             "#ECECF1",
		Assistant:        "#19C37D",
		Warning:          "#F59E0B",
		Error:            "#EF4146",
		Info:             "#5436DA",
		Success:          "#10A37F",
		Border:           "#4D4D4F",
		MarkdownH1:       "#ECECF1",
		MarkdownH2:       "#D1D5DB",
		MarkdownH3:       "#19C37D",
		MarkdownCode:     "#E9950C",
		MarkdownCodeBg:   "#000000",
		MarkdownLink:     "#5436DA",
		MarkdownListItem: "#10A37F",
		CodeStyle:        "monokai",
	},
	ThemeChatGPTLight: {
		Name:             "ChatGPT Light",
		Primary:          "#10A37F",
		Secondary:        "#0E8C6D",
		Bg:               "#FFFFFF",
		BgSidebar:        "#F7F7F8",
		BgSelected:       "#ECECF1",
		Text:             "#343541",
		TextMuted:        "#6E6E80",
		TextInverse:      "#FFFFFF",
		User:             "#343541",
		Assistant:        "#0E8C6D",
		Warning:          "#D97706",
		Error:            "#DC2626",
		Info:             "#5436DA",
		Success:          "#10A37F",
		Border:           "#D9D9E3",
		MarkdownH1:       "#202123",
		MarkdownH2:       "#343541",
		MarkdownH3:       "#0E8C6D",
		MarkdownCode:     "#B45309",
		MarkdownCodeBg:   "#F3F4F6",
		MarkdownLink:     "#5436DA",
		MarkdownListItem: "#10A37F",
		CodeStyle:        "github",
	},
	ThemeNord: {
		Name:             "Nord",
		Primary:          "#88C0D0",
		Secondary:        "#81A1C1",
		Bg:               "#2E3440",
		BgSidebar:        "#242933",
		Text:             "#ECEFF4",
		TextMuted:        "#D8DEE9",
		TextInverse:      "#2E3440",
		User:             "#A3BE8C",
		Assistant:        "#88C0D0",
		Warning:          "#EBCB8B",
		Error:            "#BF616A",
		Info:             "#81A1C1",
		Success:          "#A3BE8C",
		Border:           "#4C566A",
		MarkdownH1:       "#88C0D0",
		MarkdownH2:       "#81A1C1",
		MarkdownH3:       "#5E81AC",
		MarkdownCode:     "#A3BE8C",
		MarkdownCodeBg:   "#242933",
		MarkdownLink:     "#88C0D0",
		MarkdownListItem: "#81A1C1",
		CodeStyle:        "nord",
	},
	ThemeDracula: {
		Name:             "Dracula",
		Primary:          "#BD93F9",
		Secondary:        "#8BE9FD",
		Bg:               "#282A36",
		BgSidebar:        "#21222C",
		Text:             "#F8F8F2",
		TextMuted:        "#6272A4",
		TextInverse:      "#282A36",
		User:             "#FF79C6",
		Assistant:        "#8BE9FD",
		Warning:          "#FFB86C",
		Error:            "#FF5555",
		Info:             "#8BE9FD",
		Success:          "#50FA7B",
		Border:           "#44475A",
		MarkdownH1:       "#BD93F9",
		MarkdownH2:       "#FF79C6",
		MarkdownH3:       "#8BE9FD",
		MarkdownCode:     "#50FA7B",
		MarkdownCodeBg:   "#21222C",
		MarkdownLink:     "#8BE9FD",
		MarkdownListItem: "#BD93F9",
		CodeStyle:        "dracula",
	},
	ThemeGruvbox: {
		Name:             "Gruvbox Dark",
		Primary:          "#FE8019",
		Secondary:        "#83A598",
		Bg:               "#282828",
		BgSidebar:        "#1D2021",
		Text:             "#EBDBB2",
		TextMuted:        "#A89984",
		TextInverse:      "#282828",
		User:             "#FABD2F",
		Assistant:        "#83A598",
		Warning:          "#FE8019",
		Error:            "#FB4934",
		Info:             "#83A598",
		Success:          "#B8BB26",
		Border:           "#504945",
		MarkdownH1:       "#FE8019",
		MarkdownH2:       "#FABD2F",
		MarkdownH3:       "#83A598",
		MarkdownCode:     "#B8BB26",
		MarkdownCodeBg:   "#1D2021",
		MarkdownLink:     "#83A598",
		MarkdownListItem: "#FE8019",
		CodeStyle:        "gruvbox",
	},
	ThemeTokyoNight: {
		Name:             "Tokyo Night",
		Primary:          "#7AA2F7",
		Secondary:        "#BB9AF7",
		Bg:               "#1A1B26",
		BgSidebar:        "#16161E",
		Text:             "#C0CAF5",
		TextMuted:        "#565F89",
		TextInverse:      "#1A1B26",
		User:             "#9ECE6A",
		Assistant:        "#7AA2F7",
		Warning:          "#E0AF68",
		Error:            "#F7768E",
		Info:             "#7DCFFF",
		Success:          "#9ECE6A",
		Border:           "#3B4261",
		MarkdownH1:       "#7AA2F7",
		MarkdownH2:       "#BB9AF7",
		MarkdownH3:       "#7DCFFF",
		MarkdownCode:     "#9ECE6A",
		MarkdownCodeBg:   "#16161E",
		MarkdownLink:     "#7DCFFF",
		MarkdownListItem: "#BB9AF7",
		CodeStyle:        "tokyonight-night",
	},
	ThemeCatppuccin: {
		Name:             "Catppuccin Mocha",
		Primary:          "#CBA6F7",
		Secondary:        "#89DCEB",
		Bg:               "#1E1E2E",
		BgSidebar:        "#181825",
		Text:             "#CDD6F4",
		TextMuted:        "#6C7086",
		TextInverse:      "#1E1E2E",
		User:             "#F5C2E7",
		Assistant:        "#89DCEB",
		Warning:          "#FAB387",
		Error:            "#F38BA8",
		Info:             "#89DCEB",
		Success:          "#A6E3A1",
		Border:           "#313244",
		MarkdownH1:       "#CBA6F7",
		MarkdownH2:       "#F5C2E7",
		MarkdownH3:       "#89DCEB",
		MarkdownCode:     "#A6E3A1",
		MarkdownCodeBg:   "#181825",
		MarkdownLink:     "#89DCEB",
		MarkdownListItem: "#CBA6F7",
		CodeStyle:        "catppuccin-mocha",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeChatGPT,
		ThemeChatGPTLight,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
	}
}

// ThemeDisplayNames returns the display names matching ThemeNames order
func ThemeDisplayNames() []string {
	names := ThemeNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = BuiltinThemes[n].Name
	}
	return out
}

// IsThemeName reports whether name identifies a built-in theme
func IsThemeName(name string) bool {
	_, ok := BuiltinThemes[ThemeName(name)]
	return ok
}

// GetTheme returns a theme by name, defaulting to ChatGPT if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

var (
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

func init() {
	regenerateStyles()
	RefreshModalStyles()
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles.
// Unknown names fall back to the default theme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentTheme = BuiltinThemes[name]
	currentThemeName = name
	regenerateStyles()
	RefreshModalStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// RefreshModalStyles pushes the current palette into the modals package.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle,
		ModalHelpStyle,
		SidebarItemStyle,
		SidebarSelectedStyle,
		StatusErrorStyle,
		ColorPrimary,
		ColorSecondary,
		ColorText,
		ColorTextMuted,
		ColorTextInverse,
		ColorWarning,
		ColorError,
		ModalInputWidth,
		ModalInputCharLimit,
		ModalWidth,
	)
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorBgSidebar = lipgloss.Color(t.GetBgSidebar())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	HeaderBrandStyle = lipgloss.NewStyle().Bold(true)
	HeaderModelStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	FooterDisclaimerStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)
	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	SidebarItemStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)
	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)
	SidebarGroupStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true).
		Padding(0, 1)
	SidebarPendingStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)
	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)
	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)
	ChatTimestampStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	ChatSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)
	ChatInputLockedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Foreground(ColorTextMuted).
		Padding(0, 1)

	WelcomeTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		MarginBottom(1)
	WelcomeColumnTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	WelcomeItemStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	WelcomeExampleStyle = WelcomeItemStyle.
		Foreground(ColorText)
	WelcomeExampleSelectedStyle = WelcomeItemStyle.
		Foreground(ColorText).
		BorderForeground(ColorPrimary).
		Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	MarkdownH1Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH1)).
		MarginTop(1)
	MarkdownH2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH2)).
		MarginTop(1)
	MarkdownH3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH3))
	MarkdownH4Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextMuted)
	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)
	MarkdownItalicStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorText)
	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))
	MarkdownCodeBlockStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.MarkdownCodeBg))
	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownListItem))
	MarkdownBlockquoteStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	MarkdownHRStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)
	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownLink)).
		Underline(true)
}
