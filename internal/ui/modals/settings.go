package modals

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// WelcomeState - State for the first-launch welcome modal
// =============================================================================

type WelcomeState struct{}

func (*WelcomeState) modalState() {}

func (s *WelcomeState) Title() string { return "Welcome to ChatClone" }

func (s *WelcomeState) Help() string {
	return "Press Enter or Esc to continue"
}

func (s *WelcomeState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginBottom(1).
		Render(s.Title())

	intro := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(ModalInputWidth).
		Render("A terminal replica of the ChatGPT interface. Replies are simulated locally, nothing leaves your machine.")

	gettingStarted := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Getting started:")

	shortcuts := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("  Enter  Send a message\n  Tab    Switch between chats and conversation\n  n      Start a new chat\n  ?      Show every shortcut")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		intro,
		gettingStarted,
		shortcuts,
		help,
	)
}

func (s *WelcomeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewWelcomeState creates a new WelcomeState
func NewWelcomeState() *WelcomeState {
	return &WelcomeState{}
}

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

// SettingsValues is the snapshot the settings modal starts from and returns.
type SettingsValues struct {
	Theme                string
	NotificationsEnabled bool
	GlobalPending        bool
	ReplyDelayMinMS      int
	ReplyDelayMaxMS      int
}

type SettingsState struct {
	// Bound form values
	selectedTheme  string
	OriginalTheme  string
	delayMin       string
	delayMax       string
	generalOptions []string

	form *huh.Form

	availableWidth int
}

const (
	optionNotifications = "notifications"
	optionGlobalPending = "global-pending"
)

// DelayFieldCharLimit bounds the millisecond inputs.
const DelayFieldCharLimit = 6

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetSelectedTheme returns the selected theme key.
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// Values returns the edited settings. It fails when a delay field is not a
// non-negative whole number or the bounds are reversed.
func (s *SettingsState) Values() (SettingsValues, error) {
	minMS, err := parseDelay(s.delayMin)
	if err != nil {
		return SettingsValues{}, fmt.Errorf("minimum delay: %w", err)
	}
	maxMS, err := parseDelay(s.delayMax)
	if err != nil {
		return SettingsValues{}, fmt.Errorf("maximum delay: %w", err)
	}
	if minMS > maxMS {
		return SettingsValues{}, fmt.Errorf("minimum delay %dms exceeds maximum %dms", minMS, maxMS)
	}
	return SettingsValues{
		Theme:                s.selectedTheme,
		NotificationsEnabled: slices.Contains(s.generalOptions, optionNotifications),
		GlobalPending:        slices.Contains(s.generalOptions, optionGlobalPending),
		ReplyDelayMinMS:      minMS,
		ReplyDelayMaxMS:      maxMS,
	}, nil
}

func parseDelay(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d must not be negative", n)
	}
	return n, nil
}

func validateDelayField(v string) error {
	_, err := parseDelay(v)
	return err
}

// NewSettingsState builds the settings form around the current values.
// themes and themeDisplayNames are parallel slices.
func NewSettingsState(themes, themeDisplayNames []string, current SettingsValues) *SettingsState {
	s := &SettingsState{
		selectedTheme:  current.Theme,
		OriginalTheme:  current.Theme,
		delayMin:       strconv.Itoa(current.ReplyDelayMinMS),
		delayMax:       strconv.Itoa(current.ReplyDelayMaxMS),
		availableWidth: ModalWidthWide,
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(current.NotificationsEnabled),
		huh.NewOption("Lock every chat while a reply is pending", optionGlobalPending).
			Selected(current.GlobalPending),
	}
	if current.NotificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}
	if current.GlobalPending {
		s.generalOptions = append(s.generalOptions, optionGlobalPending)
	}

	appearance := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.generalOptions),
	)

	replies := huh.NewGroup(
		huh.NewInput().
			Title("Reply delay minimum (ms)").
			CharLimit(DelayFieldCharLimit).
			Validate(validateDelayField).
			Value(&s.delayMin),
		huh.NewInput().
			Title("Reply delay maximum (ms)").
			Description("Each reply waits a random time between the two bounds").
			CharLimit(DelayFieldCharLimit).
			Validate(validateDelayField).
			Value(&s.delayMax),
	)

	s.form = huh.NewForm(appearance, replies).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
