package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/clipboard"
	"github.com/zhubert/chatclone/internal/config"
	"github.com/zhubert/chatclone/internal/logger"
	"github.com/zhubert/chatclone/internal/session"
	"github.com/zhubert/chatclone/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

func (f Focus) String() string {
	if f == FocusChat {
		return "chat"
	}
	return "sidebar"
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	store   *session.Store
	replies *TickScheduler

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// sidebarHidden collapses the chat list so the thread gets the full width
	sidebarHidden bool

	windowFocused bool
	kittyKeyboard bool

	// Tick chains for the typing indicator and sidebar spinner
	stopwatchRunning bool
	sidebarTicking   bool

	copyText func(string) error

	// queued holds commands produced by store observers during Update
	queued []tea.Cmd
}

// StartupModalMsg is sent on app start to trigger the welcome modal
type StartupModalMsg struct{}

// New creates a new app model
func New(cfg *config.Config, version string, opts ...Option) *Model {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	scope := session.ParsePendingScope(cfg.GetPendingScope())
	if o.globalPending {
		scope = session.ScopeGlobal
	}
	minDelay, maxDelay := cfg.GetReplyDelay()

	replies := NewTickScheduler()
	storeOpts := []session.Option{
		session.WithScheduler(replies),
		session.WithPendingScope(scope),
		session.WithReplyDelay(minDelay, maxDelay),
	}

	m := &Model{
		config:        cfg,
		version:       version,
		store:         session.New(append(storeOpts, o.storeOptions...)...),
		replies:       replies,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		sidebar:       ui.NewSidebar(),
		chat:          ui.NewChat(),
		modal:         ui.NewModal(),
		focus:         FocusChat,
		windowFocused: true,
		copyText:      clipboard.WriteText,
	}
	if o.copyText != nil {
		m.copyText = o.copyText
	}
	m.store.OnEvent(m.handleStoreEvent)

	// A fresh session starts in the composer of the seeded chat
	m.sidebar.SetFocused(false)
	m.chat.SetFocused(true)
	m.refresh()

	logger.WithComponent("app").Info("app started", "version", version, "scope", scope.String())
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return StartupModalMsg{}
	}
}

// Store returns the session store backing the UI
func (m *Model) Store() *session.Store {
	return m.store
}

// Replies returns the scheduler that delivers pending replies
func (m *Model) Replies() *TickScheduler {
	return m.replies
}

// Focus returns the focused panel
func (m *Model) Focus() Focus {
	return m.focus
}

// Chat returns the chat panel
func (m *Model) Chat() *ui.Chat {
	return m.chat
}

// Sidebar returns the chat list panel
func (m *Model) Sidebar() *ui.Sidebar {
	return m.sidebar
}

// Footer returns the footer
func (m *Model) Footer() *ui.Footer {
	return m.footer
}

// Modal returns the modal host
func (m *Model) Modal() *ui.Modal {
	return m.modal
}

// SidebarHidden reports whether the chat list is collapsed
func (m *Model) SidebarHidden() bool {
	return m.sidebarHidden
}

// refresh pushes store state into every panel and starts the animation
// ticks when a reply is pending.
func (m *Model) refresh() tea.Cmd {
	active := m.store.ActiveChat()
	pending := m.store.IsPending(active.ID)

	m.sidebar.SetChats(m.store.Chats())
	m.sidebar.SelectChat(active.ID)
	m.chat.SetChat(active)
	m.chat.SetLocked(m.store.InputLocked())
	m.chat.SetWaiting(pending)
	m.header.SetChatTitle(active.Title)
	m.header.SetPending(pending)

	if !m.store.AnyPending() {
		return nil
	}
	var cmds []tea.Cmd
	if !m.stopwatchRunning {
		m.stopwatchRunning = true
		cmds = append(cmds, ui.StopwatchTick())
	}
	if !m.sidebarTicking {
		m.sidebarTicking = true
		cmds = append(cmds, ui.SidebarTick())
	}
	return tea.Batch(cmds...)
}

// takeQueued returns and clears the commands queued by store observers
func (m *Model) takeQueued() tea.Cmd {
	if len(m.queued) == 0 {
		return nil
	}
	cmds := m.queued
	m.queued = nil
	return tea.Batch(cmds...)
}

// afterStoreChange gathers everything a store mutation produced: scheduled
// reply ticks, observer commands and the refreshed layout.
func (m *Model) afterStoreChange() tea.Cmd {
	return tea.Batch(m.replies.Drain(), m.takeQueued(), m.refresh())
}

// DeliverPendingReplies runs every scheduled reply immediately, the way the
// ticks would once their delays elapse. The demo harness and tests use it to
// keep frames deterministic.
func (m *Model) DeliverPendingReplies() (int, tea.Cmd) {
	n := m.replies.FireAll()
	return n, m.afterStoreChange()
}
