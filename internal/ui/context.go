package ui

import (
	"sync"

	"github.com/zhubert/chatclone/internal/logger"
)

// ViewContext holds centralized layout calculations and provides debug logging.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	// SidebarHidden gives the whole width to the chat panel
	SidebarHidden bool

	mu sync.Mutex
}

var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// Log writes a debug message to the log file.
func (v *ViewContext) Log(msg string, args ...any) {
	logger.WithComponent("ui").Debug(msg, args...)
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
// Call it from the main event loop on every tea.WindowSizeMsg.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	v.layoutColumns()

	logger.WithComponent("ui").Debug("terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"sidebarWidth", v.SidebarWidth,
		"chatWidth", v.ChatWidth,
	)
}

// SetSidebarHidden shows or hides the chat list and recalculates the columns.
func (v *ViewContext) SetSidebarHidden(hidden bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.SidebarHidden = hidden
	v.layoutColumns()
}

// layoutColumns must be called with mu held.
func (v *ViewContext) layoutColumns() {
	if v.SidebarHidden {
		v.SidebarWidth = 0
		v.ChatWidth = v.TerminalWidth
		return
	}
	v.SidebarWidth = max(v.TerminalWidth/SidebarWidthRatio, MinSidebarWidth)
	v.ChatWidth = v.TerminalWidth - v.SidebarWidth
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
