// Layout and sizing constants shared by the ui components.

package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 2

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// MinSidebarWidth keeps chat titles readable on narrow terminals
	MinSidebarWidth = 20

	// TextareaHeight is the number of lines for the composer textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp layout math on tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Composer limits
const (
	// ComposerCharLimit caps a single message
	ComposerCharLimit = 4000

	// ComposerPlaceholder is shown while the composer is empty
	ComposerPlaceholder = "Message ChatGPT..."

	// ComposerLockedPlaceholder is shown while a reply is pending
	ComposerLockedPlaceholder = "ChatGPT is typing..."

	// SidebarSearchCharLimit caps the sidebar search query
	SidebarSearchCharLimit = 50
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalWidthWide is used by the settings form
	ModalWidthWide = 72

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 120

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)
