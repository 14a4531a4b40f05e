// Package ui provides the user interface components for the ChatClone TUI.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): brand, model label, chat title     │
//	├──────────────┬──────────────────────────────────────┤
//	│              │                                      │
//	│   Sidebar    │         Thread (viewport)            │
//	│  (1/4 width) │                                      │
//	│              ├──────────────────────────────────────┤
//	│              │         Composer (textarea)          │
//	├──────────────┴──────────────────────────────────────┤
//	│ Footer (2 lines): disclaimer, then hints or flash   │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that owns terminal size and layout math.
//
// Header: Brand and model label on a gradient, with the active chat title.
//
// Footer: The disclaimer plus context-aware shortcuts. Flash messages
// temporarily replace the shortcuts.
//
// Sidebar: The chat list in store order with relative dates, a spinner on
// pending chats and fuzzy search.
//
// Chat: The thread viewport, the typing indicator, the welcome screen for
// empty chats and the composer.
//
// Modal: Hosts one dialog state from the modals package at a time.
//
// # Styles
//
// Style variables live in styles.go and are rebuilt from the active Theme
// by SetTheme. Every component reads them at render time.
package ui
