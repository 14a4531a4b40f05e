// Package clipboard reads and writes text on the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	pkgerrors "github.com/zhubert/chatclone/internal/errors"
	"github.com/zhubert/chatclone/internal/logger"
)

// Platform hooks, replaced in tests.
var (
	initFn  = clipboard.Init
	readFn  = func() []byte { return clipboard.Read(clipboard.FmtText) }
	writeFn = func(b []byte) { clipboard.Write(clipboard.FmtText, b) }
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}

	if err := initFn(); err != nil {
		logger.Warn("Clipboard: Failed to initialize: %v", err)
		return pkgerrors.ClipboardUnavailable(err)
	}

	initialized = true
	logger.Debug("Clipboard: Initialized successfully")
	return nil
}

// Available reports whether the clipboard could be initialized.
func Available() bool {
	return Init() == nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return "", err
	}

	textBytes := readFn()
	if textBytes == nil {
		return "", nil
	}
	return string(textBytes), nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return pkgerrors.ClipboardWriteFailed(err)
	}

	writeFn([]byte(text))
	logger.Debug("Clipboard: Wrote %d bytes of text", len(text))
	return nil
}
