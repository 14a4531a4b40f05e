package app

import "github.com/zhubert/chatclone/internal/session"

// Option configures a Model
type Option func(*options)

type options struct {
	globalPending bool
	storeOptions  []session.Option
	copyText      func(string) error
}

// WithGlobalPending forces the global pending scope for this run,
// whatever the config says.
func WithGlobalPending(global bool) Option {
	return func(o *options) {
		o.globalPending = global
	}
}

// WithStoreOptions passes extra options to the session store. They are
// applied after the ones derived from config, so they win.
func WithStoreOptions(opts ...session.Option) Option {
	return func(o *options) {
		o.storeOptions = append(o.storeOptions, opts...)
	}
}

// WithClipboard replaces the function used to copy replies. The system
// clipboard is used by default.
func WithClipboard(copyText func(string) error) Option {
	return func(o *options) {
		o.copyText = copyText
	}
}
