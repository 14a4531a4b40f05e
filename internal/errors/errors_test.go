package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindIO, "I/O error"},
		{KindConfig, "configuration error"},
		{KindClipboard, "clipboard error"},
		{KindNotification, "notification error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name        string
		args        []interface{}
		wantOp      Op
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "with all args",
			args:        []interface{}{Op("test.Op"), KindNotFound, "context", errors.New("error")},
			wantOp:      "test.Op",
			wantKind:    KindNotFound,
			wantMessage: "test.Op: context: error",
		},
		{
			name:        "context becomes the error",
			args:        []interface{}{Op("test.Op"), KindInvalid, "just a message"},
			wantOp:      "test.Op",
			wantKind:    KindInvalid,
			wantMessage: "test.Op: just a message",
		},
		{
			name:        "with just error",
			args:        []interface{}{errors.New("simple error")},
			wantKind:    KindUnknown,
			wantMessage: "simple error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("E() returned %T, want *Error", err)
			}
			if e.Op != tt.wantOp {
				t.Errorf("E().Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("E().Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if got := err.Error(); got != tt.wantMessage {
				t.Errorf("E().Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{"matching kind", E(Op("test"), KindNotFound, "not found"), KindNotFound, true},
		{"non-matching kind", E(Op("test"), KindNotFound, "not found"), KindInvalid, false},
		{"plain error", errors.New("regular error"), KindNotFound, false},
		{"nil error", nil, KindNotFound, false},
		{"wrapped error", fmt.Errorf("wrapped: %w", E(Op("test"), KindClipboard, "boom")), KindClipboard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.kind); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(E(Op("test"), KindIO, "io")); got != KindIO {
		t.Errorf("GetKind() = %v, want %v", got, KindIO)
	}
	if got := GetKind(errors.New("regular")); got != KindUnknown {
		t.Errorf("GetKind() = %v, want %v", got, KindUnknown)
	}
	if got := GetKind(nil); got != KindUnknown {
		t.Errorf("GetKind(nil) = %v, want %v", got, KindUnknown)
	}
}

func TestConstructors(t *testing.T) {
	underlying := errors.New("underlying")

	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantOp   Op
		wraps    bool
	}{
		{"ConfigLoadFailed", ConfigLoadFailed("/tmp/c.json", underlying), KindConfig, "config.Load", true},
		{"ConfigSaveFailed", ConfigSaveFailed("/tmp/c.json", underlying), KindConfig, "config.Save", true},
		{"ConfigInvalid", ConfigInvalid("bad delay"), KindInvalid, "config.Validate", false},
		{"ClipboardUnavailable", ClipboardUnavailable(underlying), KindClipboard, "clipboard.Init", true},
		{"ClipboardWriteFailed", ClipboardWriteFailed(underlying), KindClipboard, "clipboard.WriteText", true},
		{"NotificationFailed", NotificationFailed("title", underlying), KindNotification, "notification.Send", true},
		{"ScenarioNotFound", ScenarioNotFound("nope"), KindNotFound, "demo.Lookup", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.wantKind) {
				t.Errorf("kind = %v, want %v", GetKind(tt.err), tt.wantKind)
			}
			var e *Error
			if !errors.As(tt.err, &e) {
				t.Fatalf("%s should return *Error", tt.name)
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", e.Op, tt.wantOp)
			}
			if got := errors.Is(tt.err, underlying); got != tt.wraps {
				t.Errorf("errors.Is(underlying) = %v, want %v", got, tt.wraps)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	innerErr := errors.New("original error")
	middleErr := E(Op("middle.Op"), KindIO, innerErr)
	outerErr := E(Op("outer.Op"), KindConfig, middleErr)

	if !errors.Is(outerErr, innerErr) {
		t.Error("Should be able to find inner error through chain")
	}
	if GetKind(outerErr) != KindConfig {
		t.Error("GetKind should return outer error's kind")
	}
}
