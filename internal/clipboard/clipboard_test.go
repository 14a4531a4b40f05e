package clipboard

import (
	"errors"
	"os"
	"testing"

	pkgerrors "github.com/zhubert/chatclone/internal/errors"
	"github.com/zhubert/chatclone/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

// fakeClipboard swaps the platform hooks for an in-memory buffer.
func fakeClipboard(t *testing.T, initErr error) *[]byte {
	t.Helper()

	origInit, origRead, origWrite := initFn, readFn, writeFn
	var buf []byte
	initFn = func() error { return initErr }
	readFn = func() []byte { return buf }
	writeFn = func(b []byte) { buf = append([]byte(nil), b...) }

	mu.Lock()
	initialized = false
	mu.Unlock()

	t.Cleanup(func() {
		initFn, readFn, writeFn = origInit, origRead, origWrite
		mu.Lock()
		initialized = false
		mu.Unlock()
	})
	return &buf
}

func TestWriteThenRead(t *testing.T) {
	fakeClipboard(t, nil)

	if err := WriteText("copied reply"); err != nil {
		t.Fatalf("WriteText() failed: %v", err)
	}
	got, err := ReadText()
	if err != nil {
		t.Fatalf("ReadText() failed: %v", err)
	}
	if got != "copied reply" {
		t.Errorf("ReadText() = %q, want %q", got, "copied reply")
	}
}

func TestReadText_Empty(t *testing.T) {
	fakeClipboard(t, nil)

	got, err := ReadText()
	if err != nil {
		t.Fatalf("ReadText() failed: %v", err)
	}
	if got != "" {
		t.Errorf("ReadText() = %q, want empty", got)
	}
}

func TestUnavailableClipboard(t *testing.T) {
	buf := fakeClipboard(t, errors.New("no display"))

	if Available() {
		t.Error("Available() = true, want false")
	}

	err := WriteText("lost")
	if err == nil {
		t.Fatal("WriteText() should fail without a clipboard")
	}
	if !pkgerrors.Is(err, pkgerrors.KindClipboard) {
		t.Errorf("error kind = %v, want %v", pkgerrors.GetKind(err), pkgerrors.KindClipboard)
	}
	if len(*buf) != 0 {
		t.Error("nothing should be written when init fails")
	}

	if _, err := ReadText(); err == nil {
		t.Error("ReadText() should fail without a clipboard")
	}
}

func TestInit_OnlyOnce(t *testing.T) {
	fakeClipboard(t, nil)
	calls := 0
	initFn = func() error {
		calls++
		return nil
	}

	for i := 0; i < 3; i++ {
		if err := Init(); err != nil {
			t.Fatalf("Init() failed: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("platform init called %d times, want 1", calls)
	}
}
