package scenarios

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/chatclone/internal/demo"
	"github.com/zhubert/chatclone/internal/errors"
	"github.com/zhubert/chatclone/internal/logger"
	"github.com/zhubert/chatclone/internal/session"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

func TestAll(t *testing.T) {
	scenarios := All()

	if len(scenarios) != 3 {
		t.Errorf("All() should return 3 scenarios, got %d", len(scenarios))
	}

	seen := make(map[string]bool)
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			t.Errorf("Scenario %q validation failed: %v", s.Name, err)
		}
		if seen[s.Name] {
			t.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
		if s.Description == "" {
			t.Errorf("Scenario %q has no description", s.Name)
		}
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		wantFound bool
	}{
		{"basic", true},
		{"parallel", true},
		{"themes", true},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario, err := Get(tt.name)
			found := err == nil

			if found != tt.wantFound {
				t.Fatalf("Get(%q) error = %v, want found %v", tt.name, err, tt.wantFound)
			}
			if found && scenario.Name != tt.name {
				t.Errorf("Get(%q).Name = %q", tt.name, scenario.Name)
			}
			if !found && !errors.Is(err, errors.KindNotFound) {
				t.Errorf("Get(%q) error kind = %v, want not found", tt.name, errors.GetKind(err))
			}
		})
	}
}

func TestScenariosRun(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			executor := demo.NewExecutor(demo.DefaultExecutorConfig())

			frames, err := executor.Run(s)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(frames) < 3 {
				t.Errorf("got %d frames, want at least 3", len(frames))
			}
			if executor.Model().Store().AnyPending() {
				t.Error("scenario ended with a reply still pending")
			}
		})
	}
}

func TestBasicScenario_SendsExample(t *testing.T) {
	executor := demo.NewExecutor(demo.DefaultExecutorConfig())
	if _, err := executor.Run(Basic); err != nil {
		t.Fatal(err)
	}

	chat := executor.Model().Store().ActiveChat()
	if len(chat.Messages) != 4 {
		t.Fatalf("len(Messages) = %d, want 4", len(chat.Messages))
	}
	if got := chat.Messages[1].Content; !strings.Contains(got, chat.Messages[0].Content) {
		t.Errorf("reply %q should quote the example", got)
	}
}

func TestParallelScenario_RepliesLandInTheirChats(t *testing.T) {
	executor := demo.NewExecutor(demo.DefaultExecutorConfig())
	frames, err := executor.Run(Parallel)
	if err != nil {
		t.Fatal(err)
	}

	store := executor.Model().Store()
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
	for _, c := range store.Chats() {
		if c.MessageCount != 2 {
			t.Errorf("chat %q has %d messages, want 2", c.Title, c.MessageCount)
		}
	}

	delivered := 0
	for _, ev := range executor.Events() {
		if ev.Kind == session.ReplyDelivered {
			delivered++
		}
	}
	if delivered != 2 {
		t.Errorf("observed %d deliveries, want 2", delivered)
	}

	last := ansi.Strip(frames[len(frames)-1].Content)
	if !strings.Contains(last, "Lisbon") {
		t.Error("the last frame should show the first chat")
	}
}
