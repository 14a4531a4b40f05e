package demo

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/chatclone/internal/app"
	"github.com/zhubert/chatclone/internal/config"
	"github.com/zhubert/chatclone/internal/logger"
	"github.com/zhubert/chatclone/internal/session"
	"github.com/zhubert/chatclone/internal/ui"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// ReplyDelay is the delay of the frame captured after replies land (default: 200ms)
	ReplyDelay time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false,
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		ReplyDelay:       200 * time.Millisecond,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	frames []Frame
	events []session.Event

	currentAnnotation string
	tempDir           string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Model returns the app model driven by the last Run.
func (e *Executor) Model() *app.Model {
	return e.model
}

// Events returns the store events observed during the last Run, in order.
func (e *Executor) Events() []session.Event {
	return e.events
}

// Cleanup removes the scratch config directory.
func (e *Executor) Cleanup() {
	if e.tempDir != "" {
		os.RemoveAll(e.tempDir)
		e.tempDir = ""
	}
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := e.setup(scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}
	defer e.Cleanup()

	log := logger.WithComponent("demo")
	log.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	for i, step := range scenario.Steps {
		log.Debug("step", "index", i, "type", step.Type.String(), "description", step.Description)
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	return e.frames, nil
}

// setup builds a fresh model for the scenario. Preferences live in a scratch
// directory so a demo never touches the user's config.
func (e *Executor) setup(scenario *Scenario) error {
	dir, err := os.MkdirTemp("", "chatclone-demo-")
	if err != nil {
		return err
	}
	e.tempDir = dir
	e.frames = []Frame{}
	e.events = nil

	cfg := config.Default(filepath.Join(dir, "config.json"))
	cfg.MarkWelcomeShown() // Skip welcome modal in demos
	if scenario.Setup.Theme != "" {
		cfg.SetTheme(scenario.Setup.Theme)
	}
	cfg.SetNotificationsEnabled(false)

	seed := scenario.Setup.Seed
	e.model = app.New(cfg, "demo",
		app.WithGlobalPending(scenario.Setup.GlobalPending),
		app.WithClipboard(func(string) error { return nil }),
		app.WithStoreOptions(session.WithRandSource(rand.NewPCG(seed, seed))),
	)
	e.model.Store().OnEvent(func(ev session.Event) {
		e.events = append(e.events, ev)
	})

	e.update(tea.WindowSizeMsg{
		Width:  scenario.Width,
		Height: scenario.Height,
	})

	if scenario.Setup.Focus == "sidebar" {
		e.sendKey("esc")
	}
	return nil
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		// Animate the spinners while a reply is pending
		if e.model.Store().AnyPending() && step.Duration >= 300*time.Millisecond {
			e.captureAnimatedFrames(index, step.Duration, 300*time.Millisecond)
		} else {
			e.captureFrame(index, step.Duration)
		}

	case StepKey:
		e.sendKey(step.Key)
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.sendKey(string(ch))
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepDeliver:
		if !e.model.Store().AnyPending() {
			return fmt.Errorf("no pending reply to deliver")
		}
		e.model.DeliverPendingReplies()
		e.captureFrame(index, e.config.ReplyDelay)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		if e.model.Store().AnyPending() {
			e.sendTickMessages()
		}
		e.captureFrame(index, 0)

	case StepFlash:
		e.model.ShowFlash(step.FlashText, step.FlashType)
		e.captureFrame(index, 100*time.Millisecond)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}

	return nil
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	e.frames = append(e.frames, Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	})

	// Clear annotation after use
	e.currentAnnotation = ""
}

// captureAnimatedFrames captures one frame per interval, advancing the
// spinners between frames.
func (e *Executor) captureAnimatedFrames(stepIndex int, totalDuration, frameInterval time.Duration) {
	numFrames := max(int(totalDuration/frameInterval), 1)
	delayPerFrame := totalDuration / time.Duration(numFrames)

	for range numFrames {
		e.sendTickMessages()
		e.captureFrame(stepIndex, delayPerFrame)
	}
}

// sendTickMessages sends tick messages to animate spinners.
func (e *Executor) sendTickMessages() {
	e.update(ui.SidebarTickMsg(time.Now()))
	e.update(ui.StopwatchTickMsg(time.Now()))
}

// sendKey sends a key press to the model.
func (e *Executor) sendKey(key string) {
	e.update(keyPress(key))
}

// update feeds msg to the model. Returned commands are dropped; replies
// arrive through StepDeliver instead of their ticks.
func (e *Executor) update(msg tea.Msg) {
	result, _ := e.model.Update(msg)
	e.model = result.(*app.Model)
}

// keyPress converts a key string to a tea.KeyPressMsg.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "alt+enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModAlt}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "escape", "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "ctrl+b":
		return tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+n":
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	case "ctrl+r":
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case "ctrl+y":
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		r := []rune(key)
		if len(r) == 1 {
			return tea.KeyPressMsg{Code: r[0], Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
