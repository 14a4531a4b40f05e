// Package demo drives the real app model headlessly through scripted
// scenarios and captures the rendered frames. Replies are delivered on
// demand, so every run is deterministic.
package demo

import (
	"strconv"
	"time"

	"github.com/zhubert/chatclone/internal/ui"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepDeliver delivers every pending reply immediately.
	StepDeliver
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next frame.
	StepAnnotate
	// StepFlash shows a footer flash message.
	StepFlash
)

func (t StepType) String() string {
	switch t {
	case StepWait:
		return "wait"
	case StepKey:
		return "key"
	case StepTypeText:
		return "type"
	case StepDeliver:
		return "deliver"
	case StepCapture:
		return "capture"
	case StepAnnotate:
		return "annotate"
	case StepFlash:
		return "flash"
	default:
		return "unknown"
	}
}

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText
	Text string

	// For StepWait
	Duration time.Duration

	// For StepAnnotate
	Annotation string

	// For StepFlash
	FlashText string
	FlashType ui.FlashType
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines the initial state for a demo.
type ScenarioSetup struct {
	// Theme name; empty keeps the default
	Theme string

	// GlobalPending blocks every chat while any reply is pending
	GlobalPending bool

	// Initial focus ("sidebar" or "chat")
	Focus string

	// Seed for the reply delay, so frame timings repeat
	Seed uint64
}

// DefaultSetup returns a minimal setup for demos.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Theme: string(ui.DefaultTheme),
		Focus: "chat",
		Seed:  1,
	}
}

// Validate checks that the scenario is valid and fills in defaults.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	switch s.Setup.Focus {
	case "", "chat", "sidebar":
	default:
		return &ValidationError{Field: "Setup.Focus", Message: "focus must be \"chat\" or \"sidebar\""}
	}
	for i, step := range s.Steps {
		if step.Type == StepKey && step.Key == "" {
			return &ValidationError{Field: "Steps", Message: "key step " + strconv.Itoa(i) + " has no key"}
		}
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// TypeWithDesc creates a text typing step with a description.
func TypeWithDesc(text, description string) Step {
	return Step{
		Type:        StepTypeText,
		Text:        text,
		Description: description,
	}
}

// DeliverReplies delivers every pending reply without waiting for its delay.
func DeliverReplies() Step {
	return Step{Type: StepDeliver}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}

// Flash shows a flash message in the footer.
func Flash(text string, flashType ui.FlashType) Step {
	return Step{
		Type:      StepFlash,
		FlashText: text,
		FlashType: flashType,
	}
}
