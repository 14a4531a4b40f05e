// Package scenarios contains built-in demo scenarios for ChatClone.
package scenarios

import (
	"time"

	"github.com/zhubert/chatclone/internal/demo"
	"github.com/zhubert/chatclone/internal/errors"
	"github.com/zhubert/chatclone/internal/ui"
)

// Basic walks through a single conversation:
// - picking an example prompt from the welcome screen
// - waiting on the typing indicator
// - asking a follow-up and copying the replies
// - collapsing the chat list
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Pick an example, follow up, copy the reply",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		demo.Annotate("A fresh chat opens on the welcome screen"),
		demo.Wait(1500 * time.Millisecond),

		demo.KeyWithDesc("down", "Highlight the first example"),
		demo.Wait(500 * time.Millisecond),
		demo.KeyWithDesc("enter", "Send the example"),

		demo.Annotate("The composer locks while the reply is typed"),
		demo.Wait(1200 * time.Millisecond),
		demo.DeliverReplies(),
		demo.Wait(1500 * time.Millisecond),

		demo.TypeWithDesc("Can you give an example with code?", "Ask a follow-up"),
		demo.Wait(300 * time.Millisecond),
		demo.Key("enter"),
		demo.Wait(900 * time.Millisecond),
		demo.DeliverReplies(),
		demo.Wait(1000 * time.Millisecond),

		demo.KeyWithDesc("ctrl+y", "Copy the last reply"),
		demo.Annotate("Copied replies are confirmed in the footer"),
		demo.Capture(),
		demo.Wait(1500 * time.Millisecond),

		demo.KeyWithDesc("[", "Select the newest reply"),
		demo.KeyWithDesc("[", "Step back to the first reply"),
		demo.Annotate("[ and ] pick an earlier reply to copy"),
		demo.Wait(1000 * time.Millisecond),
		demo.KeyWithDesc("ctrl+y", "Copy the selected reply"),
		demo.Wait(1000 * time.Millisecond),

		demo.KeyWithDesc("ctrl+b", "Hide the chat list"),
		demo.Annotate("ctrl+b gives the conversation the full width"),
		demo.Wait(1500 * time.Millisecond),
		demo.Key("ctrl+b"),

		demo.KeyWithDesc("esc", "Focus the chat list"),
		demo.KeyWithDesc("?", "Open help"),
		demo.Wait(2000 * time.Millisecond),
		demo.Key("esc"),
		demo.Wait(500 * time.Millisecond),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Parallel,
		Themes,
	}
}

// Get returns a scenario by name.
func Get(name string) (*demo.Scenario, error) {
	for _, s := range All() {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, errors.ScenarioNotFound(name)
}

// Themes cycles the look of a populated chat through the built-in themes.
var Themes = &demo.Scenario{
	Name:        "themes",
	Description: "One conversation in every built-in theme",
	Width:       120,
	Height:      40,
	Setup: &demo.ScenarioSetup{
		Theme: string(ui.ThemeNord),
		Focus: "chat",
		Seed:  7,
	},
	Steps: []demo.Step{
		demo.Type("Write a haiku about terminals"),
		demo.Key("enter"),
		demo.Wait(600 * time.Millisecond),
		demo.DeliverReplies(),
		demo.Annotate("Theme: nord"),
		demo.Capture(),
		demo.Wait(1500 * time.Millisecond),
		demo.Flash("Themes are changed from the settings modal (,)", ui.FlashInfo),
		demo.Wait(1500 * time.Millisecond),
	},
}
