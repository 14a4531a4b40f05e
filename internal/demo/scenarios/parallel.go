package scenarios

import (
	"time"

	"github.com/zhubert/chatclone/internal/demo"
)

// Parallel shows that a pending reply only blocks its own chat:
// 1. Ask a question in the first chat
// 2. While the reply is typing, open a new chat and ask something else
// 3. Both replies land in the chats that asked for them
var Parallel = &demo.Scenario{
	Name:        "parallel",
	Description: "Keep chatting in another chat while a reply is typing",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		demo.TypeWithDesc("Plan a three day trip to Lisbon", "Ask in the first chat"),
		demo.Key("enter"),
		demo.Annotate("The first chat is waiting on its reply"),
		demo.Wait(1200 * time.Millisecond),

		demo.KeyWithDesc("ctrl+n", "Start a second chat"),
		demo.Wait(500 * time.Millisecond),
		demo.TypeWithDesc("What is a good name for a cat?", "Ask in the second chat"),
		demo.Key("enter"),
		demo.Annotate("Both chats show a spinner in the sidebar"),
		demo.Wait(1500 * time.Millisecond),

		demo.DeliverReplies(),
		demo.Wait(1200 * time.Millisecond),

		demo.KeyWithDesc("esc", "Focus the chat list"),
		demo.KeyWithDesc("j", "Move to the first chat"),
		demo.KeyWithDesc("enter", "Open it"),
		demo.Annotate("The trip reply landed in the chat that asked for it"),
		demo.Wait(2000 * time.Millisecond),
	},
}
