package session

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a chat. Messages are never edited.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// Chat is a conversation and its ordered message log.
type Chat struct {
	ID        string
	Title     string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// clone returns a copy of the chat that shares no memory with the original.
func (c *Chat) clone() Chat {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

// LastMessage returns the final message of the chat, if any.
func (c Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// LastAssistantMessage returns the most recent assistant message, if any.
func (c Chat) LastAssistantMessage() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}

// ChatSummary is the sidebar's view of a chat.
type ChatSummary struct {
	ID           string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
	Pending      bool
}

// EventKind names a state change reported to observers.
type EventKind int

const (
	ChatCreated EventKind = iota
	ChatSelected
	ChatDeleted
	ChatRenamed
	MessageAppended
	ReplyScheduled
	ReplyDelivered
	ReplyDropped
)

func (k EventKind) String() string {
	switch k {
	case ChatCreated:
		return "chat_created"
	case ChatSelected:
		return "chat_selected"
	case ChatDeleted:
		return "chat_deleted"
	case ChatRenamed:
		return "chat_renamed"
	case MessageAppended:
		return "message_appended"
	case ReplyScheduled:
		return "reply_scheduled"
	case ReplyDelivered:
		return "reply_delivered"
	case ReplyDropped:
		return "reply_dropped"
	default:
		return "unknown"
	}
}

// Event describes a state change. Message is set for MessageAppended and
// ReplyDelivered; Delay is set for ReplyScheduled; Title is set for
// ChatRenamed and ReplyDelivered.
type Event struct {
	Kind    EventKind
	ChatID  string
	Title   string
	Message Message
	Delay   time.Duration
}

// PendingScope controls how far a pending reply blocks input.
type PendingScope int

const (
	// ScopeChat blocks only the chat awaiting its reply.
	ScopeChat PendingScope = iota
	// ScopeGlobal blocks every chat while any reply is pending.
	ScopeGlobal
)

func (p PendingScope) String() string {
	if p == ScopeGlobal {
		return "global"
	}
	return "chat"
}

// ParsePendingScope maps a config value to a PendingScope.
// Unknown values fall back to ScopeChat.
func ParsePendingScope(s string) PendingScope {
	if s == "global" {
		return ScopeGlobal
	}
	return ScopeChat
}
