package session

import (
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zhubert/chatclone/internal/logger"
)

// Default bounds of the random reply delay.
const (
	DefaultMinReplyDelay = 1000 * time.Millisecond
	DefaultMaxReplyDelay = 3000 * time.Millisecond
)

// IDSource produces unique identifiers for chats and messages.
type IDSource func() string

// Clock returns the current instant.
type Clock func() time.Time

// Option configures a Store.
type Option func(*Store)

// WithIDSource replaces the default UUID generator.
func WithIDSource(ids IDSource) Option {
	return func(s *Store) { s.newID = ids }
}

// WithClock replaces time.Now.
func WithClock(now Clock) Option {
	return func(s *Store) { s.now = now }
}

// WithScheduler sets where reply tasks run. Defaults to a TimerScheduler.
func WithScheduler(sched Scheduler) Option {
	return func(s *Store) { s.scheduler = sched }
}

// WithReplyDelay sets the bounds of the uniform reply delay [min, max).
func WithReplyDelay(min, max time.Duration) Option {
	return func(s *Store) { s.minDelay, s.maxDelay = min, max }
}

// WithPendingScope chooses whether a pending reply blocks one chat or all.
func WithPendingScope(scope PendingScope) Option {
	return func(s *Store) { s.scope = scope }
}

// WithRandSource seeds the delay generator, making delays reproducible.
func WithRandSource(src rand.Source) Option {
	return func(s *Store) { s.randN = rand.New(src).Int64N }
}

// Store owns the chats and the active-chat pointer. All methods are safe
// for concurrent use.
type Store struct {
	mu       sync.Mutex
	chats    []*Chat
	activeID string
	// pending holds chats awaiting a reply. Entries are removed when the
	// reply fires, even if the chat was deleted in the meantime.
	pending map[string]bool
	// renamed holds chats whose title was set explicitly.
	renamed map[string]bool

	scope     PendingScope
	newID     IDSource
	now       Clock
	scheduler Scheduler
	minDelay  time.Duration
	maxDelay  time.Duration
	randN     func(n int64) int64

	observers []func(Event)
}

// New creates a store seeded with one empty, active chat.
func New(opts ...Option) *Store {
	s := &Store{
		pending:  make(map[string]bool),
		renamed:  make(map[string]bool),
		scope:    ScopeChat,
		newID:    uuid.NewString,
		now:      time.Now,
		minDelay: DefaultMinReplyDelay,
		maxDelay: DefaultMaxReplyDelay,
		randN:    rand.Int64N,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scheduler == nil {
		s.scheduler = NewTimerScheduler()
	}

	first := s.newChat()
	s.chats = []*Chat{first}
	s.activeID = first.ID
	return s
}

func log() *slog.Logger {
	return logger.ComponentLogger("session")
}

// OnEvent registers an observer. Observers run after the store's lock is
// released, in registration order, on whichever goroutine made the change.
func (s *Store) OnEvent(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// SetPendingScope changes the pending scope for future sends.
func (s *Store) SetPendingScope(scope PendingScope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = scope
}

// PendingScope returns the current pending scope.
func (s *Store) PendingScope() PendingScope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// SetReplyDelay changes the delay bounds for replies scheduled from now on.
func (s *Store) SetReplyDelay(min, max time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minDelay, s.maxDelay = min, max
}

// outcome is what a mutation hands back to apply.
type outcome struct {
	ok     bool
	events []Event
	job    *replyJob
	delay  time.Duration
}

// apply runs fn under the lock, then notifies observers and schedules any
// reply with the lock released.
func (s *Store) apply(fn func() outcome) bool {
	s.mu.Lock()
	out := fn()
	observers := make([]func(Event), len(s.observers))
	copy(observers, s.observers)
	sched := s.scheduler
	s.mu.Unlock()

	for _, ev := range out.events {
		for _, obs := range observers {
			obs(ev)
		}
	}
	if out.job != nil {
		job := *out.job
		sched.Schedule(out.delay, func() { s.deliver(job) })
	}
	return out.ok
}

func (s *Store) newChat() *Chat {
	now := s.now()
	return &Chat{
		ID:        s.newID(),
		Title:     PlaceholderTitle,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Store) newMessage(role Role, content string) Message {
	return Message{
		ID:        s.newID(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
}

// find returns the index of chat id, or -1.
func (s *Store) find(id string) int {
	for i, c := range s.chats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) get(id string) *Chat {
	if i := s.find(id); i >= 0 {
		return s.chats[i]
	}
	return nil
}

// busy reports whether a send or regenerate in chat id must be rejected.
func (s *Store) busy(id string) bool {
	if s.scope == ScopeGlobal {
		return len(s.pending) > 0
	}
	return s.pending[id]
}

// nextDelay draws a delay uniformly from [minDelay, maxDelay).
func (s *Store) nextDelay() time.Duration {
	span := int64(s.maxDelay - s.minDelay)
	if span <= 0 {
		return s.minDelay
	}
	return s.minDelay + time.Duration(s.randN(span))
}

// CreateChat inserts a new empty chat at the front and makes it active.
func (s *Store) CreateChat() string {
	var id string
	s.apply(func() outcome {
		c := s.newChat()
		id = c.ID
		s.chats = append([]*Chat{c}, s.chats...)
		s.activeID = c.ID
		return outcome{ok: true, events: []Event{{Kind: ChatCreated, ChatID: c.ID, Title: c.Title}}}
	})
	return id
}

// SelectChat makes id the active chat. Unknown ids are ignored.
func (s *Store) SelectChat(id string) bool {
	return s.apply(func() outcome {
		if s.find(id) < 0 {
			log().Debug("select ignored: unknown chat", "chatID", id)
			return outcome{}
		}
		s.activeID = id
		return outcome{ok: true, events: []Event{{Kind: ChatSelected, ChatID: id}}}
	})
}

// DeleteChat removes chat id unless it is the last chat. If the deleted
// chat was active, the first remaining chat becomes active. A reply still
// scheduled for the chat stops counting as pending; it is dropped when it
// fires.
func (s *Store) DeleteChat(id string) bool {
	return s.apply(func() outcome {
		i := s.find(id)
		if i < 0 {
			log().Debug("delete ignored: unknown chat", "chatID", id)
			return outcome{}
		}
		if len(s.chats) == 1 {
			log().Debug("delete ignored: last remaining chat", "chatID", id)
			return outcome{}
		}

		s.chats = append(s.chats[:i], s.chats[i+1:]...)
		delete(s.renamed, id)
		delete(s.pending, id)
		events := []Event{{Kind: ChatDeleted, ChatID: id}}
		if s.activeID == id {
			s.activeID = s.chats[0].ID
			events = append(events, Event{Kind: ChatSelected, ChatID: s.activeID})
		}
		return outcome{ok: true, events: events}
	})
}

// RenameChat sets the title of chat id. Titles that trim to empty and
// unknown ids are ignored.
func (s *Store) RenameChat(id, title string) bool {
	return s.apply(func() outcome {
		title = strings.TrimSpace(title)
		if title == "" {
			log().Debug("rename ignored: empty title", "chatID", id)
			return outcome{}
		}
		c := s.get(id)
		if c == nil {
			log().Debug("rename ignored: unknown chat", "chatID", id)
			return outcome{}
		}
		c.Title = title
		s.renamed[id] = true
		return outcome{ok: true, events: []Event{{Kind: ChatRenamed, ChatID: id, Title: title}}}
	})
}

// SendMessage appends a user message to the active chat and schedules the
// reply. It is rejected when content trims to empty or when a pending
// reply blocks the active chat.
func (s *Store) SendMessage(content string) bool {
	return s.apply(func() outcome {
		content = strings.TrimSpace(content)
		if content == "" {
			log().Debug("send ignored: empty content")
			return outcome{}
		}
		c := s.get(s.activeID)
		if s.busy(c.ID) {
			log().Debug("send ignored: reply pending", "chatID", c.ID, "scope", s.scope.String())
			return outcome{}
		}

		events := make([]Event, 0, 3)
		if len(c.Messages) == 0 && !s.renamed[c.ID] {
			c.Title = DeriveTitle(content)
			events = append(events, Event{Kind: ChatRenamed, ChatID: c.ID, Title: c.Title})
		}
		msg := s.newMessage(RoleUser, content)
		c.Messages = append(c.Messages, msg)
		c.UpdatedAt = msg.Timestamp
		events = append(events, Event{Kind: MessageAppended, ChatID: c.ID, Title: c.Title, Message: msg})

		return s.scheduleReply(c, replyJob{chatID: c.ID, addressed: content}, events)
	})
}

// Regenerate replaces the last reply of the active chat. It is rejected
// when the chat has no user message or a pending reply blocks it.
func (s *Store) Regenerate() bool {
	return s.apply(func() outcome {
		c := s.get(s.activeID)
		if len(c.Messages) == 0 {
			log().Debug("regenerate ignored: no messages", "chatID", c.ID)
			return outcome{}
		}
		if s.busy(c.ID) {
			log().Debug("regenerate ignored: reply pending", "chatID", c.ID, "scope", s.scope.String())
			return outcome{}
		}

		userIdx := -1
		for i := len(c.Messages) - 1; i >= 0; i-- {
			if c.Messages[i].Role == RoleUser {
				userIdx = i
				break
			}
		}
		if userIdx < 0 {
			log().Debug("regenerate ignored: no user message", "chatID", c.ID)
			return outcome{}
		}
		addressed := c.Messages[userIdx].Content

		if last := len(c.Messages) - 1; c.Messages[last].Role == RoleAssistant {
			c.Messages = c.Messages[:last:last]
		}

		return s.scheduleReply(c, replyJob{chatID: c.ID, addressed: addressed, regenerate: true}, nil)
	})
}

// scheduleReply marks c pending and returns the outcome that schedules job.
// Must be called with mu held.
func (s *Store) scheduleReply(c *Chat, job replyJob, events []Event) outcome {
	s.pending[c.ID] = true
	delay := s.nextDelay()
	log().Debug("reply scheduled", "chatID", c.ID, "delay", delay, "regenerate", job.regenerate)
	events = append(events, Event{Kind: ReplyScheduled, ChatID: c.ID, Title: c.Title, Delay: delay})
	return outcome{ok: true, events: events, job: &job, delay: delay}
}

// deliver appends the reply for job, or drops it if the chat is gone.
func (s *Store) deliver(job replyJob) {
	s.apply(func() outcome {
		delete(s.pending, job.chatID)

		c := s.get(job.chatID)
		if c == nil {
			log().Debug("reply dropped: chat deleted", "chatID", job.chatID)
			return outcome{events: []Event{{Kind: ReplyDropped, ChatID: job.chatID}}}
		}

		msg := s.newMessage(RoleAssistant, job.content())
		c.Messages = append(c.Messages, msg)
		c.UpdatedAt = msg.Timestamp
		return outcome{ok: true, events: []Event{
			{Kind: MessageAppended, ChatID: c.ID, Title: c.Title, Message: msg},
			{Kind: ReplyDelivered, ChatID: c.ID, Title: c.Title, Message: msg},
		}}
	})
}

// Chats returns a summary of every chat in store order.
func (s *Store) Chats() []ChatSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ChatSummary, 0, len(s.chats))
	for _, c := range s.chats {
		out = append(out, ChatSummary{
			ID:           c.ID,
			Title:        c.Title,
			CreatedAt:    c.CreatedAt,
			UpdatedAt:    c.UpdatedAt,
			MessageCount: len(c.Messages),
			Pending:      s.pending[c.ID],
		})
	}
	return out
}

// Len returns the number of chats.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chats)
}

// ActiveID returns the ID of the active chat.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// ActiveChat returns a copy of the active chat.
func (s *Store) ActiveChat() Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(s.activeID).clone()
}

// Chat returns a copy of chat id.
func (s *Store) Chat(id string) (Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.get(id)
	if c == nil {
		return Chat{}, false
	}
	return c.clone(), true
}

// IsPending reports whether chat id is waiting for a reply.
func (s *Store) IsPending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[id]
}

// AnyPending reports whether any reply is still scheduled.
func (s *Store) AnyPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// InputLocked reports whether the composer must be disabled for the
// active chat.
func (s *Store) InputLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy(s.activeID)
}
