package session

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ignoreMessageIdentity compares messages by role and content only.
var ignoreMessageIdentity = cmpopts.IgnoreFields(Message{}, "ID", "Timestamp")

func TestNew_SeedsOneActiveChat(t *testing.T) {
	s, _ := newTestStore(t)

	chats := s.Chats()
	if len(chats) != 1 {
		t.Fatalf("len(Chats()) = %d, want 1", len(chats))
	}
	if s.ActiveID() != chats[0].ID {
		t.Errorf("ActiveID() = %q, want %q", s.ActiveID(), chats[0].ID)
	}
	if chats[0].Title != PlaceholderTitle {
		t.Errorf("Title = %q, want %q", chats[0].Title, PlaceholderTitle)
	}
	if s.InputLocked() {
		t.Error("a fresh store should not lock input")
	}
}

func TestNew_DefaultsUseUUIDs(t *testing.T) {
	s := New(WithScheduler(&manualScheduler{}))

	id := s.ActiveID()
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Errorf("ActiveID() = %q, want a UUID", id)
	}
}

func TestCreateChat_InsertsAtFrontAndActivates(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.ActiveID()

	second := s.CreateChat()
	third := s.CreateChat()

	var got []string
	for _, c := range s.Chats() {
		got = append(got, c.ID)
	}
	want := []string{third, second, first}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chat order mismatch (-want +got):\n%s", diff)
	}
	if s.ActiveID() != third {
		t.Errorf("ActiveID() = %q, want %q", s.ActiveID(), third)
	}
}

func TestSelectChat(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.ActiveID()
	second := s.CreateChat()

	tests := []struct {
		name       string
		id         string
		wantOK     bool
		wantActive string
	}{
		{"select existing", first, true, first},
		{"select other existing", second, true, second},
		{"unknown id is ignored", "missing", false, second},
		{"empty id is ignored", "", false, second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SelectChat(tt.id); got != tt.wantOK {
				t.Errorf("SelectChat(%q) = %v, want %v", tt.id, got, tt.wantOK)
			}
			if s.ActiveID() != tt.wantActive {
				t.Errorf("ActiveID() = %q, want %q", s.ActiveID(), tt.wantActive)
			}
		})
	}
}

func TestDeleteChat(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(s *Store) (target string, wantActive string)
		wantOK     bool
		wantLength int
	}{
		{
			name: "last remaining chat is kept",
			setup: func(s *Store) (string, string) {
				return s.ActiveID(), s.ActiveID()
			},
			wantOK:     false,
			wantLength: 1,
		},
		{
			name: "unknown id is ignored",
			setup: func(s *Store) (string, string) {
				s.CreateChat()
				return "missing", s.ActiveID()
			},
			wantOK:     false,
			wantLength: 2,
		},
		{
			name: "deleting active moves to first remaining",
			setup: func(s *Store) (string, string) {
				middle := s.CreateChat()
				newest := s.CreateChat()
				s.SelectChat(middle)
				return middle, newest
			},
			wantOK:     true,
			wantLength: 2,
		},
		{
			name: "deleting front active chat activates the next one",
			setup: func(s *Store) (string, string) {
				oldest := s.ActiveID()
				newest := s.CreateChat()
				return newest, oldest
			},
			wantOK:     true,
			wantLength: 1,
		},
		{
			name: "deleting inactive chat keeps active",
			setup: func(s *Store) (string, string) {
				oldest := s.ActiveID()
				newest := s.CreateChat()
				return oldest, newest
			},
			wantOK:     true,
			wantLength: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			target, wantActive := tt.setup(s)

			if got := s.DeleteChat(target); got != tt.wantOK {
				t.Errorf("DeleteChat() = %v, want %v", got, tt.wantOK)
			}
			if s.Len() != tt.wantLength {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.wantLength)
			}
			if s.ActiveID() != wantActive {
				t.Errorf("ActiveID() = %q, want %q", s.ActiveID(), wantActive)
			}
			if _, ok := s.Chat(s.ActiveID()); !ok {
				t.Error("active ID must reference an existing chat")
			}
		})
	}
}

func TestRenameChat(t *testing.T) {
	tests := []struct {
		name      string
		id        func(s *Store) string
		title     string
		wantOK    bool
		wantTitle string
	}{
		{"sets title", (*Store).ActiveID, "Trip planning", true, "Trip planning"},
		{"trims title", (*Store).ActiveID, "  Trip planning \n", true, "Trip planning"},
		{"empty title ignored", (*Store).ActiveID, "", false, PlaceholderTitle},
		{"whitespace title ignored", (*Store).ActiveID, "   \t", false, PlaceholderTitle},
		{"unknown chat ignored", func(*Store) string { return "missing" }, "Title", false, PlaceholderTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)

			if got := s.RenameChat(tt.id(s), tt.title); got != tt.wantOK {
				t.Errorf("RenameChat() = %v, want %v", got, tt.wantOK)
			}
			if got := s.ActiveChat().Title; got != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got, tt.wantTitle)
			}
		})
	}
}

func TestSendMessage_TrimsContent(t *testing.T) {
	s, _ := newTestStore(t)

	if !s.SendMessage("  hello  ") {
		t.Fatal("SendMessage() should accept non-empty content")
	}

	want := []Message{{Role: RoleUser, Content: "hello"}}
	if diff := cmp.Diff(want, s.ActiveChat().Messages, ignoreMessageIdentity); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSendMessage_RejectsEmpty(t *testing.T) {
	tests := []string{"", "   ", "\n\t "}

	for _, content := range tests {
		t.Run(strings.ReplaceAll(content, "\n", `\n`), func(t *testing.T) {
			s, sched := newTestStore(t)

			if s.SendMessage(content) {
				t.Error("SendMessage() should reject empty content")
			}
			if n := len(s.ActiveChat().Messages); n != 0 {
				t.Errorf("len(Messages) = %d, want 0", n)
			}
			if s.IsPending(s.ActiveID()) {
				t.Error("rejected send should not enter pending state")
			}
			if sched.Pending() != 0 {
				t.Errorf("scheduled tasks = %d, want 0", sched.Pending())
			}
		})
	}
}

func TestSendMessage_DerivesTitleOnFirstMessage(t *testing.T) {
	s, sched := newTestStore(t)

	s.SendMessage("Plan a weekend in Lisbon with kids and a tight budget")
	wantTitle := "Plan a weekend in Lisbon with ..."
	if got := s.ActiveChat().Title; got != wantTitle {
		t.Errorf("Title = %q, want %q", got, wantTitle)
	}

	sched.RunAll()
	s.SendMessage("Something else entirely")
	if got := s.ActiveChat().Title; got != wantTitle {
		t.Errorf("Title after second message = %q, want %q", got, wantTitle)
	}
}

func TestSendMessage_ExplicitRenameSurvivesFirstMessage(t *testing.T) {
	s, sched := newTestStore(t)

	s.RenameChat(s.ActiveID(), "My chat")
	s.SendMessage("hello there")
	sched.RunAll()

	if got := s.ActiveChat().Title; got != "My chat" {
		t.Errorf("Title = %q, want %q", got, "My chat")
	}
}

func TestSendMessage_RenameAfterMessagesIsNotOverwritten(t *testing.T) {
	s, sched := newTestStore(t)

	s.SendMessage("first")
	sched.RunAll()
	s.RenameChat(s.ActiveID(), "Renamed")
	s.SendMessage("second")
	sched.RunAll()

	if got := s.ActiveChat().Title; got != "Renamed" {
		t.Errorf("Title = %q, want %q", got, "Renamed")
	}
}

func TestSendMessage_PendingScope(t *testing.T) {
	tests := []struct {
		name            string
		scope           PendingScope
		wantOtherLocked bool
		wantOtherSendOK bool
	}{
		{"chat scope leaves other chats free", ScopeChat, false, true},
		{"global scope blocks every chat", ScopeGlobal, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sched := newTestStore(t, WithPendingScope(tt.scope))
			chatB := s.ActiveID()
			s.SendMessage("question for B")

			if !s.InputLocked() {
				t.Error("the pending chat must lock input")
			}
			if s.SendMessage("again") {
				t.Error("a second send in the pending chat must be rejected")
			}

			chatA := s.CreateChat()
			if got := s.InputLocked(); got != tt.wantOtherLocked {
				t.Errorf("InputLocked() in other chat = %v, want %v", got, tt.wantOtherLocked)
			}
			if got := s.SendMessage("question for A"); got != tt.wantOtherSendOK {
				t.Errorf("SendMessage() in other chat = %v, want %v", got, tt.wantOtherSendOK)
			}

			sched.RunAll()
			if s.IsPending(chatA) || s.IsPending(chatB) {
				t.Error("all chats should be idle after replies land")
			}
			if s.InputLocked() {
				t.Error("input should unlock after replies land")
			}
		})
	}
}

func TestReply_LandsInScheduledChat(t *testing.T) {
	s, sched := newTestStore(t)
	chatA := s.ActiveID()
	s.SendMessage("hello from A")

	chatB := s.CreateChat()
	if s.ActiveID() != chatB {
		t.Fatalf("ActiveID() = %q, want %q", s.ActiveID(), chatB)
	}

	sched.RunAll()

	a, _ := s.Chat(chatA)
	want := []Message{
		{Role: RoleUser, Content: "hello from A"},
		{Role: RoleAssistant, Content: ReplyTo("hello from A")},
	}
	if diff := cmp.Diff(want, a.Messages, ignoreMessageIdentity); diff != "" {
		t.Errorf("chat A messages mismatch (-want +got):\n%s", diff)
	}

	b, _ := s.Chat(chatB)
	if len(b.Messages) != 0 {
		t.Errorf("chat B should stay empty, got %d messages", len(b.Messages))
	}
	if s.ActiveID() != chatB {
		t.Errorf("reply delivery must not change the active chat")
	}
}

func TestReply_DroppedWhenChatDeleted(t *testing.T) {
	s, sched := newTestStore(t, WithPendingScope(ScopeGlobal))
	doomed := s.ActiveID()
	s.SendMessage("going away")
	survivor := s.CreateChat()

	var dropped []string
	s.OnEvent(func(e Event) {
		if e.Kind == ReplyDropped {
			dropped = append(dropped, e.ChatID)
		}
	})

	if !s.DeleteChat(doomed) {
		t.Fatal("DeleteChat() should succeed with two chats")
	}
	sched.RunAll()

	if _, ok := s.Chat(doomed); ok {
		t.Error("a dropped reply must not resurrect the deleted chat")
	}
	if diff := cmp.Diff([]string{doomed}, dropped); diff != "" {
		t.Errorf("dropped events mismatch (-want +got):\n%s", diff)
	}
	if s.InputLocked() {
		t.Error("the dropped reply should release the global pending flag")
	}
	if !s.SendMessage("still works") {
		t.Error("sending in the surviving chat should succeed")
	}
	if s.ActiveID() != survivor {
		t.Errorf("ActiveID() = %q, want %q", s.ActiveID(), survivor)
	}
}

func TestDeleteChat_ReleasesGlobalLockImmediately(t *testing.T) {
	s, sched := newTestStore(t, WithPendingScope(ScopeGlobal))
	doomed := s.ActiveID()
	s.SendMessage("going away")
	survivor := s.CreateChat()

	if !s.InputLocked() {
		t.Fatal("global scope should lock the new chat while a reply is pending")
	}
	if !s.DeleteChat(doomed) {
		t.Fatal("DeleteChat() should succeed with two chats")
	}

	if s.AnyPending() || s.InputLocked() {
		t.Error("deleting the waiting chat should release the lock before its timer fires")
	}
	if !s.SendMessage("right away") {
		t.Fatal("sending in the surviving chat should succeed before the dropped reply runs")
	}

	// The stale timer must not clear the new reply's pending state
	sched.RunNext()
	if !s.IsPending(survivor) || !s.InputLocked() {
		t.Error("the dropped reply released the surviving chat's pending state")
	}

	sched.RunAll()
	chat, _ := s.Chat(survivor)
	want := []Message{
		{Role: RoleUser, Content: "right away"},
		{Role: RoleAssistant, Content: ReplyTo("right away")},
	}
	if diff := cmp.Diff(want, chat.Messages, ignoreMessageIdentity); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestReply_BumpsUpdatedAt(t *testing.T) {
	s, sched := newTestStore(t)
	s.SendMessage("hi")
	before := s.ActiveChat().UpdatedAt

	sched.RunAll()

	chat := s.ActiveChat()
	last, _ := chat.LastMessage()
	if !chat.UpdatedAt.After(before) {
		t.Errorf("UpdatedAt = %v, want after %v", chat.UpdatedAt, before)
	}
	if !chat.UpdatedAt.Equal(last.Timestamp) {
		t.Errorf("UpdatedAt = %v, want reply timestamp %v", chat.UpdatedAt, last.Timestamp)
	}
}

func TestRegenerate_ReplacesTrailingReply(t *testing.T) {
	s, sched := newTestStore(t)
	s.SendMessage("X")
	sched.RunAll()

	if !s.Regenerate() {
		t.Fatal("Regenerate() should succeed after a reply")
	}
	if n := len(s.ActiveChat().Messages); n != 1 {
		t.Errorf("len(Messages) while regenerating = %d, want 1", n)
	}
	if !s.InputLocked() {
		t.Error("regenerating should lock input")
	}

	sched.RunAll()

	want := []Message{
		{Role: RoleUser, Content: "X"},
		{Role: RoleAssistant, Content: RegeneratedReplyTo("X")},
	}
	if diff := cmp.Diff(want, s.ActiveChat().Messages, ignoreMessageIdentity); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRegenerate_AddressesMostRecentUserMessage(t *testing.T) {
	s, sched := newTestStore(t)
	s.SendMessage("first question")
	sched.RunAll()
	s.SendMessage("second question")
	sched.RunAll()

	s.Regenerate()
	sched.RunAll()

	last, _ := s.ActiveChat().LastMessage()
	if last.Content != RegeneratedReplyTo("second question") {
		t.Errorf("last message = %q, want regenerated reply to the second question", last.Content)
	}
	if n := len(s.ActiveChat().Messages); n != 4 {
		t.Errorf("len(Messages) = %d, want 4", n)
	}
}

func TestRegenerate_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Store, sched *manualScheduler)
	}{
		{
			name:  "no messages",
			setup: func(*Store, *manualScheduler) {},
		},
		{
			name: "reply still pending",
			setup: func(s *Store, _ *manualScheduler) {
				s.SendMessage("waiting")
			},
		},
		{
			name: "another chat pending under global scope",
			setup: func(s *Store, sched *manualScheduler) {
				s.SetPendingScope(ScopeGlobal)
				s.SendMessage("done")
				sched.RunAll()
				other := s.ActiveID()
				s.CreateChat()
				s.SendMessage("busy")
				s.SelectChat(other)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sched := newTestStore(t)
			tt.setup(s, sched)
			before := s.ActiveChat().Messages
			queued := sched.Pending()

			if s.Regenerate() {
				t.Error("Regenerate() should be rejected")
			}
			if diff := cmp.Diff(before, s.ActiveChat().Messages); diff != "" {
				t.Errorf("messages changed (-before +after):\n%s", diff)
			}
			if sched.Pending() != queued {
				t.Errorf("scheduled tasks = %d, want %d", sched.Pending(), queued)
			}
		})
	}
}

func TestEndToEnd_FirstConversation(t *testing.T) {
	s, sched := newTestStore(t)

	s.SendMessage("Explain quantum computing")

	chat := s.ActiveChat()
	if chat.Title != "Explain quantum computing" {
		t.Errorf("Title = %q, want %q", chat.Title, "Explain quantum computing")
	}
	if !s.IsPending(chat.ID) {
		t.Error("chat should be pending after send")
	}

	sched.RunAll()

	chat = s.ActiveChat()
	if s.IsPending(chat.ID) {
		t.Error("chat should be idle after the reply")
	}
	if len(chat.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(chat.Messages))
	}
	if chat.Messages[1].Role != RoleAssistant {
		t.Errorf("Messages[1].Role = %q, want %q", chat.Messages[1].Role, RoleAssistant)
	}
}

func TestReplyDelay_WithinBounds(t *testing.T) {
	min, max := 1000*time.Millisecond, 3000*time.Millisecond
	s, sched := newTestStore(t, WithReplyDelay(min, max), WithRandSource(rand.NewPCG(1, 2)))

	for i := 0; i < 200; i++ {
		s.SendMessage("ping")
		sched.RunAll()
	}

	if len(sched.delays) != 200 {
		t.Fatalf("recorded delays = %d, want 200", len(sched.delays))
	}
	for i, d := range sched.delays {
		if d < min || d >= max {
			t.Errorf("delay[%d] = %v, want within [%v, %v)", i, d, min, max)
		}
	}
}

func TestReplyDelay_DegenerateBounds(t *testing.T) {
	s, sched := newTestStore(t, WithReplyDelay(50*time.Millisecond, 50*time.Millisecond))
	s.SendMessage("ping")

	if sched.delays[0] != 50*time.Millisecond {
		t.Errorf("delay = %v, want 50ms", sched.delays[0])
	}
}

func TestOnEvent_Sequence(t *testing.T) {
	s, sched := newTestStore(t)

	var got []EventKind
	s.OnEvent(func(e Event) {
		// Reading the store here would deadlock if observers ran under the lock.
		_ = s.Chats()
		got = append(got, e.Kind)
	})

	first := s.ActiveID()
	s.CreateChat()
	s.SelectChat(first)
	s.RenameChat(first, "Named")
	s.SendMessage("hi")
	sched.RunAll()
	s.DeleteChat(first)

	want := []EventKind{
		ChatCreated,
		ChatSelected,
		ChatRenamed,
		MessageAppended, ReplyScheduled,
		MessageAppended, ReplyDelivered,
		ChatDeleted, ChatSelected,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestOnEvent_RejectedOperationsAreSilent(t *testing.T) {
	s, _ := newTestStore(t)

	count := 0
	s.OnEvent(func(Event) { count++ })

	s.SelectChat("missing")
	s.DeleteChat(s.ActiveID())
	s.RenameChat(s.ActiveID(), " ")
	s.SendMessage("")
	s.Regenerate()

	if count != 0 {
		t.Errorf("observer called %d times, want 0", count)
	}
}

func TestChats_Summaries(t *testing.T) {
	s, sched := newTestStore(t)
	older := s.ActiveID()
	s.SendMessage("hello")
	sched.RunAll()
	newer := s.CreateChat()
	s.SendMessage("pending one")

	got := s.Chats()
	want := []ChatSummary{
		{ID: newer, Title: "pending one", MessageCount: 1, Pending: true},
		{ID: older, Title: "hello", MessageCount: 2, Pending: false},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(ChatSummary{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("Chats() mismatch (-want +got):\n%s", diff)
	}
}

func TestActiveChat_ReturnsCopy(t *testing.T) {
	s, sched := newTestStore(t)
	s.SendMessage("original")
	sched.RunAll()

	chat := s.ActiveChat()
	chat.Messages[0].Content = "tampered"
	chat.Title = "tampered"

	fresh := s.ActiveChat()
	if fresh.Messages[0].Content != "original" {
		t.Errorf("store message mutated through copy: %q", fresh.Messages[0].Content)
	}
	if fresh.Title == "tampered" {
		t.Error("store title mutated through copy")
	}
}

func TestChat_LastAssistantMessage(t *testing.T) {
	s, sched := newTestStore(t)
	if _, ok := s.ActiveChat().LastAssistantMessage(); ok {
		t.Error("empty chat should have no assistant message")
	}

	s.SendMessage("q")
	sched.RunAll()
	s.SendMessage("q2")

	msg, ok := s.ActiveChat().LastAssistantMessage()
	if !ok || msg.Content != ReplyTo("q") {
		t.Errorf("LastAssistantMessage() = %q, %v; want reply to q", msg.Content, ok)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	sched := NewTimerScheduler()
	s := New(WithScheduler(sched), WithReplyDelay(time.Millisecond, 3*time.Millisecond))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				id := s.CreateChat()
				s.SendMessage("concurrent")
				_ = s.Chats()
				_ = s.InputLocked()
				s.SelectChat(id)
			}
		}()
	}
	wg.Wait()
	sched.Wait()

	if s.AnyPending() {
		t.Error("no reply should be pending after the scheduler drains")
	}
}

func TestParsePendingScope(t *testing.T) {
	tests := []struct {
		in   string
		want PendingScope
	}{
		{"chat", ScopeChat},
		{"global", ScopeGlobal},
		{"", ScopeChat},
		{"bogus", ScopeChat},
	}

	for _, tt := range tests {
		if got := ParsePendingScope(tt.in); got != tt.want {
			t.Errorf("ParsePendingScope(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.in == "chat" || tt.in == "global" {
			if got := ParsePendingScope(tt.in).String(); got != tt.in {
				t.Errorf("String() = %q, want %q", got, tt.in)
			}
		}
	}
}
