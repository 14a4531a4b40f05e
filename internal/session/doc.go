// Package session holds the chat state that the UI manipulates.
//
// # Overview
//
// A Store owns an ordered list of chats and a pointer to the active one.
// Every mutation goes through the Store, which keeps two invariants:
//   - there is always at least one chat
//   - the active ID always names an existing chat
//
// # Replies
//
// Sending a message (or regenerating the last reply) marks the chat pending
// and hands a delivery task to a Scheduler. The task fires once after a
// random delay and appends a synthetic assistant message that echoes the
// user's text. A reply always lands in the chat it was scheduled for, even
// if the user has switched to another chat in the meantime. If the chat was
// deleted before the task fires, the reply is dropped.
//
// Whether a pending reply blocks only its own chat or every chat is chosen
// with WithPendingScope.
//
// # Schedulers
//
// TimerScheduler runs tasks on timer goroutines and suits headless use. The
// TUI supplies its own scheduler that turns each task into a bubbletea tick
// so the task runs on the update loop. The Store guards its state with a
// mutex, so both are safe.
//
// # Events
//
// Observers registered with OnEvent are told about every state change after
// the Store's lock is released.
package session
