package session

import "fmt"

const (
	replyTemplate = `I'm a terminal chat clone. You said: "%s". Everything here runs locally, ` +
		`so I can't actually work on your request, but the interface behaves like the real thing: ` +
		`chat history, message actions and a typing indicator all work.`

	regenerateTemplate = `Here's a regenerated reply to: "%s". This is still a local demo, ` +
		`but the wording changed so you can see regeneration at work. ` +
		`Sidebar navigation, renaming and copying are all available too.`
)

// replyJob is a reply waiting for its delay to elapse.
type replyJob struct {
	chatID     string
	addressed  string
	regenerate bool
}

// content renders the assistant text for the job.
func (j replyJob) content() string {
	if j.regenerate {
		return RegeneratedReplyTo(j.addressed)
	}
	return ReplyTo(j.addressed)
}

// ReplyTo returns the synthetic reply to a user message. The store delivers
// exactly this text, so callers can predict a reply.
func ReplyTo(userText string) string {
	return fmt.Sprintf(replyTemplate, userText)
}

// RegeneratedReplyTo returns the synthetic regenerated reply to a user message.
func RegeneratedReplyTo(userText string) string {
	return fmt.Sprintf(regenerateTemplate, userText)
}
