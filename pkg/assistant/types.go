package assistant

import "context"

// Reply is a generated assistant response. Topic names the matched subject
// ("greeting", "privacy", ...) or "generic" for the fallback.
type Reply struct {
	Text  string
	Topic string
}

// Responder generates the assistant's reply to a user message.
type Responder interface {
	Reply(ctx context.Context, username, message string) (Reply, error)
}
