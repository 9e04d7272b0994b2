package notifier

import "context"

// Message is the provider-neutral notification handed over by the orchestrator.
type Message struct {
	Channel  string
	IconURL  string
	Text     string
	Username string
}

// Notifier delivers a message to a webhook once. Implementations never retry.
type Notifier interface {
	Send(ctx context.Context, webhookURL string, msg Message) error
}
