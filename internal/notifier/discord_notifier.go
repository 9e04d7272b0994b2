package notifier

import (
	"context"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/aleister1102/linkcheck/internal/httpclient"
	"github.com/aleister1102/linkcheck/internal/notifier/discord"
	"github.com/rs/zerolog"
)

// DiscordNotifier handles sending notifications to a Discord webhook.
// Discord webhooks are bound to a channel, so Message.Channel is ignored.
type DiscordNotifier struct {
	client *httpclient.HTTPClient
	logger zerolog.Logger
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(client *httpclient.HTTPClient, logger zerolog.Logger) (*DiscordNotifier, error) {
	if client == nil {
		return nil, common.NewValidationError("http_client", nil, "HTTP client is required")
	}
	return &DiscordNotifier{
		client: client,
		logger: logger.With().Str("module", "DiscordNotifier").Logger(),
	}, nil
}

// Send posts msg as a plain content message.
func (dn *DiscordNotifier) Send(ctx context.Context, webhookURL string, msg Message) error {
	payload := discord.NewDiscordMessagePayloadBuilder().
		WithContent(msg.Text).
		WithUsername(msg.Username).
		WithAvatarURL(msg.IconURL).
		Build()

	if err := postJSON(ctx, dn.client, webhookURL, payload); err != nil {
		return common.WrapError(err, "failed to send discord notification")
	}

	dn.logger.Debug().Msg("Discord notification delivered")
	return nil
}
