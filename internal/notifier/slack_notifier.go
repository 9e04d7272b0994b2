package notifier

import (
	"context"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/aleister1102/linkcheck/internal/httpclient"
	"github.com/aleister1102/linkcheck/internal/notifier/slack"
	"github.com/rs/zerolog"
)

// SlackNotifier posts messages to a Slack incoming webhook.
type SlackNotifier struct {
	client *httpclient.HTTPClient
	logger zerolog.Logger
}

// NewSlackNotifier creates a new SlackNotifier.
func NewSlackNotifier(client *httpclient.HTTPClient, logger zerolog.Logger) (*SlackNotifier, error) {
	if client == nil {
		return nil, common.NewValidationError("http_client", nil, "HTTP client is required")
	}
	return &SlackNotifier{
		client: client,
		logger: logger.With().Str("module", "SlackNotifier").Logger(),
	}, nil
}

// Send posts msg as {channel, icon_url, text, username}.
func (sn *SlackNotifier) Send(ctx context.Context, webhookURL string, msg Message) error {
	payload := slack.NewSlackMessagePayloadBuilder().
		WithChannel(msg.Channel).
		WithIconURL(msg.IconURL).
		WithText(msg.Text).
		WithUsername(msg.Username).
		Build()

	if err := postJSON(ctx, sn.client, webhookURL, payload); err != nil {
		return common.WrapError(err, "failed to send slack notification")
	}

	sn.logger.Debug().Str("channel", msg.Channel).Msg("Slack notification delivered")
	return nil
}
