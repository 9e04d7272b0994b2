package notifier

import (
	"strings"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/aleister1102/linkcheck/internal/config"
	"github.com/aleister1102/linkcheck/internal/httpclient"
	"github.com/rs/zerolog"
)

// NewNotifier returns the notifier for cfg.Provider. An empty provider means Slack.
func NewNotifier(cfg config.NotificationConfig, client *httpclient.HTTPClient, logger zerolog.Logger) (Notifier, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", config.NotificationProviderSlack:
		return NewSlackNotifier(client, logger)
	case config.NotificationProviderDiscord:
		return NewDiscordNotifier(client, logger)
	default:
		return nil, common.NewConfigurationError("notification_config", "provider", "unsupported provider '"+cfg.Provider+"'")
	}
}
