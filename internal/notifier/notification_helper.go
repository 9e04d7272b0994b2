package notifier

import (
	"context"

	"github.com/aleister1102/linkcheck/internal/config"
	"github.com/rs/zerolog"
)

// NotificationHelper turns run results into messages and hands them to the configured notifier.
// Delivery failures are logged and swallowed.
type NotificationHelper struct {
	notifier Notifier
	cfg      config.NotificationConfig
	logger   zerolog.Logger
}

// NewNotificationHelper creates a new NotificationHelper.
func NewNotificationHelper(n Notifier, cfg config.NotificationConfig, logger zerolog.Logger) *NotificationHelper {
	return &NotificationHelper{
		notifier: n,
		cfg:      cfg,
		logger:   logger.With().Str("module", "NotificationHelper").Logger(),
	}
}

// Enabled reports whether a webhook is configured.
func (nh *NotificationHelper) Enabled() bool {
	return nh.notifier != nil && nh.cfg.WebhookURL != ""
}

// SendBrokenLinksReport notifies about broken references found on target. It returns true when delivered.
func (nh *NotificationHelper) SendBrokenLinksReport(ctx context.Context, target string, total int, broken []string) bool {
	return nh.send(ctx, "broken_links", FormatBrokenLinksMessage(target, total, broken))
}

// SendErrorNotification reports a failed run. It returns true when delivered.
func (nh *NotificationHelper) SendErrorNotification(ctx context.Context, target, errorCode string) bool {
	if !nh.cfg.NotifyOnFailure {
		nh.logger.Info().Str("error_code", errorCode).Msg("Failure notifications are disabled, skipping.")
		return false
	}
	return nh.send(ctx, "error", FormatErrorMessage(target, errorCode))
}

func (nh *NotificationHelper) send(ctx context.Context, kind, text string) bool {
	nh.logger.Info().Str("kind", kind).Msg(text)

	if !nh.Enabled() {
		nh.logger.Warn().Str("kind", kind).Msg("Webhook URL is not configured. Skipping notification.")
		return false
	}

	if timeout := nh.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	msg := Message{
		Channel:  nh.cfg.Channel,
		IconURL:  nh.cfg.IconURL,
		Text:     text,
		Username: nh.cfg.Username,
	}
	if err := nh.notifier.Send(ctx, nh.cfg.WebhookURL, msg); err != nil {
		nh.logger.Error().Err(err).Str("kind", kind).Msg("Failed to send notification")
		return false
	}

	nh.logger.Info().Str("kind", kind).Msg("Notification sent successfully.")
	return true
}
