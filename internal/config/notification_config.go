package config

import "time"

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	Provider        string `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,notifyprovider"`
	WebhookURL      string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"omitempty,url"`
	Channel         string `json:"channel,omitempty" yaml:"channel,omitempty"`
	Username        string `json:"username,omitempty" yaml:"username,omitempty"`
	IconURL         string `json:"icon_url,omitempty" yaml:"icon_url,omitempty" validate:"omitempty,url"`
	NotifyOnFailure bool   `json:"notify_on_failure" yaml:"notify_on_failure"`
	TimeoutSecs     int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=0"`
}

// Timeout returns the webhook delivery timeout.
func (c NotificationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Provider:        DefaultNotificationProvider,
		WebhookURL:      "",
		Channel:         "",
		Username:        DefaultNotificationUsername,
		IconURL:         DefaultNotificationIconURL,
		NotifyOnFailure: true,
		TimeoutSecs:     DefaultNotificationTimeoutSecs,
	}
}
