package config

import "strings"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnvOverrides copies non-blank environment values over the file configuration.
// It returns the names of the variables that were applied.
func ApplyEnvOverrides(cfg *GlobalConfig, lookup LookupFunc) []string {
	if cfg == nil || lookup == nil {
		return nil
	}

	bindings := []struct {
		key    string
		target *string
	}{
		{EnvTargetURL, &cfg.TargetConfig.TargetURL},
		{EnvWebhookURL, &cfg.NotificationConfig.WebhookURL},
		{EnvChannelName, &cfg.NotificationConfig.Channel},
	}

	var applied []string
	for _, b := range bindings {
		value, ok := lookup(b.key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		*b.target = strings.TrimSpace(value)
		applied = append(applied, b.key)
	}
	return applied
}
