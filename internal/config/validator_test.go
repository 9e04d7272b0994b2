package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *GlobalConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *GlobalConfig) {},
		},
		{
			name:   "head probes allowed",
			mutate: func(cfg *GlobalConfig) { cfg.CheckerConfig.Method = "head" },
		},
		{
			name:   "unparsable target left to the run",
			mutate: func(cfg *GlobalConfig) { cfg.TargetConfig.TargetURL = "site.com/page" },
		},
		{
			name:    "unsupported probe method",
			mutate:  func(cfg *GlobalConfig) { cfg.CheckerConfig.Method = "POST" },
			wantErr: "rule 'httpmethod'",
		},
		{
			name:    "negative concurrency",
			mutate:  func(cfg *GlobalConfig) { cfg.CheckerConfig.MaxConcurrency = -1 },
			wantErr: "CheckerConfig.MaxConcurrency",
		},
		{
			name:    "unknown normalize strategy",
			mutate:  func(cfg *GlobalConfig) { cfg.ExtractorConfig.NormalizeStrategy = "prefix" },
			wantErr: "rule 'normalizestrategy'",
		},
		{
			name:    "unknown provider",
			mutate:  func(cfg *GlobalConfig) { cfg.NotificationConfig.Provider = "teams" },
			wantErr: "rule 'notifyprovider'",
		},
		{
			name:    "invalid webhook",
			mutate:  func(cfg *GlobalConfig) { cfg.NotificationConfig.WebhookURL = "hooks" },
			wantErr: "NotificationConfig.WebhookURL",
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" },
			wantErr: "rule 'loglevel'",
		},
		{
			name:    "invalid log format",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogFormat = "xml" },
			wantErr: "rule 'logformat'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))
}
