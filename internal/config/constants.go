package config

const (
	// Target Defaults
	DefaultTargetURL = ""

	// Checker Defaults
	DefaultCheckerMethod           = "GET"
	DefaultCheckerMaxConcurrency   = 0 // 0 means every probe runs at once
	DefaultCheckerProbeTimeoutSecs = 0 // 0 defers to the HTTP client timeout

	// Extractor Defaults
	DefaultExtractorNormalizeStrategy = NormalizeStrategyHostSubstring

	// HTTP Client Defaults
	DefaultHTTPClientUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultHTTPClientTimeoutSecs     = 30
	DefaultHTTPClientFollowRedirects = true
	DefaultHTTPClientMaxRedirects    = 10
	DefaultHTTPClientEnableHTTP2     = true
	DefaultHTTPClientMaxContentBytes = 10 * 1024 * 1024

	// Notification Defaults
	DefaultNotificationProvider    = NotificationProviderSlack
	DefaultNotificationUsername    = "Links Checker"
	DefaultNotificationIconURL     = "https://s3-ap-northeast-1.amazonaws.com/sw-misc/sharewis3_app.png"
	DefaultNotificationTimeoutSecs = 20

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// Normalization strategies for references that fail absolute parsing
const (
	NormalizeStrategyHostSubstring    = "host_substring"
	NormalizeStrategyProtocolRelative = "protocol_relative"
)

// Supported notification providers
const (
	NotificationProviderSlack   = "slack"
	NotificationProviderDiscord = "discord"
)

// Environment variables read at start-up
const (
	EnvConfigPath  = "LINKCHECK_CONFIG_PATH"
	EnvTargetURL   = "TARGET_URL"
	EnvWebhookURL  = "SLACK_WEBHOOK_URL"
	EnvChannelName = "CHANNEL_NAME"
)
