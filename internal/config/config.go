package config

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrTargetMissing is returned when a run starts without a target URL.
var ErrTargetMissing = errors.New("target URL is not configured")

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	TargetConfig       TargetConfig       `json:"target_config,omitempty" yaml:"target_config,omitempty"`
	CheckerConfig      CheckerConfig      `json:"checker_config,omitempty" yaml:"checker_config,omitempty"`
	ExtractorConfig    ExtractorConfig    `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	HTTPClientConfig   HTTPClientConfig   `json:"http_client_config,omitempty" yaml:"http_client_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// TargetConfig holds the page to scan. The URL is checked when a run starts, not at load time.
type TargetConfig struct {
	TargetURL string `json:"target_url,omitempty" yaml:"target_url,omitempty"`
}

// CheckerConfig controls reachability probing.
type CheckerConfig struct {
	Method           string `json:"method,omitempty" yaml:"method,omitempty" validate:"omitempty,httpmethod"`
	MaxConcurrency   int    `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty" validate:"min=0"`
	ProbeTimeoutSecs int    `json:"probe_timeout_secs,omitempty" yaml:"probe_timeout_secs,omitempty" validate:"min=0"`
}

// ProbeTimeout returns the per-probe deadline, zero when disabled.
func (c CheckerConfig) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSecs) * time.Second
}

// ExtractorConfig controls which references are collected and how they are resolved.
type ExtractorConfig struct {
	// LinkRels restricts <link> elements to these rel values; empty keeps every <link href>.
	LinkRels          []string `json:"link_rels,omitempty" yaml:"link_rels,omitempty" validate:"omitempty,dive,required"`
	NormalizeStrategy string   `json:"normalize_strategy,omitempty" yaml:"normalize_strategy,omitempty" validate:"omitempty,normalizestrategy"`
}

// HTTPClientConfig configures the shared HTTP client used for page fetches and probes.
type HTTPClientConfig struct {
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	TimeoutSecs        int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=0"`
	FollowRedirects    bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
	MaxContentBytes    int               `json:"max_content_bytes,omitempty" yaml:"max_content_bytes,omitempty" validate:"min=0"`
}

// Timeout returns the request timeout as a duration.
func (c HTTPClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		TargetConfig:       NewDefaultTargetConfig(),
		CheckerConfig:      NewDefaultCheckerConfig(),
		ExtractorConfig:    NewDefaultExtractorConfig(),
		HTTPClientConfig:   NewDefaultHTTPClientConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		LogConfig:          NewDefaultLogConfig(),
	}
}

func NewDefaultTargetConfig() TargetConfig {
	return TargetConfig{
		TargetURL: DefaultTargetURL,
	}
}

func NewDefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{
		Method:           DefaultCheckerMethod,
		MaxConcurrency:   DefaultCheckerMaxConcurrency,
		ProbeTimeoutSecs: DefaultCheckerProbeTimeoutSecs,
	}
}

func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		LinkRels:          []string{},
		NormalizeStrategy: DefaultExtractorNormalizeStrategy,
	}
}

func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		UserAgent:          DefaultHTTPClientUserAgent,
		TimeoutSecs:        DefaultHTTPClientTimeoutSecs,
		FollowRedirects:    DefaultHTTPClientFollowRedirects,
		MaxRedirects:       DefaultHTTPClientMaxRedirects,
		InsecureSkipVerify: false,
		EnableHTTP2:        DefaultHTTPClientEnableHTTP2,
		CustomHeaders:      make(map[string]string),
		MaxContentBytes:    DefaultHTTPClientMaxContentBytes,
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is used if the file extension is .yaml or .yml.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()
	fileManager := common.NewFileManager(logger)

	if providedPath != "" && !fileManager.FileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return cfg, nil
	}

	data, err := loadConfigFileContent(fileManager, filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	logger.Debug().Str("path", filePath).Msg("Configuration file loaded")
	return cfg, nil
}

// loadConfigFileContent reads the config file using FileManager
func loadConfigFileContent(fileManager *common.FileManager, filePath string) ([]byte, error) {
	return fileManager.ReadFile(filePath, common.DefaultFileReadOptions())
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
