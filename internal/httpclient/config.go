package httpclient

import (
	"time"

	"github.com/aleister1102/linkcheck/internal/config"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout               time.Duration     // Request timeout
	InsecureSkipVerify    bool              // Skip TLS verification
	FollowRedirects       bool              // Whether to follow redirects
	MaxRedirects          int               // Maximum number of redirects to follow
	Proxy                 string            // Proxy URL
	CustomHeaders         map[string]string // Headers added to every request
	UserAgent             string            // User-Agent header
	MaxContentSize        int               // Response body cap in bytes, 0 for no limit
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	MaxConnsPerHost       int // 0 means no limit
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration
	DialTimeout           time.Duration
	KeepAlive             time.Duration
	EnableHTTP2           bool
}

// DefaultHTTPClientConfig returns the default HTTP client configuration
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               time.Duration(config.DefaultHTTPClientTimeoutSecs) * time.Second,
		InsecureSkipVerify:    false,
		FollowRedirects:       config.DefaultHTTPClientFollowRedirects,
		MaxRedirects:          config.DefaultHTTPClientMaxRedirects,
		UserAgent:             config.DefaultHTTPClientUserAgent,
		MaxContentSize:        config.DefaultHTTPClientMaxContentBytes,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       0,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		EnableHTTP2:           config.DefaultHTTPClientEnableHTTP2,
		CustomHeaders: map[string]string{
			"Accept":          "*/*",
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
}

// FromAppConfig overlays the user-facing http_client_config section on the defaults.
func FromAppConfig(cfg config.HTTPClientConfig) HTTPClientConfig {
	c := DefaultHTTPClientConfig()
	if cfg.TimeoutSecs > 0 {
		c.Timeout = cfg.Timeout()
	}
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	c.InsecureSkipVerify = cfg.InsecureSkipVerify
	c.FollowRedirects = cfg.FollowRedirects
	c.MaxRedirects = cfg.MaxRedirects
	c.EnableHTTP2 = cfg.EnableHTTP2
	c.Proxy = cfg.Proxy
	c.MaxContentSize = cfg.MaxContentBytes
	for k, v := range cfg.CustomHeaders {
		c.CustomHeaders[k] = v
	}
	return c
}
