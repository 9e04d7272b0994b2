package urlhandler

import (
	"net/url"
	"strings"

	"github.com/aleister1102/linkcheck/internal/common"
)

// ParseTargetURL parses the page to scan. Only absolute http(s) URLs with a host are accepted.
func ParseTargetURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, common.NewValidationError("target_url", rawURL, "URL is empty or only whitespace")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, common.WrapErrorf(err, "could not parse target URL '%s'", trimmed)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, common.NewValidationError("target_url", rawURL, "scheme must be http or https")
	}
	if parsed.Host == "" {
		return nil, common.NewValidationError("target_url", rawURL, "URL lacks a valid hostname")
	}

	return parsed, nil
}

// Origin returns scheme://host/ of base, dropping path, query and fragment.
func Origin(base *url.URL) *url.URL {
	return &url.URL{
		Scheme: base.Scheme,
		Host:   base.Host,
		Path:   "/",
	}
}
