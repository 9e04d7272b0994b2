package urlhandler

import (
	"errors"
	"net/url"
	"strings"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/aleister1102/linkcheck/internal/config"
)

// ReferenceNormalizer turns src/href attribute values into absolute URLs for one page.
//
// Absolute references pass through untouched. Anything else is either treated as
// scheme-relative (the scheme of the page is prepended) or resolved against the
// page origin. Which references count as scheme-relative depends on the strategy:
//   - host_substring: the raw value contains the page host anywhere
//   - protocol_relative: the raw value starts with "//"
//
// Relative paths resolve against the origin, never the page path, so "img/a.png"
// on https://site.com/docs/page becomes https://site.com/img/a.png.
type ReferenceNormalizer struct {
	base     *url.URL
	origin   *url.URL
	strategy string
}

// NewReferenceNormalizer creates a normalizer for pages under base.
// An empty strategy selects host_substring.
func NewReferenceNormalizer(base *url.URL, strategy string) (*ReferenceNormalizer, error) {
	if base == nil || !base.IsAbs() || base.Host == "" {
		return nil, common.NewValidationError("base", base, "base URL must be absolute with a host")
	}

	switch strategy {
	case "":
		strategy = config.NormalizeStrategyHostSubstring
	case config.NormalizeStrategyHostSubstring, config.NormalizeStrategyProtocolRelative:
	default:
		return nil, common.NewValidationError("normalize_strategy", strategy, "unknown strategy")
	}

	return &ReferenceNormalizer{
		base:     base,
		origin:   Origin(base),
		strategy: strategy,
	}, nil
}

// Base returns the page URL references are resolved for.
func (n *ReferenceNormalizer) Base() *url.URL {
	return n.base
}

// Normalize resolves raw. The result always parses as a URL; otherwise a
// *MalformedReferenceError is returned.
func (n *ReferenceNormalizer) Normalize(raw string) (string, error) {
	ref := strings.TrimSpace(raw)

	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref, nil
	}

	if n.isSchemeRelative(ref) {
		resolved := n.base.Scheme + ":" + ref
		if _, err := url.Parse(resolved); err != nil {
			return "", n.malformed(raw, err)
		}
		return resolved, nil
	}

	resolved, err := n.origin.Parse(ref)
	if err != nil {
		return "", n.malformed(raw, err)
	}
	if resolved.Host == "" {
		return "", n.malformed(raw, errors.New("resolved URL has no host"))
	}
	return resolved.String(), nil
}

func (n *ReferenceNormalizer) isSchemeRelative(ref string) bool {
	if n.strategy == config.NormalizeStrategyProtocolRelative {
		return strings.HasPrefix(ref, "//")
	}
	return strings.Contains(ref, n.base.Host)
}

func (n *ReferenceNormalizer) malformed(raw string, err error) error {
	return &MalformedReferenceError{Raw: raw, Base: n.base.String(), Err: err}
}

// Normalize resolves raw against base with the default host_substring strategy.
func Normalize(raw string, base *url.URL) (string, error) {
	n, err := NewReferenceNormalizer(base, "")
	if err != nil {
		return "", err
	}
	return n.Normalize(raw)
}
