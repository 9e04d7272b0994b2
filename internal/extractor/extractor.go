package extractor

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/aleister1102/linkcheck/internal/config"
	"github.com/aleister1102/linkcheck/internal/models"
	"github.com/aleister1102/linkcheck/internal/urlhandler"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// elementRule maps an element to the attribute holding its reference.
type elementRule struct {
	Kind      models.ResourceKind
	Tag       string
	Attribute string
}

// Categories are collected in this order; document order is kept within each.
var defaultRules = []elementRule{
	{models.ResourceKindScript, "script", "src"},
	{models.ResourceKindLink, "link", "href"},
	{models.ResourceKindImage, "img", "src"},
}

// ResourceExtractor collects script, link and image references from a page.
type ResourceExtractor struct {
	normalizer *urlhandler.ReferenceNormalizer
	linkRels   map[string]struct{}
	rules      []elementRule
	logger     zerolog.Logger
}

// NewResourceExtractor creates an extractor that resolves references with normalizer.
func NewResourceExtractor(normalizer *urlhandler.ReferenceNormalizer, cfg config.ExtractorConfig, logger zerolog.Logger) (*ResourceExtractor, error) {
	if normalizer == nil {
		return nil, common.NewValidationError("normalizer", nil, "normalizer is required")
	}

	var rels map[string]struct{}
	if len(cfg.LinkRels) > 0 {
		rels = make(map[string]struct{}, len(cfg.LinkRels))
		for _, rel := range cfg.LinkRels {
			rels[strings.ToLower(strings.TrimSpace(rel))] = struct{}{}
		}
	}

	return &ResourceExtractor{
		normalizer: normalizer,
		linkRels:   rels,
		rules:      defaultRules,
		logger:     logger.With().Str("module", "ResourceExtractor").Logger(),
	}, nil
}

// Extract parses markup and returns every non-empty reference, resolved, in collection order.
// Duplicates are kept.
func (re *ResourceExtractor) Extract(markup []byte) ([]models.Resource, error) {
	return re.ExtractFrom(bytes.NewReader(markup))
}

// ExtractFrom is Extract over a reader.
func (re *ResourceExtractor) ExtractFrom(r io.Reader) ([]models.Resource, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	doc := goquery.NewDocumentFromNode(root)

	resources := make([]models.Resource, 0, 32)
	for _, rule := range re.rules {
		var ruleErr error
		doc.Find(rule.Tag).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			raw, exists := s.Attr(rule.Attribute)
			if !exists || raw == "" {
				return true
			}
			if rule.Kind == models.ResourceKindLink && !re.acceptLink(s) {
				return true
			}

			resolved, err := re.normalizer.Normalize(raw)
			if err != nil {
				ruleErr = err
				return false
			}

			resources = append(resources, models.Resource{
				URL:       resolved,
				Raw:       raw,
				Kind:      rule.Kind,
				Tag:       rule.Tag,
				Attribute: rule.Attribute,
			})
			return true
		})
		if ruleErr != nil {
			re.logger.Error().Err(ruleErr).Str("tag", rule.Tag).Msg("Failed to normalize resource reference")
			return nil, ruleErr
		}
	}

	re.logger.Debug().Int("count", len(resources)).Str("base", re.normalizer.Base().String()).Msg("Resources extracted")
	return resources, nil
}

// ExtractURLs returns only the resolved URLs of Extract.
func (re *ResourceExtractor) ExtractURLs(markup []byte) ([]string, error) {
	resources, err := re.Extract(markup)
	if err != nil {
		return nil, err
	}
	return models.URLs(resources), nil
}

// acceptLink applies the rel filter; without one every link counts.
func (re *ResourceExtractor) acceptLink(s *goquery.Selection) bool {
	if len(re.linkRels) == 0 {
		return true
	}
	for _, rel := range strings.Fields(strings.ToLower(s.AttrOr("rel", ""))) {
		if _, ok := re.linkRels[rel]; ok {
			return true
		}
	}
	return false
}

// Extract resolves the references in markup against base using the default settings.
func Extract(markup []byte, base *url.URL) ([]string, error) {
	normalizer, err := urlhandler.NewReferenceNormalizer(base, "")
	if err != nil {
		return nil, err
	}
	re, err := NewResourceExtractor(normalizer, config.NewDefaultExtractorConfig(), zerolog.Nop())
	if err != nil {
		return nil, err
	}
	return re.ExtractURLs(markup)
}
