package orchestrator

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/aleister1102/linkcheck/internal/config"
	"github.com/aleister1102/linkcheck/internal/extractor"
	"github.com/aleister1102/linkcheck/internal/httpclient"
	"github.com/aleister1102/linkcheck/internal/models"
	"github.com/aleister1102/linkcheck/internal/urlhandler"
	"github.com/rs/zerolog"
)

// Error codes for failures that do not come from the network.
const (
	CodeInvalidURL = "EINVALIDURL"
	CodeParse      = "EPARSE"
)

// PageFetcher downloads the target page.
type PageFetcher interface {
	FetchContent(ctx context.Context, rawURL string) (*httpclient.FetchContentResult, error)
}

// LinkChecker returns the unreachable subset of urls.
type LinkChecker interface {
	CheckAll(ctx context.Context, urls []string) []string
}

// Reporter delivers run results. Both methods report whether a message went out.
type Reporter interface {
	SendBrokenLinksReport(ctx context.Context, target string, total int, broken []string) bool
	SendErrorNotification(ctx context.Context, target, errorCode string) bool
}

// Response is what the entry point hands back to its caller, whatever happened during the run.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Orchestrator runs fetch, extract, check and notify once per call.
type Orchestrator struct {
	cfg      *config.GlobalConfig
	fetcher  PageFetcher
	checker  LinkChecker
	reporter Reporter
	logger   zerolog.Logger
}

// NewOrchestrator wires the run steps together.
func NewOrchestrator(cfg *config.GlobalConfig, fetcher PageFetcher, checker LinkChecker, reporter Reporter, logger zerolog.Logger) *Orchestrator {
	if cfg == nil {
		cfg = config.NewDefaultGlobalConfig()
	}
	return &Orchestrator{
		cfg:      cfg,
		fetcher:  fetcher,
		checker:  checker,
		reporter: reporter,
		logger:   logger.With().Str("module", "Orchestrator").Logger(),
	}
}

// Handle runs once and always answers {200, "{}"}. Outcomes only surface through logs and notifications.
func (o *Orchestrator) Handle(ctx context.Context) Response {
	outcome := o.Run(ctx)
	o.logger.Info().
		Str("status", string(outcome.Status)).
		Str("failed_stage", string(outcome.FailedStage)).
		Int("total", outcome.TotalResources).
		Int("broken", len(outcome.BrokenURLs)).
		Bool("notified", outcome.Notified).
		Dur("duration", outcome.Duration).
		Msg("Run finished")
	return Response{StatusCode: 200, Body: "{}"}
}

// Run performs one scan of the configured target.
//
// A missing target aborts before any network I/O. Fetch, extract and check failures all
// end in the same error notification; the outcome records which stage failed. A run with
// no broken references sends nothing.
func (o *Orchestrator) Run(ctx context.Context) (outcome models.RunOutcome) {
	start := time.Now()
	defer func() { outcome.Duration = time.Since(start) }()

	target := strings.TrimSpace(o.cfg.TargetConfig.TargetURL)
	outcome.TargetURL = target

	if target == "" {
		o.logger.Error().Str("env", config.EnvTargetURL).Msg("Target URL is not configured, aborting run")
		outcome.Status = models.RunStatusAborted
		outcome.FailedStage = models.RunStageConfig
		outcome.Err = config.ErrTargetMissing
		return outcome
	}
	o.warnMissingSettings()
	o.logger.Info().Str("target", target).Str("channel", o.cfg.NotificationConfig.Channel).Msg("Starting link check")

	base, err := urlhandler.ParseTargetURL(target)
	if err != nil {
		return o.fail(ctx, outcome, models.RunStageFetch, err)
	}

	page, err := o.fetcher.FetchContent(ctx, target)
	if err != nil {
		return o.fail(ctx, outcome, models.RunStageFetch, err)
	}

	normalizer, err := urlhandler.NewReferenceNormalizer(base, o.cfg.ExtractorConfig.NormalizeStrategy)
	if err != nil {
		return o.fail(ctx, outcome, models.RunStageExtract, err)
	}
	resourceExtractor, err := extractor.NewResourceExtractor(normalizer, o.cfg.ExtractorConfig, o.logger)
	if err != nil {
		return o.fail(ctx, outcome, models.RunStageExtract, err)
	}
	urls, err := resourceExtractor.ExtractURLs(page.Content)
	if err != nil {
		return o.fail(ctx, outcome, models.RunStageExtract, err)
	}
	outcome.TotalResources = len(urls)

	broken := o.checker.CheckAll(ctx, urls)
	if err := ctx.Err(); err != nil {
		// Cancelled probes all read as broken; report the cancellation instead.
		return o.fail(ctx, outcome, models.RunStageCheck, err)
	}
	outcome.BrokenURLs = broken
	o.logger.Info().Strs("broken_urls", broken).Int("total", len(urls)).Msg("Check complete")

	if len(broken) == 0 {
		outcome.Status = models.RunStatusClean
		return outcome
	}

	outcome.Status = models.RunStatusBrokenFound
	outcome.Notified = o.reporter.SendBrokenLinksReport(ctx, target, len(urls), broken)
	return outcome
}

func (o *Orchestrator) fail(ctx context.Context, outcome models.RunOutcome, stage models.RunStage, err error) models.RunOutcome {
	code := ErrorCode(err)
	o.logger.Error().Err(err).Str("stage", string(stage)).Str("error_code", code).Str("target", outcome.TargetURL).Msg("Link check failed")

	outcome.Status = models.RunStatusFailed
	outcome.FailedStage = stage
	outcome.Err = err
	outcome.ErrorCode = code
	// A cancelled run still reports, so detach from the cancellation.
	outcome.Notified = o.reporter.SendErrorNotification(context.WithoutCancel(ctx), outcome.TargetURL, code)
	return outcome
}

func (o *Orchestrator) warnMissingSettings() {
	if o.cfg.NotificationConfig.WebhookURL == "" {
		o.logger.Warn().Str("env", config.EnvWebhookURL).Msg("Webhook URL is not configured, notifications will be skipped")
	}
	if o.cfg.NotificationConfig.Channel == "" {
		o.logger.Warn().Str("env", config.EnvChannelName).Msg("Channel name is not configured")
	}
}

// ErrorCode maps a run failure to the code shown in the error notification.
func ErrorCode(err error) string {
	var malformed *urlhandler.MalformedReferenceError
	var parseErr *extractor.ParseError
	var urlErr *url.Error
	switch {
	case errors.As(err, &malformed):
		return CodeInvalidURL
	case errors.As(err, &parseErr):
		return CodeParse
	case errors.Is(err, common.ErrInvalidInput):
		return CodeInvalidURL
	case errors.As(err, &urlErr) && urlErr.Op == "parse":
		return CodeInvalidURL
	}
	return httpclient.ErrorCode(err)
}
