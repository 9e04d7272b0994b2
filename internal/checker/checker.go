package checker

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/aleister1102/linkcheck/internal/config"
	"github.com/aleister1102/linkcheck/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Prober performs one reachability request. *httpclient.HTTPClient satisfies it.
type Prober interface {
	Probe(ctx context.Context, method, rawURL string) error
}

// Checker probes resource URLs and reports which ones are unreachable.
//
// Every failure mode (DNS, refused connection, timeout, TLS, status >= 400) collapses
// into "unreachable". Probes fan out concurrently, unbounded unless MaxConcurrency is set,
// and identical URLs in flight at the same time share one request.
type Checker struct {
	prober         Prober
	method         string
	maxConcurrency int
	probeTimeout   time.Duration
	flight         singleflight.Group
	logger         zerolog.Logger
}

// NewChecker creates a checker from the checker_config section.
func NewChecker(prober Prober, cfg config.CheckerConfig, logger zerolog.Logger) (*Checker, error) {
	if prober == nil {
		return nil, common.NewValidationError("prober", nil, "prober is required")
	}

	method := strings.ToUpper(strings.TrimSpace(cfg.Method))
	if method == "" {
		method = http.MethodGet
	}

	return &Checker{
		prober:         prober,
		method:         method,
		maxConcurrency: cfg.MaxConcurrency,
		probeTimeout:   cfg.ProbeTimeout(),
		logger:         logger.With().Str("module", "Checker").Logger(),
	}, nil
}

// CheckOne reports whether rawURL answers with a 2xx/3xx status.
func (c *Checker) CheckOne(ctx context.Context, rawURL string) bool {
	return c.probe(ctx, rawURL) == nil
}

// Probe checks every URL concurrently and returns one result per input, in input order.
// It returns only after all probes have finished.
func (c *Checker) Probe(ctx context.Context, urls []string) []models.ReachabilityResult {
	results := make([]models.ReachabilityResult, len(urls))

	g := new(errgroup.Group)
	if c.maxConcurrency > 0 {
		g.SetLimit(c.maxConcurrency)
	}

	for i, u := range urls {
		g.Go(func() error {
			err := c.probe(ctx, u)
			results[i] = models.ReachabilityResult{URL: u, Reachable: err == nil}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// CheckAll returns the unreachable subset of urls in input order, duplicates included.
func (c *Checker) CheckAll(ctx context.Context, urls []string) []string {
	results := c.Probe(ctx, urls)
	broken := models.BrokenURLs(results)

	c.logger.Info().Int("total", len(urls)).Int("broken", len(broken)).Msg("Reachability check finished")
	return broken
}

func (c *Checker) probe(ctx context.Context, rawURL string) error {
	_, err, shared := c.flight.Do(c.method+" "+rawURL, func() (interface{}, error) {
		probeCtx := ctx
		if c.probeTimeout > 0 {
			var cancel context.CancelFunc
			probeCtx, cancel = context.WithTimeout(ctx, c.probeTimeout)
			defer cancel()
		}
		return nil, c.prober.Probe(probeCtx, c.method, rawURL)
	})

	if err != nil {
		c.logger.Debug().Err(err).Str("url", rawURL).Bool("shared", shared).Msg("Resource unreachable")
	}
	return err
}
