// Package pipeline runs the scrape, validate and persist flow for one or
// more platforms.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/recruitiq/recruitiq/internal/model"
	"github.com/recruitiq/recruitiq/internal/scraper"
	"github.com/recruitiq/recruitiq/internal/store"
	"github.com/recruitiq/recruitiq/internal/validate"
)

// Result summarizes one platform run.
type Result struct {
	Platform string
	Fetched  int
	Invalid  int
	Created  int
	Updated  int
	Fallback bool // true when sample data stood in for a failed scrape
}

// Runner drives scrapers and writes their postings into the store.
type Runner struct {
	store           *store.Store
	logger          *slog.Logger
	fallbackSamples bool
	pause           time.Duration
}

// New creates a pipeline runner. When fallbackSamples is on, a failed scrape
// falls back to built-in sample postings instead of aborting the run.
func New(s *store.Store, logger *slog.Logger, fallbackSamples bool) *Runner {
	return &Runner{
		store:           s,
		logger:          logger,
		fallbackSamples: fallbackSamples,
		pause:           2 * time.Second,
	}
}

// Run scrapes a single platform and persists the results.
func (r *Runner) Run(ctx context.Context, s model.Scraper, q model.Query) (Result, error) {
	res := Result{Platform: s.Platform()}

	postings, err := s.Scrape(ctx, q)
	if err != nil {
		if !r.fallbackSamples {
			return res, fmt.Errorf("scrape %s: %w", s.Platform(), err)
		}
		r.logger.Warn("scrape failed, using sample postings",
			"platform", s.Platform(),
			"error", err,
		)
		postings = scraper.Samples(s.Platform(), q)
		res.Fallback = true
	}
	res.Fetched = len(postings)

	for _, p := range postings {
		if err := validate.Check(p); err != nil {
			res.Invalid++
			r.logger.Debug("skipping invalid posting",
				"platform", s.Platform(),
				"url", p.URL,
				"error", err,
			)
			continue
		}

		created, err := r.store.Upsert(p)
		if err != nil {
			return res, fmt.Errorf("store posting %s: %w", p.URL, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}

	r.logger.Info("platform run complete",
		"platform", s.Platform(),
		"fetched", res.Fetched,
		"created", res.Created,
		"updated", res.Updated,
		"invalid", res.Invalid,
	)
	return res, nil
}

// RunAll scrapes each platform in turn with a polite pause in between.
// A failing platform is logged and skipped; the rest still run.
func (r *Runner) RunAll(ctx context.Context, scrapers []model.Scraper, q model.Query) ([]Result, error) {
	results := make([]Result, 0, len(scrapers))

	for i, s := range scrapers {
		if i > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(r.pause):
			}
		}

		res, err := r.Run(ctx, s, q)
		if err != nil {
			r.logger.Error("platform run failed",
				"platform", s.Platform(),
				"error", err,
			)
			continue
		}
		results = append(results, res)
	}

	return results, nil
}
