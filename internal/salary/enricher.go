package salary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recruitiq/recruitiq/internal/store"
)

// EnrichResult summarizes one enrichment run.
type EnrichResult struct {
	Processed int
	Enriched  int
	CacheHits int
}

// Enricher fills in estimated salaries for postings that have none,
// memoizing estimates in the store's salary cache.
type Enricher struct {
	store     *store.Store
	estimator *Estimator
	logger    *slog.Logger
}

// NewEnricher creates an enricher backed by the given store.
func NewEnricher(s *store.Store, logger *slog.Logger) *Enricher {
	return &Enricher{
		store:     s,
		estimator: NewEstimator(),
		logger:    logger,
	}
}

// Enrich estimates salaries for up to limit postings without one. With force
// set, postings that already carry an estimate are re-estimated too; salaries
// taken from the posting itself are never touched.
func (e *Enricher) Enrich(ctx context.Context, limit int, force bool) (EnrichResult, error) {
	var res EnrichResult

	postings, err := e.candidates(limit, force)
	if err != nil {
		return res, err
	}

	for _, job := range postings {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Processed++

		est, fromCache, err := e.lookup(job.Title, job.CompanyName, job.Location)
		if err != nil {
			return res, err
		}
		if fromCache {
			res.CacheHits++
		}

		if err := e.store.UpdateSalary(job.ID, est.Min, est.Max, est.Source, true); err != nil {
			return res, err
		}
		res.Enriched++

		e.logger.Debug("enriched posting",
			"id", job.ID,
			"title", job.Title,
			"salary_min", est.Min,
			"salary_max", est.Max,
			"cache_hit", fromCache,
		)
	}

	return res, nil
}

func (e *Enricher) candidates(limit int, force bool) ([]jobRef, error) {
	if !force {
		postings, err := e.store.WithoutSalary(limit)
		if err != nil {
			return nil, err
		}
		refs := make([]jobRef, 0, len(postings))
		for _, p := range postings {
			refs = append(refs, jobRef{p.ID, p.Title, p.CompanyName, p.Location})
		}
		return refs, nil
	}

	postings, err := e.store.Search(store.Filters{Limit: limit})
	if err != nil {
		return nil, err
	}
	refs := make([]jobRef, 0, len(postings))
	for _, p := range postings {
		// Never overwrite a salary that came from the posting itself.
		if p.HasSalary() && !p.SalaryEstimated {
			continue
		}
		refs = append(refs, jobRef{p.ID, p.Title, p.CompanyName, p.Location})
	}
	return refs, nil
}

type jobRef struct {
	ID          uint
	Title       string
	CompanyName string
	Location    string
}

// lookup checks the salary cache before falling back to the estimator,
// caching fresh estimates for next time.
func (e *Enricher) lookup(title, company, location string) (Estimate, bool, error) {
	cached, hit, err := e.store.CachedSalary(title, company, location)
	if err != nil {
		return Estimate{}, false, fmt.Errorf("salary cache: %w", err)
	}
	if hit {
		return Estimate{
			Min:      cached.SalaryMin,
			Max:      cached.SalaryMax,
			Currency: cached.Currency,
			Source:   estimatedSource,
		}, true, nil
	}

	est := e.estimator.Estimate(title, company, location)
	if err := e.store.CacheSalary(title, company, location, est.Min, est.Max, est.Currency, true); err != nil {
		return Estimate{}, false, fmt.Errorf("cache estimate: %w", err)
	}
	return est, false, nil
}
