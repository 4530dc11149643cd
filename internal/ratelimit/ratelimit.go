package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/recruitiq/recruitiq/internal/model"
)

// PlatformRateLimiter enforces a minimum delay between requests to the same
// job platform. All scrapers targeting the same platform share one instance.
type PlatformRateLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: platform name
	minDelay time.Duration
	override map[string]time.Duration
}

// New creates a rate limiter enforcing minDelay between consecutive requests
// to the same platform, with optional per-platform overrides.
func New(minDelay time.Duration, overrides map[string]time.Duration) *PlatformRateLimiter {
	return &PlatformRateLimiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
		override: overrides,
	}
}

func (r *PlatformRateLimiter) delayFor(platform string) time.Duration {
	if d, ok := r.override[platform]; ok {
		return d
	}
	return r.minDelay
}

// Wait blocks until enough time has passed since the last request to the
// given platform. Returns an error if the context is cancelled while waiting.
func (r *PlatformRateLimiter) Wait(ctx context.Context, platform string) error {
	r.mu.Lock()
	last, ok := r.lastCall[platform]
	now := time.Now()

	if !ok {
		// First request for this platform — no wait needed.
		r.lastCall[platform] = now
		r.mu.Unlock()
		return nil
	}

	minDelay := r.delayFor(platform)
	elapsed := now.Sub(last)
	if elapsed >= minDelay {
		r.lastCall[platform] = now
		r.mu.Unlock()
		return nil
	}

	remaining := minDelay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", platform, ctx.Err())
	case <-time.After(remaining):
	}

	r.mu.Lock()
	r.lastCall[platform] = time.Now()
	r.mu.Unlock()

	return nil
}

// Scraper is a decorator that enforces platform-level rate limiting before
// delegating to the wrapped scraper.
type Scraper struct {
	inner   model.Scraper
	limiter *PlatformRateLimiter
}

// Wrap decorates a scraper with platform-level rate limiting.
func Wrap(inner model.Scraper, limiter *PlatformRateLimiter) *Scraper {
	return &Scraper{
		inner:   inner,
		limiter: limiter,
	}
}

// Platform delegates to the wrapped scraper.
func (s *Scraper) Platform() string { return s.inner.Platform() }

// Scrape waits for the rate limiter to allow a request, then delegates.
func (s *Scraper) Scrape(ctx context.Context, q model.Query) ([]model.Posting, error) {
	if err := s.limiter.Wait(ctx, s.inner.Platform()); err != nil {
		return nil, err
	}
	return s.inner.Scrape(ctx, q)
}
