package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/recruitiq/recruitiq/internal/model"
)

func TestWait_SamePlatform_EnforcesMinDelay(t *testing.T) {
	limiter := New(100*time.Millisecond, nil)
	ctx := context.Background()

	// First call should return immediately.
	if err := limiter.Wait(ctx, "indeed"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "indeed"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited at least ~100ms (allow 80ms for timer jitter).
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_DifferentPlatforms_NoCrossBlocking(t *testing.T) {
	limiter := New(200*time.Millisecond, nil)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "indeed"); err != nil {
		t.Fatalf("indeed wait: %v", err)
	}

	// Immediately call for remoteok — should NOT block.
	start := time.Now()
	if err := limiter.Wait(ctx, "remoteok"); err != nil {
		t.Fatalf("remoteok wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected remoteok wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_PlatformOverride(t *testing.T) {
	limiter := New(time.Hour, map[string]time.Duration{"remoteok": 20 * time.Millisecond})
	ctx := context.Background()

	if err := limiter.Wait(ctx, "remoteok"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "remoteok"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 15*time.Millisecond || elapsed > 500*time.Millisecond {
		t.Errorf("expected ~20ms override wait, got %v", elapsed)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	limiter := New(5*time.Second, nil) // long delay
	ctx := context.Background()

	// First call to seed the last-call time.
	if err := limiter.Wait(ctx, "indeed"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- limiter.Wait(cancelCtx, "indeed")
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected cancellation error")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

type countingScraper struct {
	calls int
}

func (c *countingScraper) Platform() string { return "indeed" }

func (c *countingScraper) Scrape(_ context.Context, _ model.Query) ([]model.Posting, error) {
	c.calls++
	return nil, nil
}

func TestWrappedScraper_WaitsBetweenCalls(t *testing.T) {
	limiter := New(60*time.Millisecond, nil)
	inner := &countingScraper{}
	s := Wrap(inner, limiter)

	ctx := context.Background()
	if _, err := s.Scrape(ctx, model.Query{}); err != nil {
		t.Fatalf("first scrape: %v", err)
	}

	start := time.Now()
	if _, err := s.Scrape(ctx, model.Query{}); err != nil {
		t.Fatalf("second scrape: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected rate-limited second scrape, waited %v", elapsed)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}
