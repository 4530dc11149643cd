package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/recruitiq/recruitiq/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockScraper calls a function on each invocation, tracking call count.
type mockScraper struct {
	calls int
	fn    func(attempt int) ([]model.Posting, error)
}

func (m *mockScraper) Platform() string { return "mock" }

func (m *mockScraper) Scrape(_ context.Context, _ model.Query) ([]model.Posting, error) {
	m.calls++
	return m.fn(m.calls)
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	postings := []model.Posting{{Title: "Engineer", CompanyName: "Acme"}}
	mock := &mockScraper{fn: func(_ int) ([]model.Posting, error) {
		return postings, nil
	}}

	rs := New(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := rs.Scrape(context.Background(), model.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Engineer" {
		t.Fatalf("unexpected postings: %v", got)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_RetriesOn5xx_SucceedsOnSecondAttempt(t *testing.T) {
	postings := []model.Posting{{Title: "Engineer"}}
	mock := &mockScraper{fn: func(attempt int) ([]model.Posting, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{StatusCode: 503, Err: errors.New("service unavailable")}
		}
		return postings, nil
	}}

	rs := New(mock, 2, 10*time.Millisecond, discardLogger())
	got, err := rs.Scrape(context.Background(), model.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(got))
	}
	if mock.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.calls)
	}
}

func TestRetry_DoesNotRetryOn4xx(t *testing.T) {
	mock := &mockScraper{fn: func(_ int) ([]model.Posting, error) {
		return nil, &model.HTTPError{StatusCode: 404, Err: errors.New("not found")}
	}}

	rs := New(mock, 2, 10*time.Millisecond, discardLogger())
	_, err := rs.Scrape(context.Background(), model.Query{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call (no retry on 404), got %d", mock.calls)
	}
}

func TestRetry_ExhaustsRetriesOnPersistentFailure(t *testing.T) {
	failure := &model.HTTPError{StatusCode: 500, Err: errors.New("boom")}
	mock := &mockScraper{fn: func(_ int) ([]model.Posting, error) {
		return nil, failure
	}}

	rs := New(mock, 2, time.Millisecond, discardLogger())
	_, err := rs.Scrape(context.Background(), model.Query{})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if mock.calls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries), got %d", mock.calls)
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	mock := &mockScraper{fn: func(attempt int) ([]model.Posting, error) {
		if attempt == 1 {
			return nil, &model.HTTPError{StatusCode: 429, RetryAfter: 50 * time.Millisecond}
		}
		return nil, nil
	}}

	rs := New(mock, 1, time.Millisecond, discardLogger())
	start := time.Now()
	if _, err := rs.Scrape(context.Background(), model.Query{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected Retry-After to be honored, waited only %v", elapsed)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := &mockScraper{fn: func(_ int) ([]model.Posting, error) {
		return nil, &model.HTTPError{StatusCode: 500}
	}}

	ctx, cancel := context.WithCancel(context.Background())
	rs := New(mock, 3, time.Hour, discardLogger())

	done := make(chan error, 1)
	go func() {
		_, err := rs.Scrape(ctx, model.Query{})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Scrape did not return after cancellation")
	}
}

func TestRetry_DoesNotRetryContextErrors(t *testing.T) {
	mock := &mockScraper{fn: func(_ int) ([]model.Posting, error) {
		return nil, context.DeadlineExceeded
	}}

	rs := New(mock, 3, time.Millisecond, discardLogger())
	_, err := rs.Scrape(context.Background(), model.Query{})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}
