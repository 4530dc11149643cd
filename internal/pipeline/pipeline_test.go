package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/recruitiq/recruitiq/internal/model"
	"github.com/recruitiq/recruitiq/internal/store"
)

type fakeScraper struct {
	platform string
	postings []model.Posting
	err      error
	calls    int
}

func (f *fakeScraper) Platform() string { return f.platform }

func (f *fakeScraper) Scrape(_ context.Context, _ model.Query) ([]model.Posting, error) {
	f.calls++
	return f.postings, f.err
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func posting(url string) model.Posting {
	return model.Posting{
		Title:          "Backend Engineer",
		CompanyName:    "Acme",
		SourcePlatform: "fake",
		URL:            url,
	}
}

func TestRun_PersistsValidPostings(t *testing.T) {
	st := newTestStore(t)
	r := New(st, discardLogger(), false)

	invalid := posting("https://example.com/job/3")
	invalid.Title = "" // fails validation

	fake := &fakeScraper{
		platform: "fake",
		postings: []model.Posting{
			posting("https://example.com/job/1"),
			posting("https://example.com/job/2"),
			invalid,
		},
	}

	res, err := r.Run(context.Background(), fake, model.Query{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Fetched != 3 || res.Created != 2 || res.Invalid != 1 || res.Updated != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	total, _ := st.Total()
	if total != 2 {
		t.Errorf("stored %d postings, want 2", total)
	}
}

func TestRun_DuplicatesCountAsUpdates(t *testing.T) {
	st := newTestStore(t)
	r := New(st, discardLogger(), false)

	fake := &fakeScraper{
		platform: "fake",
		postings: []model.Posting{posting("https://example.com/job/1")},
	}

	if _, err := r.Run(context.Background(), fake, model.Query{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := r.Run(context.Background(), fake, model.Query{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Created != 0 || res.Updated != 1 {
		t.Fatalf("unexpected result on re-run: %+v", res)
	}
}

func TestRun_ScrapeErrorWithoutFallback(t *testing.T) {
	st := newTestStore(t)
	r := New(st, discardLogger(), false)

	fake := &fakeScraper{platform: "fake", err: errors.New("boom")}
	if _, err := r.Run(context.Background(), fake, model.Query{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_ScrapeErrorFallsBackToSamples(t *testing.T) {
	st := newTestStore(t)
	r := New(st, discardLogger(), true)

	fake := &fakeScraper{platform: "indeed", err: errors.New("boom")}
	res, err := r.Run(context.Background(), fake, model.Query{Limit: 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Fallback {
		t.Error("expected fallback flag")
	}
	if res.Created == 0 {
		t.Error("expected sample postings to be stored")
	}
}

func TestRunAll_SkipsFailingPlatform(t *testing.T) {
	st := newTestStore(t)
	r := New(st, discardLogger(), false)
	r.pause = 0

	good := &fakeScraper{
		platform: "good",
		postings: []model.Posting{
			{Title: "Backend Engineer", CompanyName: "Acme", SourcePlatform: "good", URL: "https://example.com/g/1"},
		},
	}
	bad := &fakeScraper{platform: "bad", err: errors.New("boom")}

	results, err := r.RunAll(context.Background(), []model.Scraper{bad, good}, model.Query{})
	if err != nil {
		t.Fatalf("run all: %v", err)
	}
	if len(results) != 1 || results[0].Platform != "good" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if good.calls != 1 {
		t.Errorf("good scraper called %d times", good.calls)
	}
}

func TestRunAll_ContextCancelledBetweenPlatforms(t *testing.T) {
	st := newTestStore(t)
	r := New(st, discardLogger(), false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scrapers := []model.Scraper{
		&fakeScraper{platform: "a"},
		&fakeScraper{platform: "b"},
	}
	results, err := r.RunAll(ctx, scrapers, model.Query{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result before cancellation, got %d", len(results))
	}
}
