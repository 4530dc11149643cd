package salary

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/recruitiq/recruitiq/internal/model"
	"github.com/recruitiq/recruitiq/internal/store"
)

func TestEstimate_TitleBands(t *testing.T) {
	e := NewEstimator()

	tests := []struct {
		title   string
		wantMin float64 // base band min before multipliers
	}{
		{"Software Engineer Intern", 40000},
		{"Junior Developer", 60000},
		{"Senior Software Engineer", 80000}, // software engineer band wins
		{"Senior Platform Lead", 120000},    // senior band
		{"Product Manager", 100000},
		{"Engineering Manager", 130000},
		{"Staff Engineer", 160000},
		{"Something Unusual", 80000}, // default band
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			// Unknown company and location keep multipliers predictable.
			got := e.Estimate(tt.title, "Smallco", "Nowhere")
			want := float64(int(tt.wantMin * otherMultiplier))
			if got.Min != want {
				t.Errorf("Min = %v, want %v", got.Min, want)
			}
		})
	}
}

func TestEstimate_CompanyTiers(t *testing.T) {
	e := NewEstimator()

	tier1 := e.Estimate("Backend Engineer", "Google", "Nowhere")
	tier2 := e.Estimate("Backend Engineer", "Spotify", "Nowhere")
	other := e.Estimate("Backend Engineer", "Smallco", "Nowhere")

	if !(tier1.Min > tier2.Min && tier2.Min > other.Min) {
		t.Errorf("tier ordering broken: tier1=%v tier2=%v other=%v",
			tier1.Min, tier2.Min, other.Min)
	}
}

func TestEstimate_LocationMultipliers(t *testing.T) {
	e := NewEstimator()

	sf := e.Estimate("Backend Engineer", "Smallco", "San Francisco, CA")
	remote := e.Estimate("Backend Engineer", "Smallco", "Remote")
	elsewhere := e.Estimate("Backend Engineer", "Smallco", "Nowhere")

	if !(sf.Min > remote.Min && remote.Min > elsewhere.Min) {
		t.Errorf("location ordering broken: sf=%v remote=%v elsewhere=%v",
			sf.Min, remote.Min, elsewhere.Min)
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	e := NewEstimator()
	a := e.Estimate("Data Scientist", "Netflix", "New York")
	b := e.Estimate("Data Scientist", "Netflix", "New York")
	if a != b {
		t.Errorf("estimates differ: %+v vs %+v", a, b)
	}
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

func f(v float64) *float64 { return &v }

func seed(t *testing.T, s *store.Store, p model.Posting) {
	t.Helper()
	if _, err := s.Upsert(p); err != nil {
		t.Fatalf("seed %s: %v", p.URL, err)
	}
}

func TestEnrich_FillsMissingSalaries(t *testing.T) {
	s := newTestStore(t)

	seed(t, s, model.Posting{
		Title: "Backend Engineer", CompanyName: "Acme", Location: "Remote",
		SourcePlatform: "remoteok", URL: "https://example.com/job/1",
	})
	withSalary := model.Posting{
		Title: "Data Scientist", CompanyName: "Globex", Location: "Remote",
		SourcePlatform: "remoteok", URL: "https://example.com/job/2",
		SalaryMin: f(100000), SalaryMax: f(140000),
	}
	seed(t, s, withSalary)

	e := NewEnricher(s, discardLogger())
	res, err := e.Enrich(context.Background(), 0, false)
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if res.Processed != 1 || res.Enriched != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	rows, _ := s.Search(store.Filters{Keywords: "backend"})
	if len(rows) != 1 || !rows[0].HasSalary() {
		t.Fatal("posting not enriched")
	}
	if !rows[0].SalaryEstimated {
		t.Error("estimated flag not set")
	}

	// Posting with a real salary untouched.
	rows, _ = s.Search(store.Filters{Keywords: "data"})
	if *rows[0].SalaryMin != 100000 {
		t.Errorf("real salary modified: %v", *rows[0].SalaryMin)
	}
}

func TestEnrich_UsesCacheForRepeatedRoles(t *testing.T) {
	s := newTestStore(t)

	// Two postings for the same role at the same company and location.
	for _, url := range []string{"https://example.com/job/1", "https://example.com/job/2"} {
		seed(t, s, model.Posting{
			Title: "Backend Engineer", CompanyName: "Acme", Location: "Remote",
			SourcePlatform: "remoteok", URL: url,
		})
	}

	e := NewEnricher(s, discardLogger())
	res, err := e.Enrich(context.Background(), 0, false)
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if res.Enriched != 2 {
		t.Fatalf("enriched = %d, want 2", res.Enriched)
	}
	if res.CacheHits != 1 {
		t.Errorf("cache hits = %d, want 1", res.CacheHits)
	}
}

func TestEnrich_ForceReestimatesButKeepsPostedSalaries(t *testing.T) {
	s := newTestStore(t)

	seed(t, s, model.Posting{
		Title: "Backend Engineer", CompanyName: "Acme", Location: "Remote",
		SourcePlatform: "remoteok", URL: "https://example.com/job/1",
	})
	seed(t, s, model.Posting{
		Title: "Data Scientist", CompanyName: "Globex", Location: "Remote",
		SourcePlatform: "remoteok", URL: "https://example.com/job/2",
		SalaryMin: f(100000), SalaryMax: f(140000),
	})

	e := NewEnricher(s, discardLogger())
	if _, err := e.Enrich(context.Background(), 0, false); err != nil {
		t.Fatalf("first enrich: %v", err)
	}

	res, err := e.Enrich(context.Background(), 0, true)
	if err != nil {
		t.Fatalf("force enrich: %v", err)
	}
	// Only the estimated posting is re-processed, not the posted salary.
	if res.Processed != 1 {
		t.Fatalf("processed = %d, want 1", res.Processed)
	}

	rows, _ := s.Search(store.Filters{Keywords: "data"})
	if *rows[0].SalaryMin != 100000 {
		t.Errorf("posted salary overwritten: %v", *rows[0].SalaryMin)
	}
}

func TestInsights_PerTitleStats(t *testing.T) {
	s := newTestStore(t)

	postings := []model.Posting{
		{Title: "Backend Engineer", CompanyName: "A", SourcePlatform: "p", URL: "https://x.com/1", SalaryMin: f(80000), SalaryMax: f(120000)},
		{Title: "Backend Engineer", CompanyName: "B", SourcePlatform: "p", URL: "https://x.com/2", SalaryMin: f(100000), SalaryMax: f(140000)},
		{Title: "Data Scientist", CompanyName: "C", SourcePlatform: "p", URL: "https://x.com/3", SalaryMin: f(90000), SalaryMax: f(110000)},
		{Title: "No Salary Role", CompanyName: "D", SourcePlatform: "p", URL: "https://x.com/4"},
	}
	for _, p := range postings {
		seed(t, s, p)
	}

	insights, err := Insights(s, store.Filters{})
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(insights) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(insights))
	}

	top := insights[0]
	if top.Title != "Backend Engineer" || top.Count != 2 {
		t.Fatalf("unexpected top insight: %+v", top)
	}
	// Midpoints 100000 and 120000.
	if top.Average != 110000 || top.Median != 110000 {
		t.Errorf("avg/median = %v/%v, want 110000/110000", top.Average, top.Median)
	}
	if top.Min != 100000 || top.Max != 120000 {
		t.Errorf("min/max = %v/%v", top.Min, top.Max)
	}
}

func TestInsights_ScopedByCompanyAndTitle(t *testing.T) {
	s := newTestStore(t)

	postings := []model.Posting{
		{Title: "Backend Engineer", CompanyName: "Acme", SourcePlatform: "p", URL: "https://x.com/1", SalaryMin: f(80000), SalaryMax: f(120000)},
		{Title: "Backend Engineer", CompanyName: "Globex", SourcePlatform: "p", URL: "https://x.com/2", SalaryMin: f(100000), SalaryMax: f(140000)},
		{Title: "Data Scientist", CompanyName: "Globex", SourcePlatform: "p", URL: "https://x.com/3", SalaryMin: f(90000), SalaryMax: f(110000)},
	}
	for _, p := range postings {
		seed(t, s, p)
	}

	byCompany, err := Insights(s, store.Filters{Company: "globex"})
	if err != nil {
		t.Fatalf("insights by company: %v", err)
	}
	if len(byCompany) != 2 {
		t.Fatalf("expected 2 titles at Globex, got %d", len(byCompany))
	}
	for _, in := range byCompany {
		if in.Count != 1 {
			t.Errorf("title %s count = %d, want 1", in.Title, in.Count)
		}
	}

	byTitle, err := Insights(s, store.Filters{Title: "backend"})
	if err != nil {
		t.Fatalf("insights by title: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].Title != "Backend Engineer" {
		t.Fatalf("title scope returned %+v", byTitle)
	}
	if byTitle[0].Count != 2 {
		t.Errorf("count = %d, want 2", byTitle[0].Count)
	}
}
