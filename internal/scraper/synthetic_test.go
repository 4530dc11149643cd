package scraper

import (
	"testing"

	"github.com/recruitiq/recruitiq/internal/model"
)

func TestSamples_StableURLs(t *testing.T) {
	a := Samples("indeed", model.Query{Limit: 3})
	b := Samples("indeed", model.Query{Limit: 3})

	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3 samples, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].URL != b[i].URL {
			t.Errorf("sample %d URL not stable: %q vs %q", i, a[i].URL, b[i].URL)
		}
		if a[i].SourcePlatform != "indeed" {
			t.Errorf("sample %d platform = %q", i, a[i].SourcePlatform)
		}
		if a[i].SalaryMin == nil || a[i].SalaryMax == nil {
			t.Errorf("sample %d missing salary", i)
		}
	}
}

func TestSamples_DefaultLimit(t *testing.T) {
	got := Samples("remoteok", model.Query{})
	if len(got) == 0 {
		t.Fatal("expected samples with zero limit")
	}
	for _, p := range got {
		if p.Title == "" || p.CompanyName == "" || p.URL == "" {
			t.Errorf("incomplete sample: %+v", p)
		}
	}
}
