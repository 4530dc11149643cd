package scraper

import (
	"testing"
	"time"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantMin  float64
		wantMax  float64
		wantCur  string
		wantNone bool
	}{
		{name: "dollar range", text: "$80,000 - $120,000 a year", wantMin: 80000, wantMax: 120000, wantCur: "USD"},
		{name: "k notation", text: "$80K - $120K", wantMin: 80000, wantMax: 120000, wantCur: "USD"},
		{name: "single value", text: "$95,000 per year", wantMin: 95000, wantMax: 95000, wantCur: "USD"},
		{name: "euro", text: "€70,000/yr", wantMin: 70000, wantMax: 70000, wantCur: "EUR"},
		{name: "pound range", text: "£50,000 to £65,000", wantMin: 50000, wantMax: 65000, wantCur: "GBP"},
		{name: "k only on upper bound", text: "$80 - $120K", wantMin: 80000, wantMax: 120000, wantCur: "USD"},
		{name: "weekly rate not scaled", text: "$2,000 per week", wantMin: 2000, wantMax: 2000, wantCur: "USD"},
		{name: "stray k in words ignored", text: "$95,000 per year, market rank", wantMin: 95000, wantMax: 95000, wantCur: "USD"},
		{name: "no numbers", text: "Competitive salary", wantNone: true, wantCur: "USD"},
		{name: "empty", text: "", wantNone: true, wantCur: "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, cur := parseSalary(tt.text)
			if cur != tt.wantCur {
				t.Errorf("currency = %q, want %q", cur, tt.wantCur)
			}
			if tt.wantNone {
				if min != nil || max != nil {
					t.Fatalf("expected no salary, got min=%v max=%v", min, max)
				}
				return
			}
			if min == nil || max == nil {
				t.Fatalf("expected salary, got min=%v max=%v", min, max)
			}
			if *min != tt.wantMin || *max != tt.wantMax {
				t.Errorf("salary = %v-%v, want %v-%v", *min, *max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestParsePostedDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		text string
		want *time.Time
	}{
		{"Just posted", &now},
		{"Posted today", &now},
		{"yesterday", timePtr(now.AddDate(0, 0, -1))},
		{"3 days ago", timePtr(now.AddDate(0, 0, -3))},
		{"2 weeks ago", timePtr(now.AddDate(0, 0, -14))},
		{"1 month ago", timePtr(now.AddDate(0, -1, 0))},
		{"sometime", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := parsePostedDate(tt.text, now)
		if tt.want == nil {
			if got != nil {
				t.Errorf("parsePostedDate(%q) = %v, want nil", tt.text, got)
			}
			continue
		}
		if got == nil || !got.Equal(*tt.want) {
			t.Errorf("parsePostedDate(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestExtractEmploymentType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Software Engineering Intern", "Internship"},
		{"Part-time bookkeeper", "Part-time"},
		{"Contract iOS developer", "Contract"},
		{"Full-time backend role", "Full-time"},
		{"Backend role", ""},
	}
	for _, tt := range tests {
		if got := extractEmploymentType(tt.text); got != tt.want {
			t.Errorf("extractEmploymentType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractText(t *testing.T) {
	in := "&lt;p&gt;We build &lt;b&gt;search&lt;/b&gt;   infrastructure&lt;/p&gt;"
	want := "We build search infrastructure"
	if got := extractText(in); got != want {
		t.Errorf("extractText = %q, want %q", got, want)
	}
}

func TestMatchesQuery(t *testing.T) {
	if !matchesQuery("", "anything") {
		t.Error("empty query should match everything")
	}
	if !matchesQuery("backend engineer", "Senior Backend Developer") {
		t.Error("any keyword hit should match")
	}
	if matchesQuery("rust", "Python shop", "no systems work") {
		t.Error("unrelated query should not match")
	}
}
