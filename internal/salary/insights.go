package salary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/recruitiq/recruitiq/internal/store"
)

// TitleInsight aggregates salary data for one job title.
type TitleInsight struct {
	Title     string
	Count     int
	Average   float64
	Median    float64
	Min       float64
	Max       float64
	Estimated int // how many of the underlying rows are estimates
}

// Insights groups stored salaries by title and computes per-title stats.
// Each posting contributes the midpoint of its salary band. The Title and
// Company filters scope the analysis to matching postings; titles are
// returned most common first.
func Insights(s *store.Store, f store.Filters) ([]TitleInsight, error) {
	rows, err := s.SalaryRows(f)
	if err != nil {
		return nil, fmt.Errorf("load salary rows: %w", err)
	}

	type bucket struct {
		values    []float64
		estimated int
	}
	buckets := make(map[string]*bucket)

	for _, row := range rows {
		mid, ok := midpoint(row.SalaryMin, row.SalaryMax)
		if !ok {
			continue
		}
		key := strings.TrimSpace(row.Title)
		if key == "" {
			continue
		}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.values = append(b.values, mid)
		if row.Estimated {
			b.estimated++
		}
	}

	insights := make([]TitleInsight, 0, len(buckets))
	for title, b := range buckets {
		sort.Float64s(b.values)
		insights = append(insights, TitleInsight{
			Title:     title,
			Count:     len(b.values),
			Average:   mean(b.values),
			Median:    median(b.values),
			Min:       b.values[0],
			Max:       b.values[len(b.values)-1],
			Estimated: b.estimated,
		})
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].Count != insights[j].Count {
			return insights[i].Count > insights[j].Count
		}
		return insights[i].Title < insights[j].Title
	})
	return insights, nil
}

func midpoint(lo, hi *float64) (float64, bool) {
	switch {
	case lo != nil && hi != nil:
		return (*lo + *hi) / 2, true
	case lo != nil:
		return *lo, true
	case hi != nil:
		return *hi, true
	}
	return 0, false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median expects values to be sorted.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
