// Package analyze computes market analytics over the stored postings.
package analyze

import (
	"fmt"
	"sort"

	"github.com/recruitiq/recruitiq/internal/skills"
	"github.com/recruitiq/recruitiq/internal/store"
)

// SalaryStats summarizes salary midpoints across postings.
type SalaryStats struct {
	Count   int
	Average float64
	Median  float64
	Min     float64
	Max     float64
}

// Overview is the top-level market snapshot.
type Overview struct {
	Total        int64
	RecentWeek   int64
	TopTitles    []store.GroupRow
	TopLocations []store.GroupRow
	TopCompanies []store.GroupRow
	Platforms    []store.GroupRow
	Employment   []store.GroupRow
	Salaries     SalaryStats
}

// SkillDemand is one skill's share of the analyzed postings.
type SkillDemand struct {
	Skill   string
	Count   int
	Percent float64
}

// Analyzer reads aggregates from the store.
type Analyzer struct {
	store *store.Store
}

// New creates an analyzer over the given store.
func New(s *store.Store) *Analyzer {
	return &Analyzer{store: s}
}

// Overview assembles the market snapshot: totals, top buckets and salary stats.
func (a *Analyzer) Overview() (Overview, error) {
	var o Overview
	var err error

	if o.Total, err = a.store.Total(); err != nil {
		return o, fmt.Errorf("total: %w", err)
	}
	if o.RecentWeek, err = a.store.CountRecent(7); err != nil {
		return o, fmt.Errorf("recent count: %w", err)
	}

	groups := []struct {
		column string
		dest   *[]store.GroupRow
		limit  int
	}{
		{"title", &o.TopTitles, 10},
		{"location", &o.TopLocations, 10},
		{"company_name", &o.TopCompanies, 10},
		{"source_platform", &o.Platforms, 10},
		{"employment_type", &o.Employment, 10},
	}
	for _, g := range groups {
		rows, err := a.store.GroupCount(g.column, g.limit)
		if err != nil {
			return o, fmt.Errorf("group by %s: %w", g.column, err)
		}
		*g.dest = rows
	}

	if o.Salaries, err = a.salaryStats(); err != nil {
		return o, err
	}
	return o, nil
}

func (a *Analyzer) salaryStats() (SalaryStats, error) {
	rows, err := a.store.SalaryRows(store.Filters{})
	if err != nil {
		return SalaryStats{}, fmt.Errorf("salary rows: %w", err)
	}

	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		switch {
		case r.SalaryMin != nil && r.SalaryMax != nil:
			values = append(values, (*r.SalaryMin+*r.SalaryMax)/2)
		case r.SalaryMin != nil:
			values = append(values, *r.SalaryMin)
		case r.SalaryMax != nil:
			values = append(values, *r.SalaryMax)
		}
	}
	if len(values) == 0 {
		return SalaryStats{}, nil
	}

	sort.Float64s(values)
	var sum float64
	for _, v := range values {
		sum += v
	}

	n := len(values)
	med := values[n/2]
	if n%2 == 0 {
		med = (values[n/2-1] + values[n/2]) / 2
	}

	return SalaryStats{
		Count:   n,
		Average: sum / float64(n),
		Median:  med,
		Min:     values[0],
		Max:     values[n-1],
	}, nil
}

// CompanyInsight summarizes one company's hiring activity.
type CompanyInsight struct {
	Company   string
	Postings  int
	AvgSalary float64 // 0 when no posting carries a salary
	Locations int     // distinct locations hiring
	Platforms int     // distinct platforms posted on
}

// CompanyInsights ranks companies by open postings and summarizes their
// hiring footprint. Up to top companies are returned.
func (a *Analyzer) CompanyInsights(top int) ([]CompanyInsight, error) {
	postings, err := a.store.Search(store.Filters{})
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}

	type acc struct {
		count     int
		salarySum float64
		salaryN   int
		locations map[string]struct{}
		platforms map[string]struct{}
	}
	byCompany := make(map[string]*acc)

	for _, p := range postings {
		if p.CompanyName == "" {
			continue
		}
		c := byCompany[p.CompanyName]
		if c == nil {
			c = &acc{
				locations: make(map[string]struct{}),
				platforms: make(map[string]struct{}),
			}
			byCompany[p.CompanyName] = c
		}
		c.count++
		c.platforms[p.SourcePlatform] = struct{}{}
		if p.Location != "" {
			c.locations[p.Location] = struct{}{}
		}
		switch {
		case p.SalaryMin != nil && p.SalaryMax != nil:
			c.salarySum += (*p.SalaryMin + *p.SalaryMax) / 2
			c.salaryN++
		case p.SalaryMin != nil:
			c.salarySum += *p.SalaryMin
			c.salaryN++
		case p.SalaryMax != nil:
			c.salarySum += *p.SalaryMax
			c.salaryN++
		}
	}

	insights := make([]CompanyInsight, 0, len(byCompany))
	for name, c := range byCompany {
		in := CompanyInsight{
			Company:   name,
			Postings:  c.count,
			Locations: len(c.locations),
			Platforms: len(c.platforms),
		}
		if c.salaryN > 0 {
			in.AvgSalary = c.salarySum / float64(c.salaryN)
		}
		insights = append(insights, in)
	}
	sort.Slice(insights, func(i, j int) bool {
		if insights[i].Postings != insights[j].Postings {
			return insights[i].Postings > insights[j].Postings
		}
		return insights[i].Company < insights[j].Company
	})

	if top > 0 && len(insights) > top {
		insights = insights[:top]
	}
	return insights, nil
}

// Trends returns daily posting counts for the last N days, oldest first.
func (a *Analyzer) Trends(days int) ([]store.DailyCount, error) {
	return a.store.DailyCounts(days)
}

// SkillsDemand ranks skills by how many postings mention them. Each posting
// counts a skill at most once. Up to top skills are returned.
func (a *Analyzer) SkillsDemand(top int) ([]SkillDemand, error) {
	postings, err := a.store.Search(store.Filters{})
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}
	if len(postings) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(postings))
	for _, p := range postings {
		texts = append(texts, p.Title+" "+p.Description+" "+p.Skills)
	}
	counts := skills.Count(texts)

	demand := make([]SkillDemand, 0, len(counts))
	for skill, n := range counts {
		demand = append(demand, SkillDemand{
			Skill:   skill,
			Count:   n,
			Percent: 100 * float64(n) / float64(len(postings)),
		})
	}
	sort.Slice(demand, func(i, j int) bool {
		if demand[i].Count != demand[j].Count {
			return demand[i].Count > demand[j].Count
		}
		return demand[i].Skill < demand[j].Skill
	})

	if top > 0 && len(demand) > top {
		demand = demand[:top]
	}
	return demand, nil
}
