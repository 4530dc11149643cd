// Package report renders analytics into standalone HTML files.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/recruitiq/recruitiq/internal/analyze"
	"github.com/recruitiq/recruitiq/internal/salary"
	"github.com/recruitiq/recruitiq/internal/store"
)

// Kind selects which report to generate.
type Kind string

const (
	Executive Kind = "executive"
	Salary    Kind = "salary"
	Skills    Kind = "skills"
	Market    Kind = "market"
	Company   Kind = "company"
)

// Generator renders reports from the analytics layer into outputDir.
type Generator struct {
	store     *store.Store
	analyzer  *analyze.Analyzer
	outputDir string
	now       func() time.Time
}

// New creates a report generator writing into outputDir.
func New(s *store.Store, outputDir string) *Generator {
	return &Generator{
		store:     s,
		analyzer:  analyze.New(s),
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Generate renders the requested report and returns the written file path.
func (g *Generator) Generate(kind Kind) (string, error) {
	var (
		body template.HTML
		err  error
	)
	switch kind {
	case Executive:
		body, err = g.executiveBody()
	case Salary:
		body, err = g.salaryBody()
	case Skills:
		body, err = g.skillsBody()
	case Market:
		body, err = g.marketBody()
	case Company:
		body, err = g.companyBody()
	default:
		return "", fmt.Errorf("unknown report kind %q", kind)
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("%s_report_%s.html", kind, g.now().Format("20060102_150405"))
	path := filepath.Join(g.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	data := pageData{
		Title:     pageTitle(kind),
		Generated: g.now().Format("2006-01-02 15:04"),
		Body:      body,
	}
	if err := pageTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return path, nil
}

func pageTitle(kind Kind) string {
	switch kind {
	case Executive:
		return "Job Market Executive Summary"
	case Salary:
		return "Salary Analysis"
	case Skills:
		return "Skills Demand"
	case Market:
		return "Market Intelligence"
	case Company:
		return "Company Hiring Insights"
	}
	return "Report"
}

func (g *Generator) executiveBody() (template.HTML, error) {
	o, err := g.analyzer.Overview()
	if err != nil {
		return "", err
	}
	demand, err := g.analyzer.SkillsDemand(10)
	if err != nil {
		return "", err
	}
	return renderSection(executiveTemplate, struct {
		Overview analyze.Overview
		Titles   []barRow
		Skills   []barRow
	}{
		Overview: o,
		Titles:   groupBars(o.TopTitles),
		Skills:   demandBars(demand),
	})
}

func (g *Generator) salaryBody() (template.HTML, error) {
	o, err := g.analyzer.Overview()
	if err != nil {
		return "", err
	}
	insights, err := salary.Insights(g.store, store.Filters{})
	if err != nil {
		return "", err
	}
	return renderSection(salaryTemplate, struct {
		Stats    analyze.SalaryStats
		Insights []salary.TitleInsight
	}{
		Stats:    o.Salaries,
		Insights: insights,
	})
}

func (g *Generator) skillsBody() (template.HTML, error) {
	demand, err := g.analyzer.SkillsDemand(15)
	if err != nil {
		return "", err
	}
	return renderSection(skillsTemplate, struct {
		Skills []barRow
	}{
		Skills: demandBars(demand),
	})
}

func (g *Generator) marketBody() (template.HTML, error) {
	o, err := g.analyzer.Overview()
	if err != nil {
		return "", err
	}
	trends, err := g.analyzer.Trends(30)
	if err != nil {
		return "", err
	}
	return renderSection(marketTemplate, struct {
		Overview  analyze.Overview
		Locations []barRow
		Trends    []barRow
	}{
		Overview:  o,
		Locations: groupBars(o.TopLocations),
		Trends:    trendBars(trends),
	})
}

func (g *Generator) companyBody() (template.HTML, error) {
	insights, err := g.analyzer.CompanyInsights(15)
	if err != nil {
		return "", err
	}

	bars := make([]barRow, 0, len(insights))
	if len(insights) > 0 {
		peak := int64(insights[0].Postings)
		for _, in := range insights {
			bars = append(bars, barRow{
				Label: in.Company,
				Count: int64(in.Postings),
				Width: scale(int64(in.Postings), peak),
			})
		}
	}
	return renderSection(companyTemplate, struct {
		Insights  []analyze.CompanyInsight
		Companies []barRow
	}{
		Insights:  insights,
		Companies: bars,
	})
}

// barRow is one horizontal bar in an SVG chart, width scaled to the peak.
type barRow struct {
	Label string
	Count int64
	Width int // 0..maxBarWidth
	Note  string
}

const maxBarWidth = 400

func groupBars(rows []store.GroupRow) []barRow {
	if len(rows) == 0 {
		return nil
	}
	peak := rows[0].Count
	bars := make([]barRow, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, barRow{
			Label: r.Value,
			Count: r.Count,
			Width: scale(r.Count, peak),
		})
	}
	return bars
}

func demandBars(demand []analyze.SkillDemand) []barRow {
	if len(demand) == 0 {
		return nil
	}
	peak := int64(demand[0].Count)
	bars := make([]barRow, 0, len(demand))
	for _, d := range demand {
		bars = append(bars, barRow{
			Label: d.Skill,
			Count: int64(d.Count),
			Width: scale(int64(d.Count), peak),
			Note:  fmt.Sprintf("%.0f%%", d.Percent),
		})
	}
	return bars
}

func trendBars(rows []store.DailyCount) []barRow {
	if len(rows) == 0 {
		return nil
	}
	var peak int64
	for _, r := range rows {
		if r.Count > peak {
			peak = r.Count
		}
	}
	bars := make([]barRow, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, barRow{
			Label: r.Day,
			Count: r.Count,
			Width: scale(r.Count, peak),
		})
	}
	return bars
}

func scale(count, peak int64) int {
	if peak <= 0 {
		return 0
	}
	w := int(count * maxBarWidth / peak)
	if w < 4 {
		w = 4
	}
	return w
}

func renderSection(t *template.Template, data any) (template.HTML, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render section: %w", err)
	}
	return template.HTML(b.String()), nil
}
