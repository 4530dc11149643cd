package analyze

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recruitiq/recruitiq/internal/store"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

const barWidth = 30

// RenderOverview formats the market snapshot for the terminal.
func RenderOverview(o Overview) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Job Market Overview"))
	b.WriteString("\n")
	b.WriteString(statLine("Total postings", fmt.Sprintf("%d", o.Total)))
	b.WriteString(statLine("Scraped last 7 days", fmt.Sprintf("%d", o.RecentWeek)))

	if o.Salaries.Count > 0 {
		b.WriteString(sectionStyle.Render("Salaries"))
		b.WriteString("\n")
		b.WriteString(statLine("With salary data", fmt.Sprintf("%d", o.Salaries.Count)))
		b.WriteString(statLine("Average", money(o.Salaries.Average)))
		b.WriteString(statLine("Median", money(o.Salaries.Median)))
		b.WriteString(statLine("Range", money(o.Salaries.Min)+" to "+money(o.Salaries.Max)))
	}

	renderGroup(&b, "Top Titles", o.TopTitles)
	renderGroup(&b, "Top Locations", o.TopLocations)
	renderGroup(&b, "Top Companies", o.TopCompanies)
	renderGroup(&b, "Platforms", o.Platforms)
	renderGroup(&b, "Employment Types", o.Employment)

	return b.String()
}

// RenderTrends formats daily scrape counts as a bar chart.
func RenderTrends(rows []store.DailyCount, days int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Postings per Day (last %d days)", days)))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("no postings in this window"))
		b.WriteString("\n")
		return b.String()
	}

	var peak int64
	for _, r := range rows {
		if r.Count > peak {
			peak = r.Count
		}
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			labelStyle.Render(r.Day),
			barStyle.Render(bar(r.Count, peak)),
			valueStyle.Render(fmt.Sprintf("%d", r.Count)),
		))
	}
	return b.String()
}

// RenderSkills formats the skills demand ranking.
func RenderSkills(demand []SkillDemand) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Skills in Demand"))
	b.WriteString("\n")

	if len(demand) == 0 {
		b.WriteString(dimStyle.Render("no skills detected yet"))
		b.WriteString("\n")
		return b.String()
	}

	var peak int
	for _, d := range demand {
		if d.Count > peak {
			peak = d.Count
		}
	}
	for _, d := range demand {
		b.WriteString(fmt.Sprintf("  %-14s %s %s\n",
			d.Skill,
			barStyle.Render(bar(int64(d.Count), int64(peak))),
			dimStyle.Render(fmt.Sprintf("%d jobs (%.0f%%)", d.Count, d.Percent)),
		))
	}
	return b.String()
}

func renderGroup(b *strings.Builder, title string, rows []store.GroupRow) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")

	peak := rows[0].Count
	for _, r := range rows {
		value := r.Value
		if len(value) > 40 {
			value = value[:37] + "..."
		}
		b.WriteString(fmt.Sprintf("  %-40s %s %s\n",
			value,
			barStyle.Render(bar(r.Count, peak)),
			valueStyle.Render(fmt.Sprintf("%d", r.Count)),
		))
	}
}

func statLine(label, value string) string {
	return fmt.Sprintf("  %s %s\n",
		labelStyle.Render(fmt.Sprintf("%-22s", label)),
		valueStyle.Render(value),
	)
}

func bar(count, peak int64) string {
	if peak <= 0 {
		return ""
	}
	n := int(count * barWidth / peak)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func money(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}
