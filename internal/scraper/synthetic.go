package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/recruitiq/recruitiq/internal/model"
)

// sampleRole is the seed data for synthetic fallback postings.
type sampleRole struct {
	title     string
	company   string
	location  string
	salaryMin float64
	salaryMax float64
	skills    []string
}

var sampleRoles = []sampleRole{
	{"Software Engineer", "Nimbus Labs", "New York, NY", 95000, 140000, []string{"go", "postgresql", "docker"}},
	{"Senior Backend Engineer", "Vector Systems", "San Francisco, CA", 150000, 195000, []string{"python", "kubernetes", "aws"}},
	{"Frontend Developer", "Brightline", "Remote", 85000, 120000, []string{"javascript", "react", "typescript"}},
	{"Data Engineer", "Cobalt Analytics", "Austin, TX", 110000, 155000, []string{"python", "sql", "kafka"}},
	{"DevOps Engineer", "Meridian Cloud", "Seattle, WA", 120000, 160000, []string{"terraform", "aws", "ci/cd"}},
}

// Samples returns deterministic placeholder postings for a platform, used
// when a source is unreachable and fallback is enabled. URLs are stable per
// (platform, role) so repeated fallbacks dedupe instead of piling up rows.
func Samples(platform string, q model.Query) []model.Posting {
	now := time.Now()
	limit := q.Limit
	if limit <= 0 || limit > len(sampleRoles) {
		limit = len(sampleRoles)
	}

	postings := make([]model.Posting, 0, limit)
	for i, role := range sampleRoles[:limit] {
		lo, hi := role.salaryMin, role.salaryMax
		posted := now.AddDate(0, 0, -i)
		postings = append(postings, model.Posting{
			Title:       role.title,
			CompanyName: role.company,
			Location:    role.location,
			PostedDate:  &posted,
			SalaryMin:   &lo,
			SalaryMax:   &hi,
			Description: fmt.Sprintf("Sample listing for %s roles. Stack: %s.",
				role.title, strings.Join(role.skills, ", ")),
			Skills:         role.skills,
			EmploymentType: "Full-time",
			SourcePlatform: platform,
			URL:            fmt.Sprintf("https://example.com/%s/sample/%d", platform, i+1),
			SalaryCurrency: "USD",
		})
	}
	return postings
}
