package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/recruitiq/recruitiq/internal/config"
	"github.com/recruitiq/recruitiq/internal/model"
	"github.com/recruitiq/recruitiq/internal/skills"
)

const companyBoardBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// boardJob is a single job in a public career-board API response.
type boardJob struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Location    boardLocation `json:"location"`
	AbsoluteURL string        `json:"absolute_url"`
	Content     string        `json:"content"` // HTML-encoded description
	UpdatedAt   string        `json:"updated_at"`
}

type boardLocation struct {
	Name string `json:"name"`
}

// boardResponse is the top-level career-board jobs response.
type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

// CompanyScraper walks the configured company career boards and normalizes
// their public-API listings into postings.
type CompanyScraper struct {
	baseURL   string
	companies []config.CompanyConfig
	client    *http.Client
}

// NewCompanyScraper creates a scraper over the configured career boards.
func NewCompanyScraper(companies []config.CompanyConfig, client *http.Client) *CompanyScraper {
	return &CompanyScraper{
		baseURL:   companyBoardBaseURL,
		companies: companies,
		client:    client,
	}
}

// Platform returns the platform identifier stored with each posting.
func (s *CompanyScraper) Platform() string { return "company" }

// Scrape fetches every configured board. A failing board is skipped so one
// company cannot sink the rest; the error is returned only if all boards fail.
func (s *CompanyScraper) Scrape(ctx context.Context, q model.Query) ([]model.Posting, error) {
	if len(s.companies) == 0 {
		return nil, nil
	}

	var (
		postings []model.Posting
		lastErr  error
		failed   int
	)
	for _, company := range s.companies {
		found, err := s.scrapeBoard(ctx, company, q)
		if err != nil {
			lastErr = err
			failed++
			continue
		}
		postings = append(postings, found...)
		if q.Limit > 0 && len(postings) >= q.Limit {
			postings = postings[:q.Limit]
			break
		}
	}

	if failed == len(s.companies) {
		return nil, fmt.Errorf("company boards: all %d boards failed: %w", failed, lastErr)
	}
	return postings, nil
}

func (s *CompanyScraper) scrapeBoard(ctx context.Context, company config.CompanyConfig, q model.Query) ([]model.Posting, error) {
	url := fmt.Sprintf("%s/%s/jobs?content=true", s.baseURL, company.BoardToken)

	var resp boardResponse
	if err := fetchJSON(ctx, s.client, url, &resp); err != nil {
		return nil, fmt.Errorf("board %s: %w", company.BoardToken, err)
	}

	postings := make([]model.Posting, 0, len(resp.Jobs))
	for _, job := range resp.Jobs {
		if job.Title == "" || job.AbsoluteURL == "" {
			continue
		}
		if !matchesQuery(q.Keywords, job.Title, job.Content) {
			continue
		}

		desc := extractText(job.Content)
		p := model.Posting{
			Title:          cleanText(job.Title),
			CompanyName:    company.Name,
			Location:       cleanText(job.Location.Name),
			Description:    desc,
			Skills:         skills.Extract(desc),
			EmploymentType: extractEmploymentType(job.Title + " " + desc),
			SourcePlatform: s.Platform(),
			URL:            job.AbsoluteURL,
			SalaryCurrency: "USD",
		}
		if t, err := time.Parse(time.RFC3339, job.UpdatedAt); err == nil {
			p.PostedDate = &t
		}
		postings = append(postings, p)
	}

	return postings, nil
}
