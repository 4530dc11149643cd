package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/recruitiq/recruitiq/internal/model"
)

const remoteOKBaseURL = "https://remoteok.io"

// remoteOKJob is one entry of the RemoteOK public API response. The first
// element of the array is legal metadata and has no position field.
type remoteOKJob struct {
	ID        string   `json:"id"`
	Position  string   `json:"position"`
	Company   string   `json:"company"`
	Location  string   `json:"location"`
	Tags      []string `json:"tags"`
	Date      string   `json:"date"` // RFC3339
	URL       string   `json:"url"`
	SalaryMin float64  `json:"salary_min"`
	SalaryMax float64  `json:"salary_max"`
	Desc      string   `json:"description"`
}

// RemoteOKScraper pulls remote listings from the RemoteOK public JSON API.
type RemoteOKScraper struct {
	baseURL string
	client  *http.Client
}

// NewRemoteOKScraper creates a scraper for the RemoteOK API.
func NewRemoteOKScraper(client *http.Client) *RemoteOKScraper {
	return &RemoteOKScraper{
		baseURL: remoteOKBaseURL,
		client:  client,
	}
}

// Platform returns the platform identifier stored with each posting.
func (s *RemoteOKScraper) Platform() string { return "remoteok" }

// Scrape fetches the API feed and keeps entries matching the query, up to
// q.Limit. Location is ignored; everything on RemoteOK is remote.
func (s *RemoteOKScraper) Scrape(ctx context.Context, q model.Query) ([]model.Posting, error) {
	var feed []remoteOKJob
	if err := fetchJSON(ctx, s.client, s.baseURL+"/api", &feed); err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}

	postings := make([]model.Posting, 0, q.Limit)
	for _, job := range feed {
		if job.Position == "" || job.Company == "" || job.ID == "" {
			// Metadata entry or malformed row.
			continue
		}
		if !matchesQuery(q.Keywords, job.Position, job.Company, job.Desc, strings.Join(job.Tags, " ")) {
			continue
		}

		p := model.Posting{
			Title:          cleanText(job.Position),
			CompanyName:    cleanText(job.Company),
			Location:       orDefault(cleanText(job.Location), "Remote"),
			Description:    extractText(job.Desc),
			Skills:         job.Tags,
			EmploymentType: extractEmploymentType(job.Position + " " + job.Desc),
			SourcePlatform: s.Platform(),
			URL:            job.URL,
			SalaryCurrency: "USD",
		}
		if p.URL == "" {
			p.URL = fmt.Sprintf("%s/remote-jobs/%s", s.baseURL, job.ID)
		}
		if job.SalaryMin > 0 {
			v := job.SalaryMin
			p.SalaryMin = &v
		}
		if job.SalaryMax > 0 {
			v := job.SalaryMax
			p.SalaryMax = &v
		}
		if t, err := time.Parse(time.RFC3339, job.Date); err == nil {
			p.PostedDate = &t
		}

		postings = append(postings, p)
		if q.Limit > 0 && len(postings) >= q.Limit {
			break
		}
	}

	return postings, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
