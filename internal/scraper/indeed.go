package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/recruitiq/recruitiq/internal/model"
)

const (
	indeedBaseURL  = "https://www.indeed.com"
	indeedPageSize = 10 // listings per search page, drives the start= offset
	indeedMaxPages = 10
)

// IndeedScraper parses Indeed search result pages. Card markup is brittle by
// nature; unparseable cards are skipped rather than failing the whole page.
type IndeedScraper struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewIndeedScraper creates a scraper for Indeed search pages.
func NewIndeedScraper(client *http.Client) *IndeedScraper {
	return &IndeedScraper{
		baseURL: indeedBaseURL,
		client:  client,
		now:     time.Now,
	}
}

// Platform returns the platform identifier stored with each posting.
func (s *IndeedScraper) Platform() string { return "indeed" }

// Scrape paginates search pages until the limit is reached, a page yields
// nothing, or the page cap is hit.
func (s *IndeedScraper) Scrape(ctx context.Context, q model.Query) ([]model.Posting, error) {
	var postings []model.Posting

	for page := 0; page < indeedMaxPages; page++ {
		if q.Limit > 0 && len(postings) >= q.Limit {
			break
		}

		pageURL := fmt.Sprintf("%s/jobs?q=%s&l=%s&start=%d",
			s.baseURL,
			url.QueryEscape(q.Keywords),
			url.QueryEscape(q.Location),
			page*indeedPageSize,
		)

		doc, err := fetchDocument(ctx, s.client, pageURL)
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf("indeed: %w", err)
			}
			// Later pages failing is not fatal; keep what we have.
			break
		}

		found := s.parsePage(doc)
		if len(found) == 0 {
			break
		}
		postings = append(postings, found...)
	}

	if q.Limit > 0 && len(postings) > q.Limit {
		postings = postings[:q.Limit]
	}
	return postings, nil
}

// parsePage extracts postings from one search result page.
func (s *IndeedScraper) parsePage(doc *goquery.Document) []model.Posting {
	var postings []model.Posting

	doc.Find("div.job_seen_beacon").Each(func(_ int, card *goquery.Selection) {
		title := cleanText(card.Find("h2.jobTitle").Text())
		company := cleanText(card.Find("[data-testid=company-name]").Text())
		if title == "" || company == "" {
			return
		}

		href, _ := card.Find("h2.jobTitle a").Attr("href")
		if href == "" {
			return
		}

		p := model.Posting{
			Title:          title,
			CompanyName:    company,
			Location:       cleanText(card.Find("[data-testid=text-location]").Text()),
			Description:    cleanText(card.Find(".job-snippet").Text()),
			SourcePlatform: s.Platform(),
			URL:            s.resolveURL(href),
		}
		p.SalaryMin, p.SalaryMax, p.SalaryCurrency = parseSalary(
			card.Find("[data-testid=attribute_snippet_testid]").Text())
		p.PostedDate = parsePostedDate(card.Find("[data-testid=myJobsStateDate]").Text(), s.now())
		p.EmploymentType = extractEmploymentType(title + " " + p.Description)

		postings = append(postings, p)
	})

	return postings
}

func (s *IndeedScraper) resolveURL(href string) string {
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}
	return s.baseURL + href
}
