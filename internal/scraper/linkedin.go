package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/recruitiq/recruitiq/internal/model"
)

const linkedinBaseURL = "https://www.linkedin.com"

// LinkedInScraper renders the public jobs search page in a headless browser
// (the listing grid is assembled by JavaScript) and parses the resulting DOM.
type LinkedInScraper struct {
	baseURL string
	now     func() time.Time

	// fetchHTML renders a URL and returns the document HTML. Defaults to the
	// headless-Chrome implementation; tests swap in static fixtures.
	fetchHTML func(ctx context.Context, url string) (string, error)
}

// NewLinkedInScraper creates a headless-browser scraper for LinkedIn job search.
func NewLinkedInScraper() *LinkedInScraper {
	s := &LinkedInScraper{
		baseURL: linkedinBaseURL,
		now:     time.Now,
	}
	s.fetchHTML = s.renderPage
	return s
}

// Platform returns the platform identifier stored with each posting.
func (s *LinkedInScraper) Platform() string { return "linkedin" }

// Scrape renders the search page and parses its job cards.
func (s *LinkedInScraper) Scrape(ctx context.Context, q model.Query) ([]model.Posting, error) {
	searchURL := fmt.Sprintf("%s/jobs/search?keywords=%s&location=%s",
		s.baseURL,
		url.QueryEscape(q.Keywords),
		url.QueryEscape(q.Location),
	)

	html, err := s.fetchHTML(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("linkedin: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("linkedin: parse rendered page: %w", err)
	}

	var postings []model.Posting
	doc.Find("div.base-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := cleanText(card.Find("h3.base-search-card__title").Text())
		company := cleanText(card.Find("h4.base-search-card__subtitle").Text())
		href, _ := card.Find("a.base-card__full-link").Attr("href")
		if title == "" || company == "" || href == "" {
			return true
		}

		p := model.Posting{
			Title:          title,
			CompanyName:    company,
			Location:       cleanText(card.Find("span.job-search-card__location").Text()),
			SourcePlatform: s.Platform(),
			URL:            stripTracking(href),
			SalaryCurrency: "USD",
		}
		if dt, ok := card.Find("time.job-search-card__listdate").Attr("datetime"); ok {
			if t, err := time.Parse("2006-01-02", dt); err == nil {
				p.PostedDate = &t
			}
		}
		if p.PostedDate == nil {
			p.PostedDate = parsePostedDate(card.Find("time").Text(), s.now())
		}

		postings = append(postings, p)
		return q.Limit <= 0 || len(postings) < q.Limit
	})

	return postings, nil
}

// renderPage drives headless Chrome to load the search page and waits for the
// job grid before snapshotting the document.
func (s *LinkedInScraper) renderPage(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise.
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, 60*time.Second)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", pageURL, err)
	}
	return html, nil
}

// stripTracking removes query parameters from LinkedIn job links; the tracking
// junk would otherwise defeat URL-based deduplication.
func stripTracking(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
