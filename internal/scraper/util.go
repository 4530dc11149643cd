package scraper

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	salaryRangeRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(K)?\s*(?:-|–|TO)\s*(\d+(?:\.\d+)?)\s*(K)?`)
	salaryValueRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(K)?`)
	daysAgoRegex     = regexp.MustCompile(`(\d+)\s*days?\s*ago`)
	weeksAgoRegex    = regexp.MustCompile(`(\d+)\s*weeks?\s*ago`)
	monthsAgoRegex   = regexp.MustCompile(`(\d+)\s*months?\s*ago`)
	salaryWordRegex  = regexp.MustCompile(`\b(USD|EUR|GBP|PER|YEAR|ANNUALLY|YR|HOUR|HOURLY|A)\b`)
)

// extractText converts an HTML or HTML-encoded string to plain text.
// It first unescapes HTML entities, strips all tags, then collapses whitespace.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// cleanText collapses whitespace and trims the string.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// parseSalary extracts a salary range from free text like "$80K - $120K a year"
// or "€70,000". Returns nil bounds when no number is present; currency falls
// back to USD.
func parseSalary(text string) (min, max *float64, currency string) {
	currency = "USD"
	if text == "" {
		return nil, nil, currency
	}

	upper := strings.ToUpper(cleanText(text))
	switch {
	case strings.Contains(upper, "€") || strings.Contains(upper, "EUR"):
		currency = "EUR"
	case strings.Contains(upper, "£") || strings.Contains(upper, "GBP"):
		currency = "GBP"
	}

	// Strip currency markers and separators so the numeric regexes see
	// plain numbers. K suffixes stay attached to their digits so that
	// unrelated text ("per week", "401k match") never scales the salary.
	cleaned := strings.NewReplacer("$", "", "€", "", "£", "", ",", "").Replace(upper)
	cleaned = salaryWordRegex.ReplaceAllString(cleaned, "")

	if m := salaryRangeRegex.FindStringSubmatch(cleaned); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[3], 64)
		if err1 == nil && err2 == nil {
			// "$80 - $120K" means both bounds are in thousands.
			if m[2] == "K" || m[4] == "K" {
				lo *= 1000
				hi *= 1000
			}
			return &lo, &hi, currency
		}
	}

	if m := salaryValueRegex.FindStringSubmatch(cleaned); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if m[2] == "K" {
				v *= 1000
			}
			return &v, &v, currency
		}
	}

	return nil, nil, currency
}

// parsePostedDate turns relative phrasing ("3 days ago", "just posted") into a
// timestamp anchored at now. Returns nil when the text is unrecognized.
func parsePostedDate(text string, now time.Time) *time.Time {
	lower := strings.ToLower(cleanText(text))
	if lower == "" {
		return nil
	}

	switch {
	case strings.Contains(lower, "just posted"), strings.Contains(lower, "today"):
		return &now
	case strings.Contains(lower, "yesterday"):
		t := now.AddDate(0, 0, -1)
		return &t
	}

	if m := daysAgoRegex.FindStringSubmatch(lower); m != nil {
		days, _ := strconv.Atoi(m[1])
		t := now.AddDate(0, 0, -days)
		return &t
	}
	if m := weeksAgoRegex.FindStringSubmatch(lower); m != nil {
		weeks, _ := strconv.Atoi(m[1])
		t := now.AddDate(0, 0, -7*weeks)
		return &t
	}
	if m := monthsAgoRegex.FindStringSubmatch(lower); m != nil {
		months, _ := strconv.Atoi(m[1])
		t := now.AddDate(0, -months, 0)
		return &t
	}
	if strings.Contains(lower, "week") && strings.Contains(lower, "ago") {
		t := now.AddDate(0, 0, -7)
		return &t
	}

	// Absolute RFC3339 dates pass through (RemoteOK web fallback).
	if t, err := time.Parse(time.RFC3339, cleanText(text)); err == nil {
		return &t
	}

	return nil
}

// extractEmploymentType guesses the employment type from title or description text.
func extractEmploymentType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "intern"):
		return "Internship"
	case strings.Contains(lower, "part-time"), strings.Contains(lower, "part time"):
		return "Part-time"
	case strings.Contains(lower, "contract"), strings.Contains(lower, "freelance"):
		return "Contract"
	case strings.Contains(lower, "temporary"):
		return "Temporary"
	case strings.Contains(lower, "full-time"), strings.Contains(lower, "full time"):
		return "Full-time"
	default:
		return ""
	}
}

// matchesQuery reports whether any keyword of the query appears in the given
// fields. An empty query matches everything.
func matchesQuery(query string, fields ...string) bool {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	for _, word := range strings.Fields(query) {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}
