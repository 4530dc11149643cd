package ai

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/recruitiq/recruitiq/internal/model"
)

// JobMatch pairs a posting with how well it fits a candidate profile.
type JobMatch struct {
	Posting         model.JobPosting
	Score           float64 // 0..100
	MatchedSkills   []string
	ExperienceMatch bool
}

const matchThreshold = 5.0

var requiredExpRegex = regexp.MustCompile(`(\d{1,2})\+?\s*years?`)

// Match scores postings against the profile's skills and experience,
// best matches first. Postings scoring at or below the threshold are
// dropped. At most maxResults matches are returned.
func Match(profile CVProfile, postings []model.JobPosting, maxResults int) []JobMatch {
	candidateSkills := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			candidateSkills = append(candidateSkills, s)
		}
	}
	if len(candidateSkills) == 0 {
		return nil
	}

	var matches []JobMatch
	for _, p := range postings {
		haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.Skills)

		var matched []string
		for _, s := range candidateSkills {
			if strings.Contains(haystack, s) {
				matched = append(matched, s)
			}
		}
		score := 100 * float64(len(matched)) / float64(len(candidateSkills))

		// A title hit is a strong signal on top of skill overlap.
		titleLower := strings.ToLower(p.Title)
		for _, t := range profile.SuitableTitles {
			if t != "" && strings.Contains(titleLower, strings.ToLower(t)) {
				score += 15
				break
			}
		}
		if score > 100 {
			score = 100
		}

		expMatch := true
		if profile.YearsExperience > 0 {
			if req, ok := requiredExperience(p.Description); ok && profile.YearsExperience < req {
				expMatch = false
				score *= 0.7
			}
		}

		if score <= matchThreshold {
			continue
		}
		matches = append(matches, JobMatch{
			Posting:         p,
			Score:           score,
			MatchedSkills:   matched,
			ExperienceMatch: expMatch,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

// requiredExperience finds the lowest years-of-experience figure mentioned
// in a job description.
func requiredExperience(description string) (int, bool) {
	lower := strings.ToLower(description)
	if !strings.Contains(lower, "experience") {
		return 0, false
	}

	minYears := -1
	for _, m := range requiredExpRegex.FindAllStringSubmatch(lower, -1) {
		y, err := strconv.Atoi(m[1])
		if err != nil || y > 30 {
			continue
		}
		if minYears < 0 || y < minYears {
			minYears = y
		}
	}
	if minYears < 0 {
		return 0, false
	}
	return minYears, true
}

// SuggestQuery derives a scrape query from the profile: the top suitable
// title when present, otherwise the strongest skills.
func SuggestQuery(profile CVProfile) string {
	if len(profile.SuitableTitles) > 0 && strings.TrimSpace(profile.SuitableTitles[0]) != "" {
		return profile.SuitableTitles[0]
	}

	var parts []string
	for _, s := range profile.Skills {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
		if len(parts) == 3 {
			break
		}
	}
	if len(parts) == 0 {
		return "software engineer"
	}
	return strings.Join(parts, " ")
}
