package ai

import (
	"testing"

	"github.com/recruitiq/recruitiq/internal/model"
)

func matchProfile() CVProfile {
	return CVProfile{
		Skills:          []string{"go", "postgresql", "kubernetes"},
		SuitableTitles:  []string{"backend engineer"},
		YearsExperience: 5,
	}
}

func TestMatch_RanksBySkillOverlap(t *testing.T) {
	postings := []model.JobPosting{
		{ID: 1, Title: "Backend Engineer", Description: "go, postgresql and kubernetes in production"},
		{ID: 2, Title: "Platform Engineer", Description: "kubernetes platform work"},
		{ID: 3, Title: "Graphic Designer", Description: "figma and illustrator"},
	}

	matches := Match(matchProfile(), postings, 10)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Posting.ID != 1 {
		t.Errorf("top match = posting %d, want 1", matches[0].Posting.ID)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("scores not descending: %v vs %v", matches[0].Score, matches[1].Score)
	}
	if len(matches[0].MatchedSkills) != 3 {
		t.Errorf("matched skills = %v", matches[0].MatchedSkills)
	}
}

func TestMatch_TitleBoost(t *testing.T) {
	postings := []model.JobPosting{
		{ID: 1, Title: "Backend Engineer", Description: "go services"},
		{ID: 2, Title: "Site Reliability Engineer", Description: "go services"},
	}

	matches := Match(matchProfile(), postings, 10)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Posting.ID != 1 {
		t.Errorf("title match should rank first, got posting %d", matches[0].Posting.ID)
	}
}

func TestMatch_ExperiencePenalty(t *testing.T) {
	profile := matchProfile()
	profile.YearsExperience = 2

	postings := []model.JobPosting{
		{ID: 1, Title: "Engineer", Description: "go and postgresql, minimum 8 years experience required"},
	}
	matches := Match(profile, postings, 10)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].ExperienceMatch {
		t.Error("expected experience mismatch")
	}

	// Same posting without the requirement scores higher.
	postings[0].Description = "go and postgresql"
	unpenalized := Match(profile, postings, 10)
	if unpenalized[0].Score <= matches[0].Score {
		t.Errorf("penalty not applied: %v vs %v", matches[0].Score, unpenalized[0].Score)
	}
}

func TestMatch_NoSkills(t *testing.T) {
	postings := []model.JobPosting{{Title: "Engineer", Description: "go"}}
	if got := Match(CVProfile{}, postings, 10); got != nil {
		t.Errorf("expected nil matches for empty profile, got %v", got)
	}
}

func TestMatch_MaxResults(t *testing.T) {
	var postings []model.JobPosting
	for i := 0; i < 5; i++ {
		postings = append(postings, model.JobPosting{
			ID: uint(i + 1), Title: "Engineer", Description: "go everywhere",
		})
	}
	matches := Match(matchProfile(), postings, 2)
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestSuggestQuery(t *testing.T) {
	tests := []struct {
		name    string
		profile CVProfile
		want    string
	}{
		{"uses top title", matchProfile(), "backend engineer"},
		{"falls back to skills", CVProfile{Skills: []string{"go", "postgresql", "kubernetes", "aws"}}, "go postgresql kubernetes"},
		{"default", CVProfile{}, "software engineer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestQuery(tt.profile); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
