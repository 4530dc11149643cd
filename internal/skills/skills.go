// Package skills holds the tech-skill lexicon shared by the scrapers
// (skill tagging) and the analyzer (demand counting).
package skills

import "strings"

// Lexicon is the fixed set of skills counted across job descriptions.
// Multi-word entries are matched as substrings of the lowercased text.
var Lexicon = []string{
	"python", "javascript", "typescript", "java", "go", "rust", "c++", "c#",
	"react", "angular", "vue", "node.js", "django", "spring",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka",
	"aws", "gcp", "azure", "docker", "kubernetes", "terraform",
	"git", "linux", "ci/cd", "devops", "microservices", "rest api", "graphql",
	"machine learning", "data science", "agile", "scrum",
}

// Extract returns the lexicon entries mentioned in text, in lexicon order.
func Extract(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range Lexicon {
		if containsSkill(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// Count tallies lexicon mentions across many texts. A skill is counted at
// most once per text, so the result reads as "number of postings mentioning".
func Count(texts []string) map[string]int {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, skill := range Extract(text) {
			counts[skill]++
		}
	}
	return counts
}

// containsSkill matches short ambiguous tokens ("go", "java", "c#") on word
// boundaries; longer entries match as plain substrings.
func containsSkill(lower, skill string) bool {
	if len(skill) > 4 {
		return strings.Contains(lower, skill)
	}
	idx := 0
	for {
		i := strings.Index(lower[idx:], skill)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(skill)
		if boundaryBefore(lower, start) && boundaryAfter(lower, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	return i >= len(s) || !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
