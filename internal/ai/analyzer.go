package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/xeipuuv/gojsonschema"

	"github.com/recruitiq/recruitiq/internal/skills"
)

// CVProfile is the structured result of analyzing a resume.
type CVProfile struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	LinkedIn        string   `json:"linkedin"`
	GitHub          string   `json:"github"`
	Location        string   `json:"location"`
	YearsExperience int      `json:"years_experience"`
	CurrentTitle    string   `json:"current_title"`
	Skills          []string `json:"skills"`
	SuitableTitles  []string `json:"suitable_titles"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	AIPowered       bool     `json:"-"`
}

const minResumeLength = 50

// CVAnalyzer extracts a structured profile from resume text. With a provider
// it asks the LLM; without one (or when the LLM fails) it falls back to
// pattern-based extraction.
type CVAnalyzer struct {
	provider LLMProvider
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewCVAnalyzer creates an analyzer. provider may be nil; the analyzer then
// always uses the pattern-based fallback.
func NewCVAnalyzer(provider LLMProvider, logger *slog.Logger) *CVAnalyzer {
	return &CVAnalyzer{
		provider: provider,
		tmpl:     CVAnalysisTemplate,
		logger:   logger,
	}
}

// ReadResume loads a resume file. Only plain-text resumes are supported.
func ReadResume(path string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".txt" && ext != ".md" {
		return "", fmt.Errorf("unsupported resume format %q (use .txt or .md)", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if len(text) < minResumeLength {
		return "", fmt.Errorf("resume text too short (%d characters)", len(text))
	}
	return text, nil
}

// Analyze builds a profile from resume text.
func (a *CVAnalyzer) Analyze(ctx context.Context, resume string) (CVProfile, error) {
	if a.provider == nil {
		return fallbackProfile(resume), nil
	}

	profile, err := a.llmProfile(ctx, resume)
	if err != nil {
		a.logger.Warn("llm analysis failed, using pattern-based fallback", "error", err)
		return fallbackProfile(resume), nil
	}
	profile.AIPowered = true
	return profile, nil
}

const maxPromptResumeChars = 8000

func (a *CVAnalyzer) llmProfile(ctx context.Context, resume string) (CVProfile, error) {
	if len(resume) > maxPromptResumeChars {
		resume = resume[:maxPromptResumeChars]
	}

	var promptBuf bytes.Buffer
	if err := a.tmpl.Execute(&promptBuf, struct{ Resume string }{Resume: resume}); err != nil {
		return CVProfile{}, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := a.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return CVProfile{}, fmt.Errorf("llm complete: %w", err)
	}

	if err := validateProfileJSON(raw); err != nil {
		return CVProfile{}, err
	}

	var profile CVProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return CVProfile{}, fmt.Errorf("unmarshal profile JSON: %w", err)
	}

	// Cap list sizes as a guard against runaway responses.
	if len(profile.Skills) > 30 {
		profile.Skills = profile.Skills[:30]
	}
	if len(profile.SuitableTitles) > 5 {
		profile.SuitableTitles = profile.SuitableTitles[:5]
	}
	return profile, nil
}

// validateProfileJSON checks the LLM response against cvProfileSchema before
// parsing. Structured outputs should guarantee this, but not every
// OpenAI-compatible server enforces the schema.
func validateProfileJSON(raw string) error {
	schemaLoader := gojsonschema.NewGoLoader(cvProfileSchema)
	docLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate profile JSON: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("profile JSON does not match schema: %s", errs[0])
		}
		return fmt.Errorf("profile JSON does not match schema")
	}
	return nil
}

var (
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRegex    = regexp.MustCompile(`\+?\d[\d\s.()-]{7,}\d`)
	linkedinRegex = regexp.MustCompile(`linkedin\.com/in/[A-Za-z0-9-]+`)
	githubRegex   = regexp.MustCompile(`github\.com/[A-Za-z0-9-]+`)
	yearsRegex    = regexp.MustCompile(`(\d{1,2})\+?\s*years?`)
)

// fallbackProfile extracts what it can with regexes and the skill lexicon.
func fallbackProfile(resume string) CVProfile {
	lower := strings.ToLower(resume)

	profile := CVProfile{
		Email:          emailRegex.FindString(resume),
		Phone:          strings.TrimSpace(phoneRegex.FindString(resume)),
		Skills:         skills.Extract(resume),
		SuitableTitles: []string{"software engineer"},
	}

	if m := linkedinRegex.FindString(lower); m != "" {
		profile.LinkedIn = "https://" + m
	}
	if m := githubRegex.FindString(lower); m != "" {
		profile.GitHub = "https://" + m
	}

	var maxYears int
	for _, m := range yearsRegex.FindAllStringSubmatch(lower, -1) {
		if y, err := strconv.Atoi(m[1]); err == nil && y > maxYears && y <= 60 {
			maxYears = y
		}
	}
	profile.YearsExperience = maxYears

	return profile
}
