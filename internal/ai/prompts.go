package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/cv_analysis.md
var cvAnalysisPromptRaw string

// CVAnalysisTemplate is the parsed prompt template for resume analysis.
// Parsed once at package init; reused on every Analyze call.
var CVAnalysisTemplate = template.Must(template.New("cv_analysis").Parse(cvAnalysisPromptRaw))
