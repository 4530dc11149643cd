package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recruitiq/recruitiq/internal/ai"
	"github.com/recruitiq/recruitiq/internal/store"
)

var cvMatchLimit int

var cvCmd = &cobra.Command{
	Use:   "cv <resume-file>",
	Short: "Analyze a resume and match it against stored postings",
	Long: "Extracts a candidate profile from a plain-text resume and ranks the\n" +
		"stored postings by fit. With ai.enabled the profile comes from the\n" +
		"configured LLM; otherwise pattern-based extraction is used.",
	Args: cobra.ExactArgs(1),
	RunE: runCV,
}

func init() {
	cvCmd.Flags().IntVarP(&cvMatchLimit, "matches", "n", 10, "max job matches to show")
	rootCmd.AddCommand(cvCmd)
}

func runCV(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	resume, err := ai.ReadResume(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analyzer := ai.NewCVAnalyzer(setupLLMProvider(cfg, logger), logger)
	profile, err := analyzer.Analyze(ctx, resume)
	if err != nil {
		return err
	}
	printProfile(profile)

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	postings, err := s.Search(store.Filters{})
	if err != nil {
		return err
	}

	matches := ai.Match(profile, postings, cvMatchLimit)
	if len(matches) == 0 {
		fmt.Println("\nno matching postings in the database")
		fmt.Printf("try: recruitiq scrape all --query %q\n", ai.SuggestQuery(profile))
		return nil
	}

	fmt.Printf("\nTop matches:\n")
	for i, m := range matches {
		expNote := ""
		if !m.ExperienceMatch {
			expNote = " (more experience required)"
		}
		fmt.Printf("%2d. [%3.0f%%] %s at %s%s\n",
			i+1, m.Score, m.Posting.Title, m.Posting.CompanyName, expNote)
		if len(m.MatchedSkills) > 0 {
			fmt.Printf("      skills: %s\n", strings.Join(m.MatchedSkills, ", "))
		}
		fmt.Printf("      %s\n", m.Posting.URL)
	}

	if len(matches) < 5 {
		fmt.Printf("\nfew matches found; try: recruitiq scrape all --query %q\n",
			ai.SuggestQuery(profile))
	}
	return nil
}

func printProfile(p ai.CVProfile) {
	kind := "pattern-based"
	if p.AIPowered {
		kind = "ai"
	}
	fmt.Printf("Candidate profile (%s analysis)\n", kind)

	print := func(label, value string) {
		if value != "" {
			fmt.Printf("  %-12s %s\n", label, value)
		}
	}
	print("Name", p.Name)
	print("Email", p.Email)
	print("Title", p.CurrentTitle)
	print("Location", p.Location)
	if p.YearsExperience > 0 {
		print("Experience", fmt.Sprintf("%d years", p.YearsExperience))
	}
	if len(p.Skills) > 0 {
		print("Skills", strings.Join(p.Skills, ", "))
	}
	if len(p.SuitableTitles) > 0 {
		print("Look for", strings.Join(p.SuitableTitles, ", "))
	}
	for _, s := range p.Strengths {
		fmt.Printf("  + %s\n", s)
	}
	for _, s := range p.Improvements {
		fmt.Printf("  - %s\n", s)
	}
}
