package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recruitiq/recruitiq/internal/analyze"
)

var (
	analyzeTrendDays  int
	analyzeSkillsOnly bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show job market analytics from the stored postings",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeTrendDays, "trends", 0, "also show daily posting counts for the last N days")
	analyzeCmd.Flags().BoolVar(&analyzeSkillsOnly, "skills", false, "show only the skills demand ranking")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	a := analyze.New(s)

	if analyzeSkillsOnly {
		demand, err := a.SkillsDemand(15)
		if err != nil {
			return err
		}
		fmt.Print(analyze.RenderSkills(demand))
		return nil
	}

	overview, err := a.Overview()
	if err != nil {
		return err
	}
	fmt.Print(analyze.RenderOverview(overview))

	demand, err := a.SkillsDemand(15)
	if err != nil {
		return err
	}
	fmt.Print(analyze.RenderSkills(demand))

	if analyzeTrendDays > 0 {
		rows, err := a.Trends(analyzeTrendDays)
		if err != nil {
			return err
		}
		fmt.Print(analyze.RenderTrends(rows, analyzeTrendDays))
	}
	return nil
}
