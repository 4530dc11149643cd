package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recruitiq/recruitiq/internal/report"
)

var reportOutputDir string

var reportCmd = &cobra.Command{
	Use:       "report <kind>",
	Short:     "Generate an HTML report (executive, salary, skills, market or company)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"executive", "salary", "skills", "market", "company"},
	RunE:      runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutputDir, "output", "o", "", "output directory (default from config)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	outputDir := cfg.Report.OutputDir
	if reportOutputDir != "" {
		outputDir = reportOutputDir
	}

	g := report.New(s, outputDir)
	path, err := g.Generate(report.Kind(args[0]))
	if err != nil {
		return err
	}

	fmt.Printf("report written to %s\n", path)
	return nil
}
