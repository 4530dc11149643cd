package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusPruneDays int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database status",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusPruneDays, "prune", 0, "also deactivate postings not seen for N days")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	total, err := s.Total()
	if err != nil {
		return err
	}
	recent, err := s.CountRecent(7)
	if err != nil {
		return err
	}
	missing, err := s.WithoutSalary(0)
	if err != nil {
		return err
	}
	platforms, err := s.GroupCount("source_platform", 10)
	if err != nil {
		return err
	}

	fmt.Printf("database: %s\n", cfg.Database.DSN)
	fmt.Printf("active postings:   %d\n", total)
	fmt.Printf("scraped last 7d:   %d\n", recent)
	fmt.Printf("without salary:    %d\n", len(missing))
	for _, p := range platforms {
		fmt.Printf("  %-12s %d\n", p.Value, p.Count)
	}

	if statusPruneDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -statusPruneDays)
		n, err := s.Deactivate(cutoff)
		if err != nil {
			return err
		}
		logger.Info("deactivated stale postings", "count", n, "older_than_days", statusPruneDays)
	}
	return nil
}
