package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recruitiq/recruitiq/internal/pipeline"
)

var (
	scrapeKeywords string
	scrapeLocation string
	scrapeLimit    int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <platform>",
	Short: "Scrape a job platform into the database",
	Long: "Scrapes job postings from one platform (remoteok, indeed, linkedin,\n" +
		"company) or all of them, validates the results and stores them.\n" +
		"Re-scraping the same posting updates it in place.",
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeKeywords, "query", "q", "", "search keywords (default from config)")
	scrapeCmd.Flags().StringVarP(&scrapeLocation, "location", "l", "", "location filter (default from config)")
	scrapeCmd.Flags().IntVarP(&scrapeLimit, "limit", "n", 0, "max postings per platform (default from config)")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	platforms := []string{args[0]}
	if args[0] == "all" {
		platforms = allPlatforms
	}

	scrapers, err := buildScrapers(platforms, cfg, logger)
	if err != nil {
		return err
	}
	if len(scrapers) == 0 {
		return fmt.Errorf("no platforms to scrape")
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	q := queryFromFlags(cfg, scrapeKeywords, scrapeLocation, scrapeLimit)
	logger.Info("scraping", "platforms", platforms, "query", q.Keywords, "location", q.Location)

	runner := pipeline.New(s, logger, cfg.Scrape.FallbackSamples)
	results, err := runner.RunAll(ctx, scrapers, q)
	if err != nil {
		return err
	}

	var created, updated, invalid int
	for _, r := range results {
		created += r.Created
		updated += r.Updated
		invalid += r.Invalid
		note := ""
		if r.Fallback {
			note = " (sample data)"
		}
		fmt.Printf("%-10s %d fetched, %d new, %d updated, %d invalid%s\n",
			r.Platform, r.Fetched, r.Created, r.Updated, r.Invalid, note)
	}
	fmt.Printf("\ntotal: %d new, %d updated, %d invalid\n", created, updated, invalid)
	return nil
}
