package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/recruitiq/recruitiq/internal/ai"
	"github.com/recruitiq/recruitiq/internal/config"
	"github.com/recruitiq/recruitiq/internal/model"
	"github.com/recruitiq/recruitiq/internal/ratelimit"
	"github.com/recruitiq/recruitiq/internal/retry"
	"github.com/recruitiq/recruitiq/internal/scraper"
	"github.com/recruitiq/recruitiq/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "recruitiq",
	Short: "Job market intelligence from your terminal",
	Long: "RecruitIQ scrapes job platforms into a local database and turns the\n" +
		"postings into searchable listings, salary insights and market reports.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: RECRUITIQ_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > RECRUITIQ_CONFIG env var > "./config.yaml".
// A missing default file is not an error; built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("RECRUITIQ_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	s, err := store.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", cfg.Database.DSN, err)
	}
	return s, nil
}

// buildScraper creates the raw scraper for one platform.
func buildScraper(platform string, cfg *config.Config, httpClient *http.Client) (model.Scraper, error) {
	switch platform {
	case "remoteok":
		return scraper.NewRemoteOKScraper(httpClient), nil
	case "indeed":
		return scraper.NewIndeedScraper(httpClient), nil
	case "linkedin":
		return scraper.NewLinkedInScraper(), nil
	case "company":
		if len(cfg.Scrape.Companies) == 0 {
			return nil, fmt.Errorf("no companies configured; add scrape.companies to config.yaml")
		}
		return scraper.NewCompanyScraper(cfg.Scrape.Companies, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown platform %q (use remoteok, indeed, linkedin or company)", platform)
	}
}

var allPlatforms = []string{"remoteok", "indeed", "linkedin", "company"}

// buildScrapers assembles the requested platform scrapers, each wrapped with
// retries and platform-level rate limiting.
func buildScrapers(platforms []string, cfg *config.Config, logger *slog.Logger) ([]model.Scraper, error) {
	httpClient := &http.Client{Timeout: cfg.Scrape.Timeout}
	limiter := ratelimit.New(cfg.Scrape.MinDelay, cfg.Scrape.PlatformDelays)

	var scrapers []model.Scraper
	for _, platform := range platforms {
		s, err := buildScraper(platform, cfg, httpClient)
		if err != nil {
			if platform == "company" && len(platforms) > 1 {
				// "all" without configured boards just skips the company scraper.
				logger.Debug("skipping company scraper", "reason", err)
				continue
			}
			return nil, err
		}

		wrapped := retry.New(s, cfg.Scrape.MaxRetries, cfg.Scrape.RetryDelay, logger)
		scrapers = append(scrapers, ratelimit.Wrap(wrapped, limiter))
		logger.Debug("registered platform", "platform", platform)
	}
	return scrapers, nil
}

func setupLLMProvider(cfg *config.Config, logger *slog.Logger) ai.LLMProvider {
	if !cfg.AI.Enabled {
		return nil
	}
	logger.Info("ai analysis enabled", "model", cfg.AI.Model)
	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	return ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, httpClient)
}

func queryFromFlags(cfg *config.Config, keywords, location string, limit int) model.Query {
	q := model.Query{
		Keywords: cfg.Scrape.Query,
		Location: cfg.Scrape.Location,
		Limit:    cfg.Scrape.Limit,
	}
	if keywords != "" {
		q.Keywords = keywords
	}
	if location != "" {
		q.Location = location
	}
	if limit > 0 {
		q.Limit = limit
	}
	return q
}
