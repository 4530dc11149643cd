package main

import (
	"github.com/spf13/cobra"

	"github.com/recruitiq/recruitiq/internal/browse"
	"github.com/recruitiq/recruitiq/internal/store"
)

var (
	browseKeywords string
	browseLimit    int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored postings interactively",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseKeywords, "keywords", "k", "", "pre-filter by keywords")
	browseCmd.Flags().IntVarP(&browseLimit, "limit", "n", 200, "max postings to load")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	postings, err := s.Search(store.Filters{
		Keywords: browseKeywords,
		Limit:    browseLimit,
	})
	if err != nil {
		return err
	}

	return browse.Run(postings)
}
