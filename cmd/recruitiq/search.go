package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/recruitiq/recruitiq/internal/model"
	"github.com/recruitiq/recruitiq/internal/store"
)

var (
	searchKeywords       string
	searchTitle          string
	searchLocation       string
	searchCompany        string
	searchPlatform       string
	searchEmploymentType string
	searchMinSalary      float64
	searchMaxSalary      float64
	searchDays           int
	searchLimit          int
	searchShowURL        bool
	searchDetailed       bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored job postings",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchKeywords, "keywords", "k", "", "match against title and description")
	searchCmd.Flags().StringVarP(&searchTitle, "title", "t", "", "title substring")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "location substring")
	searchCmd.Flags().StringVar(&searchCompany, "company", "", "company substring")
	searchCmd.Flags().StringVarP(&searchPlatform, "platform", "p", "", "exact source platform")
	searchCmd.Flags().StringVar(&searchEmploymentType, "employment-type", "", "employment type substring (full-time, contract, ...)")
	searchCmd.Flags().Float64Var(&searchMinSalary, "min-salary", 0, "minimum salary")
	searchCmd.Flags().Float64Var(&searchMaxSalary, "max-salary", 0, "maximum salary")
	searchCmd.Flags().IntVar(&searchDays, "days", 0, "only postings scraped in the last N days")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 25, "max results")
	searchCmd.Flags().BoolVar(&searchShowURL, "url", false, "include posting URLs")
	searchCmd.Flags().BoolVarP(&searchDetailed, "detailed", "d", false, "full record per posting instead of a table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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
		Keywords:       searchKeywords,
		Title:          searchTitle,
		Location:       searchLocation,
		Company:        searchCompany,
		Platform:       searchPlatform,
		EmploymentType: searchEmploymentType,
		MinSalary:      searchMinSalary,
		MaxSalary:      searchMaxSalary,
		DaysAgo:        searchDays,
		Limit:          searchLimit,
	})
	if err != nil {
		return err
	}

	if len(postings) == 0 {
		fmt.Println("no postings match")
		return nil
	}

	if searchDetailed {
		for _, p := range postings {
			printPostingDetail(p)
		}
		fmt.Printf("%d postings\n", len(postings))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCOMPANY\tLOCATION\tSALARY\tPLATFORM")
	for _, p := range postings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(p.Title, 40),
			truncate(p.CompanyName, 24),
			truncate(p.Location, 24),
			salaryColumn(p),
			p.SourcePlatform,
		)
		if searchShowURL {
			fmt.Fprintf(w, "  %s\t\t\t\t\n", p.URL)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d postings\n", len(postings))
	return nil
}

func printPostingDetail(p model.JobPosting) {
	fmt.Printf("%s\n", p.Title)
	fmt.Printf("  company:    %s\n", p.CompanyName)
	if p.Location != "" {
		fmt.Printf("  location:   %s\n", p.Location)
	}
	if p.EmploymentType != "" {
		fmt.Printf("  type:       %s\n", p.EmploymentType)
	}
	if p.HasSalary() {
		fmt.Printf("  salary:     %s %s\n", salaryColumn(p), p.SalaryCurrency)
	}
	if skills := p.SkillList(); len(skills) > 0 {
		fmt.Printf("  skills:     %s\n", strings.Join(skills, ", "))
	}
	if p.PostedDate != nil {
		fmt.Printf("  posted:     %s\n", p.PostedDate.Format("2006-01-02"))
	}
	fmt.Printf("  platform:   %s\n", p.SourcePlatform)
	fmt.Printf("  url:        %s\n", p.URL)
	if p.Description != "" {
		fmt.Printf("  %s\n", truncate(p.Description, 300))
	}
	fmt.Println()
}

func salaryColumn(p model.JobPosting) string {
	if !p.HasSalary() {
		return "-"
	}
	var text string
	switch {
	case p.SalaryMin != nil && p.SalaryMax != nil:
		text = fmt.Sprintf("%.0fk-%.0fk", *p.SalaryMin/1000, *p.SalaryMax/1000)
	case p.SalaryMin != nil:
		text = fmt.Sprintf("%.0fk+", *p.SalaryMin/1000)
	default:
		text = fmt.Sprintf("<=%.0fk", *p.SalaryMax/1000)
	}
	if p.SalaryEstimated {
		text += " est"
	}
	return text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
