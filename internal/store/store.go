// Package store persists job postings and salary cache entries behind GORM.
// SQLite is the default backend; a postgres DSN switches the driver.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recruitiq/recruitiq/internal/model"
)

const maxSearchLimit = 1000

// Store wraps the database handle and exposes the operations the CLI needs.
type Store struct {
	db *gorm.DB
}

// Open connects to the database named by dsn and migrates the schema.
// A dsn starting with postgres:// (or containing host=) selects postgres;
// anything else is treated as a SQLite file path.
func Open(dsn string) (*Store, error) {
	dialector := dialectorFor(dsn)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&model.JobPosting{}, &model.SalaryCache{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Upsert inserts a posting or refreshes the existing row with the same
// (URL, platform) pair. It reports whether a new row was created.
//
// An existing enriched salary is kept unless the incoming posting carries a
// real one, so re-scraping never wipes out enrichment work.
func (s *Store) Upsert(p model.Posting) (created bool, err error) {
	record := toRecord(p)

	var existing model.JobPosting
	res := s.db.Where("url = ? AND source_platform = ?", p.URL, p.SourcePlatform).First(&existing)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			if err := s.db.Create(&record).Error; err != nil {
				return false, fmt.Errorf("insert posting: %w", err)
			}
			return true, nil
		}
		return false, fmt.Errorf("lookup posting: %w", res.Error)
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if !record.HasSalary() && existing.HasSalary() {
		record.SalaryMin = existing.SalaryMin
		record.SalaryMax = existing.SalaryMax
		record.SalaryCurrency = existing.SalaryCurrency
		record.SalarySource = existing.SalarySource
		record.SalaryEstimated = existing.SalaryEstimated
	}

	if err := s.db.Model(&existing).Select("*").Omit("id", "created_at").Updates(&record).Error; err != nil {
		return false, fmt.Errorf("update posting: %w", err)
	}
	return false, nil
}

func toRecord(p model.Posting) model.JobPosting {
	currency := p.SalaryCurrency
	if currency == "" {
		currency = "USD"
	}
	salarySource := ""
	if p.SalaryMin != nil || p.SalaryMax != nil {
		salarySource = "posting"
	}
	return model.JobPosting{
		Title:           p.Title,
		CompanyName:     p.CompanyName,
		Location:        p.Location,
		PostedDate:      p.PostedDate,
		SalaryMin:       p.SalaryMin,
		SalaryMax:       p.SalaryMax,
		SalaryCurrency:  currency,
		SalarySource:    salarySource,
		EmploymentType:  p.EmploymentType,
		Description:     p.Description,
		Skills:          strings.Join(p.Skills, ","),
		SourcePlatform:  p.SourcePlatform,
		URL:             p.URL,
		LastScraped:     time.Now(),
		IsActive:        true,
	}
}

// Filters narrows a Search. Zero values mean "don't filter on this".
type Filters struct {
	Keywords       string
	Title          string
	Location       string
	Company        string
	Platform       string
	EmploymentType string
	MinSalary      float64
	MaxSalary      float64
	DaysAgo        int
	Limit          int
}

// Search returns active postings matching the filters, newest first.
func (s *Store) Search(f Filters) ([]model.JobPosting, error) {
	q := s.db.Model(&model.JobPosting{}).Where("is_active = ?", true)

	if f.Keywords != "" {
		pattern := "%" + strings.ToLower(f.Keywords) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}
	if f.EmploymentType != "" {
		q = q.Where("LOWER(employment_type) LIKE ?", "%"+strings.ToLower(f.EmploymentType)+"%")
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.Company != "" {
		q = q.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(f.Company)+"%")
	}
	if f.Platform != "" {
		q = q.Where("source_platform = ?", f.Platform)
	}
	if f.MinSalary > 0 {
		q = q.Where("salary_max >= ? OR salary_min >= ?", f.MinSalary, f.MinSalary)
	}
	if f.MaxSalary > 0 {
		q = q.Where("salary_min <= ? OR salary_max <= ?", f.MaxSalary, f.MaxSalary)
	}
	if f.DaysAgo > 0 {
		cutoff := time.Now().AddDate(0, 0, -f.DaysAgo)
		q = q.Where("last_scraped >= ?", cutoff)
	}

	limit := f.Limit
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	var postings []model.JobPosting
	if err := q.Order("last_scraped DESC").Limit(limit).Find(&postings).Error; err != nil {
		return nil, fmt.Errorf("search postings: %w", err)
	}
	return postings, nil
}

// Total counts all active postings.
func (s *Store) Total() (int64, error) {
	var n int64
	err := s.db.Model(&model.JobPosting{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

// CountRecent counts active postings scraped within the last N days.
func (s *Store) CountRecent(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var n int64
	err := s.db.Model(&model.JobPosting{}).
		Where("is_active = ? AND last_scraped >= ?", true, cutoff).
		Count(&n).Error
	return n, err
}

// GroupRow is one bucket of a GroupCount aggregation.
type GroupRow struct {
	Value string
	Count int64
}

var groupableColumns = map[string]bool{
	"title":           true,
	"company_name":    true,
	"location":        true,
	"source_platform": true,
	"employment_type": true,
}

// GroupCount counts active postings grouped by a whitelisted column,
// largest buckets first. Empty values are skipped.
func (s *Store) GroupCount(column string, limit int) ([]GroupRow, error) {
	if !groupableColumns[column] {
		return nil, fmt.Errorf("cannot group by column %q", column)
	}

	var rows []GroupRow
	err := s.db.Model(&model.JobPosting{}).
		Select(column+" AS value, COUNT(*) AS count").
		Where("is_active = ? AND "+column+" <> ''", true).
		Group(column).
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group by %s: %w", column, err)
	}
	return rows, nil
}

// SalaryRow carries the salary columns needed by the analytics layer.
type SalaryRow struct {
	Title     string
	SalaryMin *float64
	SalaryMax *float64
	Estimated bool `gorm:"column:salary_estimated"`
}

// SalaryRows returns title and salary for every active posting with at
// least one salary bound. Title and Company filters narrow the rows;
// other filter fields are ignored here.
func (s *Store) SalaryRows(f Filters) ([]SalaryRow, error) {
	q := s.db.Model(&model.JobPosting{}).
		Select("title, salary_min, salary_max, salary_estimated").
		Where("is_active = ? AND (salary_min IS NOT NULL OR salary_max IS NOT NULL)", true)

	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}
	if f.Company != "" {
		q = q.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(f.Company)+"%")
	}

	var rows []SalaryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("salary rows: %w", err)
	}
	return rows, nil
}

// DailyCount is the number of postings scraped on one calendar day.
type DailyCount struct {
	Day   string
	Count int64
}

// DailyCounts buckets active postings by scrape day for the last N days.
func (s *Store) DailyCounts(days int) ([]DailyCount, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var rows []DailyCount
	err := s.db.Model(&model.JobPosting{}).
		Select("DATE(last_scraped) AS day, COUNT(*) AS count").
		Where("is_active = ? AND last_scraped >= ?", true, cutoff).
		Group("DATE(last_scraped)").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	return rows, nil
}

// WithoutSalary returns active postings that have no salary bound yet,
// oldest scrape first so enrichment works through the backlog in order.
func (s *Store) WithoutSalary(limit int) ([]model.JobPosting, error) {
	var postings []model.JobPosting
	q := s.db.Where("is_active = ? AND salary_min IS NULL AND salary_max IS NULL", true).
		Order("last_scraped ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&postings).Error; err != nil {
		return nil, fmt.Errorf("postings without salary: %w", err)
	}
	return postings, nil
}

// UpdateSalary writes enriched salary data onto an existing posting.
func (s *Store) UpdateSalary(id uint, salaryMin, salaryMax float64, source string, estimated bool) error {
	err := s.db.Model(&model.JobPosting{}).Where("id = ?", id).Updates(map[string]any{
		"salary_min":       salaryMin,
		"salary_max":       salaryMax,
		"salary_source":    source,
		"salary_estimated": estimated,
	}).Error
	if err != nil {
		return fmt.Errorf("update salary for posting %d: %w", id, err)
	}
	return nil
}

// Deactivate marks postings not seen since the cutoff as inactive and
// returns how many rows changed.
func (s *Store) Deactivate(olderThan time.Time) (int64, error) {
	res := s.db.Model(&model.JobPosting{}).
		Where("is_active = ? AND last_scraped < ?", true, olderThan).
		Update("is_active", false)
	if res.Error != nil {
		return 0, fmt.Errorf("deactivate stale postings: %w", res.Error)
	}
	return res.RowsAffected, nil
}
