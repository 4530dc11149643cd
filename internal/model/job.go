package model

import (
	"context"
	"strings"
	"time"
)

// JobPosting is the persisted job record. One row per (URL, SourcePlatform);
// the composite unique index is what the dedupe step relies on.
type JobPosting struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"size:255;not null;index"`
	CompanyName     string `gorm:"size:255;not null;index"`
	Location        string `gorm:"size:255;index"`
	PostedDate      *time.Time
	SalaryMin       *float64
	SalaryMax       *float64
	SalaryCurrency  string `gorm:"size:10;default:USD"`
	SalarySource    string `gorm:"size:100"`
	SalaryEstimated bool
	EmploymentType  string `gorm:"size:50"`
	Description     string `gorm:"type:text"`
	Skills          string `gorm:"type:text"` // comma-joined, see SkillList
	SourcePlatform  string `gorm:"size:100;not null;index;uniqueIndex:idx_job_url_platform"`
	URL             string `gorm:"size:2048;not null;uniqueIndex:idx_job_url_platform"`
	LastScraped     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	IsActive        bool `gorm:"default:true"`
}

// SkillList splits the stored comma-joined skills column.
func (j JobPosting) SkillList() []string {
	if j.Skills == "" {
		return nil
	}
	parts := strings.Split(j.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// HasSalary reports whether the posting carries any salary information.
func (j JobPosting) HasSalary() bool {
	return j.SalaryMin != nil || j.SalaryMax != nil
}

// SalaryCache memoizes salary lookups keyed by normalized (title, company,
// location) so enrichment never computes the same role twice.
type SalaryCache struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null;uniqueIndex:idx_salary_cache_key"`
	CompanyName string `gorm:"size:255;not null;uniqueIndex:idx_salary_cache_key"`
	Location    string `gorm:"size:255;not null;uniqueIndex:idx_salary_cache_key"`
	SalaryMin   float64
	SalaryMax   float64
	Currency    string `gorm:"size:10"`
	Estimated   bool
	CreatedAt   time.Time
}

// Posting is the scraper-side record shape, before persistence.
// Validator tags back internal/validate; cross-field salary checks live there.
type Posting struct {
	Title          string `validate:"required,min=2,max=200"`
	CompanyName    string `validate:"required,min=1,max=200"`
	Location       string `validate:"max=200"`
	PostedDate     *time.Time
	SalaryMin      *float64
	SalaryMax      *float64
	SalaryCurrency string
	EmploymentType string
	Description    string `validate:"max=10000"`
	Skills         []string
	SourcePlatform string `validate:"required"`
	URL            string `validate:"required,url"`
}

// Query describes a single scrape request.
type Query struct {
	Keywords string
	Location string
	Limit    int // cap on returned postings, not a promise
}

// Scraper fetches postings from one platform (RemoteOK, Indeed, ...).
type Scraper interface {
	Platform() string
	Scrape(ctx context.Context, q Query) ([]Posting, error)
}
