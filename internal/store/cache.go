package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/recruitiq/recruitiq/internal/model"
)

// cacheKey normalizes the lookup fields so "Acme Corp" and "acme corp"
// share one cache row.
func cacheKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CachedSalary looks up a memoized salary for (title, company, location).
// The second return value reports a cache hit.
func (s *Store) CachedSalary(title, company, location string) (model.SalaryCache, bool, error) {
	var entry model.SalaryCache
	err := s.db.Where("title = ? AND company_name = ? AND location = ?",
		cacheKey(title), cacheKey(company), cacheKey(location)).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.SalaryCache{}, false, nil
		}
		return model.SalaryCache{}, false, fmt.Errorf("salary cache lookup: %w", err)
	}
	return entry, true, nil
}

// CacheSalary memoizes a salary estimate. Re-caching the same key replaces
// the stored values.
func (s *Store) CacheSalary(title, company, location string, salaryMin, salaryMax float64, currency string, estimated bool) error {
	entry := model.SalaryCache{
		Title:       cacheKey(title),
		CompanyName: cacheKey(company),
		Location:    cacheKey(location),
		SalaryMin:   salaryMin,
		SalaryMax:   salaryMax,
		Currency:    currency,
		Estimated:   estimated,
	}

	var existing model.SalaryCache
	err := s.db.Where("title = ? AND company_name = ? AND location = ?",
		entry.Title, entry.CompanyName, entry.Location).First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&entry).Error; err != nil {
				return fmt.Errorf("insert salary cache entry: %w", err)
			}
			return nil
		}
		return fmt.Errorf("salary cache lookup: %w", err)
	}

	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	if err := s.db.Model(&existing).Updates(map[string]any{
		"salary_min": entry.SalaryMin,
		"salary_max": entry.SalaryMax,
		"currency":   entry.Currency,
		"estimated":  entry.Estimated,
	}).Error; err != nil {
		return fmt.Errorf("update salary cache entry: %w", err)
	}
	return nil
}
