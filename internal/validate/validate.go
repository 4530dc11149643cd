// Package validate checks scraped postings before they reach the store.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/recruitiq/recruitiq/internal/model"
)

const maxSalary = 1_000_000

var v = validator.New(validator.WithRequiredStructEnabled())

// Check validates a scraped posting. It returns an error describing the first
// problem found, or nil if the posting is storable.
func Check(p model.Posting) error {
	if err := v.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("field %s failed %q validation", fieldName(fe.Field()), fe.Tag())
		}
		return err
	}

	if !strings.HasPrefix(p.URL, "http://") && !strings.HasPrefix(p.URL, "https://") {
		return fmt.Errorf("url %q is not http(s)", p.URL)
	}

	if p.SalaryMin != nil {
		if *p.SalaryMin < 0 || *p.SalaryMin > maxSalary {
			return fmt.Errorf("salary_min %.0f out of range", *p.SalaryMin)
		}
	}
	if p.SalaryMax != nil {
		if *p.SalaryMax < 0 || *p.SalaryMax > maxSalary {
			return fmt.Errorf("salary_max %.0f out of range", *p.SalaryMax)
		}
	}
	if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMin > *p.SalaryMax {
		return fmt.Errorf("salary_min %.0f exceeds salary_max %.0f", *p.SalaryMin, *p.SalaryMax)
	}

	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

func fieldName(structField string) string {
	// Report snake_case names to match the stored columns.
	var b strings.Builder
	for i, r := range structField {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
