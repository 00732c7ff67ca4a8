package validation

import (
	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
)

// Issue describes one unsatisfied question with its location.
type Issue struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result captures the outcome of checking a full answer set.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
	// FirstInvalid is the index of the first section with issues, or -1.
	FirstInvalid int `json:"firstInvalid"`
}

// ValidateCatalog runs ValidateSection over every section in catalog order.
// It is used where answers arrive all at once instead of step by step.
func ValidateCatalog(cat catalog.Catalog, values answers.Map) Result {
	result := Result{Valid: true, FirstInvalid: -1}
	for i, section := range cat.Sections {
		errs := ValidateSection(section, values)
		if len(errs) == 0 {
			continue
		}
		if result.FirstInvalid < 0 {
			result.FirstInvalid = i
		}
		result.Valid = false
		for _, q := range section.Questions {
			msg, ok := errs[q.ID]
			if !ok {
				continue
			}
			result.Issues = append(result.Issues, Issue{
				Section: section.ID,
				Field:   q.ID,
				Message: msg,
			})
		}
	}
	return result
}
