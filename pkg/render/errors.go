package render

import (
	"slices"
	"strings"

	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/validation"
)

// FieldErrors keeps the messages that belong to questions of section. Errors
// left over from other sections are not shown here.
func FieldErrors(section catalog.Section, errs validation.Errors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string)
	for _, q := range section.Questions {
		if msg := strings.TrimSpace(errs[q.ID]); msg != "" {
			out[q.ID] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping blanks and repeats. Order is kept.
func MergeFormErrors(existing []string, extras ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, message := range slices.Concat(existing, extras) {
		message = strings.TrimSpace(message)
		if message == "" || seen[message] {
			continue
		}
		seen[message] = true
		out = append(out, message)
	}
	return out
}
