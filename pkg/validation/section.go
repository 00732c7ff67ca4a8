// Package validation checks answer maps against the required flags declared
// in the catalog. Only presence is checked: a required question is satisfied
// by any non-empty string or any non-empty set.
package validation

import (
	"sort"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
)

// RequiredMessage is the message attached to every unsatisfied required
// question.
const RequiredMessage = "This field is required"

// Errors maps question ids to a human readable message.
type Errors map[string]string

// Has reports whether id carries an error.
func (e Errors) Has(id string) bool {
	_, ok := e[id]
	return ok
}

// Keys returns the question ids with errors in sorted order.
func (e Errors) Keys() []string {
	keys := make([]string, 0, len(e))
	for id := range e {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for id, msg := range e {
		out[id] = msg
	}
	return out
}

// ValidateSection returns an entry for every required question of section
// whose answer is absent, an empty string or an empty set. The result is a
// full replacement for the previous error map, never a merge.
func ValidateSection(section catalog.Section, values answers.Map) Errors {
	errs := make(Errors)
	for _, q := range section.Questions {
		if !q.Required {
			continue
		}
		if Unsatisfied(values, q.ID) {
			errs[q.ID] = RequiredMessage
		}
	}
	return errs
}

// Unsatisfied reports whether the answer stored under id counts as missing.
func Unsatisfied(values answers.Map, id string) bool {
	v, ok := values.Get(id)
	return !ok || v.IsEmpty()
}
