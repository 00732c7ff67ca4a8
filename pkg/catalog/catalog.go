package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCatalog is returned when a catalog has no sections.
	ErrEmptyCatalog = errors.New("catalog: at least one section is required")
	// ErrDuplicateQuestion is wrapped when two questions share an id.
	ErrDuplicateQuestion = errors.New("catalog: duplicate question id")
	// ErrDuplicateSection is wrapped when two sections share an id.
	ErrDuplicateSection = errors.New("catalog: duplicate section id")
)

// Len returns the number of sections.
func (c Catalog) Len() int {
	return len(c.Sections)
}

// LastIndex returns the index of the final section, or -1 when empty.
func (c Catalog) LastIndex() int {
	return len(c.Sections) - 1
}

// Section returns the section at index i.
func (c Catalog) Section(i int) (Section, bool) {
	if i < 0 || i >= len(c.Sections) {
		return Section{}, false
	}
	return c.Sections[i], true
}

// SectionIndex resolves a section id to its position.
func (c Catalog) SectionIndex(id string) (int, bool) {
	for i, section := range c.Sections {
		if section.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Question looks up a question by id across all sections.
func (c Catalog) Question(id string) (Question, bool) {
	for _, section := range c.Sections {
		for _, q := range section.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// Questions returns every question in catalog order.
func (c Catalog) Questions() []Question {
	var out []Question
	for _, section := range c.Sections {
		out = append(out, section.Questions...)
	}
	return out
}

// Validate checks the structural invariants of the catalog and reports every
// violation it finds.
func (c Catalog) Validate() error {
	if len(c.Sections) == 0 {
		return ErrEmptyCatalog
	}

	var errs []error
	sectionIDs := make(map[string]struct{}, len(c.Sections))
	questionIDs := make(map[string]string)

	for i, section := range c.Sections {
		id := strings.TrimSpace(section.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("catalog: section %d: id is required", i))
		} else if _, exists := sectionIDs[id]; exists {
			errs = append(errs, fmt.Errorf("%w %q", ErrDuplicateSection, id))
		} else {
			sectionIDs[id] = struct{}{}
		}

		for j, q := range section.Questions {
			if err := validateQuestion(q); err != nil {
				errs = append(errs, fmt.Errorf("catalog: section %q question %d: %w", section.ID, j, err))
			}
			if q.ID == "" {
				continue
			}
			if owner, exists := questionIDs[q.ID]; exists {
				errs = append(errs, fmt.Errorf("%w %q (sections %q and %q)", ErrDuplicateQuestion, q.ID, owner, section.ID))
				continue
			}
			questionIDs[q.ID] = section.ID
		}
	}

	return errors.Join(errs...)
}

func validateQuestion(q Question) error {
	if strings.TrimSpace(q.ID) == "" {
		return errors.New("id is required")
	}
	if !q.Type.Valid() {
		return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
	}
	if !q.Type.HasOptions() {
		return nil
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("question %q: type %s requires options", q.ID, q.Type)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, exists := seen[opt.Value]; exists {
			return fmt.Errorf("question %q: duplicate option value %q", q.ID, opt.Value)
		}
		seen[opt.Value] = struct{}{}
	}
	return nil
}
