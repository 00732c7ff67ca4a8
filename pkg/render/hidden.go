package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SectionFieldName is the hidden input carrying the section index a posted
// form was rendered for.
const SectionFieldName = "_section"

// HiddenField is a hidden form input emitted alongside the visible controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying token under name (for example
// "_csrf").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// SectionField records the rendered section index so a handler can reject
// posts for a section the respondent is no longer on.
func SectionField(index int) HiddenField {
	return HiddenField{Name: SectionFieldName, Value: strconv.Itoa(index)}
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name = strings.TrimSpace(field.Name); field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields ordered by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	result := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		result = append(result, HiddenField{Name: name, Value: value})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	if len(result) == 0 {
		return nil
	}
	return result
}
