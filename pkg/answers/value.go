// Package answers models the values a respondent gives to catalog questions.
// A value is either a scalar string (text, textarea, select, radio) or a set
// of option values (multiselect). Answer maps are keyed by question id.
package answers

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Kind distinguishes scalar answers from multi-value answers.
type Kind uint8

const (
	// KindNone marks the zero Value, meaning "unanswered".
	KindNone Kind = iota
	KindScalar
	KindMulti
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMulti:
		return "multi"
	default:
		return "none"
	}
}

// Value is a tagged union of a scalar string or a set of strings. Multi
// values keep their members sorted and unique so equality and encoding are
// stable regardless of the order options were checked in.
type Value struct {
	kind   Kind
	scalar string
	multi  []string
}

// Scalar builds a single string answer.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Multi builds a set answer. Duplicates collapse.
func Multi(values ...string) Value {
	set := make([]string, 0, len(values))
	set = append(set, values...)
	slices.Sort(set)
	set = slices.Compact(set)
	return Value{kind: KindMulti, multi: set}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsScalar reports whether v holds a string.
func (v Value) IsScalar() bool {
	return v.kind == KindScalar
}

// IsMulti reports whether v holds a set.
func (v Value) IsMulti() bool {
	return v.kind == KindMulti
}

// String returns the scalar payload, or "" for other kinds.
func (v Value) String() string {
	return v.scalar
}

// Values returns a copy of the set members in sorted order. Scalars return a
// single element slice unless they are empty.
func (v Value) Values() []string {
	switch v.kind {
	case KindMulti:
		return slices.Clone(v.multi)
	case KindScalar:
		if v.scalar == "" {
			return nil
		}
		return []string{v.scalar}
	default:
		return nil
	}
}

// Len returns the number of set members for multi values, 1 for a non-empty
// scalar and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindMulti:
		return len(v.multi)
	case KindScalar:
		if v.scalar == "" {
			return 0
		}
		return 1
	default:
		return 0
	}
}

// IsEmpty reports whether v counts as unanswered for required-field checks:
// the zero value, an empty string, or an empty set.
func (v Value) IsEmpty() bool {
	return v.Len() == 0
}

// Contains reports whether the set holds s. For scalars it compares equality.
func (v Value) Contains(s string) bool {
	switch v.kind {
	case KindMulti:
		_, found := slices.BinarySearch(v.multi, s)
		return found
	case KindScalar:
		return v.scalar == s
	default:
		return false
	}
}

// Toggle returns a set with option added (checked) or removed (unchecked).
// A non-multi receiver is treated as an empty set.
func (v Value) Toggle(option string, checked bool) Value {
	var members []string
	if v.kind == KindMulti {
		members = v.multi
	}
	if checked {
		return Multi(append(slices.Clone(members), option)...)
	}
	out := make([]string, 0, len(members))
	for _, m := range members {
		if m != option {
			out = append(out, m)
		}
	}
	return Multi(out...)
}

// Text renders v for display: the scalar itself or the set joined by sep.
func (v Value) Text(sep string) string {
	if v.kind == KindMulti {
		return strings.Join(v.multi, sep)
	}
	return v.scalar
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindMulti {
		return slices.Equal(v.multi, other.multi)
	}
	return v.scalar == other.scalar
}

// Interface returns v as plain data: string, []string or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindMulti:
		members := slices.Clone(v.multi)
		if members == nil {
			members = []string{}
		}
		return members
	default:
		return nil
	}
}

// MarshalJSON encodes scalars as strings and sets as string arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts a string, an array of strings, or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ErrUnsupportedValue is returned when loosely typed data cannot be mapped
// onto a Value.
var ErrUnsupportedValue = errors.New("answers: unsupported value")

// FromAny converts loosely typed data (as decoded from JSON or YAML) into a
// Value. Strings become scalars and lists of strings become sets.
func FromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return typed, nil
	case string:
		return Scalar(typed), nil
	case []string:
		return Multi(typed...), nil
	case []any:
		members := make([]string, 0, len(typed))
		for i, item := range typed {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: element %d is %T", ErrUnsupportedValue, i, item)
			}
			members = append(members, s)
		}
		return Multi(members...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
}
