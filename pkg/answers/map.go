package answers

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-pmsform/pkg/catalog"
)

// Map holds answers keyed by question id. A missing key means unanswered.
type Map map[string]Value

// Get returns the value stored for id.
func (m Map) Get(id string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m[id]
	return v, ok
}

// Set stores value under id. Keys are only ever overwritten, never removed.
func (m Map) Set(id string, value Value) {
	m[id] = value
}

// Clone returns an independent copy of the map.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for id, v := range m {
		if v.IsMulti() {
			out[id] = Multi(v.multi...)
			continue
		}
		out[id] = v
	}
	return out
}

// Keys returns the answered question ids in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both maps hold the same keys and values.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for id, v := range m {
		o, ok := other[id]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}

// Plain converts the map to plain data (string / []string values).
func (m Map) Plain() map[string]any {
	out := make(map[string]any, len(m))
	for id, v := range m {
		out[id] = v.Interface()
	}
	return out
}

// UnmarshalJSON decodes an object of strings and string arrays without any
// catalog checks. Use Decode when the catalog is available.
func (m *Map) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Map, len(raw))
	for id, v := range raw {
		if v.Kind() == KindNone {
			continue
		}
		out[id] = v
	}
	*m = out
	return nil
}

var (
	// ErrUnknownQuestion is wrapped when an answer references an id that the
	// catalog does not define.
	ErrUnknownQuestion = errors.New("answers: unknown question")
	// ErrKindMismatch is wrapped when a value shape does not match the
	// question type.
	ErrKindMismatch = errors.New("answers: value does not match question type")
)

// Decode builds an answer map from loosely typed data, checking every key
// against the catalog and every value shape against the declared question
// type. Only shapes are checked; option membership and content are not.
func Decode(cat catalog.Catalog, raw map[string]any) (Map, error) {
	out := make(Map, len(raw))
	var errs []error
	for _, id := range sortedKeys(raw) {
		q, ok := cat.Question(id)
		if !ok {
			errs = append(errs, fmt.Errorf("%w %q", ErrUnknownQuestion, id))
			continue
		}
		v, err := FromAny(raw[id])
		if err != nil {
			errs = append(errs, fmt.Errorf("answers: question %q: %w", id, err))
			continue
		}
		if v.Kind() == KindNone {
			continue
		}
		if err := CheckKind(q, v); err != nil {
			errs = append(errs, err)
			continue
		}
		out[id] = v
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeJSON is Decode for a JSON object payload.
func DecodeJSON(cat catalog.Catalog, data []byte) (Map, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("answers: decode json: %w", err)
	}
	return Decode(cat, raw)
}

// CheckKind verifies that v has the shape expected by q's type.
func CheckKind(q catalog.Question, v Value) error {
	want := KindScalar
	if q.Type.IsMulti() {
		want = KindMulti
	}
	if v.Kind() != want {
		return fmt.Errorf("%w: question %q (%s) expects %s, got %s", ErrKindMismatch, q.ID, q.Type, want, v.Kind())
	}
	return nil
}

func sortedKeys(raw map[string]any) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
