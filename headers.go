package headers

import (
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Headers is a case-insensitive, multi-valued HTTP header store.
//
// The names are case insensitive and will be normalized by the
// `strings.ToLower()`. The original casing of a name is never retained. A name
// is present if and only if it has at least one value, and the values of a
// name keep their insertion order.
//
// The zero value is an empty `Headers` ready to use. A `Headers` is not safe
// for concurrent use.
type Headers struct {
	m map[string][]string
}

// New returns a new instance of the `Headers` seeded from the initial.
//
// A string value (or a `SingleValue`) is set. A non-empty slice or array value
// (`[]string`, `MultiValue`, `[]interface{}` and so on) is appended item by
// item, items that are not strings are weakly converted into strings. Any
// other value, including an empty slice, is skipped and a warning is logged.
//
// The names of the initial are processed in sorted order.
func New(initial map[string]interface{}) *Headers {
	h := &Headers{}
	for _, name := range sortedKeys(initial) {
		if err := h.seed(name, initial[name]); err != nil {
			WARN(
				"headers: skipped malformed initial value",
				map[string]interface{}{
					"name":  name,
					"error": err.Error(),
				},
			)
		}
	}

	return h
}

// NewStrict is like the `New`, but it returns a `*MalformedValueError` for the
// first (in sorted order) value of the initial that cannot be seeded.
func NewStrict(initial map[string]interface{}) (*Headers, error) {
	h := &Headers{}
	for _, name := range sortedKeys(initial) {
		if err := h.seed(name, initial[name]); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Of returns a new instance of the `Headers` seeded from the initial. Empty
// `MultiValue`s and nil `Value`s are skipped.
func Of(initial map[string]Value) *Headers {
	h := &Headers{}

	names := make([]string, 0, len(initial))
	for name := range initial {
		names = append(names, name)
	}

	sort.Strings(names)
	for _, name := range names {
		if v := initial[name]; v != nil {
			v.seed(h, name)
		}
	}

	return h
}

// seed seeds the v into the h under the name.
func (h *Headers) seed(name string, v interface{}) error {
	switch v := v.(type) {
	case string:
		h.Set(name, v)
		return nil
	case SingleValue:
		h.Set(name, string(v))
		return nil
	case MultiValue:
		if len(v) > 0 {
			v.seed(h, name)
			return nil
		}
	case []string:
		if len(v) > 0 {
			MultiValue(v).seed(h, name)
			return nil
		}
	default:
		rv := reflect.ValueOf(v)
		if k := rv.Kind(); (k == reflect.Slice || k == reflect.Array) &&
			rv.Len() > 0 {
			var vs []string
			if err := mapstructure.WeakDecode(v, &vs); err == nil {
				MultiValue(vs).seed(h, name)
				return nil
			}
		}
	}

	return &MalformedValueError{
		Name:  name,
		Value: v,
	}
}

// Get returns the first value associated with the name. The bool reports
// whether the name is present.
func (h *Headers) Get(name string) (string, bool) {
	if vs := h.m[normalize(name)]; len(vs) > 0 {
		return vs[0], true
	}

	return "", false
}

// First returns the first value associated with the name. It returns "" if the
// name is not present.
func (h *Headers) First(name string) string {
	v, _ := h.Get(name)
	return v
}

// GetAll returns a copy of all values associated with the name. It returns an
// empty slice if the name is not present.
func (h *Headers) GetAll(name string) []string {
	vs := h.m[normalize(name)]
	return append(make([]string, 0, len(vs)), vs...)
}

// Set replaces all values associated with the name with the value.
func (h *Headers) Set(name, value string) {
	if h.m == nil {
		h.m = map[string][]string{}
	}

	h.m[normalize(name)] = []string{value}
}

// Append appends the value to the values associated with the name. It behaves
// like the `Set` if the name is not present.
func (h *Headers) Append(name, value string) {
	if h.m == nil {
		h.m = map[string][]string{}
	}

	n := normalize(name)
	h.m[n] = append(h.m[n], value)
}

// Has reports whether the name is present.
func (h *Headers) Has(name string) bool {
	_, ok := h.m[normalize(name)]
	return ok
}

// Delete deletes all values associated with the name. It is a no-op if the
// name is not present.
func (h *Headers) Delete(name string) {
	delete(h.m, normalize(name))
}

// Raw returns a deep copy of the normalized name to values map of the h.
// Mutating the result never affects the h.
func (h *Headers) Raw() map[string][]string {
	raw := make(map[string][]string, len(h.m))
	for n, vs := range h.m {
		raw[n] = append(make([]string, 0, len(vs)), vs...)
	}

	return raw
}

// Len returns the number of names present in the h.
func (h *Headers) Len() int {
	return len(h.m)
}

// Names returns the sorted normalized names present in the h.
func (h *Headers) Names() []string {
	return sortedNames(h.m)
}

// Clone returns a deep copy of the h.
func (h *Headers) Clone() *Headers {
	return &Headers{
		m: h.Raw(),
	}
}

// Merge appends every value of the other to the h, name by name, keeping the
// order of the values. A nil other is a no-op.
func (h *Headers) Merge(other *Headers) {
	if other == nil {
		return
	}

	for _, n := range other.Names() {
		for _, v := range other.m[n] {
			h.Append(n, v)
		}
	}
}

// reset removes all names from the h.
func (h *Headers) reset() {
	h.m = nil
}

// normalize returns the normalized form of the name.
func normalize(name string) string {
	return strings.ToLower(name)
}

// sortedKeys returns the sorted keys of the m.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// sortedNames returns the sorted keys of the m.
func sortedNames(m map[string][]string) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}
