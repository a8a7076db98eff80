package ocr

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FieldMap is the flat key/value section of an analyze result. The engine is
// not consistent about casing (vendorName vs VendorName vs vendor_name), so
// keys are folded into a canonical form once at decode time instead of
// repeating fallback chains at every lookup site.
type FieldMap struct {
	values map[string]string
}

// CanonicalKey lowercases a field name and drops underscores and hyphens, so
// vendorName, VendorName and vendor_name all map to "vendorname".
func CanonicalKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(toLower(r))
	}
	return b.String()
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// UnmarshalJSON folds keys and coerces scalar values to strings. Nested
// objects and arrays are dropped; the engine's field section is flat by
// contract and anything else is noise.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.values = make(map[string]string, len(raw))
	for k, v := range raw {
		key := CanonicalKey(k)
		if key == "" {
			continue
		}
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s != "" {
				m.values[key] = s
			}
		case float64:
			m.values[key] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			m.values[key] = strconv.FormatBool(t)
		}
	}
	return nil
}

// NewFieldMap builds a FieldMap from already-stringified values; test helper
// and programmatic entry point.
func NewFieldMap(values map[string]string) FieldMap {
	m := FieldMap{values: make(map[string]string, len(values))}
	for k, v := range values {
		s := strings.TrimSpace(v)
		if s == "" {
			continue
		}
		m.values[CanonicalKey(k)] = s
	}
	return m
}

// Get returns the value for a field name in any casing, "" when absent.
func (m FieldMap) Get(name string) string {
	if m.values == nil {
		return ""
	}
	return m.values[CanonicalKey(name)]
}

// First returns the first non-empty value among the given field names.
func (m FieldMap) First(names ...string) string {
	for _, n := range names {
		if v := m.Get(n); v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether the field is present with a non-empty value.
func (m FieldMap) Has(name string) bool {
	return m.Get(name) != ""
}

// Len returns the number of decoded fields.
func (m FieldMap) Len() int {
	return len(m.values)
}
