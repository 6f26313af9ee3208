package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Review is one record of query output. Data records carry a "number" field,
// the trailing stats record carries "rowCount". Nested values keep the shape
// the JSON decoder produced: map[string]any, []any, json.Number, string, bool.
type Review map[string]any

// IsChange reports whether r is a data record.
func (r Review) IsChange() bool {
	return r["number"] != nil
}

// IsStats reports whether r is the row count record that terminates a
// query response.
func (r Review) IsStats() bool {
	return r["rowCount"] != nil
}

// Has reports whether key is present with a non-null value.
func (r Review) Has(key string) bool {
	return r[key] != nil
}

// Int returns the field as an integer. Numeric strings are accepted since
// older servers quote every value.
func (r Review) Int(key string) (int64, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	n, err := ToInt(v)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	return n, nil
}

// String returns the field rendered as a string.
func (r Review) String(key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return ToString(v), nil
}

// Object returns a nested object field.
func (r Review) Object(key string) (map[string]any, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, not an object", ErrMissingField, key, v)
	}
	return obj, nil
}

// LastPatchSet returns the most recent entry of the patchSets list.
func (r Review) LastPatchSet() (map[string]any, error) {
	v, ok := r["patchSets"]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: patchSets", ErrMissingField)
	}
	sets, ok := v.([]any)
	if !ok || len(sets) == 0 {
		return nil, fmt.Errorf("%w: patchSets is empty", ErrMissingField)
	}
	last, ok := sets[len(sets)-1].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: patchSets entry is %T", ErrMissingField, sets[len(sets)-1])
	}
	return last, nil
}

// ToInt converts a decoded JSON scalar to an integer.
func ToInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", n.String())
		}
		return int64(f), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", n)
		}
		return i, nil
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("not an integer: %v (%T)", v, v)
	}
}

// ToString renders a decoded JSON scalar as text.
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
