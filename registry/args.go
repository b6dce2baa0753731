package registry

import "fmt"

// Args carries the declarative arguments a manifest passes to a child
// factory. Getters coerce loosely, since HCL numbers decode as either
// int or float64 depending on the literal.
type Args map[string]any

// Has reports whether the argument was provided at all.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns the argument as a string, or def when absent.
func (a Args) String(key, def string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return def
}

// Int returns the argument as an int, or def when absent.
func (a Args) Int(key string, def int) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Float returns the argument as a float64, or def when absent.
func (a Args) Float(key string, def float64) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// Bool returns the argument as a bool, or def when absent.
func (a Args) Bool(key string, def bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return def
}

// Strings returns the argument as a string slice, or nil when absent.
func (a Args) Strings(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	}
	return nil
}
