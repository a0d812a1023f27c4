package tools

import (
	"fmt"

	"apigee-gateway/errors"
)

// Arguments is the raw argument map of a tool call.
type Arguments map[string]any

// String returns a required string argument.
func (a Arguments) String(key string) (string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return "", errors.MissingParameter(key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.InvalidParameter(key, fmt.Sprintf("expected string, got %T", raw))
	}
	if s == "" {
		return "", errors.MissingParameter(key)
	}
	return s, nil
}

// OptionalString returns a string argument or the fallback when absent.
func (a Arguments) OptionalString(key, fallback string) (string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.InvalidParameter(key, fmt.Sprintf("expected string, got %T", raw))
	}
	if s == "" {
		return fallback, nil
	}
	return s, nil
}

// Bool returns a boolean argument, false when absent. JSON numbers are
// not coerced; only true booleans are accepted.
func (a Arguments) Bool(key string) (bool, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, errors.InvalidParameter(key, fmt.Sprintf("expected boolean, got %T", raw))
	}
	return b, nil
}

// Int returns an integer argument or the fallback when absent. JSON
// decoding yields float64 for numbers, so both forms are accepted.
func (a Arguments) Int(key string, fallback int) (int, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.InvalidParameter(key, fmt.Sprintf("expected integer, got %T", raw))
	}
}

// StringSlice returns a list-of-strings argument, nil when absent.
func (a Arguments) StringSlice(key string) ([]string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.InvalidParameter(key, fmt.Sprintf("expected list of strings, found %T element", item))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.InvalidParameter(key, fmt.Sprintf("expected list of strings, got %T", raw))
	}
}
