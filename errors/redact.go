package errors

import "strings"

// RedactedPlaceholder replaces the value of any sensitive detail field.
const RedactedPlaceholder = "***REDACTED***"

// sensitiveFieldPatterns are matched as substrings of lowercased detail keys.
var sensitiveFieldPatterns = []string{
	"token",
	"password",
	"secret",
	"key",
	"credential",
	"auth",
	"bearer",
	"api_key",
	"apikey",
}

// RedactDetails returns a copy of details with every sensitive field replaced
// by RedactedPlaceholder. Nested maps and lists are redacted recursively; the
// input is never mutated. This is a hard contract: errors must pass through
// here before they are serialized or logged.
func RedactDetails(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	redacted := make(map[string]any, len(details))
	for key, value := range details {
		if isSensitiveKey(key) {
			redacted[key] = RedactedPlaceholder
			continue
		}
		redacted[key] = redactValue(value)
	}
	return redacted
}

func redactValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return RedactDetails(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactValue(item)
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveFieldPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
