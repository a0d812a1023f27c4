package errors

import "testing"

func TestRedactDetails_SensitiveKeys(t *testing.T) {
	details := map[string]any{
		"token":       "abc",
		"Password":    "hunter2",
		"api_key":     "k-1",
		"ApiKey":      "k-2",
		"bearer":      "b",
		"credentials": "c",
		"auth_header": "h",
		"safe":        "visible",
	}

	out := RedactDetails(details)
	for key := range details {
		if key == "safe" {
			continue
		}
		if out[key] != RedactedPlaceholder {
			t.Errorf("%s: expected redaction, got %v", key, out[key])
		}
	}
	if out["safe"] != "visible" {
		t.Errorf("safe field altered: %v", out["safe"])
	}
}

func TestRedactDetails_Nested(t *testing.T) {
	details := map[string]any{
		"request": map[string]any{
			"url":           "https://apigee.googleapis.com/v1/organizations",
			"authorization": "Bearer xyz",
		},
		"attempts": []any{
			map[string]any{"secret": "s1", "attempt": 1},
			"plain",
		},
	}

	out := RedactDetails(details)
	nested := out["request"].(map[string]any)
	if nested["authorization"] != RedactedPlaceholder {
		t.Errorf("nested authorization not redacted: %v", nested["authorization"])
	}
	if nested["url"] == RedactedPlaceholder {
		t.Error("url should not be redacted")
	}

	list := out["attempts"].([]any)
	item := list[0].(map[string]any)
	if item["secret"] != RedactedPlaceholder {
		t.Errorf("list item secret not redacted: %v", item["secret"])
	}
	if list[1] != "plain" {
		t.Errorf("scalar list item altered: %v", list[1])
	}
}

func TestRedactDetails_NilAndEmpty(t *testing.T) {
	if RedactDetails(nil) != nil {
		t.Error("nil input should return nil")
	}
	out := RedactDetails(map[string]any{})
	if len(out) != 0 {
		t.Errorf("expected empty map, got %v", out)
	}
}

func TestRedactDetails_DoesNotMutateInput(t *testing.T) {
	details := map[string]any{"token": "abc"}
	_ = RedactDetails(details)
	if details["token"] != "abc" {
		t.Error("input map was mutated")
	}
}
