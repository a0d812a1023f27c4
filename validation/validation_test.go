package validation

import (
	"strings"
	"testing"

	"apigee-gateway/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New().Required("name", "")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Kind != errors.KindValidation {
		t.Errorf("expected validation kind, got %s", appErr.Kind)
	}
	if !strings.Contains(appErr.Message, "name: is required") {
		t.Errorf("unexpected message: %q", appErr.Message)
	}

	if New().Required("name", "payments").Validate() != nil {
		t.Error("expected no error for non-empty value")
	}
	if New().Required("name", "   ").Validate() == nil {
		t.Error("expected error for whitespace-only value")
	}
}

func TestValidatorLengths(t *testing.T) {
	if New().MaxLength("description", strings.Repeat("x", 501), 500).Validate() == nil {
		t.Error("expected error for overlong value")
	}
	if New().MaxLength("description", "short", 500).Validate() != nil {
		t.Error("unexpected error for short value")
	}
	if New().MinLength("name", "", 1).Validate() == nil {
		t.Error("expected error for empty value")
	}
}

func TestValidatorEmail(t *testing.T) {
	if New().Email("member", "not-an-email").Validate() == nil {
		t.Error("expected error for malformed email")
	}
	if New().Email("member", "dev@example.com").Validate() != nil {
		t.Error("unexpected error for valid email")
	}
	// Empty is skipped; pair with Required when mandatory.
	if New().Email("member", "").Validate() != nil {
		t.Error("unexpected error for empty email")
	}
}

func TestValidatorPattern(t *testing.T) {
	const namePattern = `^[a-zA-Z0-9 _-]+$`
	if New().Pattern("name", "team one_2-ok", namePattern).Validate() != nil {
		t.Error("unexpected error for valid name")
	}
	if New().Pattern("name", "team!", namePattern).Validate() == nil {
		t.Error("expected error for invalid character")
	}
}

func TestValidatorCollectsMultiple(t *testing.T) {
	v := New().
		Required("name", "").
		MaxLength("description", strings.Repeat("y", 600), 500).
		Max("members", 150, 100)
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if len(v.Errors()) != 3 {
		t.Errorf("expected 3 field errors, got %d", len(v.Errors()))
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected fields detail, got %T", appErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("expected 3 field details, got %d", len(fields))
	}
}

func TestValidatorOneOf(t *testing.T) {
	if New().OneOf("action", "deploy", []string{"deploy", "undeploy"}).Validate() != nil {
		t.Error("unexpected error for allowed value")
	}
	if New().OneOf("action", "destroy", []string{"deploy", "undeploy"}).Validate() == nil {
		t.Error("expected error for disallowed value")
	}
}

func TestStructValidate(t *testing.T) {
	type createTeam struct {
		Name        string   `json:"name" validate:"required,min=1,max=100"`
		Description string   `json:"description" validate:"max=500"`
		Members     []string `json:"members" validate:"max=100,dive,email"`
	}

	err := Validate(createTeam{Name: "platform", Members: []string{"a@example.com"}})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err = Validate(createTeam{Members: []string{"bogus"}})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := errors.As(err)
	if !ok {
		t.Fatalf("expected classified error, got %T", err)
	}
	if appErr.Kind != errors.KindValidation {
		t.Errorf("expected validation kind, got %s", appErr.Kind)
	}
	if !strings.Contains(appErr.Message, "name: is required") {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Name":        "name",
		"DisplayName": "display_name",
		"BaseURL":     "base_u_r_l",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
