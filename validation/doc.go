// Package validation provides input validation for gateway handlers.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures
// as classified validation errors with per-field details.
//
// # Struct Tag Validation
//
//	type CreateTeamCmd struct {
//	    Name string `json:"name" validate:"required,min=1,max=100"`
//	}
//	err := validation.Validate(cmd)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name).MaxLength("description", desc, 500)
//	if err := v.Validate(); err != nil { ... }
package validation
