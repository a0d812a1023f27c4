package teams

import (
	"time"

	"apigee-gateway/validation"
)

// namePattern restricts team names to letters, digits, spaces,
// underscores, and hyphens.
const namePattern = `^[a-zA-Z0-9 _-]+$`

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
	maxMembers           = 100
)

// Team is a group of API consumers managed by the gateway.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTeam is the payload for creating a team.
type CreateTeam struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members,omitempty"`
}

// UpdateTeam is the payload for a partial team update. Nil fields keep
// their current values; a non-nil Members replaces the whole list.
type UpdateTeam struct {
	Description *string   `json:"description,omitempty"`
	Members     *[]string `json:"members,omitempty"`
}

// Validate checks the creation payload.
func (c CreateTeam) Validate() error {
	v := validation.New().
		Required("name", c.Name).
		MaxLength("name", c.Name, maxNameLength).
		Pattern("name", c.Name, namePattern).
		MaxLength("description", c.Description, maxDescriptionLength).
		Max("members", len(c.Members), maxMembers)
	validateMembers(v, c.Members)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Validate checks the update payload.
func (u UpdateTeam) Validate() error {
	v := validation.New()
	if u.Description != nil {
		v.MaxLength("description", *u.Description, maxDescriptionLength)
	}
	if u.Members != nil {
		v.Max("members", len(*u.Members), maxMembers)
		validateMembers(v, *u.Members)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func validateMembers(v *validation.Validator, members []string) {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		v.Required("members", m).Email("members", m)
		if seen[m] {
			v.AddError("members", "duplicate member: "+m)
		}
		seen[m] = true
	}
}

// clone returns a deep copy so callers cannot mutate stored state.
func (t *Team) clone() *Team {
	cp := *t
	cp.Members = append([]string(nil), t.Members...)
	return &cp
}
