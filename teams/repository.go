package teams

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"apigee-gateway/errors"
)

// Repository is the team persistence contract.
type Repository interface {
	Create(ctx context.Context, payload CreateTeam) (*Team, error)
	Get(ctx context.Context, id string) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, error)
	List(ctx context.Context) ([]*Team, error)
	Update(ctx context.Context, id string, payload UpdateTeam) (*Team, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps teams in a mutex-guarded map.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*Team
	byName map[string]string // lowercased name -> id

	// now is swappable in tests.
	now func() time.Time
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*Team),
		byName: make(map[string]string),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the payload and stores a new team. Names are unique
// case-insensitively.
func (r *InMemoryRepository) Create(ctx context.Context, payload CreateTeam) (*Team, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	nameKey := strings.ToLower(payload.Name)
	if _, exists := r.byName[nameKey]; exists {
		return nil, errors.Conflict("team", payload.Name)
	}

	now := r.now()
	team := &Team{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Description: payload.Description,
		Members:     append([]string(nil), payload.Members...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if team.Members == nil {
		team.Members = []string{}
	}

	r.byID[team.ID] = team
	r.byName[nameKey] = team.ID
	return team.clone(), nil
}

// Get fetches a team by ID.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("team", id)
	}
	return team.clone(), nil
}

// GetByName fetches a team by name, case-insensitively.
func (r *InMemoryRepository) GetByName(ctx context.Context, name string) (*Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, errors.NotFound("team", name)
	}
	return r.byID[id].clone(), nil
}

// List returns all teams sorted by name.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Team, 0, len(r.byID))
	for _, team := range r.byID {
		out = append(out, team.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update applies a partial update and bumps the updated timestamp.
func (r *InMemoryRepository) Update(ctx context.Context, id string, payload UpdateTeam) (*Team, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("team", id)
	}

	if payload.Description != nil {
		team.Description = *payload.Description
	}
	if payload.Members != nil {
		team.Members = append([]string(nil), (*payload.Members)...)
		if team.Members == nil {
			team.Members = []string{}
		}
	}
	team.UpdatedAt = r.now()
	return team.clone(), nil
}

// Delete removes a team.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.byID[id]
	if !ok {
		return errors.NotFound("team", id)
	}
	delete(r.byID, id)
	delete(r.byName, strings.ToLower(team.Name))
	return nil
}
