package teams

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"apigee-gateway/errors"
)

func TestCreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	team, err := repo.Create(ctx, CreateTeam{
		Name:        "platform",
		Description: "platform engineering",
		Members:     []string{"ana@example.com", "lee@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.ID == "" {
		t.Error("expected generated ID")
	}
	if team.CreatedAt.IsZero() || !team.CreatedAt.Equal(team.UpdatedAt) {
		t.Error("expected matching creation timestamps")
	}

	got, err := repo.Get(ctx, team.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "platform" || len(got.Members) != 2 {
		t.Errorf("unexpected team: %+v", got)
	}

	byName, err := repo.GetByName(ctx, "PLATFORM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byName.ID != team.ID {
		t.Error("expected case-insensitive name lookup")
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, CreateTeam{Name: "payments"}); err != nil {
		t.Fatal(err)
	}
	_, err := repo.Create(ctx, CreateTeam{Name: "Payments"})
	if !errors.IsKind(err, errors.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	cases := []struct {
		name    string
		payload CreateTeam
	}{
		{"empty name", CreateTeam{}},
		{"overlong name", CreateTeam{Name: strings.Repeat("a", 101)}},
		{"bad characters", CreateTeam{Name: "team!"}},
		{"overlong description", CreateTeam{Name: "ok", Description: strings.Repeat("d", 501)}},
		{"bad member email", CreateTeam{Name: "ok", Members: []string{"not-an-email"}}},
		{"duplicate members", CreateTeam{Name: "ok", Members: []string{"a@example.com", "a@example.com"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tc.payload)
			if !errors.IsKind(err, errors.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	t.Run("too many members", func(t *testing.T) {
		members := make([]string, 101)
		for i := range members {
			members[i] = fmt.Sprintf("member%d@example.com", i)
		}
		_, err := repo.Create(ctx, CreateTeam{Name: "big", Members: members})
		if !errors.IsKind(err, errors.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestUpdatePartial(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	var tick int64
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	team, err := repo.Create(ctx, CreateTeam{
		Name:        "platform",
		Description: "old",
		Members:     []string{"ana@example.com"},
	})
	if err != nil {
		t.Fatal(err)
	}

	desc := "new description"
	updated, err := repo.Update(ctx, team.ID, UpdateTeam{Description: &desc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Description != "new description" {
		t.Errorf("unexpected description: %q", updated.Description)
	}
	if len(updated.Members) != 1 {
		t.Error("members must be untouched by a description-only update")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("expected updated_at to advance")
	}

	members := []string{"lee@example.com", "kim@example.com"}
	updated, err = repo.Update(ctx, team.ID, UpdateTeam{Members: &members})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Members) != 2 {
		t.Errorf("expected replaced members, got %v", updated.Members)
	}
	if updated.Description != "new description" {
		t.Error("description must be untouched by a members-only update")
	}
}

func TestUpdateValidatesPayload(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	team, err := repo.Create(ctx, CreateTeam{Name: "platform"})
	if err != nil {
		t.Fatal(err)
	}

	bad := []string{"nope"}
	_, err = repo.Update(ctx, team.ID, UpdateTeam{Members: &bad})
	if !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateAndDeleteMissingTeam(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Update(ctx, "missing", UpdateTeam{}); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteFreesName(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	team, err := repo.Create(ctx, CreateTeam{Name: "platform"})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, team.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(ctx, team.ID); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := repo.Create(ctx, CreateTeam{Name: "platform"}); err != nil {
		t.Errorf("name must be reusable after delete, got %v", err)
	}
}

func TestListSortedByName(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := repo.Create(ctx, CreateTeam{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	teams, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(teams))
	}
	if teams[0].Name != "alpha" || teams[2].Name != "zeta" {
		t.Errorf("expected sorted order, got %v %v %v", teams[0].Name, teams[1].Name, teams[2].Name)
	}
}

func TestReturnedTeamsAreCopies(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	team, err := repo.Create(ctx, CreateTeam{Name: "platform", Members: []string{"ana@example.com"}})
	if err != nil {
		t.Fatal(err)
	}
	team.Members[0] = "mutated@example.com"
	team.Name = "mutated"

	got, err := repo.Get(ctx, team.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Members[0] != "ana@example.com" || got.Name != "platform" {
		t.Error("repository state must not alias returned values")
	}
}

func TestConcurrentCreates(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	var conflicts int64
	var mu sync.Mutex

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, CreateTeam{Name: "shared-name"})
			if errors.IsKind(err, errors.KindConflict) {
				mu.Lock()
				conflicts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if conflicts != 19 {
		t.Errorf("expected exactly one create to win, got %d conflicts", conflicts)
	}
}
