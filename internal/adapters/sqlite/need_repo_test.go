package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/vocare/internal/adapters/sqlite"
	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/ports/secondary"
)

func TestNeedRepository_ListOpenNeeds(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewNeedRepository(database)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedNeed(t, database, "n1", "Dining Hall", base)
	seedNeed(t, database, "n2", "Library", base.Add(time.Minute))
	seedNeed(t, database, "n3", "Garden", base.Add(2*time.Minute))
	if err := repo.UpdateStatus(ctx, "n3", need.StatusFilled); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if _, err := database.Exec("UPDATE hunger_feed SET active = 0 WHERE id = 'n1'"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListOpenNeeds(ctx)
	if err != nil {
		t.Fatalf("ListOpenNeeds() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "n2" || got[0].Location != "Library" {
		t.Errorf("ListOpenNeeds() = %+v, want only n2", got)
	}
}

func TestNeedRepository_ListOpenNeedsEmpty(t *testing.T) {
	repo := sqlite.NewNeedRepository(setupTestDB(t))

	got, err := repo.ListOpenNeeds(context.Background())
	if err != nil {
		t.Fatalf("ListOpenNeeds() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListOpenNeeds() = %v, want empty non-nil slice", got)
	}
}

func TestNeedRepository_CreateAndAcceptances(t *testing.T) {
	repo := sqlite.NewNeedRepository(setupTestDB(t))
	ctx := context.Background()
	two := 2

	n := &need.BoardNeed{
		Need:               need.Need{ID: "n1", Description: "Sort donations", Location: "Campus Ministry", Category: need.CategoryService},
		CreatorID:          "creator",
		CreatorDisplayName: "Sam",
		PeopleNeeded:       &two,
		Status:             need.StatusOpen,
		CreatedAt:          time.Now().UTC(),
	}
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.AddAcceptance(ctx, "n1", "user-1", time.Now()); err != nil {
		t.Fatalf("AddAcceptance() error = %v", err)
	}
	if err := repo.AddAcceptance(ctx, "n1", "user-2", time.Now()); err != nil {
		t.Fatalf("AddAcceptance() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "n1", "user-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.AcceptanceCount != 2 || !got.CurrentUserAccepted {
		t.Errorf("GetByID() = %+v, want 2 acceptances incl. viewer", got)
	}
	if got.PeopleNeeded == nil || *got.PeopleNeeded != 2 || got.CreatorDisplayName != "Sam" {
		t.Errorf("GetByID() metadata = %+v", got)
	}

	if err := repo.RemoveAcceptance(ctx, "n1", "user-1"); err != nil {
		t.Fatalf("RemoveAcceptance() error = %v", err)
	}
	if err := repo.RemoveAcceptance(ctx, "n1", "user-1"); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("second RemoveAcceptance() error = %v, want ErrNotFound", err)
	}

	got, _ = repo.GetByID(ctx, "n1", "user-1")
	if got.AcceptanceCount != 1 || got.CurrentUserAccepted {
		t.Errorf("after withdraw = %+v", got)
	}
}

func TestNeedRepository_GetByIDMissing(t *testing.T) {
	repo := sqlite.NewNeedRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing", "user-1")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestNeedRepository_ListFilters(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewNeedRepository(database)
	ctx := context.Background()
	base := time.Now().UTC()

	seedNeed(t, database, "n1", "A", base)
	seedNeed(t, database, "n2", "B", base.Add(time.Minute))
	if _, err := database.Exec("UPDATE hunger_feed SET category = 'support' WHERE id = 'n2'"); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateStatus(ctx, "n1", need.StatusFilled); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		filters secondary.NeedFilters
		want    []string
	}{
		{"all", secondary.NeedFilters{}, []string{"n2", "n1"}},
		{"open", secondary.NeedFilters{Status: need.StatusOpen}, []string{"n2"}},
		{"service", secondary.NeedFilters{Category: need.CategoryService}, []string{"n1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, "user-1", tt.filters)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d needs, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("List()[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestNeedRepository_UpdateStatusMissing(t *testing.T) {
	repo := sqlite.NewNeedRepository(setupTestDB(t))

	err := repo.UpdateStatus(context.Background(), "missing", need.StatusFilled)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("UpdateStatus() error = %v, want ErrNotFound", err)
	}
}
