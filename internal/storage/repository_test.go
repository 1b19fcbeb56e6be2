package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"stunden/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "stunden.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestInsertListRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Insert(ctx, core.NewDate(2025, 8, 4), "standup", 0.5)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id2, err := repo.Insert(ctx, core.NewDate(2025, 8, 6), "review", 2)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id1 == id2 || id1 == 0 || id2 == 0 {
		t.Fatalf("ids must be fresh and unique, got %d and %d", id1, id2)
	}

	entries, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Ordered by date descending.
	if entries[0].ID != id2 || entries[1].ID != id1 {
		t.Fatalf("unexpected order: %+v", entries)
	}
	got := entries[1]
	if got.Description != "standup" || got.Hours != 0.5 || got.Date.String() != "2025-08-04" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestListAllEmpty(t *testing.T) {
	repo := newTestRepo(t)
	entries, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list, got %+v", entries)
	}
}

func TestUpdateMissingIDReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.Update(context.Background(), core.Entry{
		ID: 99, Date: core.NewDate(2025, 8, 4), Description: "x", Hours: 1,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissingIDIsNoop(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Delete(context.Background(), 99); err != nil {
		t.Fatalf("delete of absent id must be a no-op, got %v", err)
	}
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, core.NewDate(2025, 8, 4), "standup", 0.5)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	updated := core.Entry{ID: id, Date: core.NewDate(2025, 8, 5), Description: "retro", Hours: 1.25}
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	entries, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || !entries[0].Equal(updated) || entries[0].ID != id {
		t.Fatalf("update not applied: %+v", entries)
	}
}

func TestApplyDiff(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, _ := repo.Insert(ctx, core.NewDate(2025, 8, 4), "standup", 0.5)
	id2, _ := repo.Insert(ctx, core.NewDate(2025, 8, 5), "review", 2)

	diff := core.Diff{
		Updates: []core.Entry{{ID: id1, Date: core.NewDate(2025, 8, 4), Description: "standup", Hours: 1.5}},
		Inserts: []core.Entry{{Date: core.NewDate(2025, 8, 6), Description: "pairing", Hours: 3}},
		Deletes: []int64{id2},
	}
	if err := repo.ApplyDiff(ctx, diff); err != nil {
		t.Fatalf("apply diff: %v", err)
	}

	entries, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after diff, got %+v", entries)
	}
	for _, e := range entries {
		if e.ID == id2 {
			t.Fatalf("deleted entry still present: %+v", e)
		}
		if e.ID == id1 && e.Hours != 1.5 {
			t.Fatalf("update not applied: %+v", e)
		}
	}
}

func TestApplyDiffRollsBackOnFailure(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, _ := repo.Insert(ctx, core.NewDate(2025, 8, 4), "standup", 0.5)

	// The missing-id update fails after the insert would have run; the
	// whole batch must roll back.
	diff := core.Diff{
		Updates: []core.Entry{
			{ID: id, Date: core.NewDate(2025, 8, 4), Description: "standup", Hours: 2},
			{ID: 999, Date: core.NewDate(2025, 8, 5), Description: "ghost", Hours: 1},
		},
		Inserts: []core.Entry{{Date: core.NewDate(2025, 8, 6), Description: "pairing", Hours: 3}},
	}
	if err := repo.ApplyDiff(ctx, diff); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	entries, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Hours != 0.5 {
		t.Fatalf("partial application leaked: %+v", entries)
	}
}
