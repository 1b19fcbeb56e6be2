package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"stunden/internal/core"
	"stunden/internal/storage"
)

func newTestService(t *testing.T, quota float64) (*EntryService, *storage.MemoryRepository) {
	t.Helper()
	store := storage.NewMemoryRepository()
	svc := NewEntryService(store, quota)
	svc.now = func() time.Time { return time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestLoadDashboardEmpty(t *testing.T) {
	svc, _ := newTestService(t, 25)

	d, err := svc.LoadDashboard(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.HasData() {
		t.Fatalf("expected no data")
	}
	if d.Usage.Used != 0 || d.Usage.Remaining != 25 {
		t.Fatalf("unexpected usage: %+v", d.Usage)
	}
	if len(d.Weekly) != 0 {
		t.Fatalf("empty store must yield empty weekly series, got %+v", d.Weekly)
	}
}

func TestAddEntryRefreshesDashboard(t *testing.T) {
	svc, _ := newTestService(t, 25)
	ctx := context.Background()

	d, err := svc.AddEntry(ctx, core.NewDate(2025, 8, 19), "review", 30)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !d.HasData() || len(d.Entries) != 1 {
		t.Fatalf("dashboard not refreshed: %+v", d)
	}
	// Over-quota: remaining clamps, percent does not.
	if d.Usage.Remaining != 0 {
		t.Fatalf("remaining=%v want 0", d.Usage.Remaining)
	}
	if d.Usage.PercentUsed != 120 {
		t.Fatalf("percent=%v want 120", d.Usage.PercentUsed)
	}
	// Entry week (Mon 2025-08-18) through now's week (Mon 2025-08-25).
	if len(d.Weekly) != 2 {
		t.Fatalf("expected 2 weekly buckets, got %+v", d.Weekly)
	}
}

func TestAddEntryRejectsInvalidInput(t *testing.T) {
	svc, store := newTestService(t, 25)
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx, core.Date{}, "x", 1); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := svc.AddEntry(ctx, core.NewDate(2025, 8, 19), "x", -1); !errors.Is(err, core.ErrInvalidHours) {
		t.Fatalf("expected ErrInvalidHours, got %v", err)
	}

	entries, _ := store.ListAll(ctx)
	if len(entries) != 0 {
		t.Fatalf("invalid input must not reach storage, got %+v", entries)
	}
}

func TestSaveBatchAppliesDiff(t *testing.T) {
	svc, store := newTestService(t, 25)
	ctx := context.Background()

	id1, _ := store.Insert(ctx, core.NewDate(2025, 8, 18), "standup", 0.5)
	id2, _ := store.Insert(ctx, core.NewDate(2025, 8, 19), "review", 2)

	candidate := []core.Entry{
		{ID: id1, Date: core.NewDate(2025, 8, 18), Description: "standup", Hours: 1.5},
		{Date: core.NewDate(2025, 8, 20), Description: "pairing", Hours: 3},
		// id2 dropped -> deletion
	}

	d, err := svc.SaveBatch(ctx, candidate)
	if err != nil {
		t.Fatalf("save batch: %v", err)
	}
	if len(d.Entries) != 2 {
		t.Fatalf("expected 2 entries after batch, got %+v", d.Entries)
	}
	for _, e := range d.Entries {
		if e.ID == id2 {
			t.Fatalf("deleted entry survived: %+v", e)
		}
		if e.ID == id1 && e.Hours != 1.5 {
			t.Fatalf("update not applied: %+v", e)
		}
	}
	if d.Usage.Used != 4.5 {
		t.Fatalf("used=%v want 4.5", d.Usage.Used)
	}
}

func TestSaveBatchNoChanges(t *testing.T) {
	svc, store := newTestService(t, 25)
	ctx := context.Background()

	id, _ := store.Insert(ctx, core.NewDate(2025, 8, 19), "review", 2)

	d, err := svc.SaveBatch(ctx, []core.Entry{
		{ID: id, Date: core.NewDate(2025, 8, 19), Description: "review", Hours: 2},
	})
	if err != nil {
		t.Fatalf("save batch: %v", err)
	}
	if len(d.Entries) != 1 || d.Entries[0].ID != id {
		t.Fatalf("no-op batch changed the table: %+v", d.Entries)
	}
}

func TestSaveBatchValidatesRows(t *testing.T) {
	svc, _ := newTestService(t, 25)

	_, err := svc.SaveBatch(context.Background(), []core.Entry{
		{Date: core.NewDate(2025, 8, 19), Description: "ok", Hours: -2},
	})
	if !errors.Is(err, core.ErrInvalidHours) {
		t.Fatalf("expected ErrInvalidHours, got %v", err)
	}
}
