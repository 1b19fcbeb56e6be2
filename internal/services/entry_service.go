package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stunden/internal/core"
)

// EntryStore is the storage port the service drives. Both the SQLite
// and the in-memory repository satisfy it.
type EntryStore interface {
	Insert(ctx context.Context, date core.Date, description string, hours float64) (int64, error)
	ListAll(ctx context.Context) ([]core.Entry, error)
	Update(ctx context.Context, e core.Entry) error
	Delete(ctx context.Context, id int64) error
	ApplyDiff(ctx context.Context, diff core.Diff) error
}

// Dashboard is the view model one interaction produces: metrics, the
// chart series and the full entry list, recomputed from storage.
type Dashboard struct {
	Usage   core.Usage
	Donut   []core.Slice
	Weekly  []core.WeeklyBucket
	Entries []core.Entry
}

// HasData reports whether any entries exist; without data the weekly
// chart is replaced by an informational empty state.
func (d Dashboard) HasData() bool {
	return len(d.Entries) > 0
}

// EntryService exposes the dashboard commands: load, add an entry,
// save a batch edit. Each command reloads and recomputes in full.
type EntryService struct {
	store EntryStore
	quota float64
	now   func() time.Time
}

func NewEntryService(store EntryStore, quotaHours float64) *EntryService {
	return &EntryService{
		store: store,
		quota: quotaHours,
		now:   time.Now,
	}
}

// LoadDashboard lists all entries and derives the aggregate view.
func (s *EntryService) LoadDashboard(ctx context.Context) (Dashboard, error) {
	entries, err := s.store.ListAll(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load entries: %w", err)
	}

	usage := core.ComputeUsage(entries, s.quota)
	return Dashboard{
		Usage:   usage,
		Donut:   usage.Donut(),
		Weekly:  core.WeeklyTotals(entries, s.now()),
		Entries: entries,
	}, nil
}

// AddEntry persists a new entry and returns the refreshed dashboard.
func (s *EntryService) AddEntry(ctx context.Context, date core.Date, description string, hours float64) (Dashboard, error) {
	e := core.Entry{Date: date, Description: description, Hours: hours}
	if err := e.Validate(); err != nil {
		return Dashboard{}, err
	}

	id, err := s.store.Insert(ctx, date, description, hours)
	if err != nil {
		return Dashboard{}, fmt.Errorf("add entry: %w", err)
	}
	slog.InfoContext(ctx, "Entry added", "id", id, "date", date.String(), "hours", hours)

	return s.LoadDashboard(ctx)
}

// SaveBatch reconciles a user-edited candidate table against the
// current stored table and applies the resulting diff in one
// transaction, then returns the refreshed dashboard.
func (s *EntryService) SaveBatch(ctx context.Context, candidate []core.Entry) (Dashboard, error) {
	for _, row := range candidate {
		if err := row.Validate(); err != nil {
			return Dashboard{}, fmt.Errorf("row %d: %w", row.ID, err)
		}
	}

	baseline, err := s.store.ListAll(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load baseline: %w", err)
	}

	diff := core.Reconcile(baseline, candidate)
	if diff.Empty() {
		slog.InfoContext(ctx, "Batch save produced no changes")
		return s.LoadDashboard(ctx)
	}

	if err := s.store.ApplyDiff(ctx, diff); err != nil {
		return Dashboard{}, fmt.Errorf("apply batch: %w", err)
	}

	return s.LoadDashboard(ctx)
}
