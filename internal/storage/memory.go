package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"stunden/internal/core"
)

// MemoryRepository keeps entries in memory. It backs ephemeral runs
// (DATA_BACKEND=memory) and tests; it mirrors the SQLite repository's
// contract, including ErrNotFound on updates of absent ids.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]core.Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, items: make(map[int64]core.Entry)}
}

func (m *MemoryRepository) Close() error { return nil }

func (m *MemoryRepository) Insert(_ context.Context, date core.Date, description string, hours float64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(date, description, hours), nil
}

func (m *MemoryRepository) insertLocked(date core.Date, description string, hours float64) int64 {
	id := m.nextID
	m.nextID++
	m.items[id] = core.Entry{ID: id, Date: date, Description: description, Hours: hours}
	return id
}

func (m *MemoryRepository) ListAll(_ context.Context) ([]core.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]core.Entry, 0, len(m.items))
	for _, e := range m.items {
		entries = append(entries, e)
	}
	// Date descending, newest id first within a date, same as SQLite.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Time.Equal(entries[j].Date.Time) {
			return entries[i].Date.After(entries[j].Date.Time)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

func (m *MemoryRepository) Update(_ context.Context, e core.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[e.ID]; !ok {
		return fmt.Errorf("update entry %d: %w", e.ID, ErrNotFound)
	}
	m.items[e.ID] = e
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *MemoryRepository) ApplyDiff(_ context.Context, diff core.Diff) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate updates up front so a missing id leaves the table
	// untouched, matching the SQLite repository's transaction.
	for _, e := range diff.Updates {
		if _, ok := m.items[e.ID]; !ok {
			return fmt.Errorf("update entry %d: %w", e.ID, ErrNotFound)
		}
	}
	for _, e := range diff.Updates {
		m.items[e.ID] = e
	}
	for _, e := range diff.Inserts {
		m.insertLocked(e.Date, e.Description, e.Hours)
	}
	for _, id := range diff.Deletes {
		delete(m.items, id)
	}
	return nil
}
