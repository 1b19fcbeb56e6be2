package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"stunden/internal/core"

	_ "modernc.org/sqlite"
)

const (
	insertEntrySQL = `INSERT INTO entries (entry_date, description, hours) VALUES (?, ?, ?)`
	listEntriesSQL = `SELECT id, entry_date, description, hours FROM entries ORDER BY entry_date DESC, id DESC`
	updateEntrySQL = `UPDATE entries SET entry_date = ?, description = ?, hours = ? WHERE id = ?`
	deleteEntrySQL = `DELETE FROM entries WHERE id = ?`
)

// ErrNotFound is returned when an update targets an id that does not
// exist. Deletes of absent ids stay silent: deleting something already
// gone is the outcome the caller asked for, overwriting it is not.
var ErrNotFound = errors.New("entry not found")

// SQLiteRepository persists time entries in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert appends a new entry and returns the id assigned by storage.
func (r *SQLiteRepository) Insert(ctx context.Context, date core.Date, description string, hours float64) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertEntrySQL, date.String(), description, hours)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert entry id: %w", err)
	}
	return id, nil
}

// ListAll returns every entry ordered by date descending. An empty
// store yields an empty slice, not an error.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx, listEntriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var (
			e       core.Entry
			dateStr string
		)
		if err := rows.Scan(&e.ID, &dateStr, &e.Description, &e.Hours); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Date, err = core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("entry %d has malformed date %q: %w", e.ID, dateStr, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// Update overwrites all fields of the entry matching e.ID. Targeting a
// nonexistent id returns ErrNotFound.
func (r *SQLiteRepository) Update(ctx context.Context, e core.Entry) error {
	return execUpdate(ctx, r.db, e)
}

// Delete removes the entry with the given id; absent ids are a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, deleteEntrySQL, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

// ApplyDiff applies a reconciliation diff inside a single transaction:
// all updates, then all inserts, then all deletes. A failure anywhere
// rolls the whole batch back, so storage is never left partially
// reconciled.
func (r *SQLiteRepository) ApplyDiff(ctx context.Context, diff core.Diff) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reconcile tx: %w", err)
	}
	defer tx.Rollback()

	for _, e := range diff.Updates {
		if err := execUpdate(ctx, tx, e); err != nil {
			return err
		}
	}
	for _, e := range diff.Inserts {
		if _, err := tx.ExecContext(ctx, insertEntrySQL, e.Date.String(), e.Description, e.Hours); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}
	for _, id := range diff.Deletes {
		if _, err := tx.ExecContext(ctx, deleteEntrySQL, id); err != nil {
			return fmt.Errorf("delete entry %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reconcile tx: %w", err)
	}

	slog.InfoContext(ctx, "Reconciliation applied",
		"updates", len(diff.Updates),
		"inserts", len(diff.Inserts),
		"deletes", len(diff.Deletes))
	return nil
}

// execer covers both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execUpdate(ctx context.Context, db execer, e core.Entry) error {
	res, err := db.ExecContext(ctx, updateEntrySQL, e.Date.String(), e.Description, e.Hours, e.ID)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update entry %d rows affected: %w", e.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update entry %d: %w", e.ID, ErrNotFound)
	}
	return nil
}
