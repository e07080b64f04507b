// Package store exports journal months into a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/lifelog/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for exported entries.
type Store struct {
	db *sql.DB
}

// Row is one recorded day as stored in the export database.
type Row struct {
	Year   int
	Month  model.Month
	Day    int
	Rating model.Rating
	Text   string
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			day INTEGER NOT NULL,
			date TEXT NOT NULL,
			rating INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (year, month, day)
		);`,
		`CREATE TABLE IF NOT EXISTS months (
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			days INTEGER NOT NULL,
			unrecorded INTEGER NOT NULL,
			PRIMARY KEY (year, month)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_rating ON entries(rating);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceMonth stores the recorded days of log, replacing any earlier export
// of the same month.
func (s *Store) ReplaceMonth(ctx context.Context, log *model.MonthLog) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM entries WHERE year = ? AND month = ?`, log.Year, int(log.Month)); err != nil {
		return err
	}
	stats := log.Statistics()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO months (year, month, days, unrecorded) VALUES (?, ?, ?, ?)
		 ON CONFLICT(year, month) DO UPDATE SET days = excluded.days, unrecorded = excluded.unrecorded`,
		log.Year, int(log.Month), log.Days(), stats.Unrecorded); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (year, month, day, date, rating, text) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, entry := range log.Entries {
		rating, ok := entry.Rating()
		if !ok {
			continue
		}
		day := i + 1
		if _, err = stmt.ExecContext(ctx, log.Year, int(log.Month), day, isoDate(log.Year, log.Month, day), int(rating), entry.Text()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListEntries returns exported rows in date order.
func (s *Store) ListEntries(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, month, day, rating, text FROM entries ORDER BY year, month, day`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []Row
	for rows.Next() {
		var r Row
		var month, rating int
		if err := rows.Scan(&r.Year, &month, &r.Day, &rating, &r.Text); err != nil {
			return nil, err
		}
		r.Month = model.Month(month)
		r.Rating = model.Rating(rating)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MonthSummaries rebuilds per-month tallies from the exported rows.
func (s *Store) MonthSummaries(ctx context.Context) ([]model.MonthSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT m.year, m.month, m.unrecorded,
		COALESCE(SUM(CASE WHEN e.rating = 2 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN e.rating = 1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN e.rating = 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN e.rating = -1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN e.rating = -2 THEN 1 ELSE 0 END), 0)
		FROM months m
		LEFT JOIN entries e ON e.year = m.year AND e.month = m.month
		GROUP BY m.year, m.month
		ORDER BY m.year, m.month`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.MonthSummary
	for rows.Next() {
		var sum model.MonthSummary
		var month int
		st := &sum.Stats
		if err := rows.Scan(&sum.Key.Year, &month, &st.Unrecorded, &st.Awesome, &st.Good, &st.Okay, &st.Bad, &st.Horrible); err != nil {
			return nil, err
		}
		sum.Key.Month = model.Month(month)
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func isoDate(year int, month model.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
