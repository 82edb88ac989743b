package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"validarfc/internal/validation/models"
	"validarfc/pkg/platform/tx"
)

// SQLiteStore persists records in a local SQLite file. Timestamps are stored
// as Unix nanoseconds so ordering is exact and driver independent.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// validations table exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// One connection keeps pragmas and :memory: databases consistent.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create validations table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, record models.Record) error {
	_, err := tx.Use(ctx, s.db).ExecContext(ctx,
		`INSERT INTO validations (rfc, is_valid, created_at) VALUES (?, ?, ?)`,
		record.RFC, record.IsValid, record.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert validation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListPage(ctx context.Context, req models.PageRequest) (*models.Page, error) {
	page := &models.Page{
		Page:    req.Page,
		PerPage: req.PerPage,
		Items:   []models.Record{},
	}

	err := tx.Run(ctx, s.db, nil, func(ctx context.Context) error {
		q := tx.Use(ctx, s.db)
		if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM validations`).Scan(&page.Total); err != nil {
			return fmt.Errorf("count validations: %w", err)
		}

		rows, err := q.QueryContext(ctx, `
			SELECT rfc, is_valid, created_at
			FROM validations
			ORDER BY created_at DESC, id DESC
			LIMIT ? OFFSET ?`,
			req.PerPage, req.Offset(),
		)
		if err != nil {
			return fmt.Errorf("query validations: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				r     models.Record
				nanos int64
			)
			if err := rows.Scan(&r.RFC, &r.IsValid, &nanos); err != nil {
				return fmt.Errorf("scan validation: %w", err)
			}
			r.CreatedAt = time.Unix(0, nanos).UTC()
			page.Items = append(page.Items, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
