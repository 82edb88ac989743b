package history

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"validarfc/internal/validation/models"
	"validarfc/pkg/platform/sentinel"
	"validarfc/pkg/platform/tx"
)

// SQLSTATE classes that mean the database cannot serve requests right now.
const (
	pqClassConnection      = "08"
	pqClassInsufficientRes = "53"
	pqClassOperatorAction  = "57"
	pqUndefinedTable       = "42P01"
)

// PostgresStore persists records in the validations table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed history store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts a single record, joining a transaction carried by ctx.
func (s *PostgresStore) Append(ctx context.Context, record models.Record) error {
	query := `
		INSERT INTO validations (rfc, is_valid, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := tx.Use(ctx, s.db).ExecContext(ctx, query, record.RFC, record.IsValid, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert validation: %w", classifyPostgres(err))
	}
	return nil
}

// ListPage counts all records and returns one window, newest first. Both
// queries read the same snapshot so Total agrees with Items.
func (s *PostgresStore) ListPage(ctx context.Context, req models.PageRequest) (*models.Page, error) {
	page := &models.Page{
		Page:    req.Page,
		PerPage: req.PerPage,
		Items:   []models.Record{},
	}

	snapshot := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := tx.Run(ctx, s.db, snapshot, func(ctx context.Context) error {
		q := tx.Use(ctx, s.db)
		if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM validations`).Scan(&page.Total); err != nil {
			return fmt.Errorf("count validations: %w", err)
		}

		query := `
			SELECT rfc, is_valid, created_at
			FROM validations
			ORDER BY created_at DESC, id DESC
			LIMIT $1 OFFSET $2
		`
		rows, err := q.QueryContext(ctx, query, req.PerPage, req.Offset())
		if err != nil {
			return fmt.Errorf("query validations: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var r models.Record
			if err := rows.Scan(&r.RFC, &r.IsValid, &r.CreatedAt); err != nil {
				return fmt.Errorf("scan validation: %w", err)
			}
			r.CreatedAt = r.CreatedAt.UTC()
			page.Items = append(page.Items, r)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate validations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classifyPostgres(err)
	}
	return page, nil
}

// classifyPostgres tags connectivity failures with sentinel.ErrUnavailable so
// callers can distinguish an unreachable database from a bad query.
func classifyPostgres(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		class := string(pqErr.Code.Class())
		if class == pqClassConnection || class == pqClassInsufficientRes ||
			class == pqClassOperatorAction || pqErr.Code == pqUndefinedTable {
			return fmt.Errorf("%w: sqlstate %s: %w", sentinel.ErrUnavailable, pqErr.Code, err)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return err
}
