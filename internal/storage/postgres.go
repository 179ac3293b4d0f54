package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/grupomymce/sitemap-tools/internal/models"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id UUID PRIMARY KEY,
            kind VARCHAR(32) NOT NULL,
            site_root TEXT NOT NULL,
            page_count INTEGER NOT NULL DEFAULT 0,
            missing TEXT[],
            extra TEXT[],
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *models.Run) error {
	query := `
        INSERT INTO runs (id, kind, site_root, page_count, missing, extra, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            page_count = EXCLUDED.page_count,
            missing = EXCLUDED.missing,
            extra = EXCLUDED.extra
    `

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		string(run.Kind),
		run.SiteRoot,
		run.PageCount,
		pq.Array(run.Missing),
		pq.Array(run.Extra),
		run.CreatedAt,
	)

	return err
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := `
        SELECT id, kind, site_root, page_count, missing, extra, created_at
        FROM runs
        WHERE id = $1
    `

	runs, err := s.queryRuns(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error) {
	query := `
        SELECT id, kind, site_root, page_count, missing, extra, created_at
        FROM runs
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `

	return s.queryRuns(ctx, query, limit, offset)
}

func (s *PostgresStore) queryRuns(ctx context.Context, query string, args ...interface{}) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		var run models.Run
		var kind string

		err := rows.Scan(
			&run.ID,
			&kind,
			&run.SiteRoot,
			&run.PageCount,
			pq.Array(&run.Missing),
			pq.Array(&run.Extra),
			&run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		run.Kind = models.RunKind(kind)
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
