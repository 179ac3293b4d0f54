package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/grupomymce/sitemap-tools/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id TEXT PRIMARY KEY,
            kind TEXT NOT NULL,
            site_root TEXT NOT NULL,
            page_count INTEGER NOT NULL DEFAULT 0,
            missing TEXT,
            extra TEXT,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *models.Run) error {
	query := `
        INSERT INTO runs (id, kind, site_root, page_count, missing, extra, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            page_count = excluded.page_count,
            missing = excluded.missing,
            extra = excluded.extra
    `

	missingJSON, err := json.Marshal(run.Missing)
	if err != nil {
		return err
	}
	extraJSON, err := json.Marshal(run.Extra)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		run.ID.String(),
		string(run.Kind),
		run.SiteRoot,
		run.PageCount,
		string(missingJSON),
		string(extraJSON),
		run.CreatedAt,
	)

	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := `
        SELECT id, kind, site_root, page_count, missing, extra, created_at
        FROM runs
        WHERE id = ?
    `

	runs, err := s.queryRuns(ctx, query, id.String())
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error) {
	query := `
        SELECT id, kind, site_root, page_count, missing, extra, created_at
        FROM runs
        ORDER BY created_at DESC
        LIMIT ? OFFSET ?
    `

	return s.queryRuns(ctx, query, limit, offset)
}

func (s *SQLiteStore) queryRuns(ctx context.Context, query string, args ...interface{}) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		var run models.Run
		var idStr, kind string
		var missingJSON, extraJSON sql.NullString

		err := rows.Scan(
			&idStr,
			&kind,
			&run.SiteRoot,
			&run.PageCount,
			&missingJSON,
			&extraJSON,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		run.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", idStr, err)
		}
		run.Kind = models.RunKind(kind)
		if missingJSON.Valid {
			if err := json.Unmarshal([]byte(missingJSON.String), &run.Missing); err != nil {
				return nil, fmt.Errorf("invalid missing list for run %s: %w", run.ID, err)
			}
		}
		if extraJSON.Valid {
			if err := json.Unmarshal([]byte(extraJSON.String), &run.Extra); err != nil {
				return nil, fmt.Errorf("invalid extra list for run %s: %w", run.ID, err)
			}
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
