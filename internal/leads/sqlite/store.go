// Package sqlite provides the SQLite-backed lead store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kingrea/boardpack/internal/leads"
	"github.com/kingrea/boardpack/internal/leads/sqlite/migrations"
	"github.com/kingrea/boardpack/internal/widget"
)

// Store persists captured leads in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ leads.Sink = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite lead store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Name identifies the sink in logs.
func (s *Store) Name() string { return "sqlite" }

// Deliver inserts one lead. Re-delivering the same ID is a no-op.
func (s *Store) Deliver(ctx context.Context, lead leads.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return leads.ErrClosed
	}
	id := strings.TrimSpace(lead.ID)
	email := strings.TrimSpace(lead.Email)
	if id == "" {
		return fmt.Errorf("lead id is required")
	}
	if email == "" {
		return fmt.Errorf("lead email is required")
	}
	capturedAt := lead.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO leads (id, email, role, source, captured_at) VALUES (?, ?, ?, ?, ?)`,
		id, email, lead.Role.String(), lead.Source, toMillis(capturedAt),
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// Recent returns up to limit leads, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]leads.Lead, error) {
	if s == nil || s.sqlDB == nil {
		return nil, leads.ErrClosed
	}
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, email, role, source, captured_at FROM leads ORDER BY captured_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var out []leads.Lead
	for rows.Next() {
		var (
			lead       leads.Lead
			role       string
			capturedAt int64
		)
		if err := rows.Scan(&lead.ID, &lead.Email, &role, &lead.Source, &capturedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		parsed, err := widget.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("lead %s: %w", lead.ID, err)
		}
		lead.Role = parsed
		lead.CapturedAt = fromMillis(capturedAt)
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return out, nil
}

// Count returns how many leads have been captured per role.
func (s *Store) Count(ctx context.Context) (map[widget.Role]int, error) {
	if s == nil || s.sqlDB == nil {
		return nil, leads.ErrClosed
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT role, COUNT(*) FROM leads GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	defer rows.Close()
	out := map[widget.Role]int{}
	for rows.Next() {
		var (
			role  string
			count int
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		parsed, err := widget.ParseRole(role)
		if err != nil {
			return nil, err
		}
		out[parsed] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return out, nil
}
