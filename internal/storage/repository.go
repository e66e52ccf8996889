package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/PCalderonpm/menu-escolar/internal/core"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
	"github.com/PCalderonpm/menu-escolar/internal/menus/memory"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists menu bundles as opaque JSON blobs keyed by
// identifier. A single menus table is enough: bundles are read and
// written whole.
type SQLiteRepository struct {
	db *sql.DB
}

var _ menus.Gateway = (*SQLiteRepository)(nil)

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

// Load implements menus.BundleLoader.
func (r *SQLiteRepository) Load(ctx context.Context, id string) (core.MenuBundle, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM menus WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return core.MenuBundle{}, menus.ErrNotFound
	}
	if err != nil {
		return core.MenuBundle{}, fmt.Errorf("select menu %s: %w", id, err)
	}

	var b core.MenuBundle
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return core.MenuBundle{}, fmt.Errorf("decode menu %s: %w", id, err)
	}
	return b.Normalize(), nil
}

// Save implements menus.BundleSaver. An empty id mints a new identifier;
// an existing id is replaced wholesale, last writer wins.
func (r *SQLiteRepository) Save(ctx context.Context, id string, b core.MenuBundle) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encode bundle: %w", err)
	}

	minted := false
	if id == "" {
		id = memory.MintID()
		minted = true
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO menus (id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		id, string(raw), now, now)
	if err != nil {
		return "", fmt.Errorf("upsert menu %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Menu bundle saved",
		"menu_id", id,
		"minted", minted,
		"bytes", len(raw),
		"ledger_entries", len(b.Ledger),
		"weekly_entries", len(b.WeeklyMenu))

	return id, nil
}

// UpdatedAt returns the last save time for an identifier. The worker uses
// it to skip summary rows that are already current.
func (r *SQLiteRepository) UpdatedAt(ctx context.Context, id string) (time.Time, error) {
	var at time.Time
	err := r.db.QueryRowContext(ctx, `SELECT updated_at FROM menus WHERE id = ?`, id).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, menus.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("select updated_at %s: %w", id, err)
	}
	return at, nil
}

// ListIDs returns up to limit identifiers ordered by most recent save,
// used by the worker's startup catch-up pass.
func (r *SQLiteRepository) ListIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM menus ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list menu ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan menu id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
