// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Cache memoizes a Backend in a SQLite table keyed by (target, text). Only
// successful translations are stored. Cache I/O errors are logged and the
// call falls through to the wrapped backend.
type Cache struct {
	db      *sql.DB
	backend Backend
	logger  *zap.Logger
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string, backend Backend, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening translation cache: %w", err)
	}

	c := &Cache{db: db, backend: backend, logger: logger}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS translations (
		target TEXT NOT NULL,
		source_text TEXT NOT NULL,
		translated TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (target, source_text)
	)`)
	return err
}

// Translate returns a cached translation when one exists, otherwise asks
// the backend and stores a successful answer.
func (c *Cache) Translate(ctx context.Context, text, target string) (string, error) {
	cached, err := c.lookup(ctx, text, target)
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, sql.ErrNoRows):
		c.logger.Warn("translation cache read failed", zap.Error(err))
	}

	translated, err := c.backend.Translate(ctx, text, target)
	if err != nil {
		return "", err
	}
	if translated != "" {
		if err := c.store(ctx, text, target, translated); err != nil {
			c.logger.Warn("translation cache write failed", zap.Error(err))
		}
	}
	return translated, nil
}

func (c *Cache) lookup(ctx context.Context, text, target string) (string, error) {
	var out string
	err := c.db.QueryRowContext(ctx,
		`SELECT translated FROM translations WHERE target = ? AND source_text = ?`,
		target, text).Scan(&out)
	return out, err
}

func (c *Cache) store(ctx context.Context, text, target, translated string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (target, source_text, translated, created_at)
		 VALUES (?, ?, ?, ?)`,
		target, text, translated, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Len returns the number of cached translations.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&n)
	return n, err
}
