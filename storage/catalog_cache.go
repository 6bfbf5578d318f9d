package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"traychat/model"
)

// CatalogCache persists the last refreshed model catalog so the picker is
// populated instantly on launch, before any provider answers. The cache is
// replaced wholesale on every refresh; there is no incremental diffing.
type CatalogCache struct {
	db *sql.DB
}

// NewCatalogCache opens (and if needed creates) the catalog database.
func NewCatalogCache(dataDir string) (*CatalogCache, error) {
	dbPath := filepath.Join(dataDir, "catalog.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cache := &CatalogCache{db: db}

	if err := cache.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cache, nil
}

func (c *CatalogCache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS catalog (
		provider TEXT NOT NULL,
		model_id TEXT NOT NULL,
		display_name TEXT NOT NULL,
		refreshed_at DATETIME NOT NULL,
		PRIMARY KEY (provider, model_id)
	);
	`

	_, err := c.db.Exec(schema)
	return err
}

// Replace swaps the cached catalog for a freshly aggregated one.
func (c *CatalogCache) Replace(options []model.Option) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM catalog"); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	now := time.Now()
	for _, o := range options {
		_, err := tx.Exec(`
			INSERT INTO catalog (provider, model_id, display_name, refreshed_at)
			VALUES (?, ?, ?, ?)
		`, string(o.Provider), o.ID, o.DisplayName, now)
		if err != nil {
			return fmt.Errorf("failed to insert model %s: %w", o.Key(), err)
		}
	}

	return tx.Commit()
}

// Load returns the cached catalog in unspecified order; callers re-sort. An
// empty cache yields an empty slice, not an error.
func (c *CatalogCache) Load() ([]model.Option, error) {
	rows, err := c.db.Query(`
		SELECT provider, model_id, display_name
		FROM catalog
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var options []model.Option
	for rows.Next() {
		var provider, id, name string
		if err := rows.Scan(&provider, &id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		options = append(options, model.Option{
			Provider:    model.Provider(provider),
			ID:          id,
			DisplayName: name,
		})
	}

	return options, rows.Err()
}

// RefreshedAt returns when the cache was last replaced, or the zero time for
// an empty cache.
func (c *CatalogCache) RefreshedAt() (time.Time, error) {
	var ts sql.NullTime
	err := c.db.QueryRow("SELECT MAX(refreshed_at) FROM catalog").Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query refresh time: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return ts.Time, nil
}

// Close closes the underlying database.
func (c *CatalogCache) Close() error {
	return c.db.Close()
}
