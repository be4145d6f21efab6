package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultCacheTTL is how long parsed metadata stays cached. Takeout archives
// are immutable once downloaded, so entries are kept for a long time.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Cache provides SQLite-backed caching of parsed metadata, so re-running an
// import over the same archive does not decode every image again.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewCache creates a new metadata cache. A non-positive ttl uses DefaultCacheTTL.
func NewCache(db *sql.DB, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{db: db, ttl: ttl}
}

// Key builds a cache key for an archive entry. Extracted exports are all
// named "Takeout", so size and modification time are part of the key and a
// different export with the same entry path misses.
func Key(archive, entry string, size int64, modTime time.Time) string {
	return fmt.Sprintf("exif:%s:%s:%d:%d", archive, entry, size, modTime.Unix())
}

// Get retrieves cached metadata by key.
// Returns nil, false if not found or expired. A cached nil means the image
// was parsed before and carried no metadata; it is returned as an empty Metadata.
func (c *Cache) Get(ctx context.Context, key string) (*Metadata, bool) {
	var value string
	var expiresAt time.Time

	err := c.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM metadata_cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)

	if err != nil || time.Now().After(expiresAt) {
		return nil, false
	}

	m := &Metadata{}
	if err := json.Unmarshal([]byte(value), m); err != nil {
		return nil, false
	}
	return m, true
}

// Set stores metadata under key.
func (c *Cache) Set(ctx context.Context, key string, m *Metadata) error {
	if m == nil {
		m = &Metadata{}
	}
	value, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	expiresAt := time.Now().Add(c.ttl)

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO metadata_cache (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, string(value), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Load returns cached metadata for key, or calls read and caches its result.
// ErrNoMetadata from read is cached as an empty record and reported as such.
// Other read errors are returned without caching.
func (c *Cache) Load(ctx context.Context, key string, read func() (*Metadata, error)) (*Metadata, error) {
	if m, ok := c.Get(ctx, key); ok {
		if m.IsEmpty() {
			return nil, ErrNoMetadata
		}
		return m, nil
	}

	m, err := read()
	if err != nil && !errors.Is(err, ErrNoMetadata) {
		return nil, err
	}
	if setErr := c.Set(ctx, key, m); setErr != nil {
		return m, setErr
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM metadata_cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Prune removes all expired entries.
// Returns the number of entries removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx,
		"DELETE FROM metadata_cache WHERE expires_at < ?", time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}
