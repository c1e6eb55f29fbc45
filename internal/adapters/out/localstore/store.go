// internal/adapters/out/localstore/store.go
package localstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	cartdom "hearthwood/internal/domain/cart"
)

// Store is the durable single-device cart cache, backed by SQLite so it keeps
// working fully offline. It implements cart.LocalCache:
//   - Load never fails (missing/corrupt rows read as empty)
//   - Save is best-effort (failures are logged and swallowed)
//
// One string key maps to a JSON-serialized array of cart lines.
const cacheKey = "cart"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cart_cache (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database at path.
// Idempotent - safe to call multiple times against the same file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open failed: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: connect failed: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY on concurrent save attempts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("localstore: %q failed: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: schema failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns the last-saved cart lines. Missing key, unreadable row, or
// corrupt JSON all read as an empty cart — a cold start, never an error.
func (s *Store) Load() []cartdom.CartItem {
	if s == nil || s.db == nil {
		return []cartdom.CartItem{}
	}

	var raw string
	err := s.db.QueryRow(`SELECT value FROM cart_cache WHERE key = ?`, cacheKey).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[localcache] WARN: load failed, starting empty: %v", err)
		}
		return []cartdom.CartItem{}
	}

	var items []cartdom.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("[localcache] WARN: corrupt cache dropped: %v", err)
		return []cartdom.CartItem{}
	}

	return cartdom.SanitizeAll(items)
}

// Save persists the lines, best-effort. A failed save (disk full, closed db)
// never propagates: the in-memory state stays authoritative.
func (s *Store) Save(items []cartdom.CartItem) {
	if s == nil || s.db == nil {
		return
	}

	raw, err := json.Marshal(cartdom.SanitizeAll(items))
	if err != nil {
		log.Printf("[localcache] WARN: save skipped (marshal): %v", err)
		return
	}

	_, err = s.db.Exec(
		`INSERT INTO cart_cache (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		cacheKey, string(raw),
	)
	if err != nil {
		log.Printf("[localcache] WARN: save failed (state kept in memory): %v", err)
	}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
