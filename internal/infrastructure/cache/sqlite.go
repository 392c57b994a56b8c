package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteTier is the durable tier: a single-file object store keyed by
// collection. The database is opened lazily on first use and the open is
// idempotent; if opening fails (read-only filesystem, bad path) every
// operation on this tier fails with that error while the fast tier keeps the
// feature usable.
type SQLiteTier struct {
	path    string
	version int

	once    sync.Once
	db      *sql.DB
	openErr error
}

func NewSQLiteTier(path string, version int) *SQLiteTier {
	return &SQLiteTier{
		path:    path,
		version: version,
	}
}

func (t *SQLiteTier) open() error {
	t.once.Do(func() {
		db, err := sql.Open("sqlite3", t.path)
		if err != nil {
			t.openErr = fmt.Errorf("open cache db: %w", err)
			return
		}

		var current int
		if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
			db.Close()
			t.openErr = fmt.Errorf("read cache schema version: %w", err)
			return
		}

		// Version bump drops the store, mirroring an object-store upgrade.
		if current != t.version {
			if _, err := db.Exec("DROP TABLE IF EXISTS cache_entries"); err != nil {
				db.Close()
				t.openErr = fmt.Errorf("reset cache store: %w", err)
				return
			}
			if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", t.version)); err != nil {
				db.Close()
				t.openErr = fmt.Errorf("set cache schema version: %w", err)
				return
			}
		}

		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS cache_entries (
			collection TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      BLOB NOT NULL,
			PRIMARY KEY (collection, key)
		)`)
		if err != nil {
			db.Close()
			t.openErr = fmt.Errorf("create cache store: %w", err)
			return
		}

		t.db = db
	})
	return t.openErr
}

func (t *SQLiteTier) Save(ctx context.Context, collection string, entries []Entry) error {
	if err := t.open(); err != nil {
		return err
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Snapshot semantics: clear the collection, re-insert everything.
	if _, err := tx.ExecContext(ctx, "DELETE FROM cache_entries WHERE collection = ?", collection); err != nil {
		return err
	}

	for _, e := range entries {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO cache_entries (collection, key, value) VALUES (?, ?, ?)",
			collection, e.Key, e.Value)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (t *SQLiteTier) Load(ctx context.Context, collection string) ([]Entry, error) {
	if err := t.open(); err != nil {
		return nil, err
	}

	rows, err := t.db.QueryContext(ctx,
		"SELECT key, value FROM cache_entries WHERE collection = ? ORDER BY rowid",
		collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (t *SQLiteTier) Clear(ctx context.Context, collection string) error {
	if err := t.open(); err != nil {
		return err
	}
	_, err := t.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE collection = ?", collection)
	return err
}

func (t *SQLiteTier) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}
