// Package localstore is the embedded guest-mode backend. All data lives in a
// single SQLite file owned by one Chronotes instance; there is no tenant
// column because a guest store serves exactly one anonymous user. Backed by
// modernc.org/sqlite so no cgo is required.
package localstore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// schemaVersion is stored in PRAGMA user_version. Bump it together with a
// migration when the schema changes.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS folders (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_folders_name ON folders(name);

CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    folder_id TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    tags TEXT,
    priority TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    last_reviewed_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_folder ON notes(folder_id);
`

// Local is a store.Backend over an embedded SQLite database. The mutex
// serializes writers; SQLite itself would otherwise return busy errors under
// concurrent mutation.
type Local struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the guest database at path and applies the schema.
func Open(path string) (*Local, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply local store schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("read local store version: %w", err)
	}
	if version > schemaVersion {
		db.Close()
		return nil, fmt.Errorf("local store schema version %d is newer than supported %d", version, schemaVersion)
	}
	if version < schemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			db.Close()
			return nil, fmt.Errorf("set local store version: %w", err)
		}
	}

	return &Local{db: db}, nil
}

func (l *Local) Close() error {
	return l.db.Close()
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
