// ABOUTME: SQLite-backed local storage for the fitforge client.
// ABOUTME: One private database file per user, opened through modernc.org/sqlite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBFileName is the database file inside the data directory.
const DBFileName = "fitforge.db"

// DB is the SQLite Repository.
type DB struct {
	db     *sql.DB
	dbPath string
}

var _ Repository = (*DB)(nil)

// Open opens the database at dbPath, creating the file and its directory if
// needed, and brings the schema up to date.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d := &DB{db: conn, dbPath: dbPath}

	setup := []struct {
		what string
		fn   func() error
	}{
		{"configure connection", d.configure},
		{"migrate schema", d.migrate},
		// The token lives here.
		{"restrict permissions", func() error { return os.Chmod(dbPath, 0600) }},
	}
	for _, s := range setup {
		if err := s.fn(); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%s: %w", s.what, err)
		}
	}
	return d, nil
}

// DataDir is $XDG_DATA_HOME/fitforge, or ~/.local/share/fitforge.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitforge")
}

// DefaultDBPath is DBFileName inside DataDir.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), DBFileName)
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// configure sets WAL mode so an MCP server and the CLI can share the file.
func (d *DB) configure() error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
