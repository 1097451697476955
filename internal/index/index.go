// Package index maintains the file-universe index: every trackable file in
// the vault, keyed by path and queryable by basename.
//
// The index backs click resolution (basename -> file) and `rft open`. It is
// rebuilt by Rescan and kept current from watcher events.
package index

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"rft/internal/config"
	"rft/internal/ignore"
	"rft/internal/logging"
	"rft/internal/recent"
)

// Index is the sqlite-backed file universe.
type Index struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

const schema = `
CREATE TABLE IF NOT EXISTS files (
	path     TEXT PRIMARY KEY,
	basename TEXT NOT NULL,
	size     INTEGER NOT NULL,
	mod_time INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_files_basename ON files(basename);
`

// Open opens or creates the index database under <vaultRoot>/.rft/.
func Open(vaultRoot, filename string, logger *logging.Logger) (*Index, error) {
	dir := filepath.Join(vaultRoot, config.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.Dir, err)
	}

	dbPath := filepath.Join(dir, filename)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	// Pragmas for reliability; the index is small and rebuildable, so the
	// settings favor simplicity over throughput.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Index{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (ix *Index) Close() error {
	if ix.conn != nil {
		return ix.conn.Close()
	}
	return nil
}

// withTx executes fn within a transaction, rolling back on error.
func (ix *Index) withTx(fn func(*sql.Tx) error) error {
	tx, err := ix.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && ix.logger != nil {
			ix.logger.Error("failed to rollback transaction", map[string]interface{}{
				"error":          err.Error(),
				"rollback_error": rbErr.Error(),
			})
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rescan walks the vault and replaces the table contents in one
// transaction. Ignored paths are skipped; directories matching an ignore
// pattern are not descended into. Returns the number of indexed files.
func (ix *Index) Rescan(vaultRoot string, matcher *ignore.Matcher) (int, error) {
	type entry struct {
		rel     string
		size    int64
		modTime time.Time
	}

	var entries []entry
	err := filepath.WalkDir(vaultRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == vaultRoot {
			return nil
		}
		rel, relErr := ignore.Rel(p, vaultRoot)
		if relErr != nil {
			return relErr
		}
		// The data directory is never part of the file universe, whatever
		// the configured patterns say; the index must not index itself.
		if rel == config.Dir || strings.HasPrefix(rel, config.Dir+"/") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher != nil && matcher.Match(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil // file vanished mid-walk
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		entries = append(entries, entry{rel: rel, size: info.Size(), modTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("vault walk failed: %w", err)
	}

	err = ix.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM files"); err != nil {
			return err
		}
		stmt, err := tx.Prepare("INSERT INTO files (path, basename, size, mod_time) VALUES (?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range entries {
			ref := recent.NewFileRef(e.rel)
			if _, err := stmt.Exec(ref.Path, ref.Basename, e.size, e.modTime.Unix()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if ix.logger != nil {
		ix.logger.Info("vault index rebuilt", map[string]interface{}{
			"files": len(entries),
		})
	}
	return len(entries), nil
}

// Upsert records or refreshes one file.
func (ix *Index) Upsert(relPath string, size int64, modTime time.Time) error {
	ref := recent.NewFileRef(relPath)
	_, err := ix.conn.Exec(
		`INSERT INTO files (path, basename, size, mod_time) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET basename=excluded.basename, size=excluded.size, mod_time=excluded.mod_time`,
		ref.Path, ref.Basename, size, modTime.Unix(),
	)
	return err
}

// Remove drops one file from the index.
func (ix *Index) Remove(relPath string) error {
	_, err := ix.conn.Exec("DELETE FROM files WHERE path = ?", filepath.ToSlash(relPath))
	return err
}

// LookupBasename resolves a basename to at most one file, first match in
// path order. This is the renderer's click resolution.
func (ix *Index) LookupBasename(name string) (recent.FileRef, bool, error) {
	var ref recent.FileRef
	row := ix.conn.QueryRow(
		"SELECT path, basename FROM files WHERE basename = ? ORDER BY path LIMIT 1", name,
	)
	if err := row.Scan(&ref.Path, &ref.Basename); err != nil {
		if err == sql.ErrNoRows {
			return recent.FileRef{}, false, nil
		}
		return recent.FileRef{}, false, err
	}
	return ref, true, nil
}

// Count returns the number of indexed files.
func (ix *Index) Count() (int, error) {
	var n int
	if err := ix.conn.QueryRow("SELECT COUNT(*) FROM files").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Lookup adapts LookupBasename to the view layer's resolver signature,
// logging lookup failures instead of surfacing them.
func (ix *Index) Lookup(name string) (recent.FileRef, bool) {
	ref, ok, err := ix.LookupBasename(name)
	if err != nil {
		if ix.logger != nil {
			ix.logger.Warn("index lookup failed", map[string]interface{}{
				"basename": name,
				"error":    err.Error(),
			})
		}
		return recent.FileRef{}, false
	}
	return ref, ok
}
