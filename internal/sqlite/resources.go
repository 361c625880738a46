package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

const (
	selectExists  = `SELECT 1 FROM resources WHERE name = ?`
	selectContent = `SELECT content FROM resources WHERE name = ?`
	selectID      = `SELECT resource_id FROM resources WHERE name = ?`

	upsertReplace = `INSERT INTO resources (name, resource_id, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`

	upsertAppend = `INSERT INTO resources (name, resource_id, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET content = resources.content || excluded.content, updated_at = excluded.updated_at`

	deleteResource = `DELETE FROM resources WHERE name = ?`
)

// Exists reports whether a row for name is present.
func (b *Backend) Exists(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		b.logger.Debug("sqlite exists failed", "name", name, "error", err)
		return false
	}
	var one int
	err = db.QueryRow(selectExists, name).Scan(&one)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			b.logger.Debug("sqlite exists failed", "name", name, "error", err)
		}
		return false
	}
	return true
}

// Read returns the stored text, or "" if the row is absent or unreadable.
func (b *Backend) Read(name string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		b.logger.Debug("sqlite read failed", "name", name, "error", err)
		return ""
	}
	var content string
	if err := db.QueryRow(selectContent, name).Scan(&content); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			b.logger.Debug("sqlite read failed", "name", name, "error", err)
		}
		return ""
	}
	return content
}

// ID returns the row's resource id, assigned as a UUID v7 when the row was
// first inserted, or "" if the row is absent or unreadable.
func (b *Backend) ID(name string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		b.logger.Debug("sqlite id failed", "name", name, "error", err)
		return ""
	}
	var id string
	if err := db.QueryRow(selectID, name).Scan(&id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			b.logger.Debug("sqlite id failed", "name", name, "error", err)
		}
		return ""
	}
	return id
}

// Write replaces the row's content, inserting the row if absent.
func (b *Backend) Write(name, text string) bool {
	return b.upsert("write", upsertReplace, name, text)
}

// Append concatenates text to the row's content, inserting the row if absent.
func (b *Backend) Append(name, text string) bool {
	return b.upsert("append", upsertAppend, name, text)
}

func (b *Backend) upsert(op, query, name, text string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		b.logger.Debug("sqlite "+op+" failed", "name", name, "error", err)
		return false
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := db.Exec(query, name, newUUID(), text, now, now); err != nil {
		b.logger.Debug("sqlite "+op+" failed", "name", name, "error", err)
		return false
	}
	return true
}

// Delete removes the row; true iff a row was removed.
func (b *Backend) Delete(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		b.logger.Debug("sqlite delete failed", "name", name, "error", err)
		return false
	}
	res, err := db.Exec(deleteResource, name)
	if err != nil {
		b.logger.Debug("sqlite delete failed", "name", name, "error", err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		b.logger.Debug("sqlite delete failed", "name", name, "error", err)
		return false
	}
	return n > 0
}

var _ types.Identifier = (*Backend)(nil)
