package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MySQLStore maps the hierarchical namespace onto two tables: documents
// keyed by full path, and an auto-increment appends table whose id column
// carries the per-path insertion order.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the backing tables when they do not exist yet.
func (m *MySQLStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			path VARCHAR(191) NOT NULL PRIMARY KEY,
			doc  JSON NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS appends (
			id   BIGINT AUTO_INCREMENT PRIMARY KEY,
			path VARCHAR(191) NOT NULL,
			doc  JSON NOT NULL,
			INDEX idx_appends_path (path)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLStore) Get(ctx context.Context, path string, out any) (bool, error) {
	var raw []byte
	err := m.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE path = ?`, path,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func (m *MySQLStore) Set(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	_, err = m.db.ExecContext(ctx, `
		INSERT INTO documents (path, doc) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE doc = VALUES(doc)`,
		path, raw,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (m *MySQLStore) Update(ctx context.Context, path string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode patch for %s: %w", path, err)
	}
	// JSON_MERGE_PATCH performs the one-level merge server side; a missing
	// document becomes just the patched fields, matching the Redis adapter.
	_, err = m.db.ExecContext(ctx, `
		INSERT INTO documents (path, doc) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE doc = JSON_MERGE_PATCH(doc, VALUES(doc))`,
		path, patch,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return nil
}

func (m *MySQLStore) PushAppend(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	_, err = m.db.ExecContext(ctx,
		`INSERT INTO appends (path, doc) VALUES (?, ?)`, path, raw,
	)
	if err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}

func (m *MySQLStore) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT path, doc FROM documents WHERE path LIKE CONCAT(?, '/%')`, path,
	)
	if err != nil {
		return nil, fmt.Errorf("children %s: %w", path, err)
	}
	defer rows.Close()

	prefix := path + "/"
	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var childPath string
		var raw []byte
		if err := rows.Scan(&childPath, &raw); err != nil {
			return nil, fmt.Errorf("children %s: %w", path, err)
		}
		out[strings.TrimPrefix(childPath, prefix)] = json.RawMessage(raw)
	}
	return out, rows.Err()
}

func (m *MySQLStore) Appended(ctx context.Context, path string) ([]json.RawMessage, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT doc FROM appends WHERE path = ? ORDER BY id`, path,
	)
	if err != nil {
		return nil, fmt.Errorf("appended %s: %w", path, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("appended %s: %w", path, err)
		}
		out = append(out, json.RawMessage(raw))
	}
	return out, rows.Err()
}

func (m *MySQLStore) AppendKeys(ctx context.Context, path string) ([]string, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT DISTINCT path FROM appends WHERE path LIKE CONCAT(?, '/%')`, path,
	)
	if err != nil {
		return nil, fmt.Errorf("append keys %s: %w", path, err)
	}
	defer rows.Close()

	prefix := path + "/"
	var out []string
	for rows.Next() {
		var childPath string
		if err := rows.Scan(&childPath); err != nil {
			return nil, fmt.Errorf("append keys %s: %w", path, err)
		}
		out = append(out, strings.TrimPrefix(childPath, prefix))
	}
	return out, rows.Err()
}
