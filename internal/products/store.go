// Package products implements the catalogd document store and its REST API.
//
// Products are stored as JSON documents in a single SQLite table. Listing
// preserves insertion order, which is the order the viewer presents the
// catalog in.
package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports that no product exists under the requested id.
var ErrNotFound = errors.New("product not found")

// Document is the stored product shape. The field names mirror the wire
// contract consumed by the viewer's catalog fetch.
type Document struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	ModelPath string `json:"modelPath"`
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id         TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Store persists product documents in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed creates) the product database at path.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// List returns all products in insertion order.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM products ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode product document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return docs, nil
}

// Get returns the product stored under id.
func (s *Store) Get(ctx context.Context, id string) (Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT doc FROM products WHERE id = ?`, id)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("get product: %w", err)
	}
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Document{}, fmt.Errorf("decode product document: %w", err)
	}
	return doc, nil
}

// Insert stores a new product, assigning a fresh UUID when the document
// carries none.
func (s *Store) Insert(ctx context.Context, doc Document) (Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return Document{}, fmt.Errorf("encode product document: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO products (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		doc.ID, string(raw), now, now,
	)
	if err != nil {
		return Document{}, fmt.Errorf("insert product: %w", err)
	}
	return doc, nil
}

// Update replaces the document stored under doc.ID.
func (s *Store) Update(ctx context.Context, doc Document) (Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return Document{}, fmt.Errorf("encode product document: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET doc = ?, updated_at = ? WHERE id = ?`,
		string(raw), now, doc.ID,
	)
	if err != nil {
		return Document{}, fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Document{}, fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Delete removes the product stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored products.
func (s *Store) Count(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
