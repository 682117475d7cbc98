// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"tweetarchive/internal/models"
)

// CategoryStore owns the tag vocabulary. Every write to categories and
// item_categories goes through Add, Remove or SweepOrphans.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// addSQL upserts the category and links it in one statement. DO UPDATE
// (rather than DO NOTHING) makes RETURNING yield the id of an existing row
// and holds its row lock until the link is written.
const addSQL = `
	WITH category AS (
		INSERT INTO categories (name) VALUES ($2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	)
	INSERT INTO item_categories (item_id, category_id)
	SELECT $1::text, id FROM category
	ON CONFLICT (item_id, category_id) DO NOTHING`

const removeSQL = `
	DELETE FROM item_categories ic
	USING categories c
	WHERE ic.category_id = c.id AND ic.item_id = $1 AND c.name = $2`

const sweepSQL = `
	DELETE FROM categories c
	WHERE NOT EXISTS (SELECT 1 FROM item_categories ic WHERE ic.category_id = c.id)`

// Add tags an item, creating the category on first use. Adding a tag the
// item already has is a no-op.
func (s *CategoryStore) Add(ctx context.Context, itemID, name string) error {
	conn, err := acquire(ctx, s.db)
	if err != nil {
		return err
	}
	defer conn.Close()

	stmt, err := conn.PrepareContext(ctx, addSQL)
	if err != nil {
		return fmt.Errorf("prepare add category: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, itemID, name)
	if err != nil {
		return fmt.Errorf("add category %q: %w", name, err)
	}

	n, _ := res.RowsAffected()
	slog.Debug("category added", "item", itemID, "category", name, "linked", n)
	return nil
}

// Remove unlinks a tag from an item, then sweeps every category left
// without links. A missing link is not an error.
func (s *CategoryStore) Remove(ctx context.Context, itemID, name string) error {
	conn, err := acquire(ctx, s.db)
	if err != nil {
		return err
	}
	defer conn.Close()

	stmt, err := conn.PrepareContext(ctx, removeSQL)
	if err != nil {
		return fmt.Errorf("prepare remove category: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, itemID, name); err != nil {
		return fmt.Errorf("remove category %q: %w", name, err)
	}

	_, err = sweep(ctx, conn)
	return err
}

// SweepOrphans deletes all categories that no item references and returns
// how many were removed.
func (s *CategoryStore) SweepOrphans(ctx context.Context) (int64, error) {
	conn, err := acquire(ctx, s.db)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	return sweep(ctx, conn)
}

// sweep is a global pass over the link table, not a per-category decrement.
// It races with concurrent adds and only guarantees eventual tidiness.
func sweep(ctx context.Context, conn *sql.Conn) (int64, error) {
	res, err := conn.ExecContext(ctx, sweepSQL)
	if err != nil {
		return 0, fmt.Errorf("sweep orphan categories: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		slog.Debug("orphan categories swept", "deleted", n)
	}
	return n, nil
}

// List returns every linked category with its usage count, most used first.
// Ties are ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	conn, err := acquire(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT c.id, c.name, c.created_at, COUNT(ic.item_id) AS item_count
		FROM categories c
		JOIN item_categories ic ON ic.category_id = c.id
		GROUP BY c.id
		ORDER BY item_count DESC, c.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.ItemCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Names returns category names in List order. The result is never nil.
func (s *CategoryStore) Names(ctx context.Context) ([]string, error) {
	cats, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names, nil
}
