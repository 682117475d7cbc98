// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"tweetarchive/internal/models"
	"tweetarchive/internal/query"
)

// ItemStore handles item reads and flag updates.
type ItemStore struct {
	db *sql.DB
}

// NewItemStore creates a new ItemStore with the given database pool.
func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

// List executes an assembled listing statement and maps the rows.
// The result is never nil.
func (s *ItemStore) List(ctx context.Context, q query.Statement) ([]models.Item, error) {
	conn, err := acquire(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stmt, err := conn.PrepareContext(ctx, q.SQL)
	if err != nil {
		return nil, fmt.Errorf("prepare list items: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// flag names a boolean column that may be patched directly.
type flag string

const (
	flagImportant flag = "important"
	flagArchived  flag = "archived"
)

// SetImportant updates the important flag of one item.
func (s *ItemStore) SetImportant(ctx context.Context, id string, important bool) error {
	return s.setFlag(ctx, flagImportant, id, important)
}

// SetArchived updates the archived flag of one item.
func (s *ItemStore) SetArchived(ctx context.Context, id string, archived bool) error {
	return s.setFlag(ctx, flagArchived, id, archived)
}

// setFlag runs a single-column update. Unknown ids update nothing and are
// not an error.
func (s *ItemStore) setFlag(ctx context.Context, column flag, id string, value bool) error {
	conn, err := acquire(ctx, s.db)
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx,
		`UPDATE items SET `+string(column)+` = $1 WHERE id = $2`, value, id)
	if err != nil {
		return fmt.Errorf("update item %s: %w", column, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		slog.Debug("flag update matched no item", "id", id, "column", column)
	}
	return nil
}

const summarySQL = `
	SELECT total.num,
	       categorized.num,
	       total.num - categorized.num,
	       archived.num,
	       important.num
	FROM (SELECT COUNT(*) AS num FROM items) AS total,
	     (SELECT COUNT(DISTINCT item_id) AS num FROM item_categories) AS categorized,
	     (SELECT COUNT(*) AS num FROM items WHERE archived) AS archived,
	     (SELECT COUNT(*) AS num FROM items WHERE important) AS important`

// Summary computes the archive counters. It returns nil without error if
// the database yields no row.
func (s *ItemStore) Summary(ctx context.Context) (*models.Summary, error) {
	conn, err := acquire(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	summary, err := scanSummary(conn.QueryRowContext(ctx, summarySQL))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return summary, nil
}
