// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

// Package store is the PostgreSQL adapter for the archive. ItemStore reads
// items and updates their flags; CategoryStore is the only writer of the
// categories and item_categories tables.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrUnavailable is returned when no connection could be taken from the
// pool. The caller's request cannot proceed; nothing is retried here.
var ErrUnavailable = errors.New("store unavailable")

// acquire takes a dedicated connection from the pool.
func acquire(ctx context.Context, db *sql.DB) (*sql.Conn, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return conn, nil
}
