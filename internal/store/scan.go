// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package store

import (
	"github.com/lib/pq"

	"tweetarchive/internal/models"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface{ Scan(...any) error }

// scanItem maps one listing row (query.Columns order) to an Item.
// The aggregated category array becomes a non-nil slice.
func scanItem(row scanner) (*models.Item, error) {
	var it models.Item
	var categories []string
	err := row.Scan(
		&it.ID, &it.SortIndex, &it.ScreenName, &it.CreatedAt, &it.FetchedAt,
		&it.FullText, &it.QuotedText, &it.Bookmarked, &it.Liked,
		&it.Important, &it.Archived, pq.Array(&categories),
	)
	if err != nil {
		return nil, err
	}
	it.Categories = normalizeCategories(categories)
	return &it, nil
}

// normalizeCategories turns a missing aggregate into an empty list.
func normalizeCategories(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

// scanSummary maps the single summary row.
func scanSummary(row scanner) (*models.Summary, error) {
	var s models.Summary
	if err := row.Scan(&s.Total, &s.Categorized, &s.Uncategorized, &s.Archived, &s.Important); err != nil {
		return nil, err
	}
	return &s, nil
}
