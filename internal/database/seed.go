package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// seedItem is a sample bookmark inserted into an empty development database.
type seedItem struct {
	id, sortIndex, screenName, fullText, quotedText string
	age                                             time.Duration
	liked                                           bool
}

var seedItems = []seedItem{
	{"1700000000000000001", "1700000000000000001", "golang", "Go 1.22 brings range-over-int and better loop variable scoping.", "", 72 * time.Hour, true},
	{"1700000000000000002", "1700000000000000002", "postgres", "Tip: array_agg with array_remove drops the NULLs a LEFT JOIN leaves behind.", "", 48 * time.Hour, false},
	{"1700000000000000003", "1700000000000000003", "someone", "Worth a read later.", "A long thread about connection pool sizing.", 24 * time.Hour, true},
	{"1700000000000000004", "1700000000000000004", "news", "Breaking: nothing happened today.", "", 2 * time.Hour, false},
}

// Seed populates an empty items table with a few bookmarks so the API has
// something to page through during development.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return fmt.Errorf("seed check items: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	now := time.Now().UTC().Truncate(time.Second)
	for _, it := range seedItems {
		_, err := db.Exec(`
			INSERT INTO items (id, sort_index, screen_name, created_at, fetched_at,
			                   full_text, quoted_text, bookmarked, liked)
			VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8)
			ON CONFLICT (id) DO NOTHING
		`, it.id, it.sortIndex, it.screenName, now.Add(-it.age), now, it.fullText, it.quotedText, it.liked)
		if err != nil {
			return fmt.Errorf("seed insert item %s: %w", it.id, err)
		}
	}

	slog.Info("database seeded with sample items", "count", len(seedItems))
	return nil
}
