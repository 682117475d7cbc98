// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package models

import "time"

// Item is a bookmarked post. Rows are written by the ingestion process;
// this service only reads them and patches the flag and category fields.
type Item struct {
	ID         string    `json:"rest_id"`
	SortIndex  string    `json:"sort_index"`
	ScreenName string    `json:"screen_name"`
	CreatedAt  time.Time `json:"created_at"`
	FetchedAt  time.Time `json:"fetched_at"`
	FullText   string    `json:"full_text"`
	QuotedText string    `json:"quoted_text"`
	Bookmarked bool      `json:"bookmarked"`
	Liked      bool      `json:"liked"`
	Categories []string  `json:"categories"`
	Important  bool      `json:"important"`
	Archived   bool      `json:"archived"`
}

// IsCategorized returns true if at least one category is attached.
func (i *Item) IsCategorized() bool {
	return len(i.Categories) > 0
}
