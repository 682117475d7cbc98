// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named tag shared by every item it is attached to.
// A category row only lives as long as at least one item references it.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Virtual field populated by store methods.
	ItemCount int `json:"item_count"`
}
