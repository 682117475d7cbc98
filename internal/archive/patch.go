// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidPatch is returned for a patch that sets no recognized field.
var ErrInvalidPatch = errors.New("no valid fields provided for update")

// Patch is a partial update of one item. Nil fields are left untouched.
type Patch struct {
	AddCategory    *string `json:"add_category" validate:"omitempty,min=1,max=100"`
	RemoveCategory *string `json:"remove_category" validate:"omitempty,min=1,max=100"`
	Important      *bool   `json:"important"`
	Archived       *bool   `json:"archived"`
}

// command is one independent store operation derived from a patch field.
type command struct {
	field string
	run   func(ctx context.Context) error
}

// commands expands the patch into its store operations in a fixed order:
// add_category, remove_category, important, archived.
func (s *Service) commands(id string, p Patch) []command {
	var cmds []command
	if p.AddCategory != nil {
		name := *p.AddCategory
		cmds = append(cmds, command{"add_category", func(ctx context.Context) error {
			return s.categories.Add(ctx, id, name)
		}})
	}
	if p.RemoveCategory != nil {
		name := *p.RemoveCategory
		cmds = append(cmds, command{"remove_category", func(ctx context.Context) error {
			return s.categories.Remove(ctx, id, name)
		}})
	}
	if p.Important != nil {
		v := *p.Important
		cmds = append(cmds, command{"important", func(ctx context.Context) error {
			return s.items.SetImportant(ctx, id, v)
		}})
	}
	if p.Archived != nil {
		v := *p.Archived
		cmds = append(cmds, command{"archived", func(ctx context.Context) error {
			return s.items.SetArchived(ctx, id, v)
		}})
	}
	return cmds
}

// PatchItem applies every field set in p to the item. Each field runs as
// its own statement; the first failure stops the remaining fields and
// earlier ones stay applied.
func (s *Service) PatchItem(ctx context.Context, id string, p Patch) error {
	cmds := s.commands(id, p)
	if len(cmds) == 0 {
		return ErrInvalidPatch
	}

	for _, c := range cmds {
		if err := c.run(ctx); err != nil {
			return fmt.Errorf("patch %s: %w", c.field, err)
		}
		slog.Debug("item patched", "id", id, "field", c.field)
	}
	return nil
}
