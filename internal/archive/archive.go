// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

// Package archive exposes the four operations the HTTP layer calls: listing
// items, patching one item, listing categories and computing the summary.
package archive

import (
	"context"
	"fmt"

	"tweetarchive/internal/models"
	"tweetarchive/internal/query"
)

// ItemRepository reads items and updates their scalar flags.
type ItemRepository interface {
	List(ctx context.Context, q query.Statement) ([]models.Item, error)
	SetImportant(ctx context.Context, id string, important bool) error
	SetArchived(ctx context.Context, id string, archived bool) error
	Summary(ctx context.Context) (*models.Summary, error)
}

// CategoryRepository owns the tag vocabulary and item links.
type CategoryRepository interface {
	Add(ctx context.Context, itemID, name string) error
	Remove(ctx context.Context, itemID, name string) error
	Names(ctx context.Context) ([]string, error)
}

// Service wires the query pipeline and patch dispatch to the repositories.
type Service struct {
	items      ItemRepository
	categories CategoryRepository
}

// New creates a Service.
func New(items ItemRepository, categories CategoryRepository) *Service {
	return &Service{items: items, categories: categories}
}

// ListItems returns one page of items matching the filters.
func (s *Service) ListItems(ctx context.Context, params query.Params) ([]models.Item, error) {
	items, err := s.items.List(ctx, query.ListStatement(params))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ListCategories returns category names, most used first.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	names, err := s.categories.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// GetSummary returns the archive counters. A nil summary with a nil error
// means the database returned no row.
func (s *Service) GetSummary(ctx context.Context) (*models.Summary, error) {
	summary, err := s.items.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return summary, nil
}
