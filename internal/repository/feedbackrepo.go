// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/feedboard/feedboard/internal/model"
)

// FeedbackRepository provides ordered access to stored feedback entries.
type FeedbackRepository interface {
	// List returns all entries, newest first.
	List(ctx context.Context) ([]model.Feedback, error)

	// Insert stores a new entry with an already assigned id.
	Insert(ctx context.Context, f model.Feedback) error

	// Update replaces text and rating of an existing entry.
	Update(ctx context.Context, f model.Feedback) error

	// Delete removes an entry by id.
	Delete(ctx context.Context, id string) error
}
