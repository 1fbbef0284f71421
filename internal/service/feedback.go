package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/repository"
)

// FeedbackService defines operations over the feedback collection.
type FeedbackService interface {
	// List returns all entries ordered newest first.
	List(ctx context.Context) ([]model.Feedback, error)
	// Create validates the draft, assigns an id and persists the entry.
	Create(ctx context.Context, d model.Draft) (model.Feedback, error)
	// Update validates and replaces text and rating of an existing entry.
	Update(ctx context.Context, id string, d model.Draft) (model.Feedback, error)
	// Remove deletes an entry by id.
	Remove(ctx context.Context, id string) error
}

type FeedbackServiceImpl struct {
	repo repository.FeedbackRepository
}

// NewFeedbackService constructs FeedbackService with required dependencies.
func NewFeedbackService(repo repository.FeedbackRepository) *FeedbackServiceImpl {
	return &FeedbackServiceImpl{repo: repo}
}

// List returns all entries ordered newest first.
func (s *FeedbackServiceImpl) List(ctx context.Context) ([]model.Feedback, error) {
	return s.repo.List(ctx)
}

// Create assigns a server-side id and persists the validated draft.
func (s *FeedbackServiceImpl) Create(ctx context.Context, d model.Draft) (model.Feedback, error) {
	if err := d.Validate(); err != nil {
		return model.Feedback{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return model.Feedback{}, err
	}
	f := model.Feedback{ID: id.String(), Text: d.Text, Rating: d.Rating}
	if err := s.repo.Insert(ctx, f); err != nil {
		return model.Feedback{}, err
	}
	return f, nil
}

// Update replaces text and rating of an existing entry, keeping its id
// and its place in the listing.
func (s *FeedbackServiceImpl) Update(ctx context.Context, id string, d model.Draft) (model.Feedback, error) {
	if err := d.Validate(); err != nil {
		return model.Feedback{}, err
	}
	f := model.Feedback{ID: id, Text: d.Text, Rating: d.Rating}
	if err := s.repo.Update(ctx, f); err != nil {
		return model.Feedback{}, err
	}
	return f, nil
}

// Remove deletes an entry by id.
func (s *FeedbackServiceImpl) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
