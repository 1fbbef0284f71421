package service

import (
	"context"
	"errors"
	"testing"

	"github.com/feedboard/feedboard/internal/errs"
	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/repository"
)

type fakeRepo struct {
	entries []model.Feedback

	listErr   error
	insertErr error
	updateErr error
	deleteErr error
}

var _ repository.FeedbackRepository = (*fakeRepo)(nil)

func (f *fakeRepo) List(context.Context) ([]model.Feedback, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Feedback(nil), f.entries...), nil
}

func (f *fakeRepo) Insert(_ context.Context, e model.Feedback) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append([]model.Feedback{e}, f.entries...)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, e model.Feedback) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.entries {
		if f.entries[i].ID == e.ID {
			f.entries[i] = e
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func TestFeedback_Create(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	s := NewFeedbackService(repo)

	if _, err := s.Create(context.Background(), model.Draft{Text: "short", Rating: 5}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on short text, got %v", err)
	}
	if _, err := s.Create(context.Background(), model.Draft{Text: "a long enough review", Rating: 0}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error on rating 0, got %v", err)
	}

	f, err := s.Create(context.Background(), model.Draft{Text: "a long enough review", Rating: 8})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if len(repo.entries) != 1 || repo.entries[0].ID != f.ID {
		t.Fatalf("entry not persisted: %+v", repo.entries)
	}

	repo.insertErr = errors.New("boom")
	if _, err := s.Create(context.Background(), model.Draft{Text: "another valid review", Rating: 3}); err == nil {
		t.Fatalf("want propagated repo error")
	}
}

func TestFeedback_Update(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{entries: []model.Feedback{{ID: "id-1", Text: "the original review", Rating: 5}}}
	s := NewFeedbackService(repo)

	if _, err := s.Update(context.Background(), "id-1", model.Draft{Text: "short", Rating: 5}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}

	f, err := s.Update(context.Background(), "id-1", model.Draft{Text: "the corrected review", Rating: 9})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if f.ID != "id-1" || f.Rating != 9 {
		t.Fatalf("bad updated entry: %+v", f)
	}
	if repo.entries[0].Text != "the corrected review" {
		t.Fatalf("update not persisted: %+v", repo.entries[0])
	}

	if _, err := s.Update(context.Background(), "missing", model.Draft{Text: "the corrected review", Rating: 9}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFeedback_ListAndRemove(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{entries: []model.Feedback{
		{ID: "b", Text: "the newer review text", Rating: 7},
		{ID: "a", Text: "the older review text", Rating: 5},
	}}
	s := NewFeedbackService(repo)

	out, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 || out[0].ID != "b" {
		t.Fatalf("bad listing: %+v", out)
	}

	if err := s.Remove(context.Background(), "a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("entry not removed: %+v", repo.entries)
	}
	if err := s.Remove(context.Background(), "a"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
