// Package store is the single source of truth for the feedback
// collection. Every mutation is mediated through the auth session and
// the API client; the collection is kept newest-first.
package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/feedboard/feedboard/internal/editmode"
	"github.com/feedboard/feedboard/internal/errs"
	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/session"
)

// API is the remote contract the store mediates.
type API interface {
	List(ctx context.Context) ([]model.Feedback, error)
	Create(ctx context.Context, d model.Draft) (model.Feedback, error)
	Update(ctx context.Context, id string, d model.Draft) (model.Feedback, error)
	Remove(ctx context.Context, id string) error
}

// Session is the slice of the auth session manager the store depends on.
type Session interface {
	RequireAuth() bool
	Invalidate()
	Verify(ctx context.Context, password string) error
	State() session.State
}

// Confirmer approves a removal before any network call is made.
type Confirmer interface {
	ConfirmRemove(entry model.Feedback) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(model.Feedback) bool

func (f ConfirmerFunc) ConfirmRemove(e model.Feedback) bool { return f(e) }

// Store owns the feedback collection and the single pending-draft slot.
type Store struct {
	mu      sync.Mutex
	entries []model.Feedback
	loaded  bool
	pending *model.Draft

	// Per-id mutation sequencing: a response is applied only if no newer
	// mutation for the same id has been applied since it was issued.
	seq     map[string]uint64
	applied map[string]uint64

	api     API
	sess    Session
	edit    *editmode.Coordinator
	confirm Confirmer
	log     *zap.Logger
}

// New wires the store to its collaborators.
func New(api API, sess Session, edit *editmode.Coordinator, confirm Confirmer, log *zap.Logger) *Store {
	return &Store{
		seq:     map[string]uint64{},
		applied: map[string]uint64{},
		api:     api,
		sess:    sess,
		edit:    edit,
		confirm: confirm,
		log:     log,
	}
}

// Entries returns a snapshot of the collection, newest first.
func (s *Store) Entries() []model.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Feedback, len(s.entries))
	copy(out, s.entries)
	return out
}

// Stats aggregates the current collection.
func (s *Store) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ComputeStats(s.entries)
}

// Loaded reports whether an initial fetch has succeeded.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// PendingDraft returns the held draft, if any.
func (s *Store) PendingDraft() (model.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return model.Draft{}, false
	}
	return *s.pending, true
}

// Load replaces the collection from the server. Called at startup and
// after the first successful verification. Unauthorized responses
// invalidate the session and surface the challenge; other failures are
// logged and leave the collection empty.
func (s *Store) Load(ctx context.Context) error {
	if s.sess.State() != session.Authenticated {
		return nil
	}
	entries, err := s.api.List(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			s.sess.Invalidate()
			return errs.ErrAuthRequired
		}
		s.log.Warn("load feedback", zap.Error(err))
		return nil
	}
	s.mu.Lock()
	s.entries = entries
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Add validates the draft, then creates it remotely and prepends the
// server-confirmed entry. While the session is challenged the draft is
// held in the single pending slot (a newer submission replaces it) and
// resubmitted once after the next successful Verify.
func (s *Store) Add(ctx context.Context, d model.Draft) (model.Feedback, error) {
	if err := d.Validate(); err != nil {
		return model.Feedback{}, err
	}
	if !s.sess.RequireAuth() {
		s.hold(d)
		return model.Feedback{}, errs.ErrAuthRequired
	}

	created, err := s.api.Create(ctx, d)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			s.sess.Invalidate()
			s.hold(d)
			return model.Feedback{}, errs.ErrAuthRequired
		}
		s.log.Warn("create feedback", zap.Error(err))
		return model.Feedback{}, err
	}

	s.mu.Lock()
	s.entries = append([]model.Feedback{created}, s.entries...)
	s.mu.Unlock()
	return created, nil
}

// Update applies the patch optimistically, confirms against the server,
// and overwrites the optimistic entry with the authoritative response.
// A failed confirmation is logged and the optimistic state kept. The
// edit mode resets whenever the server was reached, success or not.
func (s *Store) Update(ctx context.Context, id string, d model.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !s.sess.RequireAuth() {
		// no server outcome: keep edit mode so the user can resubmit
		return errs.ErrAuthRequired
	}

	s.mu.Lock()
	seq := s.nextSeqLocked(id)
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Text = d.Text
			s.entries[i].Rating = d.Rating
			break
		}
	}
	s.mu.Unlock()

	defer s.edit.Reset()

	confirmed, err := s.api.Update(ctx, id, d)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			s.sess.Invalidate()
			return errs.ErrAuthRequired
		}
		s.log.Warn("update feedback", zap.String("id", id), zap.Error(err))
		return err
	}

	s.mu.Lock()
	if seq >= s.applied[id] {
		for i := range s.entries {
			if s.entries[i].ID == id {
				s.entries[i] = confirmed
				break
			}
		}
		s.applied[id] = seq
	}
	s.mu.Unlock()
	return nil
}

// Remove deletes the entry after authentication and user confirmation.
// The local entry goes away only once the server confirmed; relative
// order of the remaining entries is untouched.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	entry, ok := s.findLocked(id)
	s.mu.Unlock()
	if !ok {
		return errs.ErrNotFound
	}

	if !s.sess.RequireAuth() {
		return errs.ErrAuthRequired
	}
	if s.confirm == nil || !s.confirm.ConfirmRemove(entry) {
		return nil
	}

	s.mu.Lock()
	seq := s.nextSeqLocked(id)
	s.mu.Unlock()

	if err := s.api.Remove(ctx, id); err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			s.sess.Invalidate()
			return errs.ErrAuthRequired
		}
		s.log.Warn("remove feedback", zap.String("id", id), zap.Error(err))
		return err
	}

	s.mu.Lock()
	if seq >= s.applied[id] {
		kept := s.entries[:0]
		for _, e := range s.entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		s.entries = kept
		s.applied[id] = seq
	}
	s.mu.Unlock()
	return nil
}

// EditRequest puts the form into edit mode targeting the entry.
func (s *Store) EditRequest(entry model.Feedback) {
	s.edit.Begin(entry)
}

// Verify delegates to the session manager and, on success, loads the
// collection if it never loaded and resubmits the held draft exactly
// once. The slot is cleared before resubmission, so a renewed challenge
// re-holds it rather than duplicating it.
func (s *Store) Verify(ctx context.Context, password string) error {
	if err := s.sess.Verify(ctx, password); err != nil {
		return err
	}

	s.mu.Lock()
	d := s.pending
	s.pending = nil
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		_ = s.Load(ctx)
	}
	if d != nil {
		if _, err := s.Add(ctx, *d); err != nil {
			s.log.Warn("resubmit pending draft", zap.Error(err))
		}
	}
	return nil
}

func (s *Store) hold(d model.Draft) {
	s.mu.Lock()
	s.pending = &d
	s.mu.Unlock()
}

func (s *Store) findLocked(id string) (model.Feedback, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.Feedback{}, false
}

func (s *Store) nextSeqLocked(id string) uint64 {
	s.seq[id]++
	return s.seq[id]
}
