package postgres

import (
	"context"

	"github.com/feedboard/feedboard/internal/errs"
	"github.com/feedboard/feedboard/internal/model"
)

// FeedbackRepo implements FeedbackRepository using PostgreSQL.
type FeedbackRepo struct{ db *DB }

// NewFeedbackRepo constructs a feedback repository.
func NewFeedbackRepo(db *DB) *FeedbackRepo { return &FeedbackRepo{db: db} }

// List returns all entries ordered newest first by insertion sequence.
func (r *FeedbackRepo) List(ctx context.Context) ([]model.Feedback, error) {
	const q = `SELECT id, text, rating FROM feedback ORDER BY seq DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Feedback
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.Text, &f.Rating); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Insert stores a new entry.
func (r *FeedbackRepo) Insert(ctx context.Context, f model.Feedback) error {
	const q = `INSERT INTO feedback (id, text, rating) VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, f.ID, f.Text, f.Rating)
	return err
}

// Update replaces text and rating; the insertion sequence is untouched so
// the entry keeps its place in the listing.
func (r *FeedbackRepo) Update(ctx context.Context, f model.Feedback) error {
	const q = `UPDATE feedback SET text=$2, rating=$3 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, f.ID, f.Text, f.Rating)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an entry by id.
func (r *FeedbackRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM feedback WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
