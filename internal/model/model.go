// Package model defines domain entities shared by the client core and the server.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/feedboard/feedboard/internal/errs"
)

// Rating bounds for a feedback entry.
const (
	MinRating = 1
	MaxRating = 10
)

// MinTextLen is the minimum trimmed review length, exclusive.
const MinTextLen = 10

// Feedback is a single persisted review. ID is server-assigned and
// immutable once set.
type Feedback struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// Draft is a review that has not been persisted yet (no id).
type Draft struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// Validate checks the draft locally before any network call.
func (d Draft) Validate() error {
	if len(strings.TrimSpace(d.Text)) <= MinTextLen {
		return fmt.Errorf("%w: text must be more than %d characters", errs.ErrValidation, MinTextLen)
	}
	if d.Rating < MinRating || d.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", errs.ErrValidation, MinRating, MaxRating)
	}
	return nil
}

// Tokens is the payload returned by a successful password verification.
type Tokens struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Stats aggregates the collection for display.
type Stats struct {
	Count   int
	Average float64
}

// ComputeStats returns review count and average rating.
func ComputeStats(entries []Feedback) Stats {
	if len(entries) == 0 {
		return Stats{}
	}
	var sum int
	for _, e := range entries {
		sum += e.Rating
	}
	return Stats{
		Count:   len(entries),
		Average: float64(sum) / float64(len(entries)),
	}
}

// FormatAverage renders the average with one decimal place, dropping a
// trailing ".0" (6.0 renders as "6").
func (s Stats) FormatAverage() string {
	if s.Count == 0 {
		return "0"
	}
	out := fmt.Sprintf("%.1f", s.Average)
	return strings.TrimSuffix(out, ".0")
}
