package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/feedboard/feedboard/internal/errs"
)

func TestDraft_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		draft Draft
		ok    bool
	}{
		{"valid", Draft{Text: "Great service today!", Rating: 9}, true},
		{"exactly 10 chars rejected", Draft{Text: "1234567890", Rating: 5}, false},
		{"short after trim", Draft{Text: "   padded    ", Rating: 5}, false},
		{"eleven chars ok", Draft{Text: "12345678901", Rating: 5}, true},
		{"empty", Draft{Text: "", Rating: 5}, false},
		{"rating too low", Draft{Text: "long enough text", Rating: 0}, false},
		{"rating too high", Draft{Text: "long enough text", Rating: 11}, false},
		{"rating bounds", Draft{Text: "long enough text", Rating: 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("want validation error")
				}
				if !errors.Is(err, errs.ErrValidation) {
					t.Fatalf("want ErrValidation, got %v", err)
				}
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	if s := ComputeStats(nil); s.Count != 0 || s.FormatAverage() != "0" {
		t.Fatalf("empty stats: %+v avg=%q", s, s.FormatAverage())
	}

	entries := []Feedback{
		{ID: "a", Text: strings.Repeat("x", 11), Rating: 5},
		{ID: "b", Text: strings.Repeat("y", 11), Rating: 7},
	}
	s := ComputeStats(entries)
	if s.Count != 2 {
		t.Fatalf("count=%d, want 2", s.Count)
	}
	if s.Average != 6.0 {
		t.Fatalf("average=%v, want 6.0", s.Average)
	}
	if got := s.FormatAverage(); got != "6" {
		t.Fatalf("FormatAverage=%q, want %q", got, "6")
	}
}

func TestStats_FormatAverage_KeepsFraction(t *testing.T) {
	t.Parallel()

	s := ComputeStats([]Feedback{
		{ID: "a", Rating: 7},
		{ID: "b", Rating: 8},
	})
	if got := s.FormatAverage(); got != "7.5" {
		t.Fatalf("FormatAverage=%q, want %q", got, "7.5")
	}
}
