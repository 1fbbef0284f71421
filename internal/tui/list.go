package tui

import (
	"fmt"
	"strings"

	"github.com/feedboard/feedboard/internal/model"
)

// ListModel renders the feedback collection with a movable cursor.
type ListModel struct {
	entries []model.Feedback
	cursor  int
}

// NewList returns an empty list.
func NewList() *ListModel { return &ListModel{} }

// SetEntries replaces the listing, clamping the cursor.
func (m *ListModel) SetEntries(entries []model.Feedback) {
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Entries returns the current listing.
func (m *ListModel) Entries() []model.Feedback { return m.entries }

// Selected returns the entry under the cursor.
func (m *ListModel) Selected() (model.Feedback, bool) {
	if len(m.entries) == 0 {
		return model.Feedback{}, false
	}
	return m.entries[m.cursor], true
}

// MoveUp moves the cursor towards the newest entry.
func (m *ListModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor towards the oldest entry.
func (m *ListModel) MoveDown() {
	if m.cursor < len(m.entries)-1 {
		m.cursor++
	}
}

// View renders the listing, newest first.
func (m *ListModel) View() string {
	if len(m.entries) == 0 {
		return helpStyle.Render("No reviews yet. Press n to write the first one.")
	}

	var b strings.Builder
	for i, e := range m.entries {
		line := fmt.Sprintf("%2d/10  %s", e.Rating, e.Text)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
