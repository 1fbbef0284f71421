// Package editmode tracks whether the form creates a new entry or edits
// an existing one.
package editmode

import (
	"sync"

	"github.com/feedboard/feedboard/internal/model"
)

// Mode is the two-state form mode.
type Mode int

const (
	Creating Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "creating"
}

// Coordinator holds the mode and, while editing, the targeted entry.
type Coordinator struct {
	mu     sync.Mutex
	mode   Mode
	target model.Feedback
}

// New starts in Creating with no target.
func New() *Coordinator { return &Coordinator{} }

// Begin enters Editing targeting the given entry.
func (c *Coordinator) Begin(entry model.Feedback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = Editing
	c.target = entry
}

// Reset returns to Creating and clears the target. Called after an
// update submission completes and by an explicit cancel.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = Creating
	c.target = model.Feedback{}
}

// Mode returns the current mode.
func (c *Coordinator) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Target returns the targeted entry; ok is false unless editing.
func (c *Coordinator) Target() (model.Feedback, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target, c.mode == Editing
}
