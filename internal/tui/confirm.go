package tui

import (
	"strings"
	"sync"

	"github.com/feedboard/feedboard/internal/model"
)

// confirmMessage is shown before any removal reaches the server.
const confirmMessage = "Are you sure you want to delete?"

// ConfirmModel is the removal confirmation dialog.
type ConfirmModel struct {
	active bool
	target model.Feedback
}

// NewConfirm returns an inactive dialog.
func NewConfirm() *ConfirmModel { return &ConfirmModel{} }

// Show activates the dialog for the given entry.
func (m *ConfirmModel) Show(entry model.Feedback) {
	m.active = true
	m.target = entry
}

// Hide deactivates the dialog.
func (m *ConfirmModel) Hide() { m.active = false }

// Active reports whether the dialog is shown.
func (m *ConfirmModel) Active() bool { return m.active }

// Target returns the entry the dialog is about.
func (m *ConfirmModel) Target() model.Feedback { return m.target }

// View renders the dialog.
func (m *ConfirmModel) View() string {
	if !m.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(confirmMessage)
	b.WriteString("\n\n")
	b.WriteString(truncate(m.target.Text, 48))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("y delete • n cancel"))
	return dialogStyle.Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RemovalGrant authorizes exactly one removal of a specific entry. The
// dialog grants it on "y"; the store consumes it before calling the
// server, so an unconfirmed removal can never reach the network.
type RemovalGrant struct {
	mu sync.Mutex
	id string
}

// NewRemovalGrant returns an empty grant.
func NewRemovalGrant() *RemovalGrant { return &RemovalGrant{} }

// Grant authorizes a single removal of the entry with the given id.
func (g *RemovalGrant) Grant(id string) {
	g.mu.Lock()
	g.id = id
	g.mu.Unlock()
}

// ConfirmRemove consumes the grant if it matches the entry.
func (g *RemovalGrant) ConfirmRemove(e model.Feedback) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.id != "" && g.id == e.ID {
		g.id = ""
		return true
	}
	return false
}
