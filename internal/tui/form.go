package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/feedboard/feedboard/internal/model"
)

// invalidTextMessage is shown under the input while the draft is too short.
const invalidTextMessage = "Message must be more than 10 characters."

// FormModel edits a feedback draft, either a fresh one or an existing
// entry. Submission stays disabled until the draft validates.
type FormModel struct {
	input  textinput.Model
	rating int

	editing  bool
	targetID string
}

// NewForm returns a form for a fresh draft with the rating at maximum.
func NewForm() *FormModel {
	ti := textinput.New()
	ti.Placeholder = "Write your review"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()
	return &FormModel{input: ti, rating: model.MaxRating}
}

// SetEntry pre-populates the form for editing an existing entry.
func (m *FormModel) SetEntry(entry model.Feedback) {
	m.editing = true
	m.targetID = entry.ID
	m.rating = entry.Rating
	m.input.SetValue(entry.Text)
	m.input.CursorEnd()
}

// Reset returns the form to a fresh draft.
func (m *FormModel) Reset() {
	m.editing = false
	m.targetID = ""
	m.rating = model.MaxRating
	m.input.SetValue("")
}

// Editing reports whether the form targets an existing entry.
func (m *FormModel) Editing() bool { return m.editing }

// TargetID returns the id of the entry being edited.
func (m *FormModel) TargetID() string { return m.targetID }

// Draft returns the current form content.
func (m *FormModel) Draft() model.Draft {
	return model.Draft{Text: m.input.Value(), Rating: m.rating}
}

// Valid reports whether the draft may be submitted.
func (m *FormModel) Valid() bool {
	return m.Draft().Validate() == nil
}

// Update handles key events. Left/right adjust the rating, everything
// else goes to the text input.
func (m *FormModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyLeft:
			if m.rating > model.MinRating {
				m.rating--
			}
			return nil
		case tea.KeyRight:
			if m.rating < model.MaxRating {
				m.rating++
			}
			return nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the form with rating selector and validation hint.
func (m *FormModel) View() string {
	var b strings.Builder

	if m.editing {
		b.WriteString(titleStyle.Render("Edit review"))
	} else {
		b.WriteString(titleStyle.Render("New review"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if !m.Valid() && strings.TrimSpace(m.input.Value()) != "" {
		b.WriteString(errorStyle.Render(invalidTextMessage))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Rating: %s %d/%d\n", strings.Repeat("★", m.rating), m.rating, model.MaxRating))

	if m.Valid() {
		b.WriteString(helpStyle.Render("enter submit • ←/→ rating • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("←/→ rating • esc cancel"))
	}
	return b.String()
}
