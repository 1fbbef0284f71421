package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PasswordModel is the popup asking for the shared editor password.
type PasswordModel struct {
	input   textinput.Model
	message string
	busy    bool
}

// NewPassword returns an inactive password popup.
func NewPassword() *PasswordModel {
	ti := textinput.New()
	ti.Placeholder = "Password"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128
	ti.Width = 30
	return &PasswordModel{input: ti}
}

// Open focuses the popup, keeping any previous failure message.
func (m *PasswordModel) Open() {
	m.busy = false
	m.input.SetValue("")
	m.input.Focus()
}

// Close clears the popup state.
func (m *PasswordModel) Close() {
	m.message = ""
	m.busy = false
	m.input.Blur()
	m.input.SetValue("")
}

// Fail surfaces a verification failure and re-enables input.
func (m *PasswordModel) Fail(message string) {
	m.message = message
	m.busy = false
	m.input.SetValue("")
}

// Value returns the typed password.
func (m *PasswordModel) Value() string { return m.input.Value() }

// Busy reports whether a verification round-trip is in flight.
func (m *PasswordModel) Busy() bool { return m.busy }

// MarkBusy blocks resubmission while verification is in flight.
func (m *PasswordModel) MarkBusy() { m.busy = true }

// Update forwards key events to the input unless busy.
func (m *PasswordModel) Update(msg tea.Msg) tea.Cmd {
	if m.busy {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the popup.
func (m *PasswordModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Editor password required"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter submit • esc cancel"))
	return popupStyle.Render(b.String())
}
