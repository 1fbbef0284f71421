// Package tui is the terminal front end for the feedback board.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/feedboard/feedboard/internal/editmode"
	"github.com/feedboard/feedboard/internal/session"
)

type viewState int

const (
	boardView viewState = iota
	formView
	aboutView
)

// Auth is the slice of the session manager the app reads directly.
type Auth interface {
	State() session.State
	CancelChallenge()
}

// App is the root bubbletea model.
type App struct {
	state viewState

	board Board
	sess  Auth
	edit  *editmode.Coordinator
	grant *RemovalGrant

	list     *ListModel
	form     *FormModel
	password *PasswordModel
	confirm  *ConfirmModel

	showPassword bool
	status       string
	width        int
	height       int
}

// NewApp wires the TUI to the store and session.
func NewApp(board Board, sess Auth, edit *editmode.Coordinator, grant *RemovalGrant) *App {
	return &App{
		state:    boardView,
		board:    board,
		sess:     sess,
		edit:     edit,
		grant:    grant,
		list:     NewList(),
		form:     NewForm(),
		password: NewPassword(),
		confirm:  NewConfirm(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadCmd(a.board))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case entriesLoadedMsg:
		a.list.SetEntries(a.board.Entries())
		return a, nil

	case entrySavedMsg:
		a.list.SetEntries(a.board.Entries())
		a.form.Reset()
		a.state = boardView
		a.status = "Saved."
		return a, nil

	case entryRemovedMsg:
		a.list.SetEntries(a.board.Entries())
		a.status = "Deleted."
		return a, nil

	case authRequiredMsg:
		a.showPassword = true
		a.password.Open()
		return a, textinput.Blink

	case verifiedMsg:
		a.showPassword = false
		a.password.Close()
		a.list.SetEntries(a.board.Entries())
		a.status = ""
		return a, nil

	case verifyFailedMsg:
		a.password.Fail(msg.message)
		return a, nil

	case errMsg:
		a.status = msg.err.Error()
		a.list.SetEntries(a.board.Entries())
		return a, nil

	case statusMsg:
		a.status = string(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow all input while active.
	if a.confirm.Active() {
		return a.handleConfirmKey(msg)
	}
	if a.showPassword {
		return a.handlePasswordKey(msg)
	}

	switch a.state {
	case boardView:
		return a.handleBoardKey(msg)
	case formView:
		return a.handleFormKey(msg)
	case aboutView:
		a.state = boardView
		return a, nil
	}
	return a, nil
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		entry := a.confirm.Target()
		a.confirm.Hide()
		a.grant.Grant(entry.ID)
		return a, removeCmd(a.board, entry.ID)
	case "n", "N", "esc":
		a.confirm.Hide()
		return a, nil
	}
	return a, nil
}

func (a *App) handlePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.sess.CancelChallenge()
		a.showPassword = false
		a.password.Close()
		return a, nil
	case tea.KeyEnter:
		if a.password.Busy() || a.password.Value() == "" {
			return a, nil
		}
		a.password.MarkBusy()
		return a, verifyCmd(a.board, a.password.Value())
	}
	return a, a.password.Update(msg)
}

func (a *App) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "n":
		a.form.Reset()
		a.state = formView
		return a, textinput.Blink
	case "e":
		entry, ok := a.list.Selected()
		if !ok {
			return a, nil
		}
		a.board.EditRequest(entry)
		a.form.SetEntry(entry)
		a.state = formView
		return a, textinput.Blink
	case "d":
		entry, ok := a.list.Selected()
		if !ok {
			return a, nil
		}
		a.confirm.Show(entry)
		return a, nil
	case "r":
		return a, loadCmd(a.board)
	case "a":
		a.state = aboutView
		return a, nil
	case "up", "k":
		a.list.MoveUp()
		return a, nil
	case "down", "j":
		a.list.MoveDown()
		return a, nil
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if a.form.Editing() {
			a.edit.Reset()
		}
		a.form.Reset()
		a.state = boardView
		return a, nil
	case tea.KeyEnter:
		if !a.form.Valid() {
			return a, nil
		}
		d := a.form.Draft()
		if a.form.Editing() {
			return a, updateCmd(a.board, a.form.TargetID(), d)
		}
		return a, addCmd(a.board, d)
	}
	return a, a.form.Update(msg)
}

func (a *App) View() string {
	var body string
	switch a.state {
	case formView:
		body = a.form.View()
	case aboutView:
		body = a.renderAbout()
	default:
		body = a.renderBoard()
	}

	if a.confirm.Active() {
		body += "\n" + a.confirm.View()
	}
	if a.showPassword {
		body += "\n" + a.password.View()
	}
	if a.status != "" {
		body += "\n" + statsStyle.Render(a.status)
	}
	return body
}

func (a *App) renderBoard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Feedboard"))
	b.WriteString("\n")

	stats := a.board.Stats()
	b.WriteString(statsStyle.Render(fmt.Sprintf("%d Reviews   Average Rating: %s", stats.Count, stats.FormatAverage())))
	b.WriteString("\n\n")
	b.WriteString(a.list.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("n new • e edit • d delete • r reload • a about • q quit"))
	return b.String()
}

func (a *App) renderAbout() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("About"))
	b.WriteString("\n\n")
	b.WriteString("Feedboard collects product reviews with a 1-10 rating.\n")
	b.WriteString("Editing requires the shared editor password.\n\n")
	b.WriteString(helpStyle.Render("any key to go back"))
	return b.String()
}
