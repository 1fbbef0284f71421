package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feedboard/feedboard/internal/errs"
	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/session"
)

// Board is the slice of the feedback store the TUI drives.
type Board interface {
	Entries() []model.Feedback
	Stats() model.Stats
	Loaded() bool
	Load(ctx context.Context) error
	Add(ctx context.Context, d model.Draft) (model.Feedback, error)
	Update(ctx context.Context, id string, d model.Draft) error
	Remove(ctx context.Context, id string) error
	EditRequest(entry model.Feedback)
	Verify(ctx context.Context, password string) error
}

func loadCmd(b Board) tea.Cmd {
	return func() tea.Msg {
		if err := b.Load(context.Background()); err != nil {
			if errors.Is(err, errs.ErrAuthRequired) {
				return authRequiredMsg{}
			}
			return errMsg{err}
		}
		return entriesLoadedMsg{}
	}
}

func addCmd(b Board, d model.Draft) tea.Cmd {
	return func() tea.Msg {
		entry, err := b.Add(context.Background(), d)
		if err != nil {
			if errors.Is(err, errs.ErrAuthRequired) {
				return authRequiredMsg{}
			}
			return errMsg{err}
		}
		return entrySavedMsg{entry}
	}
}

func updateCmd(b Board, id string, d model.Draft) tea.Cmd {
	return func() tea.Msg {
		if err := b.Update(context.Background(), id, d); err != nil {
			if errors.Is(err, errs.ErrAuthRequired) {
				return authRequiredMsg{}
			}
			return errMsg{err}
		}
		return entrySavedMsg{model.Feedback{ID: id, Text: d.Text, Rating: d.Rating}}
	}
}

func removeCmd(b Board, id string) tea.Cmd {
	return func() tea.Msg {
		if err := b.Remove(context.Background(), id); err != nil {
			if errors.Is(err, errs.ErrAuthRequired) {
				return authRequiredMsg{}
			}
			return errMsg{err}
		}
		return entryRemovedMsg{id}
	}
}

func verifyCmd(b Board, password string) tea.Cmd {
	return func() tea.Msg {
		if err := b.Verify(context.Background(), password); err != nil {
			return verifyFailedMsg{session.InvalidPasswordMessage}
		}
		return verifiedMsg{}
	}
}
