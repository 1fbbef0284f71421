package tui

import "github.com/feedboard/feedboard/internal/model"

// Messages passed between async store commands and the app model.

// entriesLoadedMsg signals that the collection was (re)fetched.
type entriesLoadedMsg struct{}

// entrySavedMsg signals a successful create or update.
type entrySavedMsg struct{ entry model.Feedback }

// entryRemovedMsg signals a confirmed removal.
type entryRemovedMsg struct{ id string }

// authRequiredMsg asks the app to raise the password popup.
type authRequiredMsg struct{}

// verifiedMsg signals a successful password verification.
type verifiedMsg struct{}

// verifyFailedMsg carries the message shown inside the popup.
type verifyFailedMsg struct{ message string }

// errMsg carries a non-auth failure for the status line.
type errMsg struct{ err error }

// statusMsg updates the transient status line.
type statusMsg string
