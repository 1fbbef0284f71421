// Command feedboard is the terminal client for the feedback board.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/feedboard/feedboard/internal/api"
	"github.com/feedboard/feedboard/internal/config"
	"github.com/feedboard/feedboard/internal/editmode"
	"github.com/feedboard/feedboard/internal/session"
	"github.com/feedboard/feedboard/internal/store"
	"github.com/feedboard/feedboard/internal/tui"
)

// Version is set during build with -ldflags
var version = "dev"

// tokenSource breaks the construction cycle between the API client
// (which needs the session's token) and the session manager (which
// verifies passwords through the API client).
type tokenSource struct{ m *session.Manager }

func (t *tokenSource) Token() string {
	if t.m == nil {
		return ""
	}
	return t.m.Token()
}

var rootCmd = &cobra.Command{
	Use:   "feedboard",
	Short: "Terminal client for the feedback board",
	Long:  `Feedboard is a terminal client for collecting product reviews with a 1-10 rating. Reading is open; creating, editing and deleting reviews require the shared editor password.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		ts := &tokenSource{}
		client := api.New(config.APIBaseURL(), ts)
		sess := session.NewManager(session.NewFileStore(), client, logger)
		ts.m = sess

		edit := editmode.New()
		grant := tui.NewRemovalGrant()
		board := store.New(client, sess, edit, grant, logger)

		app := tui.NewApp(board, sess, edit, grant)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Feedboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Feedboard version %s\n", version)
	},
}

// newLogger writes to a file next to the token store so log lines never
// interleave with the TUI.
func newLogger() *zap.Logger {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return zap.NewNop()
		}
		dir = filepath.Join(home, ".config")
	}
	dir = filepath.Join(dir, "feedboard")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "feedboard.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Command execution failed: %v\n", err)
		os.Exit(1)
	}
}
