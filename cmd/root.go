package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/session-replay/internal"
	"github.com/spf13/cobra"
)

var (
	verbose        bool
	recordingsPath string
	version        string = "dev"
	commit         string = "unknown"
	date           string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "session-replay",
	Short: "Replay recorded generation sessions",
	Long: `A CLI tool to scrub through the recorded history of a finished
generation session as if it were happening live.

A recording captures everything the original run produced: messages, tool
invocations and their results, pipeline stages, and file writes. The replay
engine reconstructs what was visible at any instant and drives a human-paced
presentation layer on top (combo counters, timed overlays, run stats).

Features:
  • List recorded sessions from the recordings catalog
  • Play a recording in the terminal at 10x speed with a live HUD
  • Export the projected view at any playhead (JSON, JSONL, Markdown, YAML)
  • Serve display frames to a browser renderer over websockets

Quick Start:
  session-replay list                     # List recorded sessions
  session-replay play <session-id>        # Replay in the terminal
  session-replay export <session-id>      # Export the full session view

For detailed usage, see: https://github.com/iksnae/session-replay`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&recordingsPath, "recordings", "", "Custom recordings catalog location (path to database file)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// catalogPath resolves the recordings database location, preferring the
// --recordings flag over the default under the user's home directory
func catalogPath() (string, error) {
	if recordingsPath != "" {
		return recordingsPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".session-replay", "recordings.db"), nil
}

// loadSession resolves a session either from a payload file (when file is
// set) or from the recordings catalog by ID
func loadSession(sessionID, file string) (*internal.RecordedSession, error) {
	if file != "" {
		payload, err := internal.LoadReplayPayload(file)
		if err != nil {
			return nil, err
		}
		if sessionID == "" {
			sessionID = filepath.Base(file)
		}
		return payload.Session(sessionID), nil
	}

	dbPath, err := catalogPath()
	if err != nil {
		return nil, err
	}
	db, err := internal.OpenDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open recordings catalog: %w", err)
	}
	defer func() { _ = db.Close() }()

	return internal.NewCatalog(db).Load(sessionID)
}
