package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/session-replay/internal"
	"github.com/iksnae/session-replay/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFile   string
	exportFormat string
	exportAt     int64
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export the projected view of a session",
	Long: `Export what a replay viewer would see at a given playhead.

By default the playhead is the end of the session, so the export covers the
full recorded run. Use --at to export a partial view, exactly as the replay
engine would reconstruct it mid-scrub.

Examples:
  session-replay export abc123                        # Full session as JSON to stdout
  session-replay export abc123 --format md            # Markdown
  session-replay export abc123 --at 30000 -o out.json # View at 30s, to a file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sessionID string
		if len(args) > 0 {
			sessionID = args[0]
		}
		if sessionID == "" && exportFile == "" {
			return fmt.Errorf("a session ID or --file is required")
		}

		session, err := loadSession(sessionID, exportFile)
		if err != nil {
			return err
		}

		playhead := exportAt
		if playhead < 0 || playhead > session.Duration {
			playhead = session.Duration
		}
		view := internal.ProjectView(session, playhead)

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			return exporter.Export(view, os.Stdout)
		}

		if err := os.MkdirAll(filepath.Dir(exportOutput), 0755); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: exportOutput, Err: err}
		}
		f, err := os.Create(exportOutput)
		if err != nil {
			return &internal.ExportError{Format: exportFormat, Path: exportOutput, Err: err}
		}
		defer func() { _ = f.Close() }()

		if err := exporter.Export(view, f); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: exportOutput, Err: err}
		}
		internal.LogInfo("Exported %s at %s to %s", view.SessionID, internal.FormatTime(playhead), exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Export from a payload file instead of a catalog entry")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, jsonl, md, yaml)")
	exportCmd.Flags().Int64Var(&exportAt, "at", -1, "Playhead position in milliseconds (default: end of session)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}
