package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iksnae/session-replay/internal"
	"github.com/spf13/cobra"
)

var (
	inspectFile   string
	inspectFormat string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [session-id]",
	Short: "Inspect a recorded session's structure",
	Long: `Inspect the structure of a recorded session without replaying it.

Shows the session window, event counts per kind, and the files written
during the original run.

Examples:
  session-replay inspect abc123                   # Inspect a catalog entry
  session-replay inspect --file payload.json      # Inspect a payload file
  session-replay inspect abc123 --format json     # Machine-readable output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sessionID string
		if len(args) > 0 {
			sessionID = args[0]
		}
		if sessionID == "" && inspectFile == "" {
			return fmt.Errorf("a session ID or --file is required")
		}

		session, err := loadSession(sessionID, inspectFile)
		if err != nil {
			return err
		}

		summary := summarize(session)

		if inspectFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		fmt.Printf("Session:   %s\n", summary.SessionID)
		fmt.Printf("Duration:  %s\n", internal.FormatTime(summary.Duration))
		fmt.Printf("Events:    %d\n", summary.ItemCount)
		fmt.Printf("  messages:        %d\n", summary.Messages)
		fmt.Printf("  tool calls:      %d\n", summary.ToolCalls)
		fmt.Printf("  tool results:    %d\n", summary.ToolResults)
		fmt.Printf("  pipeline stages: %d\n", summary.Stages)
		fmt.Printf("Files:     %d\n", len(summary.Files))
		for _, path := range summary.Files {
			fmt.Printf("  %s\n", path)
		}
		return nil
	},
}

type sessionSummary struct {
	SessionID   string   `json:"session_id"`
	Duration    int64    `json:"duration"`
	ItemCount   int      `json:"item_count"`
	Messages    int      `json:"messages"`
	ToolCalls   int      `json:"tool_calls"`
	ToolResults int      `json:"tool_results"`
	Stages      int      `json:"stages"`
	Files       []string `json:"files"`
}

func summarize(session *internal.RecordedSession) sessionSummary {
	summary := sessionSummary{
		SessionID: session.SessionID,
		Duration:  session.Duration,
		ItemCount: len(session.Items),
	}
	for _, item := range session.Items {
		switch item.Kind {
		case internal.KindMessage:
			summary.Messages++
		case internal.KindToolCall:
			summary.ToolCalls++
		case internal.KindToolResult:
			summary.ToolResults++
		case internal.KindPipelineStage:
			summary.Stages++
		}
	}
	// Final file set, superseded snapshots collapsed
	for _, file := range internal.FilesUpTo(session, session.Duration) {
		summary.Files = append(summary.Files, file.Path)
	}
	return summary
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Inspect a payload file instead of a catalog entry")
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format (text, json)")
}
