package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/session-replay/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	durationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Long:  `List all recorded generation sessions in the recordings catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := catalogPath()
		if err != nil {
			return err
		}

		db, err := internal.OpenDatabase(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open recordings catalog: %w", err)
		}
		defer func() { _ = db.Close() }()

		recordings, err := internal.NewCatalog(db).List()
		if err != nil {
			return fmt.Errorf("failed to list recordings: %w", err)
		}

		displayRecordings(recordings)
		return nil
	},
}

func displayRecordings(recordings []internal.RecordingInfo) {
	if len(recordings) == 0 {
		fmt.Println(headerStyle.Render("No recordings found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d recording(s)", len(recordings)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Recorded")+"\t"+titleStyle.Render("Duration")+"\t"+titleStyle.Render("Events")+"\t"+titleStyle.Render("Files")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, rec := range recordings {
		// Short ID for readability
		shortID := rec.SessionID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		id := idStyle.Render(shortID)

		recorded := dateStyle.Render("—")
		if rec.RecordedAt > 0 {
			t := time.UnixMilli(rec.RecordedAt)
			diff := time.Since(t)
			switch {
			case diff < 24*time.Hour:
				recorded = dateStyle.Render(t.Format("Today 15:04"))
			case diff < 7*24*time.Hour:
				recorded = dateStyle.Render(t.Format("Mon 15:04"))
			default:
				recorded = dateStyle.Render(t.Format("2006-01-02"))
			}
		}

		duration := durationStyle.Render(internal.FormatTime(rec.Duration))
		events := countStyle.Render(strconv.Itoa(rec.ItemCount))
		files := countStyle.Render(strconv.Itoa(rec.FileCount))

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", id, recorded, duration, events, files)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: Use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(recordings[0].SessionID) +
		idStyle.Render(") with `session-replay play <id>`"))
}

func init() {
	rootCmd.AddCommand(listCmd)
}
