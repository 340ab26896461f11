package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/session-replay/internal"
	"github.com/spf13/cobra"
)

var (
	playFile     string
	playSeek     int64
	playTemplate bool
)

var (
	// Styles for play command
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	hudDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	overlayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	victoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [session-id]",
	Short: "Replay a recorded session in the terminal",
	Long: `Replay a recorded generation session at 10x speed.

The playhead advances in real time while a HUD shows the running stats.
Notable moments (the architecture plan, block requests, validation results,
file milestones) surface as timed overlays, each shown for a minimum legible
duration no matter how fast the underlying events crossed the playhead.

Examples:
  session-replay play abc123                  # Replay a catalog entry
  session-replay play --file payload.json     # Replay a payload file
  session-replay play abc123 --seek 30000     # Start 30 seconds in`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sessionID string
		if len(args) > 0 {
			sessionID = args[0]
		}
		if sessionID == "" && playFile == "" {
			return fmt.Errorf("a session ID or --file is required")
		}

		session, err := loadSession(sessionID, playFile)
		if err != nil {
			return err
		}

		return runReplay(session)
	},
}

func runReplay(session *internal.RecordedSession) error {
	store := internal.NewTimelineStore()
	store.Enter(session.SessionID, session)
	if playSeek > 0 {
		store.SeekTo(playSeek)
	}

	scheduler := internal.NewOverlayScheduler()
	scheduler.SetDisplayHandler(renderOverlay)
	router := internal.NewPresentationRouter(internal.RouterConfig{TemplateInput: playTemplate}, scheduler)

	clock := internal.NewPlaybackClock(store)
	clock.SetTickHandler(func(currentTime int64) {
		router.ObserveToolCalls(internal.ToolCallsUpTo(session, currentTime))
		router.ObserveToolResults(internal.ToolResultsUpTo(session, currentTime))
		renderHUD(store, router)
	})

	fmt.Printf("Replaying %s (%s recorded, 10x speed)\n\n",
		session.SessionID, internal.FormatTime(session.Duration))

	router.Activate()
	clock.Start()

	for store.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	clock.Stop()

	// The most recent message decides the terminal state
	messages := internal.MessagesUpTo(session, store.CurrentTime())
	var last *internal.ReplayMessage
	if len(messages) > 0 {
		last = &messages[len(messages)-1]
	}
	router.Deactivate(last)

	fmt.Println()
	renderFinal(router)
	return nil
}

func renderHUD(store *internal.TimelineStore, router *internal.PresentationRouter) {
	state := router.State()
	line := fmt.Sprintf("%s %s  %s",
		hudStyle.Render(internal.FormatTime(store.CurrentTime())),
		hudDimStyle.Render("/ "+internal.FormatTime(store.Duration())),
		hudDimStyle.Render(fmt.Sprintf("combo %d · tools %d · files %d",
			state.ComboCount, state.Stats.ToolCalls, state.FilesCreated)))
	fmt.Printf("\r%s", line)
}

func renderOverlay(entry *internal.OverlayEntry) {
	if entry == nil {
		return
	}
	var text string
	switch entry.Kind {
	case internal.OverlayTemplateLoading:
		text = "Loading template..."
	case internal.OverlayPlanning:
		text = fmt.Sprintf("Architecture plan: %d models, %d endpoints, %d components",
			entry.Plan.Models, entry.Plan.Endpoints, entry.Plan.Components)
	case internal.OverlayBlockRequest:
		text = fmt.Sprintf("Requesting block: %s", entry.BlockName)
	case internal.OverlayComboMilestone:
		text = fmt.Sprintf("%d files created!", entry.ComboCount)
	case internal.OverlayValidationLoading:
		text = fmt.Sprintf("Validating %s...", entry.ValidationKind)
	case internal.OverlayValidationResult:
		if entry.Passed {
			text = fmt.Sprintf("Validation passed (%s)", entry.ValidationKind)
		} else {
			text = fmt.Sprintf("Validation failed (%s): %d error(s), iteration %d",
				entry.ValidationKind, entry.ErrorCount, entry.Iteration)
		}
	default:
		return
	}
	fmt.Printf("\n%s\n", overlayStyle.Render(text))
}

func renderFinal(router *internal.PresentationRouter) {
	state := router.State()
	switch router.Phase() {
	case internal.PhaseErrorKO:
		fmt.Println(errorStyle.Render("Generation failed"))
	default:
		fmt.Println(victoryStyle.Render(fmt.Sprintf(
			"Complete · %d tool calls · %d files · %d%% success",
			state.Stats.ToolCalls, state.Stats.FilesCreated, state.Stats.SuccessRate)))
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playFile, "file", "", "Replay a payload file instead of a catalog entry")
	playCmd.Flags().Int64Var(&playSeek, "seek", 0, "Start playhead position in milliseconds")
	playCmd.Flags().BoolVar(&playTemplate, "template", false, "Treat the session as template-based input")
}
