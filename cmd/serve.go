package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/iksnae/session-replay/internal"
	"github.com/spf13/cobra"
)

var (
	serveFile     string
	serveAddr     string
	serveTemplate bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [session-id]",
	Short: "Serve replay frames to a browser renderer",
	Long: `Replay a session while pushing display frames to connected websocket
clients.

Clients connect to ws://<addr>/ws and receive JSON frames:
  session        full projected view at the current playhead, sent on connect
  cursor         playhead updates as the clock advances
  state          HUD run state (combo, stats, recent activity)
  overlay:show   a queued overlay became visible
  overlay:hide   the scheduler went idle, show the default HUD
  phase          terminal state (victory or error-ko) when playback ends

The renderer is a pure consumer: inbound messages are ignored.

Examples:
  session-replay serve abc123                  # Serve on a random port
  session-replay serve abc123 --addr :8787     # Fixed port`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sessionID string
		if len(args) > 0 {
			sessionID = args[0]
		}
		if sessionID == "" && serveFile == "" {
			return fmt.Errorf("a session ID or --file is required")
		}

		session, err := loadSession(sessionID, serveFile)
		if err != nil {
			return err
		}

		return serveReplay(session)
	},
}

func serveReplay(session *internal.RecordedSession) error {
	broadcaster := internal.NewBroadcaster()
	port, err := broadcaster.Start(serveAddr)
	if err != nil {
		return fmt.Errorf("failed to start broadcast server: %w", err)
	}
	fmt.Printf("Serving replay %s on ws://127.0.0.1:%d/ws\n", session.SessionID, port)

	store := internal.NewTimelineStore()
	store.Enter(session.SessionID, session)

	scheduler := internal.NewOverlayScheduler()
	scheduler.SetDisplayHandler(func(entry *internal.OverlayEntry) {
		if entry == nil {
			broadcaster.Broadcast("overlay:hide", nil)
			return
		}
		broadcaster.Broadcast("overlay:show", entry)
	})
	router := internal.NewPresentationRouter(internal.RouterConfig{TemplateInput: serveTemplate}, scheduler)

	clock := internal.NewPlaybackClock(store)
	clock.SetTickHandler(func(currentTime int64) {
		router.ObserveToolCalls(internal.ToolCallsUpTo(session, currentTime))
		router.ObserveToolResults(internal.ToolResultsUpTo(session, currentTime))
		broadcaster.Broadcast("cursor", map[string]int64{
			"current_time": currentTime,
			"duration":     session.Duration,
		})
		broadcaster.Broadcast("state", router.State())
	})

	// Give renderers a moment to connect before the run starts
	broadcaster.Broadcast("session", internal.ProjectView(session, 0))
	router.Activate()
	clock.Start()

	for store.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	clock.Stop()

	messages := internal.MessagesUpTo(session, store.CurrentTime())
	var last *internal.ReplayMessage
	if len(messages) > 0 {
		last = &messages[len(messages)-1]
	}
	router.Deactivate(last)
	broadcaster.Broadcast("phase", map[string]interface{}{
		"phase": router.Phase(),
		"stats": router.State().Stats,
	})

	// Let the last frames flush before shutting down
	time.Sleep(200 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return broadcaster.Stop(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveFile, "file", "", "Serve a payload file instead of a catalog entry")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:0", "Listen address for the websocket server")
	serveCmd.Flags().BoolVar(&serveTemplate, "template", false, "Treat the session as template-based input")
}
