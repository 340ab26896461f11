package internal

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Tool names the router dispatches on
const (
	toolPlanArchitecture     = "planArchitecture"
	toolRequestBlock         = "requestBlock"
	toolValidatePrismaSchema = "validatePrismaSchema"
	toolValidateTypeScript   = "validateTypeScript"
	toolWriteFile            = "writeFile"
)

// HUD phases shown outside of overlays
const (
	PhaseIdle            = "idle"
	PhaseGenerationStart = "generation-start"
	PhaseVictory         = "victory"
	PhaseErrorKO         = "error-ko"
)

const statsTickInterval = 100 * time.Millisecond

const recentActivityLimit = 5

// RouterConfig carries the session capability configuration the router needs
type RouterConfig struct {
	// TemplateInput indicates the session started from template-based input,
	// which gets its own loading overlay on activation.
	TemplateInput bool
}

// RunStats is the HUD stat block
type RunStats struct {
	Duration     int64 `json:"duration"` // milliseconds
	ToolCalls    int   `json:"tool_calls"`
	FilesCreated int   `json:"files_created"`
	SuccessRate  int   `json:"success_rate"`
}

// RunState is the immediate (non-queued) presentation state
type RunState struct {
	ComboCount   int      `json:"combo_count"`
	FilesCreated int      `json:"files_created"`
	Recent       []string `json:"recent"`
	Stats        RunStats `json:"stats"`
}

// PresentationRouter observes newly-crossed events and splits them into
// immediate HUD updates and queued overlays. It is agnostic to provenance:
// the projected slices look the same whether they come from a replay or a
// live generation.
type PresentationRouter struct {
	config     RouterConfig
	scheduler  *OverlayScheduler
	correlator *ResultCorrelator

	mu          sync.Mutex
	active      bool
	phase       string
	state       RunState
	seenCalls   int
	seenResults int
	startedAt   time.Time
	statsCancel func()
}

// NewPresentationRouter creates an inactive router feeding the given scheduler
func NewPresentationRouter(config RouterConfig, scheduler *OverlayScheduler) *PresentationRouter {
	return &PresentationRouter{
		config:     config,
		scheduler:  scheduler,
		correlator: NewResultCorrelator(),
		phase:      PhaseIdle,
	}
}

// Activate transitions inactive -> active: run state is zeroed, the overlay
// queue is cleared (cancelling any in-flight show), and the generation-start
// phase is displayed. Template-based sessions get an immediate
// template-loading overlay. No-op when already active.
func (r *PresentationRouter) Activate() {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return
	}
	r.active = true
	r.phase = PhaseGenerationStart
	r.state = RunState{}
	r.seenCalls = 0
	r.seenResults = 0
	r.startedAt = time.Now()
	r.startStatsTickerLocked()
	r.mu.Unlock()

	r.correlator.Reset()
	r.scheduler.Reset()
	if r.config.TemplateInput {
		r.scheduler.Enqueue(NewTemplateLoadingOverlay())
	}
}

// Deactivate transitions active -> inactive. The most recent message decides
// the terminal phase: a system message signalling an error shows error-ko,
// anything else finalizes the stats and shows victory. No-op when already
// inactive.
func (r *PresentationRouter) Deactivate(lastMessage *ReplayMessage) {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return
	}
	r.active = false
	if r.statsCancel != nil {
		r.statsCancel()
		r.statsCancel = nil
	}
	if isErrorMessage(lastMessage) {
		r.phase = PhaseErrorKO
	} else {
		r.state.Stats.Duration = time.Since(r.startedAt).Milliseconds()
		r.state.Stats.SuccessRate = 100
		r.phase = PhaseVictory
	}
	r.mu.Unlock()

	r.scheduler.Reset()
}

// Active reports whether the router is in its active state
func (r *PresentationRouter) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Phase returns the current HUD phase
func (r *PresentationRouter) Phase() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// State returns a copy of the immediate presentation state
func (r *PresentationRouter) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.state
	state.Recent = append([]string(nil), r.state.Recent...)
	return state
}

// ObserveToolCalls consumes the projected tool-call slice for the current
// render. Only calls beyond the count seen on the previous render are
// processed, so scrubbing forward a long way handles every crossed call once.
func (r *PresentationRouter) ObserveToolCalls(calls []ReplayToolCall) {
	r.mu.Lock()
	if !r.active || len(calls) <= r.seenCalls {
		if len(calls) < r.seenCalls {
			// Playhead moved backwards; resync
			r.seenCalls = len(calls)
		}
		r.mu.Unlock()
		return
	}
	fresh := make([]ReplayToolCall, len(calls)-r.seenCalls)
	copy(fresh, calls[r.seenCalls:])
	r.seenCalls = len(calls)
	r.mu.Unlock()

	for _, call := range fresh {
		r.handleCall(call)
	}
}

func (r *PresentationRouter) handleCall(call ReplayToolCall) {
	r.mu.Lock()
	r.state.ComboCount++
	r.state.Stats.ToolCalls++
	r.state.Recent = append(r.state.Recent, call.Name)
	if len(r.state.Recent) > recentActivityLimit {
		r.state.Recent = r.state.Recent[len(r.state.Recent)-recentActivityLimit:]
	}
	r.mu.Unlock()

	switch call.Name {
	case toolPlanArchitecture:
		// No overlay yet; wait for the plan summary result
		r.correlator.TrackPlanCall(call.ID)

	case toolRequestBlock:
		args := tryParse([]byte(call.Args), blockRequestArgs{})
		if args.BlockName == "" {
			return
		}
		r.scheduler.Enqueue(NewBlockRequestOverlay(args.BlockName))

	case toolValidatePrismaSchema:
		r.correlator.TrackValidationCall(call.ID, ValidationPrisma)
		r.scheduler.Enqueue(NewValidationLoadingOverlay(ValidationPrisma))

	case toolValidateTypeScript:
		r.correlator.TrackValidationCall(call.ID, ValidationTypeScript)
		r.scheduler.Enqueue(NewValidationLoadingOverlay(ValidationTypeScript))

	case toolWriteFile:
		r.mu.Lock()
		r.state.FilesCreated++
		r.state.Stats.FilesCreated++
		count := r.state.FilesCreated
		r.mu.Unlock()
		if isMilestone(count) {
			r.scheduler.Enqueue(NewComboMilestoneOverlay(count))
		}

	default:
		// HUD-only update, no overlay
	}
}

// ObserveToolResults consumes the projected tool-result slice for the current
// render, enriching overlays that were waiting on a correlated result.
func (r *PresentationRouter) ObserveToolResults(results []ReplayToolResult) {
	r.mu.Lock()
	if !r.active || len(results) <= r.seenResults {
		if len(results) < r.seenResults {
			r.seenResults = len(results)
		}
		r.mu.Unlock()
		return
	}
	fresh := make([]ReplayToolResult, len(results)-r.seenResults)
	copy(fresh, results[r.seenResults:])
	r.seenResults = len(results)
	r.mu.Unlock()

	for _, result := range fresh {
		r.handleResult(result)
	}
}

func (r *PresentationRouter) handleResult(result ReplayToolResult) {
	if r.correlator.MatchPlan(result.CallID) {
		r.scheduler.Enqueue(NewPlanningOverlay(parsePlanSummary([]byte(result.Payload))))
		return
	}
	if kind, ok := r.correlator.MatchValidation(result.CallID); ok {
		outcome := tryParse([]byte(result.Payload), validationOutcome{})
		r.scheduler.Enqueue(NewValidationResultOverlay(kind, outcome.Passed, outcome.ErrorCount, outcome.Iteration))
	}
}

// startStatsTickerLocked keeps the HUD duration counting while active,
// independent of the overlay queue. The callback re-checks the active flag at
// fire time so a tick outliving a deactivation mutates nothing.
func (r *PresentationRouter) startStatsTickerLocked() {
	done := make(chan struct{})
	r.statsCancel = func() { close(done) }

	go func() {
		ticker := time.NewTicker(statsTickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.mu.Lock()
				if r.active {
					r.state.Stats.Duration = time.Since(r.startedAt).Milliseconds()
				}
				r.mu.Unlock()
			}
		}
	}()
}

// isMilestone reports whether a file count is worth celebrating: 5, 10, and
// every further multiple of 10.
func isMilestone(count int) bool {
	if count == 5 {
		return true
	}
	return count >= 10 && count%10 == 0
}

// isErrorMessage reports whether a message is a system message whose content
// signals a failed run
func isErrorMessage(msg *ReplayMessage) bool {
	if msg == nil || msg.Role != RoleSystem {
		return false
	}
	content := strings.ToLower(msg.Content)
	return strings.Contains(content, "error") || strings.Contains(content, "failed")
}

type blockRequestArgs struct {
	BlockName string `json:"blockName"`
}

type validationOutcome struct {
	Passed     bool `json:"passed"`
	ErrorCount int  `json:"errorCount"`
	Iteration  int  `json:"iteration"`
}

// parsePlanSummary extracts model/endpoint/component counts from a plan
// payload, tolerating either explicit counts or arrays to be counted.
// Malformed payloads degrade to zeros.
func parsePlanSummary(raw []byte) PlanSummary {
	type planDoc struct {
		Models     []json.RawMessage `json:"models"`
		Endpoints  []json.RawMessage `json:"endpoints"`
		Components []json.RawMessage `json:"components"`
	}
	doc := tryParse(raw, planDoc{})
	if len(doc.Models) > 0 || len(doc.Endpoints) > 0 || len(doc.Components) > 0 {
		return PlanSummary{
			Models:     len(doc.Models),
			Endpoints:  len(doc.Endpoints),
			Components: len(doc.Components),
		}
	}
	return tryParse(raw, PlanSummary{})
}

// tryParse decodes JSON best-effort: malformed input yields the fallback,
// never an error. Every payload parse in the presentation path goes through
// here so a bad payload can never break a render.
func tryParse[T any](raw []byte, fallback T) T {
	if len(raw) == 0 {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback
	}
	return v
}
