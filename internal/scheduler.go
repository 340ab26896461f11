package internal

import (
	"encoding/json"
	"sync"
	"time"
)

// Overlay kinds
const (
	OverlayTemplateLoading   = "template-loading"
	OverlayPlanning          = "planning"
	OverlayBlockRequest      = "block-request"
	OverlayComboMilestone    = "combo-milestone"
	OverlayValidationLoading = "validation-loading"
	OverlayValidationResult  = "validation-result"
)

// Validation kinds carried by validation overlays
const (
	ValidationPrisma     = "prisma"
	ValidationTypeScript = "typescript"
)

// Minimum dwell times. Planning is deliberately the longest: the plan summary
// is the single most important moment for a viewer to absorb.
const (
	templateLoadingDwell   = 2000 * time.Millisecond
	planningDwell          = 5000 * time.Millisecond
	blockRequestDwell      = 3000 * time.Millisecond
	comboMilestoneDwell    = 1000 * time.Millisecond
	validationLoadingDwell = 3000 * time.Millisecond
	validationPassDwell    = 2000 * time.Millisecond
	validationFailDwell    = 3000 * time.Millisecond
)

// PlanSummary is the parsed outline of a planArchitecture result
type PlanSummary struct {
	Models     int `json:"models"`
	Endpoints  int `json:"endpoints"`
	Components int `json:"components"`
}

// OverlayEntry is one queued full-screen display. Kind selects which of the
// optional fields are meaningful.
type OverlayEntry struct {
	Kind        string
	MinDuration time.Duration

	Plan           PlanSummary // planning
	BlockName      string      // block-request
	ComboCount     int         // combo-milestone
	ValidationKind string      // validation-loading, validation-result
	Passed         bool        // validation-result
	ErrorCount     int         // validation-result
	Iteration      int         // validation-result
}

// NewTemplateLoadingOverlay signals that template-based input is being loaded
func NewTemplateLoadingOverlay() OverlayEntry {
	return OverlayEntry{Kind: OverlayTemplateLoading, MinDuration: templateLoadingDwell}
}

// NewPlanningOverlay shows the architecture plan summary
func NewPlanningOverlay(plan PlanSummary) OverlayEntry {
	return OverlayEntry{Kind: OverlayPlanning, MinDuration: planningDwell, Plan: plan}
}

// NewBlockRequestOverlay shows a requested building block
func NewBlockRequestOverlay(name string) OverlayEntry {
	return OverlayEntry{Kind: OverlayBlockRequest, MinDuration: blockRequestDwell, BlockName: name}
}

// NewComboMilestoneOverlay celebrates a file-creation milestone
func NewComboMilestoneOverlay(count int) OverlayEntry {
	return OverlayEntry{Kind: OverlayComboMilestone, MinDuration: comboMilestoneDwell, ComboCount: count}
}

// NewValidationLoadingOverlay signals a validation pass in flight
func NewValidationLoadingOverlay(kind string) OverlayEntry {
	return OverlayEntry{Kind: OverlayValidationLoading, MinDuration: validationLoadingDwell, ValidationKind: kind}
}

// NewValidationResultOverlay shows a validation outcome. Failures dwell
// longer than passes.
func NewValidationResultOverlay(kind string, passed bool, errorCount, iteration int) OverlayEntry {
	dwell := validationPassDwell
	if !passed {
		dwell = validationFailDwell
	}
	return OverlayEntry{
		Kind:           OverlayValidationResult,
		MinDuration:    dwell,
		ValidationKind: kind,
		Passed:         passed,
		ErrorCount:     errorCount,
		Iteration:      iteration,
	}
}

// MarshalJSON renders the entry for renderers, with the dwell time in
// milliseconds and kind-specific fields only where meaningful
func (e OverlayEntry) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind           string       `json:"kind"`
		MinDurationMs  int64        `json:"min_duration_ms"`
		Plan           *PlanSummary `json:"plan,omitempty"`
		BlockName      string       `json:"block_name,omitempty"`
		ComboCount     int          `json:"combo_count,omitempty"`
		ValidationKind string       `json:"validation_kind,omitempty"`
		Passed         *bool        `json:"passed,omitempty"`
		ErrorCount     int          `json:"error_count,omitempty"`
		Iteration      int          `json:"iteration,omitempty"`
	}
	w := wire{
		Kind:           e.Kind,
		MinDurationMs:  e.MinDuration.Milliseconds(),
		BlockName:      e.BlockName,
		ComboCount:     e.ComboCount,
		ValidationKind: e.ValidationKind,
		ErrorCount:     e.ErrorCount,
		Iteration:      e.Iteration,
	}
	if e.Kind == OverlayPlanning {
		plan := e.Plan
		w.Plan = &plan
	}
	if e.Kind == OverlayValidationResult {
		passed := e.Passed
		w.Passed = &passed
	}
	return json.Marshal(w)
}

// OverlayScheduler drains a strict FIFO queue one entry at a time, each shown
// for at least its minimum duration before the next entry (or the default HUD
// state) takes over. Events can cross the playhead arbitrarily fast when
// scrubbing; the queue decouples arrival rate from legible display time.
type OverlayScheduler struct {
	mu      sync.Mutex
	queue   []OverlayEntry
	current *OverlayEntry
	timer   *time.Timer
	gen     uint64

	onDisplay func(entry *OverlayEntry)
}

// NewOverlayScheduler creates an idle scheduler
func NewOverlayScheduler() *OverlayScheduler {
	return &OverlayScheduler{}
}

// SetDisplayHandler registers the renderer callback. A nil entry means the
// scheduler went idle and the default HUD should be shown.
func (s *OverlayScheduler) SetDisplayHandler(fn func(entry *OverlayEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDisplay = fn
}

// Current returns the entry being shown, or nil when idle
func (s *OverlayScheduler) Current() *OverlayEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	entry := *s.current
	return &entry
}

// Pending returns the number of queued entries not yet shown
func (s *OverlayScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Enqueue appends an entry. A new entry never preempts the current display;
// if the scheduler is idle, draining begins immediately.
func (s *OverlayScheduler) Enqueue(entry OverlayEntry) {
	s.mu.Lock()
	s.queue = append(s.queue, entry)
	if s.current != nil || s.timer != nil {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.drain()
}

// Reset clears the queue, cancels any pending dwell timer and returns to
// idle. Called on every session boundary so a new session never inherits a
// stale overlay mid-display.
func (s *OverlayScheduler) Reset() {
	s.mu.Lock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.queue = nil
	s.current = nil
	fn := s.onDisplay
	s.mu.Unlock()
	if fn != nil {
		fn(nil)
	}
}

// drain is the self-recursive pump: pop the head, show it, and schedule the
// next drain after its minimum dwell. The generation counter makes a timer
// that fires after Reset a no-op.
func (s *OverlayScheduler) drain() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.current = nil
		s.timer = nil
		fn := s.onDisplay
		s.mu.Unlock()
		if fn != nil {
			fn(nil)
		}
		return
	}

	head := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &head
	gen := s.gen
	s.timer = time.AfterFunc(head.MinDuration, func() {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		s.drain()
	})
	fn := s.onDisplay
	s.mu.Unlock()
	if fn != nil {
		entry := head
		fn(&entry)
	}
}
