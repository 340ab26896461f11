package internal

import "sync"

// ResultCorrelator matches asynchronous tool results back to the calls that
// spawned them. The router records interesting call IDs as they cross the
// playhead; when the matching result crosses, the correlator yields exactly
// one match and forgets the ID so an unrelated later result cannot
// re-trigger it.
type ResultCorrelator struct {
	mu                sync.Mutex
	pendingPlanCallID string
	pendingValidation map[string]string // call ID -> validation kind
}

// NewResultCorrelator creates an empty correlator
func NewResultCorrelator() *ResultCorrelator {
	return &ResultCorrelator{pendingValidation: make(map[string]string)}
}

// TrackPlanCall remembers a planArchitecture call awaiting its summary
func (c *ResultCorrelator) TrackPlanCall(callID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingPlanCallID = callID
}

// TrackValidationCall remembers a validation call awaiting its outcome
func (c *ResultCorrelator) TrackValidationCall(callID, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingValidation[callID] = kind
}

// MatchPlan reports whether callID is the pending plan call. A match clears
// the pending ID.
func (c *ResultCorrelator) MatchPlan(callID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if callID == "" || callID != c.pendingPlanCallID {
		return false
	}
	c.pendingPlanCallID = ""
	return true
}

// MatchValidation reports whether callID is a pending validation call and
// returns its kind. A match removes the ID from the pending set.
func (c *ResultCorrelator) MatchValidation(callID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kind, ok := c.pendingValidation[callID]
	if !ok {
		return "", false
	}
	delete(c.pendingValidation, callID)
	return kind, true
}

// Reset forgets all pending calls
func (c *ResultCorrelator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingPlanCallID = ""
	c.pendingValidation = make(map[string]string)
}
