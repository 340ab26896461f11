package internal

import "encoding/json"

// Timeline item kinds as they appear in a recorded payload
const (
	KindMessage       = "message"
	KindToolCall      = "tool_call"
	KindToolResult    = "tool_result"
	KindPipelineStage = "pipeline_stage"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// TimelineItem is a single recorded event. The payload stores all item kinds
// in one flat shape discriminated by Kind; fields that do not apply to a kind
// are simply absent.
type TimelineItem struct {
	ID        string `json:"id,omitempty"`
	Kind      string `json:"kind"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds

	// message
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content,omitempty"`

	// tool_call
	Name string          `json:"name,omitempty"`
	Args json.RawMessage `json:"args,omitempty"`

	// tool_result
	CallID  string          `json:"correlatesWithCallId,omitempty"`
	Payload json.RawMessage `json:"resultPayload,omitempty"`

	// pipeline_stage
	StageType string          `json:"stageType,omitempty"`
	Status    string          `json:"status,omitempty"` // "started", "completed", "failed"
	Data      json.RawMessage `json:"data,omitempty"`
}

// FileSnapshot is one file write observed during the original run. Later
// snapshots for the same path supersede earlier ones once both are visible.
type FileSnapshot struct {
	Path      string `json:"path"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
	Content   string `json:"content"`
}

// ReplayPayload is the wire format delivered once per enter-replay call
type ReplayPayload struct {
	SessionStartTime int64          `json:"sessionStartTime"` // epoch milliseconds
	Duration         int64          `json:"duration"`         // milliseconds
	TimelineItems    []TimelineItem `json:"timelineItems"`
	Files            []FileSnapshot `json:"files"`
}

// RecordedSession is the immutable session handed to the timeline store
type RecordedSession struct {
	SessionID string         `json:"session_id"`
	StartTime int64          `json:"session_start_time"` // epoch milliseconds
	Duration  int64          `json:"duration"`           // milliseconds
	Items     []TimelineItem `json:"items"`
	Files     []FileSnapshot `json:"files"`
}

// ReplayMessage is a message visible at the current playhead
type ReplayMessage struct {
	ID        string `json:"id" yaml:"id"`
	Role      string `json:"role" yaml:"role"`
	Content   string `json:"content" yaml:"content"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// ReplayToolCall is a tool call visible at the current playhead. Args holds
// the call's argument JSON as recorded.
type ReplayToolCall struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Args      string `json:"args" yaml:"args"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// ReplayToolResult is a tool result visible at the current playhead. When the
// result correlates with a call its ID is re-derived as "result-<callID>" so
// consumers can join calls and results without a lookup table.
type ReplayToolResult struct {
	ID        string `json:"id" yaml:"id"`
	CallID    string `json:"call_id,omitempty" yaml:"call_id,omitempty"`
	Payload   string `json:"payload" yaml:"payload"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// ReplayStage is a pipeline stage event visible at the current playhead
type ReplayStage struct {
	ID        string `json:"id" yaml:"id"`
	StageType string `json:"stage_type" yaml:"stage_type"`
	Status    string `json:"status" yaml:"status"`
	Data      string `json:"data,omitempty" yaml:"data,omitempty"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// ReplayFile is a file visible at the current playhead. The snapshot
// timestamp is a visibility key only, not part of the file identity, so it is
// stripped from the projected view.
type ReplayFile struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
}

// ReplayView is a full projection of a session at one playhead, the unit the
// exporters and the websocket broadcaster work with.
type ReplayView struct {
	SessionID   string             `json:"session_id" yaml:"session_id"`
	Playhead    int64              `json:"playhead" yaml:"playhead"`
	Duration    int64              `json:"duration" yaml:"duration"`
	Messages    []ReplayMessage    `json:"messages" yaml:"messages"`
	ToolCalls   []ReplayToolCall   `json:"tool_calls" yaml:"tool_calls"`
	ToolResults []ReplayToolResult `json:"tool_results" yaml:"tool_results"`
	Stages      []ReplayStage      `json:"stages" yaml:"stages"`
	Files       []ReplayFile       `json:"files" yaml:"files"`
}
