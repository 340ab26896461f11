package internal

import (
	"fmt"
	"sort"
)

// The projectors are pure functions of (session, playhead). They are safe to
// call on every render and yield value-equal results for identical inputs, so
// callers may memoize on the playhead.

// visibleItems returns items of one kind whose timestamps fall inside the
// session window and at or before the playhead, ordered by timestamp.
// Insertion order of the recorded payload is irrelevant.
func visibleItems(session *RecordedSession, currentTime int64, kind string) []TimelineItem {
	if session == nil {
		return nil
	}
	cutoff := session.StartTime + currentTime
	items := make([]TimelineItem, 0)
	for _, item := range session.Items {
		if item.Kind != kind {
			continue
		}
		if item.Timestamp < session.StartTime || item.Timestamp > session.StartTime+session.Duration {
			// Malformed timestamps are never visible, never an error
			continue
		}
		if item.Timestamp <= cutoff {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp < items[j].Timestamp
	})
	return items
}

// MessagesUpTo returns all messages visible at the playhead. Items missing a
// role or content are treated as malformed and silently dropped.
func MessagesUpTo(session *RecordedSession, currentTime int64) []ReplayMessage {
	items := visibleItems(session, currentTime, KindMessage)
	messages := make([]ReplayMessage, 0, len(items))
	for _, item := range items {
		if item.Role == "" || item.Content == nil {
			continue
		}
		messages = append(messages, ReplayMessage{
			ID:        item.ID,
			Role:      item.Role,
			Content:   *item.Content,
			Timestamp: item.Timestamp,
		})
	}
	return messages
}

// ToolCallsUpTo returns all tool calls visible at the playhead. Items missing
// a name or args are silently dropped.
func ToolCallsUpTo(session *RecordedSession, currentTime int64) []ReplayToolCall {
	items := visibleItems(session, currentTime, KindToolCall)
	calls := make([]ReplayToolCall, 0, len(items))
	for _, item := range items {
		if item.Name == "" || item.Args == nil {
			continue
		}
		calls = append(calls, ReplayToolCall{
			ID:        item.ID,
			Name:      item.Name,
			Args:      string(item.Args),
			Timestamp: item.Timestamp,
		})
	}
	return calls
}

// ToolResultsUpTo returns all tool results visible at the playhead. Items
// missing a result payload are silently dropped. When a result correlates
// with a call, its visible ID is re-derived as "result-<callID>" so consumers
// can join calls and results by identifier alone.
func ToolResultsUpTo(session *RecordedSession, currentTime int64) []ReplayToolResult {
	items := visibleItems(session, currentTime, KindToolResult)
	results := make([]ReplayToolResult, 0, len(items))
	for _, item := range items {
		if item.Payload == nil {
			continue
		}
		id := item.ID
		if item.CallID != "" {
			id = "result-" + item.CallID
		}
		results = append(results, ReplayToolResult{
			ID:        id,
			CallID:    item.CallID,
			Payload:   string(item.Payload),
			Timestamp: item.Timestamp,
		})
	}
	return results
}

// PipelineStagesUpTo returns all pipeline stage events visible at the playhead
func PipelineStagesUpTo(session *RecordedSession, currentTime int64) []ReplayStage {
	items := visibleItems(session, currentTime, KindPipelineStage)
	stages := make([]ReplayStage, 0, len(items))
	for _, item := range items {
		stages = append(stages, ReplayStage{
			ID:        item.ID,
			StageType: item.StageType,
			Status:    item.Status,
			Data:      string(item.Data),
			Timestamp: item.Timestamp,
		})
	}
	return stages
}

// FilesUpTo returns the files visible at the playhead with snapshot
// timestamps stripped. A later snapshot of the same path supersedes an
// earlier one; each path appears once, in order of first write.
func FilesUpTo(session *RecordedSession, currentTime int64) []ReplayFile {
	if session == nil {
		return nil
	}
	cutoff := session.StartTime + currentTime
	snapshots := make([]FileSnapshot, 0)
	for _, snap := range session.Files {
		if snap.Timestamp < session.StartTime || snap.Timestamp > session.StartTime+session.Duration {
			continue
		}
		if snap.Timestamp <= cutoff {
			snapshots = append(snapshots, snap)
		}
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp < snapshots[j].Timestamp
	})

	files := make([]ReplayFile, 0, len(snapshots))
	index := make(map[string]int)
	for _, snap := range snapshots {
		if i, ok := index[snap.Path]; ok {
			files[i].Content = snap.Content
			continue
		}
		index[snap.Path] = len(files)
		files = append(files, ReplayFile{Path: snap.Path, Content: snap.Content})
	}
	return files
}

// ProjectView projects the whole session at one playhead
func ProjectView(session *RecordedSession, currentTime int64) *ReplayView {
	view := &ReplayView{
		Playhead:    currentTime,
		Messages:    MessagesUpTo(session, currentTime),
		ToolCalls:   ToolCallsUpTo(session, currentTime),
		ToolResults: ToolResultsUpTo(session, currentTime),
		Stages:      PipelineStagesUpTo(session, currentTime),
		Files:       FilesUpTo(session, currentTime),
	}
	if session != nil {
		view.SessionID = session.SessionID
		view.Duration = session.Duration
	}
	return view
}

// FormatTime renders milliseconds as MM:SS. Minutes may exceed 59; there is
// no hours component.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
