package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/session-replay/internal"
)

// MarkdownExporter exports a replay view in Markdown format
type MarkdownExporter struct{}

// Export exports a replay view to Markdown format
func (e *MarkdownExporter) Export(view *internal.ReplayView, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# Replay %s\n\n", view.SessionID)
	_, _ = fmt.Fprintf(w, "**Playhead:** %s / %s  \n",
		internal.FormatTime(view.Playhead), internal.FormatTime(view.Duration))
	_, _ = fmt.Fprintf(w, "**Messages:** %d  \n", len(view.Messages))
	_, _ = fmt.Fprintf(w, "**Tool calls:** %d  \n", len(view.ToolCalls))
	_, _ = fmt.Fprintf(w, "**Files:** %d\n\n", len(view.Files))

	if len(view.Messages) > 0 {
		_, _ = fmt.Fprintf(w, "---\n\n## Messages\n\n")
		for i, msg := range view.Messages {
			content := escapeMarkdown(msg.Content)
			_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", msg.Role, content)
			if i < len(view.Messages)-1 {
				_, _ = fmt.Fprintf(w, "---\n\n")
			}
		}
	}

	if len(view.ToolCalls) > 0 {
		_, _ = fmt.Fprintf(w, "---\n\n## Tool Calls\n\n")
		for _, call := range view.ToolCalls {
			_, _ = fmt.Fprintf(w, "- `%s`\n", call.Name)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	if len(view.Stages) > 0 {
		_, _ = fmt.Fprintf(w, "---\n\n## Pipeline Stages\n\n")
		for _, stage := range view.Stages {
			_, _ = fmt.Fprintf(w, "- %s: %s\n", stage.StageType, stage.Status)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	if len(view.Files) > 0 {
		_, _ = fmt.Fprintf(w, "---\n\n## Files\n\n")
		for _, file := range view.Files {
			_, _ = fmt.Fprintf(w, "### %s\n\n```\n%s\n```\n\n", file.Path, file.Content)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
			continue
		}
		if inCodeBlock {
			result = append(result, line)
			continue
		}
		line = strings.ReplaceAll(line, "*", "\\*")
		line = strings.ReplaceAll(line, "_", "\\_")
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
