package export

import (
	"io"
	"time"

	"github.com/iksnae/chatgpt-export/internal"
)

// MarkdownExporter exports conversations in Markdown format
type MarkdownExporter struct {
	Location *time.Location
}

// Export writes the conversation's markdown rendering
func (e *MarkdownExporter) Export(conv *internal.Conversation, w io.Writer) error {
	_, err := io.WriteString(w, conv.MarkdownIn(e.Location))
	return err
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
