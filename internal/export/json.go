package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/chatgpt-export/internal"
)

// JSONExporter exports conversations as pretty-printed JSON
type JSONExporter struct{}

// Export writes the whole conversation as one JSON document
func (e *JSONExporter) Export(conv *internal.Conversation, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(conv)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
