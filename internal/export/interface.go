package export

import (
	"fmt"
	"io"
	"time"

	"github.com/iksnae/chatgpt-export/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(conv *internal.Conversation, w io.Writer) error
	Extension() string
}

// Formats lists the accepted format names
var Formats = []string{"md", "json", "jsonl", "yaml"}

// NewExporter creates a new exporter based on format. loc sets the timezone
// of markdown dates; nil means UTC.
func NewExporter(format string, loc *time.Location) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{Location: loc}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}
