package export

import (
	"io"

	"github.com/iksnae/chatgpt-export/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports conversations in YAML format
type YAMLExporter struct{}

// Export writes the conversation as one YAML document
func (e *YAMLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(conv)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
