package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/chatgpt-export/internal"
)

// JSONLExporter exports conversations as JSONL, one message per line
type JSONLExporter struct{}

type jsonlLine struct {
	ConversationID string     `json:"conversation_id"`
	ID             string     `json:"id"`
	Role           string     `json:"role"`
	Content        string     `json:"content"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
	Model          string     `json:"model,omitempty"`
}

// Export writes each message on its own line
func (e *JSONLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, msg := range conv.Messages {
		line := jsonlLine{
			ConversationID: conv.ID,
			ID:             msg.ID,
			Role:           string(msg.Role),
			Content:        msg.Content,
			Timestamp:      msg.Timestamp,
			Model:          msg.Model,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
