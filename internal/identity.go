package internal

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
)

// fallbackNamespace scopes the name-based UUIDs minted for records that carry
// no id of their own
var fallbackNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://chat.openai.com/conversation-export"))

// canonicalJSON re-encodes a value with object keys sorted and insignificant
// whitespace removed. Numbers keep their literal text.
func canonicalJSON(raw json.RawMessage) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// fallbackID derives a conversation id from the record's canonical JSON.
// Records that differ only in key order or whitespace share an id.
func fallbackID(raw json.RawMessage) string {
	data, err := canonicalJSON(raw)
	if err != nil {
		data = raw
	}
	return "conv_" + uuid.NewSHA1(fallbackNamespace, data).String()
}

// ContentHash fingerprints what a reader sees of a conversation: its title,
// grouping and messages. The archive uses it to skip unchanged rows.
func ContentHash(conv *Conversation) string {
	h := sha256.New()
	h.Write([]byte(conv.Title))
	h.Write([]byte{0})
	h.Write([]byte(conv.ProjectID))
	h.Write([]byte{0})
	for _, msg := range conv.Messages {
		h.Write([]byte(msg.Role))
		h.Write([]byte{0})
		h.Write([]byte(msg.Content))
		h.Write([]byte{0})
		if msg.Timestamp != nil {
			h.Write([]byte(msg.Timestamp.Format("2006-01-02T15:04:05.999999999Z07:00")))
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
