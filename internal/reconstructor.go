package internal

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ResolveMessages rebuilds the ordered message list of one record. A
// non-empty mapping wins; a flat messages list is the fallback. Zero
// messages is not an error here.
func ResolveMessages(rec *RawRecord) ([]Message, error) {
	arena, err := recordArena(rec)
	if err != nil {
		return nil, err
	}
	return resolveRecord(rec, arena)
}

func resolveRecord(rec *RawRecord, arena *NodeArena) ([]Message, error) {
	if arena != nil && arena.Len() > 0 {
		return resolveMapping(arena), nil
	}

	if kindOf(rec.Messages) == kindArray {
		return resolveFlat(rec.Messages)
	}
	return nil, nil
}

// recordArena returns the record's mapping as an arena, or nil when the
// mapping is absent or empty. A mapping of the wrong shape is an error.
func recordArena(rec *RawRecord) (*NodeArena, error) {
	switch kind := kindOf(rec.Mapping); kind {
	case kindInvalid, kindNull:
		return nil, nil
	case kindObject:
		return BuildNodeArena(rec.Mapping)
	default:
		if !truthy(rec.Mapping) {
			return nil, nil
		}
		return nil, fmt.Errorf("mapping is not an object (got %s)", kind)
	}
}

type timedMessage struct {
	msg     Message
	sortKey float64
}

// resolveMapping collects message-bearing nodes and orders them by create
// time. Untimed nodes sort as time zero; document order breaks ties.
func resolveMapping(arena *NodeArena) []Message {
	candidates := make([]timedMessage, 0, arena.Len())

	for _, node := range arena.Nodes() {
		raw := node.Message
		if raw == nil {
			continue
		}

		role := ParseRole(raw.Author.Role)
		text := ResolveContent(raw.Content)
		if text == "" {
			if role == RoleSystem || role == RoleTool {
				LogDebug("Dropping metadata-only %s node %s", role, node.ID)
			} else {
				LogDebug("Dropping empty message node %s", node.ID)
			}
			continue
		}

		msg := Message{
			Role:      role,
			Content:   text,
			Timestamp: raw.CreateTime.Time,
		}
		if raw.ID.Valid() {
			msg.ID = raw.ID.Value
		}
		if raw.ModelSlug.Valid() {
			msg.Model = raw.ModelSlug.Value
		}

		candidates = append(candidates, timedMessage{msg: msg, sortKey: raw.CreateTime.Seconds})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sortKey < candidates[j].sortKey
	})

	messages := make([]Message, 0, len(candidates))
	for i, c := range candidates {
		if c.msg.ID == "" {
			c.msg.ID = positionalID(i)
		}
		messages = append(messages, c.msg)
	}
	return messages
}

// resolveFlat reads a flat messages list in order. Timestamps are not
// parsed in this shape.
func resolveFlat(list json.RawMessage) ([]Message, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(list, &entries); err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}

	var messages []Message
	for i, entry := range entries {
		if kindOf(entry) != kindObject {
			LogDebug("Flat message %d is not an object, skipping", i)
			continue
		}
		var raw RawMessage
		if err := json.Unmarshal(entry, &raw); err != nil {
			LogDebug("Failed to decode flat message %d: %v", i, err)
			continue
		}

		text := DecodeFlatContent(raw.Content).Resolve()
		if IsBlank(text) {
			continue
		}

		roleName := raw.Author.Role
		if raw.Role.Present {
			roleName = raw.Role.Value
		}

		msg := Message{
			ID:      positionalID(len(messages)),
			Role:    ParseRole(roleName),
			Content: text,
		}
		if raw.ID.Valid() {
			msg.ID = raw.ID.Value
		}
		if raw.Model.Valid() {
			msg.Model = raw.Model.Value
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func positionalID(i int) string {
	return fmt.Sprintf("msg_%d", i)
}
