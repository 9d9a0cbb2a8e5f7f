package internal

import (
	"encoding/json"
)

// UntitledConversation is the title given to records without one
const UntitledConversation = "Untitled Conversation"

// BuildConversation turns one raw record into a Conversation. Every failure,
// including a record with no resolvable messages, is a *SkipRecordError.
func BuildConversation(index int, raw json.RawMessage) (*Conversation, error) {
	rec, err := ParseRawRecord(index, raw)
	if err != nil {
		return nil, &SkipRecordError{Index: index, Reason: err.Error()}
	}

	arena, err := recordArena(rec)
	if err != nil {
		return nil, &SkipRecordError{Index: index, ConversationID: recordID(rec, nil), Reason: err.Error()}
	}

	conv := &Conversation{
		ID:         recordID(rec, arena),
		Title:      UntitledConversation,
		CreateTime: rec.CreateTime.Time,
		UpdateTime: rec.UpdateTime.Time,
	}
	if rec.Title.Value != "" {
		conv.Title = rec.Title.Value
	}
	if rec.DefaultModel.Valid() {
		conv.Model = rec.DefaultModel.Value
	}
	conv.ProjectID, conv.ProjectName = resolveProject(rec)

	messages, err := resolveRecord(rec, arena)
	if err != nil {
		return nil, &SkipRecordError{Index: index, ConversationID: conv.ID, Reason: err.Error()}
	}
	if len(messages) == 0 {
		return nil, &SkipRecordError{Index: index, ConversationID: conv.ID, Reason: "has no messages"}
	}
	conv.Messages = messages

	return conv, nil
}

// recordID resolves a conversation id: id, conversation_id, uuid, the
// message id of the first mapping node, then a hash of the record.
func recordID(rec *RawRecord, arena *NodeArena) string {
	for _, candidate := range []LooseString{rec.ID, rec.ConversationID, rec.UUID} {
		if candidate.Valid() {
			return candidate.Value
		}
	}
	if arena != nil {
		if first, ok := arena.First(); ok && first.Message != nil && first.Message.ID.Valid() {
			return first.Message.ID.Value
		}
	}
	return fallbackID(rec.raw)
}

// groupingRule is one source of project membership. A rule applies when its
// id field is present (or truthy, for gizmos); an empty id then means the
// conversation is unassigned.
type groupingRule struct {
	id           func(*RawRecord) LooseString
	name         func(*RawRecord) LooseString
	requireTruth bool
	label        func(id string) string
}

var groupingRules = []groupingRule{
	{
		id:    func(r *RawRecord) LooseString { return r.FolderID },
		name:  func(r *RawRecord) LooseString { return r.FolderName },
		label: func(id string) string { return "Project " + idPrefix(id) },
	},
	{
		id:           func(r *RawRecord) LooseString { return r.GizmoID },
		name:         func(r *RawRecord) LooseString { return r.GizmoName },
		requireTruth: true,
		label:        func(id string) string { return "GPT " + idPrefix(id) },
	},
	{
		id:    func(r *RawRecord) LooseString { return r.TemplateID },
		name:  func(r *RawRecord) LooseString { return r.TemplateName },
		label: func(string) string { return "Custom GPT" },
	},
}

func resolveProject(rec *RawRecord) (id, name string) {
	for _, rule := range groupingRules {
		ruleID := rule.id(rec)
		if !ruleID.Present || (rule.requireTruth && !ruleID.Truthy) {
			continue
		}
		if ruleID.Value == "" {
			return "", ""
		}
		if n := rule.name(rec); n.Value != "" {
			return ruleID.Value, n.Value
		}
		return ruleID.Value, rule.label(ruleID.Value)
	}
	return "", ""
}

func idPrefix(id string) string {
	runes := []rune(id)
	if len(runes) > 8 {
		runes = runes[:8]
	}
	return string(runes)
}
