package internal

import (
	"encoding/json"
	"strings"
)

// Content is the closed set of content encodings a message can carry.
// Each variant knows how to resolve itself to text.
type Content interface {
	Resolve() string
	content()
}

// TextContent is content given as a plain string
type TextContent string

// PartsContent is content given as a list of parts, joined with newlines
type PartsContent []Part

// FieldTextContent is content given as an object with a text field
type FieldTextContent string

// NoContent is any encoding that carries no readable text
type NoContent struct{}

// Part is one element of a parts list. Parts that hold nothing readable
// (nulls, nested lists, objects without text) are dropped when resolving.
type Part struct {
	Text  string
	Valid bool
}

func (TextContent) content()      {}
func (PartsContent) content()     {}
func (FieldTextContent) content() {}
func (NoContent) content()        {}

// Resolve implements Content
func (c TextContent) Resolve() string {
	return string(c)
}

// Resolve implements Content
func (c PartsContent) Resolve() string {
	texts := make([]string, 0, len(c))
	for _, p := range c {
		if p.Valid {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// Resolve implements Content
func (c FieldTextContent) Resolve() string {
	return string(c)
}

// Resolve implements Content
func (NoContent) Resolve() string {
	return ""
}

// DecodeContent classifies a raw content value. Precedence for objects is a
// non-empty parts list first, then a text field.
func DecodeContent(raw json.RawMessage) Content {
	switch kindOf(raw) {
	case kindString:
		s, _ := looseText(raw)
		return TextContent(s)
	case kindObject:
		var obj OrderedObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return NoContent{}
		}
		if parts, ok := decodeParts(obj); ok && len(parts) > 0 {
			return parts
		}
		if text, ok := obj.Get("text"); ok {
			if s, ok := looseText(text); ok {
				return FieldTextContent(s)
			}
		}
	}
	return NoContent{}
}

// DecodeFlatContent classifies content from a flat messages list, where a
// text field wins over parts and only the first part is used.
func DecodeFlatContent(raw json.RawMessage) Content {
	switch kindOf(raw) {
	case kindString:
		s, _ := looseText(raw)
		return TextContent(s)
	case kindObject:
		var obj OrderedObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return NoContent{}
		}
		if text, ok := obj.Get("text"); ok {
			if s, ok := looseText(text); ok {
				return FieldTextContent(s)
			}
			return NoContent{}
		}
		if parts, ok := decodeParts(obj); ok && len(parts) > 0 {
			return parts[:1]
		}
	}
	return NoContent{}
}

func decodeParts(obj OrderedObject) (PartsContent, bool) {
	raw, ok := obj.Get("parts")
	if !ok || kindOf(raw) != kindArray {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	parts := make(PartsContent, 0, len(items))
	for _, item := range items {
		parts = append(parts, decodePart(item))
	}
	return parts, true
}

// decodePart reads a string part verbatim, or an object part via its text
// field and then its content field.
func decodePart(raw json.RawMessage) Part {
	switch kindOf(raw) {
	case kindString:
		s, _ := looseText(raw)
		return Part{Text: s, Valid: true}
	case kindObject:
		var obj OrderedObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Part{}
		}
		for _, key := range []string{"text", "content"} {
			value, ok := obj.Get(key)
			if !ok {
				continue
			}
			if s, ok := looseText(value); ok {
				return Part{Text: s, Valid: true}
			}
			if kind := kindOf(value); kind == kindObject || kind == kindArray {
				return Part{Text: string(value), Valid: true}
			}
			return Part{}
		}
	}
	return Part{}
}

// ResolveContent returns the text of a raw content value, or "" when it
// resolves to nothing but whitespace.
func ResolveContent(raw json.RawMessage) string {
	text := DecodeContent(raw).Resolve()
	if IsBlank(text) {
		return ""
	}
	return text
}

// IsBlank reports whether text is empty once surrounding whitespace is trimmed
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
