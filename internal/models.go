package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// jsonKind is the type of a raw JSON value, judged by its first byte
type jsonKind int

const (
	kindInvalid jsonKind = iota
	kindNull
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

func (k jsonKind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindBool:
		return "bool"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindArray:
		return "list"
	case kindObject:
		return "object"
	default:
		return "invalid"
	}
}

func kindOf(raw json.RawMessage) jsonKind {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return kindInvalid
	}
	switch trimmed[0] {
	case 'n':
		return kindNull
	case 't', 'f':
		return kindBool
	case '"':
		return kindString
	case '[':
		return kindArray
	case '{':
		return kindObject
	default:
		return kindNumber
	}
}

// truthy reports whether a raw value would count as set: not null, not
// false, not zero, not an empty string, list or object.
func truthy(raw json.RawMessage) bool {
	switch kindOf(raw) {
	case kindBool:
		return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("true"))
	case kindNumber:
		f, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64)
		return err == nil && f != 0
	case kindString:
		var s string
		return json.Unmarshal(raw, &s) == nil && s != ""
	case kindArray:
		var items []json.RawMessage
		return json.Unmarshal(raw, &items) == nil && len(items) > 0
	case kindObject:
		var obj OrderedObject
		return json.Unmarshal(raw, &obj) == nil && len(obj) > 0
	default:
		return false
	}
}

// looseText reads a scalar as text. Strings are taken verbatim, numbers and
// booleans keep their literal form. Null, lists and objects yield false.
func looseText(raw json.RawMessage) (string, bool) {
	switch kindOf(raw) {
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case kindNumber, kindBool:
		return string(bytes.TrimSpace(raw)), true
	default:
		return "", false
	}
}

// Field is one key/value pair of a JSON object
type Field struct {
	Key   string
	Value json.RawMessage
}

// OrderedObject is a JSON object that keeps its keys in document order.
// A null literal decodes to a nil OrderedObject.
type OrderedObject []Field

// UnmarshalJSON decodes an object token by token so key order survives
func (o *OrderedObject) UnmarshalJSON(data []byte) error {
	if kindOf(data) == kindNull {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %s", kindOf(data))
	}

	fields := OrderedObject{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("invalid object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = fields
	return nil
}

// Get returns the value stored under key. Duplicate keys resolve to the last one.
func (o OrderedObject) Get(key string) (json.RawMessage, bool) {
	var (
		value json.RawMessage
		found bool
	)
	for _, f := range o {
		if f.Key == key {
			value = f.Value
			found = true
		}
	}
	return value, found
}

// Has reports whether key is present, even with a null value
func (o OrderedObject) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the object's keys in document order
func (o OrderedObject) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, f := range o {
		keys = append(keys, f.Key)
	}
	return keys
}

// decodeFields decodes data as an object and unmarshals the listed keys into
// their targets, matching key names exactly.
func decodeFields(data []byte, targets map[string]any) (OrderedObject, error) {
	var obj OrderedObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("expected object, got null")
	}
	for _, f := range obj {
		target, ok := targets[f.Key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(f.Value, target); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
	}
	return obj, nil
}

// LooseString is a vendor field that is usually a string but is sometimes a
// number, null or missing. Decoding never fails.
type LooseString struct {
	Value   string
	Present bool
	Truthy  bool
}

// UnmarshalJSON implements json.Unmarshaler
func (s *LooseString) UnmarshalJSON(data []byte) error {
	s.Present = true
	s.Value, _ = looseText(data)
	s.Truthy = truthy(data)
	return nil
}

// Valid reports whether the field carries a usable value
func (s LooseString) Valid() bool {
	return s.Truthy && s.Value != ""
}

// Oldest and newest instants an epoch field may hold (years 1 through 9999)
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// EpochTime is an optional timestamp in epoch seconds (integer or fractional).
// Anything that is not a usable non-zero number leaves Time nil.
type EpochTime struct {
	Seconds float64
	Time    *time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (e *EpochTime) UnmarshalJSON(data []byte) error {
	e.Seconds = 0
	e.Time = nil
	if kindOf(data) != kindNumber {
		return nil
	}
	secs, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return nil
	}
	e.Seconds = secs
	e.Time = epochToTime(secs)
	return nil
}

func epochToTime(secs float64) *time.Time {
	if secs == 0 || secs < minEpochSeconds || secs > maxEpochSeconds {
		return nil
	}
	whole, frac := math.Modf(secs)
	t := time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
	return &t
}

// Author is a message author, either a bare role string or an object with a role
type Author struct {
	Role string
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Author) UnmarshalJSON(data []byte) error {
	a.Role = ""
	switch kindOf(data) {
	case kindString:
		a.Role, _ = looseText(data)
	case kindObject:
		var obj OrderedObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		if role, ok := obj.Get("role"); ok {
			a.Role, _ = looseText(role)
		}
	}
	return nil
}

// RawRecord is one conversation record as found in the export
type RawRecord struct {
	Index int

	ID             LooseString
	ConversationID LooseString
	UUID           LooseString
	Title          LooseString
	CreateTime     EpochTime
	UpdateTime     EpochTime
	FolderID       LooseString
	FolderName     LooseString
	GizmoID        LooseString
	GizmoName      LooseString
	TemplateID     LooseString
	TemplateName   LooseString
	DefaultModel   LooseString
	Mapping        json.RawMessage
	Messages       json.RawMessage

	fields OrderedObject
	raw    json.RawMessage
}

// UnmarshalJSON decodes a record, failing only when it is not an object
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data, map[string]any{
		"id":                         &r.ID,
		"conversation_id":            &r.ConversationID,
		"uuid":                       &r.UUID,
		"title":                      &r.Title,
		"create_time":                &r.CreateTime,
		"update_time":                &r.UpdateTime,
		"folder_id":                  &r.FolderID,
		"folder_name":                &r.FolderName,
		"gizmo_id":                   &r.GizmoID,
		"gizmo_name":                 &r.GizmoName,
		"conversation_template_id":   &r.TemplateID,
		"conversation_template_name": &r.TemplateName,
		"default_model_slug":         &r.DefaultModel,
		"mapping":                    &r.Mapping,
		"messages":                   &r.Messages,
	})
	if err != nil {
		return err
	}
	r.fields = fields
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Keys returns the record's top-level keys in document order
func (r *RawRecord) Keys() []string {
	return r.fields.Keys()
}

// ParseRawRecord decodes one record of the normalized record list
func ParseRawRecord(index int, raw json.RawMessage) (*RawRecord, error) {
	if kind := kindOf(raw); kind != kindObject {
		return nil, fmt.Errorf("not an object (got %s)", kind)
	}
	var rec RawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse record JSON: %w", err)
	}
	rec.Index = index
	return &rec, nil
}

// RawMessage is the message carried by a mapping node, or one entry of a
// flat messages list.
type RawMessage struct {
	ID         LooseString
	Author     Author
	Role       LooseString
	Content    json.RawMessage
	CreateTime EpochTime
	Model      LooseString
	ModelSlug  LooseString
}

// UnmarshalJSON implements json.Unmarshaler
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	var metadata json.RawMessage
	if _, err := decodeFields(data, map[string]any{
		"id":          &m.ID,
		"author":      &m.Author,
		"role":        &m.Role,
		"content":     &m.Content,
		"create_time": &m.CreateTime,
		"model":       &m.Model,
		"metadata":    &metadata,
	}); err != nil {
		return err
	}
	if kindOf(metadata) == kindObject {
		var meta OrderedObject
		if err := json.Unmarshal(metadata, &meta); err == nil {
			if slug, ok := meta.Get("model_slug"); ok {
				_ = json.Unmarshal(slug, &m.ModelSlug)
			}
		}
	}
	return nil
}
