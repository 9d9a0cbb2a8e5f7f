package internal

import (
	"encoding/json"
	"fmt"
)

// RootShape names where the record list was found in the export root
type RootShape string

const (
	ShapeList          RootShape = "list"
	ShapeConversations RootShape = "conversations"
	ShapeData          RootShape = "data"
	ShapeScanned       RootShape = "scanned"
)

// recordKeys mark a list element as a conversation record during the value scan
var recordKeys = []string{"id", "conversation_id", "mapping"}

// NormalizeRoot locates the list of raw conversation records in an export root
func NormalizeRoot(root json.RawMessage) ([]json.RawMessage, error) {
	records, _, err := DetectRoot(root)
	return records, err
}

// DetectRoot is NormalizeRoot that also reports which shape matched. An empty
// record list is invalid whichever shape held it.
func DetectRoot(root json.RawMessage) ([]json.RawMessage, RootShape, error) {
	records, shape, err := detectRoot(root)
	if err == nil && len(records) == 0 {
		return nil, shape, &InvalidFormatError{Reason: fmt.Sprintf("conversation list (%s) is empty", shape)}
	}
	return records, shape, err
}

func detectRoot(root json.RawMessage) ([]json.RawMessage, RootShape, error) {
	switch kind := kindOf(root); kind {
	case kindArray:
		records, err := decodeList(root)
		if err != nil {
			return nil, "", &InvalidFormatError{Reason: err.Error()}
		}
		return records, ShapeList, nil

	case kindObject:
		var obj OrderedObject
		if err := json.Unmarshal(root, &obj); err != nil {
			return nil, "", &InvalidFormatError{Reason: err.Error()}
		}
		return scanObject(obj)

	default:
		return nil, "", &InvalidFormatError{
			Reason: fmt.Sprintf("expected a list or object at the root, got %s", kind),
		}
	}
}

func scanObject(obj OrderedObject) ([]json.RawMessage, RootShape, error) {
	for _, key := range []RootShape{ShapeConversations, ShapeData} {
		value, ok := obj.Get(string(key))
		if !ok || kindOf(value) != kindArray {
			continue
		}
		records, err := decodeList(value)
		if err != nil {
			return nil, "", &InvalidFormatError{Reason: fmt.Sprintf("%s: %v", key, err)}
		}
		return records, key, nil
	}

	for _, f := range obj {
		if kindOf(f.Value) != kindArray {
			continue
		}
		records, err := decodeList(f.Value)
		if err != nil || len(records) == 0 {
			continue
		}
		if looksLikeRecord(records[0]) {
			LogDebug("Found conversation list under key %q", f.Key)
			return records, ShapeScanned, nil
		}
	}

	return nil, "", &InvalidFormatError{Reason: "could not find a conversation list in the export root"}
}

func looksLikeRecord(raw json.RawMessage) bool {
	if kindOf(raw) != kindObject {
		return false
	}
	var obj OrderedObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	for _, key := range recordKeys {
		if obj.Has(key) {
			return true
		}
	}
	return false
}

func decodeList(raw json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
