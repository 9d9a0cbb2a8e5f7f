package testutil

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Epoch seconds used by the sample export
const (
	SampleCreateTime = 1700000000.0
	SampleUpdateTime = 1700003600.5
)

// MappingNode builds one mapping node carrying a message. Zero createTime
// leaves the time out.
func MappingNode(id, role, text string, createTime float64) map[string]interface{} {
	msg := map[string]interface{}{
		"id":      id,
		"author":  map[string]interface{}{"role": role},
		"content": map[string]interface{}{"content_type": "text", "parts": []interface{}{text}},
	}
	if createTime != 0 {
		msg["create_time"] = createTime
	}
	return map[string]interface{}{
		"id":      id,
		"message": msg,
	}
}

// SampleConversations returns a small export with a folder project, a gizmo
// project, an unassigned conversation and one record without messages.
func SampleConversations() []interface{} {
	return []interface{}{
		map[string]interface{}{
			"id":                 "conv-folder",
			"title":              "Planning the garden",
			"create_time":        SampleCreateTime,
			"update_time":        SampleUpdateTime,
			"folder_id":          "folder-1234567890",
			"folder_name":        "Home",
			"default_model_slug": "gpt-4o",
			"mapping": map[string]interface{}{
				"root": map[string]interface{}{"id": "root", "message": nil, "children": []string{"m1"}},
				"m1":   MappingNode("m1", "user", "Which vegetables grow well in shade?", SampleCreateTime+10),
				"m2":   MappingNode("m2", "assistant", "Lettuce, spinach and kale tolerate shade.", SampleCreateTime+20),
			},
		},
		map[string]interface{}{
			"id":                 "conv-gizmo",
			"title":              "Code review",
			"create_time":        SampleCreateTime,
			"update_time":        SampleUpdateTime + 100,
			"gizmo_id":           "g-abcdefghijk",
			"default_model_slug": "gpt-4",
			"mapping": map[string]interface{}{
				"a": MappingNode("a", "user", "Review this function please", SampleCreateTime+1),
				"b": MappingNode("b", "assistant", "The loop can exit early.", SampleCreateTime+2),
			},
		},
		map[string]interface{}{
			"id":                 "conv-flat",
			"title":              "Quick question",
			"default_model_slug": "gpt-4o",
			"messages": []interface{}{
				map[string]interface{}{"role": "user", "content": "hello world"},
				map[string]interface{}{"role": "assistant", "content": map[string]interface{}{"text": "Hi!"}},
			},
		},
		map[string]interface{}{
			"id":      "conv-empty",
			"title":   "Nothing here",
			"mapping": map[string]interface{}{"root": map[string]interface{}{"message": nil}},
		},
	}
}

// SampleExportJSON returns SampleConversations encoded as a root list
func SampleExportJSON(t *testing.T) []byte {
	t.Helper()
	return JSONMarshal(t, SampleConversations())
}

// WriteExportDir writes data as conversations.json in a new temp directory
// and returns the directory
func WriteExportDir(t *testing.T, data []byte) string {
	t.Helper()
	dir := CreateTempDir(t)
	if err := os.WriteFile(filepath.Join(dir, "conversations.json"), data, 0644); err != nil {
		t.Fatalf("Failed to write export: %v", err)
	}
	return dir
}

// WriteExportZip writes data into a zip archive under member and returns the
// archive path
func WriteExportZip(t *testing.T, member string, data []byte) string {
	t.Helper()
	path := filepath.Join(CreateTempDir(t), "export.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(member)
	if err != nil {
		t.Fatalf("Failed to add zip member: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write zip member: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return path
}

// MustRaw encodes v as a json.RawMessage
func MustRaw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	return json.RawMessage(JSONMarshal(t, v))
}
