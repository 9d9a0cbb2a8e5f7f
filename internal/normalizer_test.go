package internal

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDetectRoot(t *testing.T) {
	tests := []struct {
		name      string
		root      string
		wantShape RootShape
		wantLen   int
		wantFirst string
	}{
		{"bare list", `[{"id":"a"},{"id":"b"}]`, ShapeList, 2, `{"id":"a"}`},
		{"conversations key", `{"data":[{"id":"d"}],"conversations":[{"id":"c"}]}`, ShapeConversations, 1, `{"id":"c"}`},
		{"data key", `{"data":[{"id":"d"}]}`, ShapeData, 1, `{"id":"d"}`},
		{"conversations not a list falls through to data", `{"conversations":{"id":"x"},"data":[{"id":"d"}]}`, ShapeData, 1, `{"id":"d"}`},
		{"scan picks first matching value in document order",
			`{"meta":[1,2],"b":[{"mapping":{}}],"a":[{"id":"later"}]}`, ShapeScanned, 1, `{"mapping":{}}`},
		{"scan skips lists of non-records", `{"tags":[{"name":"x"}],"items":[{"conversation_id":"c"}]}`, ShapeScanned, 1, `{"conversation_id":"c"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, shape, err := DetectRoot(json.RawMessage(tt.root))
			if err != nil {
				t.Fatalf("DetectRoot() error = %v", err)
			}
			if shape != tt.wantShape {
				t.Errorf("shape = %q, want %q", shape, tt.wantShape)
			}
			if len(records) != tt.wantLen {
				t.Fatalf("got %d records, want %d", len(records), tt.wantLen)
			}
			if tt.wantLen > 0 && string(records[0]) != tt.wantFirst {
				t.Errorf("records[0] = %s, want %s", records[0], tt.wantFirst)
			}
		})
	}
}

func TestNormalizeRootInvalid(t *testing.T) {
	tests := []struct {
		name string
		root string
	}{
		{"empty list", `[]`},
		{"empty conversations list", `{"conversations":[]}`},
		{"empty data list", `{"data":[]}`},
		{"string root", `"hello"`},
		{"number root", `42`},
		{"null root", `null`},
		{"object without lists", `{"a":1,"b":{"c":[]}}`},
		{"only empty lists", `{"items":[]}`},
		{"list of scalars", `{"items":["a","b"]}`},
		{"first element not a record", `{"items":[{"name":"x"},{"id":"y"}]}`},
		{"malformed", `{"items":[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeRoot(json.RawMessage(tt.root))
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("NormalizeRoot() error = %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestNormalizeRootListAndWrapperAgree(t *testing.T) {
	record := `{"id":"x","mapping":{"a":{"message":{"author":"user","content":"hi"}}}}`
	fromList, err := NormalizeRoot(json.RawMessage("[" + record + "]"))
	if err != nil {
		t.Fatalf("NormalizeRoot(list) error = %v", err)
	}
	fromWrapper, err := NormalizeRoot(json.RawMessage(`{"conversations":[` + record + `]}`))
	if err != nil {
		t.Fatalf("NormalizeRoot(wrapper) error = %v", err)
	}
	if len(fromList) != 1 || len(fromWrapper) != 1 || string(fromList[0]) != string(fromWrapper[0]) {
		t.Errorf("list %s and wrapper %s disagree", fromList, fromWrapper)
	}
}
