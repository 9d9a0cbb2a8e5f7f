package internal

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/iksnae/chatgpt-export/testutil"
)

func TestBuildCorpus_SampleExport(t *testing.T) {
	corpus, err := BuildCorpusFromBytes(testutil.SampleExportJSON(t))
	if err != nil {
		t.Fatalf("BuildCorpusFromBytes() error = %v", err)
	}

	var ids []string
	for _, c := range corpus.Conversations {
		ids = append(ids, c.ID)
	}
	if want := []string{"conv-gizmo", "conv-folder", "conv-flat"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("conversation order = %v, want %v", ids, want)
	}

	if len(corpus.Projects) != 2 {
		t.Errorf("got %d projects, want 2", len(corpus.Projects))
	}
	if p := corpus.Projects["folder-1234567890"]; p == nil || p.Name != "Home" {
		t.Errorf("folder project = %+v, want Home", p)
	}
	if p := corpus.Projects["g-abcdefghijk"]; p == nil || p.Name != "GPT g-abcdef" {
		t.Errorf("gizmo project = %+v, want synthesized name", p)
	}
	if len(corpus.Unassigned) != 1 || corpus.Unassigned[0].ID != "conv-flat" {
		t.Errorf("unassigned = %v, want conv-flat", corpus.Unassigned)
	}
}

func TestBuildCorpus_EveryConversationPlacedOnce(t *testing.T) {
	corpus, err := BuildCorpusFromBytes(testutil.SampleExportJSON(t))
	if err != nil {
		t.Fatalf("BuildCorpusFromBytes() error = %v", err)
	}

	placed := make(map[*Conversation]int)
	for _, c := range corpus.Unassigned {
		placed[c]++
	}
	for _, p := range corpus.Projects {
		for _, c := range p.Conversations {
			placed[c]++
			if c.ProjectID != p.ID {
				t.Errorf("conversation %s in project %s has project id %s", c.ID, p.ID, c.ProjectID)
			}
		}
	}
	for _, c := range corpus.Conversations {
		if placed[c] != 1 {
			t.Errorf("conversation %s placed %d times, want 1", c.ID, placed[c])
		}
		if len(c.Messages) == 0 {
			t.Errorf("conversation %s has no messages", c.ID)
		}
	}
	if len(placed) != len(corpus.Conversations) {
		t.Errorf("placed %d conversations, corpus has %d", len(placed), len(corpus.Conversations))
	}
}

func TestBuildCorpus_WrappedExportFixture(t *testing.T) {
	corpus, report, err := BuildCorpusWithReport(testutil.LoadFixture(t, "wrapped_export.json"))
	if err != nil {
		t.Fatalf("BuildCorpusWithReport() error = %v", err)
	}

	if report.Shape != ShapeScanned || report.Records != 4 || report.Built != 2 {
		t.Errorf("report = %+v, want scanned shape, 4 records, 2 built", report)
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("got %d skips, want 2", len(report.Skipped))
	}
	if report.Skipped[0].Index != 2 || report.Skipped[1].Reason != "has no messages" {
		t.Errorf("skips = %v", report.Skipped)
	}

	trip, ok := corpus.Find("c-wrapped-1")
	if !ok {
		t.Fatal("Find(c-wrapped-1) not found")
	}
	if trip.ProjectName != "Custom GPT" {
		t.Errorf("ProjectName = %q, want Custom GPT", trip.ProjectName)
	}
	if len(trip.Messages) != 2 || trip.Messages[0].Role != RoleUser || trip.Messages[1].Model != "gpt-4o" {
		t.Errorf("messages = %+v, want user then gpt-4o assistant", trip.Messages)
	}

	untitled, ok := corpus.Find("c-wrapped-2")
	if !ok {
		t.Fatal("Find(c-wrapped-2) not found")
	}
	if untitled.Title != UntitledConversation {
		t.Errorf("Title = %q, want placeholder", untitled.Title)
	}
	if len(untitled.Messages) != 1 || untitled.Messages[0].Role != RoleTool || untitled.Messages[0].ID != "msg_0" {
		t.Errorf("messages = %+v, want one tool message msg_0", untitled.Messages)
	}

	if corpus.Conversations[0].ID != "c-wrapped-1" {
		t.Errorf("first conversation = %s, want the one with an update time", corpus.Conversations[0].ID)
	}
}

func TestBuildCorpus_ListAndWrapperIdentical(t *testing.T) {
	list := testutil.SampleExportJSON(t)
	wrapped := testutil.JSONMarshal(t, map[string]interface{}{"conversations": testutil.SampleConversations()})

	a, err := BuildCorpusFromBytes(list)
	if err != nil {
		t.Fatalf("list build error = %v", err)
	}
	b, err := BuildCorpusFromBytes(wrapped)
	if err != nil {
		t.Fatalf("wrapped build error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("corpora built from list and wrapper roots differ")
	}
}

func TestBuildCorpus_Idempotent(t *testing.T) {
	data := []byte(`[{"title":"no id","mapping":{"r":{"message":null},"n":{"message":{"author":"user","content":"hi"}}}}]`)
	a, err := BuildCorpusFromBytes(data)
	if err != nil {
		t.Fatalf("first build error = %v", err)
	}
	b, err := BuildCorpusFromBytes(data)
	if err != nil {
		t.Fatalf("second build error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("building twice produced different corpora")
	}
}

func TestBuildCorpus_UpdateTimeOrdering(t *testing.T) {
	data := []byte(`[
		{"id":"untimed","mapping":{"n":{"message":{"author":"user","content":"a"}}}},
		{"id":"timed","update_time":1700000000,"mapping":{"n":{"message":{"author":"user","content":"b"}}}},
		{"id":"untimed-2","mapping":{"n":{"message":{"author":"user","content":"c"}}}},
		{"id":"newer","update_time":1800000000,"mapping":{"n":{"message":{"author":"user","content":"d"}}}}
	]`)
	corpus, err := BuildCorpusFromBytes(data)
	if err != nil {
		t.Fatalf("BuildCorpusFromBytes() error = %v", err)
	}
	var ids []string
	for _, c := range corpus.Unassigned {
		ids = append(ids, c.ID)
	}
	if want := []string{"newer", "timed", "untimed", "untimed-2"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("unassigned order = %v, want %v", ids, want)
	}
}

func TestBuildCorpus_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		sample  int
	}{
		{"not json", `{nope`, ErrInvalidFormat, 0},
		{"scalar root", `"hello"`, ErrInvalidFormat, 0},
		{"no list found", `{"a":{"b":1}}`, ErrInvalidFormat, 0},
		{"empty list", `[]`, ErrInvalidFormat, 0},
		{"all skipped", `["a", 1, {"id":"x"}, {"id":"y","mapping":{}}]`, ErrNoValidConversations, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus, err := BuildCorpusFromBytes([]byte(tt.data))
			if corpus != nil {
				t.Errorf("corpus = %+v, want nil", corpus)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var noValid *NoValidConversationsError
			if errors.As(err, &noValid) && len(noValid.Sample) != tt.sample {
				t.Errorf("sample size = %d, want %d", len(noValid.Sample), tt.sample)
			}
		})
	}
}

func TestBuildCorpus_PartialSuccess(t *testing.T) {
	data := `[{"id":"good","mapping":{"n":{"message":{"author":"user","content":"ok"}}}}, 42, {"id":"empty"}]`
	corpus, report, err := BuildCorpusWithReport(json.RawMessage(data))
	if err != nil {
		t.Fatalf("BuildCorpusWithReport() error = %v", err)
	}
	if len(corpus.Conversations) != 1 {
		t.Errorf("got %d conversations, want 1", len(corpus.Conversations))
	}
	var reasons []string
	for _, s := range report.Skipped {
		reasons = append(reasons, s.Error())
	}
	joined := strings.Join(reasons, "; ")
	if !strings.Contains(joined, "entry 1: not an object (got number)") || !strings.Contains(joined, "entry 2 (empty): has no messages") {
		t.Errorf("skip reasons = %q", joined)
	}
}
