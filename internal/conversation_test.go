package internal

import (
	"reflect"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"user", RoleUser},
		{"assistant", RoleAssistant},
		{"system", RoleSystem},
		{"tool", RoleTool},
		{"User", RoleUnknown},
		{"critic", RoleUnknown},
		{"", RoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseRole(tt.in); got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoleTitle(t *testing.T) {
	if got := RoleAssistant.Title(); got != "Assistant" {
		t.Errorf("Title() = %q, want Assistant", got)
	}
	if got := Role("").Title(); got != "" {
		t.Errorf("Title() = %q, want empty", got)
	}
}

func TestWordCount(t *testing.T) {
	conv := CreateTestConversationWithMessages("w", []Message{
		{Content: "one two  three"},
		{Content: "\tfour\nfive "},
	})
	if got := conv.WordCount(); got != 5 {
		t.Errorf("WordCount() = %d, want 5", got)
	}
}

func TestNewCorpusGroupsAndSorts(t *testing.T) {
	older := CreateTestConversation("older", "Older")
	older.UpdateTime = testTime(1000)
	older.ProjectID, older.ProjectName = "p", "Proj"

	newer := CreateTestConversation("newer", "Newer")
	newer.UpdateTime = testTime(2000)
	newer.ProjectID, newer.ProjectName = "p", "Proj"

	untimed := CreateTestConversation("untimed", "Untimed")
	untimed.UpdateTime = nil

	loose := CreateTestConversation("loose", "Loose")
	loose.UpdateTime = testTime(1500)

	corpus := NewCorpus([]*Conversation{untimed, older, nil, loose, newer})

	ids := func(convs []*Conversation) []string {
		var out []string
		for _, c := range convs {
			out = append(out, c.ID)
		}
		return out
	}

	if got, want := ids(corpus.Conversations), []string{"newer", "loose", "older", "untimed"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Conversations = %v, want %v", got, want)
	}
	if got, want := ids(corpus.Projects["p"].Conversations), []string{"newer", "older"}; !reflect.DeepEqual(got, want) {
		t.Errorf("project conversations = %v, want %v", got, want)
	}
	if got, want := ids(corpus.Unassigned), []string{"loose", "untimed"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Unassigned = %v, want %v", got, want)
	}

	p := corpus.Projects["p"]
	if p.MessageCount() != 4 {
		t.Errorf("MessageCount() = %d, want 4", p.MessageCount())
	}
	if p.WordCount() != 18 {
		t.Errorf("WordCount() = %d, want 18", p.WordCount())
	}
}

func TestCorpusProjectListAndFind(t *testing.T) {
	a := CreateTestConversation("a", "A")
	a.ProjectID, a.ProjectName = "z-id", "Alpha"
	b := CreateTestConversation("b", "B")
	b.ProjectID, b.ProjectName = "a-id", "Beta"
	c := CreateTestConversation("c", "C")
	c.ProjectID, c.ProjectName = "m-id", "Alpha"

	corpus := NewCorpus([]*Conversation{a, b, c})

	var got []string
	for _, p := range corpus.ProjectList() {
		got = append(got, p.ID)
	}
	if want := []string{"m-id", "z-id", "a-id"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ProjectList() = %v, want %v", got, want)
	}

	if conv, ok := corpus.Find("b"); !ok || conv != b {
		t.Errorf("Find(b) = %v, %v", conv, ok)
	}
	if _, ok := corpus.Find("missing"); ok {
		t.Error("Find(missing) found a conversation")
	}
}
