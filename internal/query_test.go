package internal

import (
	"reflect"
	"strings"
	"testing"
)

func TestComputeStats(t *testing.T) {
	corpus := CreateTestCorpus()
	stats := ComputeStats(corpus)

	want := Stats{
		ConversationCount: 2,
		ProjectCount:      1,
		UnassignedCount:   1,
		MessageCount:      4,
		WordCount:         18,
		ModelUsage:        map[string]int{"gpt-4o": 1, "gpt-4": 1},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("ComputeStats() = %+v, want %+v", stats, want)
	}

	total := 0
	for _, c := range corpus.Conversations {
		total += len(c.Messages)
	}
	if stats.MessageCount != total {
		t.Errorf("MessageCount = %d, want sum of messages %d", stats.MessageCount, total)
	}
}

func TestComputeStatsCountsConversationsPerModel(t *testing.T) {
	a := CreateTestConversation("a", "A")
	b := CreateTestConversation("b", "B")
	c := CreateTestConversation("c", "C")
	c.Model = ""
	stats := ComputeStats(NewCorpus([]*Conversation{a, b, c}))

	if stats.ModelUsage["gpt-4o"] != 2 {
		t.Errorf("ModelUsage[gpt-4o] = %d, want 2 (conversations, not messages)", stats.ModelUsage["gpt-4o"])
	}
	if _, ok := stats.ModelUsage[""]; ok {
		t.Error("ModelUsage should not count conversations without a model")
	}
}

func TestTopModels(t *testing.T) {
	stats := Stats{ModelUsage: map[string]int{"b": 2, "a": 2, "c": 5}}
	want := []ModelCount{{"c", 5}, {"a", 2}, {"b", 2}}
	if got := stats.TopModels(); !reflect.DeepEqual(got, want) {
		t.Errorf("TopModels() = %v, want %v", got, want)
	}
}

func TestSearch(t *testing.T) {
	first := CreateTestConversationWithMessages("first", []Message{{Role: RoleUser, Content: "Tell me about Go channels"}})
	first.Title = "hello world"
	second := CreateTestConversationWithMessages("second", []Message{
		{Role: RoleUser, Content: "unrelated"},
		{Role: RoleAssistant, Content: "Channels are typed conduits"},
	})
	third := CreateTestConversationWithMessages("third", []Message{{Role: RoleUser, Content: "nothing here"}})
	corpus := &Corpus{Conversations: []*Conversation{first, second, third}}

	tests := []struct {
		name  string
		query string
		opts  SearchOptions
		want  []string
	}{
		{"case-insensitive title", "Hello", SearchOptions{}, []string{"first"}},
		{"matches content across messages in corpus order", "channels", SearchOptions{}, []string{"first", "second"}},
		{"case-sensitive", "Channels", SearchOptions{CaseSensitive: true}, []string{"second"}},
		{"case-sensitive title miss", "Hello", SearchOptions{CaseSensitive: true}, nil},
		{"no match", "kubernetes", SearchOptions{}, nil},
		{"empty query matches everything", "", SearchOptions{}, []string{"first", "second", "third"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range Search(corpus, tt.query, tt.opts) {
				got = append(got, c.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("é", 250)
	tests := []struct {
		name     string
		messages []Message
		maxLen   int
		want     string
	}{
		{"first user message trimmed", []Message{
			{Role: RoleAssistant, Content: "greeting"},
			{Role: RoleUser, Content: "  what is Go?  "},
			{Role: RoleUser, Content: "second"},
		}, DefaultPreviewLength, "what is Go?"},
		{"truncated by runes", []Message{{Role: RoleUser, Content: long}}, DefaultPreviewLength, strings.Repeat("é", 200) + "..."},
		{"exact length not truncated", []Message{{Role: RoleUser, Content: "abcde"}}, 5, "abcde"},
		{"no user message", []Message{{Role: RoleAssistant, Content: "hi"}}, DefaultPreviewLength, NoPreview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := CreateTestConversationWithMessages("p", tt.messages)
			if got := conv.Preview(tt.maxLen); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}
