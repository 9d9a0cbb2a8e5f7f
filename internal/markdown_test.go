package internal

import (
	"strings"
	"testing"
	"time"
)

func TestConversationMarkdown(t *testing.T) {
	conv := &Conversation{
		ID:          "c1",
		Title:       "Garden plans",
		CreateTime:  testTime(1700000000),
		UpdateTime:  testTime(1700600000),
		ProjectID:   "p1",
		ProjectName: "Home",
		Model:       "gpt-4o",
		Messages: []Message{
			{Role: RoleUser, Content: "What grows in shade?", Timestamp: testTime(1700000000)},
			{Role: RoleAssistant, Content: "Lettuce."},
		},
	}

	want := "# Garden plans\n" +
		"\n**Project:** Home\n" +
		"\n**Created:** November 14, 2023\n" +
		"\n**Last Updated:** November 21, 2023\n" +
		"\n**Model:** gpt-4o\n" +
		"\n\n---\n" +
		"\n### 👤 User – Nov 14, 2023 10:13 PM\n\nWhat grows in shade?\n" +
		"\n### 🤖 Assistant\n\nLettuce.\n"

	if got := conv.Markdown(); got != want {
		t.Errorf("Markdown() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestConversationMarkdownOmitsMissingMetadata(t *testing.T) {
	conv := &Conversation{
		Title:    "Bare",
		Messages: []Message{{Role: RoleUnknown, Content: "  kept verbatim  "}},
	}
	got := conv.Markdown()

	for _, label := range []string{"**Project:**", "**Created:**", "**Last Updated:**", "**Model:**"} {
		if strings.Contains(got, label) {
			t.Errorf("Markdown() contains %s for a conversation without it", label)
		}
	}
	if !strings.HasPrefix(got, "# Bare\n\n\n---\n") {
		t.Errorf("Markdown() = %q, want heading then separator", got)
	}
	if !strings.Contains(got, "### 💬 Unknown\n\n  kept verbatim  \n") {
		t.Errorf("Markdown() = %q, want unknown role block with verbatim content", got)
	}
}

func TestMessageMarkdownIn(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	msg := Message{Role: RoleTool, Content: "result", Timestamp: testTime(1700000000)}
	want := "### 🔧 Tool – Nov 15, 2023 12:13 AM\n\nresult\n"
	if got := msg.MarkdownIn(loc); got != want {
		t.Errorf("MarkdownIn() = %q, want %q", got, want)
	}
}

func TestRoleEmoji(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "👤"},
		{RoleAssistant, "🤖"},
		{RoleSystem, "⚙️"},
		{RoleTool, "🔧"},
		{RoleUnknown, "💬"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Emoji(); got != tt.want {
				t.Errorf("Emoji() = %q, want %q", got, tt.want)
			}
		})
	}
}
