package internal

import (
	"time"
)

// testTime returns a UTC time for epoch seconds, for building expected values
func testTime(secs int64) *time.Time {
	t := time.Unix(secs, 0).UTC()
	return &t
}

// CreateTestConversation creates a conversation with a user and an assistant message
func CreateTestConversation(id, title string) *Conversation {
	return &Conversation{
		ID:         id,
		Title:      title,
		CreateTime: testTime(1700000000),
		UpdateTime: testTime(1700003600),
		Model:      "gpt-4o",
		Messages: []Message{
			{ID: id + "-1", Role: RoleUser, Content: "Hello, how are you?", Timestamp: testTime(1700000010)},
			{ID: id + "-2", Role: RoleAssistant, Content: "I'm doing well, thank you!", Timestamp: testTime(1700000020), Model: "gpt-4o"},
		},
	}
}

// CreateTestConversationWithMessages creates a conversation with custom messages
func CreateTestConversationWithMessages(id string, messages []Message) *Conversation {
	return &Conversation{
		ID:       id,
		Title:    "Test Conversation",
		Messages: messages,
	}
}

// CreateTestCorpus builds a corpus with one project and one unassigned conversation
func CreateTestCorpus() *Corpus {
	inProject := CreateTestConversation("conv-1", "Project chat")
	inProject.ProjectID = "proj-1"
	inProject.ProjectName = "Research"

	loose := CreateTestConversation("conv-2", "Loose chat")
	loose.UpdateTime = testTime(1700000000)
	loose.Model = "gpt-4"

	return NewCorpus([]*Conversation{loose, inProject})
}
