package internal

import (
	"sort"
	"strings"
)

// DefaultPreviewLength is the preview length used when none is configured
const DefaultPreviewLength = 200

// NoPreview is returned by Preview when a conversation has no user message
const NoPreview = "No preview available"

// Stats summarizes a corpus
type Stats struct {
	ConversationCount int            `json:"total_conversations" yaml:"total_conversations"`
	ProjectCount      int            `json:"total_projects" yaml:"total_projects"`
	UnassignedCount   int            `json:"unassigned_conversations" yaml:"unassigned_conversations"`
	MessageCount      int            `json:"total_messages" yaml:"total_messages"`
	WordCount         int            `json:"total_words" yaml:"total_words"`
	ModelUsage        map[string]int `json:"models_used" yaml:"models_used"`
}

// ModelCount is one entry of the model usage table
type ModelCount struct {
	Model string
	Count int
}

// ComputeStats counts conversations, messages and words. Model usage counts
// conversations per declared model, not messages.
func ComputeStats(c *Corpus) Stats {
	stats := Stats{
		ConversationCount: len(c.Conversations),
		ProjectCount:      len(c.Projects),
		UnassignedCount:   len(c.Unassigned),
		ModelUsage:        make(map[string]int),
	}
	for _, conv := range c.Conversations {
		stats.MessageCount += len(conv.Messages)
		stats.WordCount += conv.WordCount()
		if conv.Model != "" {
			stats.ModelUsage[conv.Model]++
		}
	}
	return stats
}

// TopModels returns model usage ordered by count, most used first
func (s Stats) TopModels() []ModelCount {
	models := make([]ModelCount, 0, len(s.ModelUsage))
	for model, count := range s.ModelUsage {
		models = append(models, ModelCount{Model: model, Count: count})
	}
	sort.Slice(models, func(i, j int) bool {
		if models[i].Count != models[j].Count {
			return models[i].Count > models[j].Count
		}
		return models[i].Model < models[j].Model
	})
	return models
}

// SearchOptions controls Search
type SearchOptions struct {
	CaseSensitive bool
}

// Search returns the conversations whose title or any message contains
// query, in corpus order
func Search(c *Corpus, query string, opts SearchOptions) []*Conversation {
	fold := func(s string) string { return s }
	if !opts.CaseSensitive {
		fold = strings.ToLower
	}
	needle := fold(query)

	var results []*Conversation
	for _, conv := range c.Conversations {
		if conv.matches(needle, fold) {
			results = append(results, conv)
		}
	}
	return results
}

func (c *Conversation) matches(needle string, fold func(string) string) bool {
	if strings.Contains(fold(c.Title), needle) {
		return true
	}
	for _, msg := range c.Messages {
		if strings.Contains(fold(msg.Content), needle) {
			return true
		}
	}
	return false
}

// Preview returns the first user message, trimmed and cut to maxLen runes
func (c *Conversation) Preview(maxLen int) string {
	for _, msg := range c.Messages {
		if msg.Role != RoleUser || msg.Content == "" {
			continue
		}
		content := strings.TrimSpace(msg.Content)
		if runes := []rune(content); maxLen >= 0 && len(runes) > maxLen {
			return string(runes[:maxLen]) + "..."
		}
		return content
	}
	return NoPreview
}
