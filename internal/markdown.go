package internal

import (
	"fmt"
	"strings"
	"time"
)

var roleEmoji = map[Role]string{
	RoleUser:      "👤",
	RoleAssistant: "🤖",
	RoleSystem:    "⚙️",
	RoleTool:      "🔧",
}

// Emoji returns the icon used for the role in markdown headings
func (r Role) Emoji() string {
	if e, ok := roleEmoji[r]; ok {
		return e
	}
	return "💬"
}

// Markdown renders the message as a heading followed by its verbatim content
func (m Message) Markdown() string {
	return m.MarkdownIn(time.UTC)
}

// MarkdownIn is Markdown with the timestamp shown in loc
func (m Message) MarkdownIn(loc *time.Location) string {
	header := fmt.Sprintf("### %s %s", m.Role.Emoji(), m.Role.Title())
	if m.Timestamp != nil {
		header += " – " + m.Timestamp.In(loc).Format("Jan 02, 2006 03:04 PM")
	}
	return header + "\n\n" + m.Content + "\n"
}

// Markdown renders the conversation with dates in UTC
func (c *Conversation) Markdown() string {
	return c.MarkdownIn(time.UTC)
}

// MarkdownIn renders the conversation with dates in loc
func (c *Conversation) MarkdownIn(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	lines := []string{fmt.Sprintf("# %s\n", c.Title)}
	if c.ProjectName != "" {
		lines = append(lines, fmt.Sprintf("**Project:** %s\n", c.ProjectName))
	}
	if c.CreateTime != nil {
		lines = append(lines, fmt.Sprintf("**Created:** %s\n", c.CreateTime.In(loc).Format("January 02, 2006")))
	}
	if c.UpdateTime != nil {
		lines = append(lines, fmt.Sprintf("**Last Updated:** %s\n", c.UpdateTime.In(loc).Format("January 02, 2006")))
	}
	if c.Model != "" {
		lines = append(lines, fmt.Sprintf("**Model:** %s\n", c.Model))
	}
	lines = append(lines, "\n---\n")

	for _, msg := range c.Messages {
		lines = append(lines, msg.MarkdownIn(loc))
	}

	return strings.Join(lines, "\n")
}
