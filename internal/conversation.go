package internal

import (
	"sort"
	"strings"
	"time"
)

// Role is the author role of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
	RoleUnknown   Role = "unknown"
)

// ParseRole maps a raw author role to a Role, defaulting to RoleUnknown
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser, RoleAssistant, RoleSystem, RoleTool:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// Title returns the role with its first letter upper-cased
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Message is one resolved message of a conversation
type Message struct {
	ID        string     `json:"id" yaml:"id"`
	Role      Role       `json:"role" yaml:"role"`
	Content   string     `json:"content" yaml:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Model     string     `json:"model,omitempty" yaml:"model,omitempty"`
}

// WordCount returns the number of whitespace-delimited words in the message
func (m Message) WordCount() int {
	return len(strings.Fields(m.Content))
}

// Conversation is a normalized conversation with a linear message sequence
type Conversation struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	CreateTime  *time.Time `json:"create_time,omitempty" yaml:"create_time,omitempty"`
	UpdateTime  *time.Time `json:"update_time,omitempty" yaml:"update_time,omitempty"`
	Messages    []Message  `json:"messages" yaml:"messages"`
	ProjectID   string     `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	ProjectName string     `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	Model       string     `json:"model,omitempty" yaml:"model,omitempty"`
}

// HasProject reports whether the conversation belongs to a project
func (c *Conversation) HasProject() bool {
	return c.ProjectID != "" && c.ProjectName != ""
}

// WordCount returns the total word count across all messages
func (c *Conversation) WordCount() int {
	total := 0
	for _, msg := range c.Messages {
		total += msg.WordCount()
	}
	return total
}

// Project groups conversations that share a folder, gizmo or template id.
// It does not own its conversations; the Corpus does.
type Project struct {
	ID            string
	Name          string
	Conversations []*Conversation
}

// MessageCount returns the total messages across the project's conversations
func (p *Project) MessageCount() int {
	total := 0
	for _, c := range p.Conversations {
		total += len(c.Messages)
	}
	return total
}

// WordCount returns the total words across the project's conversations
func (p *Project) WordCount() int {
	total := 0
	for _, c := range p.Conversations {
		total += c.WordCount()
	}
	return total
}

// Corpus is the fully built model of one export. It is never mutated after
// construction and may be shared between readers.
type Corpus struct {
	Conversations []*Conversation
	Projects      map[string]*Project
	Unassigned    []*Conversation
}

// NewCorpus groups conversations into projects and the unassigned list and
// sorts every list newest first. Input order breaks ties.
func NewCorpus(conversations []*Conversation) *Corpus {
	corpus := &Corpus{
		Conversations: make([]*Conversation, 0, len(conversations)),
		Projects:      make(map[string]*Project),
		Unassigned:    make([]*Conversation, 0),
	}

	for _, conv := range conversations {
		if conv == nil {
			continue
		}
		corpus.Conversations = append(corpus.Conversations, conv)

		if !conv.HasProject() {
			corpus.Unassigned = append(corpus.Unassigned, conv)
			continue
		}
		project, ok := corpus.Projects[conv.ProjectID]
		if !ok {
			project = &Project{ID: conv.ProjectID, Name: conv.ProjectName}
			corpus.Projects[conv.ProjectID] = project
		}
		project.Conversations = append(project.Conversations, conv)
	}

	sortByUpdateTime(corpus.Conversations)
	sortByUpdateTime(corpus.Unassigned)
	for _, project := range corpus.Projects {
		sortByUpdateTime(project.Conversations)
	}

	return corpus
}

// sortByUpdateTime orders newest first; conversations without an update time
// go last
func sortByUpdateTime(conversations []*Conversation) {
	sort.SliceStable(conversations, func(i, j int) bool {
		a, b := conversations[i].UpdateTime, conversations[j].UpdateTime
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
}

// ProjectList returns the projects ordered by name, then id
func (c *Corpus) ProjectList() []*Project {
	projects := make([]*Project, 0, len(c.Projects))
	for _, p := range c.Projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Name != projects[j].Name {
			return projects[i].Name < projects[j].Name
		}
		return projects[i].ID < projects[j].ID
	})
	return projects
}

// Find returns the first conversation with the given id
func (c *Corpus) Find(id string) (*Conversation, bool) {
	for _, conv := range c.Conversations {
		if conv.ID == id {
			return conv, true
		}
	}
	return nil, false
}
