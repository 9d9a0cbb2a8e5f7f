package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheVersion changes whenever the cached conversation layout changes
const CacheVersion = "2"

// CacheManager keeps built conversations on disk so repeated runs against an
// unchanged export skip parsing
type CacheManager struct {
	cacheDir string
}

// CacheMetadata identifies the export a cache was built from
type CacheMetadata struct {
	ExportPath    string    `yaml:"export_path"`
	ExportModTime time.Time `yaml:"export_mod_time"`
	ExportSize    int64     `yaml:"export_size"`
	CacheVersion  string    `yaml:"cache_version"`
	CreatedAt     time.Time `yaml:"created_at"`
}

// ConversationIndexEntry is one conversation in the index
type ConversationIndexEntry struct {
	ID           string `yaml:"id"`
	File         string `yaml:"file"`
	Title        string `yaml:"title"`
	ProjectID    string `yaml:"project_id,omitempty"`
	ProjectName  string `yaml:"project_name,omitempty"`
	UpdatedAt    string `yaml:"updated_at,omitempty"`
	MessageCount int    `yaml:"message_count"`
}

// ConversationIndex is the YAML index of a cached corpus
type ConversationIndex struct {
	Conversations []ConversationIndexEntry `yaml:"conversations"`
	Metadata      CacheMetadata            `yaml:"metadata"`
}

// NewCacheManager creates a new cache manager
func NewCacheManager(cacheDir string) *CacheManager {
	return &CacheManager{
		cacheDir: cacheDir,
	}
}

// EnsureCacheDir ensures the cache directory exists
func (cm *CacheManager) EnsureCacheDir() error {
	return os.MkdirAll(cm.cacheDir, 0755)
}

// GetCacheDir returns the cache directory path
func (cm *CacheManager) GetCacheDir() string {
	return cm.cacheDir
}

// GetIndexPath returns the path to the index YAML file
func (cm *CacheManager) GetIndexPath() string {
	return filepath.Join(cm.cacheDir, "conversations.yaml")
}

// conversationFile names cache files by position, since ids may hold any
// character
func conversationFile(position int) string {
	return fmt.Sprintf("conversation_%05d.json", position)
}

// IsCacheValid reports whether the cache was built from src as it is now
func (cm *CacheManager) IsCacheValid(src *ExportSource) bool {
	index, err := cm.LoadIndex()
	if err != nil {
		return false
	}
	meta := index.Metadata
	return meta.CacheVersion == CacheVersion &&
		meta.ExportPath == src.Path &&
		meta.ExportSize == src.Size &&
		meta.ExportModTime.Equal(src.ModTime)
}

// LoadIndex loads the conversation index
func (cm *CacheManager) LoadIndex() (*ConversationIndex, error) {
	data, err := os.ReadFile(cm.GetIndexPath())
	if err != nil {
		return nil, err
	}

	var index ConversationIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}

	return &index, nil
}

// SaveIndex saves the conversation index
func (cm *CacheManager) SaveIndex(index *ConversationIndex) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	return os.WriteFile(cm.GetIndexPath(), data, 0644)
}

// SaveCorpus replaces the cache with the conversations of c
func (cm *CacheManager) SaveCorpus(c *Corpus, src *ExportSource) error {
	if err := cm.ClearCache(); err != nil {
		return err
	}
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	index := ConversationIndex{
		Conversations: make([]ConversationIndexEntry, 0, len(c.Conversations)),
		Metadata: CacheMetadata{
			ExportPath:    src.Path,
			ExportModTime: src.ModTime,
			ExportSize:    src.Size,
			CacheVersion:  CacheVersion,
			CreatedAt:     time.Now(),
		},
	}

	for i, conv := range c.Conversations {
		file := conversationFile(i)
		data, err := json.Marshal(conv)
		if err != nil {
			return fmt.Errorf("failed to marshal conversation %s: %w", conv.ID, err)
		}
		if err := os.WriteFile(filepath.Join(cm.cacheDir, file), data, 0644); err != nil {
			return fmt.Errorf("failed to write conversation %s: %w", conv.ID, err)
		}

		entry := ConversationIndexEntry{
			ID:           conv.ID,
			File:         file,
			Title:        conv.Title,
			ProjectID:    conv.ProjectID,
			ProjectName:  conv.ProjectName,
			MessageCount: len(conv.Messages),
		}
		if conv.UpdateTime != nil {
			entry.UpdatedAt = conv.UpdateTime.Format(time.RFC3339)
		}
		index.Conversations = append(index.Conversations, entry)
	}

	return cm.SaveIndex(&index)
}

// LoadCorpus rebuilds a corpus from the cache. Any unreadable file
// invalidates the whole cache.
func (cm *CacheManager) LoadCorpus() (*Corpus, error) {
	index, err := cm.LoadIndex()
	if err != nil {
		return nil, err
	}

	conversations := make([]*Conversation, 0, len(index.Conversations))
	for _, entry := range index.Conversations {
		data, err := os.ReadFile(filepath.Join(cm.cacheDir, entry.File))
		if err != nil {
			return nil, fmt.Errorf("failed to read cached conversation %s: %w", entry.ID, err)
		}
		var conv Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached conversation %s: %w", entry.ID, err)
		}
		conversations = append(conversations, &conv)
	}

	return NewCorpus(conversations), nil
}

// ClearCache removes the index and every conversation file it lists
func (cm *CacheManager) ClearCache() error {
	index, err := cm.LoadIndex()
	if err == nil {
		for _, entry := range index.Conversations {
			_ = os.Remove(filepath.Join(cm.cacheDir, entry.File))
		}
	}

	if err := os.Remove(cm.GetIndexPath()); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// LoadCorpusCached returns the corpus for src, from the cache when it is
// still valid and by building it otherwise. A nil cache always builds.
func LoadCorpusCached(src *ExportSource, cm *CacheManager) (*Corpus, error) {
	if cm != nil && cm.IsCacheValid(src) {
		corpus, err := cm.LoadCorpus()
		if err == nil {
			LogDebug("Loaded %d conversations from cache %s", len(corpus.Conversations), cm.GetCacheDir())
			return corpus, nil
		}
		LogWarn("Ignoring unreadable cache: %v", err)
	}

	corpus, err := BuildCorpusFromBytes(src.Data)
	if err != nil {
		return nil, err
	}

	if cm != nil {
		if err := cm.SaveCorpus(corpus, src); err != nil {
			LogWarn("Failed to save cache: %v", err)
		}
	}
	return corpus, nil
}
