package internal

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for the two failures that abort a corpus build
var (
	ErrInvalidFormat        = errors.New("invalid export format")
	ErrNoValidConversations = errors.New("no valid conversations")
)

// InvalidFormatError means the root JSON could not be reduced to a list of
// conversation records
type InvalidFormatError struct {
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidFormat, e.Reason)
}

func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

// SkipRecordError describes one record that was left out of the corpus
type SkipRecordError struct {
	Index          int
	ConversationID string
	Reason         string
}

func (e *SkipRecordError) Error() string {
	if e.ConversationID != "" {
		return fmt.Sprintf("entry %d (%s): %s", e.Index, e.ConversationID, e.Reason)
	}
	return fmt.Sprintf("entry %d: %s", e.Index, e.Reason)
}

// NoValidConversationsError means every record was skipped
type NoValidConversationsError struct {
	Records int
	Sample  []*SkipRecordError
}

func (e *NoValidConversationsError) Error() string {
	msg := fmt.Sprintf("failed to parse any conversations from %d entries", e.Records)
	if len(e.Sample) > 0 {
		reasons := make([]string, 0, len(e.Sample))
		for _, s := range e.Sample {
			reasons = append(reasons, s.Error())
		}
		msg += ". Sample errors: " + strings.Join(reasons, ", ")
	}
	return msg
}

func (e *NoValidConversationsError) Unwrap() error {
	return ErrNoValidConversations
}

// LoadError represents errors reading an export from disk
type LoadError struct {
	Path string
	Op   string // "stat", "open", "read", "unzip"
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StoreError represents errors reading or writing the archive database
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("archive error [%s]: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
