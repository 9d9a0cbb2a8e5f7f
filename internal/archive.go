package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS conversations (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	project_id   TEXT,
	project_name TEXT,
	model        TEXT,
	create_time  INTEGER,
	update_time  INTEGER,
	messages     INTEGER NOT NULL,
	words        INTEGER NOT NULL,
	content_hash TEXT NOT NULL,
	body         TEXT NOT NULL,
	archived_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversations_project ON conversations(project_id);
CREATE INDEX IF NOT EXISTS idx_conversations_update ON conversations(update_time);
`

// Archive persists conversations into a SQLite database
type Archive struct {
	db *sql.DB
}

// ArchiveEntry is one row of the archive listing
type ArchiveEntry struct {
	ID          string
	Title       string
	ProjectName string
	UpdateTime  *time.Time
	Messages    int
	ArchivedAt  time.Time
}

// SaveResult counts what SaveCorpus did
type SaveResult struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// OpenArchive opens or creates the archive database at path
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Op: "ping", Err: err}
	}

	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, &StoreError{Op: "migrate", Err: err}
	}

	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveCorpus upserts every conversation keyed by id. Rows whose content hash
// is unchanged are left alone.
func (a *Archive) SaveCorpus(c *Corpus) (SaveResult, error) {
	var result SaveResult

	tx, err := a.db.Begin()
	if err != nil {
		return result, &StoreError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().Unix()
	for _, conv := range c.Conversations {
		hash := ContentHash(conv)

		var existing string
		err := tx.QueryRow("SELECT content_hash FROM conversations WHERE id = ?", conv.ID).Scan(&existing)
		switch {
		case err == sql.ErrNoRows:
			result.Inserted++
		case err != nil:
			return result, &StoreError{Op: "lookup", Err: err}
		case existing == hash:
			result.Unchanged++
			continue
		default:
			result.Updated++
		}

		body, err := json.Marshal(conv)
		if err != nil {
			return result, &StoreError{Op: "encode", Err: fmt.Errorf("conversation %s: %w", conv.ID, err)}
		}

		_, err = tx.Exec(`INSERT INTO conversations
			(id, title, project_id, project_name, model, create_time, update_time, messages, words, content_hash, body, archived_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				project_id = excluded.project_id,
				project_name = excluded.project_name,
				model = excluded.model,
				create_time = excluded.create_time,
				update_time = excluded.update_time,
				messages = excluded.messages,
				words = excluded.words,
				content_hash = excluded.content_hash,
				body = excluded.body,
				archived_at = excluded.archived_at`,
			conv.ID, conv.Title, nullString(conv.ProjectID), nullString(conv.ProjectName), nullString(conv.Model),
			unixOrNull(conv.CreateTime), unixOrNull(conv.UpdateTime),
			len(conv.Messages), conv.WordCount(), hash, string(body), now)
		if err != nil {
			return result, &StoreError{Op: "upsert", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return result, &StoreError{Op: "commit", Err: err}
	}
	return result, nil
}

// ListConversations returns archived conversations, most recently updated first
func (a *Archive) ListConversations(limit int) ([]ArchiveEntry, error) {
	query := `SELECT id, title, COALESCE(project_name, ''), update_time, messages, archived_at
		FROM conversations ORDER BY update_time IS NULL, update_time DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	var entries []ArchiveEntry
	for rows.Next() {
		var (
			entry    ArchiveEntry
			updated  sql.NullInt64
			archived int64
		)
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.ProjectName, &updated, &entry.Messages, &archived); err != nil {
			return nil, &StoreError{Op: "scan", Err: err}
		}
		if updated.Valid {
			t := time.Unix(updated.Int64, 0).UTC()
			entry.UpdateTime = &t
		}
		entry.ArchivedAt = time.Unix(archived, 0).UTC()
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return entries, nil
}

// LoadConversation reads one archived conversation back
func (a *Archive) LoadConversation(id string) (*Conversation, error) {
	var body string
	err := a.db.QueryRow("SELECT body FROM conversations WHERE id = ?", id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, &StoreError{Op: "load", Err: fmt.Errorf("conversation %s not archived", id)}
	}
	if err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}

	var conv Conversation
	if err := json.Unmarshal([]byte(body), &conv); err != nil {
		return nil, &StoreError{Op: "decode", Err: err}
	}
	return &conv, nil
}

// Count returns the number of archived conversations
func (a *Archive) Count() (int, error) {
	var n int
	if err := a.db.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&n); err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func unixOrNull(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
