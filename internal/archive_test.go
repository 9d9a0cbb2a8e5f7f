package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/chatgpt-export/testutil"
)

func openTestArchive(t *testing.T) (*Archive, string) {
	t.Helper()
	path := filepath.Join(testutil.CreateTempDir(t), "archive.db")
	archive, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	t.Cleanup(func() { _ = archive.Close() })
	return archive, path
}

func TestArchive_SaveCorpus(t *testing.T) {
	archive, path := openTestArchive(t)
	corpus := CreateTestCorpus()

	result, err := archive.SaveCorpus(corpus)
	if err != nil {
		t.Fatalf("SaveCorpus() error = %v", err)
	}
	if result != (SaveResult{Inserted: 2}) {
		t.Errorf("first save = %+v, want 2 inserted", result)
	}

	result, err = archive.SaveCorpus(corpus)
	if err != nil {
		t.Fatalf("SaveCorpus() error = %v", err)
	}
	if result != (SaveResult{Unchanged: 2}) {
		t.Errorf("second save = %+v, want 2 unchanged", result)
	}

	edited := CreateTestCorpus()
	edited.Conversations[0].Messages[0].Content = "edited"
	result, err = archive.SaveCorpus(edited)
	if err != nil {
		t.Fatalf("SaveCorpus() error = %v", err)
	}
	if result != (SaveResult{Updated: 1, Unchanged: 1}) {
		t.Errorf("third save = %+v, want 1 updated, 1 unchanged", result)
	}

	db := testutil.OpenSQLite(t, path)
	if n := testutil.CountRows(t, db, "conversations"); n != 2 {
		t.Errorf("conversations rows = %d, want 2", n)
	}
}

func TestArchive_ListAndLoad(t *testing.T) {
	archive, _ := openTestArchive(t)
	corpus := CreateTestCorpus()
	if _, err := archive.SaveCorpus(corpus); err != nil {
		t.Fatalf("SaveCorpus() error = %v", err)
	}

	entries, err := archive.ListConversations(0)
	if err != nil {
		t.Fatalf("ListConversations() error = %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "conv-1" || entries[1].ID != "conv-2" {
		t.Errorf("entries = %+v, want conv-1 then conv-2", entries)
	}
	if entries[0].ProjectName != "Research" || entries[0].Messages != 2 {
		t.Errorf("entries[0] = %+v", entries[0])
	}

	limited, err := archive.ListConversations(1)
	if err != nil || len(limited) != 1 {
		t.Errorf("ListConversations(1) = %v, %v", limited, err)
	}

	n, err := archive.Count()
	if err != nil || n != 2 {
		t.Errorf("Count() = %d, %v; want 2", n, err)
	}

	conv, err := archive.LoadConversation("conv-1")
	if err != nil {
		t.Fatalf("LoadConversation() error = %v", err)
	}
	if conv.Title != "Project chat" || len(conv.Messages) != 2 || !conv.UpdateTime.Equal(*corpus.Conversations[0].UpdateTime) {
		t.Errorf("LoadConversation() = %+v", conv)
	}

	_, err = archive.LoadConversation("missing")
	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Op != "load" {
		t.Errorf("LoadConversation(missing) error = %v, want load StoreError", err)
	}
}
