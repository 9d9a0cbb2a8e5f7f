package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/chatgpt-export/testutil"
)

func TestArchiveCommand(t *testing.T) {
	dir := sampleExport(t)
	db := filepath.Join(testutil.CreateTempDir(t), "nested", "archive.db")

	out, err := executeCommand(t, "--export", dir, "--no-cache", "archive", "--db", db)
	if err != nil {
		t.Fatalf("first archive error = %v", err)
	}
	if !strings.Contains(out, "3 new, 0 updated, 0 unchanged (3 total)") {
		t.Errorf("first archive output = %q", out)
	}

	out, err = executeCommand(t, "--export", dir, "--no-cache", "archive", "--db", db)
	if err != nil {
		t.Fatalf("second archive error = %v", err)
	}
	if !strings.Contains(out, "0 new, 0 updated, 3 unchanged (3 total)") {
		t.Errorf("second archive output = %q", out)
	}

	if n := testutil.CountRows(t, testutil.OpenSQLite(t, db), "conversations"); n != 3 {
		t.Errorf("archive has %d rows, want 3", n)
	}

	out, err = executeCommand(t, "archive", "list", "--db", db)
	if err != nil {
		t.Fatalf("archive list error = %v", err)
	}
	for _, want := range []string{"3 archived conversation(s)", "conv-gizmo", "Planning the garden", "Home"} {
		if !strings.Contains(out, want) {
			t.Errorf("archive list missing %q:\n%s", want, out)
		}
	}
}

func TestArchiveListEmpty(t *testing.T) {
	db := filepath.Join(testutil.CreateTempDir(t), "archive.db")
	out, err := executeCommand(t, "archive", "list", "--db", db)
	if err != nil {
		t.Fatalf("archive list error = %v", err)
	}
	if !strings.Contains(out, "Archive is empty") {
		t.Errorf("output = %q", out)
	}
}
