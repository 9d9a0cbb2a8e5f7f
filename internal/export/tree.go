package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/iksnae/chatgpt-export/internal"
)

// UnassignedDir holds conversations that belong to no project
const UnassignedDir = "_Unassigned"

const maxFilenameLength = 100

// SanitizeFilename replaces characters that are invalid in file names, caps
// the length and falls back to "untitled" for empty names and for names made
// only of dots, so "." and ".." never become path elements
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, name)
	if runes := []rune(name); len(runes) > maxFilenameLength {
		name = string(runes[:maxFilenameLength])
	}
	name = strings.TrimSpace(name)
	if strings.Trim(name, ".") == "" {
		return "untitled"
	}
	return name
}

// Entry is one file of an export tree
type Entry struct {
	Path         string // slash-separated, relative to the tree root
	Conversation *internal.Conversation
}

// Plan lays out one file per conversation: a directory per project named
// after it, plus UnassignedDir. Colliding names get a numeric suffix.
func Plan(c *internal.Corpus, ext string) []Entry {
	var entries []Entry
	used := make(map[string]bool)

	add := func(dir string, conv *internal.Conversation) {
		base := SanitizeFilename(conv.Title)
		name := path.Join(dir, base+"."+ext)
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = path.Join(dir, fmt.Sprintf("%s (%d).%s", base, n, ext))
		}
		used[strings.ToLower(name)] = true
		entries = append(entries, Entry{Path: name, Conversation: conv})
	}

	for _, project := range c.ProjectList() {
		dir := SanitizeFilename(project.Name)
		for _, conv := range project.Conversations {
			add(dir, conv)
		}
	}
	for _, conv := range c.Unassigned {
		add(UnassignedDir, conv)
	}
	return entries
}

// WriteTree writes every conversation of c under outDir and returns the
// number of files written
func WriteTree(c *internal.Corpus, exp Exporter, outDir string) (int, error) {
	written := 0
	for _, entry := range Plan(c, exp.Extension()) {
		target := filepath.Join(outDir, filepath.FromSlash(entry.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return written, &internal.ExportError{Format: exp.Extension(), Path: target, Err: err}
		}
		if err := writeFile(target, entry.Conversation, exp); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// WriteOne writes a single conversation into outDir
func WriteOne(conv *internal.Conversation, exp Exporter, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", &internal.ExportError{Format: exp.Extension(), Path: outDir, Err: err}
	}
	target := filepath.Join(outDir, SanitizeFilename(conv.Title)+"."+exp.Extension())
	return target, writeFile(target, conv, exp)
}

func writeFile(target string, conv *internal.Conversation, exp Exporter) error {
	f, err := os.Create(target)
	if err != nil {
		return &internal.ExportError{Format: exp.Extension(), Path: target, Err: err}
	}
	if err := exp.Export(conv, f); err != nil {
		f.Close()
		return &internal.ExportError{Format: exp.Extension(), Path: target, Err: err}
	}
	if err := f.Close(); err != nil {
		return &internal.ExportError{Format: exp.Extension(), Path: target, Err: err}
	}
	return nil
}

// WriteZip writes the same layout as WriteTree into a zip archive on w
func WriteZip(c *internal.Corpus, exp Exporter, w io.Writer) (int, error) {
	zw := zip.NewWriter(w)
	written := 0
	for _, entry := range Plan(c, exp.Extension()) {
		var buf bytes.Buffer
		if err := exp.Export(entry.Conversation, &buf); err != nil {
			return written, &internal.ExportError{Format: exp.Extension(), Path: entry.Path, Err: err}
		}
		fw, err := zw.Create(entry.Path)
		if err != nil {
			return written, &internal.ExportError{Format: exp.Extension(), Path: entry.Path, Err: err}
		}
		if _, err := fw.Write(buf.Bytes()); err != nil {
			return written, &internal.ExportError{Format: exp.Extension(), Path: entry.Path, Err: err}
		}
		written++
	}
	if err := zw.Close(); err != nil {
		return written, &internal.ExportError{Format: exp.Extension(), Path: "zip", Err: err}
	}
	return written, nil
}
