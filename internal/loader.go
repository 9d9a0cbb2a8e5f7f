package internal

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportFileName is the file inside a vendor export that holds the conversations
const ExportFileName = "conversations.json"

// ExportSource is a located export file and its contents
type ExportSource struct {
	Path    string // file that was read: the json file or the zip archive
	Member  string // zip member name, empty for plain files
	ModTime time.Time
	Size    int64
	Data    []byte
}

// ResolveExportPath finds the export file a path refers to. Directories are
// searched for conversations.json; files are returned as given.
func ResolveExportPath(path string) (string, error) {
	if path == "" {
		return "", &LoadError{Path: path, Op: "stat", Err: fmt.Errorf("no export path given")}
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", &LoadError{Path: path, Op: "stat", Err: err}
	}
	if !info.IsDir() {
		return path, nil
	}

	candidate := filepath.Join(path, ExportFileName)
	if _, err := os.Stat(candidate); err != nil {
		return "", &LoadError{Path: path, Op: "stat", Err: fmt.Errorf("%s not found in %s", ExportFileName, path)}
	}
	return candidate, nil
}

// LoadExport reads the export at path: a directory holding conversations.json,
// a JSON file, or a zip archive containing a conversations.json member.
func LoadExport(path string) (*ExportSource, error) {
	file, err := ResolveExportPath(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(file)
	if err != nil {
		return nil, &LoadError{Path: file, Op: "stat", Err: err}
	}

	src := &ExportSource{Path: file, ModTime: info.ModTime(), Size: info.Size()}
	if strings.EqualFold(filepath.Ext(file), ".zip") {
		src.Member, src.Data, err = readZipExport(file)
	} else {
		src.Data, err = os.ReadFile(file)
		if err != nil {
			err = &LoadError{Path: file, Op: "read", Err: err}
		}
	}
	if err != nil {
		return nil, err
	}

	LogDebug("Loaded export %s (%d bytes)", file, len(src.Data))
	return src, nil
}

func readZipExport(path string) (string, []byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, &LoadError{Path: path, Op: "unzip", Err: err}
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ExportFileName) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", nil, &LoadError{Path: path, Op: "unzip", Err: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", nil, &LoadError{Path: path, Op: "unzip", Err: err}
		}
		return f.Name, data, nil
	}

	return "", nil, &LoadError{Path: path, Op: "unzip", Err: fmt.Errorf("no %s in archive", ExportFileName)}
}

// DefaultExportPaths lists where an unpacked export is looked for when no
// path is configured
func DefaultExportPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	cwd, _ := os.Getwd()

	paths := []string{}
	if cwd != "" {
		paths = append(paths, cwd)
	}
	paths = append(paths,
		filepath.Join(home, "Downloads", "chatgpt-export"),
		filepath.Join(home, "chatgpt-export"),
	)
	return paths, nil
}

// DetectExportPath returns the first default location that holds an export
func DetectExportPath() (string, error) {
	paths, err := DefaultExportPaths()
	if err != nil {
		return "", err
	}
	for _, p := range paths {
		if _, err := ResolveExportPath(p); err == nil {
			return p, nil
		}
	}
	return "", &LoadError{
		Path: strings.Join(paths, ", "),
		Op:   "stat",
		Err:  fmt.Errorf("no %s found; pass --export", ExportFileName),
	}
}
