// Package source discovers and rewrites the JSON snapshot files of a dataset directory.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/ratelimit"
)

// ErrNotDirectory is returned when the dataset root is missing or not a directory.
var ErrNotDirectory = errors.New("source: not a directory")

// File is a dataset file addressed by its path relative to the input root.
type File struct {
	Path string
	Rel  string
}

// Tree reads files from an input root and writes results either to a mirrored output
// root or back in place. Reads are throttled to protect slow disks.
type Tree struct {
	inputDir  string
	outputDir string
	limiter   ratelimit.Limiter
}

// New validates inputDir and returns a Tree. An empty outputDir rewrites files in place.
// filesPerSecond <= 0 disables throttling.
func New(inputDir, outputDir string, filesPerSecond int) (*Tree, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotDirectory, inputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, inputDir)
	}

	limiter := ratelimit.NewUnlimited()
	if filesPerSecond > 0 {
		limiter = ratelimit.New(filesPerSecond)
	}
	return &Tree{inputDir: inputDir, outputDir: outputDir, limiter: limiter}, nil
}

// InPlace reports whether results overwrite the input files.
func (t *Tree) InPlace() bool {
	return t.outputDir == "" || filepath.Clean(t.outputDir) == filepath.Clean(t.inputDir)
}

// List walks the input root recursively and returns every *.json file (extension
// matched case-insensitively) sorted by relative path.
func (t *Tree) List(ctx context.Context) ([]File, error) {
	var files []File
	err := filepath.WalkDir(t.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".json") {
			return nil
		}
		rel, err := filepath.Rel(t.inputDir, path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: path, Rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.inputDir, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	return files, nil
}

// Read returns the content of f once the throttle allows it.
func (t *Tree) Read(ctx context.Context, f File) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.limiter.Take()
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Rel, err)
	}
	return data, nil
}

// Destination returns where the result for f is written.
func (t *Tree) Destination(f File) string {
	if t.InPlace() {
		return f.Path
	}
	return filepath.Join(t.outputDir, filepath.FromSlash(f.Rel))
}

// Write stores data for f, creating parent directories. The file is replaced
// atomically so an interrupted run never leaves a truncated document behind.
func (t *Tree) Write(ctx context.Context, f File, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dest := t.Destination(f)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Rel, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".dust-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", f.Rel, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", f.Rel, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.Rel, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", f.Rel, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("replace %s: %w", f.Rel, err)
	}
	return nil
}
