package generator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryFeed     writeCategory = "feed"
	categoryManifest writeCategory = "manifest"
)

// WriteFileRequest describes a file write routed through the artifact writer.
type WriteFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
}

// ArtifactWriter abstracts output storage so builds can target a directory
// on disk or an in-memory sink in tests.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteFileRequest) error
}

// NewDirWriter returns an ArtifactWriter rooted at dir on the local
// filesystem.
func NewDirWriter(dir string) ArtifactWriter {
	return &dirWriter{root: filepath.Clean(dir)}
}

type dirWriter struct {
	root string
}

func (w *dirWriter) EnsureDir(_ context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return os.MkdirAll(filepath.Join(w.root, filepath.FromSlash(path)), 0o755)
}

func (w *dirWriter) WriteFile(_ context.Context, req WriteFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}

	target := filepath.Join(w.root, filepath.FromSlash(req.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// MemWriter collects artifacts in memory; it backs generator tests and
// dry-run builds.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemWriter returns an empty in-memory artifact sink.
func NewMemWriter() *MemWriter {
	return &MemWriter{files: map[string][]byte{}}
}

func (w *MemWriter) EnsureDir(context.Context, string) error { return nil }

func (w *MemWriter) WriteFile(_ context.Context, req WriteFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}

	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[req.Path] = data
	return nil
}

// File returns the stored bytes for path and whether it was written.
func (w *MemWriter) File(path string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	return data, ok
}

// Paths lists every written artifact path in sorted order.
func (w *MemWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
