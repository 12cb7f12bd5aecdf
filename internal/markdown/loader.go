package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// LoaderConfig configures how markdown files are discovered within a
// filesystem root.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md"). Patterns may use doublestar syntax, e.g.
	// "posts/**/*.md".
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into parsed markdown files with metadata.
// The filesystem is injected so tests and hosts can substitute an in-memory
// corpus for the on-disk content directory.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// File carries a parsed document along with provenance metadata.
type File struct {
	// Path is the root-relative, slash-separated path of the source file.
	Path        string
	FrontMatter FrontMatter
	Body        []byte
	Modified    time.Time
	// Checksum is a SHA-256 digest of the raw source.
	Checksum []byte
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// FS exposes the underlying filesystem for stat-style probes.
func (l *Loader) FS() fs.FS {
	return l.fs
}

// LoadFile reads and parses a single markdown document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := filepath.ToSlash(filepath.Clean(path))

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	modified := time.Time{}
	if info, err := fs.Stat(l.fs, rel); err == nil {
		modified = info.ModTime()
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader parse %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)

	return &File{
		Path:        rel,
		FrontMatter: meta,
		Body:        body,
		Modified:    modified,
		Checksum:    sum[:],
	}, nil
}

// Walk enumerates matching files under dir and invokes fn for each path,
// without parsing. Paths are visited in lexical order per fs.WalkDir.
func (l *Loader) Walk(ctx context.Context, dir string, fn func(path string) error) error {
	root := filepath.ToSlash(filepath.Clean(dir))
	if root == "" {
		root = "."
	}

	return fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.recursive && filepath.Clean(path) != filepath.Clean(root) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel) {
			return nil
		}
		return fn(rel)
	})
}

// LoadDirectory discovers markdown files under dir and returns parsed
// documents sorted by path. Files whose front matter cannot be parsed are
// skipped and reported through the returned skip list rather than failing
// the whole enumeration.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*File, []SkippedFile, error) {
	var (
		results []*File
		skipped []SkippedFile
	)

	err := l.Walk(ctx, dir, func(path string) error {
		file, err := l.LoadFile(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			skipped = append(skipped, SkippedFile{Path: path, Err: err})
			return nil
		}
		results = append(results, file)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, skipped, nil
}

// SkippedFile records a document excluded from an enumeration because it
// could not be read or parsed.
type SkippedFile struct {
	Path string
	Err  error
}

func (l *Loader) matchesPattern(path string) bool {
	pattern := filepath.ToSlash(l.pattern)
	target := path
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(path)
	}
	match, err := doublestar.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}
