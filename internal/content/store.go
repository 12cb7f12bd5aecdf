package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	goslug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the store discovers and parses post files.
type Config struct {
	// Dir is the root-relative directory holding post files ("." for the
	// filesystem root).
	Dir string
	// Extension is the post file extension including the dot (".md").
	Extension string
	// Pattern overrides the discovery glob; defaults to "*<Extension>".
	Pattern string
	// Recursive enables sub-directory traversal.
	Recursive bool
	// IncludeDrafts surfaces draft posts in listings. Direct Get calls
	// always resolve drafts so previews keep working.
	IncludeDrafts bool
	// StrictFrontMatter validates front matter against the metadata
	// schema; violations are treated like malformed documents.
	StrictFrontMatter bool
}

// Store is the filesystem-backed implementation of interfaces.ContentStore.
// It holds no cache: every query re-reads the injected filesystem, so the
// store stays correct under out-of-band corpus updates and is trivially
// safe for concurrent readers.
//
// Malformed documents (unreadable files, broken front matter, strict-mode
// schema violations) are skipped from listings with a warning and resolve
// to ErrPostNotFound on direct fetch. The store never silently fabricates
// defaults for broken metadata.
type Store struct {
	loader    *markdown.Loader
	validator *SchemaValidator
	logger    interfaces.Logger
	dir       string
	ext       string
	drafts    bool
}

var _ interfaces.ContentStore = (*Store)(nil)

// NewStore constructs a Store over the provided read-only filesystem. A nil
// logger falls back to the no-op implementation.
func NewStore(filesystem fs.FS, cfg Config, logger interfaces.Logger) (*Store, error) {
	if filesystem == nil {
		return nil, errors.New("content: filesystem is required")
	}

	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = ".md"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*" + ext
	}

	dir := path.Clean(strings.TrimSpace(cfg.Dir))
	if dir == "" || dir == "/" {
		dir = "."
	}

	if logger == nil {
		logger = logging.NoOp()
	}

	var validator *SchemaValidator
	if cfg.StrictFrontMatter {
		compiled, err := NewSchemaValidator()
		if err != nil {
			return nil, err
		}
		validator = compiled
	}

	return &Store{
		loader: markdown.NewLoader(filesystem, markdown.LoaderConfig{
			Pattern:   pattern,
			Recursive: cfg.Recursive,
		}),
		validator: validator,
		logger:    logger,
		dir:       dir,
		ext:       ext,
		drafts:    cfg.IncludeDrafts,
	}, nil
}

// Slugs enumerates every addressable post identifier in discovery order.
func (s *Store) Slugs(ctx context.Context) ([]string, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(posts))
	for _, post := range posts {
		slugs = append(slugs, post.Slug)
	}
	return slugs, nil
}

// Get loads the single post whose filename stem matches slug. Missing and
// malformed documents both resolve to ErrPostNotFound.
func (s *Store) Get(ctx context.Context, slug string) (*interfaces.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}

	filePath, err := s.resolvePath(ctx, slug)
	if err != nil {
		return nil, err
	}

	file, err := s.loader.LoadFile(ctx, filePath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("post unparseable, treating as not found", "path", filePath, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}

	if err := s.validateFrontMatter(file); err != nil {
		s.logger.Warn("post failed front matter validation, treating as not found", "path", filePath, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}

	return s.toPost(file), nil
}

// List returns all post summaries sorted by date descending (stable).
func (s *Store) List(ctx context.Context) ([]interfaces.PostSummary, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]interfaces.PostSummary, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, post.PostSummary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Date.After(summaries[j].Date)
	})
	return summaries, nil
}

// Recent returns the first n entries of List.
func (s *Store) Recent(ctx context.Context, n int) ([]interfaces.PostSummary, error) {
	if n <= 0 {
		return []interfaces.PostSummary{}, nil
	}

	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(summaries) > n {
		summaries = summaries[:n]
	}
	return summaries, nil
}

// Archive partitions List into contiguous calendar month groups. Flattening
// the groups reproduces List exactly.
func (s *Store) Archive(ctx context.Context) ([]interfaces.ArchiveGroup, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var groups []interfaces.ArchiveGroup
	for _, summary := range summaries {
		label := summary.Date.Format("January 2006")
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, interfaces.ArchiveGroup{Label: label})
		}
		last := len(groups) - 1
		groups[last].Posts = append(groups[last].Posts, summary)
	}
	return groups, nil
}

// Tags returns every tag in use, deduplicated and sorted ascending.
func (s *Store) Tags(ctx context.Context) ([]string, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var tags []string
	for _, post := range posts {
		for _, tag := range post.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	sort.Strings(tags)
	return tags, nil
}

// ByTag filters List down to posts carrying tag exactly (case-sensitive).
// Unknown tags yield an empty slice, not an error.
func (s *Store) ByTag(ctx context.Context, tag string) ([]interfaces.PostSummary, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]interfaces.PostSummary, 0, len(summaries))
	for _, summary := range summaries {
		for _, candidate := range summary.Tags {
			if candidate == tag {
				matched = append(matched, summary)
				break
			}
		}
	}
	return matched, nil
}

// Adjacent locates slug within the date-descending listing and returns its
// chronological neighbors. Unknown slugs yield an empty Neighbors value.
func (s *Store) Adjacent(ctx context.Context, slug string) (interfaces.Neighbors, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return interfaces.Neighbors{}, ErrSlugRequired
	}

	summaries, err := s.List(ctx)
	if err != nil {
		return interfaces.Neighbors{}, err
	}

	index := -1
	for i, summary := range summaries {
		if summary.Slug == slug {
			index = i
			break
		}
	}
	if index < 0 {
		return interfaces.Neighbors{}, nil
	}

	var neighbors interfaces.Neighbors
	if index+1 < len(summaries) {
		older := summaries[index+1]
		neighbors.Previous = &older
	}
	if index > 0 {
		newer := summaries[index-1]
		neighbors.Next = &newer
	}
	return neighbors, nil
}

// load reads every post fresh from the filesystem, skipping documents that
// fail to parse or validate.
func (s *Store) load(ctx context.Context) ([]*interfaces.Post, error) {
	files, skipped, err := s.loader.LoadDirectory(ctx, s.dir)
	if err != nil {
		return nil, fmt.Errorf("content: list posts: %w", err)
	}

	for _, skip := range skipped {
		s.logger.Warn("skipping unparseable post", "path", skip.Path, "error", skip.Err)
	}

	posts := make([]*interfaces.Post, 0, len(files))
	for _, file := range files {
		if err := s.validateFrontMatter(file); err != nil {
			s.logger.Warn("skipping post with invalid front matter", "path", file.Path, "error", err)
			continue
		}
		if file.FrontMatter.Draft && !s.drafts {
			continue
		}

		post := s.toPost(file)
		if !goslug.IsValid(post.Slug) {
			s.logger.Warn("post filename is not a canonical slug", "path", file.Path, "slug", post.Slug)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Store) validateFrontMatter(file *markdown.File) error {
	if s.validator == nil {
		return nil
	}
	return s.validator.Validate(file.FrontMatter.Raw)
}

func (s *Store) toPost(file *markdown.File) *interfaces.Post {
	return &interfaces.Post{
		PostSummary: interfaces.PostSummary{
			Slug:        slugFromPath(file.Path),
			Title:       file.FrontMatter.Title,
			Description: file.FrontMatter.Description,
			Date:        file.FrontMatter.Date,
			Author:      file.FrontMatter.Author,
			Tags:        append([]string(nil), file.FrontMatter.Tags...),
		},
		Body:         file.Body,
		FilePath:     file.Path,
		LastModified: file.Modified,
		Checksum:     file.Checksum,
	}
}

// resolvePath maps slug onto the backing file path. The direct join covers
// flat layouts; recursive stores fall back to a walk so nested posts stay
// addressable by stem.
func (s *Store) resolvePath(ctx context.Context, slug string) (string, error) {
	direct := path.Join(s.dir, slug+s.ext)
	if _, err := fs.Stat(s.loader.FS(), direct); err == nil {
		return direct, nil
	}

	var found string
	err := s.loader.Walk(ctx, s.dir, func(p string) error {
		if slugFromPath(p) == slug && found == "" {
			found = p
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}
	return found, nil
}

// slugFromPath derives the identifier from a filename: base name minus
// extension. Uniqueness across the corpus is a configuration concern.
func slugFromPath(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
