package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	goslug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const buildFailedCode = "GENERATOR_BUILD_FAILED"

var (
	errStoreRequired    = errors.New("generator: content store is required")
	errRendererRequired = errors.New("generator: renderer is required")
	errWriterRequired   = errors.New("generator: artifact writer is required")
)

// SiteMetadata feeds the feed channel and sitemap headers.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
}

// Config controls route layout and feed size for static builds.
type Config struct {
	Site SiteMetadata
	// PostsPrefix is the route segment for post pages (default "posts").
	PostsPrefix string
	// TagsPrefix is the route segment for tag pages (default "tags").
	TagsPrefix string
	FeedLimit  int
}

// Dependencies wires the collaborators a build needs.
type Dependencies struct {
	Store    interfaces.ContentStore
	Renderer interfaces.Renderer
	Writer   ArtifactWriter
	Logger   interfaces.Logger
}

// BuildOptions tunes a single run.
type BuildOptions struct {
	SkipPosts    bool
	SkipFeeds    bool
	SkipSitemap  bool
	SkipManifest bool
	// PreviousManifest, when supplied, lets the build report unchanged
	// pages by checksum without re-reading earlier outputs.
	PreviousManifest []byte
}

// BuildResult summarises a static build.
type BuildResult struct {
	GeneratedAt  time.Time
	Routes       []string
	PagesWritten int
	Unchanged    int
	FeedsWritten int
}

// Service executes static metadata builds: it pre-enumerates every
// addressable route from the content store, renders post fragments, and
// emits sitemap, robots, RSS/Atom feeds, and a build manifest.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	// Routes enumerates the addressable routes without writing anything.
	Routes(ctx context.Context) ([]string, error)
}

// NewService constructs a generator service. Page chrome and templating
// stay with the host; this service only emits fragments and metadata.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Store == nil {
		return nil, errStoreRequired
	}
	if deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if deps.Writer == nil {
		return nil, errWriterRequired
	}

	if strings.TrimSpace(cfg.PostsPrefix) == "" {
		cfg.PostsPrefix = "posts"
	}
	if strings.TrimSpace(cfg.TagsPrefix) == "" {
		cfg.TagsPrefix = "tags"
	}
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = defaultFeedLimit
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &service{cfg: cfg, deps: deps, logger: logger}, nil
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
}

func (s *service) Routes(ctx context.Context) ([]string, error) {
	slugs, err := s.deps.Store.Slugs(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.deps.Store.Tags(ctx)
	if err != nil {
		return nil, err
	}

	routes := []string{"/", "/archive"}
	for _, slug := range slugs {
		routes = append(routes, "/"+path.Join(s.cfg.PostsPrefix, slug))
	}
	for _, tag := range tags {
		routes = append(routes, "/"+path.Join(s.cfg.TagsPrefix, tagRouteSlug(tag)))
	}
	return routes, nil
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	result, err := s.build(ctx, opts)
	if err != nil {
		if goerrors.IsWrapped(err) {
			return nil, err
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryCommand, "static build failed").
			WithTextCode(buildFailedCode)
	}
	return result, nil
}

func (s *service) build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	generatedAt := time.Now().UTC()

	summaries, err := s.deps.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	routes, err := s.Routes(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.deps.Store.Tags(ctx)
	if err != nil {
		return nil, err
	}

	previous := newBuildManifest()
	if len(opts.PreviousManifest) > 0 {
		parsed, err := parseManifest(opts.PreviousManifest)
		if err != nil {
			s.logger.Warn("ignoring unreadable previous manifest", "error", err)
		} else {
			previous = parsed
		}
	}

	manifest := newBuildManifest()
	manifest.GeneratedAt = generatedAt
	manifest.Routes = routes
	manifest.Tags = tags

	result := &BuildResult{GeneratedAt: generatedAt, Routes: routes}

	entries := []sitemapEntry{
		{Location: absoluteURL(s.cfg.Site.BaseURL, "/"), LastMod: generatedAt},
		{Location: absoluteURL(s.cfg.Site.BaseURL, "/archive"), LastMod: generatedAt},
	}

	var items []feedItem
	for _, summary := range summaries {
		route := "/" + path.Join(s.cfg.PostsPrefix, summary.Slug)
		link := absoluteURL(s.cfg.Site.BaseURL, route)

		entries = append(entries, sitemapEntry{Location: link, LastMod: summary.Date})
		items = append(items, feedItem{
			Title:       summary.Title,
			Summary:     summary.Description,
			Link:        link,
			GUID:        feedGUID(link),
			PublishedAt: summary.Date,
		})

		if opts.SkipPosts {
			continue
		}

		written, unchanged, err := s.writePost(ctx, summary.Slug, route, previous, manifest, generatedAt)
		if err != nil {
			return nil, err
		}
		result.PagesWritten += written
		result.Unchanged += unchanged
	}

	for _, tag := range tags {
		route := "/" + path.Join(s.cfg.TagsPrefix, tagRouteSlug(tag))
		entries = append(entries, sitemapEntry{Location: absoluteURL(s.cfg.Site.BaseURL, route), LastMod: generatedAt})
	}

	if !opts.SkipSitemap {
		sitemap := buildSitemap(entries)
		if err := s.writeArtifact(ctx, "sitemap.xml", sitemap, categorySitemap, "application/xml"); err != nil {
			return nil, err
		}
		robots := buildRobots(s.cfg.Site.BaseURL, true)
		if err := s.writeArtifact(ctx, "robots.txt", robots, categoryRobots, "text/plain"); err != nil {
			return nil, err
		}
	}

	if !opts.SkipFeeds && len(items) > 0 {
		items = sortFeedItems(items, s.cfg.FeedLimit)

		rss := buildRSSFeed(s.cfg.Site, items, generatedAt)
		if err := s.writeArtifact(ctx, "feed.xml", rss, categoryFeed, "application/rss+xml"); err != nil {
			return nil, err
		}
		atom := buildAtomFeed(s.cfg.Site, items, generatedAt)
		if err := s.writeArtifact(ctx, "atom.xml", atom, categoryFeed, "application/atom+xml"); err != nil {
			return nil, err
		}
		result.FeedsWritten = 2
	}

	if !opts.SkipManifest {
		encoded, err := manifest.marshal()
		if err != nil {
			return nil, err
		}
		if err := s.writeArtifact(ctx, ManifestFileName, string(encoded), categoryManifest, "application/json"); err != nil {
			return nil, err
		}
	}

	s.logger.Info("static build complete",
		"routes", len(routes),
		"pages", result.PagesWritten,
		"unchanged", result.Unchanged,
		"feeds", result.FeedsWritten,
	)
	return result, nil
}

// writePost renders one post body fragment and records it in the manifest.
// Posts that disappear between List and Get (corpus mutated mid-build) are
// skipped rather than failing the run.
func (s *service) writePost(
	ctx context.Context,
	slug string,
	route string,
	previous *buildManifest,
	manifest *buildManifest,
	generatedAt time.Time,
) (written int, unchanged int, err error) {
	post, err := s.deps.Store.Get(ctx, slug)
	if err != nil {
		s.logger.Warn("post vanished during build, skipping", "slug", slug, "error", err)
		return 0, 0, nil
	}

	html, err := s.deps.Renderer.Render(post.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("generator: render %s: %w", slug, err)
	}

	output := path.Join(s.cfg.PostsPrefix, slug+".html")
	checksum := computeHash(post.Checksum, html)

	manifest.Pages[route] = manifestPage{
		Slug:       slug,
		Route:      route,
		Output:     output,
		Checksum:   checksum,
		RenderedAt: generatedAt,
	}

	if prev, ok := previous.Pages[route]; ok && prev.Checksum == checksum {
		unchanged = 1
	}

	if err := s.writeArtifact(ctx, output, string(html), categoryPage, "text/html"); err != nil {
		return 0, unchanged, err
	}
	return 1, unchanged, nil
}

func (s *service) writeArtifact(ctx context.Context, target, content string, category writeCategory, contentType string) error {
	dir := path.Dir(target)
	if dir != "." {
		if err := s.deps.Writer.EnsureDir(ctx, dir); err != nil {
			return err
		}
	}
	return s.deps.Writer.WriteFile(ctx, WriteFileRequest{
		Path:        target,
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    category,
		ContentType: contentType,
		Checksum:    computeHashFromString(content),
	})
}

// tagRouteSlug normalizes a tag into a URL-safe route segment. Tags that
// defeat normalization fall back to their raw spelling.
func tagRouteSlug(tag string) string {
	normalized, err := goslug.Normalize(tag)
	if err != nil || normalized == "" {
		return tag
	}
	return normalized
}

func computeHash(parts ...[]byte) string {
	hasher := sha256.New()
	for _, part := range parts {
		_, _ = hasher.Write(part)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}
