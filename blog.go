// Package blog assembles a file-backed blog content library: a read-only
// post store over markdown files with YAML front matter, a styled markdown
// renderer, and a static metadata generator. Page templating, routing, and
// theming remain with the host application.
package blog

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrGeneratorDisabled is returned by Generate when the generator feature
// was not enabled in the configuration.
var ErrGeneratorDisabled = errors.New("blog: generator is disabled")

// Blog is the assembled module. A single instance is safe for concurrent
// readers; the backing corpus must not be mutated while queries run.
type Blog struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	store     interfaces.ContentStore
	renderer  interfaces.Renderer
	generator generator.Service
}

type options struct {
	fsys     fs.FS
	provider interfaces.LoggerProvider
	renderer interfaces.Renderer
	writer   generator.ArtifactWriter
}

// Option customises module assembly.
type Option func(*options)

// WithFS substitutes the content filesystem, e.g. an fstest.MapFS fixture
// or an embedded corpus. Defaults to os.DirFS over Content.Dir.
func WithFS(fsys fs.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

// WithLoggerProvider installs a host logger provider instead of the
// config-driven go-logger one.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) { o.provider = provider }
}

// WithRenderer substitutes the markdown renderer.
func WithRenderer(renderer interfaces.Renderer) Option {
	return func(o *options) { o.renderer = renderer }
}

// WithArtifactWriter substitutes the generator output sink.
func WithArtifactWriter(writer generator.ArtifactWriter) Option {
	return func(o *options) { o.writer = writer }
}

// New validates cfg and wires the store, renderer, and (optionally) the
// static generator.
func New(cfg Config, opts ...Option) (*Blog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var assembled options
	for _, opt := range opts {
		opt(&assembled)
	}

	provider := assembled.provider
	if provider == nil && cfg.Logging.Enabled {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	fsys := assembled.fsys
	contentDir := "."
	if fsys == nil {
		fsys = os.DirFS(cfg.Content.Dir)
	}

	store, err := content.NewStore(fsys, content.Config{
		Dir:               contentDir,
		Extension:         cfg.Content.Extension,
		Pattern:           cfg.Content.Pattern,
		Recursive:         cfg.Content.Recursive,
		IncludeDrafts:     cfg.Content.IncludeDrafts,
		StrictFrontMatter: cfg.Content.StrictFrontMatter,
	}, logging.ContentLogger(provider))
	if err != nil {
		return nil, err
	}

	renderer := assembled.renderer
	if renderer == nil {
		styles := markdown.DefaultStyleClasses()
		if cfg.Markdown.Styles != nil {
			styles = *cfg.Markdown.Styles
		}
		renderer = markdown.NewRenderer(cfg.Markdown.Parser, styles)
	}

	blog := &Blog{
		cfg:      cfg,
		provider: provider,
		store:    store,
		renderer: renderer,
	}

	if cfg.Generator.Enabled {
		writer := assembled.writer
		if writer == nil {
			writer = generator.NewDirWriter(cfg.Generator.OutputDir)
		}
		svc, err := generator.NewService(generator.Config{
			Site: generator.SiteMetadata{
				Title:       cfg.Generator.SiteTitle,
				Description: cfg.Generator.SiteDescription,
				BaseURL:     cfg.Generator.BaseURL,
			},
			PostsPrefix: cfg.Generator.PostsPrefix,
			TagsPrefix:  cfg.Generator.TagsPrefix,
			FeedLimit:   cfg.Generator.FeedLimit,
		}, generator.Dependencies{
			Store:    store,
			Renderer: renderer,
			Writer:   writer,
			Logger:   logging.GeneratorLogger(provider),
		})
		if err != nil {
			return nil, err
		}
		blog.generator = svc
	}

	return blog, nil
}

// Content returns the post store.
func (b *Blog) Content() interfaces.ContentStore {
	return b.store
}

// Markdown returns the configured renderer.
func (b *Blog) Markdown() interfaces.Renderer {
	return b.renderer
}

// RenderPost loads a post and populates BodyHTML with the rendered body.
func (b *Blog) RenderPost(ctx context.Context, slug string) (*interfaces.Post, error) {
	post, err := b.store.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	html, err := b.renderer.Render(post.Body)
	if err != nil {
		return nil, err
	}
	post.BodyHTML = html
	return post, nil
}

// Generate runs a static build when the generator feature is enabled.
func (b *Blog) Generate(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	if b.generator == nil {
		return nil, ErrGeneratorDisabled
	}
	return b.generator.Build(ctx, opts)
}

// Generator exposes the build service; nil when the feature is disabled.
func (b *Blog) Generator() generator.Service {
	return b.generator
}
