package blog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/generator"
)

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"hello-world.md": {Data: []byte(`---
title: Hello World
description: The first post
date: 2026-02-13T00:00:00Z
tags:
  - intro
---

Welcome to **the blog**.
`)},
		"second-post.md": {Data: []byte(`---
title: Second Post
description: A follow-up
date: 2026-02-20T00:00:00Z
tags:
  - intro
  - updates
---

More content here.
`)},
	}
}

func newTestBlog(tb testing.TB, cfg Config, opts ...Option) *Blog {
	tb.Helper()
	cfg.Logging.Enabled = false
	opts = append([]Option{WithFS(fixtureFS())}, opts...)
	module, err := New(cfg, opts...)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	return module
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Dir = ""

	if _, err := New(cfg); !errors.Is(err, ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestBlogContentQueries(t *testing.T) {
	module := newTestBlog(t, DefaultConfig())
	ctx := context.Background()

	summaries, err := module.Content().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 || summaries[0].Slug != "second-post" {
		t.Fatalf("unexpected listing: %+v", summaries)
	}

	tags, err := module.Content().Tags(ctx)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "intro" || tags[1] != "updates" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestBlogRenderPost(t *testing.T) {
	module := newTestBlog(t, DefaultConfig())

	post, err := module.RenderPost(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("RenderPost: %v", err)
	}
	if len(post.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be populated")
	}
	if !strings.Contains(string(post.BodyHTML), "<strong") {
		t.Fatalf("expected styled markup, got %q", string(post.BodyHTML))
	}
}

func TestBlogRenderPostUnknown(t *testing.T) {
	module := newTestBlog(t, DefaultConfig())

	if _, err := module.RenderPost(context.Background(), "nope"); !errors.Is(err, content.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestBlogGenerateDisabled(t *testing.T) {
	module := newTestBlog(t, DefaultConfig())

	if _, err := module.Generate(context.Background(), generator.BuildOptions{}); !errors.Is(err, ErrGeneratorDisabled) {
		t.Fatalf("expected ErrGeneratorDisabled, got %v", err)
	}
	if module.Generator() != nil {
		t.Fatalf("expected nil generator when disabled")
	}
}

func TestBlogGenerate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.Enabled = true
	cfg.Generator.BaseURL = "https://blog.example.com"
	cfg.Generator.SiteTitle = "Example"

	writer := generator.NewMemWriter()
	module := newTestBlog(t, cfg, WithArtifactWriter(writer))

	result, err := module.Generate(context.Background(), generator.BuildOptions{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.PagesWritten != 2 {
		t.Fatalf("expected 2 pages, got %d", result.PagesWritten)
	}

	if _, ok := writer.File("posts/hello-world.html"); !ok {
		t.Fatalf("expected rendered page, wrote %v", writer.Paths())
	}
	if _, ok := writer.File("sitemap.xml"); !ok {
		t.Fatalf("expected sitemap, wrote %v", writer.Paths())
	}
}
