package content

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// corpusFS builds the three-post fixture used across the query tests:
// post-a (2026-02-13), post-c (2026-02-10), post-b (2026-01-15).
func corpusFS() fstest.MapFS {
	return fstest.MapFS{
		"post-a.md": {Data: []byte(`---
title: Post A
description: First February post
date: 2026-02-13T00:00:00Z
tags:
  - alpha
  - shared
---

Body of post A.
`)},
		"post-b.md": {Data: []byte(`---
title: Post B
description: January post
date: 2026-01-15T00:00:00Z
author: Ada
tags:
  - beta
---

Body of post B.
`)},
		"post-c.md": {Data: []byte(`---
title: Post C
description: Second February post
date: 2026-02-10T00:00:00Z
tags:
  - gamma
  - shared
---

Body of post C.
`)},
	}
}

func newTestStore(tb testing.TB, fsys fstest.MapFS, cfg Config) *Store {
	tb.Helper()
	store, err := NewStore(fsys, cfg, nil)
	if err != nil {
		tb.Fatalf("NewStore: %v", err)
	}
	return store
}

func slugsOf(summaries []interfaces.PostSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, summary.Slug)
	}
	return out
}

func assertSlugs(tb testing.TB, got []interfaces.PostSummary, want ...string) {
	tb.Helper()
	slugs := slugsOf(got)
	if len(slugs) != len(want) {
		tb.Fatalf("expected slugs %v, got %v", want, slugs)
	}
	for i := range want {
		if slugs[i] != want[i] {
			tb.Fatalf("expected slugs %v, got %v", want, slugs)
		}
	}
}

func TestStoreSlugs(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})

	slugs, err := store.Slugs(context.Background())
	if err != nil {
		t.Fatalf("Slugs: %v", err)
	}
	if len(slugs) != 3 {
		t.Fatalf("expected 3 slugs, got %v", slugs)
	}
}

func TestStoreGet(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})

	post, err := store.Get(context.Background(), "post-b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if post.Slug != "post-b" || post.Title != "Post B" {
		t.Fatalf("unexpected post: %#v", post.PostSummary)
	}
	if post.Author != "Ada" {
		t.Fatalf("expected author from front matter, got %q", post.Author)
	}
	if len(post.Body) == 0 || len(post.Checksum) == 0 {
		t.Fatalf("expected body and checksum to be populated")
	}
	if post.FilePath != "post-b.md" {
		t.Fatalf("expected file path, got %q", post.FilePath)
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})

	_, err := store.Get(context.Background(), "no-such-post")
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestStoreGetEmptySlug(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})

	if _, err := store.Get(context.Background(), "  "); !errors.Is(err, ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
}

func TestStoreGetNested(t *testing.T) {
	fsys := corpusFS()
	fsys["2026/post-d.md"] = &fstest.MapFile{Data: []byte(`---
title: Post D
description: Nested post
date: 2026-03-01T00:00:00Z
---

Body of post D.
`)}
	store := newTestStore(t, fsys, Config{Recursive: true})

	post, err := store.Get(context.Background(), "post-d")
	if err != nil {
		t.Fatalf("Get nested: %v", err)
	}
	if post.FilePath != "2026/post-d.md" {
		t.Fatalf("expected nested path, got %q", post.FilePath)
	}
}

func TestStoreList(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})

	summaries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertSlugs(t, summaries, "post-a", "post-c", "post-b")
}

func TestStoreListStableForEqualDates(t *testing.T) {
	fsys := corpusFS()
	fsys["post-d.md"] = &fstest.MapFile{Data: []byte(`---
title: Post D
description: Same instant as post A
date: 2026-02-13T00:00:00Z
---

Body.
`)}
	store := newTestStore(t, fsys, Config{})

	// Equal dates keep discovery (path) order relative to each other.
	summaries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertSlugs(t, summaries, "post-a", "post-d", "post-c", "post-b")
}

func TestStoreRecent(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})
	ctx := context.Background()

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	assertSlugs(t, recent, "post-a", "post-c")

	all, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	assertSlugs(t, all, "post-a", "post-c", "post-b")

	none, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result for n=0, got %v", slugsOf(none))
	}
}

func TestStoreArchive(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})

	groups, err := store.Archive(context.Background())
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 month groups, got %d", len(groups))
	}
	if groups[0].Label != "February 2026" || groups[1].Label != "January 2026" {
		t.Fatalf("unexpected group labels: %q, %q", groups[0].Label, groups[1].Label)
	}
	assertSlugs(t, groups[0].Posts, "post-a", "post-c")
	assertSlugs(t, groups[1].Posts, "post-b")

	// Flattening the groups reproduces the full listing.
	var flattened []interfaces.PostSummary
	for _, group := range groups {
		flattened = append(flattened, group.Posts...)
	}
	assertSlugs(t, flattened, "post-a", "post-c", "post-b")
}

func TestStoreTags(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})

	tags, err := store.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}

	want := []string{"alpha", "beta", "gamma", "shared"}
	if len(tags) != len(want) {
		t.Fatalf("expected tags %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected tags %v, got %v", want, tags)
		}
	}
}

func TestStoreByTag(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})
	ctx := context.Background()

	shared, err := store.ByTag(ctx, "shared")
	if err != nil {
		t.Fatalf("ByTag: %v", err)
	}
	assertSlugs(t, shared, "post-a", "post-c")

	unknown, err := store.ByTag(ctx, "nope")
	if err != nil {
		t.Fatalf("ByTag: %v", err)
	}
	if len(unknown) != 0 {
		t.Fatalf("expected empty result for unknown tag, got %v", slugsOf(unknown))
	}
}

func TestStoreAdjacent(t *testing.T) {
	store := newTestStore(t, corpusFS(), Config{})
	ctx := context.Background()

	middle, err := store.Adjacent(ctx, "post-c")
	if err != nil {
		t.Fatalf("Adjacent: %v", err)
	}
	if middle.Previous == nil || middle.Previous.Slug != "post-b" {
		t.Fatalf("expected previous post-b, got %#v", middle.Previous)
	}
	if middle.Next == nil || middle.Next.Slug != "post-a" {
		t.Fatalf("expected next post-a, got %#v", middle.Next)
	}

	newest, err := store.Adjacent(ctx, "post-a")
	if err != nil {
		t.Fatalf("Adjacent: %v", err)
	}
	if newest.Next != nil {
		t.Fatalf("expected no newer neighbor for newest post, got %#v", newest.Next)
	}
	if newest.Previous == nil || newest.Previous.Slug != "post-c" {
		t.Fatalf("expected previous post-c, got %#v", newest.Previous)
	}

	oldest, err := store.Adjacent(ctx, "post-b")
	if err != nil {
		t.Fatalf("Adjacent: %v", err)
	}
	if oldest.Previous != nil {
		t.Fatalf("expected no older neighbor for oldest post, got %#v", oldest.Previous)
	}

	unknown, err := store.Adjacent(ctx, "no-such-post")
	if err != nil {
		t.Fatalf("Adjacent: %v", err)
	}
	if unknown.Previous != nil || unknown.Next != nil {
		t.Fatalf("expected empty neighbors for unknown slug, got %#v", unknown)
	}
}

func TestStoreSkipsMalformedPosts(t *testing.T) {
	fsys := corpusFS()
	fsys["broken.md"] = &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\n\nbody\n")}
	store := newTestStore(t, fsys, Config{})

	summaries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertSlugs(t, summaries, "post-a", "post-c", "post-b")

	if _, err := store.Get(context.Background(), "broken"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for malformed post, got %v", err)
	}
}

func TestStoreDrafts(t *testing.T) {
	fsys := corpusFS()
	fsys["draft-post.md"] = &fstest.MapFile{Data: []byte(`---
title: Draft
description: Not published yet
date: 2026-02-20T00:00:00Z
draft: true
---

Draft body.
`)}
	ctx := context.Background()

	store := newTestStore(t, fsys, Config{})
	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertSlugs(t, summaries, "post-a", "post-c", "post-b")

	// Direct fetch still resolves drafts so previews work.
	if _, err := store.Get(ctx, "draft-post"); err != nil {
		t.Fatalf("Get draft: %v", err)
	}

	withDrafts := newTestStore(t, fsys, Config{IncludeDrafts: true})
	summaries, err = withDrafts.List(ctx)
	if err != nil {
		t.Fatalf("List with drafts: %v", err)
	}
	assertSlugs(t, summaries, "draft-post", "post-a", "post-c", "post-b")
}

func TestStoreStrictFrontMatter(t *testing.T) {
	fsys := corpusFS()
	fsys["incomplete.md"] = &fstest.MapFile{Data: []byte(`---
title: Incomplete
date: 2026-02-18T00:00:00Z
---

No description.
`)}
	store := newTestStore(t, fsys, Config{StrictFrontMatter: true})
	ctx := context.Background()

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertSlugs(t, summaries, "post-a", "post-c", "post-b")

	if _, err := store.Get(ctx, "incomplete"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound under strict validation, got %v", err)
	}
}

func TestStoreEmptyCorpus(t *testing.T) {
	store := newTestStore(t, fstest.MapFS{}, Config{})
	ctx := context.Background()

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty listing, got %v", slugsOf(summaries))
	}

	groups, err := store.Archive(ctx)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no archive groups, got %d", len(groups))
	}

	tags, err := store.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags)
	}
}
