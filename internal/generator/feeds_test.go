package generator

import (
	"strings"
	"testing"
	"time"
)

func TestFeedGUIDStable(t *testing.T) {
	link := "https://blog.example.com/posts/post-a"

	first := feedGUID(link)
	second := feedGUID(link)
	if first != second {
		t.Fatalf("expected stable guid, got %q and %q", first, second)
	}
	if first == feedGUID("https://blog.example.com/posts/post-b") {
		t.Fatalf("expected distinct guids per link")
	}
}

func TestSortFeedItems(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC)
	}
	items := []feedItem{
		{Title: "old", GUID: "b", PublishedAt: day(1)},
		{Title: "new", GUID: "c", PublishedAt: day(20)},
		{Title: "mid", GUID: "a", PublishedAt: day(10)},
	}

	sorted := sortFeedItems(items, 2)
	if len(sorted) != 2 {
		t.Fatalf("expected limit to trim items, got %d", len(sorted))
	}
	if sorted[0].Title != "new" || sorted[1].Title != "mid" {
		t.Fatalf("expected date-descending order, got %q %q", sorted[0].Title, sorted[1].Title)
	}
}

func TestSortFeedItemsTiebreakByGUID(t *testing.T) {
	instant := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	items := []feedItem{
		{GUID: "bbb", PublishedAt: instant},
		{GUID: "aaa", PublishedAt: instant},
	}

	sorted := sortFeedItems(items, 0)
	if sorted[0].GUID != "aaa" {
		t.Fatalf("expected guid tiebreak, got %q first", sorted[0].GUID)
	}
}

func TestBuildRSSFeedEscapesContent(t *testing.T) {
	generatedAt := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	feed := buildRSSFeed(SiteMetadata{Title: "T&C <Blog>"}, []feedItem{
		{Title: "Ampersands & angles <here>", Link: "https://x.example/a?b=1&c=2", GUID: "g", PublishedAt: generatedAt},
	}, generatedAt)

	if strings.Contains(feed, "T&C <Blog>") {
		t.Fatalf("expected escaped channel title:\n%s", feed)
	}
	if !strings.Contains(feed, "Ampersands &amp; angles &lt;here&gt;") {
		t.Fatalf("expected escaped item title:\n%s", feed)
	}
	if !strings.Contains(feed, "b=1&amp;c=2") {
		t.Fatalf("expected escaped link:\n%s", feed)
	}
}

func TestBuildAtomFeedFallbacks(t *testing.T) {
	generatedAt := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	feed := buildAtomFeed(SiteMetadata{}, []feedItem{
		{Title: "No dates", GUID: "g", Link: "http://localhost/posts/x"},
	}, generatedAt)

	if !strings.Contains(feed, "<title>Blog Feed</title>") {
		t.Fatalf("expected fallback feed title:\n%s", feed)
	}
	// Items without timestamps fall back to the build time.
	if !strings.Contains(feed, "<updated>2026-02-13T12:00:00Z</updated>") {
		t.Fatalf("expected build-time fallback for updated:\n%s", feed)
	}
}
