package markdown

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Sample Post" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Description != "Sample summary goes here" {
		t.Fatalf("FrontMatter Description mismatch, got %q", fm.Description)
	}
	want := time.Date(2026, time.February, 13, 10, 30, 0, 0, time.UTC)
	if !fm.Date.Equal(want) {
		t.Fatalf("FrontMatter Date mismatch, got %v", fm.Date)
	}
	if fm.Author != "Ada" {
		t.Fatalf("FrontMatter Author mismatch, got %q", fm.Author)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "go" || fm.Tags[1] != "blog" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if fm.Draft {
		t.Fatalf("expected Draft to default to false")
	}
	if fm.Custom["featured"] != true {
		t.Fatalf("FrontMatter Custom key missing: %#v", fm.Custom)
	}
	if fm.Raw["title"] != "Sample Post" {
		t.Fatalf("FrontMatter Raw title missing: %#v", fm.Raw)
	}
	if !strings.Contains(string(body), "# Sample Post") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
	if strings.Contains(string(body), "---") {
		t.Fatalf("delimiters leaked into body: %q", string(body))
	}
}

func TestParseFrontMatterWithoutHeader(t *testing.T) {
	source := []byte("# Just Markdown\n\nNo metadata here.\n")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "" {
		t.Fatalf("expected empty Title, got %q", fm.Title)
	}
	if string(body) != string(source) {
		t.Fatalf("expected body to equal source, got %q", string(body))
	}
}

func TestParseFrontMatterMalformed(t *testing.T) {
	source := []byte("---\ntitle: [unclosed\ndate: not-a-date\n---\n\nbody\n")

	if _, _, err := ParseFrontMatter(source); err == nil {
		t.Fatalf("expected error for malformed front matter")
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
