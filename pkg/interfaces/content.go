package interfaces

import (
	"context"
	"time"
)

// PostSummary is a post record without its body, used for listing views
// (indexes, archives, tag pages). Fields mirror the front matter of the
// backing file.
type PostSummary struct {
	// Slug is the stable identifier derived from the filename minus its
	// extension. It is unique within a store; duplicate stems across
	// extensions are a configuration error.
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// Post is a fully loaded document: summary metadata plus the raw markdown
// body. BodyHTML is populated lazily by callers that render the post.
type Post struct {
	PostSummary

	Body     []byte `json:"body"`
	BodyHTML []byte `json:"body_html,omitempty"`

	// FilePath is the store-relative path of the backing file.
	FilePath     string    `json:"file_path"`
	LastModified time.Time `json:"last_modified"`
	// Checksum stores a SHA-256 digest of the raw file so generator runs
	// can detect changes without re-rendering unchanged posts.
	Checksum []byte `json:"checksum,omitempty"`
}

// ArchiveGroup is a contiguous run of posts sharing a calendar month,
// labelled "January 2006". Groups and their posts preserve the
// date-descending order of List.
type ArchiveGroup struct {
	Label string        `json:"label"`
	Posts []PostSummary `json:"posts"`
}

// Neighbors carries the chronological neighbors of a post within the
// date-descending listing. Previous points at the older post, Next at the
// newer one; either may be nil at the respective boundary, and both are
// nil when the slug is unknown or the store holds a single post.
type Neighbors struct {
	Previous *PostSummary `json:"previous,omitempty"`
	Next     *PostSummary `json:"next,omitempty"`
}

// ContentStore exposes read-only queries over a directory of markdown
// posts. Implementations read fresh from the backing filesystem on every
// call and hold no mutable state, so a single instance is safe for
// concurrent use as long as the corpus is not mutated underneath it.
type ContentStore interface {
	// Slugs enumerates every addressable post identifier. Ordering is
	// stable per underlying directory enumeration only.
	Slugs(ctx context.Context) ([]string, error)
	// Get loads a single post including its body. A missing or
	// unparseable file yields content.ErrPostNotFound; callers should
	// treat that as a normal outcome, not a fault.
	Get(ctx context.Context, slug string) (*Post, error)
	// List returns all post summaries sorted by date descending. Ties
	// keep their enumeration order (stable sort).
	List(ctx context.Context) ([]PostSummary, error)
	// Recent returns the first n entries of List, or everything when
	// fewer than n posts exist.
	Recent(ctx context.Context, n int) ([]PostSummary, error)
	// Archive partitions List into contiguous month groups.
	Archive(ctx context.Context) ([]ArchiveGroup, error)
	// Tags returns every tag in use, deduplicated and sorted ascending.
	Tags(ctx context.Context) ([]string, error)
	// ByTag filters List down to posts carrying the tag exactly
	// (case-sensitive). Unknown tags yield an empty slice.
	ByTag(ctx context.Context, tag string) ([]PostSummary, error)
	// Adjacent locates slug within List and returns its chronological
	// neighbors.
	Adjacent(ctx context.Context, slug string) (Neighbors, error)
}
