package interfaces

// Renderer defines how raw markdown bytes are converted into styled HTML.
// Implementations must be deterministic and stateless so a single instance
// can be shared across requests without locking, and must never fail fatally
// on malformed input: unrecognizable markup degrades to escaped paragraph
// text.
type Renderer interface {
	// Render converts markdown into HTML using the renderer's defaults.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts markdown into HTML using the supplied
	// overrides.
	RenderWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	// Extensions selects goldmark extensions by name (gfm, table,
	// strikethrough, linkify, tasklist, ...). Empty means the GFM default
	// set.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	// Sanitize and SafeMode both suppress raw HTML passthrough.
	Sanitize  bool `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	SafeMode  bool `json:"safe_mode,omitempty" yaml:"safe_mode,omitempty"`
	HardWraps bool `json:"hard_wraps,omitempty" yaml:"hard_wraps,omitempty"`
}
