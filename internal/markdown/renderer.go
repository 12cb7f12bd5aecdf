package markdown

import (
	"bytes"
	stdhtml "html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Renderer implements interfaces.Renderer using the goldmark engine with
// the styling extension applied. The renderer is intentionally stateless so
// callers can reuse a single instance across requests without locking, and
// its output is a pure function of the input bytes and options.
type Renderer struct {
	defaultOptions interfaces.ParseOptions
	classes        StyleClasses
}

// NewRenderer constructs a renderer with the supplied defaults. A zero
// StyleClasses value renders unannotated HTML.
func NewRenderer(defaults interfaces.ParseOptions, classes StyleClasses) *Renderer {
	return &Renderer{
		defaultOptions: defaults,
		classes:        classes,
	}
}

// Render satisfies interfaces.Renderer by converting markdown into styled
// HTML using the renderer's default configuration.
func (r *Renderer) Render(markdown []byte) ([]byte, error) {
	return r.RenderWithOptions(markdown, r.defaultOptions)
}

// RenderWithOptions converts markdown into styled HTML using the provided
// options. Input that the engine cannot process degrades to escaped
// paragraph output; the method never fails on malformed markup.
func (r *Renderer) RenderWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	out, err := r.convert(markdown, mergeParseOptions(r.defaultOptions, opts))
	if err != nil {
		return renderPlainText(markdown, r.classes.Paragraph), nil
	}
	return out, nil
}

func (r *Renderer) convert(markdown []byte, opts interfaces.ParseOptions) (out []byte, err error) {
	// Convert only errors on writer failures, but arbitrary user input must
	// never take down a request; a parser panic degrades like an error.
	defer func() {
		if recovered := recover(); recovered != nil {
			out = nil
			err = errRenderPanic
		}
	}()

	engine := newEngine(opts, r.classes)
	var buf bytes.Buffer
	if convertErr := engine.Convert(markdown, &buf); convertErr != nil {
		return nil, convertErr
	}
	return buf.Bytes(), nil
}

var errRenderPanic = &renderError{msg: "markdown render: engine panic"}

type renderError struct {
	msg string
}

func (e *renderError) Error() string { return e.msg }

// renderPlainText is the degraded path for input the engine rejects: each
// blank-line-separated chunk becomes an escaped paragraph.
func renderPlainText(markdown []byte, paragraphClass string) []byte {
	text := strings.ReplaceAll(string(markdown), "\r\n", "\n")

	var builder strings.Builder
	for _, chunk := range strings.Split(text, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		builder.WriteString("<p")
		if paragraphClass != "" {
			builder.WriteString(` class="`)
			builder.WriteString(stdhtml.EscapeString(paragraphClass))
			builder.WriteString(`"`)
		}
		builder.WriteString(">")
		builder.WriteString(stdhtml.EscapeString(chunk))
		builder.WriteString("</p>\n")
	}
	return []byte(builder.String())
}

// newEngine builds a goldmark.Markdown configured from the supplied parse
// options. The mapping is intentionally conservative; unsupported extension
// names are ignored.
func newEngine(opts interfaces.ParseOptions, classes StyleClasses) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)
	exts = append(exts, NewStyling(classes))

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Treat both SafeMode and Sanitize as signals to avoid emitting raw HTML.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithExtensions(exts...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	merged := base
	if len(override.Extensions) > 0 {
		merged.Extensions = override.Extensions
	}
	if override.Sanitize {
		merged.Sanitize = true
	}
	if override.SafeMode {
		merged.SafeMode = true
	}
	if override.HardWraps {
		merged.HardWraps = true
	}
	return merged
}
