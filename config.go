package blog

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	// ErrContentDirRequired indicates the store has nowhere to read from.
	ErrContentDirRequired = errors.New("blog config: content directory is required")
	// ErrGeneratorOutputDirRequired indicates static builds were enabled
	// without a target directory.
	ErrGeneratorOutputDirRequired = errors.New("blog config: generator output directory is required when generator is enabled")
	// ErrLoggingLevelInvalid rejects unknown log levels.
	ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
	// ErrLoggingFormatInvalid rejects unknown log formats.
	ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")
)

// Config aggregates the module's settings. Fields intentionally use simple
// types so host applications can unmarshal them from YAML or flags.
type Config struct {
	Content   ContentConfig   `json:"content" yaml:"content"`
	Markdown  MarkdownConfig  `json:"markdown" yaml:"markdown"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// ContentConfig captures configuration for the content store.
type ContentConfig struct {
	// Dir is the directory holding post files.
	Dir string `json:"dir" yaml:"dir"`
	// Extension is the post file extension (default ".md").
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
	// Pattern overrides the discovery glob (doublestar syntax supported).
	Pattern           string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Recursive         bool   `json:"recursive" yaml:"recursive"`
	IncludeDrafts     bool   `json:"include_drafts" yaml:"include_drafts"`
	StrictFrontMatter bool   `json:"strict_front_matter" yaml:"strict_front_matter"`
}

// MarkdownConfig captures renderer behaviour.
type MarkdownConfig struct {
	Parser interfaces.ParseOptions `json:"parser" yaml:"parser"`
	// Styles overrides the per-construct class mapping. Nil keeps the
	// default mapping.
	Styles *markdown.StyleClasses `json:"styles,omitempty" yaml:"styles,omitempty"`
}

// GeneratorConfig captures static build settings.
type GeneratorConfig struct {
	Enabled         bool   `json:"enabled" yaml:"enabled"`
	OutputDir       string `json:"output_dir" yaml:"output_dir"`
	BaseURL         string `json:"base_url" yaml:"base_url"`
	SiteTitle       string `json:"site_title" yaml:"site_title"`
	SiteDescription string `json:"site_description" yaml:"site_description"`
	PostsPrefix     string `json:"posts_prefix,omitempty" yaml:"posts_prefix,omitempty"`
	TagsPrefix      string `json:"tags_prefix,omitempty" yaml:"tags_prefix,omitempty"`
	FeedLimit       int    `json:"feed_limit,omitempty" yaml:"feed_limit,omitempty"`
}

// LoggingConfig wires the go-logger provider.
type LoggingConfig struct {
	Enabled   bool     `json:"enabled" yaml:"enabled"`
	Level     string   `json:"level" yaml:"level"`
	Format    string   `json:"format" yaml:"format"`
	AddSource bool     `json:"add_source" yaml:"add_source"`
	Focus     []string `json:"focus,omitempty" yaml:"focus,omitempty"`
}

// DefaultConfig returns the settings a host can run with unmodified:
// markdown posts under ./content, GFM defaults, generator disabled.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "content",
			Extension: ".md",
			Recursive: true,
		},
		Generator: GeneratorConfig{
			OutputDir:   "dist",
			PostsPrefix: "posts",
			TagsPrefix:  "tags",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Format:  "console",
		},
	}
}

// Validate reports configuration errors before any component is built.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.Content,
		validation.Field(&c.Content.Dir, validation.Required),
	); err != nil {
		return ErrContentDirRequired
	}

	if c.Generator.Enabled {
		if err := validation.ValidateStruct(&c.Generator,
			validation.Field(&c.Generator.OutputDir, validation.Required),
		); err != nil {
			return ErrGeneratorOutputDirRequired
		}
	}

	if c.Logging.Enabled {
		if err := validation.ValidateStruct(&c.Logging,
			validation.Field(&c.Logging.Level, validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal")),
		); err != nil {
			return ErrLoggingLevelInvalid
		}
		if err := validation.ValidateStruct(&c.Logging,
			validation.Field(&c.Logging.Format, validation.In("", "json", "console", "pretty")),
		); err != nil {
			return ErrLoggingFormatInvalid
		}
	}

	return nil
}
