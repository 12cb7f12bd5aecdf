package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter models the delimited metadata header at the top of a post
// file. Title, Description, and Date are required display metadata; the
// Custom map keeps unknown keys available to hosts without schema changes.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description"`
	Date        time.Time      `yaml:"date" json:"date"`
	Author      string         `yaml:"author" json:"author"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Draft       bool           `yaml:"draft" json:"draft"`
	Custom      map[string]any `yaml:"-" json:"custom"`
	// Raw holds every key as parsed, for schema validation and tooling.
	Raw map[string]any `yaml:"-" json:"raw"`
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Date        time.Time      `yaml:"date"`
	Author      string         `yaml:"author"`
	Tags        []string       `yaml:"tags"`
	Draft       bool           `yaml:"draft"`
	Custom      map[string]any `yaml:",inline"`
}

// ParseFrontMatter extracts metadata and markdown body content from the
// provided source bytes. It returns the structured front matter, the body
// without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

func envelopeToFrontMatter(env frontMatterEnvelope) FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+6)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	raw["draft"] = env.Draft

	return FrontMatter{
		Title:       env.Title,
		Description: env.Description,
		Date:        env.Date,
		Author:      env.Author,
		Tags:        append([]string(nil), env.Tags...),
		Draft:       env.Draft,
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
