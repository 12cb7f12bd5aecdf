package generator

import (
	"encoding/json"
	"fmt"
	"time"
)

// ManifestFileName is where a build records its manifest, relative to the
// output directory. Feed it back through BuildOptions.PreviousManifest to
// enable unchanged-page detection on the next run.
const ManifestFileName = ".blog-manifest.json"

const manifestFileVersion = 1

// buildManifest stores metadata about the last successful build so tooling
// can diff outputs and skip unchanged posts on incremental runs.
type buildManifest struct {
	Version     int                     `json:"version"`
	GeneratedAt time.Time               `json:"generated_at"`
	Routes      []string                `json:"routes"`
	Pages       map[string]manifestPage `json:"pages"`
	Tags        []string                `json:"tags,omitempty"`
}

type manifestPage struct {
	Slug       string    `json:"slug"`
	Route      string    `json:"route"`
	Output     string    `json:"output"`
	Checksum   string    `json:"checksum"`
	RenderedAt time.Time `json:"rendered_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var manifest buildManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if manifest.Pages == nil {
		manifest.Pages = map[string]manifestPage{}
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	return &manifest, nil
}

func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	cloned := *m
	if cloned.Version == 0 {
		cloned.Version = manifestFileVersion
	}
	if cloned.Pages == nil {
		cloned.Pages = map[string]manifestPage{}
	}
	return json.MarshalIndent(&cloned, "", "  ")
}
