package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/generator"
)

var (
	generateOutput    string
	generateBaseURL   string
	generateFresh     bool
	generateNoFeeds   bool
	generateNoSitemap bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write rendered pages, feeds, and site metadata to the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Generator.Enabled = true
		if generateOutput != "" {
			cfg.Generator.OutputDir = generateOutput
		}
		if generateBaseURL != "" {
			cfg.Generator.BaseURL = generateBaseURL
		}

		module, err := blog.New(cfg)
		if err != nil {
			return err
		}

		opts := generator.BuildOptions{
			SkipFeeds:   generateNoFeeds,
			SkipSitemap: generateNoSitemap,
		}
		if !generateFresh {
			opts.PreviousManifest = readPreviousManifest(cfg.Generator.OutputDir)
		}

		result, err := module.Generate(context.Background(), opts)
		if err != nil {
			return err
		}

		fmt.Printf("generated %d page(s), %d unchanged, %d feed(s), %d route(s) -> %s\n",
			result.PagesWritten, result.Unchanged, result.FeedsWritten, len(result.Routes), cfg.Generator.OutputDir)
		return nil
	},
}

// readPreviousManifest loads the manifest left by the last build, if any.
// A missing or unreadable manifest just means a full rebuild.
func readPreviousManifest(outputDir string) []byte {
	data, err := os.ReadFile(filepath.Join(outputDir, generator.ManifestFileName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "ignoring previous manifest: %v\n", err)
		}
		return nil
	}
	return data
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default \"dist\")")
	generateCmd.Flags().StringVar(&generateBaseURL, "base-url", "", "Absolute site URL used in sitemap and feeds")
	generateCmd.Flags().BoolVar(&generateFresh, "fresh", false, "Ignore the previous manifest and rewrite every page")
	generateCmd.Flags().BoolVar(&generateNoFeeds, "no-feeds", false, "Skip RSS and Atom feeds")
	generateCmd.Flags().BoolVar(&generateNoSitemap, "no-sitemap", false, "Skip sitemap.xml and robots.txt")
	rootCmd.AddCommand(generateCmd)
}
