package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	blog "github.com/goliatone/go-blog"
)

var (
	cfgFile    string
	contentDir string
	pattern    string
	logLevel   string
	logFormat  string
	drafts     bool
	strict     bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Query and publish a directory of markdown posts",
	Long: `blog reads a directory of markdown files with YAML front matter and
exposes listing, rendering, and static metadata generation over it.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&contentDir, "content-dir", "", "Directory holding markdown posts (default \"content\")")
	rootCmd.PersistentFlags().StringVar(&pattern, "pattern", "", "Glob applied when discovering post files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace|debug|info|warn|error|fatal)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json|console|pretty)")
	rootCmd.PersistentFlags().BoolVar(&drafts, "drafts", false, "Include draft posts in listings")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Validate front matter against the metadata schema")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level debug")
}

// loadConfig layers the optional config file and command line flags over
// the library defaults.
func loadConfig() (blog.Config, error) {
	cfg := blog.DefaultConfig()

	if cfgFile != "" {
		data, err := os.ReadFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", cfgFile, err)
		}
	}

	if contentDir != "" {
		cfg.Content.Dir = contentDir
	}
	if pattern != "" {
		cfg.Content.Pattern = pattern
	}
	if drafts {
		cfg.Content.IncludeDrafts = true
	}
	if strict {
		cfg.Content.StrictFrontMatter = true
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

func newBlog(opts ...blog.Option) (*blog.Blog, blog.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	module, err := blog.New(cfg, opts...)
	if err != nil {
		return nil, cfg, err
	}
	return module, cfg, nil
}
