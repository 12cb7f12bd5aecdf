package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/generator"
)

var (
	watchOutput   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the output directory whenever the content changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Generator.Enabled = true
		if watchOutput != "" {
			cfg.Generator.OutputDir = watchOutput
		}

		module, err := blog.New(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := addWatchDirs(watcher, cfg.Content.Dir, cfg.Content.Recursive); err != nil {
			return err
		}

		rebuild := func() {
			started := time.Now()
			result, err := module.Generate(ctx, generator.BuildOptions{
				PreviousManifest: readPreviousManifest(cfg.Generator.OutputDir),
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
				return
			}
			fmt.Printf("rebuilt in %s: %d page(s), %d unchanged\n",
				time.Since(started).Round(time.Millisecond), result.PagesWritten, result.Unchanged)
		}

		rebuild()
		fmt.Printf("watching %s (ctrl-c to stop)\n", cfg.Content.Dir)

		// Editors fire bursts of events per save; collapse each burst
		// into a single rebuild.
		var pending *time.Timer
		defer func() {
			if pending != nil {
				pending.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !relevantChange(event) {
					continue
				}
				if event.Has(fsnotify.Create) && cfg.Content.Recursive {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(watchDebounce, rebuild)

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			}
		}
	},
}

func addWatchDirs(watcher *fsnotify.Watcher, root string, recursive bool) error {
	if !recursive {
		return watcher.Add(root)
	}
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// relevantChange filters out events that cannot affect the corpus, such as
// chmod-only notifications and editor swap files.
func relevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if base == "" || base[0] == '.' || base[len(base)-1] == '~' {
		return false
	}
	switch filepath.Ext(base) {
	case ".swp", ".swx", ".tmp":
		return false
	}
	return true
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output directory (default \"dist\")")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Quiet period before rebuilding")
	rootCmd.AddCommand(watchCmd)
}
