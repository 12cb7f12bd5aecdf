package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	previewStyle string
	previewWidth int
)

var previewCmd = &cobra.Command{
	Use:   "preview <slug>",
	Short: "Render a post in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _, err := newBlog()
		if err != nil {
			return err
		}

		post, err := module.Content().Get(context.Background(), args[0])
		if err != nil {
			return err
		}

		var doc strings.Builder
		doc.WriteString("# " + post.Title + "\n\n")
		meta := post.Date.Format("2006-01-02")
		if post.Author != "" {
			meta += " · " + post.Author
		}
		if len(post.Tags) > 0 {
			meta += " · " + strings.Join(post.Tags, ", ")
		}
		doc.WriteString("*" + meta + "*\n\n")
		doc.Write(post.Body)

		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(previewStyle),
			glamour.WithWordWrap(previewWidth),
		)
		if err != nil {
			return fmt.Errorf("create terminal renderer: %w", err)
		}

		out, err := renderer.Render(doc.String())
		if err != nil {
			return fmt.Errorf("render %s: %w", post.Slug, err)
		}

		fmt.Print(out)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewStyle, "style", "dracula", "Glamour style name")
	previewCmd.Flags().IntVar(&previewWidth, "width", 80, "Word wrap width")
	rootCmd.AddCommand(previewCmd)
}
