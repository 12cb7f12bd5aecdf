package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <slug>",
	Short: "Render a post body to an HTML fragment on stdout",
	Long: `render converts a post's markdown body into a styled HTML fragment.
The output carries utility classes on every construct and is meant to be
embedded inside a host page, so no <html> or <body> wrapper is emitted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _, err := newBlog()
		if err != nil {
			return err
		}

		post, err := module.RenderPost(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Print(string(post.BodyHTML))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
