package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog/internal/content"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Print a single post with its metadata and neighbors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _, err := newBlog()
		if err != nil {
			return err
		}

		ctx := context.Background()
		post, err := module.Content().Get(ctx, args[0])
		if err != nil {
			if errors.Is(err, content.ErrPostNotFound) {
				fmt.Fprintf(os.Stderr, "post %q not found\n", args[0])
				os.Exit(1)
			}
			return err
		}

		neighbors, err := module.Content().Adjacent(ctx, post.Slug)
		if err != nil {
			return err
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(map[string]any{
				"post":      post,
				"neighbors": neighbors,
			})
		}

		fmt.Printf("Title:       %s\n", post.Title)
		fmt.Printf("Slug:        %s\n", post.Slug)
		fmt.Printf("Date:        %s\n", post.Date.Format("2006-01-02"))
		if post.Author != "" {
			fmt.Printf("Author:      %s\n", post.Author)
		}
		if len(post.Tags) > 0 {
			fmt.Printf("Tags:        %s\n", strings.Join(post.Tags, ", "))
		}
		fmt.Printf("Description: %s\n", post.Description)
		if neighbors.Next != nil {
			fmt.Printf("Newer:       %s\n", neighbors.Next.Slug)
		}
		if neighbors.Previous != nil {
			fmt.Printf("Older:       %s\n", neighbors.Previous.Slug)
		}
		fmt.Println()
		fmt.Println(strings.TrimSpace(string(post.Body)))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Emit JSON instead of text")
	rootCmd.AddCommand(showCmd)
}
