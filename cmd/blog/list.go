package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	listJSON  bool
	listTag   string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _, err := newBlog()
		if err != nil {
			return err
		}

		ctx := context.Background()
		store := module.Content()

		var summaries []interfaces.PostSummary
		switch {
		case listTag != "":
			summaries, err = store.ByTag(ctx, listTag)
		case listLimit > 0:
			summaries, err = store.Recent(ctx, listLimit)
		default:
			summaries, err = store.List(ctx)
		}
		if err != nil {
			return err
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(summaries)
		}

		for _, summary := range summaries {
			line := fmt.Sprintf("%s  %-30s  %s", summary.Date.Format("2006-01-02"), summary.Slug, summary.Title)
			if len(summary.Tags) > 0 {
				line += "  [" + strings.Join(summary.Tags, ", ") + "]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit JSON instead of columns")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only posts carrying this tag (exact match)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Only the n most recent posts")
	rootCmd.AddCommand(listCmd)
}
