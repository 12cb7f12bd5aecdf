package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tagsWithCounts bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _, err := newBlog()
		if err != nil {
			return err
		}

		ctx := context.Background()
		tags, err := module.Content().Tags(ctx)
		if err != nil {
			return err
		}

		for _, tag := range tags {
			if !tagsWithCounts {
				fmt.Println(tag)
				continue
			}
			posts, err := module.Content().ByTag(ctx, tag)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%d)\n", tag, len(posts))
		}
		return nil
	},
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsWithCounts, "counts", false, "Show post counts per tag")
	rootCmd.AddCommand(tagsCmd)
}
