package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List posts grouped by calendar month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _, err := newBlog()
		if err != nil {
			return err
		}

		groups, err := module.Content().Archive(context.Background())
		if err != nil {
			return err
		}

		for _, group := range groups {
			fmt.Println(group.Label)
			for _, post := range group.Posts {
				fmt.Printf("  %s  %s\n", post.Date.Format("2006-01-02"), post.Title)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}
