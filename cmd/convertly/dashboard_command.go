package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show admin dashboard statistics (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			stats, err := client.DashboardStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch dashboard: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd, stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Files")
			fmt.Fprintf(out, "  total %d, completed %d, processing %d, failed %d\n",
				stats.FileStats.Total, stats.FileStats.Completed,
				stats.FileStats.Processing, stats.FileStats.Failed)
			fmt.Fprintln(out, "Blog")
			fmt.Fprintf(out, "  total %d, published %d, featured %d\n",
				stats.BlogStats.Total, stats.BlogStats.Published, stats.BlogStats.Featured)

			if len(stats.RecentFiles) > 0 {
				rows := make([][]string, 0, len(stats.RecentFiles))
				for _, file := range stats.RecentFiles {
					rows = append(rows, []string{file.Filename, file.Status, file.UploadDate})
				}
				fmt.Fprintln(out, "\nRecent files")
				fmt.Fprintln(out, renderTable(
					[]string{"Filename", "Status", "Uploaded"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
			}
			if len(stats.RecentPosts) > 0 {
				rows := make([][]string, 0, len(stats.RecentPosts))
				for _, post := range stats.RecentPosts {
					rows = append(rows, []string{post.Title, post.Author, yesNo(post.Published)})
				}
				fmt.Fprintln(out, "\nRecent posts")
				fmt.Fprintln(out, renderTable(
					[]string{"Title", "Author", "Published"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			health, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backend %s: %s\n", client.BaseURL(), health.Status)
			return nil
		},
	}
}
