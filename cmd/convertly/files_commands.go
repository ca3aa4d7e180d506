package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"convertly/internal/api"
	"convertly/internal/textutil"
)

func newFilesCommand(ctx *commandContext) *cobra.Command {
	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "Browse and manage converted files",
	}

	filesCmd.AddCommand(newFilesListCommand(ctx))
	filesCmd.AddCommand(newFilesStatsCommand(ctx))
	filesCmd.AddCommand(newFilesDownloadCommand(ctx))
	filesCmd.AddCommand(newFilesDeleteCommand(ctx))

	return filesCmd
}

func newFilesListCommand(ctx *commandContext) *cobra.Command {
	var page int
	var perPage int
	var status string
	var admin bool
	var search string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List uploaded files",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			var resp *api.FileListResponse
			if admin {
				resp, err = client.AdminFiles(cmd.Context(), page, perPage, status, search)
			} else {
				resp, err = client.Files(cmd.Context(), page, perPage, status)
			}
			if err != nil {
				return fmt.Errorf("list files: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, resp)
			}
			rows := make([][]string, 0, len(resp.Files))
			for _, file := range resp.Files {
				rows = append(rows, []string{
					file.ID,
					file.Filename,
					file.OriginalFormat,
					file.ConvertedFormat,
					file.FileSize,
					file.Status,
					file.UploadDate,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Filename", "From", "To", "Size", "Status", "Uploaded"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d files)\n",
				resp.CurrentPage, resp.Pages, resp.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "Results per page")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().BoolVar(&admin, "admin", false, "Use the admin listing (requires login)")
	cmd.Flags().StringVar(&search, "search", "", "Filename search (admin listing only)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")

	return cmd
}

func newFilesStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate conversion statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			stats, err := client.FileStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch stats: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd, stats)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total files:     %d\n", stats.TotalFiles)
			fmt.Fprintf(out, "Completed:       %d\n", stats.CompletedFiles)
			fmt.Fprintf(out, "Downloads:       %d\n", stats.TotalDownloads)
			fmt.Fprintf(out, "Success rate:    %.1f%%\n", stats.SuccessRate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newFilesDownloadCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <file-id>",
		Short: "Download a converted file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			body, err := client.DownloadFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("download %s: %w", args[0], err)
			}
			defer body.Close()

			target := output
			if target == "" {
				target = textutil.SanitizeFileName(args[0])
			}
			if err := os.MkdirAll(filepath.Dir(filepath.Clean(target)), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			f, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create %s: %w", target, err)
			}
			defer f.Close()

			written, err := io.Copy(f, body)
			if err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", target, written)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (defaults to the file identifier)")
	return cmd
}

func newFilesDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file-id>",
		Short: "Delete an uploaded file (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.DeleteFile(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
