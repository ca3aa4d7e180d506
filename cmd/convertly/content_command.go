package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newContentCommand(ctx *commandContext) *cobra.Command {
	contentCmd := &cobra.Command{
		Use:   "content",
		Short: "Manage editable page content (terms, privacy, cookies, contact)",
	}

	contentCmd.AddCommand(newContentShowCommand(ctx))
	contentCmd.AddCommand(newContentUpdateCommand(ctx))

	return contentCmd
}

func newContentShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <page>",
		Short: "Show the content of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			result, err := svc.PageContent(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch content: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			if jsonOutput {
				return writeJSON(cmd, result.Value)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", result.Value.Title)
			fmt.Fprintln(out, result.Value.Content)
			if result.Value.UpdatedAt != "" {
				fmt.Fprintf(out, "\nLast updated %s", result.Value.UpdatedAt)
				if result.Value.UpdatedBy != "" {
					fmt.Fprintf(out, " by %s", result.Value.UpdatedBy)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newContentUpdateCommand(ctx *commandContext) *cobra.Command {
	var title string
	var content string

	cmd := &cobra.Command{
		Use:   "update <page>",
		Short: "Update the content of a page (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && content == "" {
				return fmt.Errorf("nothing to update: pass --title or --content")
			}
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			result, err := svc.UpdatePageContent(cmd.Context(), args[0], title, content)
			if err != nil {
				return fmt.Errorf("update content: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&content, "content", "", "Page body")

	return cmd
}
