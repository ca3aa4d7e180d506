package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"convertly/internal/api"
)

func newBlogCommand(ctx *commandContext) *cobra.Command {
	blogCmd := &cobra.Command{
		Use:   "blog",
		Short: "Manage blog posts (local snapshot fallback when offline)",
	}

	blogCmd.AddCommand(newBlogListCommand(ctx))
	blogCmd.AddCommand(newBlogShowCommand(ctx))
	blogCmd.AddCommand(newBlogCreateCommand(ctx))
	blogCmd.AddCommand(newBlogUpdateCommand(ctx))
	blogCmd.AddCommand(newBlogDeleteCommand(ctx))
	blogCmd.AddCommand(newBlogFeaturedCommand(ctx))
	blogCmd.AddCommand(newBlogCategoriesCommand(ctx))

	return blogCmd
}

func localOnlyNote(cmd *cobra.Command, localOnly bool) {
	if localOnly {
		fmt.Fprintln(cmd.ErrOrStderr(), "backend unreachable, using local snapshot")
	}
}

func renderPostTable(posts []api.BlogPost) string {
	rows := make([][]string, 0, len(posts))
	for _, post := range posts {
		rows = append(rows, []string{
			post.ID,
			post.Title,
			post.Author,
			post.Category,
			yesNo(post.Featured),
			yesNo(post.Published),
		})
	}
	return renderTable(
		[]string{"ID", "Title", "Author", "Category", "Featured", "Published"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

func newBlogListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blog posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			result, err := svc.ListPosts(cmd.Context())
			if err != nil {
				return fmt.Errorf("list posts: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			if jsonOutput {
				return writeJSON(cmd, result.Value)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPostTable(result.Value))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newBlogShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show one blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			result, err := svc.GetPost(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("show post: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			if jsonOutput {
				return writeJSON(cmd, result.Value)
			}
			post := result.Value
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", post.Title)
			fmt.Fprintf(out, "by %s · %s · tags: %s\n\n", post.Author, post.Category, strings.Join(post.Tags, ", "))
			if post.Excerpt != "" {
				fmt.Fprintf(out, "%s\n\n", post.Excerpt)
			}
			fmt.Fprintln(out, post.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func blogFieldFlags(cmd *cobra.Command, post *api.BlogPost, tags *string) {
	cmd.Flags().StringVar(&post.Title, "title", "", "Post title")
	cmd.Flags().StringVar(&post.Excerpt, "excerpt", "", "Short excerpt")
	cmd.Flags().StringVar(&post.Content, "content", "", "Post body")
	cmd.Flags().StringVar(&post.Author, "author", "", "Author name")
	cmd.Flags().StringVar(&post.Category, "category", "", "Category")
	cmd.Flags().StringVar(tags, "tags", "", "Comma-separated tags")
	cmd.Flags().BoolVar(&post.Featured, "featured", false, "Mark as featured")
	cmd.Flags().BoolVar(&post.Published, "published", true, "Publish the post")
}

func splitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func newBlogCreateCommand(ctx *commandContext) *cobra.Command {
	var post api.BlogPost
	var tags string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a blog post",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(post.Title) == "" {
				return fmt.Errorf("--title is required")
			}
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			post.Tags = splitTags(tags)
			result, err := svc.CreatePost(cmd.Context(), post)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			fmt.Fprintf(cmd.OutOrStdout(), "Created post %s\n", result.Value.ID)
			return nil
		},
	}

	blogFieldFlags(cmd, &post, &tags)
	return cmd
}

func newBlogUpdateCommand(ctx *commandContext) *cobra.Command {
	var post api.BlogPost
	var tags string

	cmd := &cobra.Command{
		Use:   "update <post-id>",
		Short: "Update a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			post.Tags = splitTags(tags)
			result, err := svc.UpdatePost(cmd.Context(), args[0], post)
			if err != nil {
				return fmt.Errorf("update post: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated post %s\n", result.Value.ID)
			return nil
		},
	}

	blogFieldFlags(cmd, &post, &tags)
	return cmd
}

func newBlogDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureFallback()
			if err != nil {
				return err
			}
			result, err := svc.DeletePost(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("delete post: %w", err)
			}
			localOnlyNote(cmd, result.LocalOnly)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %s\n", args[0])
			return nil
		},
	}
}

func newBlogFeaturedCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "List featured posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			posts, err := client.FeaturedPosts(cmd.Context())
			if err != nil {
				// The snapshot still knows which posts were featured.
				svc, ferr := ctx.ensureFallback()
				if ferr != nil {
					return fmt.Errorf("featured posts: %w", err)
				}
				result, ferr := svc.ListPosts(cmd.Context())
				if ferr != nil {
					return fmt.Errorf("featured posts: %w", err)
				}
				localOnlyNote(cmd, true)
				posts = posts[:0]
				for _, post := range result.Value {
					if post.Featured {
						posts = append(posts, post)
					}
				}
			}
			if jsonOutput {
				return writeJSON(cmd, posts)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPostTable(posts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func newBlogCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List blog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			categories, err := client.BlogCategories(cmd.Context())
			if err != nil {
				svc, ferr := ctx.ensureFallback()
				if ferr != nil {
					return fmt.Errorf("categories: %w", err)
				}
				result, ferr := svc.ListPosts(cmd.Context())
				if ferr != nil {
					return fmt.Errorf("categories: %w", err)
				}
				localOnlyNote(cmd, true)
				seen := make(map[string]struct{})
				categories = categories[:0]
				for _, post := range result.Value {
					if post.Category == "" {
						continue
					}
					if _, ok := seen[post.Category]; ok {
						continue
					}
					seen[post.Category] = struct{}{}
					categories = append(categories, post.Category)
				}
				sort.Strings(categories)
			}
			for _, category := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), category)
			}
			return nil
		},
	}
}
