package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"convertly/internal/api"
)

const blogColumns = `id, title, excerpt, content, author, category, tags_json,
    image, featured, published, publish_date, read_time, created_at, updated_at`

// SaveBlogPost inserts or replaces one post snapshot.
func (s *Store) SaveBlogPost(ctx context.Context, post api.BlogPost) error {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blog_posts (`+blogColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.Title,
		post.Excerpt,
		post.Content,
		post.Author,
		post.Category,
		string(tagsJSON),
		post.Image,
		boolToInt(post.Featured),
		boolToInt(post.Published),
		post.PublishDate,
		post.ReadTime,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save blog post %s: %w", post.ID, err)
	}
	return nil
}

// ReplaceBlogPosts swaps the full snapshot for the given posts.
func (s *Store) ReplaceBlogPosts(ctx context.Context, posts []api.BlogPost) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM blog_posts"); err != nil {
		return fmt.Errorf("clear blog posts: %w", err)
	}
	for _, post := range posts {
		tags := post.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO blog_posts (`+blogColumns+`)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			post.ID, post.Title, post.Excerpt, post.Content, post.Author,
			post.Category, string(tagsJSON), post.Image,
			boolToInt(post.Featured), boolToInt(post.Published),
			post.PublishDate, post.ReadTime, post.CreatedAt, post.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert blog post %s: %w", post.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit blog posts: %w", err)
	}
	return nil
}

// BlogPosts returns the snapshot, newest created first with stable fallback
// on identifier.
func (s *Store) BlogPosts(ctx context.Context) ([]api.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blog_posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query blog posts: %w", err)
	}
	defer rows.Close()

	var posts []api.BlogPost
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog posts: %w", err)
	}
	return posts, nil
}

// GetBlogPost returns one post snapshot; sql.ErrNoRows when absent.
func (s *Store) GetBlogPost(ctx context.Context, id string) (api.BlogPost, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE id = ?`, id)
	return scanBlogPost(row)
}

// DeleteBlogPost removes one post snapshot. Deleting an absent post is not
// an error.
func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete blog post %s: %w", id, err)
	}
	return nil
}

// CountBlogPosts reports the number of snapshot posts.
func (s *Store) CountBlogPosts(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM blog_posts").Scan(&count); err != nil {
		return 0, fmt.Errorf("count blog posts: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlogPost(row rowScanner) (api.BlogPost, error) {
	var (
		post      api.BlogPost
		tagsJSON  string
		featured  int
		published int
	)
	err := row.Scan(
		&post.ID, &post.Title, &post.Excerpt, &post.Content, &post.Author,
		&post.Category, &tagsJSON, &post.Image, &featured, &published,
		&post.PublishDate, &post.ReadTime, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return api.BlogPost{}, err
		}
		return api.BlogPost{}, fmt.Errorf("scan blog post: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &post.Tags); err != nil {
		return api.BlogPost{}, fmt.Errorf("decode tags for %s: %w", post.ID, err)
	}
	post.Featured = featured != 0
	post.Published = published != 0
	return post, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
