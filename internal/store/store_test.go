package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"convertly/internal/api"
	"convertly/internal/store"
	"convertly/internal/testsupport"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, testsupport.NewConfig(t))
}

func TestBlogPostRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	post := api.BlogPost{
		ID:        "42",
		Title:     "Complete Guide to PDF Conversion",
		Excerpt:   "Everything you need to know",
		Content:   "Long form content",
		Author:    "Sarah Johnson",
		Category:  "Tutorials",
		Tags:      []string{"pdf", "guides"},
		Featured:  true,
		Published: true,
		ReadTime:  "8 min read",
		CreatedAt: "2025-01-15T10:00:00Z",
	}
	if err := s.SaveBlogPost(ctx, post); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetBlogPost(ctx, "42")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != post.Title || got.Author != post.Author || !got.Featured {
		t.Errorf("got %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "pdf" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestReplaceBlogPostsSwapsSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveBlogPost(ctx, api.BlogPost{ID: "old", Title: "Stale"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	replacement := []api.BlogPost{
		{ID: "1", Title: "First", CreatedAt: "2025-02-01T00:00:00Z"},
		{ID: "2", Title: "Second", CreatedAt: "2025-03-01T00:00:00Z"},
	}
	if err := s.ReplaceBlogPosts(ctx, replacement); err != nil {
		t.Fatalf("replace: %v", err)
	}

	posts, err := s.BlogPosts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	if posts[0].ID != "2" {
		t.Errorf("expected newest first, got %q", posts[0].ID)
	}
	if _, err := s.GetBlogPost(ctx, "old"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("stale post survived replace: %v", err)
	}
}

func TestDeleteBlogPostIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveBlogPost(ctx, api.BlogPost{ID: "7", Title: "Gone soon"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteBlogPost(ctx, "7"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteBlogPost(ctx, "7"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	count, err := s.CountBlogPosts(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestPageContentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	content := api.PageContent{
		Page:      "privacy",
		Title:     "Privacy Policy",
		Content:   "We collect nothing.",
		UpdatedBy: "admin",
		UpdatedAt: "2025-04-01T12:00:00Z",
	}
	if err := s.SavePageContent(ctx, content); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.GetPageContent(ctx, "privacy")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Privacy Policy" || got.UpdatedBy != "admin" {
		t.Errorf("got %+v", got)
	}
	if _, err := s.GetPageContent(ctx, "terms"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows for missing page, got %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.GetSettings(ctx); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows before first save, got %v", err)
	}
	settings := api.Settings{"max_file_size": "100", "image_quality": "95"}
	if err := s.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["max_file_size"] != "100" || got["image_quality"] != "95" {
		t.Errorf("got %v", got)
	}
}

func TestSnapshotSurvivesReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveBlogPost(ctx, api.BlogPost{ID: "9", Title: "Persistent"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.GetBlogPost(ctx, "9")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Title != "Persistent" {
		t.Errorf("got %+v", got)
	}
}
