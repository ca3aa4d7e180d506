package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

// BlogPosts lists published posts with optional category and featured filters.
func (c *Client) BlogPosts(ctx context.Context, page, perPage int, category string, featured *bool) (*BlogListResponse, error) {
	query := pageQuery(page, perPage)
	if category != "" {
		query.Set("category", category)
	}
	if featured != nil {
		query.Set("featured", strconv.FormatBool(*featured))
	}
	var payload BlogListResponse
	if err := c.request(ctx, http.MethodGet, "/blog", query, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetBlogPost fetches one post by identifier.
func (c *Client) GetBlogPost(ctx context.Context, id string) (*BlogPost, error) {
	if id == "" {
		return nil, errors.New("post id required")
	}
	var payload BlogPost
	if err := c.request(ctx, http.MethodGet, "/blog/"+url.PathEscape(id), nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateBlogPost creates a post and returns the stored record.
func (c *Client) CreateBlogPost(ctx context.Context, post BlogPost) (*BlogPost, error) {
	var payload BlogPost
	if err := c.request(ctx, http.MethodPost, "/blog", nil, post, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateBlogPost updates a post and returns the stored record.
func (c *Client) UpdateBlogPost(ctx context.Context, id string, post BlogPost) (*BlogPost, error) {
	if id == "" {
		return nil, errors.New("post id required")
	}
	var payload BlogPost
	if err := c.request(ctx, http.MethodPut, "/blog/"+url.PathEscape(id), nil, post, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteBlogPost removes a post.
func (c *Client) DeleteBlogPost(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("post id required")
	}
	return c.request(ctx, http.MethodDelete, "/blog/"+url.PathEscape(id), nil, nil, nil)
}

// FeaturedPosts lists posts flagged as featured.
func (c *Client) FeaturedPosts(ctx context.Context) ([]BlogPost, error) {
	var payload FeaturedPostsResponse
	if err := c.request(ctx, http.MethodGet, "/blog/featured", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Posts, nil
}

// BlogCategories lists the distinct post categories.
func (c *Client) BlogCategories(ctx context.Context) ([]string, error) {
	var payload CategoriesResponse
	if err := c.request(ctx, http.MethodGet, "/blog/categories", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Categories, nil
}
