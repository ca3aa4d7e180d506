package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// DashboardStats fetches file and blog counters plus recent activity.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var payload DashboardStats
	if err := c.request(ctx, http.MethodGet, "/admin/dashboard", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AdminFiles lists all uploaded files with status and search filters.
func (c *Client) AdminFiles(ctx context.Context, page, perPage int, status, search string) (*FileListResponse, error) {
	query := pageQuery(page, perPage)
	if status != "" {
		query.Set("status", status)
	}
	if search != "" {
		query.Set("search", search)
	}
	var payload FileListResponse
	if err := c.request(ctx, http.MethodGet, "/admin/files", query, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AdminBlogPosts lists all posts, drafts included, with category and search filters.
func (c *Client) AdminBlogPosts(ctx context.Context, page, perPage int, category, search string) (*BlogListResponse, error) {
	query := pageQuery(page, perPage)
	if category != "" {
		query.Set("category", category)
	}
	if search != "" {
		query.Set("search", search)
	}
	var payload BlogListResponse
	if err := c.request(ctx, http.MethodGet, "/admin/blog", query, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetPageContent fetches the editable content for a static page.
func (c *Client) GetPageContent(ctx context.Context, page string) (*PageContent, error) {
	if page == "" {
		return nil, errors.New("page name required")
	}
	var payload PageContent
	if err := c.request(ctx, http.MethodGet, "/admin/content/"+url.PathEscape(page), nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdatePageContent replaces the title and body of a static page.
func (c *Client) UpdatePageContent(ctx context.Context, page, title, content string) (*PageContent, error) {
	if page == "" {
		return nil, errors.New("page name required")
	}
	body := map[string]string{
		"title":   title,
		"content": content,
	}
	var payload PageContent
	if err := c.request(ctx, http.MethodPut, "/admin/content/"+url.PathEscape(page), nil, body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AdminSettings fetches the system settings document.
func (c *Client) AdminSettings(ctx context.Context) (Settings, error) {
	var payload SettingsResponse
	if err := c.request(ctx, http.MethodGet, "/admin/settings", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Settings, nil
}

// UpdateAdminSettings writes the provided settings keys.
func (c *Client) UpdateAdminSettings(ctx context.Context, settings Settings) error {
	if len(settings) == 0 {
		return errors.New("no settings provided")
	}
	return c.request(ctx, http.MethodPut, "/admin/settings", nil, settings, nil)
}
