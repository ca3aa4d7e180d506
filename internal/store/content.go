package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"convertly/internal/api"
)

// SavePageContent inserts or replaces the snapshot of one editable page.
func (s *Store) SavePageContent(ctx context.Context, content api.PageContent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO page_content (page, title, content, updated_by, updated_at)
         VALUES (?, ?, ?, ?, ?)`,
		content.Page, content.Title, content.Content, content.UpdatedBy, content.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save page content %s: %w", content.Page, err)
	}
	return nil
}

// GetPageContent returns the snapshot for one page; sql.ErrNoRows when
// absent.
func (s *Store) GetPageContent(ctx context.Context, page string) (api.PageContent, error) {
	var content api.PageContent
	err := s.db.QueryRowContext(ctx,
		"SELECT page, title, content, updated_by, updated_at FROM page_content WHERE page = ?",
		page,
	).Scan(&content.Page, &content.Title, &content.Content, &content.UpdatedBy, &content.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return api.PageContent{}, err
		}
		return api.PageContent{}, fmt.Errorf("scan page content %s: %w", page, err)
	}
	return content, nil
}

// SaveSettings replaces the settings snapshot with the given document.
func (s *Store) SaveSettings(ctx context.Context, settings api.Settings) error {
	document, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings (id, document) VALUES (1, ?)",
		string(document),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// GetSettings returns the settings snapshot; sql.ErrNoRows when none was
// ever saved.
func (s *Store) GetSettings(ctx context.Context) (api.Settings, error) {
	var document string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM settings WHERE id = 1").Scan(&document)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	var settings api.Settings
	if err := json.Unmarshal([]byte(document), &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}
