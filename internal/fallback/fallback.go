package fallback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"convertly/internal/api"
	"convertly/internal/logging"
	"convertly/internal/store"
)

// listPageSize caps how many posts one listing pulls from the backend.
const listPageSize = 100

// Remote is the slice of the API client the fallback layer talks to.
type Remote interface {
	BlogPosts(ctx context.Context, page, perPage int, category string, featured *bool) (*api.BlogListResponse, error)
	GetBlogPost(ctx context.Context, id string) (*api.BlogPost, error)
	CreateBlogPost(ctx context.Context, post api.BlogPost) (*api.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, post api.BlogPost) (*api.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error
	GetPageContent(ctx context.Context, page string) (*api.PageContent, error)
	UpdatePageContent(ctx context.Context, page, title, content string) (*api.PageContent, error)
	AdminSettings(ctx context.Context) (api.Settings, error)
	UpdateAdminSettings(ctx context.Context, settings api.Settings) error
}

// Result pairs a value with where it came from. LocalOnly is true when the
// backend could not be reached and the snapshot (or seed) supplied the
// value, or when a write landed only on disk.
type Result[T any] struct {
	Value     T
	LocalOnly bool
}

// Service is the cache-with-fallback layer for admin entities.
type Service struct {
	remote Remote
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// Option adjusts Service construction.
type Option func(*Service)

// WithClock overrides the clock used for offline identifiers and
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New builds the fallback service over a remote client and a snapshot
// store.
func New(remote Remote, snapshots *store.Store, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Service{
		remote: remote,
		store:  snapshots,
		logger: logger.With(logging.String("component", "fallback")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPosts returns all blog posts: backend first, then the snapshot, then
// the built-in seed. Seed content is persisted so later sessions see the
// same identifiers.
func (s *Service) ListPosts(ctx context.Context) (Result[[]api.BlogPost], error) {
	resp, err := s.remote.BlogPosts(ctx, 1, listPageSize, "", nil)
	if err == nil {
		if serr := s.store.ReplaceBlogPosts(ctx, resp.Posts); serr != nil {
			s.logger.Warn("snapshot refresh failed", logging.Error(serr))
		}
		return Result[[]api.BlogPost]{Value: resp.Posts}, nil
	}
	s.logger.Warn("blog listing unavailable, using snapshot", logging.Error(err))

	posts, serr := s.store.BlogPosts(ctx)
	if serr != nil {
		return Result[[]api.BlogPost]{}, fmt.Errorf("read blog snapshot: %w", serr)
	}
	if len(posts) > 0 {
		return Result[[]api.BlogPost]{Value: posts, LocalOnly: true}, nil
	}

	seeds := seedPosts()
	if serr := s.store.ReplaceBlogPosts(ctx, seeds); serr != nil {
		s.logger.Warn("seed persist failed", logging.Error(serr))
	}
	return Result[[]api.BlogPost]{Value: seeds, LocalOnly: true}, nil
}

// GetPost returns one post, falling back to the snapshot when the backend
// is unreachable.
func (s *Service) GetPost(ctx context.Context, id string) (Result[api.BlogPost], error) {
	post, err := s.remote.GetBlogPost(ctx, id)
	if err == nil {
		if serr := s.store.SaveBlogPost(ctx, *post); serr != nil {
			s.logger.Warn("snapshot save failed", logging.Error(serr))
		}
		return Result[api.BlogPost]{Value: *post}, nil
	}
	if status, ok := api.StatusCode(err); ok && status == 404 {
		return Result[api.BlogPost]{}, err
	}
	s.logger.Warn("blog post unavailable, using snapshot",
		logging.String("id", id), logging.Error(err))

	stored, serr := s.store.GetBlogPost(ctx, id)
	if errors.Is(serr, sql.ErrNoRows) {
		return Result[api.BlogPost]{}, err
	}
	if serr != nil {
		return Result[api.BlogPost]{}, fmt.Errorf("read blog snapshot: %w", serr)
	}
	return Result[api.BlogPost]{Value: stored, LocalOnly: true}, nil
}

// CreatePost creates a post remotely when possible. When the backend is
// down the post is stored locally under a millisecond-timestamp identifier
// so it can still be listed and edited.
func (s *Service) CreatePost(ctx context.Context, post api.BlogPost) (Result[api.BlogPost], error) {
	created, err := s.remote.CreateBlogPost(ctx, post)
	if err == nil {
		if serr := s.store.SaveBlogPost(ctx, *created); serr != nil {
			s.logger.Warn("snapshot save failed", logging.Error(serr))
		}
		return Result[api.BlogPost]{Value: *created}, nil
	}
	s.logger.Warn("blog create unavailable, storing locally", logging.Error(err))

	now := s.now()
	post.ID = offlineID(now)
	post.CreatedAt = now.UTC().Format(time.RFC3339)
	post.UpdatedAt = post.CreatedAt
	if serr := s.store.SaveBlogPost(ctx, post); serr != nil {
		return Result[api.BlogPost]{}, fmt.Errorf("store local post: %w", serr)
	}
	return Result[api.BlogPost]{Value: post, LocalOnly: true}, nil
}

// UpdatePost updates a post remotely when possible; the snapshot absorbs
// the edit either way.
func (s *Service) UpdatePost(ctx context.Context, id string, post api.BlogPost) (Result[api.BlogPost], error) {
	updated, err := s.remote.UpdateBlogPost(ctx, id, post)
	if err == nil {
		if serr := s.store.SaveBlogPost(ctx, *updated); serr != nil {
			s.logger.Warn("snapshot save failed", logging.Error(serr))
		}
		return Result[api.BlogPost]{Value: *updated}, nil
	}
	if status, ok := api.StatusCode(err); ok && status == 404 {
		return Result[api.BlogPost]{}, err
	}
	s.logger.Warn("blog update unavailable, storing locally",
		logging.String("id", id), logging.Error(err))

	post.ID = id
	post.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if serr := s.store.SaveBlogPost(ctx, post); serr != nil {
		return Result[api.BlogPost]{}, fmt.Errorf("store local post: %w", serr)
	}
	return Result[api.BlogPost]{Value: post, LocalOnly: true}, nil
}

// DeletePost deletes a post remotely when possible and always removes the
// snapshot copy.
func (s *Service) DeletePost(ctx context.Context, id string) (Result[struct{}], error) {
	err := s.remote.DeleteBlogPost(ctx, id)
	if serr := s.store.DeleteBlogPost(ctx, id); serr != nil {
		return Result[struct{}]{}, fmt.Errorf("delete snapshot post: %w", serr)
	}
	if err == nil {
		return Result[struct{}]{}, nil
	}
	if status, ok := api.StatusCode(err); ok && status == 404 {
		return Result[struct{}]{}, err
	}
	s.logger.Warn("blog delete unavailable, removed locally",
		logging.String("id", id), logging.Error(err))
	return Result[struct{}]{LocalOnly: true}, nil
}

// PageContent returns an editable page: backend, then snapshot, then a
// synthesized default matching what the backend serves for pages never
// edited.
func (s *Service) PageContent(ctx context.Context, page string) (Result[api.PageContent], error) {
	content, err := s.remote.GetPageContent(ctx, page)
	if err == nil {
		if serr := s.store.SavePageContent(ctx, *content); serr != nil {
			s.logger.Warn("snapshot save failed", logging.Error(serr))
		}
		return Result[api.PageContent]{Value: *content}, nil
	}
	s.logger.Warn("page content unavailable, using snapshot",
		logging.String("page", page), logging.Error(err))

	stored, serr := s.store.GetPageContent(ctx, page)
	if serr == nil {
		return Result[api.PageContent]{Value: stored, LocalOnly: true}, nil
	}
	if !errors.Is(serr, sql.ErrNoRows) {
		return Result[api.PageContent]{}, fmt.Errorf("read content snapshot: %w", serr)
	}
	return Result[api.PageContent]{Value: defaultPageContent(page), LocalOnly: true}, nil
}

// UpdatePageContent updates a page remotely when possible; the snapshot
// absorbs the edit either way.
func (s *Service) UpdatePageContent(ctx context.Context, page, title, content string) (Result[api.PageContent], error) {
	updated, err := s.remote.UpdatePageContent(ctx, page, title, content)
	if err == nil {
		if serr := s.store.SavePageContent(ctx, *updated); serr != nil {
			s.logger.Warn("snapshot save failed", logging.Error(serr))
		}
		return Result[api.PageContent]{Value: *updated}, nil
	}
	s.logger.Warn("page update unavailable, storing locally",
		logging.String("page", page), logging.Error(err))

	local := api.PageContent{
		Page:      page,
		Title:     title,
		Content:   content,
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if serr := s.store.SavePageContent(ctx, local); serr != nil {
		return Result[api.PageContent]{}, fmt.Errorf("store local content: %w", serr)
	}
	return Result[api.PageContent]{Value: local, LocalOnly: true}, nil
}

// Settings returns the settings document: backend, then snapshot, then the
// built-in defaults.
func (s *Service) Settings(ctx context.Context) (Result[api.Settings], error) {
	settings, err := s.remote.AdminSettings(ctx)
	if err == nil {
		if serr := s.store.SaveSettings(ctx, settings); serr != nil {
			s.logger.Warn("snapshot save failed", logging.Error(serr))
		}
		return Result[api.Settings]{Value: settings}, nil
	}
	s.logger.Warn("settings unavailable, using snapshot", logging.Error(err))

	stored, serr := s.store.GetSettings(ctx)
	if serr == nil {
		return Result[api.Settings]{Value: stored, LocalOnly: true}, nil
	}
	if !errors.Is(serr, sql.ErrNoRows) {
		return Result[api.Settings]{}, fmt.Errorf("read settings snapshot: %w", serr)
	}
	return Result[api.Settings]{Value: defaultSettings(), LocalOnly: true}, nil
}

// UpdateSettings updates the document remotely when possible; the snapshot
// absorbs the edit either way.
func (s *Service) UpdateSettings(ctx context.Context, settings api.Settings) (Result[api.Settings], error) {
	err := s.remote.UpdateAdminSettings(ctx, settings)
	if serr := s.store.SaveSettings(ctx, settings); serr != nil {
		return Result[api.Settings]{}, fmt.Errorf("store local settings: %w", serr)
	}
	if err == nil {
		return Result[api.Settings]{Value: settings}, nil
	}
	s.logger.Warn("settings update unavailable, stored locally", logging.Error(err))
	return Result[api.Settings]{Value: settings, LocalOnly: true}, nil
}

// offlineID mirrors the identifier scheme of the web UI's local storage
// path: milliseconds since the epoch, as a string.
func offlineID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

func defaultPageContent(page string) api.PageContent {
	title := cases.Title(language.English).String(page)
	return api.PageContent{
		Page:    page,
		Title:   title + " Page",
		Content: fmt.Sprintf("Content for %s page will be displayed here.", page),
	}
}
