package services

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/gosimple/slug"

	"github.com/baharkarakas/blog-api/internal/api/validate"
	"github.com/baharkarakas/blog-api/internal/ids"
	"github.com/baharkarakas/blog-api/internal/metrics"
	"github.com/baharkarakas/blog-api/internal/models"
	repo "github.com/baharkarakas/blog-api/internal/repository"
	"github.com/baharkarakas/blog-api/internal/worker"
)

type PostService struct {
	posts        repo.Posts
	log          repo.AuditLogs
	wp           *worker.Pool
	defaultLimit int
	maxLimit     int
}

func NewPostService(p repo.Posts, l repo.AuditLogs, wp *worker.Pool, defaultLimit, maxLimit int) *PostService {
	return &PostService{posts: p, log: l, wp: wp, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

type CreatePostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

type UpdatePostInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Slug     *string `json:"slug"`
}

type ListPostsQuery struct {
	Category string
	Author   string
	Page     int
	Limit    int
}

type PostPage struct {
	Items []models.Post
	Total int64
	Page  int
	Limit int
}

// ----------------- Helpers -----------------

func (s *PostService) audit(postID, actorID, action string, details map[string]any) {
	metrics.PostMutations.WithLabelValues(action).Inc()
	entry := models.AuditLog{
		EntityType: "post",
		EntityID:   postID,
		Action:     action,
		ActorID:    actorID,
		Details:    details,
	}
	accepted := s.wp.Submit(func() {
		if err := s.log.Create(context.Background(), entry); err != nil {
			metrics.AuditFailures.Inc()
			slog.Warn("audit log write failed", "post_id", postID, "action", action, "err", err)
		}
	})
	if !accepted {
		metrics.AuditFailures.Inc()
		slog.Warn("audit log dropped, worker pool stopped", "post_id", postID, "action", action)
	}
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	t := strings.TrimSpace(*p)
	return &t
}

// load fetches a post for a mutation by actorID, enforcing authorship.
func (s *PostService) load(ctx context.Context, actorID, id string) (models.Post, error) {
	if !ids.Valid(id) {
		return models.Post{}, ErrInvalidID
	}
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, storeErr("get post", err)
	}
	if p.Author != actorID {
		return models.Post{}, ErrForbidden
	}
	return p, nil
}

// ----------------- Operations -----------------

func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (models.Post, error) {
	p := models.Post{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Author:   authorID,
		Category: strings.TrimSpace(in.Category),
		Slug:     strings.TrimSpace(in.Slug),
	}
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	if err := validate.Struct(p); err != nil {
		return models.Post{}, err
	}

	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return models.Post{}, storeErr("create post", err)
	}
	s.audit(created.ID, authorID, models.AuditCreated, map[string]any{"title": created.Title})
	return created, nil
}

func (s *PostService) normalize(q ListPostsQuery) ListPostsQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = s.defaultLimit
	}
	if q.Limit > s.maxLimit {
		q.Limit = s.maxLimit
	}
	return q
}

// pageOffset is (page-1)*limit; ok is false when that does not fit in an int.
func pageOffset(page, limit int) (int, bool) {
	if limit <= 0 {
		return 0, true
	}
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

// List returns one page of posts in creation order, filtered before slicing.
func (s *PostService) List(ctx context.Context, q ListPostsQuery) (PostPage, error) {
	q = s.normalize(q)
	offset, ok := pageOffset(q.Page, q.Limit)
	f := repo.PostFilter{
		Category: q.Category,
		Author:   q.Author,
		Offset:   offset,
		Limit:    q.Limit,
	}
	page := PostPage{Items: []models.Post{}, Page: q.Page, Limit: q.Limit}
	// an author that can't exist matches nothing
	if q.Author != "" && !ids.Valid(q.Author) {
		return page, nil
	}

	total, err := s.posts.Count(ctx, f)
	if err != nil {
		return PostPage{}, storeErr("count posts", err)
	}
	page.Total = total
	if !ok || int64(f.Offset) >= total {
		return page, nil
	}

	items, err := s.posts.List(ctx, f)
	if err != nil {
		return PostPage{}, storeErr("list posts", err)
	}
	if items != nil {
		page.Items = items
	}
	return page, nil
}

func (s *PostService) Get(ctx context.Context, id string) (models.Post, error) {
	if !ids.Valid(id) {
		return models.Post{}, ErrInvalidID
	}
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, storeErr("get post", err)
	}
	return p, nil
}

// Authorize reports whether actorID may modify post id, with the same errors
// Update and Delete return.
func (s *PostService) Authorize(ctx context.Context, actorID, id string) error {
	_, err := s.load(ctx, actorID, id)
	return err
}

// Update applies the submitted fields when actorID authored the post. The
// merged result must pass the same rules as a new post.
func (s *PostService) Update(ctx context.Context, actorID, id string, in UpdatePostInput) (models.Post, error) {
	current, err := s.load(ctx, actorID, id)
	if err != nil {
		return models.Post{}, err
	}

	patch := models.PostPatch{
		Title:    trimPtr(in.Title),
		Content:  in.Content,
		Category: trimPtr(in.Category),
		Slug:     trimPtr(in.Slug),
	}
	if patch.Slug != nil && *patch.Slug == "" {
		derived := slug.Make(patch.Apply(current).Title)
		patch.Slug = &derived
	}
	if err := validate.Struct(patch.Apply(current)); err != nil {
		return models.Post{}, err
	}
	if patch.Empty() {
		return current, nil
	}

	updated, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return models.Post{}, storeErr("update post", err)
	}
	s.audit(id, actorID, models.AuditUpdated, nil)
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.load(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return storeErr("delete post", err)
	}
	s.audit(id, actorID, models.AuditDeleted, nil)
	return nil
}
