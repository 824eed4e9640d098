// Package memory is a process-local implementation of the repository
// interfaces. It backs the "memory" store driver and the handler tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/baharkarakas/blog-api/internal/ids"
	"github.com/baharkarakas/blog-api/internal/models"
	"github.com/baharkarakas/blog-api/internal/repository"
)

func NewRepositories() repository.Set {
	return repository.Set{
		Users:     NewUsers(),
		Posts:     NewPosts(),
		AuditLogs: NewAuditLogs(),
		Close:     func(context.Context) error { return nil },
	}
}

type postsRepo struct {
	mu    sync.RWMutex
	posts map[string]models.Post
}

func NewPosts() repository.Posts {
	return &postsRepo{posts: map[string]models.Post{}}
}

func (r *postsRepo) Create(_ context.Context, p models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = ids.New()
	}
	if _, ok := r.posts[p.ID]; ok {
		return models.Post{}, repository.ErrDuplicate
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	r.posts[p.ID] = p
	return p, nil
}

func (r *postsRepo) GetByID(_ context.Context, id string) (models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return models.Post{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *postsRepo) matching(f repository.PostFilter) []models.Post {
	out := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Author != "" && p.Author != f.Author {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID, out[j].ID) < 0
	})
	return out
}

func (r *postsRepo) List(_ context.Context, f repository.PostFilter) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.matching(f)
	if f.Offset >= len(all) {
		return []models.Post{}, nil
	}
	all = all[max(f.Offset, 0):]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, nil
}

func (r *postsRepo) Count(_ context.Context, f repository.PostFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(f))), nil
}

func (r *postsRepo) Update(_ context.Context, id string, patch models.PostPatch) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return models.Post{}, repository.ErrNotFound
	}
	p = patch.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	r.posts[id] = p
	return p, nil
}

func (r *postsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

type usersRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUsers() repository.Users {
	return &usersRepo{users: map[string]models.User{}}
}

func (r *usersRepo) Create(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return models.User{}, repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *usersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

// AuditLogs keeps every entry; Entries is used by tests.
type AuditLogs struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func NewAuditLogs() *AuditLogs { return &AuditLogs{} }

func (r *AuditLogs) Create(_ context.Context, l models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = ids.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, l)
	return nil
}

func (r *AuditLogs) Entries() []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AuditLog(nil), r.entries...)
}
