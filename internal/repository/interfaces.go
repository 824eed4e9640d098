package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/blog-api/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("invalid id")
)

// PostFilter selects and slices posts. Empty strings match everything and a
// zero Limit means no limit.
type PostFilter struct {
	Category string
	Author   string
	Offset   int
	Limit    int
}

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// Posts lists in creation order (createdAt, then id).
type Posts interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	List(ctx context.Context, f PostFilter) ([]models.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error)
	Delete(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Set groups the repositories of one store together with its shutdown hook.
type Set struct {
	Users     Users
	Posts     Posts
	AuditLogs AuditLogs
	Close     func(ctx context.Context) error
}
