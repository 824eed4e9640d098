package services

import (
	"errors"
	"fmt"

	repo "github.com/baharkarakas/blog-api/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidID          = errors.New("invalid id")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// storeErr maps repository errors onto service errors, wrapping the rest.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrInvalidID):
		return ErrInvalidID
	case errors.Is(err, repo.ErrDuplicate):
		return ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
