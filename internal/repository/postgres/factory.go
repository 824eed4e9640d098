package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/blog-api/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Set {
	return repo.Set{
		Users:     &usersRepo{pool},
		Posts:     &postsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
		Close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}

const uniqueViolation = "23505"

// mapErr translates driver errors into repository errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repo.ErrDuplicate
	}
	return err
}
