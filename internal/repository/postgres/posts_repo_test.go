package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/baharkarakas/blog-api/internal/ids"
	"github.com/baharkarakas/blog-api/internal/models"
	repo "github.com/baharkarakas/blog-api/internal/repository"
)

func TestListQuery(t *testing.T) {
	q, args := listQuery(repo.PostFilter{})
	assert.Equal(t, `SELECT `+postColumns+` FROM posts ORDER BY created_at ASC, id ASC`, q)
	assert.Empty(t, args)

	q, args = listQuery(repo.PostFilter{Category: "go", Author: "a1", Offset: 10, Limit: 10})
	assert.Equal(t,
		`SELECT `+postColumns+` FROM posts WHERE category=$1 AND author_id=$2 ORDER BY created_at ASC, id ASC LIMIT $3 OFFSET $4`,
		q)
	assert.Equal(t, []any{"go", "a1", 10, 10}, args)
}

func TestWhereClauseAuthorOnly(t *testing.T) {
	w, args := whereClause(repo.PostFilter{Author: "a1"})
	assert.Equal(t, " WHERE author_id=$1", w)
	assert.Equal(t, []any{"a1"}, args)
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(pgx.ErrNoRows), repo.ErrNotFound)
	assert.ErrorIs(t, mapErr(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})), repo.ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, mapErr(other))
}

func TestNewPostRowMatchesTimestamptzPrecision(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.FixedZone("X", 3600))

	p := newPostRow(models.Post{Title: "t"}, now)
	assert.True(t, ids.Valid(p.ID))
	assert.Equal(t, time.UTC, p.CreatedAt.Location())
	assert.Equal(t, 123456000, p.CreatedAt.Nanosecond())
	assert.True(t, p.CreatedAt.Equal(now.Truncate(time.Microsecond)))
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	given := newPostRow(models.Post{ID: "fixed", CreatedAt: now.Add(-time.Hour)}, now)
	assert.Equal(t, "fixed", given.ID)
	assert.True(t, given.CreatedAt.Equal(now.Add(-time.Hour).Truncate(time.Microsecond)))
}
