package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/blog-api/internal/ids"
	"github.com/baharkarakas/blog-api/internal/models"
	repo "github.com/baharkarakas/blog-api/internal/repository"
)

const postColumns = `id, title, content, author_id, category, slug, created_at, updated_at`

type postsRepo struct{ pool *pgxpool.Pool }

func scanPost(row pgx.Row) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Category, &p.Slug, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// newPostRow fills the store-owned fields. Timestamps are cut to the
// microsecond precision of timestamptz so the returned post matches a re-read.
func newPostRow(p models.Post, now time.Time) models.Post {
	if p.ID == "" {
		p.ID = ids.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.CreatedAt = p.CreatedAt.UTC().Truncate(time.Microsecond)
	p.UpdatedAt = p.CreatedAt
	return p
}

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p = newPostRow(p, time.Now())
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts(`+postColumns+`) VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Title, p.Content, p.Author, p.Category, p.Slug, p.CreatedAt, p.UpdatedAt,
	)
	if err = mapErr(err); err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id=$1`, id))
	return p, mapErr(err)
}

// whereClause renders the filter as SQL, returning the clause and its args.
func whereClause(f repo.PostFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, "category=$"+strconv.Itoa(len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		conds = append(conds, "author_id=$"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func listQuery(f repo.PostFilter) (string, []any) {
	where, args := whereClause(f)
	q := `SELECT ` + postColumns + ` FROM posts` + where + ` ORDER BY created_at ASC, id ASC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += " LIMIT $" + strconv.Itoa(len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += " OFFSET $" + strconv.Itoa(len(args))
	}
	return q, args
}

func (r *postsRepo) List(ctx context.Context, f repo.PostFilter) ([]models.Post, error) {
	q, args := listQuery(f)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	out := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postsRepo) Count(ctx context.Context, f repo.PostFilter) (int64, error) {
	where, args := whereClause(f)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts`+where, args...).Scan(&n)
	return n, err
}

func (r *postsRepo) Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`UPDATE posts
		    SET title      = COALESCE($2, title),
		        content    = COALESCE($3, content),
		        category   = COALESCE($4, category),
		        slug       = COALESCE($5, slug),
		        updated_at = now()
		  WHERE id = $1
		  RETURNING `+postColumns,
		id, patch.Title, patch.Content, patch.Category, patch.Slug,
	))
	return p, mapErr(err)
}

func (r *postsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
