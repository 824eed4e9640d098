package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baharkarakas/blog-api/internal/models"
	repo "github.com/baharkarakas/blog-api/internal/repository"
)

type postDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Author    primitive.ObjectID `bson:"author"`
	Category  string             `bson:"category"`
	Slug      string             `bson:"slug"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d postDoc) model() models.Post {
	return models.Post{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Author:    d.Author.Hex(),
		Category:  d.Category,
		Slug:      d.Slug,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func toPostDoc(p models.Post) (postDoc, error) {
	id := primitive.NewObjectID()
	if p.ID != "" {
		var err error
		if id, err = primitive.ObjectIDFromHex(p.ID); err != nil {
			return postDoc{}, repo.ErrInvalidID
		}
	}
	author, err := primitive.ObjectIDFromHex(p.Author)
	if err != nil {
		return postDoc{}, repo.ErrInvalidID
	}
	return postDoc{
		ID:        id,
		Title:     p.Title,
		Content:   p.Content,
		Author:    author,
		Category:  p.Category,
		Slug:      p.Slug,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

type postsRepo struct{ c *mongo.Collection }

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	p.UpdatedAt = p.CreatedAt
	doc, err := toPostDoc(p)
	if err != nil {
		return models.Post{}, err
	}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Post{}, repo.ErrDuplicate
		}
		slog.ErrorContext(ctx, "insert post", "err", err)
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return doc.model(), nil
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Post{}, repo.ErrInvalidID
	}
	var doc postDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Post{}, repo.ErrNotFound
		}
		return models.Post{}, fmt.Errorf("find post: %w", err)
	}
	return doc.model(), nil
}

// postFilter builds the selector shared by List and Count.
func postFilter(f repo.PostFilter) (bson.M, error) {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Author != "" {
		oid, err := primitive.ObjectIDFromHex(f.Author)
		if err != nil {
			return nil, repo.ErrInvalidID
		}
		q["author"] = oid
	}
	return q, nil
}

func listOptions(f repo.PostFilter) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return opts
}

func (r *postsRepo) List(ctx context.Context, f repo.PostFilter) ([]models.Post, error) {
	q, err := postFilter(f)
	if err != nil {
		return nil, err
	}
	cur, err := r.c.Find(ctx, q, listOptions(f))
	if err != nil {
		slog.ErrorContext(ctx, "list posts", "err", err)
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	out := make([]models.Post, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *postsRepo) Count(ctx context.Context, f repo.PostFilter) (int64, error) {
	q, err := postFilter(f)
	if err != nil {
		return 0, err
	}
	n, err := r.c.CountDocuments(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func patchSet(patch models.PostPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Slug != nil {
		set["slug"] = *patch.Slug
	}
	return set
}

func (r *postsRepo) Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Post{}, repo.ErrInvalidID
	}
	res := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patchSet(patch, time.Now().UTC().Truncate(time.Millisecond))},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var doc postDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Post{}, repo.ErrNotFound
		}
		slog.ErrorContext(ctx, "update post", "id", id, "err", err)
		return models.Post{}, fmt.Errorf("update post: %w", err)
	}
	return doc.model(), nil
}

func (r *postsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repo.ErrInvalidID
	}
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
