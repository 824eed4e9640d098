package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/baharkarakas/blog-api/internal/models"
	repo "github.com/baharkarakas/blog-api/internal/repository"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type usersRepo struct{ c *mongo.Collection }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return models.User{}, repo.ErrInvalidID
		}
		doc.ID = oid
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, repo.ErrDuplicate
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return doc.model(), nil
}

func (r *usersRepo) findOne(ctx context.Context, q bson.M) (models.User, error) {
	var doc userDoc
	if err := r.c.FindOne(ctx, q).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, repo.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.model(), nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, repo.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}
