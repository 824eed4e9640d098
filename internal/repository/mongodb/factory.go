package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	repo "github.com/baharkarakas/blog-api/internal/repository"
)

const (
	usersCollection     = "users"
	postsCollection     = "posts"
	auditLogsCollection = "audit_logs"
)

func NewRepositories(db *mongo.Database) repo.Set {
	return repo.Set{
		Users:     &usersRepo{db.Collection(usersCollection)},
		Posts:     &postsRepo{db.Collection(postsCollection)},
		AuditLogs: &auditLogsRepo{db.Collection(auditLogsCollection)},
		Close: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}
}

// EnsureIndexes creates the unique user indexes and the index that serves
// category listing in creation order.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	posts := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
	}
	if _, err := db.Collection(postsCollection).Indexes().CreateMany(ctx, posts); err != nil {
		return fmt.Errorf("posts indexes: %w", err)
	}
	return nil
}
