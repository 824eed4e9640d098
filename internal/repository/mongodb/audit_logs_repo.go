package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/baharkarakas/blog-api/internal/models"
)

type auditLogDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	EntityType string             `bson:"entityType"`
	EntityID   string             `bson:"entityId"`
	Action     string             `bson:"action"`
	ActorID    string             `bson:"actorId"`
	Details    map[string]any     `bson:"details,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

type auditLogsRepo struct{ c *mongo.Collection }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	_, err := r.c.InsertOne(ctx, auditLogDoc{
		ID:         primitive.NewObjectID(),
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		ActorID:    l.ActorID,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt,
	})
	return err
}
