package shared

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// WithActor stores the identity of the user acting in this request
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the acting user, if one was attached
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// ActorPtr returns the acting user as a nullable reference for created_by columns
func ActorPtr(ctx context.Context) *uuid.UUID {
	if id, ok := ActorFromContext(ctx); ok {
		return &id
	}
	return nil
}
