package middleware

import (
	"context"

	"github.com/angelmondragon/orderdesk-backend/internal/policy"
	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
)

type contextKey string

const (
	ctxActor    contextKey = "actor"
	ctxAccessID contextKey = "access_id"
)

// ActorFromContext returns the authenticated caller seeded by Auth.
func ActorFromContext(ctx context.Context) (policy.Actor, bool) {
	if ctx == nil {
		return policy.Actor{}, false
	}
	actor, ok := ctx.Value(ctxActor).(policy.Actor)
	return actor, ok
}

// AccessIDFromContext returns the jti of the bearer token on the request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the caller into the context.
func WithActor(ctx context.Context, actor policy.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}

func WithAccessID(ctx context.Context, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAccessID, accessID)
}

// RequireActor returns the caller or an unauthorized error when Auth did not run.
func RequireActor(ctx context.Context) (policy.Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.ID == 0 {
		return policy.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgTokenInvalid)
	}
	return actor, nil
}
