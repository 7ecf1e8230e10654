// Package actorctx carries the authenticated caller id on a context.
package actorctx

import (
	"context"
	"errors"
	"strings"

	"clubxp/internal/ports/output"
)

var ErrNoActor = errors.New("actorctx: no actor on context")

type ctxKey struct{}

var _ output.ActorResolver = Resolver{}

// WithActor returns a copy of ctx carrying id. Blank ids are ignored.
func WithActor(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}

// Resolver reads the actor set by WithActor.
type Resolver struct{}

func (Resolver) CurrentActorID(ctx context.Context) (string, error) {
	if id, ok := FromContext(ctx); ok {
		return id, nil
	}
	return "", ErrNoActor
}
