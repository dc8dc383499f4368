package authmw

import (
	"context"

	"github.com/openlearn/classroom/internal/auth"
)

type ctxKey struct{}

var ctxKeyActor = ctxKey{}

func WithActor(ctx context.Context, a auth.Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, a)
}

func ActorFromContext(ctx context.Context) (auth.Actor, bool) {
	a, ok := ctx.Value(ctxKeyActor).(auth.Actor)
	return a, ok
}
