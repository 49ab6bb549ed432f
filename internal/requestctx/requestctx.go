package requestctx

import "context"

type ctxKey string

const originKey ctxKey = "origin"

// Origin identifies who asked for an import batch.
type Origin struct {
	Trigger   string
	ActorID   string
	RequestID string
}

func WithOrigin(ctx context.Context, origin Origin) context.Context {
	return context.WithValue(ctx, originKey, origin)
}

func GetOrigin(ctx context.Context) Origin {
	if value, ok := ctx.Value(originKey).(Origin); ok {
		return value
	}
	return Origin{}
}
