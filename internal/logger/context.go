package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	cartIDKey    ctxKey = "cart_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func WithCartID(ctx context.Context, cartID string) context.Context {
	return context.WithValue(ctx, cartIDKey, cartID)
}

func CartIDFrom(ctx context.Context) string {
	if v := ctx.Value(cartIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns logger with request_id and cart_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if cartID := CartIDFrom(ctx); cartID != "" {
		l = l.With(zap.String("cart_id", cartID))
	}
	return l
}
