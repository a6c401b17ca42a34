package requestdata

import (
	"context"

	"github.com/modulehub/modulehub-backend/internal/types"
)

type ctxKey struct{}

var requestDataKey ctxKey

// RequestData carries the resolved identity for the current request. It is
// published by the auth middleware and read-only downstream.
type RequestData struct {
	User    *types.User
	Session *types.Session
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
