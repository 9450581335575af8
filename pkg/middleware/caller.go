package middleware

import "context"

type callerKey struct{}

type callerHolder struct {
	email string
}

func withCaller(ctx context.Context, h *callerHolder) context.Context {
	return context.WithValue(ctx, callerKey{}, h)
}

func callerFromCtx(ctx context.Context) *callerHolder {
	h, _ := ctx.Value(callerKey{}).(*callerHolder)
	return h
}
