package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/hkmoon/bookcheck/internal/handlers"
	"github.com/jaevor/go-nanoid"
)

const requestIDLength = 12

// RequestMeta is a middleware that attaches the client IP, user-agent, and a
// generated request ID to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	newID, _ := nanoid.Standard(requestIDLength)

	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			RequestID: newID(),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}
