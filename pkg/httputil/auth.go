package httputil

import (
	"strings"

	"github.com/valyala/fasthttp"
)

const userIDKey = "auth_user_id"

// TokenVerifier verifies a bearer token and returns the user ID it belongs to
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// Auth returns a middleware that requires a valid bearer token
// and stores the authenticated user ID on the request context
func Auth(verifier TokenVerifier) Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			header := string(ctx.Request.Header.Peek("Authorization"))
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				WriteErrorResponse(ctx, "authentication required", fasthttp.StatusUnauthorized)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				WriteErrorResponse(ctx, "invalid or expired token", fasthttp.StatusUnauthorized)
				return
			}

			ctx.SetUserValue(userIDKey, userID)
			next(ctx)
		}
	}
}

// UserID returns the authenticated user ID stored by the Auth middleware
func UserID(ctx *fasthttp.RequestCtx) (uint, bool) {
	userID, ok := ctx.UserValue(userIDKey).(uint)
	return userID, ok
}
