package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/coachgrid/internal/core"
)

// withRequestMetadata adds the client IP and User-Agent to the request
// context for mutation logging.
func withRequestMetadata(r *http.Request) context.Context {
	ctx := core.ContextWithClientIP(r.Context(), clientIP(r))
	return core.ContextWithUserAgent(ctx, r.UserAgent())
}
