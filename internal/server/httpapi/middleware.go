package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/dmitrijs2005/listkeeper/internal/server/auth"
	"github.com/google/uuid"
)

const (
	userIDKey       = "userID"
	requestIDHeader = "X-Request-Id"
)

// RequestID tags every request with a uuid, echoed in the response header
// and available to handlers via the request context.
func RequestID() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id := string(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Response.Header.Set(requestIDHeader, id)
		c.Next(ctx)
	}
}

// BearerAuth rejects requests without a valid bearer token and stores the
// authenticated user id for downstream handlers. Missing, malformed, expired
// and mis-signed tokens all get the same 401.
func BearerAuth(secretKey []byte) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		header := string(c.GetHeader("Authorization"))
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.H{"error": "invalid token"})
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(header, "Bearer "), secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next(ctx)
	}
}

// authUserID returns the user id stored by BearerAuth.
func authUserID(c *app.RequestContext) int64 {
	v, _ := c.Get(userIDKey)
	id, _ := v.(int64)
	return id
}
