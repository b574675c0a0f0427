package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDCtxKey   = "user_id"
	usernameCtxKey = "username"
)

// HandleAuthMiddleware guards mutating task routes. It resolves the
// bearer token to a user and stores the identity in the request
// context for downstream handlers.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		abort(c, newUnauthorizedError("Authentication token is missing"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		abort(c, newUnauthorizedError("Invalid or expired token"))
		return
	}

	user, err := h.auth.Authenticate(c, parts[1])
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}

	c.Set(userIDCtxKey, user.ID)
	c.Set(usernameCtxKey, user.Username)
	c.Next()
}
