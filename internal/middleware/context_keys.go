package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const actorKey = contextKey("actor")
const roleKey = contextKey("role")

// GetActorFromContext retrieves the authenticated actor (user id) set by the
// auth middleware.
func GetActorFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(actorKey); v != nil {
		if actor, ok := v.(string); ok {
			return actor, true
		}
	}
	return "", false
}

// GetRoleFromContext retrieves the actor's role claim.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	if v := ctx.Value(roleKey); v != nil {
		if role, ok := v.(string); ok {
			return role, true
		}
	}
	return "", false
}
