package middleware

import (
	"net/http"

	"printflow/internal/domain"
	"printflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole allows the request through only when the authenticated
// user's role is one of the given roles. Admin always passes.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := domain.Role(c.GetString("role"))
		if role == domain.RoleAdmin || allowed[role] {
			c.Next()
			return
		}
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
		c.Abort()
	}
}
