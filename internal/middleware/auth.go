package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"printflow/internal/domain"
	"printflow/internal/pkg/jwt"
	"printflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type UserLoader interface {
	GetActive(ctx context.Context, id int64) (*domain.User, error)
}

// userCache keeps recently authenticated users around so every request
// does not hit the database. 30s is short enough that deactivating a user
// locks them out almost immediately.
var userCache = cache.New(30*time.Second, time.Minute)

// Auth validates the bearer token and loads the active user behind it.
// Sets "user_id" (int64) and "role" (string) on the context.
func Auth(tokens *jwt.Service, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		cacheKey := strconv.FormatInt(claims.UserID, 10)
		if cached, found := userCache.Get(cacheKey); found {
			user := cached.(*domain.User)
			c.Set("user_id", user.ID)
			c.Set("role", string(user.Role))
			c.Next()
			return
		}

		user, err := users.GetActive(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account not found or disabled")
			c.Abort()
			return
		}

		userCache.Set(cacheKey, user, cache.DefaultExpiration)
		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

// InvalidateUser drops a user from the auth cache, used after deactivation
// so the lockout does not wait for the TTL.
func InvalidateUser(id int64) {
	userCache.Delete(strconv.FormatInt(id, 10))
}

// FlushAuthCache clears every cached user. Tests that rebuild the user
// table need this; ids restart at 1 and would hit stale entries.
func FlushAuthCache() {
	userCache.Flush()
}
