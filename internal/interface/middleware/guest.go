package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/todolist-api/pkg/helpers"
	"github.com/oksasatya/todolist-api/pkg/response"
)

// Guest rejects callers that already hold a live session. Register and login
// are guest-only; an authenticated caller is told where to go instead.
func Guest(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			// Stale or garbage cookie; treat as guest.
			c.Next()
			return
		}
		key := "user:session:" + claims.UserID
		data, rErr := rdb.HGetAll(c.Request.Context(), key).Result()
		if rErr == nil && len(data) > 0 && data["sid"] == claims.SessionID {
			response.Success(c, http.StatusOK, gin.H{"redirect": "/todolists"}, "already logged in", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
