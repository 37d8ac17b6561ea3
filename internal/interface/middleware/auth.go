package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/todolist-api/pkg/helpers"
	"github.com/oksasatya/todolist-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the access token cookie and ensures an active session exists
// in Redis whose sid matches the token's. It sets userID, userName and
// userEmail in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}
		// A token from before the last login/refresh carries a stale sid.
		if data["sid"] != claims.SessionID {
			response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, data["user_id"])
		c.Set("userName", data["name"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a live session exists and
// stays silent otherwise. Used by the home route, which serves both guests
// and logged-in users.
func OptionalAuth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		key := "user:session:" + claims.UserID
		data, rErr := rdb.HGetAll(c.Request.Context(), key).Result()
		if rErr == nil && len(data) > 0 && data["sid"] == claims.SessionID {
			c.Set(CtxUserIDKey, data["user_id"])
			c.Set("userName", data["name"])
			c.Set("userEmail", data["email"])
		}
		c.Next()
	}
}
