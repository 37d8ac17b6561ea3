package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/todolist-api/internal/container"
	handlers "github.com/oksasatya/todolist-api/internal/interface/http"
	"github.com/oksasatya/todolist-api/internal/interface/middleware"
	"github.com/oksasatya/todolist-api/pkg/helpers"
)

// AuthModule wires registration, login, refresh, logout and the home route.
// Register and login are guest-only, logout requires a session, home serves
// both.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP())

	guest := middleware.Guest(rdb, m.JWT)
	rg.POST("/register", registerLimiter, guest, m.Handler.Register)
	rg.POST("/login", loginLimiter, guest, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	rg.GET("/home", middleware.OptionalAuth(rdb, m.JWT), m.Handler.Home)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
