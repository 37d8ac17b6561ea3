package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/todolist-api/internal/container"
	handlers "github.com/oksasatya/todolist-api/internal/interface/http"
	"github.com/oksasatya/todolist-api/internal/interface/middleware"
	"github.com/oksasatya/todolist-api/pkg/helpers"
)

// TodoListModule wires the list routes. Everything requires a session; the
// service layer enforces ownership on top.
type TodoListModule struct {
	Handler *handlers.TodoListHandler
	JWT     *helpers.JWTManager
}

func NewTodoListModule(h *handlers.TodoListHandler, jwt *helpers.JWTManager) *TodoListModule {
	return &TodoListModule{Handler: h, JWT: jwt}
}

func (m *TodoListModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP()),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID()),
	)
	{
		auth.GET("/todolists", m.Handler.Index)
		auth.GET("/users/:user/todolists", m.Handler.IndexForUser)
		auth.POST("/users/:user/todolists", m.Handler.Create)
		auth.GET("/todolists/:id", m.Handler.Show)
		auth.PUT("/todolists/:id", m.Handler.Update)
		auth.DELETE("/todolists/:id", m.Handler.Delete)
	}
}
