package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/todolist-api/internal/container"
	handlers "github.com/oksasatya/todolist-api/internal/interface/http"
	"github.com/oksasatya/todolist-api/internal/interface/middleware"
	"github.com/oksasatya/todolist-api/pkg/helpers"
)

// TodoModule wires the todo routes, including the nested create/index under a
// list and the Elasticsearch-backed search.
type TodoModule struct {
	Handler *handlers.TodoHandler
	JWT     *helpers.JWTManager
}

func NewTodoModule(h *handlers.TodoHandler, jwt *helpers.JWTManager) *TodoModule {
	return &TodoModule{Handler: h, JWT: jwt}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP()),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID()),
	)
	{
		auth.GET("/todolists/:id/todos", m.Handler.Index)
		auth.POST("/todolists/:id/todos", m.Handler.Create)
		auth.GET("/todos/:id", m.Handler.Show)
		auth.PUT("/todos/:id", m.Handler.Update)
		auth.DELETE("/todos/:id", m.Handler.Delete)
		auth.PATCH("/todos/:id/toggle", m.Handler.Toggle)
		// Static /todos/search would clash with the :id wildcard above.
		auth.GET("/search/todos", m.Handler.Search)
	}
}
