package router

import (
	"github.com/oksasatya/todolist-api/internal/application"
	"github.com/oksasatya/todolist-api/internal/container"
	pginfra "github.com/oksasatya/todolist-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/todolist-api/internal/interface/http"
	"github.com/oksasatya/todolist-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	lists := pginfra.NewTodoListRepository(pool)
	todos := pginfra.NewTodoRepository(pool)

	authSvc := application.NewAuthService(
		users,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		cfg.SessionTTL,
		cfg.SessionRememberTTL,
	)
	listSvc := application.NewTodoListService(lists, logger)
	todoSvc := application.NewTodoService(todos, lists, logger, container.GetES(), cfg.ESTodosIndex)

	authHandler := handlers.NewAuthHandler(authSvc, listSvc, logger, cfg, container.GetRabbitPub())
	listHandler := handlers.NewTodoListHandler(listSvc, logger)
	todoHandler := handlers.NewTodoHandler(todoSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewTodoListModule(listHandler, container.GetJWT()))
	r.Add(modules.NewTodoModule(todoHandler, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
