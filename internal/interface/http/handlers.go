package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/todolist-api/internal/application"
	"github.com/oksasatya/todolist-api/internal/domain/entity"
	"github.com/oksasatya/todolist-api/pkg/response"
)

const dueByLayout = "2006-01-02"

// renderServiceError maps application-layer errors onto the API envelope.
// Unauthorized keeps the original wording; not-found stays generic so probing
// ids does not reveal other users' resources.
func renderServiceError(c *gin.Context, err error) {
	if fe, ok := application.AsFieldErrors(err); ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string(fe))
		return
	}
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusForbidden, "Unauthorized action.", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func todoJSON(t *entity.Todo) gin.H {
	out := gin.H{
		"id":            t.ID,
		"todo_list_id":  t.ListID,
		"user_id":       t.UserID,
		"task_name":     t.TaskName,
		"due_by":        t.DueBy.Format(dueByLayout),
		"task_priority": t.Priority,
		"task_status":   t.Status,
		"created_at":    t.CreatedAt,
		"updated_at":    t.UpdatedAt,
	}
	if t.List != nil {
		out["todolist"] = todoListJSON(t.List)
	}
	return out
}

func todoListJSON(l *entity.TodoList) gin.H {
	out := gin.H{
		"id":         l.ID,
		"user_id":    l.UserID,
		"list_name":  l.Name,
		"created_at": l.CreatedAt,
		"updated_at": l.UpdatedAt,
	}
	if l.Tasks != nil {
		tasks := make([]gin.H, 0, len(l.Tasks))
		for i := range l.Tasks {
			tasks = append(tasks, todoJSON(&l.Tasks[i]))
		}
		out["tasks"] = tasks
	}
	if l.Owner != nil {
		out["user"] = userJSON(l.Owner)
	}
	return out
}

func todoListsJSON(lists []entity.TodoList) []gin.H {
	out := make([]gin.H, 0, len(lists))
	for i := range lists {
		out = append(out, todoListJSON(&lists[i]))
	}
	return out
}

func todosJSON(todos []entity.Todo) []gin.H {
	out := make([]gin.H, 0, len(todos))
	for i := range todos {
		out = append(out, todoJSON(&todos[i]))
	}
	return out
}
