package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-api/internal/application"
	"github.com/oksasatya/todolist-api/internal/domain/entity"
	"github.com/oksasatya/todolist-api/internal/interface/middleware"
	"github.com/oksasatya/todolist-api/pkg/response"
	"github.com/oksasatya/todolist-api/pkg/validation"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

// todoRequest is the full payload for create and update. task_status is
// optional on create and defaults to incomplete.
type todoRequest struct {
	TaskName string `json:"task_name" binding:"required,max=255"`
	DueBy    string `json:"due_by" binding:"required,duedate"`
	Priority string `json:"task_priority" binding:"required,oneof=Low Medium High"`
	Status   bool   `json:"task_status"`
}

func (r todoRequest) toInput() application.TodoInput {
	due, _ := time.Parse(dueByLayout, r.DueBy)
	return application.TodoInput{
		TaskName: r.TaskName,
		DueBy:    due,
		Priority: entity.Priority(r.Priority),
		Status:   r.Status,
	}
}

// Index returns the todos of a list.
func (h *TodoHandler) Index(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	todos, err := h.Svc.ListForList(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todos": todosJSON(todos)}, "todos", nil)
}

// Create stores a new todo under a list.
func (h *TodoHandler) Create(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	if _, err := h.Svc.Create(c.Request.Context(), uid, c.Param("id"), req.toInput()); err != nil {
		renderServiceError(c, err)
		return
	}
	response.Redirect(c, "/todolists", "Todo created successfully!")
}

// Show returns one todo with its parent list.
func (h *TodoHandler) Show(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todo": todoJSON(t)}, "todo", nil)
}

// Update overwrites all mutable fields of a todo.
func (h *TodoHandler) Update(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	if _, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), req.toInput()); err != nil {
		renderServiceError(c, err)
		return
	}
	response.Redirect(c, "/todolists", "Todo updated successfully!")
}

// Toggle flips a todo's completion status.
func (h *TodoHandler) Toggle(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Toggle(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"redirect": "/todolists",
		"todo":     todoJSON(t),
	}, "Todo status updated!", nil)
}

// Delete removes a todo.
func (h *TodoHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		renderServiceError(c, err)
		return
	}
	response.Redirect(c, "/todolists", "Todo deleted successfully!")
}

// Search looks up the caller's todos by task name via Elasticsearch.
func (h *TodoHandler) Search(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), uid, q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("todo search failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results", nil)
}
