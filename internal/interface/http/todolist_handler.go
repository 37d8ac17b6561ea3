package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-api/internal/application"
	"github.com/oksasatya/todolist-api/internal/interface/middleware"
	"github.com/oksasatya/todolist-api/pkg/response"
	"github.com/oksasatya/todolist-api/pkg/validation"
)

type TodoListHandler struct {
	Svc    *application.TodoListService
	Logger *logrus.Logger
}

func NewTodoListHandler(svc *application.TodoListService, logger *logrus.Logger) *TodoListHandler {
	return &TodoListHandler{Svc: svc, Logger: logger}
}

type todoListRequest struct {
	Name string `json:"list_name" binding:"required,max=255"`
}

// Index returns the caller's lists with tasks attached.
func (h *TodoListHandler) Index(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	lists, err := h.Svc.ListForOwner(c.Request.Context(), uid)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todolists": todoListsJSON(lists)}, "todo lists", nil)
}

// IndexForUser returns the lists of the addressed user. Only the owner may
// browse them.
func (h *TodoListHandler) IndexForUser(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	lists, err := h.Svc.ListForUser(c.Request.Context(), uid, c.Param("user"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todolists": todoListsJSON(lists)}, "todo lists", nil)
}

// Create stores a new list for the addressed user.
func (h *TodoListHandler) Create(c *gin.Context) {
	var req todoListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	if _, err := h.Svc.Create(c.Request.Context(), uid, c.Param("user"), req.Name); err != nil {
		renderServiceError(c, err)
		return
	}
	response.Redirect(c, "/todolists", "Todo list created successfully!")
}

// Show returns one list with its tasks and owner.
func (h *TodoListHandler) Show(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	l, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todolist": todoListJSON(l)}, "todo list", nil)
}

// Update renames a list.
func (h *TodoListHandler) Update(c *gin.Context) {
	var req todoListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	if _, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), req.Name); err != nil {
		renderServiceError(c, err)
		return
	}
	response.Redirect(c, "/todolists", "Todo list updated successfully!")
}

// Delete removes a list and all its tasks.
func (h *TodoListHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		renderServiceError(c, err)
		return
	}
	response.Redirect(c, "/todolists", "Todo list deleted successfully!")
}
