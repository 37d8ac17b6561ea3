package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/todolist-api/internal/application"
	"github.com/oksasatya/todolist-api/internal/domain/entity"
	repo "github.com/oksasatya/todolist-api/internal/domain/repository"
	"github.com/oksasatya/todolist-api/internal/interface/middleware"
	"github.com/oksasatya/todolist-api/pkg/validation"
)

type memListRepo struct {
	lists map[string]*entity.TodoList
}

func newMemListRepo() *memListRepo {
	return &memListRepo{lists: map[string]*entity.TodoList{}}
}

func (r *memListRepo) Create(l *entity.TodoList) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	r.lists[l.ID] = &cp
	return nil
}

func (r *memListRepo) GetByID(id string) (*entity.TodoList, error) {
	l, ok := r.lists[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *memListRepo) ListByOwner(ownerID string) ([]entity.TodoList, error) {
	out := []entity.TodoList{}
	for _, l := range r.lists {
		if l.UserID == ownerID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memListRepo) Update(l *entity.TodoList) error {
	if _, ok := r.lists[l.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *l
	r.lists[l.ID] = &cp
	return nil
}

func (r *memListRepo) Delete(id string) error {
	if _, ok := r.lists[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.lists, id)
	return nil
}

// asUser stands in for the auth middleware in tests.
func asUser(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, uid)
		c.Next()
	}
}

func newListRouter(t *testing.T, uid string) (*gin.Engine, *memListRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	lists := newMemListRepo()
	h := NewTodoListHandler(application.NewTodoListService(lists, nil), nil)

	r := gin.New()
	api := r.Group("/api", asUser(uid))
	api.GET("/todolists", h.Index)
	api.GET("/users/:user/todolists", h.IndexForUser)
	api.POST("/users/:user/todolists", h.Create)
	api.GET("/todolists/:id", h.Show)
	api.PUT("/todolists/:id", h.Update)
	api.DELETE("/todolists/:id", h.Delete)
	return r, lists
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]any    `json:"data"`
	Error   map[string]string `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestTodoListHandlerCreate(t *testing.T) {
	r, lists := newListRouter(t, "alice")

	w, env := doJSON(t, r, http.MethodPost, "/api/users/alice/todolists", `{"list_name":"Groceries"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Todo list created successfully!", env.Message)
	assert.Equal(t, "/todolists", env.Data["redirect"])
	assert.Len(t, lists.lists, 1)
}

func TestTodoListHandlerCreateForOtherUser(t *testing.T) {
	r, lists := newListRouter(t, "mallory")

	w, env := doJSON(t, r, http.MethodPost, "/api/users/alice/todolists", `{"list_name":"Groceries"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Unauthorized action.", env.Message)
	assert.Empty(t, lists.lists)
}

func TestTodoListHandlerCreateValidation(t *testing.T) {
	r, _ := newListRouter(t, "alice")

	w, env := doJSON(t, r, http.MethodPost, "/api/users/alice/todolists", `{"list_name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is required", env.Error["list_name"])
}

func TestTodoListHandlerShow(t *testing.T) {
	r, lists := newListRouter(t, "alice")
	l := &entity.TodoList{UserID: "alice", Name: "Groceries"}
	require.NoError(t, lists.Create(l))

	w, env := doJSON(t, r, http.MethodGet, "/api/todolists/"+l.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	got, ok := env.Data["todolist"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Groceries", got["list_name"])
}

func TestTodoListHandlerShowForeignListIsNotFound(t *testing.T) {
	r, lists := newListRouter(t, "mallory")
	l := &entity.TodoList{UserID: "alice", Name: "Groceries"}
	require.NoError(t, lists.Create(l))

	w, env := doJSON(t, r, http.MethodGet, "/api/todolists/"+l.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", env.Message)
}

func TestTodoListHandlerUpdateAndDelete(t *testing.T) {
	r, lists := newListRouter(t, "alice")
	l := &entity.TodoList{UserID: "alice", Name: "Groceries"}
	require.NoError(t, lists.Create(l))

	w, env := doJSON(t, r, http.MethodPut, "/api/todolists/"+l.ID, `{"list_name":"Chores"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Todo list updated successfully!", env.Message)
	assert.Equal(t, "Chores", lists.lists[l.ID].Name)

	w, env = doJSON(t, r, http.MethodDelete, "/api/todolists/"+l.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Todo list deleted successfully!", env.Message)
	assert.Empty(t, lists.lists)
}
