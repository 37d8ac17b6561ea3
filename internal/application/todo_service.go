package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-api/internal/domain/entity"
	repo "github.com/oksasatya/todolist-api/internal/domain/repository"
)

// TodoService implements ownership-scoped CRUD over todos. Creation happens
// under a list and copies the list's owner onto the todo; all later checks
// run against that copy. Todos are mirrored into Elasticsearch for the
// owner-scoped search endpoint.
type TodoService struct {
	Todos        repo.TodoRepository
	Lists        repo.TodoListRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESTodosIndex string
}

func NewTodoService(todos repo.TodoRepository, lists repo.TodoListRepository, logger *logrus.Logger, es *elasticsearch.Client, esTodosIndex string) *TodoService {
	return &TodoService{
		Todos:        todos,
		Lists:        lists,
		Logger:       logger,
		ES:           es,
		ESTodosIndex: esTodosIndex,
	}
}

// TodoInput is the full mutable payload of a todo. Create and Update both
// take all four fields; updates are total overwrites, not patches.
type TodoInput struct {
	TaskName string
	DueBy    time.Time
	Priority entity.Priority
	Status   bool
}

func validateTodoInput(in TodoInput) error {
	fe := FieldErrors{}
	if in.TaskName == "" {
		fe["task_name"] = "is required"
	} else if len(in.TaskName) > 255 {
		fe["task_name"] = "must be at most 255 characters long"
	}
	if in.DueBy.IsZero() {
		fe["due_by"] = "must be a valid date"
	}
	if !in.Priority.Valid() {
		fe["task_priority"] = "must be one of Low, Medium, High"
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

// ListForList returns the todos of a list the actor owns.
func (s *TodoService) ListForList(ctx context.Context, actorID, listID string) ([]entity.Todo, error) {
	l, err := s.loadParentList(listID)
	if err != nil {
		return nil, err
	}
	if err := scopeRead(actorID, l.UserID); err != nil {
		return nil, err
	}
	return s.Todos.ListByList(listID)
}

// Create persists a new todo under listID. The actor must own the list; the
// todo's owner is copied from the list, never taken from the caller.
func (s *TodoService) Create(ctx context.Context, actorID, listID string, in TodoInput) (*entity.Todo, error) {
	l, err := s.loadParentList(listID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actorID, l.UserID); err != nil {
		return nil, err
	}
	if err := validateTodoInput(in); err != nil {
		return nil, err
	}

	t := &entity.Todo{
		ListID:   l.ID,
		UserID:   l.UserID,
		TaskName: in.TaskName,
		DueBy:    in.DueBy,
		Priority: in.Priority,
		Status:   in.Status,
	}
	if err := s.Todos.Create(t); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"todo_id": t.ID, "list_id": listID}).Info("todo created")
	}
	s.indexTodo(ctx, t)
	return t, nil
}

// Get returns the todo with its parent list attached.
func (s *TodoService) Get(ctx context.Context, actorID, todoID string) (*entity.Todo, error) {
	t, err := s.loadTodo(todoID)
	if err != nil {
		return nil, err
	}
	if err := scopeRead(actorID, t.UserID); err != nil {
		return nil, err
	}
	return t, nil
}

// Update overwrites all four mutable fields with the given payload.
func (s *TodoService) Update(ctx context.Context, actorID, todoID string, in TodoInput) (*entity.Todo, error) {
	t, err := s.loadTodo(todoID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actorID, t.UserID); err != nil {
		return nil, err
	}
	if err := validateTodoInput(in); err != nil {
		return nil, err
	}

	t.TaskName = in.TaskName
	t.DueBy = in.DueBy
	t.Priority = in.Priority
	t.Status = in.Status
	if err := s.Todos.Update(t); err != nil {
		return nil, err
	}
	s.indexTodo(ctx, t)
	return t, nil
}

// Toggle flips the completion status.
func (s *TodoService) Toggle(ctx context.Context, actorID, todoID string) (*entity.Todo, error) {
	t, err := s.loadTodo(todoID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actorID, t.UserID); err != nil {
		return nil, err
	}

	t.Status = !t.Status
	if err := s.Todos.Update(t); err != nil {
		return nil, err
	}
	s.indexTodo(ctx, t)
	return t, nil
}

// Delete removes the todo.
func (s *TodoService) Delete(ctx context.Context, actorID, todoID string) error {
	t, err := s.loadTodo(todoID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actorID, t.UserID); err != nil {
		return err
	}

	if err := s.Todos.Delete(todoID); err != nil {
		return err
	}
	s.removeTodoIndex(ctx, todoID)
	return nil
}

func (s *TodoService) loadParentList(listID string) (*entity.TodoList, error) {
	l, err := s.Lists.GetByID(listID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *TodoService) loadTodo(todoID string) (*entity.Todo, error) {
	t, err := s.Todos.GetByID(todoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// indexTodo mirrors the todo into Elasticsearch. Indexing is best effort; a
// failure is logged and never fails the request.
func (s *TodoService) indexTodo(ctx context.Context, t *entity.Todo) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return
	}
	doc := map[string]any{
		"id":            t.ID,
		"todo_list_id":  t.ListID,
		"user_id":       t.UserID,
		"task_name":     t.TaskName,
		"due_by":        t.DueBy.Format("2006-01-02"),
		"task_priority": t.Priority,
		"task_status":   t.Status,
		"updated_at":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESTodosIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("todo_id", t.ID).Warn("es index response error")
	}
}

func (s *TodoService) removeTodoIndex(ctx context.Context, todoID string) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESTodosIndex, DocumentID: todoID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", todoID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs an owner-scoped match on task names.
func (s *TodoService) Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"match": map[string]any{"task_name": q},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESTodosIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
