package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-api/internal/domain/entity"
	repo "github.com/oksasatya/todolist-api/internal/domain/repository"
)

// TodoListService implements ownership-scoped CRUD over todo lists.
// Every mutation checks the actor against the resource owner before touching
// the store; reads are scoped to the owner as well and report foreign ids as
// not-found.
type TodoListService struct {
	Lists  repo.TodoListRepository
	Logger *logrus.Logger
}

func NewTodoListService(lists repo.TodoListRepository, logger *logrus.Logger) *TodoListService {
	return &TodoListService{Lists: lists, Logger: logger}
}

func validateListName(name string) error {
	if name == "" {
		return FieldErrors{"list_name": "is required"}
	}
	if len(name) > 255 {
		return FieldErrors{"list_name": "must be at most 255 characters long"}
	}
	return nil
}

// ListForOwner returns every list owned by ownerID with todos attached.
func (s *TodoListService) ListForOwner(ctx context.Context, ownerID string) ([]entity.TodoList, error) {
	return s.Lists.ListByOwner(ownerID)
}

// ListForUser is the user-addressed index. The actor may only browse their
// own lists; anyone else's user id reads as not-found.
func (s *TodoListService) ListForUser(ctx context.Context, actorID, ownerID string) ([]entity.TodoList, error) {
	if err := scopeRead(actorID, ownerID); err != nil {
		return nil, err
	}
	return s.Lists.ListByOwner(ownerID)
}

// Create persists a new list owned by ownerID. The actor must be the owner.
func (s *TodoListService) Create(ctx context.Context, actorID, ownerID, name string) (*entity.TodoList, error) {
	if err := authorizeOwner(actorID, ownerID); err != nil {
		return nil, err
	}
	if err := validateListName(name); err != nil {
		return nil, err
	}

	l := &entity.TodoList{UserID: ownerID, Name: name}
	if err := s.Lists.Create(l); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"list_id": l.ID, "user_id": ownerID}).Info("todo list created")
	}
	return l, nil
}

// Get returns the list with its todos and owner attached.
func (s *TodoListService) Get(ctx context.Context, actorID, listID string) (*entity.TodoList, error) {
	l, err := s.loadList(listID)
	if err != nil {
		return nil, err
	}
	if err := scopeRead(actorID, l.UserID); err != nil {
		return nil, err
	}
	return l, nil
}

// Update renames the list. Only the name is mutable.
func (s *TodoListService) Update(ctx context.Context, actorID, listID, name string) (*entity.TodoList, error) {
	l, err := s.loadList(listID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actorID, l.UserID); err != nil {
		return nil, err
	}
	if err := validateListName(name); err != nil {
		return nil, err
	}

	l.Name = name
	if err := s.Lists.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes the list and, through the FK cascade, all its todos.
func (s *TodoListService) Delete(ctx context.Context, actorID, listID string) error {
	l, err := s.loadList(listID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actorID, l.UserID); err != nil {
		return err
	}

	if err := s.Lists.Delete(listID); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"list_id": listID, "user_id": actorID}).Info("todo list deleted")
	}
	return nil
}

func (s *TodoListService) loadList(listID string) (*entity.TodoList, error) {
	l, err := s.Lists.GetByID(listID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}
