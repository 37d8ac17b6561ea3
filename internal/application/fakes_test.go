package application

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/todolist-api/internal/domain/entity"
	repo "github.com/oksasatya/todolist-api/internal/domain/repository"
)

// In-memory repositories backing the service tests. The list fake cascades
// deletes into the todo fake the way the FK does in Postgres.

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeTodoRepo struct {
	todos map[string]*entity.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[string]*entity.Todo{}}
}

func (r *fakeTodoRepo) Create(t *entity.Todo) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	cp.List = nil
	r.todos[t.ID] = &cp
	return nil
}

func (r *fakeTodoRepo) GetByID(id string) (*entity.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTodoRepo) ListByList(listID string) ([]entity.Todo, error) {
	out := []entity.Todo{}
	for _, t := range r.todos {
		if t.ListID == listID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTodoRepo) Update(t *entity.Todo) error {
	if _, ok := r.todos[t.ID]; !ok {
		return repo.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	cp := *t
	cp.List = nil
	r.todos[t.ID] = &cp
	return nil
}

func (r *fakeTodoRepo) Delete(id string) error {
	if _, ok := r.todos[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

type fakeTodoListRepo struct {
	lists map[string]*entity.TodoList
	todos *fakeTodoRepo
}

func newFakeTodoListRepo(todos *fakeTodoRepo) *fakeTodoListRepo {
	return &fakeTodoListRepo{lists: map[string]*entity.TodoList{}, todos: todos}
}

func (r *fakeTodoListRepo) Create(l *entity.TodoList) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	cp.Tasks = nil
	cp.Owner = nil
	r.lists[l.ID] = &cp
	return nil
}

func (r *fakeTodoListRepo) GetByID(id string) (*entity.TodoList, error) {
	l, ok := r.lists[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *l
	if r.todos != nil {
		cp.Tasks, _ = r.todos.ListByList(id)
	}
	return &cp, nil
}

func (r *fakeTodoListRepo) ListByOwner(ownerID string) ([]entity.TodoList, error) {
	out := []entity.TodoList{}
	for _, l := range r.lists {
		if l.UserID == ownerID {
			cp := *l
			if r.todos != nil {
				cp.Tasks, _ = r.todos.ListByList(l.ID)
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTodoListRepo) Update(l *entity.TodoList) error {
	if _, ok := r.lists[l.ID]; !ok {
		return repo.ErrNotFound
	}
	l.UpdatedAt = time.Now()
	cp := *l
	cp.Tasks = nil
	cp.Owner = nil
	r.lists[l.ID] = &cp
	return nil
}

func (r *fakeTodoListRepo) Delete(id string) error {
	if _, ok := r.lists[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.lists, id)
	if r.todos != nil {
		for tid, t := range r.todos.todos {
			if t.ListID == id {
				delete(r.todos.todos, tid)
			}
		}
	}
	return nil
}

var (
	_ repo.UserRepository     = (*fakeUserRepo)(nil)
	_ repo.TodoRepository     = (*fakeTodoRepo)(nil)
	_ repo.TodoListRepository = (*fakeTodoListRepo)(nil)
)
