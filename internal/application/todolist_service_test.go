package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/todolist-api/internal/domain/entity"
)

func newListService() (*TodoListService, *fakeTodoListRepo, *fakeTodoRepo) {
	todos := newFakeTodoRepo()
	lists := newFakeTodoListRepo(todos)
	return NewTodoListService(lists, nil), lists, todos
}

func TestTodoListCreate(t *testing.T) {
	svc, _, _ := newListService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "alice", "alice", "Groceries")
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, "alice", l.UserID)
	assert.Equal(t, "Groceries", l.Name)
}

func TestTodoListCreateForOtherUserRejected(t *testing.T) {
	svc, lists, _ := newListService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "mallory", "alice", "Groceries")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, lists.lists)
}

func TestTodoListCreateValidation(t *testing.T) {
	svc, _, _ := newListService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "alice", "")
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "list_name")

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.Create(ctx, "alice", "alice", string(long))
	fe, ok = AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "list_name")
}

func TestTodoListGetScopedToOwner(t *testing.T) {
	svc, _, _ := newListService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "alice", "alice", "Groceries")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "alice", l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)

	// Foreign ids read as not-found, never as forbidden.
	_, err = svc.Get(ctx, "mallory", l.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "alice", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoListListForUser(t *testing.T) {
	svc, _, _ := newListService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "alice", "Groceries")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", "alice", "Chores")
	require.NoError(t, err)

	got, err := svc.ListForUser(ctx, "alice", "alice")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.ListForUser(ctx, "mallory", "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoListUpdate(t *testing.T) {
	svc, _, _ := newListService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "alice", "alice", "Groceries")
	require.NoError(t, err)

	got, err := svc.Update(ctx, "alice", l.ID, "Weekend Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Weekend Groceries", got.Name)

	reloaded, err := svc.Get(ctx, "alice", l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekend Groceries", reloaded.Name)
}

func TestTodoListUpdateByNonOwnerLeavesStateUnchanged(t *testing.T) {
	svc, _, _ := newListService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "alice", "alice", "Groceries")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "mallory", l.ID, "Hijacked")
	assert.ErrorIs(t, err, ErrUnauthorized)

	reloaded, err := svc.Get(ctx, "alice", l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", reloaded.Name)
}

func TestTodoListDeleteCascades(t *testing.T) {
	svc, lists, todos := newListService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "alice", "alice", "Groceries")
	require.NoError(t, err)

	require.NoError(t, todos.Create(&entity.Todo{
		ListID:   l.ID,
		UserID:   "alice",
		TaskName: "Buy milk",
		DueBy:    time.Now(),
		Priority: entity.PriorityLow,
	}))

	require.NoError(t, svc.Delete(ctx, "alice", l.ID))
	assert.Empty(t, lists.lists)
	assert.Empty(t, todos.todos)
}

func TestTodoListDeleteByNonOwner(t *testing.T) {
	svc, lists, _ := newListService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "alice", "alice", "Groceries")
	require.NoError(t, err)

	err = svc.Delete(ctx, "mallory", l.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Len(t, lists.lists, 1)
}
