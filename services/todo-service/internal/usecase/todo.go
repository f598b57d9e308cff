package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/model"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/repository"
	"github.com/vasapolrittideah/todo-api/shared/apperror"
)

// TodoUsecase defines the interface for todo-related use cases.
type TodoUsecase interface {
	ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error)
}

type todoUsecase struct {
	todoRepo repository.TodoRepository
}

func NewTodoUsecase(todoRepo repository.TodoRepository) TodoUsecase {
	return &todoUsecase{todoRepo: todoRepo}
}

// ListTodos returns the todos owned by ownerID. An id that cannot name a
// stored user is treated as an unauthenticated caller.
func (u *todoUsecase) ListTodos(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	objectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUnauthenticated, apperror.ErrUnauthorized.Message, err)
	}

	todos, err := u.todoRepo.ListTodosByOwner(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []*model.Todo{}
	}

	return todos, nil
}
