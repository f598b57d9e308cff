// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/model"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/repository"
)

// Store holds users and todos in memory and honours the same constraints
// as the Mongo repositories.
type Store struct {
	mu    sync.Mutex
	users []model.User
	todos []model.Todo

	// Err, when set, is returned by every operation.
	Err error
	// Calls counts repository operations.
	Calls int
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

func (s *Store) Todos() repository.TodoRepository { return (*todoRepo)(s) }

// AddTodo seeds a todo for owner and returns it.
func (s *Store) AddTodo(owner bson.ObjectID, title string) model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	todo := model.Todo{ID: bson.NewObjectID(), UserID: owner, Title: title, CreatedAt: now, UpdatedAt: now}
	s.todos = append(s.todos, todo)
	return todo
}

// UserCount returns how many users are stored.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// UserByEmail returns a copy of the stored user with email.
func (s *Store) UserByEmail(email string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

type userRepo Store

func (r *userRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateKey
		}
	}

	now := time.Now().UTC()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users = append(s.users, *user)

	return user, nil
}

func (r *userRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}

	return nil, repository.ErrNotFound
}

type todoRepo Store

func (r *todoRepo) ListTodosByOwner(_ context.Context, ownerID bson.ObjectID) ([]*model.Todo, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}

	todos := make([]*model.Todo, 0)
	for _, t := range s.todos {
		if t.UserID == ownerID {
			found := t
			todos = append(todos, &found)
		}
	}

	return todos, nil
}
