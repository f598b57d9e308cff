package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/usecase"
	"github.com/vasapolrittideah/todo-api/shared/apperror"
	"github.com/vasapolrittideah/todo-api/shared/middleware"
	"github.com/vasapolrittideah/todo-api/shared/utilities"
)

type TodoHTTPHandler struct {
	todoUsecase usecase.TodoUsecase
	logger      *zerolog.Logger
}

func NewTodoHTTPHandler(todoUsecase usecase.TodoUsecase, logger *zerolog.Logger) *TodoHTTPHandler {
	return &TodoHTTPHandler{todoUsecase: todoUsecase, logger: logger}
}

// List responds with the caller's todos. It must run behind the session gate.
func (h *TodoHTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utilities.WriteError(w, h.logger, apperror.ErrUnauthorized)
		return
	}

	todos, err := h.todoUsecase.ListTodos(r.Context(), identity.ID)
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, todos)
}
