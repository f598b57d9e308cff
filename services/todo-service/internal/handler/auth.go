package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/payload"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/usecase"
	"github.com/vasapolrittideah/todo-api/shared/auth"
	"github.com/vasapolrittideah/todo-api/shared/utilities"
	"github.com/vasapolrittideah/todo-api/shared/validation"
)

type AuthHTTPHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validation.Validator
	cookies     auth.CookieConfig
	logger      *zerolog.Logger
}

func NewAuthHTTPHandler(
	authUsecase usecase.AuthUsecase,
	validator *validation.Validator,
	cookies auth.CookieConfig,
	logger *zerolog.Logger,
) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		authUsecase: authUsecase,
		validator:   validator,
		cookies:     cookies,
		logger:      logger,
	}
}

func (h *AuthHTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}

	session, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}

	http.SetCookie(w, h.cookies.Issue(session.Token))
	utilities.WriteJSON(w, http.StatusCreated, payload.RegisterResponse{
		Message: "User created successfully",
		User:    payload.NewUserResponse(session.User),
	})
}

func (h *AuthHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}

	session, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utilities.WriteError(w, h.logger, err)
		return
	}

	http.SetCookie(w, h.cookies.Issue(session.Token))
	utilities.WriteMessage(w, http.StatusOK, "User logged in successfully")
}

// Logout clears the session cookie. It does not require a session.
func (h *AuthHTTPHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, h.cookies.Clear())
	utilities.WriteMessage(w, http.StatusOK, "User logged out successfully")
}
