package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/config"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/model"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/repository"
	"github.com/vasapolrittideah/todo-api/shared/apperror"
	"github.com/vasapolrittideah/todo-api/shared/auth"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*Session, error)
	Login(ctx context.Context, params LoginParams) (*Session, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// Session is the outcome of a successful register or login.
type Session struct {
	User  *model.User
	Token string
}

// PasswordHasher hashes new passwords and checks candidates against stored
// digests.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, digest string) (bool, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	IssueSessionToken(identity auth.Identity, secret string, ttl time.Duration) (string, error)
}

var ErrUserAlreadyExists = apperror.New(apperror.KindConstraintViolation, "User already exists")

type authUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	tokenCfg config.TokenConfig
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		tokenCfg: tokenCfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*Session, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(params.Email)
	if name == "" || email == "" || params.Password == "" {
		return nil, apperror.ErrMissingFields
	}

	// Fail before writing a user that could never receive a session.
	if u.tokenCfg.Secret == "" {
		return nil, apperror.Wrap(apperror.KindInternal, apperror.ErrInternal.Message, auth.ErrMissingSecret)
	}

	passwordHash, err := u.hasher.HashPassword(params.Password)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, apperror.ErrInternal.Message, err)
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Wrap(ErrUserAlreadyExists.Kind, ErrUserAlreadyExists.Message, err)
		}

		return nil, err
	}

	return u.createSession(user)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*Session, error) {
	email := strings.TrimSpace(params.Email)
	if email == "" || params.Password == "" {
		return nil, apperror.ErrMissingFields
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := u.hasher.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, apperror.ErrInternal.Message, err)
	} else if !ok {
		return nil, apperror.ErrInvalidCredentials
	}

	return u.createSession(user)
}

func (u *authUsecase) createSession(user *model.User) (*Session, error) {
	token, err := u.tokens.IssueSessionToken(auth.Identity{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Name:  user.Name,
	}, u.tokenCfg.Secret, auth.SessionTTL)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, apperror.ErrInternal.Message, err)
	}

	return &Session{User: user, Token: token}, nil
}
