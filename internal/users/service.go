package users

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong username or password. The two
// cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service validates operator credentials. Session management is out of scope:
// the desktop client logs in once and remembers the role itself.
type Service struct {
	store storage.UserStore
}

// NewService builds the users service.
func NewService(store storage.UserStore) *Service {
	if store == nil {
		panic("users: store must not be nil")
	}
	return &Service{store: store}
}

// Login checks a username/password pair and returns the account on success.
func (s *Service) Login(ctx context.Context, username, password string) (*v1.User, error) {
	user, err := s.store.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates an operator account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password, role string) (*v1.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &v1.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
