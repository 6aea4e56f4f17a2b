package service

import (
	"context"
	"errors"

	ordererrors "github.com/lojadev/pedidos/internal/errors"
	"github.com/lojadev/pedidos/internal/store"
	"github.com/lojadev/pedidos/pkg/auth"
)

// AuthService checks credentials and issues bearer tokens.
type AuthService interface {
	// Login verifies the username/password pair and returns a signed token.
	// Returns ErrInvalidCredentials when either the user is unknown or the
	// password does not match, so callers cannot tell the two apart.
	Login(ctx context.Context, credentials LoginDto) (*LoginResultDto, error)
}

// Auth implements AuthService over the user store and a token issuer.
type Auth struct {
	userStore store.UserStore
	issuer    auth.Issuer
}

var _ AuthService = (*Auth)(nil)

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userStore store.UserStore, issuer auth.Issuer) *Auth {
	return &Auth{userStore: userStore, issuer: issuer}
}

// LoginDto is the wire payload for POST /login.
type LoginDto struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResultDto is the response body for a successful login.
type LoginResultDto struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

func (a *Auth) Login(ctx context.Context, credentials LoginDto) (*LoginResultDto, error) {
	user, err := a.userStore.FindByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, ordererrors.ErrUserNotFound) {
			return nil, ordererrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, credentials.Password) {
		return nil, ordererrors.ErrInvalidCredentials
	}

	token, err := a.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResultDto{User: user.Username, Token: token}, nil
}
