package client

import (
	"context"

	"github.com/dmitrijs2005/booky/internal/client/models"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	validatePath = "/auth/validate"
)

// Auth calls the authentication endpoints. Login and register are sent
// without a credential if none is stored yet.
type Auth struct {
	gw *Gateway
}

func (a *Auth) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.gw.Post(ctx, loginPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.gw.Post(ctx, registerPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken asks the API whether the attached credential is still
// accepted. A rejected credential yields an error matching ErrUnauthorized.
func (a *Auth) ValidateToken(ctx context.Context) error {
	return a.gw.Get(ctx, validatePath, nil, nil)
}
