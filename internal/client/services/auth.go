// Package services contains application services for the booky console.
// This file defines the authentication service: login, registration,
// credential validation and sign-out on top of the session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/booky/internal/client/client"
	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/dmitrijs2005/booky/internal/common"
	"github.com/dmitrijs2005/booky/internal/logging"
)

// SessionStore is the part of *session.Store the service drives.
type SessionStore interface {
	SetSession(ctx context.Context, credential string) error
	IsAuthenticated(ctx context.Context) bool
	Decoded() *models.Session
	Logout(ctx context.Context) error
}

// AuthService defines authentication operations for the console.
//
// Contract:
//   - Login / Register: obtain a credential from the API and hand it to the
//     session store; the gate opens as soon as they return.
//   - Validate: ask the API whether the held credential is still accepted;
//     a rejection signs the user out locally. A server without the endpoint
//     (404 or 405) leaves the session alone.
//   - Logout: drop the credential and every cached view.
//   - CurrentUser: the decoded identity, or nil when signed out.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Validate(ctx context.Context) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) *models.Session
}

type authService struct {
	api   client.AuthAPI
	store SessionStore
	log   logging.Logger
}

// NewAuthService binds the auth endpoints to the session store.
func NewAuthService(api client.AuthAPI, store SessionStore, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{api: api, store: store, log: log}
}

// Login exchanges username and password for a credential. The password
// buffer is wiped before returning.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.AuthResponse, error) {
	defer common.WipeByteArray(password)

	resp, err := a.api.Login(ctx, models.LoginRequest{Username: username, Password: string(password)})
	if err != nil {
		a.log.Warn(ctx, "login failed", "username", username, "error", err)
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.store.SetSession(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("session error: %w", err)
	}

	a.log.Info(ctx, "signed in", "username", resp.Username)
	return resp, nil
}

// Register creates an account; the API signs the new user in directly.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	resp, err := a.api.Register(ctx, req)
	if err != nil {
		a.log.Warn(ctx, "registration failed", "username", req.Username, "error", err)
		return nil, fmt.Errorf("register error: %w", err)
	}
	if err := a.store.SetSession(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("session error: %w", err)
	}

	a.log.Info(ctx, "registered", "username", resp.Username)
	return resp, nil
}

func (a *authService) Validate(ctx context.Context) error {
	err := a.api.ValidateToken(ctx)
	if err == nil {
		return nil
	}

	// Servers without a validate endpoint leave the check to the first real call.
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusMethodNotAllowed) {
		a.log.Debug(ctx, "server does not support credential validation", "status", apiErr.Status)
		return nil
	}

	if errors.Is(err, client.ErrUnauthorized) {
		a.log.Info(ctx, "credential rejected by server, signing out")
		if lerr := a.store.Logout(ctx); lerr != nil {
			return errors.Join(err, lerr)
		}
	}
	return err
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) *models.Session {
	if !a.store.IsAuthenticated(ctx) {
		return nil
	}
	return a.store.Decoded()
}
