package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/booky/internal/client/client"
	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/dmitrijs2005/booky/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates the account. The API
// signs the new user in directly, so protected screens open right away.
func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest
	var err error

	if req.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	req.Password = string(password)
	common.WipeByteArray(password)

	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Enter phone (optional)", a.out); err != nil {
		return err
	}
	if req.Address, err = getSimpleText(a.reader, "Enter address (optional)", a.out); err != nil {
		return err
	}

	if _, err := a.authService.Register(ctx, req); err != nil {
		fmt.Fprintln(a.out, "[error]", client.UserMessage(err, "Registration failed. Please try again."))
		return err
	}

	fmt.Fprintln(a.out, "[ok] Registration successful!")
	return nil
}

// Login prompts for credentials and signs in. The password buffer is wiped
// by the auth service.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		fmt.Fprintln(a.out, "[error]", client.UserMessage(err, "Login failed. Please try again."))
		return err
	}

	fmt.Fprintf(a.out, "[ok] Welcome back, %s!\n", resp.Username)
	return nil
}

// Logout drops the session; every screen forgets its records with it.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout could not clear stored credential", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "[ok] Logged out successfully")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.authService.CurrentUser(ctx)
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (user id %d), session valid until %s\n",
		u.Subject, u.UserID, u.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}
