package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// Register prompts for username, email and password and creates an account.
// The session is left as it was; log in afterwards.
func (a *App) Register(ctx context.Context) error {
	userName, err := a.ask("Enter username")
	if err != nil {
		return err
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, userName, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account %s created, you can log in now\n", u.Username)
	return nil
}

// Login prompts for credentials, stores the session and shows the dashboard.
func (a *App) Login(ctx context.Context) error {
	userName, err := a.ask("Enter username")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, string(password)); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.setUser(userName)
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Login successful")

	return a.Dashboard(ctx)
}

// Logout revokes the session on the server when possible. The local session
// is gone either way.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.setUser("")
	if err != nil {
		a.log.Warn(ctx, "server-side logout failed", "error", err)
		fmt.Fprintf(a.out, "Logged out locally (server not notified: %s)\n", describe(err))
		return nil
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, client.ErrSessionExpired) {
			a.setUser("")
		}
		return err
	}

	a.setUser(u.Username)
	w := a.table()
	fmt.Fprintf(w, "Username:\t%s\n", u.Username)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	if u.FullName != "" {
		fmt.Fprintf(w, "Name:\t%s\n", u.FullName)
	}
	fmt.Fprintf(w, "Active:\t%t\n", u.IsActive)
	return w.Flush()
}
