package app

import (
	"context"

	"finance/internal/console"
	applog "finance/internal/log"
	"finance/internal/services"
)

// AuthHelper registers users and checks logins.
type AuthHelper struct {
	p    *console.Prompter
	auth *services.AuthService
}

func NewAuthHelper(p *console.Prompter, auth *services.AuthService) *AuthHelper {
	return &AuthHelper{p: p, auth: auth}
}

func (a *AuthHelper) Menu(logger *applog.Logger) *console.Menu {
	m := console.NewMenu(a.p, logger, "Welcome!",
		console.Option{Label: "Register", Run: a.Register},
		console.Option{Label: "Login", Run: a.Login},
	)
	m.Invalid = "Invalid option. Exiting..."
	return m
}

func (a *AuthHelper) Register(ctx context.Context) error {
	username, err := a.p.Line(ctx, "Enter username: ")
	if err != nil {
		return err
	}
	password, err := a.p.Line(ctx, "Enter password (" + services.PasswordPolicy() + "): ")
	if err != nil {
		return err
	}
	if _, err := a.auth.Register(ctx, username, password); err != nil {
		return err
	}
	a.p.Println("Registration successful!")
	return nil
}

func (a *AuthHelper) Login(ctx context.Context) error {
	username, err := a.p.Line(ctx, "Enter username: ")
	if err != nil {
		return err
	}
	password, err := a.p.Line(ctx, "Enter password: ")
	if err != nil {
		return err
	}
	user, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.p.Printf("Login successful! Welcome, %s\n", user.Username)
	return nil
}
