package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in and persists the session token locally.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if password == "" {
		var err error
		if password, err = promptPassword(); err != nil {
			return err
		}
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrMissingArgument)
	}

	r.logger.Info("signing in", "email", email)

	result, err := r.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	login := result.Data

	db, creds, err := r.openCredentials()
	if err != nil {
		return err
	}
	defer db.Close()

	user := models.AuthUser{ID: login.UserID, Email: login.Email, Name: login.Name}
	if err := creds.Save(user, login.Token); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	return r.writePlainln("Signed in as %s (%s)", login.Name, login.Email)
}

// AuthSignup creates a new account. The new account is not signed in; run
// 'auth login' afterwards.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	name := cmd.String("name")
	password := cmd.String("password")

	if password == "" {
		var err error
		if password, err = promptPassword(); err != nil {
			return err
		}
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrMissingArgument)
	}

	r.logger.Info("creating account", "email", email)

	result, err := r.auth.Signup(ctx, email, name, password)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	message := result.Message
	if message == "" {
		message = "Account created"
	}
	return r.writePlainln("%s. Run 'clavier auth login' to sign in.", message)
}

// AuthLogout clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	db, creds, err := r.openCredentials()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := creds.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	return r.writePlainln("Signed out")
}

// AuthWhoami verifies the stored token against the backend.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.auth.Verify(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrVerifyFailed, err)
	}

	user := result.Data
	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}
	return r.writePlainln("%s (%s)", user.Name, user.Email)
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
