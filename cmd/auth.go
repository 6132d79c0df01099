package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for a token and provisions an API key.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email", shared.ErrMissingArgument)
	}

	password := cmd.String("password")
	if password == "" {
		r.writePlain("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	profile, err := r.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	r.writePlain("✓ Logged in as %s\n", profile.Name)

	if !r.store.Get().CanWrite() {
		r.writePlain("! No API key stored; bookings and venue writes will fail until you log in again\n")
	}

	return nil
}

// AuthRegister creates a new account. Validation happens locally before
// any request: the email must be a stud.noroff.no address and the
// password at least 8 characters.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	input := holidaze.RegisterInput{
		Name:         cmd.String("name"),
		Email:        cmd.String("email"),
		Password:     cmd.String("password"),
		VenueManager: cmd.Bool("venue-manager"),
	}

	profile, err := r.auth.Register(ctx, input)
	if err != nil {
		return err
	}

	r.writePlain("✓ Account created for %s\n", profile.Name)
	r.writePlain("Run 'holidaze auth login %s' to log in\n", profile.Email)

	return nil
}

// AuthLogout clears the stored credentials. Local only; the dark mode
// preference is kept.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.auth.Logout(); err != nil {
		return err
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthStatus prints the stored session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	sess := r.store.Get()

	if !sess.Authenticated() {
		return r.writePlain("Not logged in\n")
	}

	r.writePlain("✓ Logged in as %s (%s)\n", sess.User.Name, sess.User.Email)

	if sess.CanWrite() {
		r.writePlain("API key: ✓ stored\n")
	} else {
		r.writePlain("API key: ✗ missing (log in again to provision one)\n")
	}

	if sess.User.VenueManager {
		r.writePlain("Role: venue manager\n")
	} else {
		r.writePlain("Role: customer\n")
	}

	return nil
}
