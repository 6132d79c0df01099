package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileShow prints the stored profile.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	sess := r.store.Get()
	if !sess.Authenticated() {
		return r.writePlain("Not logged in\n")
	}

	r.writePlainHeader(sess.User.Name)
	r.writePlain("Email: %s\n", sess.User.Email)

	if sess.User.Avatar != nil {
		r.writePlain("Avatar: %s\n", sess.User.Avatar.URL)
	}

	if sess.User.VenueManager {
		r.writePlain("Role: venue manager\n")
	} else {
		r.writePlain("Role: customer\n")
	}

	return nil
}

// ProfileAvatar updates the profile picture from a URL.
func (r *Runner) ProfileAvatar(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: avatar url", shared.ErrMissingArgument)
	}

	profile, err := r.owner.UpdateAvatar(ctx, models.Media{URL: url, Alt: cmd.String("alt")})
	if err != nil {
		return err
	}

	return r.writePlain("✓ Avatar updated for %s\n", profile.Name)
}

// ProfileBecomeManager enables the venue manager role. The flag is
// local to the stored session and applies immediately.
func (r *Runner) ProfileBecomeManager(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.owner.BecomeVenueManager()
	if err != nil {
		return err
	}

	r.writePlain("✓ %s is now a venue manager\n", profile.Name)
	return r.writePlain("You can create venues with 'holidaze venues create'\n")
}

// PrefsDarkMode shows or flips the dark mode preference. The preference
// is local and survives logout.
func (r *Runner) PrefsDarkMode(ctx context.Context, cmd *cli.Command) error {
	state := strings.ToLower(cmd.StringArg("state"))

	switch state {
	case "":
		if r.store.DarkMode() {
			return r.writePlain("Dark mode: on\n")
		}
		return r.writePlain("Dark mode: off\n")
	case "on", "true":
		if err := r.store.SetDarkMode(true); err != nil {
			return err
		}
		return r.writePlain("✓ Dark mode on\n")
	case "off", "false":
		if err := r.store.SetDarkMode(false); err != nil {
			return err
		}
		return r.writePlain("✓ Dark mode off\n")
	default:
		return fmt.Errorf("%w: state must be 'on' or 'off'", shared.ErrInvalidArgument)
	}
}
