// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the config file and venue cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the venue cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and provision an API key",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when omitted)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account (requires a stud.noroff.no email)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Profile name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Student email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password (at least 8 characters)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "venue-manager",
						Usage: "Register as a venue manager",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear stored credentials (local only)",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the stored session state",
				Action: r.AuthStatus,
			},
		},
	}
}

// venuesCommand handles venue directory operations
func venuesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "venues",
		Aliases: []string{"venue", "v"},
		Usage:   "Browse and manage venues",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List venues from the API or the local cache",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Filter the listing by name (local, case-insensitive)",
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Read from the local cache instead of the API",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:    "csv",
						Usage:   "Write the listing to a CSV file",
						Aliases: []string{"o"},
					},
				},
				Action: r.VenuesList,
			},
			{
				Name:  "search",
				Usage: "Search the venue listing by name (local, case-insensitive)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.VenuesSearch,
			},
			{
				Name:    "show",
				Aliases: []string{"get"},
				Usage:   "Show a single venue with media and metadata",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:  "markdown",
						Usage: "Write the venue to a Markdown file",
					},
				},
				Action: r.VenuesShow,
			},
			{
				Name:  "sync",
				Usage: "Fetch all venues and mirror them into the local cache",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.VenuesSync,
			},
			{
				Name:   "create",
				Usage:  "Create a venue (venue managers only)",
				Flags:  venueWriteFlags(),
				Action: r.VenuesCreate,
			},
			{
				Name:    "edit",
				Aliases: []string{"update"},
				Usage:   "Edit a venue (venue managers only)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  venueWriteFlags(),
				Action: r.VenuesUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a venue (venue managers only)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the deletion",
					},
				},
				Action: r.VenuesDelete,
			},
			{
				Name:   "mine",
				Usage:  "List the venues you manage",
				Action: r.VenuesMine,
			},
		},
	}
}

func venueWriteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "Venue name",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "Venue description",
		},
		&cli.FloatFlag{
			Name:     "price",
			Usage:    "Nightly price",
			Required: true,
		},
		&cli.IntFlag{
			Name:     "max-guests",
			Usage:    "Maximum number of guests",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "image",
			Usage: "Image URL for the venue",
		},
		&cli.StringFlag{
			Name:  "city",
			Usage: "Venue city",
		},
		&cli.StringFlag{
			Name:  "country",
			Usage: "Venue country",
		},
	}
}

// bookingsCommand handles booking operations
func bookingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "bookings",
		Aliases: []string{"booking", "b"},
		Usage:   "Create and manage bookings",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Book a venue for a date range",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "venue-id",
						Usage:    "Venue to book",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "from",
						Usage:    "Check-in date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Check-out date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "guests",
						Usage: "Number of guests",
						Value: 1,
					},
				},
				Action: r.BookingsCreate,
			},
			{
				Name:  "list",
				Usage: "List your bookings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:    "csv",
						Usage:   "Write the listing to a CSV file",
						Aliases: []string{"o"},
					},
				},
				Action: r.BookingsList,
			},
			{
				Name:    "edit",
				Aliases: []string{"update"},
				Usage:   "Change the dates or guest count of a booking",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "Check-in date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Check-out date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "guests",
						Usage: "Number of guests",
						Value: 1,
					},
				},
				Action: r.BookingsUpdate,
			},
			{
				Name:  "cancel",
				Usage: "Cancel a booking",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the cancellation",
					},
				},
				Action: r.BookingsCancel,
			},
		},
	}
}

// profileCommand handles profile operations
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage your profile",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the stored profile",
				Action: r.ProfileShow,
			},
			{
				Name:  "avatar",
				Usage: "Update your profile picture",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "alt",
						Usage: "Accessible description of the image",
					},
				},
				Action: r.ProfileAvatar,
			},
			{
				Name:   "become-manager",
				Usage:  "Enable the venue manager role for this session",
				Action: r.ProfileBecomeManager,
			},
		},
	}
}

// prefsCommand handles local preferences
func prefsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "prefs",
		Usage: "Local preferences",
		Commands: []*cli.Command{
			{
				Name:  "dark-mode",
				Usage: "Show or change the dark mode preference",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "state"},
				},
				Action: r.PrefsDarkMode,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive venue booking.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing and booking venues",
		Action:  r.TUI,
	}
}
