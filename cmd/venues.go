package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/solvberg/holidaze/internal/formatter"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/shared"
	"github.com/solvberg/holidaze/internal/workflows"
	"github.com/urfave/cli/v3"
)

// VenuesList prints the venue directory, optionally filtered by name.
// The filter runs locally over the fetched listing; with --cached the
// listing comes from the sqlite mirror instead of the API.
func (r *Runner) VenuesList(ctx context.Context, cmd *cli.Command) error {
	var venues []models.Venue
	var err error

	if cmd.Bool("cached") {
		cache, db, cerr := r.openCache()
		if cerr != nil {
			return cerr
		}
		defer db.Close()

		directory := workflows.NewVenueDirectory(r.remote, cache, r.logger)
		venues, err = directory.CachedVenues()
		if err != nil {
			return fmt.Errorf("failed to read cached venues (run 'holidaze venues sync' first): %w", err)
		}

		if query := cmd.String("search"); query != "" {
			filtered := venues[:0]
			for _, v := range venues {
				if v.MatchesName(query) {
					filtered = append(filtered, v)
				}
			}
			venues = filtered
		}
	} else {
		if _, err = r.directory.FetchAll(ctx); err != nil {
			return fmt.Errorf("failed to fetch venues: %w", err)
		}
		venues = r.directory.Search(cmd.String("search"))
	}

	if path := cmd.String("csv"); path != "" {
		written, err := formatter.WriteVenuesCSV(venues, path)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %d venues to %s\n", len(venues), written)
	}

	if cmd.Bool("json") {
		return r.writeJSON(venues, true)
	}

	text, err := formatter.VenuesToText(venues)
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

// VenuesSearch fetches the directory and filters it locally by name.
// The remote is hit once; the filter never goes back to the network.
func (r *Runner) VenuesSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	if _, err := r.directory.FetchAll(ctx); err != nil {
		return fmt.Errorf("failed to fetch venues: %w", err)
	}

	venues := r.directory.Search(query)

	if cmd.Bool("json") {
		return r.writeJSON(venues, true)
	}

	if len(venues) == 0 {
		return r.writePlain("No venues match %q\n", query)
	}

	text, err := formatter.VenuesToText(venues)
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

// VenuesShow shows a single venue.
func (r *Runner) VenuesShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: venue id", shared.ErrMissingArgument)
	}

	venue, err := r.directory.FetchOne(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch venue: %w", err)
	}

	if path := cmd.String("markdown"); path != "" {
		written, err := formatter.WriteVenueMarkdown(venue, path)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote venue to %s\n", written)
	}

	if cmd.Bool("json") {
		return r.writeJSON(venue, true)
	}

	md, err := formatter.VenueToMarkdown(venue)
	if err != nil {
		return err
	}
	return r.writePlain("%s", md)
}

// VenuesSync fetches the full directory and mirrors it into the cache.
func (r *Runner) VenuesSync(ctx context.Context, cmd *cli.Command) error {
	cache, db, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	directory := workflows.NewVenueDirectory(r.remote, cache, r.logger)

	venues, err := directory.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch venues: %w", err)
	}

	return r.writePlain("✓ Synced %d venues to %s\n", len(venues), r.config.Database.Path)
}

// VenuesCreate registers a new venue for the logged-in venue manager.
func (r *Runner) VenuesCreate(ctx context.Context, cmd *cli.Command) error {
	venue, err := r.owner.CreateVenue(ctx, venueInputFromFlags(cmd))
	if err != nil {
		return err
	}

	r.writePlain("✓ Venue created: %s\n", venue.Name)
	return r.writePlain("ID: %s\n", venue.ID)
}

// VenuesUpdate edits an existing venue.
func (r *Runner) VenuesUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: venue id", shared.ErrMissingArgument)
	}

	venue, err := r.owner.UpdateVenue(ctx, id, venueInputFromFlags(cmd))
	if err != nil {
		return err
	}

	return r.writePlain("✓ Venue updated: %s\n", venue.Name)
}

// VenuesDelete removes a venue. Requires --yes.
func (r *Runner) VenuesDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: venue id", shared.ErrMissingArgument)
	}

	confirmed := cmd.Bool("yes") || r.confirm(fmt.Sprintf("Delete venue %s?", id))

	if err := r.owner.DeleteVenue(ctx, id, confirmed); err != nil {
		if errors.Is(err, workflows.ErrNotConfirmed) {
			return fmt.Errorf("%w: venue %s was not deleted", err, id)
		}
		return err
	}

	return r.writePlain("✓ Venue deleted: %s\n", id)
}

// VenuesMine lists the venues the logged-in manager owns.
func (r *Runner) VenuesMine(ctx context.Context, cmd *cli.Command) error {
	venues, err := r.owner.Venues(ctx)
	if err != nil {
		return err
	}

	text, err := formatter.VenuesToText(venues)
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

func venueInputFromFlags(cmd *cli.Command) holidaze.VenueInput {
	input := holidaze.VenueInput{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
		Price:       cmd.Float("price"),
		MaxGuests:   int(cmd.Int("max-guests")),
	}

	if url := cmd.String("image"); url != "" {
		input.Media = []models.Media{{URL: url, Alt: input.Name}}
	}

	if city, country := cmd.String("city"), cmd.String("country"); city != "" || country != "" {
		input.Location = &models.Location{City: city, Country: country}
	}

	return input
}
