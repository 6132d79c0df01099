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

// BookingsCreate books a venue through the booking state machine: the
// venue is fetched first so dates and guest count validate against its
// capacity before anything is submitted.
func (r *Runner) BookingsCreate(ctx context.Context, cmd *cli.Command) error {
	venue, err := r.directory.FetchOne(ctx, cmd.String("venue-id"))
	if err != nil {
		return fmt.Errorf("failed to fetch venue: %w", err)
	}

	from, err := shared.ParseDate(cmd.String("from"))
	if err != nil {
		return fmt.Errorf("%w: from must look like 2026-03-14", shared.ErrInvalidFlag)
	}

	to, err := shared.ParseDate(cmd.String("to"))
	if err != nil {
		return fmt.Errorf("%w: to must look like 2026-03-14", shared.ErrInvalidFlag)
	}

	flow := workflows.NewBookingFlow(r.remote, r.store, *venue, r.logger)

	if err := flow.SetDates(from, to); err != nil {
		return err
	}
	if err := flow.SetGuests(int(cmd.Int("guests"))); err != nil {
		return err
	}

	r.writePlain("Booking '%s' for %d night(s), total %.2f\n", venue.Name, models.NightsBetween(from, to), flow.TotalPrice())

	booking, err := flow.Confirm(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Booking confirmed\n")
	r.writePlain("Reference: %s\n", booking.ID)
	r.writePlain("Stay: %s to %s, %d guest(s)\n", shared.FormatDate(booking.DateFrom), shared.FormatDate(booking.DateTo), booking.Guests)

	return nil
}

// BookingsList prints the logged-in user's bookings.
func (r *Runner) BookingsList(ctx context.Context, cmd *cli.Command) error {
	bookings, err := r.owner.Bookings(ctx)
	if err != nil {
		return err
	}

	if path := cmd.String("csv"); path != "" {
		written, err := formatter.WriteBookingsCSV(bookings, path)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %d bookings to %s\n", len(bookings), written)
	}

	if cmd.Bool("json") {
		return r.writeJSON(bookings, true)
	}

	text, err := formatter.BookingsToText(bookings)
	if err != nil {
		return err
	}
	return r.writePlain("%s", text)
}

// BookingsUpdate changes an existing booking.
func (r *Runner) BookingsUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: booking id", shared.ErrMissingArgument)
	}

	from, err := shared.ParseDate(cmd.String("from"))
	if err != nil {
		return fmt.Errorf("%w: from must look like 2026-03-14", shared.ErrInvalidFlag)
	}

	to, err := shared.ParseDate(cmd.String("to"))
	if err != nil {
		return fmt.Errorf("%w: to must look like 2026-03-14", shared.ErrInvalidFlag)
	}

	booking, err := r.owner.UpdateBooking(ctx, id, holidaze.BookingInput{
		DateFrom: from,
		DateTo:   to,
		Guests:   int(cmd.Int("guests")),
	})
	if err != nil {
		return err
	}

	return r.writePlain("✓ Booking updated: %s to %s, %d guest(s)\n",
		shared.FormatDate(booking.DateFrom), shared.FormatDate(booking.DateTo), booking.Guests)
}

// BookingsCancel deletes a booking. Requires --yes.
func (r *Runner) BookingsCancel(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: booking id", shared.ErrMissingArgument)
	}

	confirmed := cmd.Bool("yes") || r.confirm(fmt.Sprintf("Cancel booking %s?", id))

	if err := r.owner.CancelBooking(ctx, id, confirmed); err != nil {
		if errors.Is(err, workflows.ErrNotConfirmed) {
			return fmt.Errorf("%w: booking %s was not cancelled", err, id)
		}
		return err
	}

	return r.writePlain("✓ Booking cancelled: %s\n", id)
}
