package workflows

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/solvberg/holidaze/internal/api"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/shared"
	mocks "github.com/solvberg/holidaze/internal/testing"
)

func venueInput() holidaze.VenueInput {
	return holidaze.VenueInput{Name: "Lakeview Cabin", Price: 100, MaxGuests: 4}
}

func TestOwnerActionsVenues(t *testing.T) {
	ctx := context.Background()

	t.Run("non-manager venue create is rejected locally", func(t *testing.T) {
		remote := &mocks.MockRemote{}
		actions := NewOwnerActions(remote, authedStore(t), shared.NewLogger(io.Discard))

		_, err := actions.CreateVenue(ctx, venueInput())
		if !errors.Is(err, ErrVenueManagerRequired) {
			t.Fatalf("expected manager requirement, got %v", err)
		}
		if len(remote.Calls()) != 0 {
			t.Errorf("expected no network call, got %v", remote.Calls())
		}
	})

	t.Run("promotion takes effect immediately", func(t *testing.T) {
		store := authedStore(t)
		remote := &mocks.MockRemote{VenueResult: &models.Venue{ID: "v1", Name: "Lakeview Cabin"}}
		actions := NewOwnerActions(remote, store, shared.NewLogger(io.Discard))

		if _, err := actions.BecomeVenueManager(); err != nil {
			t.Fatalf("promotion failed: %v", err)
		}

		venue, err := actions.CreateVenue(ctx, venueInput())
		if err != nil {
			t.Fatalf("expected create to succeed after promotion, got %v", err)
		}
		if venue.ID != "v1" {
			t.Errorf("expected venue v1, got %s", venue.ID)
		}
	})

	t.Run("venue input is validated before the network", func(t *testing.T) {
		store := authedStore(t)
		remote := &mocks.MockRemote{}
		actions := NewOwnerActions(remote, store, shared.NewLogger(io.Discard))
		if _, err := actions.BecomeVenueManager(); err != nil {
			t.Fatalf("promotion failed: %v", err)
		}

		_, err := actions.CreateVenue(ctx, holidaze.VenueInput{Name: "No Room", Price: 50})
		if !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if n := remote.CallCount("CreateVenue"); n != 0 {
			t.Errorf("expected no network call, got %d", n)
		}
	})

	t.Run("delete demands explicit confirmation", func(t *testing.T) {
		store := authedStore(t)
		remote := &mocks.MockRemote{}
		actions := NewOwnerActions(remote, store, shared.NewLogger(io.Discard))
		if _, err := actions.BecomeVenueManager(); err != nil {
			t.Fatalf("promotion failed: %v", err)
		}

		if err := actions.DeleteVenue(ctx, "v1", false); !errors.Is(err, ErrNotConfirmed) {
			t.Fatalf("expected confirmation requirement, got %v", err)
		}
		if n := remote.CallCount("DeleteVenue"); n != 0 {
			t.Errorf("expected no network call, got %d", n)
		}

		if err := actions.DeleteVenue(ctx, "v1", true); err != nil {
			t.Fatalf("confirmed delete failed: %v", err)
		}
	})
}

func TestOwnerActionsBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("missing api key blocks writes", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetUser(&models.Profile{Name: "ola"}); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
		if err := store.SetToken("token-123"); err != nil {
			t.Fatalf("failed to seed token: %v", err)
		}

		remote := &mocks.MockRemote{}
		actions := NewOwnerActions(remote, store, shared.NewLogger(io.Discard))

		_, err := actions.Bookings(ctx)
		if !api.IsAuthRequired(err) {
			t.Fatalf("expected auth required error, got %v", err)
		}
	})

	t.Run("cancellation demands explicit confirmation", func(t *testing.T) {
		remote := &mocks.MockRemote{}
		actions := NewOwnerActions(remote, authedStore(t), shared.NewLogger(io.Discard))

		if err := actions.CancelBooking(ctx, "b1", false); !errors.Is(err, ErrNotConfirmed) {
			t.Fatalf("expected confirmation requirement, got %v", err)
		}
		if err := actions.CancelBooking(ctx, "b1", true); err != nil {
			t.Fatalf("confirmed cancel failed: %v", err)
		}
		if n := remote.CallCount("DeleteBooking"); n != 1 {
			t.Errorf("expected a single delete call, got %d", n)
		}
	})

	t.Run("update validates the date range", func(t *testing.T) {
		remote := &mocks.MockRemote{}
		actions := NewOwnerActions(remote, authedStore(t), shared.NewLogger(io.Discard))

		_, err := actions.UpdateBooking(ctx, "b1", holidaze.BookingInput{
			DateFrom: day(3),
			DateTo:   day(1),
			Guests:   2,
		})
		if !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if n := remote.CallCount("UpdateBooking"); n != 0 {
			t.Errorf("expected no network call, got %d", n)
		}
	})
}

func TestOwnerActionsProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("avatar update persists the returned profile", func(t *testing.T) {
		store := authedStore(t)
		remote := &mocks.MockRemote{
			ProfileResult: &models.Profile{
				Name:   "ola",
				Avatar: &models.Media{URL: "https://img.example/ola.jpg"},
			},
		}
		actions := NewOwnerActions(remote, store, shared.NewLogger(io.Discard))

		if _, err := actions.UpdateAvatar(ctx, models.Media{URL: "https://img.example/ola.jpg"}); err != nil {
			t.Fatalf("avatar update failed: %v", err)
		}

		sess := store.Get()
		if sess.User.Avatar == nil || sess.User.Avatar.URL != "https://img.example/ola.jpg" {
			t.Errorf("expected stored avatar, got %+v", sess.User.Avatar)
		}
	})

	t.Run("avatar requires a url", func(t *testing.T) {
		actions := NewOwnerActions(&mocks.MockRemote{}, authedStore(t), shared.NewLogger(io.Discard))

		if _, err := actions.UpdateAvatar(ctx, models.Media{}); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("promotion requires a login", func(t *testing.T) {
		actions := NewOwnerActions(&mocks.MockRemote{}, newTestStore(t), shared.NewLogger(io.Discard))

		if _, err := actions.BecomeVenueManager(); !api.IsAuthRequired(err) {
			t.Fatalf("expected auth required error, got %v", err)
		}
	})
}
