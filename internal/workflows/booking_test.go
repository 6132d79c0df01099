package workflows

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/solvberg/holidaze/internal/api"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/session"
	"github.com/solvberg/holidaze/internal/shared"
	mocks "github.com/solvberg/holidaze/internal/testing"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, time.March, 10+offset, 0, 0, 0, 0, time.UTC)
}

func testVenue() models.Venue {
	return models.Venue{
		ID:        "v1",
		Name:      "Lakeview Cabin",
		Price:     100,
		MaxGuests: 4,
	}
}

func authedStore(t *testing.T) *session.Store {
	t.Helper()

	store := newTestStore(t)
	if err := store.SetUser(&models.Profile{Name: "ola", Email: "ola@stud.noroff.no"}); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	if err := store.SetToken("token-123"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
	if err := store.SetAPIKey("key-abc"); err != nil {
		t.Fatalf("failed to seed api key: %v", err)
	}

	return store
}

func newTestBookingFlow(t *testing.T, remote holidaze.Remote, store *session.Store) *BookingFlow {
	t.Helper()

	flow := NewBookingFlow(remote, store, testVenue(), shared.NewLogger(io.Discard))
	flow.now = func() time.Time { return testNow }

	return flow
}

func TestBookingFlowValidation(t *testing.T) {
	t.Run("starts selecting dates with one guest", func(t *testing.T) {
		flow := newTestBookingFlow(t, &mocks.MockRemote{}, authedStore(t))

		if flow.State() != SelectingDates {
			t.Errorf("expected selecting dates, got %s", flow.State())
		}
		if flow.TotalPrice() != 0 {
			t.Errorf("expected zero price before dates, got %f", flow.TotalPrice())
		}
	})

	t.Run("rejects a start date in the past", func(t *testing.T) {
		flow := newTestBookingFlow(t, &mocks.MockRemote{}, authedStore(t))

		err := flow.SetDates(day(-1), day(2))

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "dateFrom" {
			t.Fatalf("expected dateFrom validation error, got %v", err)
		}
		if flow.State() != DatesInvalid {
			t.Errorf("expected invalid state, got %s", flow.State())
		}
	})

	t.Run("accepts a stay starting today", func(t *testing.T) {
		flow := newTestBookingFlow(t, &mocks.MockRemote{}, authedStore(t))

		if err := flow.SetDates(day(0), day(2)); err != nil {
			t.Fatalf("expected today to be a valid start, got %v", err)
		}
		if flow.State() != DatesValid {
			t.Errorf("expected valid state, got %s", flow.State())
		}
	})

	t.Run("rejects an end date on or before the start", func(t *testing.T) {
		flow := newTestBookingFlow(t, &mocks.MockRemote{}, authedStore(t))

		err := flow.SetDates(day(2), day(2))

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "dateTo" {
			t.Fatalf("expected dateTo validation error, got %v", err)
		}
	})

	t.Run("rejects a party over venue capacity", func(t *testing.T) {
		flow := newTestBookingFlow(t, &mocks.MockRemote{}, authedStore(t))
		if err := flow.SetDates(day(1), day(3)); err != nil {
			t.Fatalf("failed to set dates: %v", err)
		}

		err := flow.SetGuests(5)

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "guests" {
			t.Fatalf("expected guests validation error, got %v", err)
		}
		if flow.State() != DatesInvalid {
			t.Errorf("expected invalid state, got %s", flow.State())
		}
	})

	t.Run("changing the selection recovers from invalid", func(t *testing.T) {
		flow := newTestBookingFlow(t, &mocks.MockRemote{}, authedStore(t))
		_ = flow.SetDates(day(2), day(1))

		if err := flow.SetDates(day(1), day(3)); err != nil {
			t.Fatalf("expected recovery, got %v", err)
		}
		if flow.State() != DatesValid {
			t.Errorf("expected valid state, got %s", flow.State())
		}
	})
}

func TestBookingFlowTotalPrice(t *testing.T) {
	t.Run("multiplies nights by nightly price", func(t *testing.T) {
		flow := newTestBookingFlow(t, &mocks.MockRemote{}, authedStore(t))
		if err := flow.SetDates(day(1), day(4)); err != nil {
			t.Fatalf("failed to set dates: %v", err)
		}

		if got := flow.TotalPrice(); got != 300 {
			t.Errorf("expected 300, got %f", got)
		}
	})

	t.Run("rounds partial days up to a full night", func(t *testing.T) {
		from := day(1)
		to := day(3).Add(6 * time.Hour)

		if got := ComputeTotalPrice(from, to, 100); got != 300 {
			t.Errorf("expected 300 for a partial third day, got %f", got)
		}
	})
}

func TestBookingFlowConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses an invalid selection without a network call", func(t *testing.T) {
		remote := &mocks.MockRemote{}
		flow := newTestBookingFlow(t, remote, authedStore(t))

		if _, err := flow.Confirm(ctx); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if n := remote.CallCount("CreateBooking"); n != 0 {
			t.Errorf("expected no network call, got %d", n)
		}
	})

	t.Run("refuses without credentials", func(t *testing.T) {
		remote := &mocks.MockRemote{}
		flow := newTestBookingFlow(t, remote, newTestStore(t))
		if err := flow.SetDates(day(1), day(3)); err != nil {
			t.Fatalf("failed to set dates: %v", err)
		}

		_, err := flow.Confirm(ctx)
		if !api.IsAuthRequired(err) {
			t.Fatalf("expected auth required error, got %v", err)
		}
		if n := remote.CallCount("CreateBooking"); n != 0 {
			t.Errorf("expected no network call, got %d", n)
		}
	})

	t.Run("submits a valid selection", func(t *testing.T) {
		remote := &mocks.MockRemote{
			BookingResult: &models.Booking{ID: "b1", DateFrom: day(1), DateTo: day(3), Guests: 2},
		}
		flow := newTestBookingFlow(t, remote, authedStore(t))
		if err := flow.SetDates(day(1), day(3)); err != nil {
			t.Fatalf("failed to set dates: %v", err)
		}
		if err := flow.SetGuests(2); err != nil {
			t.Fatalf("failed to set guests: %v", err)
		}

		booking, err := flow.Confirm(ctx)
		if err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if booking.ID != "b1" {
			t.Errorf("expected booking b1, got %s", booking.ID)
		}
		if flow.State() != Confirmed {
			t.Errorf("expected confirmed state, got %s", flow.State())
		}
	})

	t.Run("repeat confirm after success makes no second call", func(t *testing.T) {
		remote := &mocks.MockRemote{BookingResult: &models.Booking{ID: "b1"}}
		flow := newTestBookingFlow(t, remote, authedStore(t))
		if err := flow.SetDates(day(1), day(3)); err != nil {
			t.Fatalf("failed to set dates: %v", err)
		}

		if _, err := flow.Confirm(ctx); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		booking, err := flow.Confirm(ctx)
		if err != nil {
			t.Fatalf("repeat confirm failed: %v", err)
		}
		if booking == nil || booking.ID != "b1" {
			t.Errorf("expected the confirmed booking back, got %+v", booking)
		}
		if n := remote.CallCount("CreateBooking"); n != 1 {
			t.Errorf("expected a single submission, got %d", n)
		}
	})

	t.Run("keeps the selection after a server failure", func(t *testing.T) {
		remote := &mocks.MockRemote{BookingErr: &api.Error{Status: 409, Message: "dates unavailable"}}
		flow := newTestBookingFlow(t, remote, authedStore(t))
		if err := flow.SetDates(day(1), day(3)); err != nil {
			t.Fatalf("failed to set dates: %v", err)
		}

		if _, err := flow.Confirm(ctx); err == nil {
			t.Fatal("expected submission error")
		}
		if flow.State() != Failed {
			t.Errorf("expected failed state, got %s", flow.State())
		}
		if flow.Failure() == nil {
			t.Error("expected failure to be recorded")
		}

		// retry with the kept selection
		remote.BookingErr = nil
		remote.BookingResult = &models.Booking{ID: "b2"}

		booking, err := flow.Confirm(ctx)
		if err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if booking.ID != "b2" {
			t.Errorf("expected booking b2, got %s", booking.ID)
		}
	})

	t.Run("confirm is a no-op while a submission is in flight", func(t *testing.T) {
		remote := &slowRemote{
			MockRemote: &mocks.MockRemote{BookingResult: &models.Booking{ID: "b1"}},
			started:    make(chan struct{}),
			release:    make(chan struct{}),
		}
		flow := newTestBookingFlow(t, remote, authedStore(t))
		if err := flow.SetDates(day(1), day(3)); err != nil {
			t.Fatalf("failed to set dates: %v", err)
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = flow.Confirm(ctx)
		}()

		<-remote.started
		booking, err := flow.Confirm(ctx)
		if err != nil {
			t.Fatalf("expected in-flight confirm to be a no-op, got %v", err)
		}
		if booking != nil {
			t.Errorf("expected no booking from the no-op call, got %+v", booking)
		}

		close(remote.release)
		wg.Wait()

		if n := remote.CallCount("CreateBooking"); n != 1 {
			t.Errorf("expected a single submission, got %d", n)
		}
	})
}

// slowRemote blocks CreateBooking until released so tests can observe
// the Submitting state.
type slowRemote struct {
	*mocks.MockRemote
	started chan struct{}
	release chan struct{}
}

func (s *slowRemote) CreateBooking(ctx context.Context, input holidaze.BookingInput) (*models.Booking, error) {
	close(s.started)
	<-s.release

	return s.MockRemote.CreateBooking(ctx, input)
}
