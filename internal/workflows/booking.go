package workflows

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/solvberg/holidaze/internal/api"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/session"
)

// BookingState is the phase of a single booking attempt.
type BookingState int

const (
	SelectingDates BookingState = iota
	DatesValid
	DatesInvalid
	Submitting
	Confirmed
	Failed
)

func (s BookingState) String() string {
	switch s {
	case SelectingDates:
		return "selecting dates"
	case DatesValid:
		return "valid"
	case DatesInvalid:
		return "invalid"
	case Submitting:
		return "submitting"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ComputeTotalPrice is the booking cost: nights times nightly price,
// with partial days rounded up to a full night.
func ComputeTotalPrice(from, to time.Time, pricePerNight float64) float64 {
	return float64(models.NightsBetween(from, to)) * pricePerNight
}

// BookingFlow is the state machine for one booking attempt against a
// single venue. Dates and guest count are validated locally on every
// change; Confirm submits only from a valid state and ignores repeat
// calls while a submission is outstanding.
type BookingFlow struct {
	remote holidaze.Remote
	store  *session.Store
	logger *log.Logger
	venue  models.Venue
	now    func() time.Time

	mu       sync.Mutex
	state    BookingState
	dateFrom time.Time
	dateTo   time.Time
	guests   int
	booking  *models.Booking
	failure  error
}

// NewBookingFlow starts a booking attempt for the given venue. The
// guest count defaults to one.
func NewBookingFlow(remote holidaze.Remote, store *session.Store, venue models.Venue, logger *log.Logger) *BookingFlow {
	return &BookingFlow{
		remote: remote,
		store:  store,
		logger: logger,
		venue:  venue,
		now:    time.Now,
		state:  SelectingDates,
		guests: 1,
	}
}

// State returns the current phase of the attempt.
func (f *BookingFlow) State() BookingState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Venue returns the venue this attempt is for.
func (f *BookingFlow) Venue() models.Venue {
	return f.venue
}

// Booking returns the confirmed booking, or nil before confirmation.
func (f *BookingFlow) Booking() *models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.booking
}

// Failure returns the submission error after a Failed transition.
func (f *BookingFlow) Failure() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.failure
}

// SetDates records the requested stay and revalidates. To leave an
// invalid selection the caller changes the dates; nothing is cleared.
func (f *BookingFlow) SetDates(from, to time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Submitting || f.state == Confirmed {
		return &ValidationError{Field: "dates", Reason: "booking already submitted"}
	}

	f.dateFrom = from
	f.dateTo = to

	return f.revalidate()
}

// SetGuests records the party size and revalidates.
func (f *BookingFlow) SetGuests(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Submitting || f.state == Confirmed {
		return &ValidationError{Field: "guests", Reason: "booking already submitted"}
	}

	f.guests = n

	return f.revalidate()
}

// revalidate checks the selection against the venue and today's date,
// moving the machine to DatesValid or DatesInvalid. Caller holds the
// lock.
func (f *BookingFlow) revalidate() error {
	err := f.validate()
	if err != nil {
		f.state = DatesInvalid

		return err
	}

	f.state = DatesValid

	return nil
}

func (f *BookingFlow) validate() error {
	if f.dateFrom.IsZero() || f.dateTo.IsZero() {
		return &ValidationError{Field: "dates", Reason: "both dates are required"}
	}

	today := dateOnly(f.now())
	if dateOnly(f.dateFrom).Before(today) {
		return &ValidationError{Field: "dateFrom", Reason: "must not be in the past"}
	}

	if !f.dateTo.After(f.dateFrom) {
		return &ValidationError{Field: "dateTo", Reason: "must be after the start date"}
	}

	if f.guests < 1 {
		return &ValidationError{Field: "guests", Reason: "at least one guest is required"}
	}

	if f.guests > f.venue.MaxGuests {
		return &ValidationError{Field: "guests", Reason: "exceeds the venue capacity"}
	}

	return nil
}

// TotalPrice is the cost of the current selection. Zero until a valid
// date range is set.
func (f *BookingFlow) TotalPrice() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return ComputeTotalPrice(f.dateFrom, f.dateTo, f.venue.Price)
}

// Confirm submits the booking. It refuses locally, without a network
// call, when the selection is invalid or the session lacks write
// credentials. While a submission is in flight further calls are
// no-ops. After Failed the selection is kept so the user can retry.
func (f *BookingFlow) Confirm(ctx context.Context) (*models.Booking, error) {
	f.mu.Lock()

	switch f.state {
	case Submitting:
		f.mu.Unlock()

		return nil, nil
	case Confirmed:
		booking := f.booking
		f.mu.Unlock()

		return booking, nil
	case DatesValid, Failed:
		// retry after failure revalidates the kept selection
		if err := f.revalidate(); err != nil {
			f.mu.Unlock()

			return nil, err
		}
	default:
		err := f.validate()
		f.mu.Unlock()

		return nil, err
	}

	if sess := f.store.Get(); !sess.CanWrite() {
		f.mu.Unlock()

		if !sess.Authenticated() {
			return nil, &api.AuthRequiredError{Reason: "log in to book a venue"}
		}

		return nil, &api.AuthRequiredError{Reason: "missing api key, log in again to provision one"}
	}

	input := holidaze.BookingInput{
		DateFrom: f.dateFrom,
		DateTo:   f.dateTo,
		Guests:   f.guests,
		VenueID:  f.venue.ID,
	}

	f.state = Submitting
	f.mu.Unlock()

	booking, err := f.remote.CreateBooking(ctx, input)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = Failed
		f.failure = err
		f.logger.Warn("booking failed", "venue", f.venue.Name, "error", err)

		return nil, err
	}

	f.state = Confirmed
	f.booking = booking
	f.failure = nil
	f.logger.Info("booking confirmed", "id", booking.ID, "venue", f.venue.Name)

	return booking, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
