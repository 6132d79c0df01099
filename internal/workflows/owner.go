package workflows

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/solvberg/holidaze/internal/api"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/session"
)

// OwnerActions covers the mutations a logged-in user performs on things
// they already own: their venues, their bookings, their profile. Every
// action checks the session locally before touching the network, and
// deletes demand an explicit confirmation flag from the caller.
type OwnerActions struct {
	remote holidaze.Remote
	store  *session.Store
	logger *log.Logger
}

// NewOwnerActions builds the owner action set.
func NewOwnerActions(remote holidaze.Remote, store *session.Store, logger *log.Logger) *OwnerActions {
	return &OwnerActions{remote: remote, store: store, logger: logger}
}

// requireWrite returns the session when it carries both write
// credentials, or an [api.AuthRequiredError] otherwise.
func (o *OwnerActions) requireWrite() (models.Session, error) {
	sess := o.store.Get()
	if !sess.Authenticated() {
		return models.Session{}, &api.AuthRequiredError{Reason: "log in first"}
	}

	if !sess.CanWrite() {
		return models.Session{}, &api.AuthRequiredError{Reason: "missing api key, log in again to provision one"}
	}

	return sess, nil
}

// requireManager additionally checks the venue-manager role.
func (o *OwnerActions) requireManager() (models.Session, error) {
	sess, err := o.requireWrite()
	if err != nil {
		return models.Session{}, err
	}

	if sess.User == nil || !sess.User.VenueManager {
		return models.Session{}, ErrVenueManagerRequired
	}

	return sess, nil
}

// CreateVenue registers a new venue. Venue managers only.
func (o *OwnerActions) CreateVenue(ctx context.Context, input holidaze.VenueInput) (*models.Venue, error) {
	if _, err := o.requireManager(); err != nil {
		return nil, err
	}

	if err := validateVenue(input); err != nil {
		return nil, err
	}

	venue, err := o.remote.CreateVenue(ctx, input)
	if err != nil {
		return nil, err
	}

	o.logger.Info("venue created", "id", venue.ID, "name", venue.Name)

	return venue, nil
}

// UpdateVenue edits an existing venue. Venue managers only.
func (o *OwnerActions) UpdateVenue(ctx context.Context, id string, input holidaze.VenueInput) (*models.Venue, error) {
	if _, err := o.requireManager(); err != nil {
		return nil, err
	}

	if err := validateVenue(input); err != nil {
		return nil, err
	}

	venue, err := o.remote.UpdateVenue(ctx, id, input)
	if err != nil {
		return nil, err
	}

	o.logger.Info("venue updated", "id", venue.ID)

	return venue, nil
}

// DeleteVenue removes a venue. The caller must pass confirmed=true
// after collecting an explicit confirmation from the user.
func (o *OwnerActions) DeleteVenue(ctx context.Context, id string, confirmed bool) error {
	if _, err := o.requireManager(); err != nil {
		return err
	}

	if !confirmed {
		return ErrNotConfirmed
	}

	if err := o.remote.DeleteVenue(ctx, id); err != nil {
		return err
	}

	o.logger.Info("venue deleted", "id", id)

	return nil
}

// Bookings lists the current user's bookings, venue details included.
func (o *OwnerActions) Bookings(ctx context.Context) ([]models.Booking, error) {
	sess, err := o.requireWrite()
	if err != nil {
		return nil, err
	}

	return o.remote.ProfileBookings(ctx, sess.User.Name)
}

// Venues lists the venues the current user manages.
func (o *OwnerActions) Venues(ctx context.Context) ([]models.Venue, error) {
	sess, err := o.requireManager()
	if err != nil {
		return nil, err
	}

	return o.remote.ProfileVenues(ctx, sess.User.Name)
}

// UpdateBooking changes the dates or guest count of an existing
// booking. The date ordering rules hold here too; capacity is enforced
// by the server since the venue is not at hand.
func (o *OwnerActions) UpdateBooking(ctx context.Context, id string, input holidaze.BookingInput) (*models.Booking, error) {
	if _, err := o.requireWrite(); err != nil {
		return nil, err
	}

	if !input.DateTo.After(input.DateFrom) {
		return nil, &ValidationError{Field: "dateTo", Reason: "must be after the start date"}
	}

	if input.Guests < 1 {
		return nil, &ValidationError{Field: "guests", Reason: "at least one guest is required"}
	}

	booking, err := o.remote.UpdateBooking(ctx, id, input)
	if err != nil {
		return nil, err
	}

	o.logger.Info("booking updated", "id", id)

	return booking, nil
}

// CancelBooking deletes a booking. confirmed must be true.
func (o *OwnerActions) CancelBooking(ctx context.Context, id string, confirmed bool) error {
	if _, err := o.requireWrite(); err != nil {
		return err
	}

	if !confirmed {
		return ErrNotConfirmed
	}

	if err := o.remote.DeleteBooking(ctx, id); err != nil {
		return err
	}

	o.logger.Info("booking cancelled", "id", id)

	return nil
}

// UpdateAvatar sets the profile picture from a URL.
func (o *OwnerActions) UpdateAvatar(ctx context.Context, avatar models.Media) (*models.Profile, error) {
	sess, err := o.requireWrite()
	if err != nil {
		return nil, err
	}

	if avatar.URL == "" {
		return nil, &ValidationError{Field: "avatar", Reason: "url is required"}
	}

	profile, err := o.remote.UpdateAvatar(ctx, sess.User.Name, avatar)
	if err != nil {
		return nil, err
	}

	if err := o.store.SetUser(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// BecomeVenueManager flips the venue-manager flag on the stored
// profile. The role takes effect immediately for access checks; no
// server call is involved.
func (o *OwnerActions) BecomeVenueManager() (*models.Profile, error) {
	sess := o.store.Get()
	if !sess.Authenticated() {
		return nil, &api.AuthRequiredError{Reason: "log in first"}
	}

	user := *sess.User
	user.VenueManager = true

	if err := o.store.SetUser(&user); err != nil {
		return nil, err
	}

	o.logger.Info("venue manager role enabled", "name", user.Name)

	return &user, nil
}

func validateVenue(input holidaze.VenueInput) error {
	if input.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if input.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}

	if input.MaxGuests < 1 {
		return &ValidationError{Field: "maxGuests", Reason: "at least one guest must fit"}
	}

	return nil
}
