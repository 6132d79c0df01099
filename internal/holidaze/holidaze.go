// package holidaze wraps the raw gateway with typed calls for every
// consumed Holidaze endpoint.
package holidaze

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/solvberg/holidaze/internal/api"
	"github.com/solvberg/holidaze/internal/models"
)

// Gateway is the raw request surface implemented by [api.Client].
type Gateway interface {
	Request(ctx context.Context, method, path string, body any, level api.AuthLevel) ([]byte, error)
}

// Remote is the full typed API surface. Workflows and the TUI depend on
// this interface so tests can substitute a double.
type Remote interface {
	Login(ctx context.Context, email, password string) (*Credentials, error)
	Register(ctx context.Context, input RegisterInput) (*models.Profile, error)
	CreateAPIKey(ctx context.Context, label string) (string, error)

	Venues(ctx context.Context) ([]models.Venue, error)
	Venue(ctx context.Context, id string) (*models.Venue, error)
	CreateVenue(ctx context.Context, input VenueInput) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id string, input VenueInput) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
	ProfileVenues(ctx context.Context, profileName string) ([]models.Venue, error)

	Booking(ctx context.Context, id string) (*models.Booking, error)
	CreateBooking(ctx context.Context, input BookingInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, input BookingInput) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	ProfileBookings(ctx context.Context, profileName string) ([]models.Booking, error)

	UpdateAvatar(ctx context.Context, profileName string, avatar models.Media) (*models.Profile, error)
}

// Credentials is the login response: the profile plus the bearer token.
type Credentials struct {
	models.Profile
	AccessToken string `json:"accessToken"`
}

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Password     string        `json:"password"`
	Avatar       *models.Media `json:"avatar,omitempty"`
	VenueManager bool          `json:"venueManager"`
}

// VenueInput is the payload for venue create and update.
type VenueInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	MaxGuests   int              `json:"maxGuests"`
	Media       []models.Media   `json:"media,omitempty"`
	Location    *models.Location `json:"location,omitempty"`
}

// BookingInput is the payload for booking create and update. VenueID is
// ignored on update.
type BookingInput struct {
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	VenueID  string    `json:"venueId,omitempty"`
}

// Client implements [Remote] against a [Gateway].
type Client struct {
	gw Gateway
}

var _ Remote = (*Client)(nil)

// NewClient creates a typed Holidaze client over the given gateway.
func NewClient(gw Gateway) *Client {
	return &Client{gw: gw}
}

// decode unwraps the API's {data: ...} envelope into a value of type T.
func decode[T any](body []byte) (T, error) {
	var envelope struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode response: %w", err)
	}
	return envelope.Data, nil
}

// Login exchanges email and password for a profile and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.gw.Request(ctx, http.MethodPost, "/auth/login", body, api.Public)
	if err != nil {
		return nil, err
	}

	creds, err := decode[Credentials](resp)
	if err != nil {
		return nil, err
	}
	return &creds, nil
}

// Register creates a new account. The API does not log the account in;
// callers follow up with [Client.Login].
func (c *Client) Register(ctx context.Context, input RegisterInput) (*models.Profile, error) {
	resp, err := c.gw.Request(ctx, http.MethodPost, "/auth/register", input, api.Public)
	if err != nil {
		return nil, err
	}

	profile, err := decode[models.Profile](resp)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateAPIKey provisions the secondary credential required for write
// operations. Requires only the bearer token.
func (c *Client) CreateAPIKey(ctx context.Context, label string) (string, error) {
	body := map[string]string{"name": label}
	resp, err := c.gw.Request(ctx, http.MethodPost, "/auth/create-api-key", body, api.Bearer)
	if err != nil {
		return "", err
	}

	key, err := decode[struct {
		Key string `json:"key"`
	}](resp)
	if err != nil {
		return "", err
	}
	return key.Key, nil
}

// Venues retrieves the full venue list with media and meta embedded.
func (c *Client) Venues(ctx context.Context) ([]models.Venue, error) {
	resp, err := c.gw.Request(ctx, http.MethodGet, "/holidaze/venues?_media=true&_meta=true", nil, api.Public)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Venue](resp)
}

// Venue retrieves a single venue by ID.
func (c *Client) Venue(ctx context.Context, id string) (*models.Venue, error) {
	path := fmt.Sprintf("/holidaze/venues/%s?_media=true&_meta=true", url.PathEscape(id))
	resp, err := c.gw.Request(ctx, http.MethodGet, path, nil, api.Public)
	if err != nil {
		return nil, err
	}

	venue, err := decode[models.Venue](resp)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// CreateVenue creates a venue. Requires token, API key and the
// venue-manager role (the role is enforced upstream by the workflow and
// again by the API).
func (c *Client) CreateVenue(ctx context.Context, input VenueInput) (*models.Venue, error) {
	resp, err := c.gw.Request(ctx, http.MethodPost, "/holidaze/venues", input, api.BearerAndKey)
	if err != nil {
		return nil, err
	}

	venue, err := decode[models.Venue](resp)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// UpdateVenue replaces a venue's fields.
func (c *Client) UpdateVenue(ctx context.Context, id string, input VenueInput) (*models.Venue, error) {
	path := "/holidaze/venues/" + url.PathEscape(id)
	resp, err := c.gw.Request(ctx, http.MethodPut, path, input, api.BearerAndKey)
	if err != nil {
		return nil, err
	}

	venue, err := decode[models.Venue](resp)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// DeleteVenue removes a venue.
func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	path := "/holidaze/venues/" + url.PathEscape(id)
	_, err := c.gw.Request(ctx, http.MethodDelete, path, nil, api.BearerAndKey)
	return err
}

// ProfileVenues lists venues owned by the named profile.
func (c *Client) ProfileVenues(ctx context.Context, profileName string) ([]models.Venue, error) {
	path := fmt.Sprintf("/holidaze/profiles/%s/venues", url.PathEscape(profileName))
	resp, err := c.gw.Request(ctx, http.MethodGet, path, nil, api.BearerAndKey)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Venue](resp)
}

// Booking retrieves a single booking by ID.
func (c *Client) Booking(ctx context.Context, id string) (*models.Booking, error) {
	path := fmt.Sprintf("/holidaze/bookings/%s?_venue=true", url.PathEscape(id))
	resp, err := c.gw.Request(ctx, http.MethodGet, path, nil, api.BearerAndKey)
	if err != nil {
		return nil, err
	}

	booking, err := decode[models.Booking](resp)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateBooking reserves a venue for a date range.
func (c *Client) CreateBooking(ctx context.Context, input BookingInput) (*models.Booking, error) {
	resp, err := c.gw.Request(ctx, http.MethodPost, "/holidaze/bookings", input, api.BearerAndKey)
	if err != nil {
		return nil, err
	}

	booking, err := decode[models.Booking](resp)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking changes the dates or guest count of an existing booking.
func (c *Client) UpdateBooking(ctx context.Context, id string, input BookingInput) (*models.Booking, error) {
	input.VenueID = ""
	path := "/holidaze/bookings/" + url.PathEscape(id)
	resp, err := c.gw.Request(ctx, http.MethodPut, path, input, api.BearerAndKey)
	if err != nil {
		return nil, err
	}

	booking, err := decode[models.Booking](resp)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking cancels a booking.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	path := "/holidaze/bookings/" + url.PathEscape(id)
	_, err := c.gw.Request(ctx, http.MethodDelete, path, nil, api.BearerAndKey)
	return err
}

// ProfileBookings lists the named profile's bookings with venue and
// customer embedded.
func (c *Client) ProfileBookings(ctx context.Context, profileName string) ([]models.Booking, error) {
	path := fmt.Sprintf("/holidaze/profiles/%s/bookings?_venue=true&_customer=true", url.PathEscape(profileName))
	resp, err := c.gw.Request(ctx, http.MethodGet, path, nil, api.BearerAndKey)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Booking](resp)
}

// UpdateAvatar replaces the profile's avatar and returns the updated
// profile.
func (c *Client) UpdateAvatar(ctx context.Context, profileName string, avatar models.Media) (*models.Profile, error) {
	path := "/holidaze/profiles/" + url.PathEscape(profileName)
	body := map[string]models.Media{"avatar": avatar}
	resp, err := c.gw.Request(ctx, http.MethodPut, path, body, api.BearerAndKey)
	if err != nil {
		return nil, err
	}

	profile, err := decode[models.Profile](resp)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
