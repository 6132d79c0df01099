// package models defines the data model for the Holidaze booking client
package models

import (
	"strings"
	"time"
)

// Media represents an image resource attached to a venue or profile.
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Location describes where a venue is situated.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Venue represents a rentable venue as returned by the Holidaze API.
//
// Venues are owned remotely; locally they are treated as a read-through
// cache per fetch and never merged across fetches.
type Venue struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	MaxGuests   int      `json:"maxGuests"`
	Rating      float64  `json:"rating"`
	Media       []Media  `json:"media"`
	Location    Location `json:"location"`
}

// MatchesName reports whether the venue name contains the query,
// case-insensitively. An empty query matches every venue.
func (v Venue) MatchesName(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Name), strings.ToLower(query))
}

// Profile represents a Holidaze user profile.
//
// Name is the unique handle used in profile endpoints. VenueManager grants
// venue create/edit/delete capability.
type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       *Media `json:"avatar,omitempty"`
	VenueManager bool   `json:"venueManager"`
}

// Booking represents a reservation of a venue for a date range.
type Booking struct {
	ID       string    `json:"id"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Venue    *Venue    `json:"venue,omitempty"`
	Customer *Profile  `json:"customer,omitempty"`
}

// Nights returns the number of nights covered by the booking, rounding
// partial days up.
func (b Booking) Nights() int {
	return NightsBetween(b.DateFrom, b.DateTo)
}

// NightsBetween returns the number of nights between two instants,
// rounding partial days up. Returns 0 when to is not after from.
func NightsBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	d := to.Sub(from)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// Session is the client-local record of who is logged in and with what
// credentials, plus the dark-mode display preference.
//
// Token and APIKey must be present together for any write against the
// remote API to succeed. A non-nil User implies a prior successful login
// or registration.
type Session struct {
	User     *Profile `json:"user,omitempty"`
	Token    string   `json:"authToken,omitempty"`
	APIKey   string   `json:"apiKey,omitempty"`
	DarkMode bool     `json:"darkMode"`
}

// Authenticated reports whether a user is logged in with a bearer token.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// CanWrite reports whether the session carries both credentials required
// for mutating calls (bearer token and API key).
func (s Session) CanWrite() bool {
	return s.Authenticated() && s.APIKey != ""
}
