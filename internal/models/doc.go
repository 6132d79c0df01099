// Package models defines the domain entities shared by every layer of the
// Holidaze client.
//
// The types mirror the wire format of the Holidaze REST API:
//
//   - [Venue] : rentable venue with price, capacity, media and location
//   - [Booking] : a reservation of a venue for a date range
//   - [Profile] : a user account with avatar and venue-manager role flag
//   - [Session] : the locally persisted record of credentials and preferences
//
// The API is the source of truth for all of them; locally they are plain
// snapshots. [Session] is the only one with a local lifecycle, managed by
// the session package.
package models
