// package routes maps client surfaces to access requirements.
package routes

import "github.com/solvberg/holidaze/internal/models"

// RouteKind classifies a surface by who may reach it.
type RouteKind int

const (
	// Public surfaces need no session at all.
	Public RouteKind = iota
	// Protected surfaces require a logged-in user.
	Protected
	// VenueManagerOnly surfaces additionally require the venue-manager
	// role on the user's profile.
	VenueManagerOnly
)

// Route names every navigable surface of the client.
type Route string

const (
	RouteHome          Route = "home"
	RouteLogin         Route = "login"
	RouteRegister      Route = "register"
	RouteVenueDetail   Route = "venue-detail"
	RouteVenueCreate   Route = "venue-create"
	RouteVenueEdit     Route = "venue-edit"
	RouteBookingCreate Route = "booking-create"
	RouteBookingEdit   Route = "booking-edit"
	RouteDashboard     Route = "dashboard"
	RouteAvatarEdit    Route = "avatar-edit"
	RouteMyVenues      Route = "my-venues"
	RouteMyBookings    Route = "my-bookings"
)

// table maps every route to its access requirement. Routes not listed are
// treated as public.
var table = map[Route]RouteKind{
	RouteHome:          Public,
	RouteLogin:         Public,
	RouteRegister:      Public,
	RouteVenueDetail:   Public,
	RouteVenueCreate:   VenueManagerOnly,
	RouteVenueEdit:     VenueManagerOnly,
	RouteMyVenues:      VenueManagerOnly,
	RouteBookingCreate: Protected,
	RouteBookingEdit:   Protected,
	RouteDashboard:     Protected,
	RouteAvatarEdit:    Protected,
	RouteMyBookings:    Protected,
}

// Kind returns the access requirement for a route.
func Kind(r Route) RouteKind {
	kind, ok := table[r]
	if !ok {
		return Public
	}
	return kind
}

// CanAccess reports whether the session may reach a surface of the given
// kind. It is a pure function of the snapshot: decisions are never cached,
// so a promotion to venue manager applies on the very next call.
func CanAccess(kind RouteKind, s models.Session) bool {
	switch kind {
	case Public:
		return true
	case Protected:
		return s.User != nil
	case VenueManagerOnly:
		return s.User != nil && s.User.VenueManager
	default:
		return false
	}
}

// CanVisit is CanAccess looked up through the route table.
func CanVisit(r Route, s models.Session) bool {
	return CanAccess(Kind(r), s)
}
