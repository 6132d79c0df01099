package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/solvberg/holidaze/internal/models"
)

var _ list.Item = venueItem{}

// venueItem wraps [models.Venue] to implement [list.Item].
type venueItem struct {
	venue models.Venue
}

func (i venueItem) FilterValue() string { return i.venue.Name }
func (i venueItem) Title() string       { return i.venue.Name }
func (i venueItem) Description() string {
	desc := fmt.Sprintf("%.2f/night • sleeps %d", i.venue.Price, i.venue.MaxGuests)
	if i.venue.Location.City != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.venue.Location.City)
	}
	return desc
}
