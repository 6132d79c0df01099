package workflows

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/repositories"
)

// VenueDirectory holds the most recent venue listing and serves local,
// non-destructive name searches over it. Fetches are mirrored into the
// sqlite cache when one is attached, so listings survive restarts and
// network outages.
type VenueDirectory struct {
	remote holidaze.Remote
	cache  *repositories.VenueCache
	logger *log.Logger

	mu      sync.Mutex
	venues  []models.Venue
	lastErr error
}

// NewVenueDirectory builds a directory. cache may be nil, in which case
// fetches are kept in memory only.
func NewVenueDirectory(remote holidaze.Remote, cache *repositories.VenueCache, logger *log.Logger) *VenueDirectory {
	return &VenueDirectory{
		remote: remote,
		cache:  cache,
		logger: logger,
	}
}

// FetchAll retrieves the full venue listing and replaces the in-memory
// snapshot. On failure the previous snapshot is kept and the error is
// recorded for [VenueDirectory.Err].
func (d *VenueDirectory) FetchAll(ctx context.Context) ([]models.Venue, error) {
	venues, err := d.remote.Venues(ctx)

	d.mu.Lock()
	d.lastErr = err
	if err == nil {
		d.venues = venues
	}
	d.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if cerr := d.cache.ReplaceAll(venues, time.Now()); cerr != nil {
			d.logger.Warn("unable to mirror venues to cache", "error", cerr)
		}
	}

	d.logger.Debug("fetched venues", "count", len(venues))

	return venues, nil
}

// FetchOne retrieves a single venue with media and metadata.
func (d *VenueDirectory) FetchOne(ctx context.Context, id string) (*models.Venue, error) {
	return d.remote.Venue(ctx, id)
}

// Search filters the current snapshot by case-insensitive substring
// match on the venue name. The snapshot itself is untouched; an empty
// query returns everything.
func (d *VenueDirectory) Search(query string) []models.Venue {
	d.mu.Lock()
	defer d.mu.Unlock()

	matches := make([]models.Venue, 0, len(d.venues))
	for _, v := range d.venues {
		if v.MatchesName(query) {
			matches = append(matches, v)
		}
	}

	return matches
}

// Snapshot returns a copy of the last successful fetch.
func (d *VenueDirectory) Snapshot() []models.Venue {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]models.Venue, len(d.venues))
	copy(out, d.venues)

	return out
}

// Err returns the error of the most recent fetch attempt, or nil when
// it succeeded.
func (d *VenueDirectory) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.lastErr
}

// CachedVenues loads the listing from the sqlite cache. Returns
// [shared.ErrCacheEmpty] via the cache when nothing has been synced.
func (d *VenueDirectory) CachedVenues() ([]models.Venue, error) {
	if d.cache == nil {
		return nil, repositories.ErrNoCache
	}

	if _, err := d.cache.CachedAt(); err != nil {
		return nil, err
	}

	return d.cache.List()
}

// OwnVenues lists the venues managed by the named profile, bookings
// included.
func (d *VenueDirectory) OwnVenues(ctx context.Context, profileName string) ([]models.Venue, error) {
	return d.remote.ProfileVenues(ctx, profileName)
}
