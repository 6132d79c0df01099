// package repositories provides the SQLite persistence layer for the
// venue cache.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/shared"
)

// ErrNoCache is returned when an operation needs the sqlite mirror but
// none was configured.
var ErrNoCache = fmt.Errorf("no venue cache configured")

// VenueCache mirrors the last full venue fetch into SQLite so listings
// and name search keep working without the network. The remote API stays
// the source of truth; ReplaceAll throws the previous mirror away rather
// than merging.
type VenueCache struct {
	db *sql.DB
}

// NewVenueCache creates a venue cache over the given database connection.
func NewVenueCache(db *sql.DB) *VenueCache {
	return &VenueCache{db: db}
}

// ReplaceAll swaps the cached set for the given venues in one
// transaction, stamping every row with the fetch time.
func (r *VenueCache) ReplaceAll(venues []models.Venue, fetchedAt time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM venues"); err != nil {
		return fmt.Errorf("failed to clear venue cache: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO venues (id, name, description, price, max_guests, rating, media_url, city, country, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range venues {
		mediaURL := ""
		if len(v.Media) > 0 {
			mediaURL = v.Media[0].URL
		}
		_, err := stmt.Exec(v.ID, v.Name, v.Description, v.Price, v.MaxGuests, v.Rating,
			mediaURL, v.Location.City, v.Location.Country, fetchedAt)
		if err != nil {
			return fmt.Errorf("failed to insert venue %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit venue cache: %w", err)
	}

	return nil
}

// Get retrieves a cached venue by ID.
func (r *VenueCache) Get(id string) (*models.Venue, error) {
	row := r.db.QueryRow(`
		SELECT id, name, description, price, max_guests, rating, media_url, city, country
		FROM venues
		WHERE id = ?
	`, id)

	venue, err := scanVenue(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrVenueNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query venue: %w", err)
	}

	return venue, nil
}

// List retrieves all cached venues ordered by name.
func (r *VenueCache) List() ([]models.Venue, error) {
	return r.query(`
		SELECT id, name, description, price, max_guests, rating, media_url, city, country
		FROM venues
		ORDER BY name COLLATE NOCASE ASC
	`)
}

// SearchByName retrieves cached venues whose name contains the query,
// case-insensitively.
func (r *VenueCache) SearchByName(query string) ([]models.Venue, error) {
	return r.query(`
		SELECT id, name, description, price, max_guests, rating, media_url, city, country
		FROM venues
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY name COLLATE NOCASE ASC
	`, query)
}

// CachedAt returns the timestamp of the cached fetch, or
// [shared.ErrCacheEmpty] when nothing has been synced yet.
func (r *VenueCache) CachedAt() (time.Time, error) {
	var cachedAt sql.NullTime
	err := r.db.QueryRow("SELECT MAX(cached_at) FROM venues").Scan(&cachedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query cache age: %w", err)
	}
	if !cachedAt.Valid {
		return time.Time{}, shared.ErrCacheEmpty
	}
	return cachedAt.Time, nil
}

// Count returns the number of cached venues.
func (r *VenueCache) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM venues").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return count, nil
}

func (r *VenueCache) query(q string, args ...any) ([]models.Venue, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, *venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return venues, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(s scanner) (*models.Venue, error) {
	var (
		venue    models.Venue
		mediaURL string
		city     string
		country  string
	)

	err := s.Scan(&venue.ID, &venue.Name, &venue.Description, &venue.Price,
		&venue.MaxGuests, &venue.Rating, &mediaURL, &city, &country)
	if err != nil {
		return nil, err
	}

	if mediaURL != "" {
		venue.Media = []models.Media{{URL: mediaURL}}
	}
	venue.Location.City = city
	venue.Location.Country = country

	return &venue, nil
}
