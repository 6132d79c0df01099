// package formatter provides functions to export venue and booking data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/shared"
)

// VenuesToCSV converts a venue listing to CSV format with columns: ID, Name, Price, MaxGuests, Rating, City, Country
func VenuesToCSV(venues []models.Venue) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Price", "MaxGuests", "Rating", "City", "Country"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, venue := range venues {
		record := []string{
			venue.ID,
			venue.Name,
			strconv.FormatFloat(venue.Price, 'f', 2, 64),
			strconv.Itoa(venue.MaxGuests),
			strconv.FormatFloat(venue.Rating, 'f', 1, 64),
			venue.Location.City,
			venue.Location.Country,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// BookingsToCSV converts a booking listing to CSV format with columns: ID, Venue, DateFrom, DateTo, Nights, Guests, Total
func BookingsToCSV(bookings []models.Booking) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Venue", "DateFrom", "DateTo", "Nights", "Guests", "Total"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, booking := range bookings {
		record := []string{
			booking.ID,
			bookingVenueName(booking),
			shared.FormatDate(booking.DateFrom),
			shared.FormatDate(booking.DateTo),
			strconv.Itoa(booking.Nights()),
			strconv.Itoa(booking.Guests),
			bookingTotal(booking),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// VenueToMarkdown converts a single venue to Markdown format with its media gallery and location
func VenueToMarkdown(venue *models.Venue) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", venue.Name))

	for _, media := range venue.Media {
		alt := media.Alt
		if alt == "" {
			alt = venue.Name
		}
		buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", alt, media.URL))
	}

	if venue.Description != "" {
		buf.WriteString(fmt.Sprintf("%s\n\n", venue.Description))
	}

	buf.WriteString(fmt.Sprintf("**Price**: %.2f per night\n", venue.Price))
	buf.WriteString(fmt.Sprintf("**Max guests**: %d\n", venue.MaxGuests))
	buf.WriteString(fmt.Sprintf("**Rating**: %.1f\n", venue.Rating))

	if loc := locationLine(venue.Location); loc != "" {
		buf.WriteString(fmt.Sprintf("**Location**: %s\n", loc))
	}

	return buf.Bytes(), nil
}

// VenuesToText converts a venue listing to plain text format
func VenuesToText(venues []models.Venue) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Venues: %d\n\n", len(venues)))

	for i, venue := range venues {
		line := fmt.Sprintf("%d. %s - %.2f/night, sleeps %d", i+1, venue.Name, venue.Price, venue.MaxGuests)
		if loc := locationLine(venue.Location); loc != "" {
			line += fmt.Sprintf(" (%s)", loc)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// BookingsToText converts a booking listing to plain text format
func BookingsToText(bookings []models.Booking) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Bookings: %d\n\n", len(bookings)))

	for i, booking := range bookings {
		buf.WriteString(fmt.Sprintf("%d. %s: %s to %s, %d guests",
			i+1,
			bookingVenueName(booking),
			shared.FormatDate(booking.DateFrom),
			shared.FormatDate(booking.DateTo),
			booking.Guests,
		))
		if total := bookingTotal(booking); total != "" {
			buf.WriteString(fmt.Sprintf(" [%s]", total))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToJSON generates an indented JSON representation of any listing or record
func ToJSON(v any) ([]byte, error) {
	return shared.MarshalJSON(v, true)
}

// WriteVenuesCSV exports a venue listing to a CSV file.
//
// Defaults to venues.csv as the filename.
func WriteVenuesCSV(venues []models.Venue, filepath string) (string, error) {
	if filepath == "" {
		filepath = "venues.csv"
	}

	csvData, err := VenuesToCSV(venues)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteBookingsCSV exports a booking listing to a CSV file.
//
// Defaults to bookings.csv as the filename.
func WriteBookingsCSV(bookings []models.Booking, filepath string) (string, error) {
	if filepath == "" {
		filepath = "bookings.csv"
	}

	csvData, err := BookingsToCSV(bookings)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteVenueMarkdown exports a single venue to a Markdown file.
//
// Defaults to {venue.ID}.md as the filename.
func WriteVenueMarkdown(venue *models.Venue, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s.md", venue.ID)
	}

	mdData, err := VenueToMarkdown(venue)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

func bookingVenueName(booking models.Booking) string {
	if booking.Venue != nil {
		return booking.Venue.Name
	}
	return "(venue unavailable)"
}

func bookingTotal(booking models.Booking) string {
	if booking.Venue == nil {
		return ""
	}
	return strconv.FormatFloat(float64(booking.Nights())*booking.Venue.Price, 'f', 2, 64)
}

func locationLine(loc models.Location) string {
	switch {
	case loc.City != "" && loc.Country != "":
		return fmt.Sprintf("%s, %s", loc.City, loc.Country)
	case loc.City != "":
		return loc.City
	case loc.Country != "":
		return loc.Country
	default:
		return ""
	}
}
