package formatter

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/solvberg/holidaze/internal/models"
	th "github.com/solvberg/holidaze/internal/testing"
)

func sampleVenues() []models.Venue {
	return []models.Venue{
		{
			ID:          "v1",
			Name:        "Lakeview Cabin",
			Description: "A cabin by the lake",
			Price:       100,
			MaxGuests:   4,
			Rating:      4.5,
			Media:       []models.Media{{URL: "https://img.example/cabin.jpg", Alt: "the cabin"}},
			Location:    models.Location{City: "Bergen", Country: "Norway"},
		},
		{
			ID:        "v2",
			Name:      "Harbor Loft",
			Price:     150,
			MaxGuests: 2,
			Rating:    4.0,
			Location:  models.Location{City: "Oslo", Country: "Norway"},
		},
	}
}

func sampleBookings() []models.Booking {
	venue := sampleVenues()[0]
	return []models.Booking{
		{
			ID:       "b1",
			DateFrom: time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
			Guests:   2,
			Venue:    &venue,
		},
		{
			ID:       "b2",
			DateFrom: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
			Guests:   1,
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("VenuesToCSV", func(t *testing.T) {
		data, err := VenuesToCSV(sampleVenues())
		if err != nil {
			t.Fatalf("VenuesToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Name,Price,MaxGuests,Rating,City,Country") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Lakeview Cabin") {
			t.Errorf("CSV missing venue name")
		}
		if !strings.Contains(output, "100.00") {
			t.Errorf("CSV missing venue price")
		}
		if !strings.Contains(output, "Bergen") {
			t.Errorf("CSV missing venue city")
		}
	})

	t.Run("BookingsToCSV", func(t *testing.T) {
		data, err := BookingsToCSV(sampleBookings())
		if err != nil {
			t.Fatalf("BookingsToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Venue,DateFrom,DateTo,Nights,Guests,Total") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "2026-03-11") {
			t.Errorf("CSV missing booking start date")
		}
		// 3 nights at 100 per night
		if !strings.Contains(output, "300.00") {
			t.Errorf("CSV missing booking total, got: %s", output)
		}
		if !strings.Contains(output, "(venue unavailable)") {
			t.Errorf("CSV missing placeholder for booking without venue")
		}
	})

	t.Run("VenueToMarkdown", func(t *testing.T) {
		venue := sampleVenues()[0]

		data, err := VenueToMarkdown(&venue)
		if err != nil {
			t.Fatalf("VenueToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Lakeview Cabin") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "![the cabin](https://img.example/cabin.jpg)") {
			t.Errorf("Markdown missing media image")
		}
		if !strings.Contains(output, "**Price**: 100.00 per night") {
			t.Errorf("Markdown missing price")
		}
		if !strings.Contains(output, "**Location**: Bergen, Norway") {
			t.Errorf("Markdown missing location")
		}
	})

	t.Run("VenuesToText", func(t *testing.T) {
		data, err := VenuesToText(sampleVenues())
		if err != nil {
			t.Fatalf("VenuesToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Venues: 2") {
			t.Errorf("text missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. Lakeview Cabin - 100.00/night, sleeps 4 (Bergen, Norway)") {
			t.Errorf("text missing venue line, got: %s", output)
		}
	})

	t.Run("BookingsToText", func(t *testing.T) {
		data, err := BookingsToText(sampleBookings())
		if err != nil {
			t.Fatalf("BookingsToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Bookings: 2") {
			t.Errorf("text missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. Lakeview Cabin: 2026-03-11 to 2026-03-14, 2 guests [300.00]") {
			t.Errorf("text missing booking line, got: %s", output)
		}
	})
}

func TestFileWriters(t *testing.T) {
	t.Run("WriteVenuesCSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "venues.csv")

		written, err := WriteVenuesCSV(sampleVenues(), path)
		if err != nil {
			t.Fatalf("WriteVenuesCSV failed: %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}

		th.AssertFileExists(t, path)
		content := th.MustReadFile(t, path)
		if !strings.Contains(content, "Lakeview Cabin") {
			t.Errorf("written CSV missing venue name")
		}
	})

	t.Run("WriteBookingsCSV defaults the filename", func(t *testing.T) {
		wd := th.MustGetwd(t)
		th.MustChdir(t, t.TempDir())
		defer th.MustChdir(t, wd)

		written, err := WriteBookingsCSV(sampleBookings(), "")
		if err != nil {
			t.Fatalf("WriteBookingsCSV failed: %v", err)
		}
		if written != "bookings.csv" {
			t.Errorf("expected default filename, got %s", written)
		}

		th.AssertFileExists(t, written)
	})

	t.Run("WriteVenueMarkdown defaults to the venue id", func(t *testing.T) {
		wd := th.MustGetwd(t)
		th.MustChdir(t, t.TempDir())
		defer th.MustChdir(t, wd)

		venue := sampleVenues()[0]
		written, err := WriteVenueMarkdown(&venue, "")
		if err != nil {
			t.Fatalf("WriteVenueMarkdown failed: %v", err)
		}
		if written != "v1.md" {
			t.Errorf("expected v1.md, got %s", written)
		}

		th.AssertFileExists(t, written)
	})

	t.Run("ToJSON renders an indented listing", func(t *testing.T) {
		data, err := ToJSON(sampleVenues())
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}
		if !strings.Contains(string(data), "\"name\": \"Lakeview Cabin\"") {
			t.Errorf("JSON missing venue name, got: %s", data)
		}
	})

}
