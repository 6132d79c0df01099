package models

import (
	"testing"
	"time"
)

func TestNightsBetween(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Whole Days", func(t *testing.T) {
		if got := NightsBetween(base, base.AddDate(0, 0, 2)); got != 2 {
			t.Errorf("expected 2 nights, got %d", got)
		}
	})

	t.Run("Partial Day Rounds Up", func(t *testing.T) {
		if got := NightsBetween(base, base.Add(36*time.Hour)); got != 2 {
			t.Errorf("expected 2 nights for 36h, got %d", got)
		}
	})

	t.Run("Inverted Range", func(t *testing.T) {
		if got := NightsBetween(base.AddDate(0, 0, 3), base); got != 0 {
			t.Errorf("expected 0 nights for inverted range, got %d", got)
		}
	})

	t.Run("Same Instant", func(t *testing.T) {
		if got := NightsBetween(base, base); got != 0 {
			t.Errorf("expected 0 nights, got %d", got)
		}
	})
}

func TestVenueMatchesName(t *testing.T) {
	venue := Venue{Name: "Lakeview Cabin"}

	t.Run("Case Insensitive Substring", func(t *testing.T) {
		if !venue.MatchesName("lake") {
			t.Error("expected 'lake' to match 'Lakeview Cabin'")
		}
		if !venue.MatchesName("CABIN") {
			t.Error("expected 'CABIN' to match 'Lakeview Cabin'")
		}
	})

	t.Run("No Match", func(t *testing.T) {
		if venue.MatchesName("mountain") {
			t.Error("expected 'mountain' not to match")
		}
	})

	t.Run("Empty Query Matches", func(t *testing.T) {
		if !venue.MatchesName("") {
			t.Error("expected empty query to match")
		}
	})
}

func TestSession(t *testing.T) {
	profile := &Profile{Name: "olanor", Email: "olanor@stud.noroff.no"}

	t.Run("Anonymous", func(t *testing.T) {
		s := Session{}
		if s.Authenticated() {
			t.Error("empty session should not be authenticated")
		}
		if s.CanWrite() {
			t.Error("empty session should not be writable")
		}
	})

	t.Run("Token Without Key", func(t *testing.T) {
		s := Session{User: profile, Token: "tok"}
		if !s.Authenticated() {
			t.Error("expected session with user and token to be authenticated")
		}
		if s.CanWrite() {
			t.Error("session without API key should not be writable")
		}
	})

	t.Run("Full Credentials", func(t *testing.T) {
		s := Session{User: profile, Token: "tok", APIKey: "key"}
		if !s.CanWrite() {
			t.Error("expected session with token and key to be writable")
		}
	})
}
