package holidaze

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/solvberg/holidaze/internal/api"
	"github.com/solvberg/holidaze/internal/models"
)

type fixedSession struct {
	session models.Session
}

func (f *fixedSession) Get() models.Session { return f.session }

// newTestClient wires a typed client against an httptest handler with a
// fully credentialed session.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	src := &fixedSession{session: models.Session{
		User:   &models.Profile{Name: "olanor"},
		Token:  "tok",
		APIKey: "key",
	}}
	return NewClient(api.NewClient(server.URL, nil, src, 0))
}

func TestClientAuth(t *testing.T) {
	t.Run("Login", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"data":{"name":"olanor","email":"olanor@stud.noroff.no","venueManager":true,"accessToken":"tok-xyz"}}`))
		})

		creds, err := client.Login(context.Background(), "olanor@stud.noroff.no", "password1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if creds.AccessToken != "tok-xyz" {
			t.Errorf("expected access token, got %q", creds.AccessToken)
		}
		if creds.Name != "olanor" || !creds.VenueManager {
			t.Errorf("unexpected profile: %+v", creds.Profile)
		}
	})

	t.Run("CreateAPIKey", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/create-api-key" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["name"] == "" {
				t.Error("expected key label in body")
			}
			w.Write([]byte(`{"data":{"key":"key-abc"}}`))
		})

		key, err := client.CreateAPIKey(context.Background(), "holidaze-cli")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if key != "key-abc" {
			t.Errorf("expected key-abc, got %q", key)
		}
	})
}

func TestClientVenues(t *testing.T) {
	t.Run("Venues Embeds Media And Meta", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/holidaze/venues" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("_media") != "true" || q.Get("_meta") != "true" {
				t.Errorf("expected media/meta flags, got %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"data":[{"id":"v1","name":"Lakeview Cabin","price":100,"maxGuests":4}]}`))
		})

		venues, err := client.Venues(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(venues) != 1 || venues[0].Name != "Lakeview Cabin" {
			t.Errorf("unexpected venues: %+v", venues)
		}
	})

	t.Run("DeleteVenue", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/holidaze/venues/v1" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get("X-Noroff-API-Key") == "" {
				t.Error("expected API key header on delete")
			}
			w.WriteHeader(http.StatusNoContent)
		})

		if err := client.DeleteVenue(context.Background(), "v1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestClientBookings(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 3)

	t.Run("CreateBooking", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["venueId"] != "v1" {
				t.Errorf("expected venueId in payload, got %v", body)
			}
			if body["guests"] != float64(2) {
				t.Errorf("expected 2 guests, got %v", body["guests"])
			}
			w.Write([]byte(`{"data":{"id":"b1","guests":2}}`))
		})

		booking, err := client.CreateBooking(context.Background(), BookingInput{
			DateFrom: from, DateTo: to, Guests: 2, VenueID: "v1",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if booking.ID != "b1" {
			t.Errorf("expected booking id b1, got %q", booking.ID)
		}
	})

	t.Run("UpdateBooking Drops VenueID", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if _, ok := body["venueId"]; ok {
				t.Error("venueId must not be sent on update")
			}
			w.Write([]byte(`{"data":{"id":"b1","guests":3}}`))
		})

		booking, err := client.UpdateBooking(context.Background(), "b1", BookingInput{
			DateFrom: from, DateTo: to, Guests: 3, VenueID: "v1",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if booking.Guests != 3 {
			t.Errorf("expected 3 guests, got %d", booking.Guests)
		}
	})

	t.Run("ProfileBookings Escapes Name", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/holidaze/profiles/ola%20nor/bookings" && r.URL.EscapedPath() != "/holidaze/profiles/ola%20nor/bookings" {
				t.Errorf("unexpected path %s", r.URL.EscapedPath())
			}
			w.Write([]byte(`{"data":[]}`))
		})

		if _, err := client.ProfileBookings(context.Background(), "ola nor"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestClientUpdateAvatar(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/holidaze/profiles/olanor" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]models.Media
		json.NewDecoder(r.Body).Decode(&body)
		if body["avatar"].URL != "https://img.example/me.png" {
			t.Errorf("unexpected avatar payload: %v", body)
		}
		w.Write([]byte(`{"data":{"name":"olanor","avatar":{"url":"https://img.example/me.png","alt":"User avatar"}}}`))
	})

	profile, err := client.UpdateAvatar(context.Background(), "olanor", models.Media{
		URL: "https://img.example/me.png", Alt: "User avatar",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Avatar == nil || profile.Avatar.URL != "https://img.example/me.png" {
		t.Errorf("expected updated avatar, got %+v", profile.Avatar)
	}
}
