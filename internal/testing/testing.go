// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
)

// MockRemote is a test double for [holidaze.Remote]. Every method
// records its call and returns the corresponding configured result, or
// a zero value when none was set. Calls() exposes the recorded method
// names so tests can assert which network operations ran.
type MockRemote struct {
	mu    sync.Mutex
	calls []string

	LoginCredentials *holidaze.Credentials
	LoginErr         error
	RegisterProfile  *models.Profile
	RegisterErr      error
	APIKey           string
	APIKeyErr        error

	VenueList   []models.Venue
	VenueResult *models.Venue
	VenueErr    error

	BookingList   []models.Booking
	BookingResult *models.Booking
	BookingErr    error

	ProfileResult *models.Profile
	ProfileErr    error
}

var _ holidaze.Remote = (*MockRemote)(nil)

func (m *MockRemote) record(method string) {
	m.mu.Lock()
	m.calls = append(m.calls, method)
	m.mu.Unlock()
}

// Calls returns the method names invoked so far, in order.
func (m *MockRemote) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times the named method was invoked.
func (m *MockRemote) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (m *MockRemote) Login(ctx context.Context, email, password string) (*holidaze.Credentials, error) {
	m.record("Login")
	return m.LoginCredentials, m.LoginErr
}

func (m *MockRemote) Register(ctx context.Context, input holidaze.RegisterInput) (*models.Profile, error) {
	m.record("Register")
	return m.RegisterProfile, m.RegisterErr
}

func (m *MockRemote) CreateAPIKey(ctx context.Context, label string) (string, error) {
	m.record("CreateAPIKey")
	return m.APIKey, m.APIKeyErr
}

func (m *MockRemote) Venues(ctx context.Context) ([]models.Venue, error) {
	m.record("Venues")
	return m.VenueList, m.VenueErr
}

func (m *MockRemote) Venue(ctx context.Context, id string) (*models.Venue, error) {
	m.record("Venue")
	return m.VenueResult, m.VenueErr
}

func (m *MockRemote) CreateVenue(ctx context.Context, input holidaze.VenueInput) (*models.Venue, error) {
	m.record("CreateVenue")
	return m.VenueResult, m.VenueErr
}

func (m *MockRemote) UpdateVenue(ctx context.Context, id string, input holidaze.VenueInput) (*models.Venue, error) {
	m.record("UpdateVenue")
	return m.VenueResult, m.VenueErr
}

func (m *MockRemote) DeleteVenue(ctx context.Context, id string) error {
	m.record("DeleteVenue")
	return m.VenueErr
}

func (m *MockRemote) ProfileVenues(ctx context.Context, profileName string) ([]models.Venue, error) {
	m.record("ProfileVenues")
	return m.VenueList, m.VenueErr
}

func (m *MockRemote) Booking(ctx context.Context, id string) (*models.Booking, error) {
	m.record("Booking")
	return m.BookingResult, m.BookingErr
}

func (m *MockRemote) CreateBooking(ctx context.Context, input holidaze.BookingInput) (*models.Booking, error) {
	m.record("CreateBooking")
	return m.BookingResult, m.BookingErr
}

func (m *MockRemote) UpdateBooking(ctx context.Context, id string, input holidaze.BookingInput) (*models.Booking, error) {
	m.record("UpdateBooking")
	return m.BookingResult, m.BookingErr
}

func (m *MockRemote) DeleteBooking(ctx context.Context, id string) error {
	m.record("DeleteBooking")
	return m.BookingErr
}

func (m *MockRemote) ProfileBookings(ctx context.Context, profileName string) ([]models.Booking, error) {
	m.record("ProfileBookings")
	return m.BookingList, m.BookingErr
}

func (m *MockRemote) UpdateAvatar(ctx context.Context, profileName string, avatar models.Media) (*models.Profile, error) {
	m.record("UpdateAvatar")
	return m.ProfileResult, m.ProfileErr
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
