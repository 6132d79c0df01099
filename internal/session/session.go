// package session implements the persisted session store backing every
// authenticated surface of the client.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/shared"
)

// StorageError reports that the session file could not be read or written.
// Session state cannot be trusted after one, so callers treat it as fatal
// to the current workflow.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("session storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is (or wraps) a [StorageError].
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Store is the single source of truth for "am I logged in" plus the
// dark-mode preference. Every mutation persists immediately; a failed
// write leaves the in-memory snapshot unchanged.
//
// Store is safe for use from multiple goroutines. Mutations are
// last-write-wins.
type Store struct {
	mu      sync.Mutex
	path    string
	current models.Session
	subs    map[int]func(models.Session)
	nextSub int
}

// DefaultPath returns the session file location under the per-user data
// directory (~/.holidaze/session.json).
func DefaultPath() (string, error) {
	dir, err := shared.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// Open loads the session persisted at path, or starts an empty session when
// no file exists yet. A corrupt or unreadable file is a [StorageError].
func Open(path string) (*Store, error) {
	s := &Store{path: path, subs: make(map[int]func(models.Session))}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, &StorageError{Op: "read", Err: err}
	}

	if err := json.Unmarshal(data, &s.current); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}

	return s, nil
}

// Get returns a snapshot of the current session. The snapshot is a copy;
// mutating it does not affect the store.
func (s *Store) Get() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSession(s.current)
}

// Path returns the file the store persists to.
func (s *Store) Path() string { return s.path }

// SetUser persists the given profile as the logged-in user.
func (s *Store) SetUser(profile *models.Profile) error {
	return s.mutate(func(sess *models.Session) {
		if profile == nil {
			sess.User = nil
			return
		}
		p := *profile
		sess.User = &p
	})
}

// SetToken persists the bearer token.
func (s *Store) SetToken(token string) error {
	return s.mutate(func(sess *models.Session) { sess.Token = token })
}

// SetAPIKey persists the API key required for write operations.
func (s *Store) SetAPIKey(key string) error {
	return s.mutate(func(sess *models.Session) { sess.APIKey = key })
}

// Clear removes user, token and API key. The dark-mode preference has an
// independent lifecycle and survives.
func (s *Store) Clear() error {
	return s.mutate(func(sess *models.Session) {
		sess.User = nil
		sess.Token = ""
		sess.APIKey = ""
	})
}

// SetDarkMode persists the dark-mode display preference.
func (s *Store) SetDarkMode(on bool) error {
	return s.mutate(func(sess *models.Session) { sess.DarkMode = on })
}

// DarkMode returns the persisted dark-mode preference, defaulting to false.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.DarkMode
}

// Subscribe registers fn to be called with the new snapshot after every
// successful mutation. The returned function cancels the subscription.
// Callbacks run synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func(models.Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn to a copy of the session, persists it, and only then
// commits it as the current snapshot and notifies subscribers.
func (s *Store) mutate(fn func(*models.Session)) error {
	s.mu.Lock()
	next := cloneSession(s.current)
	fn(&next)

	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		return err
	}

	s.current = next
	subs := make([]func(models.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cloneSession(next))
	}
	return nil
}

// persist writes the session atomically: temp file in the same directory,
// then rename over the target.
func (s *Store) persist(sess models.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &StorageError{Op: "mkdir", Err: err}
	}

	tmp, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return &StorageError{Op: "create", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "close", Err: err}
	}

	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "chmod", Err: err}
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "rename", Err: err}
	}

	return nil
}

func cloneSession(sess models.Session) models.Session {
	out := sess
	if sess.User != nil {
		u := *sess.User
		if sess.User.Avatar != nil {
			a := *sess.User.Avatar
			u.Avatar = &a
		}
		out.User = &u
	}
	return out
}
