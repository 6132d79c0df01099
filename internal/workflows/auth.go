package workflows

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/session"
	"github.com/solvberg/holidaze/internal/shared"
)

// AuthState is the phase of the login workflow.
type AuthState int

const (
	Anonymous AuthState = iota
	Authenticating
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

const (
	requiredEmailDomain = "@stud.noroff.no"
	minPasswordLength   = 8
)

// AuthFlow drives login, registration, API key provisioning and logout
// against the remote auth endpoints, persisting credentials through the
// session store.
type AuthFlow struct {
	remote holidaze.Remote
	store  *session.Store
	logger *log.Logger

	mu    sync.Mutex
	state AuthState
}

// NewAuthFlow builds an auth workflow. The initial state is derived
// from the persisted session: a stored token means a prior login is
// still in effect.
func NewAuthFlow(remote holidaze.Remote, store *session.Store, logger *log.Logger) *AuthFlow {
	state := Anonymous
	if store.Get().Authenticated() {
		state = Authenticated
	}

	return &AuthFlow{
		remote: remote,
		store:  store,
		logger: logger,
		state:  state,
	}
}

// State returns the current phase of the workflow.
func (f *AuthFlow) State() AuthState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

func (f *AuthFlow) setState(s AuthState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Login exchanges credentials for an access token, persists the profile
// and token, then provisions an API key if none is stored. A key
// provisioning failure is logged and does not fail the login: the
// session stays authenticated and write calls surface the missing key
// when attempted.
func (f *AuthFlow) Login(ctx context.Context, email, password string) (*models.Profile, error) {
	f.setState(Authenticating)

	creds, err := f.remote.Login(ctx, email, password)
	if err != nil {
		f.setState(Anonymous)

		return nil, err
	}

	profile := creds.Profile
	if err := f.store.SetUser(&profile); err != nil {
		f.setState(Anonymous)

		return nil, err
	}

	if err := f.store.SetToken(creds.AccessToken); err != nil {
		f.setState(Anonymous)

		return nil, err
	}

	f.setState(Authenticated)
	f.logger.Info("logged in", "name", profile.Name)

	if f.store.Get().APIKey == "" {
		f.provisionKey(ctx)
	}

	return &profile, nil
}

// provisionKey requests an API key and stores it. Failures are
// non-fatal: the login already succeeded.
func (f *AuthFlow) provisionKey(ctx context.Context) {
	label := fmt.Sprintf("holidaze-cli-%s", shared.GenerateID())

	key, err := f.remote.CreateAPIKey(ctx, label)
	if err != nil {
		f.logger.Warn("api key provisioning failed, writes unavailable until retry", "error", err)

		return
	}

	if err := f.store.SetAPIKey(key); err != nil {
		f.logger.Warn("unable to persist api key", "error", err)
	}
}

// Register validates the input locally and creates a new account. The
// account is not logged in afterwards; call [AuthFlow.Login] next.
func (f *AuthFlow) Register(ctx context.Context, input holidaze.RegisterInput) (*models.Profile, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	profile, err := f.remote.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	f.logger.Info("registered", "name", profile.Name)

	return profile, nil
}

func validateRegistration(input holidaze.RegisterInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if !strings.HasSuffix(strings.ToLower(input.Email), requiredEmailDomain) {
		return &ValidationError{
			Field:  "email",
			Reason: fmt.Sprintf("must end with %s", requiredEmailDomain),
		}
	}

	if len(input.Password) < minPasswordLength {
		return &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}

	return nil
}

// Logout clears the persisted credentials. It is purely local: no
// server call is made and the dark mode preference survives.
func (f *AuthFlow) Logout() error {
	if err := f.store.Clear(); err != nil {
		return err
	}

	f.setState(Anonymous)
	f.logger.Info("logged out")

	return nil
}
