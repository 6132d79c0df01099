package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/solvberg/holidaze/internal/api"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/repositories"
	"github.com/solvberg/holidaze/internal/session"
	"github.com/solvberg/holidaze/internal/shared"
	"github.com/solvberg/holidaze/internal/workflows"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	remote     holidaze.Remote
	store      *session.Store
	auth       *workflows.AuthFlow
	owner      *workflows.OwnerActions
	directory  *workflows.VenueDirectory
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Remote     holidaze.Remote
	Store      *session.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
// When Remote is nil a client against the configured API is built.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Remote == nil {
		gateway := api.NewClient(opts.Config.API.BaseURL, opts.HTTPClient, opts.Store, opts.Config.API.RateLimit)
		opts.Remote = holidaze.NewClient(gateway)
	}

	return &Runner{
		config:     opts.Config,
		remote:     opts.Remote,
		store:      opts.Store,
		auth:       workflows.NewAuthFlow(opts.Remote, opts.Store, opts.Logger),
		owner:      workflows.NewOwnerActions(opts.Remote, opts.Store, opts.Logger),
		directory:  workflows.NewVenueDirectory(opts.Remote, nil, opts.Logger),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger and rebuilds the workflows around it.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.auth = workflows.NewAuthFlow(r.remote, r.store, logger)
	r.owner = workflows.NewOwnerActions(r.remote, r.store, logger)
	r.directory = workflows.NewVenueDirectory(r.remote, nil, logger)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, venuesCommand, bookingsCommand, profileCommand, prefsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openCache opens the venue cache database from the configured path.
// The caller closes the returned handle.
func (r *Runner) openCache() (*repositories.VenueCache, *sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	return repositories.NewVenueCache(db), db, nil
}

// confirm prompts for a yes/no answer on stdin. A failed read counts as
// a refusal.
func (r *Runner) confirm(question string) bool {
	r.writePlain("%s [y/N]: ", question)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
