package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/services"
	"github.com/mwhitfield/clavier/internal/session"
	"github.com/mwhitfield/clavier/internal/shared"
	"github.com/mwhitfield/clavier/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	client  *api.Client
	auth    *services.AuthService
	sheets  *services.SheetService
	sources *services.SourceService
	levels  *services.LevelService
	genres  *services.GenreService
	profile *services.ProfileService
	stats   *services.StatsService
	engine  *tasks.ExportEngine
	logger  *log.Logger
	output  io.Writer
	openDB  func(path string) (*sql.DB, error)
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *api.Client
	Logger *log.Logger
	Output io.Writer
	// OpenDB overrides database opening, primarily for tests.
	OpenDB func(path string) (*sql.DB, error)
}

// NewRunner creates a new Runner with the provided configuration
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
	if opts.Client == nil {
		opts.Client = api.NewClient(opts.Config.API.BaseURL, nil)
		opts.Client.SetRateLimit(opts.Config.API.RequestsPerSec)
	}
	if opts.OpenDB == nil {
		opts.OpenDB = shared.NewDatabase
	}

	sheets := services.NewSheetService(opts.Client)

	return &Runner{
		config:  opts.Config,
		client:  opts.Client,
		auth:    services.NewAuthService(opts.Client),
		sheets:  sheets,
		sources: services.NewSourceService(opts.Client),
		levels:  services.NewLevelService(opts.Client),
		genres:  services.NewGenreService(opts.Client),
		profile: services.NewProfileService(opts.Client),
		stats:   services.NewStatsService(opts.Client),
		engine:  tasks.NewExportEngine(sheets),
		logger:  opts.Logger,
		output:  opts.Output,
		openDB:  opts.OpenDB,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// openCredentials opens the local database and wraps it in a credential
// store. The caller owns the returned database handle.
func (r *Runner) openCredentials() (*sql.DB, *session.CredentialStore, error) {
	db, err := r.openDB(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, session.NewCredentialStore(db), nil
}

// requireToken loads the stored bearer token for authenticated commands.
func (r *Runner) requireToken() (string, error) {
	db, creds, err := r.openCredentials()
	if err != nil {
		return "", err
	}
	defer db.Close()

	_, token, err := creds.Load()
	if err != nil {
		return "", fmt.Errorf("%w: run 'clavier auth login' first", shared.ErrNotAuthenticated)
	}
	return token, nil
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
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
