package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/nkurelo/socialdash/internal/aggregator"
	"github.com/nkurelo/socialdash/internal/api"
	"github.com/nkurelo/socialdash/internal/credentials"
	"github.com/nkurelo/socialdash/internal/repositories"
	"github.com/nkurelo/socialdash/internal/session"
	"github.com/nkurelo/socialdash/internal/shared"
	"github.com/nkurelo/socialdash/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	client     *api.Client
	keychain   *credentials.Keychain
	controller *session.Controller
	accounts   *aggregator.Aggregator
	engine     *tasks.FlowEngine
	syncLog    *repositories.SyncLogRepository
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	DB         *sql.DB
	HTTPClient *http.Client
	Browser    tasks.Browser
	Logger     *log.Logger
	Output     io.Writer
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.API.Timeout()}
	}

	var primary credentials.Store
	var syncLog *repositories.SyncLogRepository
	if opts.DB != nil {
		primary = credentials.NewDBStore(opts.DB)
		syncLog = repositories.NewSyncLogRepository(opts.DB)
	}
	keychain := credentials.NewKeychain(primary, credentials.NewFileStore(""), opts.Logger)

	var controller *session.Controller
	client := api.NewClient(api.Opts{
		BaseURL:    opts.Config.API.BaseURL,
		HTTPClient: opts.HTTPClient,
		Tokens:     keychain,
		Logger:     opts.Logger,
		OnSessionExpired: func() {
			if controller != nil {
				controller.Teardown()
			}
		},
	})
	controller = session.NewController(client, keychain, opts.Logger)
	accounts := aggregator.New(client, syncLog, opts.Logger)
	engine := tasks.NewFlowEngine(client, controller, accounts, opts.Config, opts.Browser, opts.Logger)

	return &Runner{
		config:     opts.Config,
		client:     client,
		keychain:   keychain,
		controller: controller,
		accounts:   accounts,
		engine:     engine,
		syncLog:    syncLog,
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI takes the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, accountsCommand, facebookCommand, linkedinCommand, subscriptionCommand, profileCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireSession verifies the backend recognizes the user before a command
// that needs authentication proceeds.
func (r *Runner) requireSession(ctx context.Context) error {
	state, err := r.controller.Resolve(ctx)
	if state != session.Dashboard {
		if err != nil {
			return fmt.Errorf("%w: run 'socialdash auth login' (%v)", shared.ErrNotAuthenticated, err)
		}
		return fmt.Errorf("%w: run 'socialdash auth login'", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// drainProgress prints flow progress updates until the channel closes.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate, done <-chan struct{}) {
	for {
		select {
		case update, ok := <-progress:
			if !ok {
				return
			}
			r.writePlain("%s\n", update.Message)
		case <-done:
			return
		}
	}
}
