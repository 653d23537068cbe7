package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/zembrodt/showtunes-sub000/internal/auth"
	"github.com/zembrodt/showtunes-sub000/internal/models"
	"github.com/zembrodt/showtunes-sub000/internal/playback"
	"github.com/zembrodt/showtunes-sub000/internal/services"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
	"github.com/zembrodt/showtunes-sub000/internal/storage"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	storage     storage.SecureStorage
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is loaded from the --config flag, a nil Storage is opened from the config.
type RunnerOpts struct {
	Config      *shared.Config
	Storage     storage.SecureStorage
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		storage:     opts.Storage,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		openBrowser: opts.OpenBrowser,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, logoutCommand, statusCommand, watchCommand, playerCommand, apiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig returns the injected config or reads the --config file, falling back to defaults.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	if r.config != nil {
		return r.config
	}

	path := cmd.String("config")
	var config *shared.Config
	if _, err := os.Stat(path); err == nil {
		if loaded, err := shared.LoadConfig(path); err != nil {
			r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		} else {
			config = loaded
		}
	} else {
		r.logger.Debug("config file not found, using defaults", "path", path)
	}
	if config == nil {
		defaults, err := shared.LoadDefaultConfig()
		if err != nil {
			r.logger.Warn("ignoring environment overrides", "error", err)
			defaults = shared.DefaultConfig()
		}
		config = defaults
	}

	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.LogLevel))
	r.config = config
	return config
}

// session is the wired engine for one command invocation.
type session struct {
	config  *shared.Config
	storage storage.SecureStorage
	engine  *auth.Engine
	gateway *services.Gateway
	spotify *services.SpotifyService
	store   *playback.Store
	nav     *navigator

	closers []func()
}

// Close releases the storage, unless it was injected, and stops token persistence.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// newPoller builds a poller over the session's store. A new token wakes a poller paused by logout.
func (s *session) newPoller(logger *log.Logger, onError func(error)) *playback.Poller {
	poller := playback.NewPoller(playback.PollerConfig{
		Service:        s.spotify,
		Store:          s.store,
		Storage:        s.storage,
		Authenticated:  s.engine.Authenticated,
		IdleInterval:   s.config.Polling.IdleInterval(),
		ActiveInterval: s.config.Polling.PlaybackInterval(),
		OnError:        onError,
		Logger:         logger,
	})
	var loggedIn atomic.Bool
	loggedIn.Store(s.engine.Authenticated())
	s.closers = append(s.closers, s.engine.Tokens().Subscribe(func(tok *models.AuthToken) {
		if !loggedIn.Swap(tok != nil) && tok != nil {
			poller.Wake()
		}
	}))
	return poller
}

// open wires storage, auth engine, gateway, API client and playback store.
//
// The returned context is cancelled when the engine navigates to the login path, i.e. when the session ends.
func (r *Runner) open(ctx context.Context, cmd *cli.Command, onDelta func(playback.Delta)) (context.Context, *session, error) {
	config := r.loadConfig(cmd)
	s := &session{config: config}

	store := r.storage
	if store == nil {
		var err error
		if store, err = storage.Open(config.Storage); err != nil {
			return ctx, nil, fmt.Errorf("failed to open storage: %w", err)
		}
		s.closers = append(s.closers, func() {
			if err := store.Close(); err != nil {
				r.logger.Warn("failed to close storage", "error", err)
			}
		})
	}
	s.storage = store

	ctx, cancel := context.WithCancelCause(ctx)
	s.closers = append(s.closers, func() { cancel(nil) })
	s.nav = &navigator{cancel: cancel, output: r.output}

	tokens := auth.NewTokenStore()
	stopPersist, err := auth.PersistTokens(tokens, store, r.logger)
	if err != nil {
		s.Close()
		return ctx, nil, err
	}
	s.closers = append(s.closers, stopPersist)

	s.engine = auth.NewEngine(auth.EngineOpts{
		Config:     auth.NewConfig(config.Spotify),
		Tokens:     tokens,
		Storage:    store,
		Navigator:  s.nav,
		HTTPClient: r.httpClient,
		Logger:     r.logger,
	})
	if err := s.engine.Initialize(); err != nil {
		s.Close()
		return ctx, nil, err
	}

	s.gateway, err = services.NewGateway(services.GatewayOpts{
		APIURL:    config.Spotify.APIURL,
		Auth:      s.engine,
		Base:      r.httpClient.Transport,
		RateLimit: config.API.RateLimit,
		Logger:    r.logger,
	})
	if err != nil {
		s.Close()
		return ctx, nil, err
	}

	s.spotify = services.NewSpotifyService(config.Spotify.APIURL, s.gateway.Client())
	s.store = playback.NewStore(playback.StoreOpts{
		Service: s.spotify,
		Storage: store,
		Logger:  r.logger,
		OnDelta: onDelta,
	})
	s.engine.SetPlayerStateSetter(s.store)

	return ctx, s, nil
}

// openAuthenticated is open for commands that need a logged-in session.
func (r *Runner) openAuthenticated(ctx context.Context, cmd *cli.Command, onDelta func(playback.Delta)) (context.Context, *session, error) {
	ctx, s, err := r.open(ctx, cmd, onDelta)
	if err != nil {
		return ctx, nil, err
	}
	if !s.engine.Authenticated() {
		s.Close()
		return ctx, nil, fmt.Errorf("%w: run 'showtunes login' first", shared.ErrNotAuthenticated)
	}
	return ctx, s, nil
}

// navigator realises engine navigation for a terminal session.
type navigator struct {
	cancel context.CancelCauseFunc
	output io.Writer
}

// Navigate implements [auth.Navigator].
func (n *navigator) Navigate(path string) {
	switch path {
	case auth.LoginPath:
		fmt.Fprintln(n.output, "✗ Session ended. Run 'showtunes login' to sign in again.")
		n.cancel(shared.ErrSession)
	case auth.DashboardPath:
		fmt.Fprintln(n.output, "✓ Logged in to Spotify")
	}
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

	return r.writeBytes(output)
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
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
