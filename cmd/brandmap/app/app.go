// Package app provides the application context and dependency management
// for the brandmap CLI. It centralizes configuration, logging, the store
// handle and its lifecycle.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/internal/metrics"
	"github.com/agentstation/brandmap/internal/operations"
	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/pkg/errors"
)

// App represents the brandmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config  *Config
	logger  *zerolog.Logger
	fs      afero.Fs
	metrics *metrics.Registry

	// Store handle and runner (lazy-initialized, singleton)
	mu     sync.RWMutex
	store  store.Store
	runner *operations.Runner
	closed bool
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can
// be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
		metrics: metrics.NewRegistry(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := config.Logger()
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// Metrics returns the application metrics registry.
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}

// Defaults returns configured argument defaults.
func (a *App) Defaults() appcontext.Defaults {
	return appcontext.Defaults{
		ImportFile:   a.config.ImportFile,
		ExportDir:    a.config.ExportDir,
		ExportFormat: a.config.ExportFormat,
		SeedCount:    a.config.SeedCount,
		SeedFormat:   a.config.SeedFormat,
	}
}

// Store returns the store handle, opening it lazily on first use.
// This is thread-safe and ensures only one handle is opened.
func (a *App) Store() (store.Store, error) {
	a.mu.RLock()
	if a.store != nil {
		st := a.store
		a.mu.RUnlock()
		return st, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.store != nil {
		return a.store, nil
	}
	if a.closed {
		return nil, errors.ErrClosed
	}

	st, err := OpenStore(context.Background(), a.config, a.logger)
	if err != nil {
		return nil, errors.WrapResource("open", "store", a.config.Store, err)
	}

	a.logger.Debug().
		Str("store", a.config.Store).
		Str("collection", a.config.Collection).
		Msg("Store opened")

	a.store = st
	return st, nil
}

// Operations returns the operation runner bound to the app's store.
func (a *App) Operations() (appcontext.Operations, error) {
	st, err := a.Store()
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runner == nil {
		a.runner = operations.New(st,
			operations.WithFs(a.fs),
			operations.WithLogger(a.logger),
			operations.WithMetrics(a.metrics),
		)
	}
	return a.runner, nil
}

// Shutdown closes the store handle and writes the metrics file when one
// is configured. It is safe to call more than once.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	st := a.store
	a.store = nil
	a.runner = nil
	a.closed = true
	a.mu.Unlock()

	var errs []error
	if st != nil {
		done := make(chan error, 1)
		go func() { done <- st.Close() }()
		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, err)
			} else {
				a.logger.Debug().Msg("Store closed")
			}
		case <-ctx.Done():
			errs = append(errs, errors.WrapResource("close", "store", a.config.Store, ctx.Err()))
		}
	}

	if a.config.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.config.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets a custom store handle (useful for testing).
func WithStore(st store.Store) Option {
	return func(a *App) error {
		a.store = st
		return nil
	}
}

// WithFs sets the filesystem used for input and output files.
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}
