// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested with Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/brandmap/internal/operations"
	"github.com/agentstation/brandmap/pkg/brands"
)

// Operations is the set of operator tasks a command can run.
// *operations.Runner implements it.
type Operations interface {
	ImportRaw(ctx context.Context, path string) (operations.ImportReport, error)
	Normalize(ctx context.Context) (operations.NormalizeReport, error)
	Seed(ctx context.Context, opts operations.SeedOptions) (operations.SeedReport, error)
	Export(ctx context.Context, opts operations.ExportOptions) (operations.ExportReport, error)
	List(ctx context.Context) ([]brands.Brand, int, error)
}

var _ Operations = (*operations.Runner)(nil)

// Defaults are the configured fallbacks for command arguments.
type Defaults struct {
	ImportFile   string
	ExportDir    string
	ExportFormat string
	SeedCount    int
	SeedFormat   string
}

// Interface defines the application context interface that commands need.
type Interface interface {
	// Operations returns the operation runner, opening the store on first
	// use. The store stays open until the application shuts down.
	Operations() (Operations, error)

	// Defaults returns configured argument defaults.
	Defaults() Defaults

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
