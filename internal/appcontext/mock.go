package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/brandmap/internal/operations"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	OperationsFunc   func() (Operations, error)
	DefaultsFunc     func() Defaults
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Operations returns operations using the mock function or nil.
func (m *Mock) Operations() (Operations, error) {
	if m.OperationsFunc != nil {
		return m.OperationsFunc()
	}
	return nil, nil
}

// Defaults returns defaults using the mock function or the built-in defaults.
func (m *Mock) Defaults() Defaults {
	if m.DefaultsFunc != nil {
		return m.DefaultsFunc()
	}
	return Defaults{
		ImportFile:   constants.DefaultImportFile,
		ExportDir:    ".",
		ExportFormat: "json",
		SeedCount:    constants.DefaultSeedCount,
		SeedFormat:   "csv",
	}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// OperationsMock provides a mock implementation of Operations for testing.
type OperationsMock struct {
	ImportRawFunc func(ctx context.Context, path string) (operations.ImportReport, error)
	NormalizeFunc func(ctx context.Context) (operations.NormalizeReport, error)
	SeedFunc      func(ctx context.Context, opts operations.SeedOptions) (operations.SeedReport, error)
	ExportFunc    func(ctx context.Context, opts operations.ExportOptions) (operations.ExportReport, error)
	ListFunc      func(ctx context.Context) ([]brands.Brand, int, error)
}

// ImportRaw calls the mock function or returns an empty report.
func (m *OperationsMock) ImportRaw(ctx context.Context, path string) (operations.ImportReport, error) {
	if m.ImportRawFunc != nil {
		return m.ImportRawFunc(ctx, path)
	}
	return operations.ImportReport{Path: path}, nil
}

// Normalize calls the mock function or returns an empty report.
func (m *OperationsMock) Normalize(ctx context.Context) (operations.NormalizeReport, error) {
	if m.NormalizeFunc != nil {
		return m.NormalizeFunc(ctx)
	}
	return operations.NormalizeReport{}, nil
}

// Seed calls the mock function or returns an empty report.
func (m *OperationsMock) Seed(ctx context.Context, opts operations.SeedOptions) (operations.SeedReport, error) {
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx, opts)
	}
	return operations.SeedReport{}, nil
}

// Export calls the mock function or returns an empty report.
func (m *OperationsMock) Export(ctx context.Context, opts operations.ExportOptions) (operations.ExportReport, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, opts)
	}
	return operations.ExportReport{}, nil
}

// List calls the mock function or returns no brands.
func (m *OperationsMock) List(ctx context.Context) ([]brands.Brand, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, 0, nil
}

var _ Operations = (*OperationsMock)(nil)
