// Package constants provides shared constants used throughout the brandmap codebase.
// This includes timeouts, file permissions, collection names and the literal
// defaults substituted by the normalizer.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// ConnectTimeout bounds opening a networked document store
	ConnectTimeout = 10 * time.Second

	// ShutdownTimeout is how long the CLI waits for the store to close
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Store constants
const (
	// DefaultCollection is the collection holding brand documents
	DefaultCollection = "brands"

	// DefaultDatabase is the database used by the mongo backend
	DefaultDatabase = "brandmap"

	// DefaultMongoURI is used when no URI is configured
	DefaultMongoURI = "mongodb://localhost:27017"

	// DefaultDataDir is where the embedded store keeps its files
	DefaultDataDir = ".brandmap/data"

	// FieldID is the document key carrying the identifier
	FieldID = "_id"
)

// Canonical brand bounds and literal fallback defaults
const (
	// MinYearFounded is the earliest accepted founding year (inclusive)
	MinYearFounded = 1600

	// MinLocations is the smallest accepted location count (inclusive)
	MinLocations = 1

	// DefaultBrandName replaces a missing or empty brand name
	DefaultBrandName = "Unknown Brand"

	// DefaultHeadquarters replaces a missing or empty headquarters address
	DefaultHeadquarters = "Unknown HQ Address"

	// DefaultYearFounded replaces a missing or out-of-range founding year
	DefaultYearFounded = MinYearFounded

	// DefaultNumberOfLocations replaces a missing or non-positive location count
	DefaultNumberOfLocations = MinLocations
)

// File naming defaults
const (
	// DefaultImportFile is the raw-load file read by the import command
	DefaultImportFile = "brands.json"

	// ExportBaseName is the base name of bulk export files
	ExportBaseName = "exported-brands"

	// SeedBaseName is the base name of seed table files
	SeedBaseName = "seeded-brands"

	// DefaultSeedCount is how many synthetic brands a seed run creates
	DefaultSeedCount = 10

	// ExistingRecordNote annotates rows that were already stored
	ExistingRecordNote = "Existing record (no note)"
)
