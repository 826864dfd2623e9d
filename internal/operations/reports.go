package operations

import (
	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/pkg/brands"
)

// ImportReport summarizes an import.
type ImportReport struct {
	Path     string
	Read     int
	Inserted int
	Failures []store.InsertFailure
}

// RecordFailure is a per-record write failure.
type RecordFailure struct {
	ID  string
	Err error
}

// NormalizeReport summarizes a normalize run.
type NormalizeReport struct {
	Total      int
	Normalized int
	Failures   []RecordFailure
	Defaulted  map[brands.Field]int
}

// Failed returns the number of records that could not be replaced.
func (r NormalizeReport) Failed() int { return len(r.Failures) }

// SeedReport summarizes a seed run.
type SeedReport struct {
	Existing int
	Skipped  int
	Seeded   []brands.Brand
	Path     string
}

// ExportReport summarizes an export.
type ExportReport struct {
	Exported int
	Skipped  int
	Path     string
}
