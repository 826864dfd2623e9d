// Package export projects canonical brands into serializable records and
// tabular rows, and writes them as JSON, YAML, CSV or XLSX.
package export

import (
	"fmt"
	"strings"

	"github.com/agentstation/brandmap/pkg/errors"
)

// Format is an output encoding.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
	FormatCSV
	FormatXLSX
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatCSV, FormatXLSX:
		return true
	default:
		return false
	}
}

// IsTabular reports whether the format writes rows rather than records.
func (f Format) IsTabular() bool {
	return f == FormatCSV || f == FormatXLSX
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	}
	return "unknown"
}

// Extension returns the file extension, without the dot.
func (f Format) Extension() string {
	return f.String()
}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return 0, errors.NewValidationError("format", s, fmt.Sprintf("unsupported format %q", s))
}
