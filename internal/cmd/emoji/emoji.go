// Package emoji provides symbol constants for CLI output.
// These symbols keep command summaries and the operator menu consistent.
package emoji

// Symbol constants for CLI output.
const (
	// Success marks a completed operation summary.
	Success = "✓"

	// Error marks a per-document failure or a failed menu operation.
	Error = "✗"

	// Warning marks documents that were left out, such as non-canonical
	// documents skipped by an export.
	Warning = "!"

	// Info marks neutral outcomes, such as an empty store.
	Info = "i"
)
