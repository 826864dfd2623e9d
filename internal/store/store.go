// Package store defines the document store boundary for brand documents.
// The two write paths are separate capabilities: InsertUnchecked stores raw
// documents without schema validation, while ReplaceValidated and
// InsertValidated only ever write canonical brands.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/errors"
)

// Backend names a store implementation.
type Backend string

// Supported backends.
const (
	BackendPebble Backend = "pebble"
	BackendMongo  Backend = "mongo"
	BackendMemory Backend = "memory"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendPebble, BackendMongo, BackendMemory:
		return b, nil
	case "":
		return BackendPebble, nil
	default:
		return "", errors.NewConfigError("store", fmt.Sprintf("unsupported store backend %q", s), errors.ErrInvalidInput)
	}
}

// RawInserter stores raw documents as-is.
type RawInserter interface {
	// InsertUnchecked inserts docs without schema validation, unordered:
	// a failing document does not prevent the others from being inserted.
	// Documents without an "_id" are given a new ObjectID. When any
	// document fails the returned error is a *PartialInsertError and the
	// result still describes what was inserted.
	InsertUnchecked(ctx context.Context, docs []brands.Document) (InsertResult, error)
}

// Finder reads stored documents.
type Finder interface {
	// FindAll returns every document, ordered by identifier, with "_id"
	// decoded as a bson.ObjectID.
	FindAll(ctx context.Context) ([]brands.Document, error)
}

// ValidatedWriter writes canonical brands only.
type ValidatedWriter interface {
	// ReplaceValidated replaces the whole document identified by b.ID with
	// the canonical fields of b. Keys of the previous document do not
	// survive, except that an existing createdAt is preserved.
	ReplaceValidated(ctx context.Context, b brands.Brand) error

	// InsertValidated inserts brands in order, stopping at the first
	// failure. It returns the brands that were written, with identifiers
	// and timestamps assigned.
	InsertValidated(ctx context.Context, bs []brands.Brand) ([]brands.Brand, error)
}

// Store is a brand document store handle.
type Store interface {
	RawInserter
	Finder
	ValidatedWriter

	// Close releases the handle.
	Close() error
}

// InsertResult describes an unchecked insert.
type InsertResult struct {
	InsertedIDs []bson.ObjectID
	Failures    []InsertFailure
}

// Inserted returns the number of documents written.
func (r InsertResult) Inserted() int { return len(r.InsertedIDs) }

// InsertFailure describes one rejected document of an unordered batch.
type InsertFailure struct {
	Index int
	ID    string
	Err   error
}

// PartialInsertError reports the rejected documents of an unordered batch.
type PartialInsertError struct {
	Collection string
	Attempted  int
	Failures   []InsertFailure
}

// Error implements the error interface
func (e *PartialInsertError) Error() string {
	return fmt.Sprintf("inserted %d of %d documents into %s, %d failed",
		e.Attempted-len(e.Failures), e.Attempted, e.Collection, len(e.Failures))
}

// Is implements errors.Is support
func (e *PartialInsertError) Is(target error) bool {
	return target == errors.ErrPartialInsert
}

// Unwrap exposes the per-document causes.
func (e *PartialInsertError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Partial returns a *PartialInsertError for result, or nil when nothing failed.
func Partial(collection string, attempted int, result InsertResult) error {
	if len(result.Failures) == 0 {
		return nil
	}
	return &PartialInsertError{
		Collection: collection,
		Attempted:  attempted,
		Failures:   result.Failures,
	}
}
