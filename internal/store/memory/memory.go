// Package memory provides an in-memory brand store for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/errors"
)

// Store keeps documents in a map keyed by identifier.
type Store struct {
	opts store.Options

	mu     sync.RWMutex
	docs   map[bson.ObjectID]brands.Document
	closed bool
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New(opts ...store.Option) *Store {
	return &Store{
		opts: store.Apply(opts...),
		docs: make(map[bson.ObjectID]brands.Document),
	}
}

// InsertUnchecked implements store.RawInserter.
func (s *Store) InsertUnchecked(ctx context.Context, docs []brands.Document) (store.InsertResult, error) {
	var result store.InsertResult
	if err := ctx.Err(); err != nil {
		return result, errors.Join(errors.ErrCanceled, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return result, errors.ErrClosed
	}

	for i, doc := range docs {
		doc = doc.Clone()
		if doc == nil {
			doc = brands.Document{}
		}
		id := store.EnsureID(doc)
		if _, exists := s.docs[id]; exists {
			result.Failures = append(result.Failures, store.InsertFailure{
				Index: i,
				ID:    id.Hex(),
				Err:   errors.NewAlreadyExistsError(s.opts.Collection, id.Hex()),
			})
			continue
		}
		s.docs[id] = doc
		result.InsertedIDs = append(result.InsertedIDs, id)
	}

	return result, store.Partial(s.opts.Collection, len(docs), result)
}

// FindAll implements store.Finder.
func (s *Store) FindAll(ctx context.Context) ([]brands.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errors.ErrCanceled, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.ErrClosed
	}

	out := make([]brands.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc.Clone())
	}
	store.SortByID(out)
	return out, nil
}

// ReplaceValidated implements store.ValidatedWriter.
func (s *Store) ReplaceValidated(ctx context.Context, b brands.Brand) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(errors.ErrCanceled, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrClosed
	}

	existing, ok := s.docs[b.ID]
	if !ok || b.ID.IsZero() {
		return errors.NewNotFoundError(s.opts.Collection, b.ID.Hex())
	}
	previous, _ := brands.TimeValue(existing[brands.FieldCreatedAt.String()])

	stamped, err := s.opts.ValidateAndStamp(b, previous)
	if err != nil {
		return err
	}
	s.docs[stamped.ID] = stamped.Document()
	return nil
}

// InsertValidated implements store.ValidatedWriter.
func (s *Store) InsertValidated(ctx context.Context, bs []brands.Brand) ([]brands.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.ErrClosed
	}

	written := make([]brands.Brand, 0, len(bs))
	for _, b := range bs {
		if err := ctx.Err(); err != nil {
			return written, errors.Join(errors.ErrCanceled, err)
		}
		stamped, err := s.opts.ValidateAndStamp(b, b.CreatedAt)
		if err != nil {
			return written, err
		}
		if _, exists := s.docs[stamped.ID]; exists {
			return written, errors.NewAlreadyExistsError(s.opts.Collection, stamped.ID.Hex())
		}
		s.docs[stamped.ID] = stamped.Document()
		written = append(written, stamped)
	}
	return written, nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Close implements store.Store. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
