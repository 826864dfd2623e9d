// Package pebble provides the embedded, on-disk brand store. Documents are
// BSON encoded and keyed by collection and identifier so iteration order
// matches identifier order.
package pebble

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/pebble"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/errors"
)

// Store is a pebble backed brand store.
type Store struct {
	opts store.Options
	dir  string

	// mu serializes writers so duplicate checks and batch commits are atomic.
	mu     sync.Mutex
	db     *pebble.DB
	closed bool
}

var _ store.Store = (*Store)(nil)

// Open opens (creating when needed) the database in dir.
func Open(dir string, opts ...store.Option) (*Store, error) {
	o := store.Apply(opts...)
	dir = filepath.Clean(dir)

	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.WrapResource("open", "store", dir, err)
	}

	o.Logger.Debug().
		Str("dir", dir).
		Str("collection", o.Collection).
		Msg("Opened pebble store")

	return &Store{opts: o, dir: dir, db: db}, nil
}

// Dir returns the database directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) prefix() []byte {
	return []byte(s.opts.Collection + "/")
}

func (s *Store) key(id bson.ObjectID) []byte {
	return append(s.prefix(), id.Hex()...)
}

// upperBound returns the first key past every key carrying the prefix.
func (s *Store) upperBound() []byte {
	return []byte(s.opts.Collection + "0")
}

func (s *Store) exists(k []byte) (bool, error) {
	_, closer, err := s.db.Get(k)
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_ = closer.Close()
	return true, nil
}

func (s *Store) get(k []byte) (brands.Document, bool, error) {
	v, closer, err := s.db.Get(k)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()
	doc, err := store.UnmarshalDocument(v)
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// InsertUnchecked implements store.RawInserter. All accepted documents are
// committed in a single batch.
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

	batch := s.db.NewBatch()
	defer batch.Close()

	pending := make(map[bson.ObjectID]bool, len(docs))
	var ids []bson.ObjectID
	for i, doc := range docs {
		doc = doc.Clone()
		if doc == nil {
			doc = brands.Document{}
		}
		id := store.EnsureID(doc)
		fail := func(err error) {
			result.Failures = append(result.Failures, store.InsertFailure{Index: i, ID: id.Hex(), Err: err})
		}

		k := s.key(id)
		found, err := s.exists(k)
		if err != nil {
			fail(errors.WrapResource("read", "brand", id.Hex(), err))
			continue
		}
		if found || pending[id] {
			fail(errors.NewAlreadyExistsError(s.opts.Collection, id.Hex()))
			continue
		}

		data, err := store.MarshalDocument(doc)
		if err != nil {
			fail(errors.WrapParse("bson", "", err))
			continue
		}
		if err := batch.Set(k, data, nil); err != nil {
			fail(errors.WrapResource("insert", "brand", id.Hex(), err))
			continue
		}
		pending[id] = true
		ids = append(ids, id)
	}

	if len(ids) > 0 {
		if err := batch.Commit(pebble.Sync); err != nil {
			return store.InsertResult{}, errors.WrapResource("insert", s.opts.Collection, "", err)
		}
	}
	result.InsertedIDs = ids

	return result, store.Partial(s.opts.Collection, len(docs), result)
}

// FindAll implements store.Finder.
func (s *Store) FindAll(ctx context.Context) ([]brands.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errors.ErrCanceled, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.ErrClosed
	}

	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: s.prefix(),
		UpperBound: s.upperBound(),
	})
	if err != nil {
		return nil, errors.WrapResource("find", s.opts.Collection, "", err)
	}
	defer it.Close()

	var docs []brands.Document
	for it.First(); it.Valid(); it.Next() {
		doc, err := store.UnmarshalDocument(it.Value())
		if err != nil {
			return nil, errors.WrapResource("find", "brand", string(it.Key()), err)
		}
		docs = append(docs, doc)
	}
	if err := it.Error(); err != nil {
		return nil, errors.WrapResource("find", s.opts.Collection, "", err)
	}
	return docs, nil
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

	k := s.key(b.ID)
	existing, found, err := s.get(k)
	if err != nil {
		return errors.WrapResource("replace", "brand", b.ID.Hex(), err)
	}
	if !found || b.ID.IsZero() {
		return errors.NewNotFoundError(s.opts.Collection, b.ID.Hex())
	}
	previous, _ := brands.TimeValue(existing[brands.FieldCreatedAt.String()])

	stamped, err := s.opts.ValidateAndStamp(b, previous)
	if err != nil {
		return err
	}
	data, err := store.MarshalDocument(stamped.Document())
	if err != nil {
		return errors.WrapParse("bson", "", err)
	}
	if err := s.db.Set(k, data, pebble.Sync); err != nil {
		return errors.WrapResource("replace", "brand", b.ID.Hex(), err)
	}
	return nil
}

// InsertValidated implements store.ValidatedWriter. Each brand is written
// on its own so a failure leaves the earlier brands in place.
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

		k := s.key(stamped.ID)
		found, err := s.exists(k)
		if err != nil {
			return written, errors.WrapResource("insert", "brand", stamped.ID.Hex(), err)
		}
		if found {
			return written, errors.NewAlreadyExistsError(s.opts.Collection, stamped.ID.Hex())
		}

		data, err := store.MarshalDocument(stamped.Document())
		if err != nil {
			return written, errors.WrapParse("bson", "", err)
		}
		if err := s.db.Set(k, data, pebble.Sync); err != nil {
			return written, errors.WrapResource("insert", "brand", stamped.ID.Hex(), err)
		}
		written = append(written, stamped)
	}
	return written, nil
}

// Close implements store.Store. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return errors.WrapResource("close", "store", s.dir, err)
	}
	return nil
}
