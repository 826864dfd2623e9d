// Package ingest loads raw brand documents and coerces their identifiers
// into canonical ObjectIDs. Documents are otherwise passed on untouched so
// they can be stored verbatim before normalization.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
	"github.com/agentstation/brandmap/pkg/logging"
)

// CoerceIdentifier converts the recognized identifier shapes into an
// ObjectID: a 24 character hex string, an extended JSON {"$oid": hex}
// wrapper, or an ObjectID already. Anything else yields false and the
// sink assigns a fresh identifier.
func CoerceIdentifier(raw any) (bson.ObjectID, bool) {
	switch v := raw.(type) {
	case bson.ObjectID:
		return v, !v.IsZero()
	case string:
		return fromHex(v)
	case map[string]any:
		return fromWrapped(v)
	case brands.Document:
		return fromWrapped(v)
	default:
		return bson.ObjectID{}, false
	}
}

func fromWrapped(m map[string]any) (bson.ObjectID, bool) {
	hex, ok := m["$oid"].(string)
	if !ok {
		return bson.ObjectID{}, false
	}
	return fromHex(hex)
}

func fromHex(s string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return id, true
}

// Ingestor reads raw-load files and prepares documents for the store.
type Ingestor struct {
	fs     afero.Fs
	logger *zerolog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithFs sets the filesystem raw-load files are read from.
func WithFs(fs afero.Fs) Option {
	return func(i *Ingestor) {
		if fs != nil {
			i.fs = fs
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(i *Ingestor) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New creates an Ingestor reading from the OS filesystem.
func New(opts ...Option) *Ingestor {
	i := &Ingestor{
		fs:     afero.NewOsFs(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Load reads a JSON array of raw documents from path and coerces their
// identifiers. Numbers keep their literal text as json.Number.
func (i *Ingestor) Load(ctx context.Context, path string) ([]brands.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errors.ErrCanceled, err)
	}

	data, err := afero.ReadFile(i.fs, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	docs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	i.logger.Debug().
		Str("path", path).
		Int("count", len(docs)).
		Msg("Loaded raw brand documents")

	return i.Prepare(docs), nil
}

// Prepare returns copies of docs whose "_id" is a canonical ObjectID, or
// absent when the original identifier was not recognized.
func (i *Ingestor) Prepare(docs []brands.Document) []brands.Document {
	out := make([]brands.Document, 0, len(docs))
	for idx, doc := range docs {
		prepared := doc.Clone()
		if prepared == nil {
			prepared = brands.Document{}
		}
		raw, present := prepared[constants.FieldID]
		if id, ok := CoerceIdentifier(raw); ok {
			prepared[constants.FieldID] = id
		} else {
			if present && raw != nil {
				i.logger.Warn().
					Int("index", idx).
					Interface("id", raw).
					Msg("Unrecognized identifier, a new one will be assigned")
			}
			delete(prepared, constants.FieldID)
		}
		out = append(out, prepared)
	}
	return out
}

// Decode parses a JSON array of objects.
func Decode(r io.Reader) ([]brands.Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var docs []brands.Document
	if err := dec.Decode(&docs); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after the top-level array")
	}
	for idx, doc := range docs {
		if doc == nil {
			return nil, errors.NewValidationError("", idx, "array element is not an object")
		}
	}
	return docs, nil
}
