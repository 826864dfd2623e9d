package store

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/errors"
)

// MarshalDocument encodes a document as BSON. Decoder-preserved
// json.Number values become int64 when integral and float64 otherwise.
func MarshalDocument(doc brands.Document) ([]byte, error) {
	return bson.Marshal(ToBSON(doc))
}

// UnmarshalDocument decodes BSON produced by MarshalDocument or read from a
// collection.
func UnmarshalDocument(data []byte) (brands.Document, error) {
	var d bson.D
	if err := bson.Unmarshal(data, &d); err != nil {
		return nil, errors.WrapParse("bson", "", err)
	}
	return FromBSON(d), nil
}

// ToBSON converts a document into a map the BSON encoder accepts.
func ToBSON(doc brands.Document) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = toBSONValue(v)
	}
	return out
}

func toBSONValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		// Out of range for both; keep the literal text.
		return val.String()
	case brands.Document:
		return ToBSON(val)
	case map[string]any:
		return ToBSON(val)
	case []any:
		out := make(bson.A, len(val))
		for i, elem := range val {
			out[i] = toBSONValue(elem)
		}
		return out
	default:
		return v
	}
}

// FromBSON converts a decoded BSON document into a brands.Document using
// plain Go types: nested documents become maps, arrays become []any and
// dates become time.Time.
func FromBSON(d bson.D) brands.Document {
	out := make(brands.Document, len(d))
	for _, e := range d {
		out[e.Key] = fromBSONValue(e.Value)
	}
	return out
}

func fromBSONValue(v any) any {
	switch val := v.(type) {
	case bson.D:
		return map[string]any(FromBSON(val))
	case bson.M:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = fromBSONValue(inner)
		}
		return m
	case bson.A:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = fromBSONValue(elem)
		}
		return out
	case bson.DateTime:
		return val.Time().UTC()
	case time.Time:
		return val.UTC()
	default:
		return v
	}
}
