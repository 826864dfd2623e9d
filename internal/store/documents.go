package store

import (
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
)

// EnsureID returns the document's ObjectID, assigning a new one when the
// document has none. Identifiers in any other shape are replaced.
func EnsureID(doc brands.Document) bson.ObjectID {
	if id, ok := doc[constants.FieldID].(bson.ObjectID); ok && !id.IsZero() {
		return id
	}
	id := bson.NewObjectID()
	doc[constants.FieldID] = id
	return id
}

// Stamp prepares a canonical brand for writing: it assigns an identifier
// when missing, keeps createdAt (falling back to previous, then now) and
// sets updatedAt to now.
func Stamp(b brands.Brand, previous time.Time, now time.Time) brands.Brand {
	if b.ID.IsZero() {
		b.ID = bson.NewObjectID()
	}
	switch {
	case !previous.IsZero():
		b.CreatedAt = previous
	case b.CreatedAt.IsZero():
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	return b
}

// SortByID orders documents by identifier, placing documents without an
// ObjectID last.
func SortByID(docs []brands.Document) {
	key := func(d brands.Document) string {
		if id, ok := d[constants.FieldID].(bson.ObjectID); ok {
			return id.Hex()
		}
		return "~"
	}
	slices.SortStableFunc(docs, func(a, b brands.Document) int {
		return strings.Compare(key(a), key(b))
	})
}
