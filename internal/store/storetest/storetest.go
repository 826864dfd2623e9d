// Package storetest provides a conformance suite run against every store
// backend.
package storetest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
)

// Factory opens a fresh, empty store configured with opts.
type Factory func(t *testing.T, opts ...store.Option) store.Store

// Now is the fixed clock used by the suite.
var Now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

// Clock returns Now.
func Clock() time.Time { return Now }

// ValidBrand returns a canonical brand with a fresh identifier.
func ValidBrand(name string) brands.Brand {
	return brands.Brand{
		ID:                bson.NewObjectID(),
		BrandName:         name,
		YearFounded:       1990,
		Headquarters:      "Lisbon, Portugal",
		NumberOfLocations: 12,
	}
}

// Run executes the suite.
func Run(t *testing.T, open Factory) {
	t.Helper()

	t.Run("InsertUncheckedStoresRawShapes", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		ctx := context.Background()

		id := bson.NewObjectID()
		docs := []brands.Document{
			{constants.FieldID: id, "brand": map[string]any{"name": "Nested"}, "yearCreated": "1850abc"},
			{"brandName": "No ID", "numberOfLocations": json.Number("7")},
		}

		result, err := s.InsertUnchecked(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Inserted())
		assert.Equal(t, id, result.InsertedIDs[0])
		assert.False(t, result.InsertedIDs[1].IsZero())

		found, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, found, 2)

		byID := map[bson.ObjectID]brands.Document{}
		for _, d := range found {
			oid, ok := d[constants.FieldID].(bson.ObjectID)
			require.True(t, ok, "identifier must decode as ObjectID")
			byID[oid] = d
		}
		nested := byID[id]
		require.NotNil(t, nested)
		assert.Equal(t, "1850abc", nested["yearCreated"])
		inner, ok := nested["brand"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Nested", inner["name"])

		other := byID[result.InsertedIDs[1]]
		n, ok := brands.IntValue(other["numberOfLocations"])
		require.True(t, ok)
		assert.Equal(t, 7, n)

		// Inputs are not mutated.
		_, hasID := docs[1][constants.FieldID]
		assert.False(t, hasID)
	})

	t.Run("InsertUncheckedIsUnordered", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		ctx := context.Background()

		dup := bson.NewObjectID()
		_, err := s.InsertUnchecked(ctx, []brands.Document{{constants.FieldID: dup, "brandName": "First"}})
		require.NoError(t, err)

		result, err := s.InsertUnchecked(ctx, []brands.Document{
			{"brandName": "A"},
			{constants.FieldID: dup, "brandName": "Duplicate"},
			{"brandName": "B"},
		})
		require.Error(t, err)
		assert.True(t, errors.IsPartialInsert(err))
		assert.True(t, errors.IsAlreadyExists(err))

		var partial *store.PartialInsertError
		require.True(t, errors.As(err, &partial))
		require.Len(t, partial.Failures, 1)
		assert.Equal(t, 1, partial.Failures[0].Index)
		assert.Equal(t, dup.Hex(), partial.Failures[0].ID)
		assert.Equal(t, 2, result.Inserted())

		found, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("FindAllOrdersByIdentifier", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		ctx := context.Background()

		ids := []bson.ObjectID{bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID()}
		_, err := s.InsertUnchecked(ctx, []brands.Document{
			{constants.FieldID: ids[2]},
			{constants.FieldID: ids[0]},
			{constants.FieldID: ids[1]},
		})
		require.NoError(t, err)

		found, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, found, 3)
		for i, d := range found {
			assert.Equal(t, ids[i], d[constants.FieldID])
		}
	})

	t.Run("ReplaceValidatedDropsStrayKeys", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		ctx := context.Background()

		id := bson.NewObjectID()
		created := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
		_, err := s.InsertUnchecked(ctx, []brands.Document{{
			constants.FieldID: id,
			"brand":           map[string]any{"name": "Legacy"},
			"hqAddress":       "Old Street",
			"createdAt":       created,
		}})
		require.NoError(t, err)

		b := ValidBrand("Legacy")
		b.ID = id
		require.NoError(t, s.ReplaceValidated(ctx, b))

		found, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, found, 1)

		got, err := brands.FromDocument(found[0])
		require.NoError(t, err, "replaced document must be canonical")
		assert.Equal(t, "Legacy", got.BrandName)
		assert.True(t, created.Equal(got.CreatedAt), "createdAt is preserved")
		assert.True(t, Now.Equal(got.UpdatedAt))
	})

	t.Run("ReplaceValidatedRejects", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		ctx := context.Background()

		err := s.ReplaceValidated(ctx, ValidBrand("Missing"))
		assert.True(t, errors.IsNotFound(err))

		id := bson.NewObjectID()
		_, err = s.InsertUnchecked(ctx, []brands.Document{{constants.FieldID: id, "brandName": "Keep"}})
		require.NoError(t, err)

		bad := ValidBrand("Future")
		bad.ID = id
		bad.YearFounded = Now.Year() + 1
		err = s.ReplaceValidated(ctx, bad)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))

		found, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Keep", found[0]["brandName"], "rejected replace leaves the document untouched")
	})

	t.Run("InsertValidatedStopsAtFirstFailure", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		ctx := context.Background()

		bad := ValidBrand("")
		written, err := s.InsertValidated(ctx, []brands.Brand{ValidBrand("One"), bad, ValidBrand("Three")})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		require.Len(t, written, 1)
		assert.True(t, Now.Equal(written[0].CreatedAt))
		assert.True(t, Now.Equal(written[0].UpdatedAt))

		found, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("InsertValidatedAssignsIdentifiers", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		ctx := context.Background()

		b := ValidBrand("Anon")
		b.ID = bson.ObjectID{}
		written, err := s.InsertValidated(ctx, []brands.Brand{b})
		require.NoError(t, err)
		require.Len(t, written, 1)
		assert.False(t, written[0].ID.IsZero())

		_, err = s.InsertValidated(ctx, written)
		assert.True(t, errors.IsAlreadyExists(err))
	})

	t.Run("ClosedStoreRejectsCalls", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		_, err := s.FindAll(context.Background())
		assert.Error(t, err)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		s := open(t, store.WithClock(Clock))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.FindAll(ctx)
		assert.Error(t, err)
	})
}
