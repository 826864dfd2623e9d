// Package mongo provides the MongoDB brand store. The collection carries a
// $jsonSchema validator for the canonical shape; raw imports bypass it.
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
)

// Server error codes handled by the store.
const (
	codeDuplicateKey    = 11000
	codeNamespaceExists = 48
)

// Store is a MongoDB backed brand store.
type Store struct {
	opts   store.Options
	client *mongo.Client
	coll   *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Config holds connection settings.
type Config struct {
	URI      string
	Database string
}

// Open connects, verifies the connection and ensures the collection exists
// with the canonical validator.
func Open(ctx context.Context, cfg Config, opts ...store.Option) (*Store, error) {
	o := store.Apply(opts...)
	if cfg.URI == "" {
		cfg.URI = constants.DefaultMongoURI
	}
	if cfg.Database == "" {
		cfg.Database = constants.DefaultDatabase
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(constants.ConnectTimeout).
		SetServerSelectionTimeout(constants.ConnectTimeout))
	if err != nil {
		return nil, errors.WrapResource("open", "store", cfg.URI, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, constants.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.WrapResource("connect", "store", cfg.URI, err)
	}

	db := client.Database(cfg.Database)
	if err := ensureCollection(ctx, db, o.Collection); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	o.Logger.Debug().
		Str("database", cfg.Database).
		Str("collection", o.Collection).
		Msg("Connected to mongo")

	return &Store{opts: o, client: client, coll: db.Collection(o.Collection)}, nil
}

// Validator returns the $jsonSchema document applied to the collection.
func Validator() bson.D {
	return bson.D{{Key: "$jsonSchema", Value: bson.D{
		{Key: "bsonType", Value: "object"},
		{Key: "required", Value: bson.A{
			brands.FieldBrandName.String(),
			brands.FieldYearFounded.String(),
			brands.FieldHeadquarters.String(),
			brands.FieldNumberOfLocations.String(),
		}},
		{Key: "properties", Value: bson.D{
			{Key: brands.FieldBrandName.String(), Value: bson.D{
				{Key: "bsonType", Value: "string"},
				{Key: "minLength", Value: 1},
			}},
			{Key: brands.FieldYearFounded.String(), Value: bson.D{
				{Key: "bsonType", Value: bson.A{"int", "long"}},
				{Key: "minimum", Value: constants.MinYearFounded},
			}},
			{Key: brands.FieldHeadquarters.String(), Value: bson.D{
				{Key: "bsonType", Value: "string"},
				{Key: "minLength", Value: 1},
			}},
			{Key: brands.FieldNumberOfLocations.String(), Value: bson.D{
				{Key: "bsonType", Value: bson.A{"int", "long"}},
				{Key: "minimum", Value: constants.MinLocations},
			}},
		}},
	}}}
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	err := db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(Validator()))
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != codeNamespaceExists {
		return errors.WrapResource("create", "collection", name, err)
	}
	// Existing collection: bring its validator up to date.
	cmd := bson.D{{Key: "collMod", Value: name}, {Key: "validator", Value: Validator()}}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return errors.WrapResource("update", "collection", name, err)
	}
	return nil
}

// InsertUnchecked implements store.RawInserter.
func (s *Store) InsertUnchecked(ctx context.Context, docs []brands.Document) (store.InsertResult, error) {
	var result store.InsertResult
	if len(docs) == 0 {
		return result, nil
	}

	ids := make([]bson.ObjectID, len(docs))
	payload := make([]any, len(docs))
	for i, doc := range docs {
		doc = doc.Clone()
		if doc == nil {
			doc = brands.Document{}
		}
		ids[i] = store.EnsureID(doc)
		payload[i] = store.ToBSON(doc)
	}

	_, err := s.coll.InsertMany(ctx, payload, options.InsertMany().
		SetOrdered(false).
		SetBypassDocumentValidation(true))

	failed := make(map[int]bool)
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if !errors.As(err, &bulkErr) || len(bulkErr.WriteErrors) == 0 {
			return result, errors.WrapResource("insert", s.opts.Collection, "", err)
		}
		for _, we := range bulkErr.WriteErrors {
			failed[we.Index] = true
			var cause error = we
			if we.Code == codeDuplicateKey {
				cause = errors.NewAlreadyExistsError(s.opts.Collection, ids[we.Index].Hex())
			}
			result.Failures = append(result.Failures, store.InsertFailure{
				Index: we.Index,
				ID:    ids[we.Index].Hex(),
				Err:   cause,
			})
		}
	}

	for i, id := range ids {
		if !failed[i] {
			result.InsertedIDs = append(result.InsertedIDs, id)
		}
	}
	return result, store.Partial(s.opts.Collection, len(docs), result)
}

// FindAll implements store.Finder.
func (s *Store) FindAll(ctx context.Context) ([]brands.Document, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: constants.FieldID, Value: 1}}))
	if err != nil {
		return nil, errors.WrapResource("find", s.opts.Collection, "", err)
	}
	defer cursor.Close(ctx)

	var docs []brands.Document
	for cursor.Next(ctx) {
		var d bson.D
		if err := cursor.Decode(&d); err != nil {
			return nil, errors.WrapResource("decode", "brand", "", err)
		}
		docs = append(docs, store.FromBSON(d))
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.WrapResource("find", s.opts.Collection, "", err)
	}
	return docs, nil
}

// ReplaceValidated implements store.ValidatedWriter.
func (s *Store) ReplaceValidated(ctx context.Context, b brands.Brand) error {
	filter := bson.D{{Key: constants.FieldID, Value: b.ID}}

	var existing bson.D
	err := s.coll.FindOne(ctx, filter).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errors.NewNotFoundError(s.opts.Collection, b.ID.Hex())
	}
	if err != nil {
		return errors.WrapResource("replace", "brand", b.ID.Hex(), err)
	}
	previous, _ := brands.TimeValue(store.FromBSON(existing)[brands.FieldCreatedAt.String()])

	stamped, err := s.opts.ValidateAndStamp(b, previous)
	if err != nil {
		return err
	}

	res, err := s.coll.ReplaceOne(ctx, filter, store.ToBSON(stamped.Document()))
	if err != nil {
		return errors.WrapResource("replace", "brand", b.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return errors.NewNotFoundError(s.opts.Collection, b.ID.Hex())
	}
	return nil
}

// InsertValidated implements store.ValidatedWriter.
func (s *Store) InsertValidated(ctx context.Context, bs []brands.Brand) ([]brands.Brand, error) {
	written := make([]brands.Brand, 0, len(bs))
	for _, b := range bs {
		stamped, err := s.opts.ValidateAndStamp(b, b.CreatedAt)
		if err != nil {
			return written, err
		}
		if _, err := s.coll.InsertOne(ctx, store.ToBSON(stamped.Document())); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return written, errors.NewAlreadyExistsError(s.opts.Collection, stamped.ID.Hex())
			}
			return written, errors.WrapResource("insert", "brand", stamped.ID.Hex(), err)
		}
		written = append(written, stamped)
	}
	return written, nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return errors.WrapResource("close", "store", s.opts.Collection, err)
	}
	return nil
}
