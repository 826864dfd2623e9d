package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/internal/store/memory"
	"github.com/agentstation/brandmap/internal/store/mongo"
	"github.com/agentstation/brandmap/internal/store/pebble"
	"github.com/agentstation/brandmap/pkg/constants"
)

// OpenStore opens the backend named in config.
func OpenStore(ctx context.Context, config *Config, logger *zerolog.Logger) (store.Store, error) {
	backend, err := store.ParseBackend(config.Store)
	if err != nil {
		return nil, err
	}

	opts := []store.Option{
		store.WithCollection(config.Collection),
		store.WithLogger(logger),
	}

	switch backend {
	case store.BackendMongo:
		ctx, cancel := context.WithTimeout(ctx, constants.ConnectTimeout)
		defer cancel()
		return mongo.Open(ctx, mongo.Config{URI: config.MongoURI, Database: config.MongoDatabase}, opts...)
	case store.BackendMemory:
		return memory.New(opts...), nil
	default:
		dir := config.DataDir
		if dir == "" {
			dir = constants.DefaultDataDir
		}
		return pebble.Open(dir, opts...)
	}
}
