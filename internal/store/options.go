package store

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/logging"
)

// Options holds settings shared by all backends.
type Options struct {
	Collection string
	Now        func() time.Time
	Logger     *zerolog.Logger
}

// Option configures a backend.
type Option func(*Options)

// WithCollection sets the collection (or key prefix) brands are stored under.
func WithCollection(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Collection = name
		}
	}
}

// WithClock sets the time source used for validation and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// WithLogger sets the backend logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// Apply returns defaults overridden by opts.
func Apply(opts ...Option) Options {
	o := Options{
		Collection: constants.DefaultCollection,
		Now:        time.Now,
		Logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ValidateAndStamp validates b against the clock and stamps it for writing.
func (o Options) ValidateAndStamp(b brands.Brand, previous time.Time) (brands.Brand, error) {
	now := o.Now().UTC()
	if err := b.Validate(now); err != nil {
		return b, err
	}
	return Stamp(b, previous, now), nil
}
