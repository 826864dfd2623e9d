// Package operations implements the operator tasks of brandmap: importing
// raw documents, normalizing stored documents in place, seeding synthetic
// brands with a tabular report, and exporting canonical brands. Each task
// handles its own store and file failures and reports what it did.
package operations

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/brandmap/internal/metrics"
	"github.com/agentstation/brandmap/internal/seed"
	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/ingest"
	"github.com/agentstation/brandmap/pkg/logging"
	"github.com/agentstation/brandmap/pkg/normalize"
)

// Runner executes operations against a store handle it does not own.
type Runner struct {
	store      store.Store
	fs         afero.Fs
	logger     *zerolog.Logger
	metrics    *metrics.Registry
	now        func() time.Time
	source     seed.Source
	ingestor   *ingest.Ingestor
	normalizer *normalize.Normalizer
	generator  *seed.Generator
}

// Option configures a Runner.
type Option func(*Runner)

// WithFs sets the filesystem used for input and output files.
func WithFs(fs afero.Fs) Option {
	return func(r *Runner) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the registry counters are recorded in.
func WithMetrics(m *metrics.Registry) Option {
	return func(r *Runner) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithClock sets the time source for normalization and seeding.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSeedSource sets the random value source for seeding.
func WithSeedSource(src seed.Source) Option {
	return func(r *Runner) {
		if src != nil {
			r.source = src
		}
	}
}

// New creates a Runner for st.
func New(st store.Store, opts ...Option) *Runner {
	r := &Runner{
		store:  st,
		fs:     afero.NewOsFs(),
		logger: logging.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = metrics.NewRegistry()
	}
	if r.source == nil {
		r.source = seed.NewFaker(0)
	}

	r.ingestor = ingest.New(ingest.WithFs(r.fs), ingest.WithLogger(r.logger))
	r.normalizer = normalize.New(normalize.WithClock(r.now))
	r.generator = seed.New(r.source, seed.WithClock(r.now))
	return r
}

// Metrics returns the registry the runner records into.
func (r *Runner) Metrics() *metrics.Registry { return r.metrics }

// begin attaches the operation logger to ctx and starts its timer.
func (r *Runner) begin(ctx context.Context, operation string) (context.Context, *zerolog.Logger, func()) {
	ctx = logging.WithLogger(ctx, r.logger)
	ctx = logging.WithOperation(ctx, operation)
	timer := prometheus.NewTimer(r.metrics.OperationSec.WithLabelValues(operation))
	return ctx, logging.FromContext(ctx), func() { timer.ObserveDuration() }
}

// canonical splits stored documents into canonical brands and the number
// of documents that are not in canonical shape.
func canonical(docs []brands.Document, logger *zerolog.Logger) ([]brands.Brand, int) {
	out := make([]brands.Brand, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		b, err := brands.FromDocument(doc)
		if err != nil {
			skipped++
			logger.Warn().
				Interface("id", doc["_id"]).
				Err(err).
				Msg("Skipping document that is not in canonical shape, run normalize first")
			continue
		}
		out = append(out, b)
	}
	return out, skipped
}
