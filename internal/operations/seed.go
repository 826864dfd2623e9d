package operations

import (
	"context"

	"github.com/agentstation/brandmap/internal/pathutil"
	"github.com/agentstation/brandmap/internal/seed"
	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
	"github.com/agentstation/brandmap/pkg/export"
)

// SeedOptions configures a seed run.
type SeedOptions struct {
	Count  int
	Format export.Format
	Dir    string

	// RandomSeed makes the generated values reproducible when non-zero.
	RandomSeed uint64
}

// Seed inserts Count synthetic brands and writes a table listing the
// brands that were stored before the run followed by the new ones.
func (r *Runner) Seed(ctx context.Context, opts SeedOptions) (SeedReport, error) {
	ctx, logger, done := r.begin(ctx, "seed")
	defer done()

	var report SeedReport
	if opts.Count <= 0 {
		opts.Count = constants.DefaultSeedCount
	}
	if !opts.Format.IsTabular() {
		opts.Format = export.FormatCSV
	}

	// Existing rows are read before inserting so new brands are not listed twice.
	docs, err := r.store.FindAll(ctx)
	if err != nil {
		return report, err
	}
	existing, skipped := canonical(docs, logger)
	report.Existing = len(existing)
	report.Skipped = skipped

	gen := r.generator
	if opts.RandomSeed != 0 {
		gen = seed.New(seed.NewFaker(opts.RandomSeed), seed.WithClock(r.now))
	}
	generated := gen.Generate(opts.Count)
	written, insertErr := r.store.InsertValidated(ctx, seed.Brands(generated))
	report.Seeded = written
	r.metrics.Seeded.Add(float64(len(written)))
	if insertErr != nil {
		logger.Error().
			Int("inserted", len(written)).
			Int("count", opts.Count).
			Err(insertErr).
			Msg("Seeding stopped early")
	}

	rows := export.WithNote(export.Project(existing), constants.ExistingRecordNote)
	// written is a prefix of generated.
	seeded := export.Project(written)
	for i := range seeded {
		seeded[i].Note = generated[i].Note
	}
	rows = append(rows, seeded...)

	f, path, err := pathutil.Create(r.fs, opts.Dir, constants.SeedBaseName, opts.Format.Extension())
	if err != nil {
		return report, err
	}
	err = export.WriteTable(f, opts.Format, rows)
	if cerr := f.Close(); err == nil {
		err = errors.WrapIO("close", path, cerr)
	}
	if err != nil {
		return report, err
	}
	report.Path = path

	logger.Info().
		Int("count", len(written)).
		Int("existing", report.Existing).
		Str("path", path).
		Msg("Seeded brands and wrote table")
	return report, insertErr
}
