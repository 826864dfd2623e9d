package operations

import (
	"context"

	"github.com/agentstation/brandmap/internal/pathutil"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
	"github.com/agentstation/brandmap/pkg/export"
)

// ExportOptions configures an export.
type ExportOptions struct {
	Format export.Format
	Dir    string
}

// Export writes every canonical stored brand to a new file in Dir. No file
// is written when the store is empty.
func (r *Runner) Export(ctx context.Context, opts ExportOptions) (ExportReport, error) {
	ctx, logger, done := r.begin(ctx, "export")
	defer done()

	var report ExportReport
	if opts.Format.IsTabular() || !opts.Format.IsValid() {
		opts.Format = export.FormatJSON
	}

	docs, err := r.store.FindAll(ctx)
	if err != nil {
		return report, err
	}
	if len(docs) == 0 {
		logger.Info().Msg("No brand documents found")
		return report, nil
	}

	bs, skipped := canonical(docs, logger)
	report.Skipped = skipped
	r.metrics.Skipped.Add(float64(skipped))

	f, path, err := pathutil.Create(r.fs, opts.Dir, constants.ExportBaseName, opts.Format.Extension())
	if err != nil {
		return report, err
	}
	err = export.WriteRecords(f, opts.Format, export.Records(bs))
	if cerr := f.Close(); err == nil {
		err = errors.WrapIO("close", path, cerr)
	}
	if err != nil {
		return report, err
	}
	report.Path = path
	report.Exported = len(bs)
	r.metrics.Exported.Add(float64(len(bs)))

	logger.Info().
		Int("count", report.Exported).
		Int("skipped", skipped).
		Str("path", path).
		Msg("Exported brands")
	return report, nil
}

// List returns the canonical stored brands and the number of stored
// documents that are not canonical.
func (r *Runner) List(ctx context.Context) ([]brands.Brand, int, error) {
	ctx, logger, done := r.begin(ctx, "list")
	defer done()

	docs, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	bs, skipped := canonical(docs, logger)
	return bs, skipped, nil
}
