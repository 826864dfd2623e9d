package operations

import (
	"context"

	"github.com/agentstation/brandmap/internal/store"
	"github.com/agentstation/brandmap/pkg/errors"
)

// ImportRaw loads raw documents from path and inserts them as-is, bypassing
// validation. Rejected documents are logged and reported; the others are
// still inserted.
func (r *Runner) ImportRaw(ctx context.Context, path string) (ImportReport, error) {
	ctx, logger, done := r.begin(ctx, "import")
	defer done()

	report := ImportReport{Path: path}

	docs, err := r.ingestor.Load(ctx, path)
	if err != nil {
		return report, err
	}
	report.Read = len(docs)
	if len(docs) == 0 {
		logger.Info().Str("path", path).Msg("No brand documents found")
		return report, nil
	}

	result, err := r.store.InsertUnchecked(ctx, docs)
	report.Inserted = result.Inserted()
	report.Failures = result.Failures
	r.metrics.Imported.Add(float64(result.Inserted()))
	r.metrics.InsertFailures.Add(float64(len(result.Failures)))

	var partial *store.PartialInsertError
	switch {
	case err == nil:
	case errors.As(err, &partial):
		for _, f := range partial.Failures {
			logger.Warn().
				Int("index", f.Index).
				Str("id", f.ID).
				Err(f.Err).
				Msg("Document rejected")
		}
	default:
		return report, err
	}

	logger.Info().
		Str("path", path).
		Int("count", report.Inserted).
		Int("failed", len(report.Failures)).
		Msg("Imported raw brand documents")
	return report, nil
}
