package operations

import (
	"context"

	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/errors"
	"github.com/agentstation/brandmap/pkg/ingest"
)

// Normalize rewrites every stored document in canonical form, one record
// at a time. A failed replace is logged with the record identifier and
// the run continues with the next record.
func (r *Runner) Normalize(ctx context.Context) (NormalizeReport, error) {
	ctx, logger, done := r.begin(ctx, "normalize")
	defer done()

	report := NormalizeReport{Defaulted: map[brands.Field]int{}}

	docs, err := r.store.FindAll(ctx)
	if err != nil {
		return report, err
	}
	report.Total = len(docs)
	if len(docs) == 0 {
		logger.Info().Msg("No brand documents found")
		return report, nil
	}

	for _, doc := range r.ingestor.Prepare(docs) {
		if err := ctx.Err(); err != nil {
			return report, errors.Join(errors.ErrCanceled, err)
		}

		raw := brands.RawRecordFromDocument(doc)
		id, ok := ingest.CoerceIdentifier(raw.ID)
		if !ok {
			report.Failures = append(report.Failures, RecordFailure{
				Err: errors.NewValidationError("_id", raw.ID, "stored document has no usable identifier"),
			})
			r.metrics.ReplaceFailures.Inc()
			logger.Error().Interface("id", raw.ID).Msg("Cannot normalize document without identifier")
			continue
		}

		res := r.normalizer.Resolve(raw)
		b := res.Brand
		b.ID = id

		for _, f := range res.Defaulted {
			report.Defaulted[f]++
			r.metrics.Defaulted.WithLabelValues(f.String()).Inc()
		}
		if len(res.Defaulted) > 0 {
			logger.Debug().
				Str("id", id.Hex()).
				Strs("fields", fieldNames(res.Defaulted)).
				Msg("Fields fell back to defaults")
		}

		if err := r.store.ReplaceValidated(ctx, b); err != nil {
			report.Failures = append(report.Failures, RecordFailure{
				ID:  id.Hex(),
				Err: errors.WrapResource("replace", "brand", id.Hex(), err),
			})
			r.metrics.ReplaceFailures.Inc()
			logger.Error().Str("id", id.Hex()).Err(err).Msg("Failed to update document")
			continue
		}
		report.Normalized++
		r.metrics.Normalized.Inc()
	}

	logger.Info().
		Int("count", report.Normalized).
		Int("failed", report.Failed()).
		Msg("Normalized brand documents")
	return report, nil
}

func fieldNames(fields []brands.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.String()
	}
	return out
}
