// Package metrics holds the brandmap counters in a private prometheus
// registry. The CLI can write the registry to a file in the text
// exposition format after a command completes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/brandmap/pkg/errors"
)

const namespace = "brandmap"

// Registry exposes the brandmap counters.
type Registry struct {
	reg *prometheus.Registry

	Imported        prometheus.Counter
	InsertFailures  prometheus.Counter
	Normalized      prometheus.Counter
	ReplaceFailures prometheus.Counter
	Defaulted       *prometheus.CounterVec
	Seeded          prometheus.Counter
	Exported        prometheus.Counter
	Skipped         prometheus.Counter
	OperationSec    *prometheus.HistogramVec
}

// NewRegistry creates and registers all collectors.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	imported := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "imported_total",
		Help: "Raw documents inserted by import.",
	})
	insertFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "insert_failures_total",
		Help: "Raw documents rejected by the store during import.",
	})
	normalized := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "normalized_total",
		Help: "Documents replaced with their canonical form.",
	})
	replaceFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "replace_failures_total",
		Help: "Canonical replaces rejected by the store.",
	})
	defaulted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "field_defaults_total",
		Help: "Fields that fell back to their default value during normalization.",
	}, []string{"field"})
	seeded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "seeded_total",
		Help: "Synthetic brands inserted.",
	})
	exported := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "exported_total",
		Help: "Brands written to export files.",
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "export_skipped_total",
		Help: "Stored documents left out of an export because they are not canonical.",
	})
	opSec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "operation_duration_seconds",
		Help:    "Duration of operator tasks.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	r.MustRegister(imported, insertFailures, normalized, replaceFailures, defaulted, seeded, exported, skipped, opSec)
	return &Registry{
		reg:             r,
		Imported:        imported,
		InsertFailures:  insertFailures,
		Normalized:      normalized,
		ReplaceFailures: replaceFailures,
		Defaulted:       defaulted,
		Seeded:          seeded,
		Exported:        exported,
		Skipped:         skipped,
		OperationSec:    opSec,
	}
}

// Gatherer returns the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes the current values to path, replacing it atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
