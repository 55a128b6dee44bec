// Package metrics counts engine events with Prometheus collectors.
//
// A CLI run is short-lived, so metrics are exported by writing a node_exporter
// textfile rather than by serving an HTTP endpoint.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

const namespace = "stokeys"

// Collector owns a private registry and the counters fed by domain.Hooks.
type Collector struct {
	registry *prometheus.Registry

	LinesParsed       *prometheus.CounterVec
	ParseErrors       prometheus.Counter
	NormalizeWarnings prometheus.Counter
	MigrationsApplied *prometheus.CounterVec
}

// NewCollector creates and registers the counters.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		LinesParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_parsed_total",
				Help:      "Keybind file lines parsed, by line kind.",
			},
			[]string{"kind"},
		),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Keybind file lines that could not be parsed.",
		}),
		NormalizeWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalize_warnings_total",
			Help:      "Command inputs ignored because of an unknown shape.",
		}),
		MigrationsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "migrations_applied_total",
				Help:      "Profile migrations applied, by migration ID.",
			},
			[]string{"migration"},
		),
	}
	c.registry.MustRegister(c.LinesParsed, c.ParseErrors, c.NormalizeWarnings, c.MigrationsApplied)
	return c
}

// Registry returns the private registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Hooks returns callbacks that update the counters.
func (c *Collector) Hooks() domain.Hooks {
	return domain.Hooks{
		OnLineParsed: func(kind domain.LineKind, _ int) {
			c.LinesParsed.WithLabelValues(string(kind)).Inc()
		},
		OnParseError: func(domain.LineError) {
			c.ParseErrors.Inc()
		},
		OnNormalizeWarning: func(domain.NormalizeWarning) {
			c.NormalizeWarnings.Inc()
		},
		OnMigrationApplied: func(e domain.MigrationEvent) {
			c.MigrationsApplied.WithLabelValues(string(e.Migration)).Inc()
		},
	}
}

// WriteTextfile writes the registry in the Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
