package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swiftslice_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftslice_parse_failures_total",
		Help: "Total number of source files skipped because they could not be read or parsed.",
	})

	IndexedDeclarations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swiftslice_indexed_declarations",
		Help: "Number of declarations in the most recent reference index.",
	})

	IndexedTypeNames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swiftslice_indexed_type_names",
		Help: "Number of distinct declared type names in the most recent reference index.",
	})

	ResolvedDeclarations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swiftslice_resolved_declarations",
		Help: "Number of declarations in the most recent resolved set.",
	})

	RescuedDeclarations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftslice_rescued_declarations_total",
		Help: "Total number of free declarations added by the contributing-file pass.",
	})

	ResolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swiftslice_resolve_seconds",
		Help:    "Time spent on each resolve stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftslice_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swiftslice_watcher_runs_total",
		Help: "Total number of watch-triggered resolves by outcome.",
	}, []string{"outcome"})

	RecordCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swiftslice_record_cache_lookups_total",
		Help: "Total number of record cache lookups by the layer that answered: memory, store or miss.",
	}, []string{"result"})
)
