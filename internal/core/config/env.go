package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: SWIFTSLICE_[SECTION]_[KEY] (e.g., SWIFTSLICE_PARSE_WORKERS).
// List values are comma separated.
func ApplyEnvOverrides(cfg *Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := envApplier{logger: logger}

	// Sources
	e.setString(&cfg.Sources.Dir, "SWIFTSLICE_SOURCES_DIR")
	e.setList(&cfg.Sources.ExcludeDirs, "SWIFTSLICE_SOURCES_EXCLUDE_DIRS")
	e.setList(&cfg.Sources.ExcludeFiles, "SWIFTSLICE_SOURCES_EXCLUDE_FILES")

	// Builtins
	e.setList(&cfg.Builtins.Extra, "SWIFTSLICE_BUILTINS_EXTRA")

	// Parse
	e.setInt(&cfg.Parse.Workers, "SWIFTSLICE_PARSE_WORKERS")
	e.setInt(&cfg.Parse.CacheSize, "SWIFTSLICE_PARSE_CACHE_SIZE")
	e.setString(&cfg.Parse.CacheFile, "SWIFTSLICE_PARSE_CACHE_FILE")

	// Output
	e.setString(&cfg.Output.Path, "SWIFTSLICE_OUTPUT_PATH")
	e.setString(&cfg.Output.WorkspaceRoot, "SWIFTSLICE_OUTPUT_WORKSPACE_ROOT")
	e.setBool(&cfg.Output.Header, "SWIFTSLICE_OUTPUT_HEADER")

	// Watch
	e.setDuration(&cfg.Watch.Debounce, "SWIFTSLICE_WATCH_DEBOUNCE")
	e.setFloat64(&cfg.Watch.MaxRunsPerSecond, "SWIFTSLICE_WATCH_MAX_RUNS_PER_SECOND")

	// Observability
	e.setString(&cfg.Observability.MetricsAddress, "SWIFTSLICE_OBSERVABILITY_METRICS_ADDRESS")
	e.setString(&cfg.Observability.OTLPEndpoint, "SWIFTSLICE_OBSERVABILITY_OTLP_ENDPOINT")
	e.setString(&cfg.Observability.ServiceName, "SWIFTSLICE_OBSERVABILITY_SERVICE_NAME")

	applyDefaults(cfg)
}

type envApplier struct {
	logger *slog.Logger
}

func (e envApplier) applied(key, val string) {
	e.logger.Debug("applying env override", "key", key, "value", val)
}

func (e envApplier) rejected(key, val string, err error) {
	e.logger.Warn("ignoring invalid env override", "key", key, "value", val, "error", err)
}

func (e envApplier) setString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		e.applied(key, val)
		*target = val
	}
}

func (e envApplier) setList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		var items []string
		for _, item := range strings.Split(val, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		e.applied(key, val)
		*target = items
		if *target == nil {
			*target = []string{}
		}
	}
}

func (e envApplier) setInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(val)
		if err != nil {
			e.rejected(key, val, err)
			return
		}
		e.applied(key, val)
		*target = i
	}
}

func (e envApplier) setBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err != nil {
			e.rejected(key, val, err)
			return
		}
		e.applied(key, val)
		*target = b
	}
}

func (e envApplier) setFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			e.rejected(key, val, err)
			return
		}
		e.applied(key, val)
		*target = f
	}
}

func (e envApplier) setDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(val)
		if err != nil {
			e.rejected(key, val, err)
			return
		}
		e.applied(key, val)
		*target = d
	}
}
