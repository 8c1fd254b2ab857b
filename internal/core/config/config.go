package config

import (
	"runtime"
	"time"
)

// DefaultFile is the config file looked up in the working directory when no
// --config flag is given.
const DefaultFile = "swiftslice.toml"

type Config struct {
	Sources       Sources       `toml:"sources"`
	Builtins      Builtins      `toml:"builtins"`
	Parse         Parse         `toml:"parse"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
}

type Sources struct {
	Dir string `toml:"dir"`
	// ExcludeDirs and ExcludeFiles are glob patterns matched against the
	// base name and the path relative to Dir.
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeFiles []string `toml:"exclude_files"`
}

type Builtins struct {
	// Extra names are treated as builtin in addition to the embedded list.
	Extra []string `toml:"extra"`
}

type Parse struct {
	Workers int `toml:"workers"`
	// CacheSize bounds how many parsed files are kept in memory between runs.
	CacheSize int `toml:"cache_size"`
	// CacheFile, when set, persists parsed files in a SQLite database so
	// separate invocations can skip unchanged files.
	CacheFile string `toml:"cache_file"`
}

type Output struct {
	Path          string `toml:"path"`
	WorkspaceRoot string `toml:"workspace_root"`
	Header        bool   `toml:"header"`
}

type Watch struct {
	Debounce         time.Duration `toml:"debounce"`
	MaxRunsPerSecond float64       `toml:"max_runs_per_second"`
}

type Observability struct {
	MetricsAddress string `toml:"metrics_address"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
	ServiceName    string `toml:"service_name"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{Output: Output{Header: true}}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Sources.Dir == "" {
		cfg.Sources.Dir = "."
	}
	if cfg.Sources.ExcludeDirs == nil {
		cfg.Sources.ExcludeDirs = []string{".build", ".git", "DerivedData", "Pods", "*Tests"}
	}
	if cfg.Sources.ExcludeFiles == nil {
		cfg.Sources.ExcludeFiles = []string{"*Tests.swift", "Package.swift"}
	}
	if cfg.Parse.Workers <= 0 {
		cfg.Parse.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Parse.CacheSize <= 0 {
		cfg.Parse.CacheSize = 4096
	}
	if cfg.Output.WorkspaceRoot == "" {
		cfg.Output.WorkspaceRoot = ".swiftslice"
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.MaxRunsPerSecond <= 0 {
		cfg.Watch.MaxRunsPerSecond = 2
	}
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = "swiftslice"
	}
}
