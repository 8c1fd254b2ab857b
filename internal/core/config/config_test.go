package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	content := `
[sources]
dir = "App/Sources"
exclude_dirs = ["Generated"]
exclude_files = ["*+Mock.swift"]

[builtins]
extra = ["Defaults", "Lottie"]

[parse]
workers = 3

[output]
path = "build/Slice.swift"
header = false

[watch]
debounce = "1s"
max_runs_per_second = 0.5

[observability]
metrics_address = "127.0.0.1:9464"
`
	cfg, err := Decode(content)
	require.NoError(t, err)

	assert.Equal(t, "App/Sources", cfg.Sources.Dir)
	assert.Equal(t, []string{"Generated"}, cfg.Sources.ExcludeDirs)
	assert.Equal(t, []string{"*+Mock.swift"}, cfg.Sources.ExcludeFiles)
	assert.Equal(t, []string{"Defaults", "Lottie"}, cfg.Builtins.Extra)
	assert.Equal(t, 3, cfg.Parse.Workers)
	assert.Equal(t, "build/Slice.swift", cfg.Output.Path)
	assert.False(t, cfg.Output.Header)
	assert.Equal(t, ".swiftslice", cfg.Output.WorkspaceRoot)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, 0.5, cfg.Watch.MaxRunsPerSecond)
	assert.Equal(t, "127.0.0.1:9464", cfg.Observability.MetricsAddress)
	assert.Equal(t, "swiftslice", cfg.Observability.ServiceName)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Sources.Dir)
	assert.Contains(t, cfg.Sources.ExcludeDirs, ".build")
	assert.Contains(t, cfg.Sources.ExcludeDirs, "DerivedData")
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Parse.Workers)
	assert.Equal(t, 4096, cfg.Parse.CacheSize)
	assert.True(t, cfg.Output.Header)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 2.0, cfg.Watch.MaxRunsPerSecond)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[sources]\ndirectory = \"x\"\n", "unknown config key"},
		{"bad glob", "[sources]\nexclude_dirs = [\"{Tests,Mocks\"]\n", "invalid exclude pattern"},
		{"empty glob", "[sources]\nexclude_files = [\" \"]\n", "must not be empty"},
		{"dotted builtin", "[builtins]\nextra = [\"Foo.Bar\"]\n", "invalid extra name"},
		{"runaway watch", "[watch]\nmax_runs_per_second = 1000.0\n", "at most 100"},
		{"bad metrics address", "[observability]\nmetrics_address = \"9464\"\n", "invalid metrics_address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, DefaultFile)

	cfg, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(missing, false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(missing, []byte("[parse]\nworkers = 2\n"), 0o644))
	cfg, err = Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Parse.Workers)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SWIFTSLICE_SOURCES_DIR", "/srv/app")
	t.Setenv("SWIFTSLICE_SOURCES_EXCLUDE_DIRS", "Pods, Vendor ,")
	t.Setenv("SWIFTSLICE_PARSE_WORKERS", "7")
	t.Setenv("SWIFTSLICE_PARSE_CACHE_SIZE", "16")
	t.Setenv("SWIFTSLICE_OUTPUT_HEADER", "FALSE")
	t.Setenv("SWIFTSLICE_WATCH_DEBOUNCE", "50ms")
	t.Setenv("SWIFTSLICE_WATCH_MAX_RUNS_PER_SECOND", "not-a-number")
	t.Setenv("SWIFTSLICE_OBSERVABILITY_OTLP_ENDPOINT", "localhost:4317")

	cfg := Default()
	ApplyEnvOverrides(cfg, nil)

	assert.Equal(t, "/srv/app", cfg.Sources.Dir)
	assert.Equal(t, []string{"Pods", "Vendor"}, cfg.Sources.ExcludeDirs)
	assert.Equal(t, 7, cfg.Parse.Workers)
	assert.Equal(t, 16, cfg.Parse.CacheSize)
	assert.False(t, cfg.Output.Header)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 2.0, cfg.Watch.MaxRunsPerSecond)
	assert.Equal(t, "localhost:4317", cfg.Observability.OTLPEndpoint)
}

func TestResolvePaths(t *testing.T) {
	cfg := Default()
	cfg.Sources.Dir = "Sources"
	cfg.Output.Path = "/tmp/out.swift"

	got := ResolvePaths(cfg, "/work/app")

	assert.Equal(t, filepath.Clean("/work/app/Sources"), got.SourcesDir)
	assert.Equal(t, filepath.Clean("/tmp/out.swift"), got.OutputPath)
	assert.Equal(t, filepath.Clean("/work/app/.swiftslice"), got.WorkspaceRoot)
	assert.Empty(t, got.CacheFile)

	cfg.Parse.CacheFile = ".swiftslice/records.db"
	got = ResolvePaths(cfg, "/work/app")
	assert.Equal(t, filepath.Clean("/work/app/.swiftslice/records.db"), got.CacheFile)
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "App", "Views")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Package.swift"), nil, 0o644))

	assert.Empty(t, FindConfig(nested))

	cfgPath := filepath.Join(root, "App", DefaultFile)
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o644))
	assert.Equal(t, cfgPath, FindConfig(nested))
}
