package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvedPaths holds the config's paths made absolute against the
// directory the config was loaded from.
type ResolvedPaths struct {
	SourcesDir    string
	OutputPath    string
	WorkspaceRoot string
	CacheFile     string
}

func ResolvePaths(cfg *Config, base string) ResolvedPaths {
	resolved := ResolvedPaths{
		SourcesDir:    ResolveRelative(base, cfg.Sources.Dir),
		WorkspaceRoot: ResolveRelative(base, cfg.Output.WorkspaceRoot),
	}
	if strings.TrimSpace(cfg.Output.Path) != "" {
		resolved.OutputPath = ResolveRelative(base, cfg.Output.Path)
	}
	if strings.TrimSpace(cfg.Parse.CacheFile) != "" {
		resolved.CacheFile = ResolveRelative(base, cfg.Parse.CacheFile)
	}
	return resolved
}

func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}

// FindConfig walks up from start looking for DefaultFile and stops at the
// first directory holding a project marker. It returns "" when none is found.
func FindConfig(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	dir := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	markers := []string{"Package.swift", ".git"}
	for {
		candidate := filepath.Join(dir, DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return ""
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
