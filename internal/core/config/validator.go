package config

import (
	"fmt"
	"net"
	"strings"

	"swiftslice/internal/shared/util"
)

func validate(cfg *Config) error {
	if err := validateSources(cfg); err != nil {
		return err
	}
	if err := validateBuiltins(cfg); err != nil {
		return err
	}
	if err := validateWatch(cfg); err != nil {
		return err
	}
	return validateObservability(cfg)
}

func validateSources(cfg *Config) error {
	for _, pattern := range append(append([]string(nil), cfg.Sources.ExcludeDirs...), cfg.Sources.ExcludeFiles...) {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("sources: exclude patterns must not be empty")
		}
		if err := util.ValidatePattern(pattern); err != nil {
			return fmt.Errorf("sources: invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func validateBuiltins(cfg *Config) error {
	for _, name := range cfg.Builtins.Extra {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t.") {
			return fmt.Errorf("builtins: invalid extra name %q", name)
		}
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.MaxRunsPerSecond > 100 {
		return fmt.Errorf("watch: max_runs_per_second must be at most 100, got %g", cfg.Watch.MaxRunsPerSecond)
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if addr := cfg.Observability.MetricsAddress; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("observability: invalid metrics_address %q: %w", addr, err)
		}
	}
	return nil
}
