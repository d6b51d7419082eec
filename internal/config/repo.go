package config

import (
	"context"

	"github.com/lbergmann/backport/internal/git"
)

// Per-repository keys in the repo's git config. Only values that vary
// between repositories are persisted there.
const (
	KeyUpstream      = "backport.upstream"
	KeyDifftool      = "backport.difftool"
	KeySensitivity   = "backport.sensitivity"
	KeyConfigureOpts = "backport.configureopts"
	KeyMakeOpts      = "backport.makeopts"
)

// Overlay applies the repository's persisted backport.* values on top
// of the global configuration. Malformed persisted values are reported
// rather than silently ignored.
func Overlay(ctx context.Context, dir string, cfg Config) (Config, error) {
	values := git.ConfigAll(ctx, dir)

	if v, ok := values[KeyUpstream]; ok {
		cfg.Upstream = v
	}
	if v, ok := values[KeyDifftool]; ok {
		cfg.Difftool = v
	}
	if v, ok := values[KeySensitivity]; ok {
		n, err := ParseSensitivity(v)
		if err != nil {
			return cfg, err
		}
		cfg.Sensitivity = n
	}
	if v, ok := values[KeyConfigureOpts]; ok {
		cfg.ConfigureOpts = v
	}
	if v, ok := values[KeyMakeOpts]; ok {
		cfg.MakeOpts = v
	}

	return cfg, nil
}

// Seed persists a value for a key that has none yet. Flags given on the
// first run become the repository's defaults for later runs.
func Seed(ctx context.Context, dir, key, value string) error {
	if value == "" {
		return nil
	}
	return git.ConfigSetIfUnset(ctx, dir, key, value)
}
