package main

import (
	"context"
	"fmt"

	"github.com/lbergmann/backport/internal/config"
	"github.com/lbergmann/backport/internal/git"
)

// requireRepo fails when the working directory is not inside a git
// work tree. Every core command needs one.
func requireRepo(ctx context.Context) error {
	if !git.IsInsideRepo(ctx, workDir) {
		return fmt.Errorf("not in a git repository")
	}
	return nil
}

// effectiveConfig layers the repository's persisted values over the
// global config. Flag overrides are applied by the callers afterwards.
func effectiveConfig(ctx context.Context) (config.Config, error) {
	return config.Overlay(ctx, workDir, cfg)
}
