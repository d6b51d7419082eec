//go:build integration

package config

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/lbergmann/backport/internal/git"
)

func setupConfigRepo(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	c := exec.Command("git", "init", "-b", "main")
	c.Dir = dir
	if out, err := c.CombinedOutput(); err != nil {
		t.Fatalf("failed to run git init: %v\n%s", err, out)
	}

	return dir
}

func TestOverlay(t *testing.T) {
	ctx := context.Background()
	dir := setupConfigRepo(t)

	// No persisted values: global config passes through untouched.
	cfg, err := Overlay(ctx, dir, Default())
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Overlay() with empty repo = %+v, want defaults", cfg)
	}

	if err := git.ConfigSet(ctx, dir, KeyUpstream, "origin/master"); err != nil {
		t.Fatalf("ConfigSet() error = %v", err)
	}
	if err := git.ConfigSet(ctx, dir, KeySensitivity, "1"); err != nil {
		t.Fatalf("ConfigSet() error = %v", err)
	}

	cfg, err = Overlay(ctx, dir, Default())
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if cfg.Upstream != "origin/master" {
		t.Errorf("Upstream = %q, want origin/master", cfg.Upstream)
	}
	if cfg.Sensitivity != 1 {
		t.Errorf("Sensitivity = %d, want 1", cfg.Sensitivity)
	}
	// Unpersisted keys keep the global value.
	if cfg.Difftool != "meld" {
		t.Errorf("Difftool = %q, want meld", cfg.Difftool)
	}
}

func TestOverlay_BadSensitivity(t *testing.T) {
	ctx := context.Background()
	dir := setupConfigRepo(t)

	if err := git.ConfigSet(ctx, dir, KeySensitivity, "lots"); err != nil {
		t.Fatalf("ConfigSet() error = %v", err)
	}

	if _, err := Overlay(ctx, dir, Default()); err == nil {
		t.Fatal("Overlay() with bad persisted sensitivity = nil, want error")
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	dir := setupConfigRepo(t)

	if err := Seed(ctx, dir, KeyUpstream, "origin/stable"); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	got, err := git.ConfigGet(ctx, dir, KeyUpstream)
	if err != nil {
		t.Fatalf("ConfigGet() error = %v", err)
	}
	if got != "origin/stable" {
		t.Errorf("seeded value = %q, want origin/stable", got)
	}

	// A second seed must not clobber the persisted value.
	if err := Seed(ctx, dir, KeyUpstream, "origin/other"); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	got, _ = git.ConfigGet(ctx, dir, KeyUpstream)
	if got != "origin/stable" {
		t.Errorf("after reseed, value = %q, want origin/stable", got)
	}

	// Empty values are never persisted.
	if err := Seed(ctx, dir, KeyDifftool, ""); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	got, _ = git.ConfigGet(ctx, dir, KeyDifftool)
	if got != "" {
		t.Errorf("empty seed persisted %q", got)
	}
}
