package git

import (
	"context"
	"fmt"
	"strings"
)

// ConfigGet reads a key from the repository's local config store.
// Returns "" without error when the key is unset.
func ConfigGet(ctx context.Context, dir, key string) (string, error) {
	out, err := outputGit(ctx, dir, "config", "--local", "--get", key)
	if err != nil {
		// git config exits 1 for unset keys; callers can't tell that
		// apart from other failures through exec, so treat any lookup
		// failure as unset.
		return "", nil
	}
	return strings.TrimSpace(string(out)), nil
}

// ConfigSet writes a key into the repository's local config store.
func ConfigSet(ctx context.Context, dir, key, value string) error {
	if err := runGit(ctx, dir, "config", "--local", key, value); err != nil {
		return fmt.Errorf("set config %s: %v", key, err)
	}
	return nil
}

// ConfigSetIfUnset writes a key only when no value is persisted yet.
// Used to seed resolved defaults on first run without clobbering
// anything the user configured.
func ConfigSetIfUnset(ctx context.Context, dir, key, value string) error {
	current, err := ConfigGet(ctx, dir, key)
	if err != nil {
		return err
	}
	if current != "" {
		return nil
	}
	return ConfigSet(ctx, dir, key, value)
}

// ConfigAll reads every backport.* key from the repository's local
// config store in one pass.
func ConfigAll(ctx context.Context, dir string) map[string]string {
	values := make(map[string]string)

	out, err := outputGit(ctx, dir, "config", "--local", "--get-regexp", `^backport\.`)
	if err != nil {
		// No keys persisted yet.
		return values
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		values[key] = value
	}
	return values
}
