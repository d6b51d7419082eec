package git

import (
	"context"
	"sync"
)

// Guard captures the checked-out branch or commit so it can be restored
// after a run that moves HEAD around. Restore runs at most once and is
// best-effort: a failure to restore is reported but never fatal.
type Guard struct {
	dir  string
	ref  string
	once sync.Once
}

// NewGuard records the current branch (or detached commit) of the
// repository at dir.
func NewGuard(ctx context.Context, dir string) (*Guard, error) {
	ref, err := CurrentRef(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &Guard{dir: dir, ref: ref}, nil
}

// Ref returns the captured reference.
func (g *Guard) Ref() string {
	return g.ref
}

// Restore checks the original reference back out. Safe to call from
// multiple exit paths; only the first call does work. The checkout runs
// even when ctx is already cancelled, since restore must happen on
// interrupt too.
func (g *Guard) Restore(ctx context.Context) error {
	var err error
	g.once.Do(func() {
		err = Checkout(context.WithoutCancel(ctx), g.dir, g.ref)
	})
	return err
}
