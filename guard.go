package swiftbatch

import (
	"context"
	"sync"
	"sync/atomic"
)

type guardKey struct{}

// guardToken marks a context as running inside a guarded call.
type guardToken struct {
	guard  *callGuard
	active atomic.Bool
}

// callGuard serializes state-mutating entry points and rejects re-entry.
//
// Entering marks the returned context with a token. Sub-calls made during the guarded call
// receive that context, so a sub-call that re-enters any guarded entry point is rejected rather
// than blocking on the lock it is already running under. The token is deactivated on release.
type callGuard struct {
	mu sync.Mutex
}

// enter acquires the guard. The returned release func must be called on every exit path.
func (g *callGuard) enter(ctx context.Context) (context.Context, func(), error) {
	if g.held(ctx) {
		return ctx, func() {}, ErrReentrantCall
	}

	g.mu.Lock()

	token := &guardToken{guard: g}
	token.active.Store(true)

	var once sync.Once
	release := func() {
		once.Do(func() {
			token.active.Store(false)
			g.mu.Unlock()
		})
	}

	return context.WithValue(ctx, guardKey{}, token), release, nil
}

// held reports whether ctx was derived from a call currently holding this guard.
func (g *callGuard) held(ctx context.Context) bool {
	token, ok := ctx.Value(guardKey{}).(*guardToken)

	return ok && token.guard == g && token.active.Load()
}
