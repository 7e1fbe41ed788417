package stagecraft

import (
	"context"
	"sync"
)

// Asset is a loaded scene fragment with its animation clips.
type Asset struct {
	Root  *Node
	Clips []*AnimationClip
}

// Clip returns the clip with the given name, or nil.
func (a *Asset) Clip(name string) *AnimationClip {
	for _, c := range a.Clips {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// LoadState is the state of a Future.
type LoadState uint8

const (
	LoadPending LoadState = iota // not yet resolved
	LoadLoaded                   // resolved with a value
	LoadFailed                   // rejected with an error
)

// Future is a single-fire result. The first Resolve or Reject wins; later
// calls are ignored. It is safe to resolve from one goroutine while another
// polls.
type Future[T any] struct {
	mu    sync.Mutex
	state LoadState
	value T
	err   error
	done  chan struct{}
}

// NewFuture returns a pending future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve completes the future with v. It reports whether this call won.
func (f *Future[T]) Resolve(v T) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != LoadPending {
		return false
	}
	f.state = LoadLoaded
	f.value = v
	close(f.done)
	return true
}

// Reject completes the future with err. It reports whether this call won.
func (f *Future[T]) Reject(err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != LoadPending {
		return false
	}
	f.state = LoadFailed
	f.err = err
	close(f.done)
	return true
}

// State returns the current state.
func (f *Future[T]) State() LoadState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Poll returns the value without blocking. While pending it returns
// ErrAssetNotLoaded.
func (f *Future[T]) Poll() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case LoadLoaded:
		return f.value, nil
	case LoadFailed:
		var zero T
		return zero, f.err
	default:
		var zero T
		return zero, ErrAssetNotLoaded
	}
}

// Wait blocks until the future completes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.Poll()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Loader produces an Asset.
type Loader interface {
	Load(ctx context.Context) (*Asset, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*Asset, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (*Asset, error) {
	return f(ctx)
}

// LoadAsync runs l on a new goroutine and returns a future for its result.
func LoadAsync(ctx context.Context, l Loader) *Future[*Asset] {
	f := NewFuture[*Asset]()
	go func() {
		a, err := l.Load(ctx)
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(a)
	}()
	return f
}

// pendingLoad is a future plus the composition step waiting on it.
type pendingLoad struct {
	poll func() (bool, error)
}

// newPendingLoad wraps f so that fn runs exactly once, on the caller of
// poll, after f resolves.
func newPendingLoad[T any](f *Future[T], fn func(T)) *pendingLoad {
	return &pendingLoad{
		poll: func() (bool, error) {
			v, err := f.Poll()
			if err == ErrAssetNotLoaded {
				return false, nil
			}
			if err != nil {
				return true, err
			}
			fn(v)
			return true, nil
		},
	}
}
