package asyncx

import (
	"context"
	"sync"
)

// result holds the outcome of an async computation.
type result[T any] struct {
	value T
	err   error
}

// Future represents a value that will be available asynchronously.
// Create one with Run and retrieve its value with Await.
type Future[T any] struct {
	ch  chan result[T]
	res *result[T]
	mu  sync.Mutex
}

// Run executes fn in a goroutine and returns a Future for its result.
// The goroutine starts immediately.
func Run[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{ch: make(chan result[T], 1)}
	go func() {
		v, err := fn()
		f.ch <- result[T]{value: v, err: err}
	}()
	return f
}

// Await blocks until the Future completes and returns its value and error.
// Safe to call multiple times; subsequent calls return the cached result.
func (f *Future[T]) Await() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.res == nil {
		r := <-f.ch
		f.res = &r
	}
	return f.res.value, f.res.err
}

// Result pairs a value with the error that produced it.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the result carries no error.
func (r Result[T]) Ok() bool { return r.Err == nil }

// AllSettled runs all fns concurrently and waits for every one to finish.
// It never short-circuits: it always returns one Result per fn, in input
// order, so callers keep attribution even when some functions fail.
func AllSettled[T any](ctx context.Context, fns ...func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(fns))

	var wg sync.WaitGroup
	wg.Add(len(fns))
	for i, fn := range fns {
		i, fn := i, fn
		go func() {
			defer wg.Done()
			results[i].Value, results[i].Err = fn(ctx)
		}()
	}
	wg.Wait()

	return results
}
