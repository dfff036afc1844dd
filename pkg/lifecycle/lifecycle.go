// Package lifecycle coordinates startup and shutdown hooks and aggregates
// named readiness probes for the service's backing systems.
package lifecycle

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

// Probe reports whether a backing system can currently serve requests.
type Probe func(ctx context.Context) error

// Status is the outcome of a single readiness probe.
type Status struct {
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Coordinator manages startup and shutdown hooks for the application lifecycle.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	ready      bool
	probes     map[string]Probe
	mu         sync.RWMutex
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
		probes: make(map[string]Probe),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Probe registers a named readiness probe. Registering a name twice replaces
// the earlier probe.
func (c *Coordinator) Probe(name string, p Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes[name] = p
}

// Ready returns true after all startup hooks have completed.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Check runs every registered probe concurrently, each bounded by timeout,
// and returns their results sorted by name. The boolean is true only when
// startup has completed and every probe passed.
func (c *Coordinator) Check(ctx context.Context, timeout time.Duration) ([]Status, bool) {
	c.mu.RLock()
	started := c.ready
	probes := maps.Clone(c.probes)
	c.mu.RUnlock()

	names := slices.Sorted(maps.Keys(probes))
	results := make([]Status, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Go(func() {
			probeCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			results[i] = Status{Name: name, Ready: true}
			if err := probes[name](probeCtx); err != nil {
				results[i].Ready = false
				results[i].Error = err.Error()
			}
		})
	}
	wg.Wait()

	ok := started
	for _, r := range results {
		ok = ok && r.Ready
	}
	return results, ok
}

// WaitForStartup blocks until all startup hooks have completed and sets the ready flag.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
