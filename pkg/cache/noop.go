package cache

import (
	"context"

	"github.com/JaimeStill/callqa/pkg/lifecycle"
)

type noop struct{}

// Noop returns a cache that stores nothing. Every Get misses.
func Noop() System {
	return noop{}
}

func (noop) Get(_ context.Context, name string, _ any) (Key, bool, error) {
	return Key{Name: name}, false, nil
}

func (noop) Set(context.Context, Key, any) error { return nil }
func (noop) Invalidate(context.Context) error    { return nil }
func (noop) Start(*lifecycle.Coordinator) error  { return nil }
