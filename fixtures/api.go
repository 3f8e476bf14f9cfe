// File: api.go
// Role: public entry point for the fixtures package, adapted from the
//       teacher's builder.BuildGraph orchestrator (builder/api.go) — one
//       constructor-composing function instead of scattered ad hoc setup in
//       every test and stress benchmark.
package fixtures

import (
	"fmt"

	"github.com/hypergraphstate/hypergraphstate/state"
)

// Constructor applies a deterministic mutation to s using the resolved
// fixtureConfig. Constructors validate parameters early and return sentinel
// errors; they never panic.
type Constructor func(s *state.Store, cfg *fixtureConfig) error

// Build creates a new state.Store with storeOpts, resolves a fixtureConfig
// from opts, and applies every Constructor in order. Constructor errors are
// wrapped with "fixtures: %w" and returned immediately.
func Build(storeOpts []state.StoreOption, opts []Option, cons ...Constructor) (*state.Store, error) {
	s := state.NewStore(storeOpts...)
	if err := Apply(s, opts, cons...); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply resolves a fixtureConfig from opts and applies every Constructor to
// an already-existing store, in order. Useful for composing two or more
// differently-prefixed fixtures (e.g. via WithIDPrefix) into one Store.
func Apply(s *state.Store, opts []Option, cons ...Constructor) error {
	cfg := newFixtureConfig(opts...)

	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("fixtures: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(s, cfg); err != nil {
			return fmt.Errorf("fixtures: %w", err)
		}
	}
	return nil
}
