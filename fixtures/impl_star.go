// File: impl_star.go
// Role: Star(n) constructor — one hub plus n-1 leaves, adapted from the
//       teacher's builder.Star (builder/impl_star.go).
package fixtures

import (
	"fmt"

	"github.com/hypergraphstate/hypergraphstate/state"
)

const (
	methodStar    = "Star"
	minStarNodes  = 2
	centerNodeTag = "center"
)

// Star returns a Constructor that adds a hub node (cfg-prefixed, fixed
// suffix "center") and n-1 leaves, each connected hub -> leaf.
func Star(n int) Constructor {
	return func(s *state.Store, cfg *fixtureConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewEntities)
		}

		hub := cfg.prefix + centerNodeTag
		if err := s.AddNode(hub, hub); err != nil {
			return fmt.Errorf("%s: AddNode(%s): %w", methodStar, hub, err)
		}

		for i := 0; i < n-1; i++ {
			leaf := cfg.id(i)
			if err := s.AddNode(leaf, leaf); err != nil {
				return fmt.Errorf("%s: AddNode(%s): %w", methodStar, leaf, err)
			}
			edgeID := fmt.Sprintf("%s_%s_%s", methodStar, hub, leaf)
			if err := s.AddEdge(edgeID, hub, leaf, cfg.tags(i)...); err != nil {
				return fmt.Errorf("%s: AddEdge(%s -> %s): %w", methodStar, hub, leaf, err)
			}
		}
		return nil
	}
}
