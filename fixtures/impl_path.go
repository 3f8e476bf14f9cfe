// File: impl_path.go
// Role: Path(n) constructor — a simple chain of n nodes, adapted from the
//       teacher's builder.Path (builder/impl_path.go).
package fixtures

import (
	"fmt"

	"github.com/hypergraphstate/hypergraphstate/state"
)

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that adds n nodes and n-1 edges i -> i+1.
func Path(n int) Constructor {
	return func(s *state.Store, cfg *fixtureConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewEntities)
		}

		for i := 0; i < n; i++ {
			id := cfg.id(i)
			if err := s.AddNode(id, id); err != nil {
				return fmt.Errorf("%s: AddNode(%s): %w", methodPath, id, err)
			}
		}

		for i := 1; i < n; i++ {
			u, v := cfg.id(i-1), cfg.id(i)
			edgeID := fmt.Sprintf("%s_%s_%s", methodPath, u, v)
			if err := s.AddEdge(edgeID, u, v, cfg.tags(i-1)...); err != nil {
				return fmt.Errorf("%s: AddEdge(%s -> %s): %w", methodPath, u, v, err)
			}
		}
		return nil
	}
}
