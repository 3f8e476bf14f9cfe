// File: impl_complete.go
// Role: Complete(n) constructor — the complete graph K_n, adapted from the
//       teacher's builder.Complete (builder/impl_complete.go).
package fixtures

import (
	"fmt"

	"github.com/hypergraphstate/hypergraphstate/state"
)

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete returns a Constructor that adds n nodes and an edge i -> j for
// every i < j, in ascending (i, j) order.
func Complete(n int) Constructor {
	return func(s *state.Store, cfg *fixtureConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewEntities)
		}

		for i := 0; i < n; i++ {
			id := cfg.id(i)
			if err := s.AddNode(id, id); err != nil {
				return fmt.Errorf("%s: AddNode(%s): %w", methodComplete, id, err)
			}
		}

		edgeIdx := 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				u, v := cfg.id(i), cfg.id(j)
				edgeID := fmt.Sprintf("%s_%s_%s", methodComplete, u, v)
				if err := s.AddEdge(edgeID, u, v, cfg.tags(edgeIdx)...); err != nil {
					return fmt.Errorf("%s: AddEdge(%s -> %s): %w", methodComplete, u, v, err)
				}
				edgeIdx++
			}
		}
		return nil
	}
}
