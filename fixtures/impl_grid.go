// File: impl_grid.go
// Role: Grid(rows, cols) constructor — a 4-neighborhood orthogonal grid
//       using fixed "r,c" coordinate ids, adapted from the teacher's
//       builder.Grid (builder/impl_grid.go).
package fixtures

import (
	"fmt"

	"github.com/hypergraphstate/hypergraphstate/state"
)

const (
	methodGrid  = "Grid"
	minGridDim  = 1
	gridIDFmt   = "%d,%d"
)

// Grid returns a Constructor that adds a rows x cols grid of nodes with
// fixed "r,c" ids (row-major), connecting each cell to its right and bottom
// neighbor where one exists.
func Grid(rows, cols int) Constructor {
	return func(s *state.Store, cfg *fixtureConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be >= %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewEntities)
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				id := cfg.prefix + fmt.Sprintf(gridIDFmt, r, c)
				if err := s.AddNode(id, id); err != nil {
					return fmt.Errorf("%s: AddNode(%s): %w", methodGrid, id, err)
				}
			}
		}

		edgeIdx := 0
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := cfg.prefix + fmt.Sprintf(gridIDFmt, r, c)

				if c+1 < cols {
					v := cfg.prefix + fmt.Sprintf(gridIDFmt, r, c+1)
					edgeID := fmt.Sprintf("%s_%s_%s", methodGrid, u, v)
					if err := s.AddEdge(edgeID, u, v, cfg.tags(edgeIdx)...); err != nil {
						return fmt.Errorf("%s: AddEdge(%s -> %s): %w", methodGrid, u, v, err)
					}
					edgeIdx++
				}
				if r+1 < rows {
					v := cfg.prefix + fmt.Sprintf(gridIDFmt, r+1, c)
					edgeID := fmt.Sprintf("%s_%s_%s", methodGrid, u, v)
					if err := s.AddEdge(edgeID, u, v, cfg.tags(edgeIdx)...); err != nil {
						return fmt.Errorf("%s: AddEdge(%s -> %s): %w", methodGrid, u, v, err)
					}
					edgeIdx++
				}
			}
		}
		return nil
	}
}
