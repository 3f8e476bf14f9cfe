// File: impl_nested.go
// Role: NestedContainers(depth, fanout) constructor — a balanced container
//       tree with leaf nodes at the bottom, wired with a cross-branch path
//       of edges so collapsing any interior container produces hyperedges
//       (§4.D, §8's literal scenarios). This constructor has no teacher
//       analogue (lvlath's builder only ever produces flat graphs); it is
//       written in the teacher's Constructor-closure idiom but grounded
//       directly on SPEC_FULL.md's collapse/expand stress-testing need.
package fixtures

import (
	"fmt"

	"github.com/hypergraphstate/hypergraphstate/state"
)

const (
	methodNestedContainers = "NestedContainers"
	minNestedDepth         = 1
	minNestedFanout        = 1
)

// NestedContainers returns a Constructor that builds a depth-level tree of
// containers, fanout children per level, with one leaf node at the bottom
// of every branch. A single root container is the tree's lone top-level
// entity. Every pair of adjacent leaves (in construction order) is
// connected by an edge. With fanout >= 2, collapsing any container below
// the root produces at least one hyperedge; the root encloses every leaf,
// so collapsing it on its own produces none.
func NestedContainers(depth, fanout int) Constructor {
	return func(s *state.Store, cfg *fixtureConfig) error {
		if depth < minNestedDepth {
			return fmt.Errorf("%s: depth=%d < min=%d: %w", methodNestedContainers, depth, minNestedDepth, ErrTooFewEntities)
		}
		if fanout < minNestedFanout {
			return fmt.Errorf("%s: fanout=%d < min=%d: %w", methodNestedContainers, fanout, minNestedFanout, ErrTooFewEntities)
		}

		root := cfg.prefix + "root"
		if err := s.AddContainer(root, root); err != nil {
			return fmt.Errorf("%s: AddContainer(%s): %w", methodNestedContainers, root, err)
		}

		frontier := []string{root}
		for level := 0; level < depth; level++ {
			last := level == depth-1
			var next []string
			for _, parent := range frontier {
				for i := 0; i < fanout; i++ {
					if last {
						leafID := fmt.Sprintf("%s_leaf%d", parent, i)
						if err := s.AddNode(leafID, leafID); err != nil {
							return fmt.Errorf("%s: AddNode(%s): %w", methodNestedContainers, leafID, err)
						}
						if err := s.AddChildToContainer(parent, leafID); err != nil {
							return fmt.Errorf("%s: AddChildToContainer(%s,%s): %w", methodNestedContainers, parent, leafID, err)
						}
						next = append(next, leafID)
						continue
					}
					childID := fmt.Sprintf("%s_c%d", parent, i)
					if err := s.AddContainer(childID, childID); err != nil {
						return fmt.Errorf("%s: AddContainer(%s): %w", methodNestedContainers, childID, err)
					}
					if err := s.AddChildToContainer(parent, childID); err != nil {
						return fmt.Errorf("%s: AddChildToContainer(%s,%s): %w", methodNestedContainers, parent, childID, err)
					}
					next = append(next, childID)
				}
			}
			frontier = next
		}

		// frontier now holds every leaf node, in construction order; connect
		// each adjacent pair so the path crosses every container boundary.
		for i := 1; i < len(frontier); i++ {
			u, v := frontier[i-1], frontier[i]
			edgeID := fmt.Sprintf("%s_%s_%s", methodNestedContainers, u, v)
			if err := s.AddEdge(edgeID, u, v, cfg.tags(i-1)...); err != nil {
				return fmt.Errorf("%s: AddEdge(%s -> %s): %w", methodNestedContainers, u, v, err)
			}
		}
		return nil
	}
}
