// File: visibility.go
// Role: Visibility Manager (component C) — derives and incrementally
//       maintains the visibleNodes/visibleContainers/visibleHyperEdges/
//       visibleEdges caches in O(Δ) per mutation.
// Rules (§4.C):
//   - A node is visible iff not hidden.
//   - A container is visible iff not hidden.
//   - A graph-edge is visible iff not hidden AND both endpoints are visible.
//   - A hyperedge is visible iff both endpoints are visible (by construction
//     it is never hidden while it exists; invalid hyperedges are destroyed by
//     D, not merely marked invisible here).
// AI-HINT (file):
//   - This component expresses no policy of its own; D calls into it to hide
//     or reveal entities, then E/D register or drop hyperedges directly.
package state

// visibilityCache tracks which ids currently belong to each of the four
// visible sets. Membership is kept in sync by the setters below; pure reads
// never mutate it.
type visibilityCache struct {
	s *Store

	nodes      map[string]struct{}
	containers map[string]struct{}
	graphEdges map[string]struct{}
	hyperEdges map[string]struct{}
}

func newVisibilityCache(s *Store) *visibilityCache {
	return &visibilityCache{
		s:          s,
		nodes:      make(map[string]struct{}),
		containers: make(map[string]struct{}),
		graphEdges: make(map[string]struct{}),
		hyperEdges: make(map[string]struct{}),
	}
}

// recomputeEdgeVisibility re-evaluates e's membership in the visible
// graph-edge set from its current Hidden flag and its endpoints' visibility.
func (v *visibilityCache) recomputeEdgeVisibility(e *GraphEdge) {
	if e == nil {
		return
	}
	visible := !e.Hidden && v.s.isVisibleEntity(e.Source) && v.s.isVisibleEntity(e.Target)
	if visible {
		v.graphEdges[e.ID] = struct{}{}
	} else {
		delete(v.graphEdges, e.ID)
	}
}

// recomputeHyperEdgeVisibility re-evaluates h's membership in the visible
// hyperedge set from its endpoints' visibility alone (hyperedges carry no
// independent Hidden=true state while they exist).
func (v *visibilityCache) recomputeHyperEdgeVisibility(h *HyperEdge) {
	if h == nil {
		return
	}
	visible := v.s.isVisibleEntity(h.Source) && v.s.isVisibleEntity(h.Target)
	if visible {
		v.hyperEdges[h.ID] = struct{}{}
	} else {
		delete(v.hyperEdges, h.ID)
	}
}

// recheckIncident recomputes visibility for every edge (graph or hyper)
// incident to id, called after id's own Hidden flag changes.
func (v *visibilityCache) recheckIncident(id string) {
	for eid, kind := range v.s.adjacency.incidentIDs(id) {
		if kind == EdgeKindHyper {
			v.recomputeHyperEdgeVisibility(v.s.getHyperEdgeRaw(eid))
		} else {
			v.recomputeEdgeVisibility(v.s.getEdgeRaw(eid))
		}
	}
}

// setNodeHidden is the node entry point: sets Hidden, updates the visible-
// node cache, and rechecks every edge incident to id.
func (v *visibilityCache) setNodeHidden(id string, hidden bool) error {
	n := v.s.getNodeRaw(id)
	if n == nil {
		return ErrNodeNotFound
	}
	n.Hidden = hidden
	if hidden {
		delete(v.nodes, id)
	} else {
		v.nodes[id] = struct{}{}
	}
	v.recheckIncident(id)
	return nil
}

// setContainerHidden is the container entry point, symmetric to
// setNodeHidden. It does not touch Collapsed; D decides that policy.
func (v *visibilityCache) setContainerHidden(id string, hidden bool) error {
	c := v.s.getContainerRaw(id)
	if c == nil {
		return ErrContainerNotFound
	}
	c.Hidden = hidden
	if hidden {
		delete(v.containers, id)
	} else {
		v.containers[id] = struct{}{}
	}
	v.recheckIncident(id)
	return nil
}

// setEdgeHidden is the graph-edge entry point: toggles e.Hidden and updates
// the visible-edge cache. It does not cascade (an edge's own hidden flag has
// no dependents), unlike node/container hiding.
func (v *visibilityCache) setEdgeHidden(id string, hidden bool) error {
	e := v.s.getEdgeRaw(id)
	if e == nil {
		return ErrEdgeNotFound
	}
	e.Hidden = hidden
	v.recomputeEdgeVisibility(e)
	return nil
}

// dropNode removes id from the visible-node cache entirely (used on removal,
// not on hide, since a removed node cannot become visible again).
func (v *visibilityCache) dropNode(id string) { delete(v.nodes, id) }

// dropContainer mirrors dropNode for containers.
func (v *visibilityCache) dropContainer(id string) { delete(v.containers, id) }

// dropGraphEdge mirrors dropNode for graph-edges.
func (v *visibilityCache) dropGraphEdge(id string) { delete(v.graphEdges, id) }

// dropHyperEdge mirrors dropNode for hyperedges.
func (v *visibilityCache) dropHyperEdge(id string) { delete(v.hyperEdges, id) }

// --- snapshot readers (unsorted id sets; api.go sorts for determinism) ---

func (v *visibilityCache) nodeIDs() []string      { return setKeys(v.nodes) }
func (v *visibilityCache) containerIDs() []string { return setKeys(v.containers) }
func (v *visibilityCache) graphEdgeIDs() []string { return setKeys(v.graphEdges) }
func (v *visibilityCache) hyperEdgeIDs() []string { return setKeys(v.hyperEdges) }

func (v *visibilityCache) isNodeVisible(id string) bool {
	_, ok := v.nodes[id]
	return ok
}

func (v *visibilityCache) isContainerVisible(id string) bool {
	_, ok := v.containers[id]
	return ok
}

func setKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
