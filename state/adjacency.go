// File: adjacency.go
// Role: Adjacency & Covered-Edges Indices (component B).
// Contract (§4.B):
//   - Adjacency index: endpoint id -> set of incident edge ids, Graph and
//     Hyper kinds kept apart by EdgeKind rather than a runtime type tag.
//   - Covered-edges index: hyperedge id -> ordered set of graph-edge ids it
//     currently represents. Reverse lookup (edge -> covering hyperedge) is
//     rare per spec and is computed on demand by scanning, not cached.
// AI-HINT (file):
//   - D (container_ops.go) uses these structures to clean up stale
//     hyperedges (crossing edges themselves are found by scanning all
//     graph-edges); C (visibility.go) reads the adjacency index to recheck
//     incident edges, and api.go and validator.go read both. E never touches
//     them.
package state

// adjacencyIndex maps an entity id to the set of incident edge ids, tagged
// by kind so a caller can never mistake a hyperedge id for a graph-edge id.
type adjacencyIndex struct {
	buckets map[string]map[string]EdgeKind // entity id -> edge id -> kind
}

func newAdjacencyIndex() *adjacencyIndex {
	return &adjacencyIndex{buckets: make(map[string]map[string]EdgeKind)}
}

func (a *adjacencyIndex) ensure(id string) {
	if a.buckets[id] == nil {
		a.buckets[id] = make(map[string]EdgeKind)
	}
}

func (a *adjacencyIndex) link(entityID, edgeID string, kind EdgeKind) {
	a.ensure(entityID)
	a.buckets[entityID][edgeID] = kind
}

func (a *adjacencyIndex) unlink(entityID, edgeID string) {
	if bucket, ok := a.buckets[entityID]; ok {
		delete(bucket, edgeID)
		if len(bucket) == 0 {
			delete(a.buckets, entityID)
		}
	}
}

// addGraphEdge registers e's incidence at both endpoints (once if e is a
// self-loop-shaped reference, since From/To buckets are per-entity maps).
func (a *adjacencyIndex) addGraphEdge(e *GraphEdge) {
	a.link(e.Source, e.ID, EdgeKindGraph)
	a.link(e.Target, e.ID, EdgeKindGraph)
}

func (a *adjacencyIndex) removeGraphEdge(e *GraphEdge) {
	a.unlink(e.Source, e.ID)
	a.unlink(e.Target, e.ID)
}

func (a *adjacencyIndex) addHyperEdge(h *HyperEdge) {
	a.link(h.Source, h.ID, EdgeKindHyper)
	a.link(h.Target, h.ID, EdgeKindHyper)
}

func (a *adjacencyIndex) removeHyperEdge(h *HyperEdge) {
	a.unlink(h.Source, h.ID)
	a.unlink(h.Target, h.ID)
}

// incidentIDs returns a snapshot of (edgeID, kind) pairs incident to id.
func (a *adjacencyIndex) incidentIDs(id string) map[string]EdgeKind {
	out := make(map[string]EdgeKind, len(a.buckets[id]))
	for eid, kind := range a.buckets[id] {
		out[eid] = kind
	}
	return out
}

// getAdjacentEdges resolves id's incident edges into fully-populated AnyEdge
// values (component B's public query surface, §4.G's getAdjacentEdges).
func (s *Store) getAdjacentEdges(id string) []AnyEdge {
	ids := s.adjacency.incidentIDs(id)
	out := make([]AnyEdge, 0, len(ids))
	for eid, kind := range ids {
		if kind == EdgeKindHyper {
			if h := s.getHyperEdgeRaw(eid); h != nil {
				out = append(out, newHyperAnyEdge(h))
			}
			continue
		}
		if e := s.getEdgeRaw(eid); e != nil {
			out = append(out, newGraphAnyEdge(e))
		}
	}
	return out
}

// --- covered-edges index ---

// coverEdges registers hyperID as the (sole) coverer of every id in edgeIDs,
// preserving the order they are supplied in (§4.B: "ordered set").
func (s *Store) coverEdges(hyperID string, edgeIDs []string) {
	set := s.covered[hyperID]
	if set == nil {
		set = newOrderedStringSet()
		s.covered[hyperID] = set
	}
	for _, id := range edgeIDs {
		set.add(id)
	}
}

// coveredEdgeIDs returns the (possibly empty) ordered list of graph-edge ids
// hyperID currently covers.
func (s *Store) coveredEdgeIDs(hyperID string) []string {
	set := s.covered[hyperID]
	if set == nil {
		return nil
	}
	return set.values()
}

// dropCovering removes hyperID's covered-edges entry entirely and returns the
// graph-edge ids that were released, for the caller (expand) to decide
// whether to un-hide or re-cover each one.
func (s *Store) dropCovering(hyperID string) []string {
	set := s.covered[hyperID]
	if set == nil {
		return nil
	}
	delete(s.covered, hyperID)
	return set.values()
}

// coveringHyperEdgeOf performs the rare reverse lookup: which hyperedge (if
// any) currently covers edgeID. Computed on demand by scanning, per §4.B.
func (s *Store) coveringHyperEdgeOf(edgeID string) (string, bool) {
	for hyperID, set := range s.covered {
		if set.contains(edgeID) {
			return hyperID, true
		}
	}
	return "", false
}
