// File: container_ops.go
// Role: Container Operations (component D) — the collapse/expand protocol,
//       recursive child handling, and hyperedge construction/cleanup. This
//       is the hardest component in the package (§4, "This is the hardest
//       component"); every step below is numbered to match §4.D.1/§4.D.2.
// Concurrency:
//   - Callers (api.go) hold Store.mu for the whole operation; internal
//     recursive calls here never re-acquire it (§5's "Lock discipline").
// AI-HINT (file):
//   - collapseContainer/expandContainer never touch the Invariant Validator
//     themselves; api.go's public wrappers disable it around these calls via
//     the stack-discipline token in validator.go, re-enable it, and run a
//     check exactly once, at the boundary.
package state

import "sort"

// isInside reports whether id is a (possibly indirect) descendant of
// containerID, by walking direct-parent pointers (§4.D.4). id itself does
// not count as inside containerID — only strict descendants do.
func (s *Store) isInside(id, containerID string) bool {
	cur := id
	for {
		p, ok := s.getParent(cur)
		if !ok {
			return false
		}
		if p == containerID {
			return true
		}
		cur = p
	}
}

// lowestVisibleAncestor returns e itself if currently visible, otherwise the
// nearest ancestor that is visible (§4.D.3). An entity with no parent that is
// still not visible is a malformed-input degenerate case; it is returned
// as-is and logged, per the helper's documented fallback.
func (s *Store) lowestVisibleAncestor(id string) string {
	if s.isVisibleEntity(id) {
		return id
	}
	cur := id
	for {
		p, ok := s.getParent(cur)
		if !ok {
			s.logger.Warn("lowest visible ancestor hit a root without becoming visible", "entity", id)
			return id
		}
		if s.isVisibleEntity(p) {
			return p
		}
		cur = p
	}
}

func (s *Store) isCollapsedContainer(id string) bool {
	c := s.getContainerRaw(id)
	return c != nil && c.Collapsed
}

// isHyperEdgeValid reports whether h still satisfies invariant 5 (§3): both
// endpoints exist and are visible, and at least one is a collapsed
// container. A hyperedge that stops satisfying this must be destroyed
// immediately, not merely hidden (§4.C).
func (s *Store) isHyperEdgeValid(h *HyperEdge) bool {
	if !s.isVisibleEntity(h.Source) || !s.isVisibleEntity(h.Target) {
		return false
	}
	return s.isCollapsedContainer(h.Source) || s.isCollapsedContainer(h.Target)
}

// crossingEdges returns, in deterministic id order, every Graph-edge with
// exactly one endpoint inside containerID's subtree (§4.D.1 step 4,
// GLOSSARY "Crossing edge"). It is computed on demand by a full scan, which
// is the same tradeoff the teacher's Degree() makes (§4.G notes this is
// intentional: there is no reverse containment index to keep incrementally
// consistent, and this is tuned for 10^3-10^4 node graphs, not arbitrary
// scale).
func (s *Store) crossingEdges(containerID string) []*GraphEdge {
	var out []*GraphEdge
	for _, e := range s.edges {
		srcIn := s.isInside(e.Source, containerID)
		tgtIn := s.isInside(e.Target, containerID)
		if srcIn != tgtIn {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// destroyHyperEdge removes h from every index and cache, releasing its
// covered-edges bindings, and returns the graph-edge ids that were covered
// so the caller (expand's step 4, or collapse's step 3) can decide what
// happens to each one next.
func (s *Store) destroyHyperEdge(h *HyperEdge) []string {
	released := s.dropCovering(h.ID)
	s.adjacency.removeHyperEdge(h)
	s.visible.dropHyperEdge(h.ID)
	s.deleteHyperEdgeRaw(h.ID)
	return released
}

// cleanInvalidHyperEdgesIncidentTo destroys every hyperedge incident to id
// that no longer satisfies isHyperEdgeValid, used after id's own visibility
// just changed (§4.D.1 step 3).
func (s *Store) cleanInvalidHyperEdgesIncidentTo(id string) {
	for eid, kind := range s.adjacency.incidentIDs(id) {
		if kind != EdgeKindHyper {
			continue
		}
		h := s.getHyperEdgeRaw(eid)
		if h == nil {
			continue
		}
		if !s.isHyperEdgeValid(h) {
			s.destroyHyperEdge(h)
		}
	}
}

// upsertHyperEdge hides newEdgeIDs, registers (or extends) the hyperedge
// from->to's covering, and recomputes its aggregated tags from every edge it
// now covers. It is the single creation/merge path used by both collapse's
// outer-hyperedge construction and expand's neighbor re-covering, which keeps
// "at most one hyperedge per ordered endpoint pair" (invariant in §3) true
// even when the same pair is discovered incrementally across calls.
func (s *Store) upsertHyperEdge(from, to string, newEdgeIDs []string) {
	if len(newEdgeIDs) == 0 {
		return
	}
	for _, id := range newEdgeIDs {
		_ = s.visible.setEdgeHidden(id, true)
	}
	hid := hyperEdgeID(from, to)
	s.coverEdges(hid, newEdgeIDs)

	tagLists := make([][]Tag, 0, len(newEdgeIDs))
	for _, eid := range s.coveredEdgeIDs(hid) {
		if e := s.getEdgeRaw(eid); e != nil {
			tagLists = append(tagLists, e.Tags)
		}
	}
	tags := s.vocabulary.Aggregate(tagLists)

	if h := s.getHyperEdgeRaw(hid); h != nil {
		h.Tags = tags
		s.visible.recomputeHyperEdgeVisibility(h)
		return
	}
	h := &HyperEdge{ID: hid, Source: from, Target: to, Tags: tags}
	s.putHyperEdge(h)
	s.adjacency.addHyperEdge(h)
	s.visible.recomputeHyperEdgeVisibility(h)
}

// constructOuterHyperEdges finds every crossing edge of containerID, groups
// it by (lowestVisibleAncestor(source), lowestVisibleAncestor(target)), and
// upserts one hyperedge per non-empty, non-self-referencing group (§4.D.1
// step 4; also reused verbatim by expand's step 5 "re-cover still-collapsed
// neighbors", §4.D.2). Self-references (from == to) are skipped per the
// resolved open question in §9.
func (s *Store) constructOuterHyperEdges(containerID string) {
	type pair struct{ from, to string }
	groups := make(map[pair][]string)

	for _, e := range s.crossingEdges(containerID) {
		from := s.lowestVisibleAncestor(e.Source)
		to := s.lowestVisibleAncestor(e.Target)
		if from == to {
			s.logger.Warn("skipping self-referencing crossing edge", "edge", e.ID, "container", containerID)
			continue
		}
		key := pair{from, to}
		groups[key] = append(groups[key], e.ID)
	}

	keys := make([]pair, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})
	for _, k := range keys {
		s.upsertHyperEdge(k.from, k.to, groups[k])
	}
}

// collapseContainer implements §4.D.1 end to end. Validation is expected to
// already be disabled by the caller (api.go's CollapseContainer).
func (s *Store) collapseContainer(containerID string) error {
	c := s.getContainerRaw(containerID)
	if c == nil {
		return ErrContainerNotFound
	}
	if c.Collapsed {
		return nil // idempotent no-op, §4.D.6/P7
	}

	// Step 1: recursively collapse expanded child containers first, in
	// children order, so their crossing edges are already covered by the
	// time this container searches for its own.
	for _, childID := range c.Children {
		if child := s.getContainerRaw(childID); child != nil && !child.Collapsed {
			if err := s.collapseContainer(childID); err != nil {
				return err
			}
		}
	}

	// Step 2: hide direct children.
	for _, childID := range c.Children {
		if s.hasNode(childID) {
			_ = s.visible.setNodeHidden(childID, true)
		} else if s.hasContainer(childID) {
			_ = s.visible.setContainerHidden(childID, true)
		}
	}

	// Step 3: clean now-invalid hyperedges incident to any hidden child,
	// before they can double-cover edges the outer construction is about to
	// re-discover.
	for _, childID := range c.Children {
		s.cleanInvalidHyperEdgesIncidentTo(childID)
	}

	// Step 4: construct this container's own outer hyperedges.
	s.constructOuterHyperEdges(containerID)

	// Step 5: mark collapsed; the visibility cache needs no extra work here
	// since C's own Hidden flag is untouched by collapsing it.
	c.Collapsed = true

	return nil
}

// expandContainer implements §4.D.2 end to end (non-recursive: descendants
// keep whatever collapsed state they already had).
func (s *Store) expandContainer(containerID string) error {
	c := s.getContainerRaw(containerID)
	if c == nil {
		return ErrContainerNotFound
	}
	if !c.Collapsed {
		return nil // idempotent no-op, §4.D.6/P7
	}

	// Step 1: mark expanded first; later steps in this function test
	// container state and must see the new value.
	c.Collapsed = false

	// Step 2: remove every hyperedge with an endpoint at C; an expanded
	// container can never be a hyperedge endpoint (invariant 5).
	var released []string
	for eid, kind := range s.adjacency.incidentIDs(containerID) {
		if kind != EdgeKindHyper {
			continue
		}
		if h := s.getHyperEdgeRaw(eid); h != nil {
			released = append(released, s.destroyHyperEdge(h)...)
		}
	}

	// Step 3: un-hide direct children; a child container retains its own
	// Collapsed state (it may still be collapsed, just no longer hidden).
	for _, childID := range c.Children {
		if s.hasNode(childID) {
			_ = s.visible.setNodeHidden(childID, false)
		} else if s.hasContainer(childID) {
			_ = s.visible.setContainerHidden(childID, false)
		}
	}

	// Step 4: restore crossing graph-edges that were released in step 2,
	// when both their endpoints are now visible; otherwise they stay hidden
	// and will be re-covered in step 5.
	for _, eid := range released {
		e := s.getEdgeRaw(eid)
		if e == nil {
			continue
		}
		if s.isVisibleEntity(e.Source) && s.isVisibleEntity(e.Target) {
			_ = s.visible.setEdgeHidden(eid, false)
		}
	}

	// Step 5: re-cover still-collapsed neighbors of C's newly revealed
	// contents, so edges that formerly traversed C<->neighbor are covered by
	// neighbor-only hyperedges.
	for _, neighbor := range s.collapsedNeighborsOfRevealed(c.Children) {
		s.constructOuterHyperEdges(neighbor)
	}

	return nil
}

// expandContainerRecursive expands containerID, then recurses into every
// direct child container, so every collapsed descendant ends up expanded
// (expandContainer is a no-op on an already-expanded one) (§9's resolved open
// question: source exposes both expand and expandRecursive; this is the
// latter, defined purely in terms of expandContainer).
func (s *Store) expandContainerRecursive(containerID string) error {
	c := s.getContainerRaw(containerID)
	if c == nil {
		return ErrContainerNotFound
	}
	if err := s.expandContainer(containerID); err != nil {
		return err
	}
	for _, childID := range c.Children {
		if s.hasContainer(childID) {
			if err := s.expandContainerRecursive(childID); err != nil {
				return err
			}
		}
	}
	return nil
}

// collapsedNeighborsOfRevealed finds every collapsed-container "neighbor" of
// C's newly revealed contents (§4.D.2 step 5): a revealed child container
// that is itself still collapsed is trivially its own neighbor (it must be
// re-covered against whatever is now visible around it); beyond that, every
// edge touching a revealed child is walked and its opposite endpoint's
// lowest visible ancestor is kept if that ancestor is a collapsed container.
func (s *Store) collapsedNeighborsOfRevealed(revealedChildren []string) []string {
	seen := make(map[string]bool)
	var neighbors []string
	add := func(id string) {
		if seen[id] || !s.isCollapsedContainer(id) {
			return
		}
		seen[id] = true
		neighbors = append(neighbors, id)
	}

	for _, childID := range revealedChildren {
		add(childID)

		var edges []*GraphEdge
		childIsContainer := s.hasContainer(childID)
		if childIsContainer {
			edges = s.crossingEdges(childID)
		} else {
			for _, ae := range s.getAdjacentEdges(childID) {
				if ae.Kind == EdgeKindGraph {
					edges = append(edges, ae.Graph)
				}
			}
		}

		onChildSide := func(id string) bool {
			if childIsContainer {
				return id == childID || s.isInside(id, childID)
			}
			return id == childID
		}

		for _, e := range edges {
			var opposite string
			if onChildSide(e.Source) {
				opposite = e.Target
			} else {
				opposite = e.Source
			}
			add(s.lowestVisibleAncestor(opposite))
		}
	}

	sort.Strings(neighbors)
	return neighbors
}
