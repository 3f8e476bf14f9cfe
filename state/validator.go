// File: validator.go
// Role: Invariant Validator (component F) — the togglable structural
//       checker run at every public mutation's boundary (§4.F).
// Contract:
//   - disableValidation/resetValidation implement stack discipline (a depth
//     counter, not a boolean), so nested internal calls that each disable
//     and re-enable validation around their own work never prematurely
//     re-enable it while an outer caller is still mid-mutation.
//   - Check walks the whole store and returns every invariant violation
//     found, aggregated into a single InvariantError rather than stopping at
//     the first one, so a test failure shows the whole picture at once.
// AI-HINT (file):
//   - The eight invariants below are numbered to match §3's "Core Structural
//     Invariants" list; keep the numbering in sync if that list changes.
package state

import (
	"fmt"
	"sort"
	"strings"
)

// validationToken is returned by disableValidation and consumed by
// resetValidation; it carries no data of its own, its only purpose is to
// make "did I actually call disableValidation before this" a compile-time
// shape rather than a convention.
type validationToken struct{}

// disableValidation increments the suppression depth and returns a token to
// hand back to resetValidation. Safe to call reentrantly. The public
// wrappers in api.go disable validation once around each mutation; the
// recursive collapse/expand helpers they call never touch the depth.
func (s *Store) disableValidation() validationToken {
	s.validationDepth++
	return validationToken{}
}

// resetValidation decrements the suppression depth. Once it reaches zero the
// caller that started the outermost disable is expected to invoke Check
// itself; resetValidation never runs Check on its own.
func (s *Store) resetValidation(validationToken) {
	if s.validationDepth > 0 {
		s.validationDepth--
	}
}

// validationSuppressed reports whether internal mutation is currently
// mid-flight and structural checks should be skipped.
func (s *Store) validationSuppressed() bool {
	return s.validationDepth > 0
}

// InvariantError aggregates every structural violation Check found in a
// single pass. Its Unwrap method exposes the individual violations to
// errors.Is/errors.As callers.
type InvariantError struct {
	Violations []error
}

func (e *InvariantError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("state: %d invariant violation(s): %s", len(msgs), strings.Join(msgs, "; "))
}

func (e *InvariantError) Unwrap() []error { return e.Violations }

// Check walks the entire store and returns nil if every invariant in §3
// holds, or an *InvariantError aggregating every violation found otherwise.
// It is normally run once, at the end of a public mutation, by api.go.
func (s *Store) Check() error {
	var violations []error

	violations = append(violations, s.checkEdgeEndpointsExist()...)
	violations = append(violations, s.checkEdgeEndpointVisibility()...)
	violations = append(violations, s.checkHiddenContainerConsistency()...)
	violations = append(violations, s.checkCollapsedContainerConsistency()...)
	violations = append(violations, s.checkHyperEdgeWellFormed()...)
	violations = append(violations, s.checkCoveringCompleteness()...)
	violations = append(violations, s.checkNoOrphanCovering()...)
	violations = append(violations, s.checkAdjacencyConsistency()...)

	if len(violations) == 0 {
		return nil
	}
	return &InvariantError{Violations: violations}
}

// sortedEdgeIDs gives deterministic iteration order for error messages.
func (s *Store) sortedEdgeIDs() []string {
	ids := make([]string, 0, len(s.edges))
	for id := range s.edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) sortedHyperEdgeIDs() []string {
	ids := make([]string, 0, len(s.hyperEdges))
	for id := range s.hyperEdges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// checkEdgeEndpointsExist: invariant 1 — every Graph-edge and
// hyperedge endpoint must name an entity that actually exists.
func (s *Store) checkEdgeEndpointsExist() []error {
	var errs []error
	for _, id := range s.sortedEdgeIDs() {
		e := s.edges[id]
		if !s.exists(e.Source) {
			errs = append(errs, fmt.Errorf("edge %q: source %q does not exist", e.ID, e.Source))
		}
		if !s.exists(e.Target) {
			errs = append(errs, fmt.Errorf("edge %q: target %q does not exist", e.ID, e.Target))
		}
	}
	for _, id := range s.sortedHyperEdgeIDs() {
		h := s.hyperEdges[id]
		if !s.exists(h.Source) {
			errs = append(errs, fmt.Errorf("hyperedge %q: source %q does not exist", h.ID, h.Source))
		}
		if !s.exists(h.Target) {
			errs = append(errs, fmt.Errorf("hyperedge %q: target %q does not exist", h.ID, h.Target))
		}
	}
	return errs
}

// checkEdgeEndpointVisibility: invariant 2 — every Graph-edge in the
// visible-edge cache must have visible endpoints (an edge whose Hidden flag
// is false but which sits inside a collapsed container is not visible), and
// every existing hyperedge's endpoints must be visible (a hyperedge is never
// independently hidden while it exists; if its endpoints stop being visible
// it must be destroyed, not merely hidden).
func (s *Store) checkEdgeEndpointVisibility() []error {
	var errs []error
	for _, id := range s.sortedEdgeIDs() {
		e := s.edges[id]
		if _, visible := s.visible.graphEdges[id]; !visible {
			continue
		}
		if !s.isVisibleEntity(e.Source) || !s.isVisibleEntity(e.Target) {
			errs = append(errs, fmt.Errorf("edge %q is visible but an endpoint is hidden", e.ID))
		}
	}
	for _, id := range s.sortedHyperEdgeIDs() {
		h := s.hyperEdges[id]
		if !s.isVisibleEntity(h.Source) || !s.isVisibleEntity(h.Target) {
			errs = append(errs, fmt.Errorf("hyperedge %q has a hidden endpoint", h.ID))
		}
	}
	return errs
}

// checkHiddenContainerConsistency: invariant 3 — every direct child of a
// hidden container must itself be hidden (hidden is contagious downward,
// independent of collapse).
func (s *Store) checkHiddenContainerConsistency() []error {
	var errs []error
	ids := make([]string, 0, len(s.containers))
	for id := range s.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c := s.containers[id]
		if !c.Hidden {
			continue
		}
		for _, childID := range c.Children {
			if !s.isChildHidden(childID) {
				errs = append(errs, fmt.Errorf("container %q is hidden but child %q is not", id, childID))
			}
		}
	}
	return errs
}

func (s *Store) isChildHidden(id string) bool {
	if n := s.getNodeRaw(id); n != nil {
		return n.Hidden
	}
	if c := s.getContainerRaw(id); c != nil {
		return c.Hidden
	}
	return true
}

// checkCollapsedContainerConsistency: invariant 4 — every direct child of a
// collapsed container must be hidden (collapsing always hides children,
// regardless of the container's own hidden state).
func (s *Store) checkCollapsedContainerConsistency() []error {
	var errs []error
	ids := make([]string, 0, len(s.containers))
	for id := range s.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c := s.containers[id]
		if !c.Collapsed {
			continue
		}
		for _, childID := range c.Children {
			if !s.isChildHidden(childID) {
				errs = append(errs, fmt.Errorf("container %q is collapsed but child %q is not hidden", id, childID))
			}
		}
	}
	return errs
}

// checkHyperEdgeWellFormed: invariant 5 — every hyperedge has at least one
// endpoint that is a collapsed container, and its two endpoints differ.
func (s *Store) checkHyperEdgeWellFormed() []error {
	var errs []error
	for _, id := range s.sortedHyperEdgeIDs() {
		h := s.hyperEdges[id]
		if h.Source == h.Target {
			errs = append(errs, fmt.Errorf("hyperedge %q has identical source and target %q", h.ID, h.Source))
			continue
		}
		if !s.isCollapsedContainer(h.Source) && !s.isCollapsedContainer(h.Target) {
			errs = append(errs, fmt.Errorf("hyperedge %q has no collapsed-container endpoint", h.ID))
		}
	}
	return errs
}

// checkCoveringCompleteness: invariant 6 — every Graph-edge crossing a
// collapsed container's boundary must be hidden and covered by exactly one
// hyperedge; edges fully interior to a single collapsed container are
// exempt (§9's resolved open question: they stay hidden and uncovered).
func (s *Store) checkCoveringCompleteness() []error {
	var errs []error
	for _, id := range s.sortedEdgeIDs() {
		e := s.edges[id]
		crossesAny := s.crossesAnyCollapsedBoundary(e)
		if !crossesAny {
			continue
		}
		if !e.Hidden {
			errs = append(errs, fmt.Errorf("edge %q crosses a collapsed container boundary but is not hidden", e.ID))
			continue
		}
		hyperID, covered := s.coveringHyperEdgeOf(e.ID)
		if !covered {
			errs = append(errs, fmt.Errorf("edge %q crosses a collapsed container boundary but is not covered by any hyperedge", e.ID))
			continue
		}
		if _, dup := s.duplicateCoveringCount(e.ID, hyperID); dup {
			errs = append(errs, fmt.Errorf("edge %q is covered by more than one hyperedge", e.ID))
		}
	}
	return errs
}

// crossesAnyCollapsedBoundary reports whether e has exactly one endpoint
// inside some collapsed container's subtree. An edge with both endpoints
// inside the same collapsed container is interior to it and does not count
// as crossing, even where it also crosses a collapsed container nested
// within that one.
func (s *Store) crossesAnyCollapsedBoundary(e *GraphEdge) bool {
	ids := make([]string, 0, len(s.containers))
	for id, c := range s.containers {
		if c.Collapsed {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	crosses := false
	for _, cid := range ids {
		srcIn := e.Source == cid || s.isInside(e.Source, cid)
		tgtIn := e.Target == cid || s.isInside(e.Target, cid)
		if srcIn && tgtIn {
			return false
		}
		if srcIn != tgtIn {
			crosses = true
		}
	}
	return crosses
}

func (s *Store) duplicateCoveringCount(edgeID, excludeHyperID string) (int, bool) {
	count := 0
	for hyperID, set := range s.covered {
		if hyperID == excludeHyperID {
			continue
		}
		if set.contains(edgeID) {
			count++
		}
	}
	return count, count > 0
}

// checkNoOrphanCovering: invariant 7 — every hyperedge id referenced by the
// covered-edges index must name a hyperedge that actually exists, and every
// graph-edge id it lists must name a graph-edge that actually exists.
func (s *Store) checkNoOrphanCovering() []error {
	var errs []error
	hyperIDs := make([]string, 0, len(s.covered))
	for id := range s.covered {
		hyperIDs = append(hyperIDs, id)
	}
	sort.Strings(hyperIDs)
	for _, hyperID := range hyperIDs {
		if !s.hasHyperEdge(hyperID) {
			errs = append(errs, fmt.Errorf("covered-edges index references nonexistent hyperedge %q", hyperID))
			continue
		}
		for _, edgeID := range s.covered[hyperID].values() {
			if !s.hasEdge(edgeID) {
				errs = append(errs, fmt.Errorf("hyperedge %q covers nonexistent edge %q", hyperID, edgeID))
			}
		}
	}
	return errs
}

// checkAdjacencyConsistency: invariant 8 — the adjacency index's incidence
// records must agree exactly with the live edge/hyperedge maps (no stale
// entries left behind by a removal, no missing entries for a live edge).
func (s *Store) checkAdjacencyConsistency() []error {
	var errs []error
	for _, id := range s.sortedEdgeIDs() {
		e := s.edges[id]
		if _, ok := s.adjacency.incidentIDs(e.Source)[e.ID]; !ok {
			errs = append(errs, fmt.Errorf("edge %q missing from adjacency bucket of its source %q", e.ID, e.Source))
		}
		if _, ok := s.adjacency.incidentIDs(e.Target)[e.ID]; !ok {
			errs = append(errs, fmt.Errorf("edge %q missing from adjacency bucket of its target %q", e.ID, e.Target))
		}
	}
	for _, id := range s.sortedHyperEdgeIDs() {
		h := s.hyperEdges[id]
		if _, ok := s.adjacency.incidentIDs(h.Source)[h.ID]; !ok {
			errs = append(errs, fmt.Errorf("hyperedge %q missing from adjacency bucket of its source %q", h.ID, h.Source))
		}
		if _, ok := s.adjacency.incidentIDs(h.Target)[h.ID]; !ok {
			errs = append(errs, fmt.Errorf("hyperedge %q missing from adjacency bucket of its target %q", h.ID, h.Target))
		}
	}
	for entityID, bucket := range s.adjacency.buckets {
		for edgeID, kind := range bucket {
			if kind == EdgeKindHyper {
				h := s.getHyperEdgeRaw(edgeID)
				if h == nil || (h.Source != entityID && h.Target != entityID) {
					errs = append(errs, fmt.Errorf("adjacency bucket %q has stale hyperedge entry %q", entityID, edgeID))
				}
				continue
			}
			e := s.getEdgeRaw(edgeID)
			if e == nil || (e.Source != entityID && e.Target != entityID) {
				errs = append(errs, fmt.Errorf("adjacency bucket %q has stale edge entry %q", entityID, edgeID))
			}
		}
	}
	return errs
}
