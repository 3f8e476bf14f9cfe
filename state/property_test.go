// SPDX-License-Identifier: MIT
// Package state_test anchors the testable properties P1, P3-P5 and P7-P9 (§8) as
// concrete, deterministic checks rather than randomized property tests,
// matching the teacher's own preference for explicit scenario fixtures over
// a property-testing dependency.
package state_test

import (
	"testing"

	"github.com/hypergraphstate/hypergraphstate/state"
)

// TestP1_LiftGroundSymmetry: collapse(C); expand(C) restores visible sets.
func TestP1_LiftGroundSymmetry(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("internal", "Internal"), "AddNode(internal)")
	MustErrorNil(t, s.AddNode("external", "External"), "AddNode(external)")
	MustErrorNil(t, s.AddContainer("M", "M"), "AddContainer(M)")
	MustErrorNil(t, s.AddChildToContainer("M", "internal"), "AddChildToContainer(M,internal)")
	MustErrorNil(t, s.AddEdge("e1", "internal", "external"), "AddEdge(e1)")

	nodesBefore := nodeIDs(s.VisibleNodes())
	edgesBefore := edgeIDs(s.VisibleEdges())

	MustErrorNil(t, s.CollapseContainer("M"), "CollapseContainer(M)")
	MustErrorNil(t, s.ExpandContainer("M"), "ExpandContainer(M)")

	MustSameStringSet(t, nodeIDs(s.VisibleNodes()), nodesBefore, "P1 visible nodes restored")
	MustSameStringSet(t, edgeIDs(s.VisibleEdges()), edgesBefore, "P1 visible edges restored")
	MustEqualInt(t, len(s.VisibleHyperEdges()), 0, "P1 no hyperedges remain")
}

// TestP3_NoDoubleCover: every covered edge id appears in at most one
// hyperedge's covered set.
func TestP3_NoDoubleCover(t *testing.T) {
	s := buildScenario2(t)
	MustErrorNil(t, s.CollapseContainer("A"), "CollapseContainer(A)")
	MustErrorNil(t, s.CollapseContainer("B"), "CollapseContainer(B)")

	seen := make(map[string]int)
	for _, h := range s.VisibleHyperEdges() {
		covered, err := s.GetCoveredEdges(h.ID)
		MustErrorNil(t, err, "GetCoveredEdges("+h.ID+")")
		for _, e := range covered {
			seen[e.ID]++
		}
	}
	for id, count := range seen {
		if count > 1 {
			t.Fatalf("P3 violated: edge %q covered by %d hyperedges", id, count)
		}
	}
}

// TestP4_HyperEdgeValidity: every visible hyperedge has both endpoints
// visible and at least one endpoint a collapsed container.
func TestP4_HyperEdgeValidity(t *testing.T) {
	s := buildScenario2(t)
	MustErrorNil(t, s.CollapseContainer("A"), "CollapseContainer(A)")
	MustErrorNil(t, s.CollapseContainer("B"), "CollapseContainer(B)")

	for _, h := range s.VisibleHyperEdges() {
		src, tgt, err := s.GetEdgeEndpoints(h.ID)
		MustErrorNil(t, err, "GetEdgeEndpoints("+h.ID+")")
		srcVisible := isVisible(t, s, src)
		tgtVisible := isVisible(t, s, tgt)
		MustEqualBool(t, srcVisible, true, h.ID+" source visible")
		MustEqualBool(t, tgtVisible, true, h.ID+" target visible")

		srcCollapsed := isCollapsedContainer(t, s, src)
		tgtCollapsed := isCollapsedContainer(t, s, tgt)
		if !srcCollapsed && !tgtCollapsed {
			t.Fatalf("P4 violated: hyperedge %q has no collapsed-container endpoint", h.ID)
		}
	}
}

// TestP5_Cascade: every node or container inside a collapsed container is
// hidden.
func TestP5_Cascade(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("x", "X"), "AddNode(x)")
	MustErrorNil(t, s.AddContainer("outer", "Outer"), "AddContainer(outer)")
	MustErrorNil(t, s.AddContainer("inner", "Inner"), "AddContainer(inner)")
	MustErrorNil(t, s.AddChildToContainer("outer", "inner"), "AddChildToContainer(outer,inner)")
	MustErrorNil(t, s.AddChildToContainer("inner", "x"), "AddChildToContainer(inner,x)")

	MustErrorNil(t, s.CollapseContainer("outer"), "CollapseContainer(outer)")

	x, err := s.GetNode("x")
	MustErrorNil(t, err, "GetNode(x)")
	MustEqualBool(t, x.Hidden, true, "P5: x hidden under collapsed outer/inner")

	inner, err := s.GetContainer("inner")
	MustErrorNil(t, err, "GetContainer(inner)")
	MustEqualBool(t, inner.Hidden, true, "P5: inner hidden under collapsed outer")
}

// TestP7_Idempotence: collapsing a collapsed container, or expanding an
// expanded one, is a no-op.
func TestP7_Idempotence(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddContainer("M", "M"), "AddContainer(M)")

	MustErrorNil(t, s.CollapseContainer("M"), "CollapseContainer(M) first")
	MustErrorNil(t, s.CollapseContainer("M"), "CollapseContainer(M) second (no-op)")

	m, err := s.GetContainer("M")
	MustErrorNil(t, err, "GetContainer(M)")
	MustEqualBool(t, m.Collapsed, true, "M.Collapsed stays true")

	MustErrorNil(t, s.ExpandContainer("M"), "ExpandContainer(M) first")
	MustErrorNil(t, s.ExpandContainer("M"), "ExpandContainer(M) second (no-op)")

	m, err = s.GetContainer("M")
	MustErrorNil(t, err, "GetContainer(M)")
	MustEqualBool(t, m.Collapsed, false, "M.Collapsed stays false")
}

// TestP8_OrderIndependenceOfSiblingCollapses: collapsing siblings A then B
// yields the same visible state as B then A.
func TestP8_OrderIndependenceOfSiblingCollapses(t *testing.T) {
	sAB := buildScenario2(t)
	MustErrorNil(t, sAB.CollapseContainer("A"), "CollapseContainer(A) first")
	MustErrorNil(t, sAB.CollapseContainer("B"), "CollapseContainer(B) second")

	sBA := buildScenario2(t)
	MustErrorNil(t, sBA.CollapseContainer("B"), "CollapseContainer(B) first")
	MustErrorNil(t, sBA.CollapseContainer("A"), "CollapseContainer(A) second")

	MustSameStringSet(t, nodeIDs(sAB.VisibleNodes()), nodeIDs(sBA.VisibleNodes()), "P8 visible nodes match regardless of order")
	MustSameStringSet(t, containerIDs(sAB.VisibleContainers()), containerIDs(sBA.VisibleContainers()), "P8 visible containers match regardless of order")
	MustSameStringSet(t, hyperIDs(sAB.VisibleHyperEdges()), hyperIDs(sBA.VisibleHyperEdges()), "P8 visible hyperedges match regardless of order")
}

// TestP9_ProgressiveAbstraction: collapsing a parent after its child is
// already collapsed preserves coverings and introduces no duplicate
// hyperedges.
func TestP9_ProgressiveAbstraction(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("x", "X"), "AddNode(x)")
	MustErrorNil(t, s.AddNode("external", "External"), "AddNode(external)")
	MustErrorNil(t, s.AddContainer("outer", "Outer"), "AddContainer(outer)")
	MustErrorNil(t, s.AddContainer("inner", "Inner"), "AddContainer(inner)")
	MustErrorNil(t, s.AddChildToContainer("outer", "inner"), "AddChildToContainer(outer,inner)")
	MustErrorNil(t, s.AddChildToContainer("inner", "x"), "AddChildToContainer(inner,x)")
	MustErrorNil(t, s.AddEdge("xExternal", "x", "external"), "AddEdge(xExternal)")

	MustErrorNil(t, s.CollapseContainer("inner"), "CollapseContainer(inner)")
	MustErrorNil(t, s.CollapseContainer("outer"), "CollapseContainer(outer)")

	MustEqualInt(t, len(s.VisibleHyperEdges()), 1, "P9: exactly one hyperedge after progressive collapse")
	covered, err := s.GetCoveredEdges("hyper_outer_to_external")
	MustErrorNil(t, err, "GetCoveredEdges(hyper_outer_to_external)")
	MustSameStringSet(t, edgeIDs(covered), []string{"xExternal"}, "P9: coverage preserved through progressive collapse")
}

func isVisible(t *testing.T, s *state.Store, id string) bool {
	t.Helper()
	if n, err := s.GetNode(id); err == nil {
		return !n.Hidden
	}
	if c, err := s.GetContainer(id); err == nil {
		return !c.Hidden
	}
	return false
}

func isCollapsedContainer(t *testing.T, s *state.Store, id string) bool {
	t.Helper()
	c, err := s.GetContainer(id)
	if err != nil {
		return false
	}
	return c.Collapsed
}
