// SPDX-License-Identifier: MIT
// Package state_test verifies the public facade's mutation/query surface
// (component G), including removal cascades not covered by the literal
// collapse/expand scenarios.
package state_test

import (
	"testing"

	"github.com/hypergraphstate/hypergraphstate/state"
)

func TestStore_RemoveEdge_ShrinksHyperEdgeCoverage(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("internal1", "I1"), "AddNode(internal1)")
	MustErrorNil(t, s.AddNode("internal2", "I2"), "AddNode(internal2)")
	MustErrorNil(t, s.AddNode("external", "External"), "AddNode(external)")
	MustErrorNil(t, s.AddContainer("M", "M"), "AddContainer(M)")
	MustErrorNil(t, s.AddChildToContainer("M", "internal1"), "AddChildToContainer(M,internal1)")
	MustErrorNil(t, s.AddChildToContainer("M", "internal2"), "AddChildToContainer(M,internal2)")
	MustErrorNil(t, s.AddEdge("e1", "internal1", "external"), "AddEdge(e1)")
	MustErrorNil(t, s.AddEdge("e2", "internal2", "external"), "AddEdge(e2)")

	MustErrorNil(t, s.CollapseContainer("M"), "CollapseContainer(M)")

	covered, err := s.GetCoveredEdges("hyper_M_to_external")
	MustErrorNil(t, err, "GetCoveredEdges(hyper_M_to_external) before removal")
	MustEqualInt(t, len(covered), 2, "hyper_M_to_external covers two edges before removal")

	MustErrorNil(t, s.RemoveEdge("e1"), "RemoveEdge(e1)")

	covered, err = s.GetCoveredEdges("hyper_M_to_external")
	MustErrorNil(t, err, "GetCoveredEdges(hyper_M_to_external) after removing e1")
	MustSameStringSet(t, edgeIDs(covered), []string{"e2"}, "hyper_M_to_external covers only e2 after removal")

	MustErrorNil(t, s.RemoveEdge("e2"), "RemoveEdge(e2)")
	_, err = s.GetHyperEdge("hyper_M_to_external")
	MustErrorIs(t, err, state.ErrHyperEdgeNotFound, "GetHyperEdge(hyper_M_to_external) after last covered edge removed")
}

func TestStore_RemoveContainer_CascadesDescendantsAndHyperEdges(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("internal", "Internal"), "AddNode(internal)")
	MustErrorNil(t, s.AddNode("external", "External"), "AddNode(external)")
	MustErrorNil(t, s.AddContainer("M", "M"), "AddContainer(M)")
	MustErrorNil(t, s.AddChildToContainer("M", "internal"), "AddChildToContainer(M,internal)")
	MustErrorNil(t, s.AddEdge("e1", "internal", "external"), "AddEdge(e1)")
	MustErrorNil(t, s.CollapseContainer("M"), "CollapseContainer(M)")

	MustErrorNil(t, s.RemoveContainer("M"), "RemoveContainer(M)")

	_, err := s.GetContainer("M")
	MustErrorIs(t, err, state.ErrContainerNotFound, "GetContainer(M) after removal")
	_, err = s.GetNode("internal")
	MustErrorIs(t, err, state.ErrNodeNotFound, "GetNode(internal) after container removal cascade")
	_, err = s.GetEdge("e1")
	MustErrorIs(t, err, state.ErrEdgeNotFound, "GetEdge(e1) after container removal cascade")
	_, err = s.GetHyperEdge("hyper_M_to_external")
	MustErrorIs(t, err, state.ErrHyperEdgeNotFound, "GetHyperEdge(hyper_M_to_external) after container removal cascade")

	external, err := s.GetNode("external")
	MustErrorNil(t, err, "GetNode(external) survives container removal")
	MustEqualBool(t, external.Hidden, false, "external.Hidden after container removal")
}

func TestStore_RemoveChildFromContainer_LeavesHiddenChildHidden(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("n", "N"), "AddNode(n)")
	MustErrorNil(t, s.AddContainer("C", "C"), "AddContainer(C)")
	MustErrorNil(t, s.AddChildToContainer("C", "n"), "AddChildToContainer(C,n)")
	MustErrorNil(t, s.CollapseContainer("C"), "CollapseContainer(C)")

	MustErrorNil(t, s.RemoveChildFromContainer("C", "n"), "RemoveChildFromContainer(C,n)")

	n, err := s.GetNode("n")
	MustErrorNil(t, err, "GetNode(n)")
	MustEqualBool(t, n.Hidden, true, "n.Hidden stays true after detachment from a collapsed container")

	c, err := s.GetContainer("C")
	MustErrorNil(t, err, "GetContainer(C)")
	MustEqualInt(t, len(c.Children), 0, "C.Children after detachment")
}

func TestStore_GetTopLevelEntities(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("top", "Top"), "AddNode(top)")
	MustErrorNil(t, s.AddContainer("C", "C"), "AddContainer(C)")
	MustErrorNil(t, s.AddNode("nested", "Nested"), "AddNode(nested)")
	MustErrorNil(t, s.AddChildToContainer("C", "nested"), "AddChildToContainer(C,nested)")

	MustSameStringSet(t, s.GetTopLevelEntities(), []string{"top", "C"}, "GetTopLevelEntities")
}

func TestStore_GetCollapsedContainersAsNodes(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddContainer("A", "A"), "AddContainer(A)")
	MustErrorNil(t, s.AddContainer("B", "B"), "AddContainer(B)")
	MustErrorNil(t, s.CollapseContainer("A"), "CollapseContainer(A)")

	MustSameStringSet(t, containerIDs(s.GetCollapsedContainersAsNodes()), []string{"A"}, "GetCollapsedContainersAsNodes")
}

func TestStore_SetLayoutPositionAndDimensions(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("n", "N"), "AddNode(n)")

	MustErrorNil(t, s.SetLayoutPosition("n", state.Position{X: 1, Y: 2}), "SetLayoutPosition(n)")
	MustErrorNil(t, s.SetLayoutDimensions("n", state.Dimensions{W: 10, H: 20}), "SetLayoutDimensions(n)")

	n, err := s.GetNode("n")
	MustErrorNil(t, err, "GetNode(n)")
	MustNotNilPosition(t, n.Position, "n.Position")
	MustEqualFloat(t, n.Position.X, 1, "n.Position.X")
	MustNotNilDimensions(t, n.Dimensions, "n.Dimensions")
	MustEqualFloat(t, n.Dimensions.W, 10, "n.Dimensions.W")

	MustErrorIs(t, s.SetLayoutPosition("ghost", state.Position{}), state.ErrEndpointNotFound, "SetLayoutPosition(ghost)")
}

func TestStore_GetEdgeEndpoints_ResolvesBothKinds(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("internal", "Internal"), "AddNode(internal)")
	MustErrorNil(t, s.AddNode("external", "External"), "AddNode(external)")
	MustErrorNil(t, s.AddContainer("M", "M"), "AddContainer(M)")
	MustErrorNil(t, s.AddChildToContainer("M", "internal"), "AddChildToContainer(M,internal)")
	MustErrorNil(t, s.AddEdge("e1", "internal", "external"), "AddEdge(e1)")
	MustErrorNil(t, s.CollapseContainer("M"), "CollapseContainer(M)")

	src, tgt, err := s.GetEdgeEndpoints("hyper_M_to_external")
	MustErrorNil(t, err, "GetEdgeEndpoints(hyper_M_to_external)")
	MustEqualString(t, src, "M", "hyper_M_to_external source")
	MustEqualString(t, tgt, "external", "hyper_M_to_external target")
}

func MustNotNilPosition(t *testing.T, p *state.Position, op string) {
	t.Helper()
	if p == nil {
		t.Fatalf("%s: unexpected nil", op)
	}
}

func MustNotNilDimensions(t *testing.T, d *state.Dimensions, op string) {
	t.Helper()
	if d == nil {
		t.Fatalf("%s: unexpected nil", op)
	}
}

func MustEqualFloat(t *testing.T, got, want float64, op string) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got=%g want=%g", op, got, want)
	}
}
