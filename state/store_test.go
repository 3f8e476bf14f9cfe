// SPDX-License-Identifier: MIT
// Package state_test verifies Store's entity lifecycle and visibility rules.
package state_test

import (
	"testing"

	"github.com/hypergraphstate/hypergraphstate/state"
)

func TestStore_AddNode(t *testing.T) {
	s := state.NewStore()

	MustErrorIs(t, s.AddNode("", "empty"), state.ErrEmptyID, "AddNode(empty)")

	MustErrorNil(t, s.AddNode("n1", "Node One"), "AddNode(n1)")
	n, err := s.GetNode("n1")
	MustErrorNil(t, err, "GetNode(n1)")
	MustEqualString(t, n.Label, "Node One", "n1.Label")
	MustEqualBool(t, n.Hidden, false, "n1.Hidden")

	MustErrorIs(t, s.AddNode("n1", "dup"), state.ErrIDAlreadyExists, "AddNode(n1) duplicate")

	_, err = s.GetNode("missing")
	MustErrorIs(t, err, state.ErrNodeNotFound, "GetNode(missing)")
}

func TestStore_AddEdge_RequiresExistingEndpoints(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("a", "A"), "AddNode(a)")

	MustErrorIs(t, s.AddEdge("e1", "a", "ghost"), state.ErrEndpointNotFound, "AddEdge to ghost target")
	MustErrorIs(t, s.AddEdge("e1", "ghost", "a"), state.ErrEndpointNotFound, "AddEdge from ghost source")

	MustErrorNil(t, s.AddNode("b", "B"), "AddNode(b)")
	MustErrorNil(t, s.AddEdge("e1", "a", "b", "Network"), "AddEdge(a,b)")

	e, err := s.GetEdge("e1")
	MustErrorNil(t, err, "GetEdge(e1)")
	MustEqualString(t, e.Source, "a", "e1.Source")
	MustEqualString(t, e.Target, "b", "e1.Target")
}

func TestStore_VisibleSets_ReflectHiddenNodes(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("a", "A"), "AddNode(a)")
	MustErrorNil(t, s.AddNode("b", "B"), "AddNode(b)")
	MustErrorNil(t, s.AddEdge("ab", "a", "b"), "AddEdge(a,b)")

	visIDs := func() []string {
		var out []string
		for _, n := range s.VisibleNodes() {
			out = append(out, n.ID)
		}
		return out
	}
	MustSameStringSet(t, visIDs(), []string{"a", "b"}, "VisibleNodes before container")

	MustErrorNil(t, s.AddContainer("C", "Container"), "AddContainer(C)")
	MustErrorNil(t, s.AddChildToContainer("C", "a"), "AddChildToContainer(C,a)")
	MustErrorNil(t, s.CollapseContainer("C"), "CollapseContainer(C)")

	MustNotContainString(t, visIDs(), "a", "VisibleNodes after collapse")
	var edgeIDs []string
	for _, e := range s.VisibleEdges() {
		edgeIDs = append(edgeIDs, e.ID)
	}
	MustNotContainString(t, edgeIDs, "ab", "VisibleEdges after collapse of endpoint's container")
}

func TestStore_RemoveNode_CascadesEdgesAndMembership(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddNode("a", "A"), "AddNode(a)")
	MustErrorNil(t, s.AddNode("b", "B"), "AddNode(b)")
	MustErrorNil(t, s.AddEdge("ab", "a", "b"), "AddEdge(a,b)")
	MustErrorNil(t, s.AddContainer("C", "Container"), "AddContainer(C)")
	MustErrorNil(t, s.AddChildToContainer("C", "a"), "AddChildToContainer(C,a)")

	MustErrorNil(t, s.RemoveNode("a"), "RemoveNode(a)")

	_, err := s.GetNode("a")
	MustErrorIs(t, err, state.ErrNodeNotFound, "GetNode(a) after removal")
	_, err = s.GetEdge("ab")
	MustErrorIs(t, err, state.ErrEdgeNotFound, "GetEdge(ab) after endpoint removal")

	c, err := s.GetContainer("C")
	MustErrorNil(t, err, "GetContainer(C)")
	MustEqualInt(t, len(c.Children), 0, "C.Children after member removal")
}

func TestStore_AddChildToContainer_RejectsCyclesAndDoubleMembership(t *testing.T) {
	s := state.NewStore()
	MustErrorNil(t, s.AddContainer("outer", "Outer"), "AddContainer(outer)")
	MustErrorNil(t, s.AddContainer("inner", "Inner"), "AddContainer(inner)")
	MustErrorNil(t, s.AddChildToContainer("outer", "inner"), "AddChildToContainer(outer,inner)")

	MustErrorIs(t, s.AddChildToContainer("inner", "outer"), state.ErrCyclicContainment, "AddChildToContainer(inner,outer) cycle")

	MustErrorNil(t, s.AddNode("n", "N"), "AddNode(n)")
	MustErrorNil(t, s.AddChildToContainer("inner", "n"), "AddChildToContainer(inner,n)")
	MustErrorIs(t, s.AddChildToContainer("outer", "n"), state.ErrAlreadyMember, "AddChildToContainer(outer,n) already member")
}
