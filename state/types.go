// File: types.go
// Role: Shared entity types, sentinel errors, and the tagged edge variant.
// Determinism:
//   - No entity type carries hidden mutable state beyond the fields declared here.
// Concurrency:
//   - Types in this file are plain data; synchronization lives in Store (store.go).
// AI-HINT (file):
//   - Edge identity is split into GraphEdge (caller-created) and HyperEdge
//     (system-created); AnyEdge is the tagged sum used at query boundaries so
//     callers can never confuse the two kinds implicitly.
package state

import "errors"

// Sentinel errors for state operations. Each documents the single condition
// that produces it so callers can branch with errors.Is.
var (
	// ErrEmptyID indicates an entity id is the empty string.
	ErrEmptyID = errors.New("state: entity id is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("state: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent graph-edge.
	ErrEdgeNotFound = errors.New("state: edge not found")

	// ErrContainerNotFound indicates an operation referenced a non-existent container.
	ErrContainerNotFound = errors.New("state: container not found")

	// ErrHyperEdgeNotFound indicates an operation referenced a non-existent hyperedge.
	ErrHyperEdgeNotFound = errors.New("state: hyperedge not found")

	// ErrIDAlreadyExists indicates an insertion collided with an entity of any
	// kind, the same kind included, already registered under that id (ids are
	// unique across all kinds, per §3 of the design notes).
	ErrIDAlreadyExists = errors.New("state: id already in use by another entity")

	// ErrEndpointNotFound indicates an edge (or container) creation referenced
	// a source or target id that does not exist at the moment of insertion.
	ErrEndpointNotFound = errors.New("state: edge endpoint does not exist")

	// ErrSelfLoopEndpoint indicates a crossing-group construction degenerated
	// to from == to; callers should never see this directly since the
	// hyperedge factory skips self-references, logging a warning (§9 open
	// question).
	ErrSelfLoopEndpoint = errors.New("state: hyperedge endpoints must differ")

	// ErrHyperEdgeViaPublicAPI indicates an attempt to create a hyperedge
	// directly through the public facade; hyperedges are system-created only.
	ErrHyperEdgeViaPublicAPI = errors.New("state: hyperedges cannot be created directly")

	// ErrContainerAlreadyCollapsed indicates CollapseContainer was invoked on
	// an already-collapsed container. Per §4.D.6 this is treated as an
	// idempotent no-op: CollapseContainer never returns this error.
	ErrContainerAlreadyCollapsed = errors.New("state: container already collapsed")

	// ErrContainerAlreadyExpanded mirrors ErrContainerAlreadyCollapsed for expand.
	ErrContainerAlreadyExpanded = errors.New("state: container already expanded")

	// ErrCyclicContainment indicates a container membership change would make
	// a container its own ancestor.
	ErrCyclicContainment = errors.New("state: cyclic container containment")

	// ErrAlreadyMember indicates a node or container is already a child of
	// some container and must be removed from it before joining another.
	ErrAlreadyMember = errors.New("state: entity already has a direct parent")

	// ErrUnknownVisualChannel indicates a tag was asserted against a visual
	// channel the aggregation vocabulary does not declare.
	ErrUnknownVisualChannel = errors.New("state: unknown visual channel")

	// ErrDuplicateChannelAssignment indicates a style-config key was assigned
	// to two different semantic groups (visual channels); see §7.
	ErrDuplicateChannelAssignment = errors.New("state: visual channel key assigned to multiple semantic groups")
)

// Tag is one value drawn from a visual channel's finite domain (e.g. the
// line-pattern channel's domain might include "dashed" and "dotted").
type Tag string

// Position is an optional layout position written back by the layout engine.
type Position struct {
	X, Y float64
}

// Dimensions is an optional size hint, also write-back only from layout.
type Dimensions struct {
	W, H float64
}

// Node is a graph vertex. It may be a member of at most one Container (its
// direct parent, tracked out-of-band by Store, never as a back-reference
// field on Node itself — see the design notes on avoiding cyclic ownership).
type Node struct {
	ID         string
	Label      string
	Hidden     bool
	Tags       []Tag
	Position   *Position
	Dimensions *Dimensions
}

// clone returns a value copy safe to hand to callers without exposing the
// live Store-owned slice/pointer fields.
func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Tags = append([]Tag(nil), n.Tags...)
	if n.Position != nil {
		p := *n.Position
		out.Position = &p
	}
	if n.Dimensions != nil {
		d := *n.Dimensions
		out.Dimensions = &d
	}
	return &out
}

// Container groups nodes and/or other containers. Collapsed and Hidden are
// independent states subject to invariant 3 (§3): Hidden implies Collapsed.
// Children is an ordered unique set — insertion order is preserved because
// downstream layout may be sensitive to it.
type Container struct {
	ID         string
	Label      string
	Collapsed  bool
	Hidden     bool
	Children   []string // ordered; membership mirrored in an internal set
	Position   *Position
	Dimensions *Dimensions
}

func (c *Container) clone() *Container {
	if c == nil {
		return nil
	}
	out := *c
	out.Children = append([]string(nil), c.Children...)
	if c.Position != nil {
		p := *c.Position
		out.Position = &p
	}
	if c.Dimensions != nil {
		d := *c.Dimensions
		out.Dimensions = &d
	}
	return &out
}

// GraphEdge is a caller-created edge. Source/Target may reference nodes or
// containers (§3's "graph-edges reference containers" design note); most
// edges are node-to-node at ingest time.
type GraphEdge struct {
	ID     string
	Source string
	Target string
	Hidden bool
	Tags   []Tag
}

func (e *GraphEdge) clone() *GraphEdge {
	if e == nil {
		return nil
	}
	out := *e
	out.Tags = append([]Tag(nil), e.Tags...)
	return &out
}

// HyperEdge is a system-created edge representing the union of one or more
// GraphEdges that crossed a collapsed container's boundary. Its id always has
// the form "hyper_<source>_to_<target>". The GraphEdges it represents are
// recorded in the Store's covered-edges index, never inline here (§9: this is
// the single most important structural decision in the design — it is what
// lets a hyperedge be rebuilt or dropped without silently losing the mapping
// inline hyperedge payloads are prone to).
type HyperEdge struct {
	ID     string
	Source string
	Target string
	Hidden bool // invariant: always false while the hyperedge exists
	Tags   []Tag
}

func (h *HyperEdge) clone() *HyperEdge {
	if h == nil {
		return nil
	}
	out := *h
	out.Tags = append([]Tag(nil), h.Tags...)
	return &out
}

// hyperEdgeID derives the canonical id for a hyperedge between from and to.
func hyperEdgeID(from, to string) string {
	return "hyper_" + from + "_to_" + to
}

// EdgeKind discriminates AnyEdge's two concrete payloads. Per the design
// notes' redesign flag, this replaces a dynamically-typed "type: graph|hyper"
// tag with a closed Go sum type: code must switch on Kind, it can never
// silently treat a HyperEdge as a GraphEdge or vice versa.
type EdgeKind int

const (
	// EdgeKindGraph marks AnyEdge.Graph as the populated field.
	EdgeKindGraph EdgeKind = iota
	// EdgeKindHyper marks AnyEdge.Hyper as the populated field.
	EdgeKindHyper
)

// String renders the edge kind for logging and error messages.
func (k EdgeKind) String() string {
	if k == EdgeKindHyper {
		return "hyper"
	}
	return "graph"
}

// AnyEdge is the tagged variant `Edge = Graph(GraphEdge) | Hyper(HyperEdge)`
// called for by the design notes. Exactly one of Graph/Hyper is non-nil,
// selected by Kind. Construct it only via newGraphAnyEdge/newHyperAnyEdge.
type AnyEdge struct {
	Kind  EdgeKind
	Graph *GraphEdge
	Hyper *HyperEdge
}

func newGraphAnyEdge(e *GraphEdge) AnyEdge { return AnyEdge{Kind: EdgeKindGraph, Graph: e} }
func newHyperAnyEdge(h *HyperEdge) AnyEdge { return AnyEdge{Kind: EdgeKindHyper, Hyper: h} }

// ID returns the underlying edge id regardless of kind.
func (a AnyEdge) ID() string {
	if a.Kind == EdgeKindHyper {
		return a.Hyper.ID
	}
	return a.Graph.ID
}

// Endpoints returns (source, target) regardless of kind.
func (a AnyEdge) Endpoints() (string, string) {
	if a.Kind == EdgeKindHyper {
		return a.Hyper.Source, a.Hyper.Target
	}
	return a.Graph.Source, a.Graph.Target
}

// IsHidden returns the underlying edge's hidden flag regardless of kind.
func (a AnyEdge) IsHidden() bool {
	if a.Kind == EdgeKindHyper {
		return a.Hyper.Hidden
	}
	return a.Graph.Hidden
}

// Tags returns the underlying edge's semantic tags regardless of kind.
func (a AnyEdge) Tags() []Tag {
	if a.Kind == EdgeKindHyper {
		return a.Hyper.Tags
	}
	return a.Graph.Tags
}
