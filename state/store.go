// File: store.go
// Role: Entity Store (component A) — five maps keyed by id, plus the
//       node/container-to-parent membership map. Primitive insert/get/remove
//       only; no cascade, no invariant enforcement (that is D's and F's job).
// Concurrency:
//   - All fields are guarded by Store.mu (a single sync.RWMutex). Unlike the
//     teacher's two-lock split (muVert/muEdgeAdj), the five entity kinds here
//     participate in invariants that span all of them at once (a collapse
//     touches containers, nodes, edges, adjacency, and covered-edges in one
//     atomic step), so a single lock is the only split that avoids the
//     lock-ordering hazard the teacher warns about in methods_vertices.go.
// AI-HINT (file):
//   - Methods in this file never validate; callers in api.go hold the lock
//     and run the Invariant Validator (validator.go) at the public boundary.
package state

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Store owns every node, edge, container, and hyperedge in a single
// hierarchical graph-visualization state, plus the derived indices and
// caches that keep it internally consistent (§2 components A–F).
type Store struct {
	mu sync.RWMutex

	logger *log.Logger

	nodes      map[string]*Node
	containers map[string]*Container
	edges      map[string]*GraphEdge
	hyperEdges map[string]*HyperEdge

	// parent maps a node or container id to the id of its direct container
	// parent. Absence means "no parent" (top-level). This is the only
	// cross-entity back-reference the store keeps, and it is a lookup table
	// rather than a field on Node/Container, per the design notes' rule
	// against owning back-references.
	parent map[string]string

	adjacency *adjacencyIndex
	covered   map[string]*orderedStringSet // hyperedge id -> covered graph-edge ids

	visible *visibilityCache

	vocabulary *ChannelVocabulary

	validationDepth  int  // >0 while internal mutation has validation suppressed
	strictValidation bool // whether api.go runs Check() after each public mutation
}

// StoreOption configures a Store at construction time.
type StoreOption func(*Store)

// WithLogger attaches a structured logger used for non-structural warnings
// (skipped self-referencing crossing groups, degenerate ancestor walks).
// Layout hints written back through the API are not checked or logged.
// Structural errors are always returned, never only logged.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithChannelVocabulary overrides the default visual-channel vocabulary used
// by hyperedge aggregation (§4.E). Callers ingesting an external style
// config (loader package) build their own vocabulary from it.
func WithChannelVocabulary(cv *ChannelVocabulary) StoreOption {
	return func(s *Store) { s.vocabulary = cv }
}

// WithStrictValidation controls whether api.go's public mutations run the
// Invariant Validator (component F) after every call. It defaults to true;
// callers ingesting a large, already-trusted graph (loader package, bulk
// fixture generation) may disable it to avoid the O(nodes+edges) walk per
// mutation and run a single explicit Check() at the end instead.
func WithStrictValidation(enabled bool) StoreOption {
	return func(s *Store) { s.strictValidation = enabled }
}

// NewStore creates an empty Store. By default its logger discards output, so
// the core stays silent unless a caller opts in via WithLogger — the same
// default-quiet posture the teacher's core.Graph takes toward instrumentation.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		nodes:      make(map[string]*Node),
		containers: make(map[string]*Container),
		edges:      make(map[string]*GraphEdge),
		hyperEdges: make(map[string]*HyperEdge),
		parent:     make(map[string]string),
		adjacency:  newAdjacencyIndex(),
		covered:    make(map[string]*orderedStringSet),
		logger:           log.NewWithOptions(io.Discard, log.Options{}),
		vocabulary:       DefaultChannelVocabulary(),
		strictValidation: true,
	}
	s.visible = newVisibilityCache(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- primitive node access (unvalidated; caller holds s.mu) ---

func (s *Store) putNode(n *Node)             { s.nodes[n.ID] = n }
func (s *Store) getNodeRaw(id string) *Node  { return s.nodes[id] }
func (s *Store) hasNode(id string) bool      { _, ok := s.nodes[id]; return ok }
func (s *Store) deleteNodeRaw(id string)     { delete(s.nodes, id) }

// --- primitive container access ---

func (s *Store) putContainer(c *Container)            { s.containers[c.ID] = c }
func (s *Store) getContainerRaw(id string) *Container { return s.containers[id] }
func (s *Store) hasContainer(id string) bool          { _, ok := s.containers[id]; return ok }
func (s *Store) deleteContainerRaw(id string)         { delete(s.containers, id) }

// --- primitive graph-edge access ---

func (s *Store) putEdge(e *GraphEdge)            { s.edges[e.ID] = e }
func (s *Store) getEdgeRaw(id string) *GraphEdge { return s.edges[id] }
func (s *Store) hasEdge(id string) bool          { _, ok := s.edges[id]; return ok }
func (s *Store) deleteEdgeRaw(id string)         { delete(s.edges, id) }

// --- primitive hyperedge access ---

func (s *Store) putHyperEdge(h *HyperEdge)            { s.hyperEdges[h.ID] = h }
func (s *Store) getHyperEdgeRaw(id string) *HyperEdge { return s.hyperEdges[id] }
func (s *Store) hasHyperEdge(id string) bool          { _, ok := s.hyperEdges[id]; return ok }
func (s *Store) deleteHyperEdgeRaw(id string)         { delete(s.hyperEdges, id) }

// exists reports whether id names any entity at all (node, container, edge,
// or hyperedge), used for the id-uniqueness check at insertion time.
func (s *Store) exists(id string) bool {
	return s.hasNode(id) || s.hasContainer(id) || s.hasEdge(id) || s.hasHyperEdge(id)
}

// --- parent (direct-membership) map ---

func (s *Store) getParent(childID string) (string, bool) {
	p, ok := s.parent[childID]
	return p, ok
}

func (s *Store) setParent(childID, containerID string) { s.parent[childID] = containerID }

func (s *Store) clearParent(childID string) { delete(s.parent, childID) }

// isVisibleEntity reports whether id currently refers to a visible node or a
// visible container (used by edge-visibility and endpoint-existence checks).
func (s *Store) isVisibleEntity(id string) bool {
	if n := s.getNodeRaw(id); n != nil {
		return !n.Hidden
	}
	if c := s.getContainerRaw(id); c != nil {
		return !c.Hidden
	}
	return false
}
