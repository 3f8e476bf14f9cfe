// File: api.go
// Role: Public API Facade (component G) — the only entry point external
//       callers (loader, httpapi, cmd/hgsctl) use. Every mutation validates
//       arguments up front, performs the change under the Invariant
//       Validator's suppression, then (if strict validation is on) runs
//       Check() once at the boundary before releasing the lock.
// AI-HINT (file):
//   - Query methods return clones (Node.clone, etc.) so a caller can never
//     mutate Store-owned state through a pointer it was handed back.
//   - Hyperedges are never constructed through this file directly; they are
//     only ever produced by collapse/expand (container_ops.go).
package state

import "sort"

// checkBoundary runs Check() exactly when strict validation is enabled and
// no outer caller still has validation suppressed; it is called at the end
// of every public mutation, after the token from disableValidation has been
// returned to resetValidation.
func (s *Store) checkBoundary() error {
	if s.strictValidation && !s.validationSuppressed() {
		return s.Check()
	}
	return nil
}

// --- mutations: nodes ---

// AddNode inserts a new top-level node. The id must be non-empty and unused
// by any existing entity.
func (s *Store) AddNode(id, label string, tags ...Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		return ErrEmptyID
	}
	if s.exists(id) {
		return ErrIDAlreadyExists
	}

	token := s.disableValidation()
	s.putNode(&Node{ID: id, Label: label, Tags: append([]Tag(nil), tags...)})
	_ = s.visible.setNodeHidden(id, false)
	s.resetValidation(token)

	return s.checkBoundary()
}

// RemoveNode deletes id and cascades: any incident graph-edges are removed
// (releasing their covering hyperedge, if any, and destroying it if that was
// its last covered edge), and its container membership, if any, is cleared.
func (s *Store) RemoveNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasNode(id) {
		return ErrNodeNotFound
	}

	token := s.disableValidation()
	s.removeNodeCascade(id)
	s.resetValidation(token)

	return s.checkBoundary()
}

func (s *Store) removeNodeCascade(id string) {
	for eid, kind := range s.adjacency.incidentIDs(id) {
		if kind == EdgeKindGraph {
			if e := s.getEdgeRaw(eid); e != nil {
				s.removeEdgeCascade(e)
			}
		}
	}
	if parentID, ok := s.getParent(id); ok {
		s.detachChild(parentID, id)
	}
	s.visible.dropNode(id)
	s.deleteNodeRaw(id)
}

// --- mutations: containers ---

// AddContainer inserts a new empty, expanded, top-level container.
func (s *Store) AddContainer(id, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		return ErrEmptyID
	}
	if s.exists(id) {
		return ErrIDAlreadyExists
	}

	token := s.disableValidation()
	s.putContainer(&Container{ID: id, Label: label})
	_ = s.visible.setContainerHidden(id, false)
	s.resetValidation(token)

	return s.checkBoundary()
}

// RemoveContainer deletes id, recursively removing every descendant node and
// container first, then any graph-edges or hyperedges incident to id itself.
func (s *Store) RemoveContainer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasContainer(id) {
		return ErrContainerNotFound
	}

	token := s.disableValidation()
	s.removeContainerCascade(id)
	s.resetValidation(token)

	return s.checkBoundary()
}

func (s *Store) removeContainerCascade(id string) {
	c := s.getContainerRaw(id)
	if c == nil {
		return
	}
	for _, childID := range append([]string(nil), c.Children...) {
		if s.hasNode(childID) {
			s.removeNodeCascade(childID)
		} else if s.hasContainer(childID) {
			s.removeContainerCascade(childID)
		}
	}
	for eid, kind := range s.adjacency.incidentIDs(id) {
		if kind == EdgeKindGraph {
			if e := s.getEdgeRaw(eid); e != nil {
				s.removeEdgeCascade(e)
			}
			continue
		}
		if h := s.getHyperEdgeRaw(eid); h != nil {
			s.destroyHyperEdge(h)
		}
	}
	if parentID, ok := s.getParent(id); ok {
		s.detachChild(parentID, id)
	}
	s.visible.dropContainer(id)
	s.deleteContainerRaw(id)
}

// AddChildToContainer makes childID (a node or container id) a direct child
// of containerID. childID must not already have a direct parent, and
// containerID must not be, or be contained within, childID (no cycles).
func (s *Store) AddChildToContainer(containerID, childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getContainerRaw(containerID)
	if c == nil {
		return ErrContainerNotFound
	}
	if !s.hasNode(childID) && !s.hasContainer(childID) {
		return ErrEndpointNotFound
	}
	if _, ok := s.getParent(childID); ok {
		return ErrAlreadyMember
	}
	if childID == containerID || s.isInside(containerID, childID) {
		return ErrCyclicContainment
	}

	token := s.disableValidation()
	c.Children = append(c.Children, childID)
	s.setParent(childID, containerID)
	// A child joining a hidden or collapsed container must itself become
	// hidden immediately, to preserve invariants 3 and 4 without waiting for
	// the next collapse/expand to notice.
	if c.Hidden || c.Collapsed {
		if s.hasNode(childID) {
			_ = s.visible.setNodeHidden(childID, true)
		} else {
			_ = s.visible.setContainerHidden(childID, true)
		}
	}
	s.resetValidation(token)

	return s.checkBoundary()
}

// RemoveChildFromContainer detaches childID from containerID, making it
// top-level again. The child's own hidden state is left untouched: a node
// pulled out of a hidden container stays hidden until a caller explicitly
// reveals it, since detachment alone carries no visibility intent.
func (s *Store) RemoveChildFromContainer(containerID, childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasContainer(containerID) {
		return ErrContainerNotFound
	}
	parentID, ok := s.getParent(childID)
	if !ok || parentID != containerID {
		return ErrEndpointNotFound
	}

	token := s.disableValidation()
	s.detachChild(containerID, childID)
	s.resetValidation(token)

	return s.checkBoundary()
}

func (s *Store) detachChild(containerID, childID string) {
	c := s.getContainerRaw(containerID)
	if c == nil {
		return
	}
	out := c.Children[:0]
	for _, id := range c.Children {
		if id != childID {
			out = append(out, id)
		}
	}
	c.Children = out
	s.clearParent(childID)
}

// --- mutations: graph-edges ---

// AddEdge inserts a caller-created Graph-edge between two existing entities
// (nodes or containers). Its visibility is derived immediately from its
// endpoints' current state.
func (s *Store) AddEdge(id, source, target string, tags ...Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		return ErrEmptyID
	}
	if s.exists(id) {
		return ErrIDAlreadyExists
	}
	if !s.exists(source) {
		return ErrEndpointNotFound
	}
	if !s.exists(target) {
		return ErrEndpointNotFound
	}

	token := s.disableValidation()
	e := &GraphEdge{ID: id, Source: source, Target: target, Tags: append([]Tag(nil), tags...)}
	s.putEdge(e)
	s.adjacency.addGraphEdge(e)
	s.visible.recomputeEdgeVisibility(e)
	s.resetValidation(token)

	return s.checkBoundary()
}

// RemoveEdge deletes id. If it was covered by a hyperedge, that hyperedge's
// tags are recomputed from its remaining covered edges, or the hyperedge
// itself is destroyed if id was the last edge it covered.
func (s *Store) RemoveEdge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.getEdgeRaw(id)
	if e == nil {
		return ErrEdgeNotFound
	}

	token := s.disableValidation()
	s.removeEdgeCascade(e)
	s.resetValidation(token)

	return s.checkBoundary()
}

func (s *Store) removeEdgeCascade(e *GraphEdge) {
	if hyperID, covered := s.coveringHyperEdgeOf(e.ID); covered {
		s.uncoverEdge(hyperID, e.ID)
	}
	s.adjacency.removeGraphEdge(e)
	s.visible.dropGraphEdge(e.ID)
	s.deleteEdgeRaw(e.ID)
}

// uncoverEdge removes edgeID from hyperID's covered set, recomputing its
// aggregated tags, or destroys hyperID entirely if that emptied its set.
func (s *Store) uncoverEdge(hyperID, edgeID string) {
	set := s.covered[hyperID]
	if set == nil {
		return
	}
	set.remove(edgeID)
	if set.len() > 0 {
		tagLists := make([][]Tag, 0, set.len())
		for _, eid := range set.values() {
			if e := s.getEdgeRaw(eid); e != nil {
				tagLists = append(tagLists, e.Tags)
			}
		}
		if h := s.getHyperEdgeRaw(hyperID); h != nil {
			h.Tags = s.vocabulary.Aggregate(tagLists)
		}
		return
	}
	delete(s.covered, hyperID)
	if h := s.getHyperEdgeRaw(hyperID); h != nil {
		s.adjacency.removeHyperEdge(h)
		s.visible.dropHyperEdge(h.ID)
		s.deleteHyperEdgeRaw(h.ID)
	}
}

// --- mutations: collapse/expand ---

// CollapseContainer collapses id per §4.D.1. Collapsing an already-collapsed
// container is an idempotent no-op.
func (s *Store) CollapseContainer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.disableValidation()
	err := s.collapseContainer(id)
	s.resetValidation(token)
	if err != nil {
		return err
	}

	return s.checkBoundary()
}

// ExpandContainer expands id per §4.D.2, non-recursively. Expanding an
// already-expanded container is an idempotent no-op.
func (s *Store) ExpandContainer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.disableValidation()
	err := s.expandContainer(id)
	s.resetValidation(token)
	if err != nil {
		return err
	}

	return s.checkBoundary()
}

// ExpandContainerRecursive expands id and then every descendant container
// still left collapsed, depth-first in children order.
func (s *Store) ExpandContainerRecursive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.disableValidation()
	err := s.expandContainerRecursive(id)
	s.resetValidation(token)
	if err != nil {
		return err
	}

	return s.checkBoundary()
}

// --- queries: single entity ---

// GetNode returns a clone of node id, or ErrNodeNotFound.
func (s *Store) GetNode(id string) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := s.getNodeRaw(id)
	if n == nil {
		return nil, ErrNodeNotFound
	}
	return n.clone(), nil
}

// GetContainer returns a clone of container id, or ErrContainerNotFound.
func (s *Store) GetContainer(id string) (*Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.getContainerRaw(id)
	if c == nil {
		return nil, ErrContainerNotFound
	}
	return c.clone(), nil
}

// GetEdge returns a clone of graph-edge id, or ErrEdgeNotFound.
func (s *Store) GetEdge(id string) (*GraphEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.getEdgeRaw(id)
	if e == nil {
		return nil, ErrEdgeNotFound
	}
	return e.clone(), nil
}

// GetHyperEdge returns a clone of hyperedge id, or ErrHyperEdgeNotFound.
func (s *Store) GetHyperEdge(id string) (*HyperEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.getHyperEdgeRaw(id)
	if h == nil {
		return nil, ErrHyperEdgeNotFound
	}
	return h.clone(), nil
}

// --- queries: visible sets (sorted by id for deterministic output) ---

// VisibleNodes returns every currently visible node, sorted by id.
func (s *Store) VisibleNodes() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.visible.nodeIDs()
	sort.Strings(ids)
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.getNodeRaw(id).clone())
	}
	return out
}

// VisibleContainers returns every currently visible container, sorted by id.
func (s *Store) VisibleContainers() []*Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.visible.containerIDs()
	sort.Strings(ids)
	out := make([]*Container, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.getContainerRaw(id).clone())
	}
	return out
}

// VisibleEdges returns every currently visible Graph-edge, sorted by id.
func (s *Store) VisibleEdges() []*GraphEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.visible.graphEdgeIDs()
	sort.Strings(ids)
	out := make([]*GraphEdge, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.getEdgeRaw(id).clone())
	}
	return out
}

// VisibleHyperEdges returns every currently visible hyperedge, sorted by id.
func (s *Store) VisibleHyperEdges() []*HyperEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.visible.hyperEdgeIDs()
	sort.Strings(ids)
	out := make([]*HyperEdge, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.getHyperEdgeRaw(id).clone())
	}
	return out
}

// --- queries: structural ---

// GetCoveredEdges returns the Graph-edges hyperID currently subsumes, in
// insertion order, or ErrHyperEdgeNotFound.
func (s *Store) GetCoveredEdges(hyperID string) ([]*GraphEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasHyperEdge(hyperID) {
		return nil, ErrHyperEdgeNotFound
	}
	ids := s.coveredEdgeIDs(hyperID)
	out := make([]*GraphEdge, 0, len(ids))
	for _, id := range ids {
		if e := s.getEdgeRaw(id); e != nil {
			out = append(out, e.clone())
		}
	}
	return out, nil
}

// GetAdjacentEdges returns every edge (Graph or Hyper) incident to id, in
// unspecified order, or ErrEndpointNotFound if id names no entity.
func (s *Store) GetAdjacentEdges(id string) ([]AnyEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.exists(id) {
		return nil, ErrEndpointNotFound
	}
	return s.getAdjacentEdges(id), nil
}

// GetCrossingEdges returns every Graph-edge with exactly one endpoint inside
// containerID's subtree, sorted by id, or ErrContainerNotFound.
func (s *Store) GetCrossingEdges(containerID string) ([]*GraphEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasContainer(containerID) {
		return nil, ErrContainerNotFound
	}
	edges := s.crossingEdges(containerID)
	out := make([]*GraphEdge, len(edges))
	for i, e := range edges {
		out[i] = e.clone()
	}
	return out, nil
}

// --- layout/render collaborator interface (§6) ---

// GetCollapsedContainersAsNodes returns every currently visible, collapsed
// container, which a layout or render engine should treat as an opaque node.
func (s *Store) GetCollapsedContainersAsNodes() []*Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.visible.containerIDs()
	sort.Strings(ids)
	var out []*Container
	for _, id := range ids {
		if c := s.getContainerRaw(id); c.Collapsed {
			out = append(out, c.clone())
		}
	}
	return out
}

// GetTopLevelEntities returns the ids of every visible node or container
// with no direct parent, sorted.
func (s *Store) GetTopLevelEntities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, id := range s.visible.nodeIDs() {
		if _, ok := s.getParent(id); !ok {
			out = append(out, id)
		}
	}
	for _, id := range s.visible.containerIDs() {
		if _, ok := s.getParent(id); !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// GetParentChildMap returns every container's direct children, keyed by
// container id, as a fresh copy safe for the caller to retain.
func (s *Store) GetParentChildMap() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string, len(s.containers))
	for id, c := range s.containers {
		out[id] = append([]string(nil), c.Children...)
	}
	return out
}

// SetLayoutPosition writes back a layout-computed position for a node or
// container id.
func (s *Store) SetLayoutPosition(id string, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := pos
	if n := s.getNodeRaw(id); n != nil {
		n.Position = &p
		return nil
	}
	if c := s.getContainerRaw(id); c != nil {
		c.Position = &p
		return nil
	}
	return ErrEndpointNotFound
}

// SetLayoutDimensions writes back a layout-computed size hint for a node or
// container id.
func (s *Store) SetLayoutDimensions(id string, dim Dimensions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := dim
	if n := s.getNodeRaw(id); n != nil {
		n.Dimensions = &d
		return nil
	}
	if c := s.getContainerRaw(id); c != nil {
		c.Dimensions = &d
		return nil
	}
	return ErrEndpointNotFound
}

// GetEdgeEndpoints returns (source, target) for any Graph-edge or hyperedge
// id, or ErrEdgeNotFound.
func (s *Store) GetEdgeEndpoints(id string) (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.getEdgeRaw(id); e != nil {
		return e.Source, e.Target, nil
	}
	if h := s.getHyperEdgeRaw(id); h != nil {
		return h.Source, h.Target, nil
	}
	return "", "", ErrEdgeNotFound
}
