// File: httpapi.go
// Role: thin HTTP transport shell around state's public facade (§6), the
//       layout-engine/rendering-bridge collaborator interface exposed over
//       the wire. This package owns no graph semantics; every handler is a
//       direct translation of one Store method.
// AI-HINT (file):
//   - Grounded on the teacher pack's gorilla/mux web server: a router built
//     once in New, DTO structs with explicit json tags kept separate from
//     the core's plain Go types, and json.NewEncoder(w).Encode for
//     responses.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/hypergraphstate/hypergraphstate/state"
)

// Server exposes a Store's public facade over HTTP for a layout engine and
// rendering bridge running out-of-process (§6).
type Server struct {
	router *mux.Router
	store  *state.Store
	logger *log.Logger
}

// New builds a Server bound to store. A nil logger falls back to charmbracelet/log's
// default logger, unlike state.NewStore, which discards log output by default.
func New(store *state.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router: mux.NewRouter(),
		store:  store,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

// Router returns the underlying mux.Router so callers can wrap it with
// further middleware or embed it into a larger mux tree.
func (s *Server) Router() *mux.Router { return s.router }

// ServeHTTP lets Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/containers", s.handleContainers).Methods(http.MethodGet)
	s.router.HandleFunc("/nodes", s.handleNodes).Methods(http.MethodGet)
	s.router.HandleFunc("/edges", s.handleEdges).Methods(http.MethodGet)
	s.router.HandleFunc("/containers/collapsed", s.handleCollapsedContainers).Methods(http.MethodGet)
	s.router.HandleFunc("/toplevel", s.handleTopLevel).Methods(http.MethodGet)
	s.router.HandleFunc("/parents", s.handleParents).Methods(http.MethodGet)
	s.router.HandleFunc("/layout/{id}/position", s.handleSetPosition).Methods(http.MethodPost)
	s.router.HandleFunc("/layout/{id}/dimensions", s.handleSetDimensions).Methods(http.MethodPost)
	s.router.HandleFunc("/edges/{id}/endpoints", s.handleEdgeEndpoints).Methods(http.MethodGet)
}

// NodeDTO is the wire shape of a visible node.
type NodeDTO struct {
	ID         string        `json:"id"`
	Label      string        `json:"label"`
	Tags       []state.Tag   `json:"tags,omitempty"`
	Position   *state.Position   `json:"position,omitempty"`
	Dimensions *state.Dimensions `json:"dimensions,omitempty"`
}

// ContainerDTO is the wire shape of a visible container.
type ContainerDTO struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Collapsed  bool              `json:"collapsed"`
	Children   []string          `json:"children"`
	Position   *state.Position   `json:"position,omitempty"`
	Dimensions *state.Dimensions `json:"dimensions,omitempty"`
}

// EdgeDTO is the wire shape of a visible edge, graph or hyper (§3's AnyEdge).
type EdgeDTO struct {
	ID     string      `json:"id"`
	Kind   string      `json:"kind"`
	Source string      `json:"source"`
	Target string      `json:"target"`
	Tags   []state.Tag `json:"tags,omitempty"`
}

func nodeDTO(n *state.Node) NodeDTO {
	return NodeDTO{ID: n.ID, Label: n.Label, Tags: n.Tags, Position: n.Position, Dimensions: n.Dimensions}
}

func containerDTO(c *state.Container) ContainerDTO {
	return ContainerDTO{
		ID: c.ID, Label: c.Label, Collapsed: c.Collapsed,
		Children: c.Children, Position: c.Position, Dimensions: c.Dimensions,
	}
}

func edgeDTO(e *state.GraphEdge) EdgeDTO {
	return EdgeDTO{ID: e.ID, Kind: "graph", Source: e.Source, Target: e.Target, Tags: e.Tags}
}

func hyperEdgeDTO(h *state.HyperEdge) EdgeDTO {
	return EdgeDTO{ID: h.ID, Kind: "hyper", Source: h.Source, Target: h.Target, Tags: h.Tags}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("httpapi: encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, state.ErrNodeNotFound),
		errors.Is(err, state.ErrContainerNotFound),
		errors.Is(err, state.ErrEdgeNotFound),
		errors.Is(err, state.ErrHyperEdgeNotFound),
		errors.Is(err, state.ErrEndpointNotFound):
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) handleContainers(w http.ResponseWriter, r *http.Request) {
	containers := s.store.VisibleContainers()
	out := make([]ContainerDTO, len(containers))
	for i, c := range containers {
		out[i] = containerDTO(c)
	}
	s.writeJSON(w, out)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	nodes := s.store.VisibleNodes()
	out := make([]NodeDTO, len(nodes))
	for i, n := range nodes {
		out[i] = nodeDTO(n)
	}
	s.writeJSON(w, out)
}

func (s *Server) handleEdges(w http.ResponseWriter, r *http.Request) {
	edges := s.store.VisibleEdges()
	hyperEdges := s.store.VisibleHyperEdges()
	out := make([]EdgeDTO, 0, len(edges)+len(hyperEdges))
	for _, e := range edges {
		out = append(out, edgeDTO(e))
	}
	for _, h := range hyperEdges {
		out = append(out, hyperEdgeDTO(h))
	}
	s.writeJSON(w, out)
}

func (s *Server) handleCollapsedContainers(w http.ResponseWriter, r *http.Request) {
	containers := s.store.GetCollapsedContainersAsNodes()
	out := make([]ContainerDTO, len(containers))
	for i, c := range containers {
		out[i] = containerDTO(c)
	}
	s.writeJSON(w, out)
}

func (s *Server) handleTopLevel(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.GetTopLevelEntities())
}

func (s *Server) handleParents(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.GetParentChildMap())
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "httpapi: malformed position body", http.StatusBadRequest)
		return
	}
	if err := s.store.SetLayoutPosition(id, state.Position{X: req.X, Y: req.Y}); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dimensionsRequest struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (s *Server) handleSetDimensions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req dimensionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "httpapi: malformed dimensions body", http.StatusBadRequest)
		return
	}
	if err := s.store.SetLayoutDimensions(id, state.Dimensions{W: req.W, H: req.H}); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type endpointsResponse struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func (s *Server) handleEdgeEndpoints(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	src, tgt, err := s.store.GetEdgeEndpoints(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, endpointsResponse{Source: src, Target: tgt})
}
