// File: loader.go
// Role: converts the external JSON graph document (§6, the caller-facing
//       input format) into calls against state's public facade. The core is
//       deliberately agnostic to this format — loader is the one place that
//       knows the wire shape.
// AI-HINT (file):
//   - encoding/json is used deliberately here rather than a schema/codegen
//     library: the document shape is small, flat, and owned entirely by this
//     package (see DESIGN.md for the stdlib-vs-library tradeoff).
//   - hierarchyChoices, nodeTypeConfig and legend are renderer-only metadata
//     (§1 Non-goals: "the legend/style-config renderers" are out of scope for
//     the core); loader preserves them verbatim for a downstream consumer
//     instead of interpreting their structure.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hypergraphstate/hypergraphstate/state"
)

// Sentinel errors for document-level problems that are not state's to know
// about (state only validates entities it is actually asked to create).
var (
	// ErrInvalidDocument indicates the top-level JSON could not be decoded.
	ErrInvalidDocument = errors.New("loader: invalid document")

	// ErrDanglingParent indicates a node or container names a parentId that
	// no container in the same document defines.
	ErrDanglingParent = errors.New("loader: parentId references an unknown container")
)

// NodeInput is the wire shape of one node record.
type NodeInput struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Tags     []string `json:"tags"`
	ParentID string   `json:"parentId"`
}

// EdgeInput is the wire shape of one caller-supplied graph-edge record.
type EdgeInput struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Tags   []string `json:"tags"`
}

// ContainerInput is the wire shape of one container record.
type ContainerInput struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ParentID string `json:"parentId"`
}

// Document is the fully-decoded external graph document (§6). Fields beyond
// Nodes/Edges/Containers/EdgeStyleConfig are opaque to the core and carried
// through verbatim for a rendering layer to interpret.
type Document struct {
	Nodes            []NodeInput        `json:"nodes"`
	Edges            []EdgeInput        `json:"edges"`
	Containers       []ContainerInput   `json:"containers"`
	HierarchyChoices json.RawMessage    `json:"hierarchyChoices,omitempty"`
	EdgeStyleConfig  map[string][]string `json:"edgeStyleConfig,omitempty"`
	NodeTypeConfig   json.RawMessage    `json:"nodeTypeConfig,omitempty"`
	Legend           json.RawMessage    `json:"legend,omitempty"`
}

// Parse decodes a raw document, synthesizing a uuid for any node, edge, or
// container whose "id" field is blank, and building the edge-style channel
// vocabulary eagerly so a semantic conflict (a tag value claimed by two
// visual channels) is reported at ingest time rather than surfacing later as
// a confusing hyperedge-aggregation result (§7).
func Parse(data []byte) (*Document, *state.ChannelVocabulary, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	for i := range doc.Nodes {
		if doc.Nodes[i].ID == "" {
			doc.Nodes[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Containers {
		if doc.Containers[i].ID == "" {
			doc.Containers[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Edges {
		if doc.Edges[i].ID == "" {
			doc.Edges[i].ID = uuid.NewString()
		}
	}

	vocab, err := buildVocabulary(doc.EdgeStyleConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: edgeStyleConfig: %w", err)
	}

	return &doc, vocab, nil
}

func buildVocabulary(cfg map[string][]string) (*state.ChannelVocabulary, error) {
	if len(cfg) == 0 {
		return state.DefaultChannelVocabulary(), nil
	}
	domains := make(map[state.VisualChannel][]state.Tag, len(cfg))
	for channel, values := range cfg {
		tags := make([]state.Tag, len(values))
		for i, v := range values {
			tags[i] = state.Tag(v)
		}
		domains[state.VisualChannel(channel)] = tags
	}
	return state.NewChannelVocabulary(domains)
}

// Apply populates s from doc: containers first (so membership can reference
// any of them regardless of declaration order), then nodes, then
// parent/child membership for both, then edges last (both endpoints must
// already exist per §3's insertion-time endpoint check).
func Apply(s *state.Store, doc *Document) error {
	known := make(map[string]bool, len(doc.Containers))
	for _, c := range doc.Containers {
		if err := s.AddContainer(c.ID, c.Label); err != nil {
			return fmt.Errorf("loader: AddContainer(%s): %w", c.ID, err)
		}
		known[c.ID] = true
	}

	for _, n := range doc.Nodes {
		tags := toTags(n.Tags)
		if err := s.AddNode(n.ID, n.Label, tags...); err != nil {
			return fmt.Errorf("loader: AddNode(%s): %w", n.ID, err)
		}
	}

	for _, c := range doc.Containers {
		if c.ParentID == "" {
			continue
		}
		if !known[c.ParentID] {
			return fmt.Errorf("%w: container %s parentId=%s", ErrDanglingParent, c.ID, c.ParentID)
		}
		if err := s.AddChildToContainer(c.ParentID, c.ID); err != nil {
			return fmt.Errorf("loader: AddChildToContainer(%s,%s): %w", c.ParentID, c.ID, err)
		}
	}

	for _, n := range doc.Nodes {
		if n.ParentID == "" {
			continue
		}
		if !known[n.ParentID] {
			return fmt.Errorf("%w: node %s parentId=%s", ErrDanglingParent, n.ID, n.ParentID)
		}
		if err := s.AddChildToContainer(n.ParentID, n.ID); err != nil {
			return fmt.Errorf("loader: AddChildToContainer(%s,%s): %w", n.ParentID, n.ID, err)
		}
	}

	for _, e := range doc.Edges {
		tags := toTags(e.Tags)
		if err := s.AddEdge(e.ID, e.Source, e.Target, tags...); err != nil {
			return fmt.Errorf("loader: AddEdge(%s): %w", e.ID, err)
		}
	}

	return nil
}

func toTags(values []string) []state.Tag {
	if len(values) == 0 {
		return nil
	}
	tags := make([]state.Tag, len(values))
	for i, v := range values {
		tags[i] = state.Tag(v)
	}
	return tags
}

// Load is the common-case entry point: parse data, build the store's channel
// vocabulary from its edgeStyleConfig, and apply every entity in one call.
func Load(data []byte, opts ...state.StoreOption) (*state.Store, *Document, error) {
	doc, vocab, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}
	s := state.NewStore(append([]state.StoreOption{state.WithChannelVocabulary(vocab)}, opts...)...)
	if err := Apply(s, doc); err != nil {
		return nil, nil, err
	}
	return s, doc, nil
}
