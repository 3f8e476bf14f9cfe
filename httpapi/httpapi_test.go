package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hypergraphstate/hypergraphstate/httpapi"
	"github.com/hypergraphstate/hypergraphstate/state"
)

func newTestServer(t *testing.T) (*httpapi.Server, *state.Store) {
	t.Helper()
	s := state.NewStore()
	require.NoError(t, s.AddNode("n1", "N1"))
	require.NoError(t, s.AddNode("n2", "N2"))
	require.NoError(t, s.AddContainer("c1", "C1"))
	require.NoError(t, s.AddChildToContainer("c1", "n2"))
	require.NoError(t, s.AddEdge("e1", "n1", "n2"))
	return httpapi.New(s, nil), s
}

func doRequest(t *testing.T, srv *httpapi.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandleNodes_ReturnsVisibleNodes(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/nodes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var nodes []httpapi.NodeDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nodes))
	require.Len(t, nodes, 2)
}

func TestHandleContainers_ReturnsVisibleContainers(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/containers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var containers []httpapi.ContainerDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &containers))
	require.Len(t, containers, 1)
	require.Equal(t, "c1", containers[0].ID)
}

func TestHandleEdges_ReturnsGraphAndHyperEdges(t *testing.T) {
	srv, s := newTestServer(t)
	require.NoError(t, s.AddNode("n3", "N3"))
	require.NoError(t, s.AddChildToContainer("c1", "n3"))
	require.NoError(t, s.AddEdge("e2", "n1", "n3"))
	require.NoError(t, s.CollapseContainer("c1"))

	rec := doRequest(t, srv, http.MethodGet, "/edges", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var edges []httpapi.EdgeDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edges))
	var sawHyper bool
	for _, e := range edges {
		if e.Kind == "hyper" {
			sawHyper = true
		}
	}
	require.True(t, sawHyper, "collapsed container should surface a hyperedge")
}

func TestHandleSetPosition_UpdatesLayout(t *testing.T) {
	srv, s := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/layout/n1/position", map[string]float64{"x": 3, "y": 4})
	require.Equal(t, http.StatusNoContent, rec.Code)

	n, err := s.GetNode("n1")
	require.NoError(t, err)
	require.NotNil(t, n.Position)
	require.Equal(t, 3.0, n.Position.X)
}

func TestHandleSetPosition_UnknownIDReturnsNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/layout/ghost/position", map[string]float64{"x": 1, "y": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleEdgeEndpoints_ResolvesEdge(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/edges/e1/endpoints", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct{ Source, Target string }
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "n1", resp.Source)
	require.Equal(t, "n2", resp.Target)
}

func TestHandleTopLevel_ListsUnparentedEntities(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/toplevel", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ids []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ids))
	require.ElementsMatch(t, []string{"n1", "c1"}, ids)
}
