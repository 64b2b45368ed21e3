package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLinks(t *testing.T, ts *testServer) {
	t.Helper()
	typeID := ts.createType(t, "SPEDIZIONE")

	resp := ts.api.Post("/api/v1/tracking/links", map[string]any{
		"type_id": typeID,
		"tag_ids": []int64{7, 8},
		"lots":    []string{"LOT-A", "LOT-B"},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func TestBuildTree_Wildcard(t *testing.T) {
	ts := newTestServer(t)
	seedLinks(t, ts)

	resp := ts.api.Get("/api/v1/tracking/tree?q=*")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var tree TreeResponse
	decodeBody(t, resp.Body.Bytes(), &tree)
	assert.Equal(t, 4, tree.Total)
	assert.False(t, tree.Truncated)
	require.Len(t, tree.Groups, 2)

	// Snapshot attributes decorate the groups (refreshed during creation).
	require.NotNil(t, tree.Groups[0].Tag)
	assert.Equal(t, "CRT-0007", tree.Groups[0].Tag.Number)

	require.Len(t, tree.Groups[0].Types, 1)
	assert.Equal(t, "SPEDIZIONE", tree.Groups[0].Types[0].TypeName)
	require.Len(t, tree.Groups[0].Types[0].Lots, 2)
	assert.Equal(t, "LOT-A", tree.Groups[0].Types[0].Lots[0].Lot)
}

func TestBuildTree_QueryByTagNumber(t *testing.T) {
	ts := newTestServer(t)
	seedLinks(t, ts)

	resp := ts.api.Get("/api/v1/tracking/tree?q=CRT-0007")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var tree TreeResponse
	decodeBody(t, resp.Body.Bytes(), &tree)
	assert.Equal(t, 2, tree.Total)
	require.Len(t, tree.Groups, 1)
	assert.Equal(t, int64(7), tree.Groups[0].TagID)
}

func TestBuildTree_QueryByLot(t *testing.T) {
	ts := newTestServer(t)
	seedLinks(t, ts)

	resp := ts.api.Get("/api/v1/tracking/tree?q=lot-b")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var tree TreeResponse
	decodeBody(t, resp.Body.Bytes(), &tree)
	assert.Equal(t, 2, tree.Total)
	require.Len(t, tree.Groups, 2)
}

func TestBuildTree_MissingQuery(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/api/v1/tracking/tree")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())
}

func TestBuildTree_NoMatches(t *testing.T) {
	ts := newTestServer(t)
	seedLinks(t, ts)

	resp := ts.api.Get("/api/v1/tracking/tree?q=nothing-here")
	require.Equal(t, http.StatusOK, resp.Code)

	var tree TreeResponse
	decodeBody(t, resp.Body.Bytes(), &tree)
	assert.Equal(t, 0, tree.Total)
	assert.Empty(t, tree.Groups)
}
