package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlebedev/chardraft/internal/api"
	"github.com/nlebedev/chardraft/internal/broadcast"
	"github.com/nlebedev/chardraft/internal/factory"
	"github.com/nlebedev/chardraft/internal/model"
	"github.com/nlebedev/chardraft/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	// API tests are integration tests - use the production factory with
	// real random/clock on the in-memory backends
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Drafts:      app.Drafts,
		Store:       app.Store,
		Broadcaster: app.Broadcaster,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createDraft(t *testing.T, name string) map[string]any {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/drafts", map[string]any{
		"name":     name,
		"password": "pw",
		"game_id":  "coe5",
		"params":   map[string]int{"random": 2, "repick": 1},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var draft map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &draft))
	return draft
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCreateDraft(t *testing.T) {
	ts := newTestServer(t)

	draft := ts.createDraft(t, "friday-night")
	assert.NotEmpty(t, draft["id"])
	assert.Equal(t, "friday-night", draft["name"])
	assert.Equal(t, "coe5", draft["game_id"])

	// The password never leaves the server
	_, exposed := draft["password"]
	assert.False(t, exposed)
}

func TestCreateDraftValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/drafts", map[string]any{
		"game_id": "coe5",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/drafts", map[string]any{
		"name":    "friday-night",
		"game_id": "chess",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateDraftDuplicateName(t *testing.T) {
	ts := newTestServer(t)
	ts.createDraft(t, "friday-night")

	rr := ts.request(http.MethodPost, "/api/v1/drafts", map[string]any{
		"name":    "friday-night",
		"game_id": "coe5",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGetDraft(t *testing.T) {
	ts := newTestServer(t)
	draft := ts.createDraft(t, "friday-night")

	rr := ts.request(http.MethodGet, "/api/v1/drafts/"+draft["id"].(string), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/drafts/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListDrafts(t *testing.T) {
	ts := newTestServer(t)
	ts.createDraft(t, "one")
	ts.createDraft(t, "two")

	rr := ts.request(http.MethodGet, "/api/v1/drafts", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestDeleteDraft(t *testing.T) {
	ts := newTestServer(t)
	draft := ts.createDraft(t, "friday-night")
	id := draft["id"].(string)

	rr := ts.request(http.MethodDelete, "/api/v1/drafts/"+id, map[string]string{
		"password": "wrong",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/drafts/"+id, map[string]string{
		"password": "pw",
	})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/drafts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSaveAndGetPlayers(t *testing.T) {
	ts := newTestServer(t)
	draft := ts.createDraft(t, "friday-night")
	id := draft["id"].(string)

	rr := ts.request(http.MethodGet, "/api/v1/drafts/"+id+"/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	roster := []model.Player{{
		ID:    "p1",
		Name:  "Alice",
		State: model.StateHosting,
	}}
	rr = ts.request(http.MethodPut, "/api/v1/drafts/"+id+"/players", map[string]any{
		"old": []model.Player{},
		"new": roster,
	})
	assert.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/drafts/"+id+"/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []model.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, model.PlayerID("p1"), got[0].ID)
}

func TestSavePlayersValidation(t *testing.T) {
	ts := newTestServer(t)
	draft := ts.createDraft(t, "friday-night")
	id := draft["id"].(string)

	rr := ts.request(http.MethodPut, "/api/v1/drafts/"+id+"/players", map[string]any{
		"old": []model.Player{},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/drafts/missing/players", map[string]any{
		"old": []model.Player{},
		"new": []model.Player{},
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSavePlayersRelaysUpdate(t *testing.T) {
	ts := newTestServer(t)
	draft := ts.createDraft(t, "friday-night")
	id := draft["id"].(string)

	received := make(chan broadcast.Update, 1)
	unsubscribe, err := ts.app.Broadcaster.Subscribe(context.Background(), model.DraftID(id), func(u broadcast.Update) {
		received <- u
	})
	require.NoError(t, err)
	defer unsubscribe()

	rr := ts.request(http.MethodPut, "/api/v1/drafts/"+id+"/players", map[string]any{
		"old": []model.Player{},
		"new": []model.Player{{ID: "p1", Name: "Alice"}},
	})
	require.Equal(t, http.StatusNoContent, rr.Code)

	select {
	case u := <-received:
		require.Len(t, u.New, 1)
		assert.Equal(t, "Alice", u.New[0].Name)
	case <-timeout(t):
		t.Fatal("update never relayed")
	}
}

func TestGetCharacters(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/coe5/characters", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var chars []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chars))
	assert.Len(t, chars, 27)
	assert.Equal(t, "baron", chars[0])

	rr = ts.request(http.MethodGet, "/api/v1/games/chess/characters", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func timeout(t *testing.T) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	timer := time.AfterFunc(time.Second, func() { close(done) })
	t.Cleanup(func() { timer.Stop() })
	return done
}
