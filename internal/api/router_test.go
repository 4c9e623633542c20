package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cortexhq/embedding-service/internal/model"
)

type stubProvider struct{ dim int }

func (s *stubProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, s.dim), nil
}

func (s *stubProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, s.dim)
	}
	return out, nil
}

func newTestServer(t *testing.T, ready bool) *httptest.Server {
	t.Helper()
	handle := model.NewHandle(&stubProvider{dim: 384}, zerolog.Nop())
	if ready {
		require.NoError(t, handle.Initialize(context.Background()))
	}
	srv := httptest.NewServer(NewRouter(handle, "all-minilm"))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Endpoints(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = http.Post(srv.URL+"/embed", "application/json",
		bytes.NewBufferString(`{"text":"hello"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var er struct {
		Dimension int `json:"dimension"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
	_ = resp.Body.Close()
	require.Equal(t, 384, er.Dimension)

	resp, err = http.Post(srv.URL+"/embed/batch", "application/json",
		bytes.NewBufferString(`{"texts":["a","b"]}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = http.Get(srv.URL + "/models/info")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRouter_NotReadyEndpoints(t *testing.T) {
	srv := newTestServer(t, false)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = http.Post(srv.URL+"/embed", "application/json",
		bytes.NewBufferString(`{"text":"hello"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = http.Get(srv.URL + "/models/info")
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, true)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/embed", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestIDHeader(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
