package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codelens/internal/providers"
	"github.com/dshills/codelens/internal/review"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGemini answers generateContent with the given model text.
func fakeGemini(t *testing.T, status int, text string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, text)
			return
		}
		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{map[string]any{"text": text}}},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(upstream string, apiKey string) http.Handler {
	svc := review.NewService(providers.NewGemini(upstream, nil), review.Options{APIKey: apiKey})
	return NewRouter(svc, 1<<20, discardLogger())
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter("http://unused", "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReviewEndToEnd(t *testing.T) {
	var hits atomic.Int32
	upstream := fakeGemini(t, http.StatusOK,
		"```json\n{\"issues\":[{\"title\":\"Off by one\",\"description\":\"loop bound\",\"severity\":\"medium\",\"lineStart\":2}],\"fixedCode\":\"fixed\"}\n```",
		&hits)

	body := `{"code":"for i := 0; i <= n; i++ {}","language":"go"}`
	rec := httptest.NewRecorder()
	newTestRouter(upstream.URL, "server-key").ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res review.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "Off by one", res.Issues[0].Title)
	assert.Equal(t, review.SeverityMedium, res.Issues[0].Severity)
	assert.Equal(t, "fixed", res.FixedCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestReviewMissingKey(t *testing.T) {
	var hits atomic.Int32
	upstream := fakeGemini(t, http.StatusOK, "{}", &hits)

	rec := httptest.NewRecorder()
	newTestRouter(upstream.URL, "").ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(`{"code":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), hits.Load(), "no upstream call without a credential")
}

func TestReviewUpstreamFailure(t *testing.T) {
	var hits atomic.Int32
	upstream := fakeGemini(t, http.StatusTooManyRequests, "rate limited", &hits)

	rec := httptest.NewRecorder()
	newTestRouter(upstream.URL, "k").ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader(`{"code":"x"}`)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "429")
	assert.Contains(t, rec.Body.String(), "rate limited")
	assert.Equal(t, int32(1), hits.Load(), "failures are not retried")
}

func TestReviewWrongMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter("http://unused", "k").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/review", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServerStartStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(ln.Addr().String(), review.NewService(providers.NewGemini("http://unused", nil), review.Options{}), 1<<20, discardLogger())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", ln.Addr()))
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "OK", string(data))

	require.NoError(t, srv.Stop())
	assert.NoError(t, <-done)
}
