package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

type fakeSource struct {
	records []core.ScoreRecord
	err     error
	limit   int
}

func (f *fakeSource) TopN(_ context.Context, n int) ([]core.ScoreRecord, error) {
	f.limit = n
	if f.err != nil {
		return nil, f.err
	}
	if n < len(f.records) {
		return f.records[:n], nil
	}
	return f.records, nil
}

func sampleSource() *fakeSource {
	at := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	return &fakeSource{records: []core.ScoreRecord{
		{Name: "ada", Score: 900, Level: 3, Lines: 25, At: at},
		{Name: "bob", Score: 400, Level: 2, Lines: 12, At: at},
		{Name: "cy", Score: 100, Level: 1, Lines: 1, At: at},
	}}
}

func do(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestScoresEndpoint(t *testing.T) {
	src := sampleSource()
	h := NewRouter(RouterConfig{Local: src})

	rec := do(t, h, "/api/v1/scores?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ScoresResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Scores, 2)
	assert.Equal(t, 2, src.limit)
	assert.Equal(t, "ada", resp.Scores[0].Name)
	assert.Equal(t, 1, resp.Scores[0].Rank)
	assert.Equal(t, uint64(400), resp.Scores[1].Score)
}

func TestScoresLimit(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		limit  int
	}{
		{"default", "", http.StatusOK, 10},
		{"capped", "?limit=5000", http.StatusOK, MaxLimit},
		{"not a number", "?limit=abc", http.StatusBadRequest, 0},
		{"negative", "?limit=-1", http.StatusBadRequest, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := sampleSource()
			rec := do(t, NewRouter(RouterConfig{Local: src}), "/api/v1/scores"+tc.query)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.limit, src.limit)
		})
	}
}

func TestScoresUnavailable(t *testing.T) {
	src := &fakeSource{err: errors.New("database is locked")}
	rec := do(t, NewRouter(RouterConfig{Local: src}), "/api/v1/scores")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBestEndpoint(t *testing.T) {
	rec := do(t, NewRouter(RouterConfig{Local: sampleSource()}), "/api/v1/scores/best")
	require.Equal(t, http.StatusOK, rec.Code)

	var best ScoreJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&best))
	assert.Equal(t, uint64(900), best.Score)

	rec = do(t, NewRouter(RouterConfig{Local: &fakeSource{}}), "/api/v1/scores/best")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorldEndpoint(t *testing.T) {
	rec := do(t, NewRouter(RouterConfig{Local: sampleSource()}), "/api/v1/world")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, NewRouter(RouterConfig{Local: &fakeSource{}, World: sampleSource()}), "/api/v1/world")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ScoresResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Scores, 3)
}

func TestHealthAndNotFound(t *testing.T) {
	h := NewRouter(RouterConfig{Local: sampleSource()})

	assert.Equal(t, http.StatusOK, do(t, h, "/api/v1/health").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "/nope").Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := do(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
