package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

type handler struct {
	local storage.Source
	world storage.Source
}

// ScoreJSON is the wire form of a score record.
type ScoreJSON struct {
	Rank  int       `json:"rank"`
	Name  string    `json:"name"`
	Score uint64    `json:"score"`
	Level uint      `json:"level"`
	Lines uint      `json:"lines"`
	At    time.Time `json:"at"`
}

// ScoresResponse is returned by the list endpoints.
type ScoresResponse struct {
	Scores []ScoreJSON `json:"scores"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) scores(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.local)
}

func (h *handler) worldScores(w http.ResponseWriter, r *http.Request) {
	if h.world == nil {
		writeError(w, http.StatusNotFound, "world leaderboard not configured")
		return
	}
	h.list(w, r, h.world)
}

func (h *handler) list(w http.ResponseWriter, r *http.Request, src storage.Source) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := src.TopN(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "scores unavailable")
		return
	}
	writeJSON(w, http.StatusOK, ScoresResponse{Scores: toJSON(records)})
}

func (h *handler) best(w http.ResponseWriter, r *http.Request) {
	records, err := h.local.TopN(r.Context(), 1)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "scores unavailable")
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, storage.ErrNoScores.Error())
		return
	}
	writeJSON(w, http.StatusOK, toJSON(records)[0])
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return storage.DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &limitError{raw: raw}
	}
	if n > MaxLimit {
		n = MaxLimit
	}
	return n, nil
}

type limitError struct{ raw string }

func (e *limitError) Error() string {
	return "invalid limit " + strconv.Quote(e.raw)
}

func toJSON(records []core.ScoreRecord) []ScoreJSON {
	out := make([]ScoreJSON, len(records))
	for i, rec := range records {
		out[i] = ScoreJSON{
			Rank:  i + 1,
			Name:  rec.Name,
			Score: rec.Score,
			Level: rec.Level,
			Lines: rec.Lines,
			At:    rec.At,
		}
	}
	return out
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
