package handle

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/audifox1-ops/tw-forging-p15/api/internal/quote"
	"github.com/audifox1-ops/tw-forging-p15/api/internal/store"
)

// cacheMaxAge bounds how long a cached model answer is served before the
// model is asked again.
const cacheMaxAge = 30 * 24 * time.Hour

type Handle struct {
	engs *quote.Engines
	repo *store.QuoteRepo // nil disables caching

	maxUploadBytes int64
}

func New(engs *quote.Engines, repo *store.QuoteRepo, maxUploadBytes int64) *Handle {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 8 << 20
	}
	return &Handle{
		engs:           engs,
		repo:           repo,
		maxUploadBytes: maxUploadBytes,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// deadlineFrom honours the caller's per-request timeout, default 180s.
func deadlineFrom(r *http.Request) time.Duration {
	deadline := 180 * time.Second
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	return deadline
}

// requestID tags log lines of one relay round trip.
func requestID() string {
	return uuid.NewString()[:8]
}
