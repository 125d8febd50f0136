// Package httpapi exposes the F-M engine over HTTP: POST /partitions
// runs a partition against posted hypergraph text and returns the
// spec.md §6 result as JSON, GET /partitions/{id} looks up a past run
// from the history store.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"github.com/hgpart/fm-partitioner/pkg/cache"
	"github.com/hgpart/fm-partitioner/pkg/fm"
	"github.com/hgpart/fm-partitioner/pkg/history"
	"github.com/hgpart/fm-partitioner/pkg/parser"
	"github.com/hgpart/fm-partitioner/pkg/writer"
)

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// Server wires the core engine to chi's router. History and Cache are
// both optional; a nil value disables the corresponding feature.
type Server struct {
	Log     *zap.Logger
	Cache   *cache.Cache
	History *history.Store
}

// query holds the overrides accepted on the POST /partitions query
// string, decoded with gorilla/schema the way gazette's read_api.go
// decodes Offset/Block. Balance is a pointer so an absent query
// parameter is distinguishable from an explicit ?balance=0.
type query struct {
	Balance *float64 `schema:"balance"`
}

// Router builds the chi mux for the service.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/partitions", s.handlePartition)
	r.Get("/partitions/{id}", s.handleGet)
	return r
}

func (s *Server) handlePartition(w http.ResponseWriter, r *http.Request) {
	var q query
	if err := r.ParseForm(); err == nil {
		_ = decoder.Decode(&q, r.Form)
	}

	body, err := readAllLimited(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := parser.Parse(strings.NewReader(string(body)))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	balance := result.Balance
	if q.Balance != nil {
		balance = *q.Balance
	}

	digest := cache.Digest(body)
	key := cache.Key{Digest: digest, Balance: balance}

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(r.Context(), key); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	p := fm.Build(result.Hypergraph, balance)
	p.Partition()
	summary := writer.BuildSummary(p)

	if s.Cache != nil {
		_ = s.Cache.Set(r.Context(), key, summary)
	}
	if s.History != nil {
		if _, err := s.History.Insert(r.Context(), digest, balance, summary); err != nil && s.Log != nil {
			s.Log.Warn("history insert failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "history store not configured", http.StatusServiceUnavailable)
		return
	}
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}
	rec, err := s.History.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const maxBody = 64 << 20 // 64MiB, generous for a text hypergraph description

func readAllLimited(r *http.Request) ([]byte, error) {
	lr := &io.LimitedReader{R: r.Body, N: maxBody}
	return io.ReadAll(lr)
}
