// Package server is the thin HTTP collaborator over the core: parameter
// parsing, status mapping, and slim JSON responses only. No corpus logic
// lives here.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/bramtechsolutions/campaign-rag/pkg/answer"
	"github.com/bramtechsolutions/campaign-rag/pkg/export"
	"github.com/bramtechsolutions/campaign-rag/pkg/ingest"
	"github.com/bramtechsolutions/campaign-rag/pkg/search"
)

// maxIngestBody caps the accepted export size (32 MiB).
const maxIngestBody = 32 << 20

// Server wires the pipeline and both query engines to HTTP routes.
type Server struct {
	pipeline *ingest.Pipeline
	search   *search.Engine
	answer   *answer.Engine
}

// New creates a server over the given core components.
func New(pipeline *ingest.Pipeline, searchEngine *search.Engine, answerEngine *answer.Engine) *Server {
	return &Server{pipeline: pipeline, search: searchEngine, answer: answerEngine}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /ask", s.handleAsk)
	mux.HandleFunc("GET /query", s.handleQuery)
	mux.HandleFunc("POST /ingest", s.handleIngest)
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "campaign-rag is running."})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Query param 'q' is required."})
		return
	}
	writeJSON(w, http.StatusOK, s.answer.Ask(q))
}

// queryResponse is the multi-match API payload.
type queryResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []search.Match `json:"results"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := params.Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Query param 'q' is required."})
		return
	}
	opts := search.Options{Phrase: params.Get("phrase") == "true"}
	results := s.search.QueryWith(q, opts)
	writeJSON(w, http.StatusOK, queryResponse{Query: q, Count: len(results), Results: results})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxIngestBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
		return
	}

	counts, err := s.pipeline.Run(data)
	if err != nil {
		if errors.Is(err, export.ErrMalformedInput) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ingest failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "ingestion failed"})
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
