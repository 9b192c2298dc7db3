// Package server exposes the scoring engine over HTTP. It owns request
// parsing, CORS and error sanitization; all scoring happens in the engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/credence-io/credence/internal/extract"
	"github.com/credence-io/credence/pkg/credence"
	"github.com/credence-io/credence/pkg/credence/internalerr"
	"github.com/credence-io/credence/pkg/credence/store"
)

// urlCacheSize bounds the URL→extracted-text cache.
const urlCacheSize = 128

// Server handles the analysis API.
type Server struct {
	engine  *credence.Credence
	fetcher *extract.Fetcher
	store   store.Store // optional; nil disables persistence
	logger  *slog.Logger
	cache   *lru.Cache[string, extract.Article]
}

// New wires a server. The store may be nil.
func New(engine *credence.Credence, fetcher *extract.Fetcher, st store.Store, logger *slog.Logger) *Server {
	if fetcher == nil {
		fetcher = extract.NewFetcher(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, _ := lru.New[string, extract.Article](urlCacheSize)
	return &Server{
		engine:  engine,
		fetcher: fetcher,
		store:   st,
		logger:  logger,
		cache:   cache,
	}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("POST /api/analyze/text", s.handleAnalyzeText)
	mux.HandleFunc("POST /api/analyze/url", s.handleAnalyzeURL)
	mux.HandleFunc("POST /api/bootstrap", s.handleBootstrap)
	mux.HandleFunc("GET /api/examples", s.handleExamples)
	return cors(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "credence API is running"})
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "no JSON data provided")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "no text provided")
		return
	}

	s.analyze(w, r, req.Text, "", "")
}

type analyzeURLRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAnalyzeURL(w http.ResponseWriter, r *http.Request) {
	var req analyzeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "no JSON data provided")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "no URL provided")
		return
	}

	article, ok := s.cache.Get(req.URL)
	if !ok {
		var err error
		article, err = s.fetcher.FetchArticle(r.Context(), req.URL)
		if err != nil {
			s.logger.Warn("url extraction failed", "url", req.URL, "error", err)
			writeError(w, http.StatusBadRequest, "no content could be extracted from the URL")
			return
		}
		s.cache.Add(req.URL, article)
	}

	s.analyze(w, r, article.Text, req.URL, article.Title)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, text, url, title string) {
	report, err := s.engine.Score(r.Context(), text)
	if err != nil {
		s.logger.Error("scoring failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if s.store != nil {
		analysis := store.Analysis{
			ID:           report.ID,
			URL:          url,
			Title:        title,
			Text:         text,
			Label:        report.Classification,
			Confidence:   report.ConfidenceScore,
			Entropy:      report.EntropyScore,
			KLDivergence: report.KLDivergence,
			CreatedAt:    time.Now().UTC(),
		}
		// Persistence is best-effort; the report is already computed.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.SaveAnalysis(ctx, analysis); err != nil {
			s.logger.Warn("could not save analysis", "id", report.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, report)
}

type bootstrapRequest struct {
	Text string `json:"text"`
	Seed int64  `json:"seed"`
}

func (s *Server) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	var req bootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "no JSON data provided")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "no text provided")
		return
	}

	writeJSON(w, http.StatusOK, s.engine.BootstrapPreview(req.Text, req.Seed))
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []store.Analysis{})
		return
	}

	analyses, err := s.store.ListAnalyses(r.Context(), 20)
	if err != nil && !errors.Is(err, internalerr.ErrNotFound) {
		s.logger.Error("listing analyses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if analyses == nil {
		analyses = []store.Analysis{}
	}
	writeJSON(w, http.StatusOK, analyses)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
