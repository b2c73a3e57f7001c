// Package httpapi exposes the recommendation core over a small chi-routed
// JSON API: text search, find-similar, the genre table, and health.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/moviemind/cinematch/internal/domain"
	"github.com/moviemind/cinematch/internal/domain/search/filter"
	"github.com/moviemind/cinematch/internal/domain/search/order"
	"github.com/moviemind/cinematch/internal/domain/search/request"
	"github.com/moviemind/cinematch/internal/logger"
	"github.com/moviemind/cinematch/internal/metrics"
	"github.com/moviemind/cinematch/internal/usecase/recommend"
)

// IndexHealth reports collection reachability and size.
type IndexHealth interface {
	Health(ctx context.Context) (uint64, error)
}

// Server is the HTTP API server.
type Server struct {
	rec    recommend.Recommender
	health IndexHealth
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(rec recommend.Recommender, health IndexHealth, logger *zap.Logger) *Server {
	return &Server{rec: rec, health: health, logger: logger}
}

// Routes mounts all handlers on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/v1/search", s.handleSearch)
	r.Get("/v1/movies/{id}/similar", s.handleSimilar)
	r.Get("/v1/genres", s.handleGenres)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// handleSearch handles GET /v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	boost, err := parseFloat(q.Get("boost"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "boost must be a number")
		return
	}
	limit, err := parseInt(q.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}

	filters, err := parseFilters(q.Get("genres"), q.Get("year_from"), q.Get("year_to"),
		q.Get("min_rating"), q.Get("safe"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	req, err := request.New(q.Get("q"), filters, boost, order.Order(q.Get("sort")), limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	mode := "semantic"
	if req.Query() == "" {
		mode = "popular"
	}

	start := time.Now()
	cands, err := s.rec.Search(r.Context(), &req)
	metrics.SearchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	if err != nil {
		if degraded, ok := s.degrade(r.Context(), mode, err); ok {
			writeJSON(w, http.StatusOK, degraded)
			return
		}
		metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(mode, "ok").Inc()
	metrics.CandidatesReturned.WithLabelValues(mode).Observe(float64(len(cands)))

	items := candidatesToDTO(cands)
	writeJSON(w, http.StatusOK, resultsResponse{Items: items, Count: len(items)})
}

// handleSimilar handles GET /v1/movies/{id}/similar.
//
// With fallback=true a zero-result filtered search is retried once without
// filters. That retry is policy, not ranking, which is why it lives here
// and not in the recommend service.
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	sourceID := strings.TrimSpace(chi.URLParam(r, "id"))
	if sourceID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "movie id is required")
		return
	}

	q := r.URL.Query()
	limit, err := parseInt(q.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "limit must be an integer")
		return
	}
	filters, err := parseFilters(q.Get("genres"), q.Get("year_from"), q.Get("year_to"),
		q.Get("min_rating"), q.Get("safe"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	wantFallback := q.Get("fallback") == "true"

	req := request.NewSimilar(filters, limit)

	start := time.Now()
	cands, err := s.rec.FindSimilar(r.Context(), sourceID, &req)
	metrics.SearchDuration.WithLabelValues("similar").Observe(time.Since(start).Seconds())

	if err != nil {
		if degraded, ok := s.degrade(r.Context(), "similar", err); ok {
			writeJSON(w, http.StatusOK, degraded)
			return
		}
		metrics.SearchRequestsTotal.WithLabelValues("similar", "error").Inc()
		s.handleDomainError(w, r, err)
		return
	}

	usedFallback := false
	if len(cands) == 0 && wantFallback && !filters.IsZero() {
		unfiltered := request.NewSimilar(filter.Filters{}, limit)
		cands, err = s.rec.FindSimilar(r.Context(), sourceID, &unfiltered)
		if err != nil {
			metrics.SearchRequestsTotal.WithLabelValues("similar", "error").Inc()
			s.handleDomainError(w, r, err)
			return
		}
		usedFallback = true
	}

	metrics.SearchRequestsTotal.WithLabelValues("similar", "ok").Inc()
	metrics.CandidatesReturned.WithLabelValues("similar").Observe(float64(len(cands)))

	items := candidatesToDTO(cands)
	writeJSON(w, http.StatusOK, resultsResponse{Items: items, Count: len(items), Fallback: usedFallback})
}

// handleGenres handles GET /v1/genres.
func (s *Server) handleGenres(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, genresResponse{Genres: domain.Genres()})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.health.Health(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "index unreachable"})
		return
	}
	if count == 0 {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "index empty"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Movies: count})
}

// degrade downgrades infrastructure failures to an empty-but-successful
// response: an unreachable index or a failed embedding call must never
// surface as a crash to the end user.
func (s *Server) degrade(ctx context.Context, mode string, err error) (resultsResponse, bool) {
	if !errors.Is(err, domain.ErrIndexUnavailable) && !errors.Is(err, domain.ErrEmbeddingFailure) {
		return resultsResponse{}, false
	}
	logger.FromContext(ctx).Warn("degrading to empty result set",
		zap.String("mode", mode), zap.Error(err))
	metrics.SearchRequestsTotal.WithLabelValues(mode, "degraded").Inc()
	return resultsResponse{Items: []movieDTO{}, Count: 0, Degraded: true}, true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "movie_not_found", "movie not found")
		return
	}
	logger.FromContext(r.Context()).Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func parseFilters(genres, yearFrom, yearTo, minRating, safe string) (filter.Filters, error) {
	var codes []int
	if genres != "" {
		for _, part := range strings.Split(genres, ",") {
			code, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return filter.Filters{}, errors.New("genres must be comma-separated integers")
			}
			codes = append(codes, code)
		}
	}

	from, err := parseInt(yearFrom, 0)
	if err != nil {
		return filter.Filters{}, errors.New("year_from must be an integer")
	}
	to, err := parseInt(yearTo, 0)
	if err != nil {
		return filter.Filters{}, errors.New("year_to must be an integer")
	}
	rating, err := parseFloat(minRating, 0)
	if err != nil {
		return filter.Filters{}, errors.New("min_rating must be a number")
	}

	return filter.New(codes, from, to, rating, safe == "true"), nil
}

func parseInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func parseFloat(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
