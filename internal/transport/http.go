package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"github.com/rpggio/policyatlas/internal/metrics"
)

// CaseStudyService is the record service behind the REST API.
type CaseStudyService interface {
	ListCaseStudySummaries(ctx context.Context) ([]casestudy.Summary, error)
	GetCaseStudyDetail(ctx context.Context, id string) (*casestudy.Detail, error)
}

// Config holds the dependencies of the REST router.
type Config struct {
	Service CaseStudyService
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// RequestTimeout bounds each request; zero selects 30s.
	RequestTimeout time.Duration
}

// Server wires HTTP handlers.
type Server struct {
	svc    CaseStudyService
	logger *slog.Logger
}

// NewServer creates the REST router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(InstrumentMiddleware(cfg.Metrics, logger))
	r.Use(middleware.Timeout(timeout))

	srv := &Server{svc: cfg.Service, logger: logger}

	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", cfg.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/case-studies", srv.handleList)
		r.Get("/case-studies/stats", srv.handleStats)
		r.Get("/case-studies/{id}", srv.handleGet)
		r.Get("/browse", srv.handleBrowse)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.svc.ListCaseStudySummaries(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.GetCaseStudyDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.svc.ListCaseStudySummaries(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, browse.ComputeStats(summaries))
}

// handleBrowse is a stateless rendition of the browsing view: the criteria
// come from the query string and the response is one computed page.
//
//	GET /api/browse?q=act&region=Europe&region=Africa&quality=high&sort=by_name&page=2
func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summaries, err := s.svc.ListCaseStudySummaries(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, browse.Recompute(summaries, c))
}

func criteriaFromQuery(r *http.Request) (browse.Criteria, error) {
	q := r.URL.Query()
	c := browse.DefaultCriteria()
	c.Keyword = q.Get("q")

	for _, region := range q["region"] {
		if region = strings.TrimSpace(region); region != "" {
			c.Regions = append(c.Regions, browse.Region(region))
		}
	}
	for _, raw := range q["quality"] {
		quality, err := casestudy.ParseDataQuality(raw)
		if err != nil {
			return browse.Criteria{}, err
		}
		c.Qualities = append(c.Qualities, quality)
	}
	if key := browse.SortKey(q.Get("sort")); key.Valid() {
		c.Sort = key
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return browse.Criteria{}, casestudy.ErrInvalidInput
		}
		c.Page = page
	}
	return c, nil
}
