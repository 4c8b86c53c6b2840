// Package web serves the country lookup over HTTP: an HTML page that
// re-queries as the user types, and the JSON endpoint behind it.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/MakerMaker19/countryinfo/pkg/country"
	"github.com/MakerMaker19/countryinfo/pkg/lookup"
)

//go:embed templates/index.html
var templates embed.FS

const placeholder = "Enter country"

// CountryResponse is the body of GET /api/countries/{query}.
type CountryResponse struct {
	Query  string          `json:"query"`
	Found  bool            `json:"found"`
	Fields []country.Field `json:"fields"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type pageData struct {
	Placeholder string
	ErrorText   string
	Query       string
	Failed      bool
	Fields      []country.Field
}

type Server struct {
	loader  *lookup.Loader
	logger  *zap.Logger
	metrics *Metrics
	page    *template.Template
}

// NewServer builds a Server. metrics may be nil, in which case /metrics
// is not mounted.
func NewServer(loader *lookup.Loader, logger *zap.Logger, metrics *Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		loader:  loader,
		logger:  logger,
		metrics: metrics,
		page:    template.Must(template.ParseFS(templates, "templates/index.html")),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(Logger(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		r.Get("/countries/{query}", s.handleCountry)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Placeholder: placeholder,
		ErrorText:   lookup.ErrorText,
		Query:       r.URL.Query().Get("country"),
	}

	sess := s.lookup(r, data.Query)
	switch sess.State() {
	case lookup.StateFailed:
		data.Failed = true
	case lookup.StateLoaded:
		if rec, ok := sess.Record(); ok {
			data.Fields = country.Fields(rec)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
	}
}

func (s *Server) handleCountry(w http.ResponseWriter, r *http.Request) {
	query := routeQuery(r)

	sess := s.lookup(r, query)
	switch sess.State() {
	case lookup.StateFailed:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: lookup.ErrorText})
		return
	case lookup.StateLoaded:
		resp := CountryResponse{Query: query, Fields: []country.Field{}}
		if rec, ok := sess.Record(); ok {
			resp.Found = true
			resp.Fields = country.Fields(rec)
		}
		writeJSON(w, http.StatusOK, resp)
	default:
		// chi does not match an empty {query}, so this is unreachable
		// through the router.
		writeJSON(w, http.StatusOK, CountryResponse{Query: query, Fields: []country.Field{}})
	}
}

// routeQuery returns the {query} segment decoded exactly once. chi matches
// on RawPath when the request carries one (an escaped "/" in the query),
// and the param is still escaped then; otherwise it comes from the
// already decoded Path and is used as is.
func routeQuery(r *http.Request) string {
	query := chi.URLParam(r, "query")
	if r.URL.RawPath == "" {
		return query
	}
	if unescaped, err := url.PathUnescape(query); err == nil {
		return unescaped
	}
	return query
}

// lookup drives a one-shot session for a single request. The empty query
// never reaches the loader.
func (s *Server) lookup(r *http.Request, query string) lookup.Session {
	var sess lookup.Session
	req, ok := sess.SetQuery(query)
	if !ok {
		return sess
	}
	req.ID = requestID(r, req.ID)
	sess.Resolve(s.loader.Load(r.Context(), req))
	return sess
}

// requestID prefers the id chi assigned so the lookup log lines join up
// with the request log line.
func requestID(r *http.Request, fallback string) string {
	if id := chimiddleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
