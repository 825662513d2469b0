package http

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/furnex/furnex"
	"github.com/google/uuid"
)

//go:embed templates
var templateFS embed.FS

// ShutdownTimeout is how long Close waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Server exposes the extraction pipeline over HTTP: an HTML form for
// browsers, a JSON API, and a health check.
type Server struct {
	ln     net.Listener
	server *http.Server
	tmpl   *template.Template

	// Addr is the bind address, e.g. ":8000". Set before calling Open.
	Addr string

	// Extractor runs the extraction pipeline for submitted URLs.
	Extractor furnex.ProductExtractor

	// Logger receives access and error logs. Defaults to slog.Default.
	Logger *slog.Logger

	// Version is reported by the health endpoint.
	Version string
}

// NewServer creates a Server with parsed templates.
func NewServer() *Server {
	return &Server{
		tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Handler builds the route table wrapped with request-ID, logging, and
// panic-recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("GET /api/extract", s.handleAPIExtract)
	mux.HandleFunc("GET /health", s.handleHealth)
	return s.withRequestID(s.withLogging(s.withRecovery(mux)))
}

// Open starts listening on Addr. It returns once the listener is
// bound; requests are served on a background goroutine.
func (s *Server) Open() error {
	if s.Addr == "" {
		return furnex.Errorf(furnex.EINVALID, "server address required")
	}
	if s.Extractor == nil {
		return furnex.Errorf(furnex.EINVALID, "server extractor required")
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger().Error("server terminated", "error", err)
		}
	}()

	return nil
}

// URL returns the base URL of the running server, for tests.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// indexData is the template payload for the form and results page.
type indexData struct {
	URL           string
	Products      []string
	ProductsCount int
	Error         string
	Searched      bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, indexData{})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	url := r.FormValue("url")

	if err := furnex.ValidateURL(url); err != nil {
		s.render(w, indexData{URL: url, Error: furnex.ErrorMessage(err)})
		return
	}

	result, err := s.Extractor.ExtractProducts(r.Context(), url)
	if err != nil {
		s.logger().Error("extraction failed", "url", url, "error", err)
		s.render(w, indexData{URL: url, Error: furnex.ErrorMessage(err)})
		return
	}

	if len(result.Methods) == 0 {
		s.render(w, indexData{URL: url, Searched: true, Error: "Could not retrieve any data from the page"})
		return
	}

	s.render(w, indexData{
		URL:           url,
		Products:      result.Products,
		ProductsCount: result.TotalCount,
		Searched:      true,
	})
}

// extractResponse is the JSON API payload.
type extractResponse struct {
	Success       bool     `json:"success"`
	URL           string   `json:"url"`
	ProductsCount int      `json:"products_count"`
	Products      []string `json:"products"`
	MethodsUsed   []string `json:"methods_used"`
}

func (s *Server) handleAPIExtract(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")

	if err := furnex.ValidateURL(url); err != nil {
		s.writeError(w, http.StatusBadRequest, furnex.ErrorMessage(err))
		return
	}

	result, err := s.Extractor.ExtractProducts(r.Context(), url)
	if err != nil {
		s.logger().Error("extraction failed", "url", url, "error", err)
		status := http.StatusInternalServerError
		if furnex.ErrorCode(err) == furnex.EINVALID {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, furnex.ErrorMessage(err))
		return
	}

	products := result.Products
	if products == nil {
		products = []string{}
	}
	methods := result.Methods
	if methods == nil {
		methods = []string{}
	}

	s.writeJSON(w, http.StatusOK, extractResponse{
		Success:       true,
		URL:           result.URL,
		ProductsCount: result.TotalCount,
		Products:      products,
		MethodsUsed:   methods,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Version,
	})
}

func (s *Server) render(w http.ResponseWriter, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger().Error("template render failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger().Error("response encoding failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{"success": false, "error": message})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// withRequestID tags every request with a UUID, exposed to clients via
// the X-Request-ID header and to log lines via context.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger().Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(begin),
			"request_id", requestIDFromContext(r.Context()),
		)
	})
}

// withRecovery converts panics into 500 responses so one bad page
// cannot take the server down.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger().Error("panic recovered",
					"panic", v,
					"path", r.URL.Path,
					"request_id", requestIDFromContext(r.Context()),
				)
				s.writeError(w, http.StatusInternalServerError, "Internal error.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type contextKey int

const requestIDKey contextKey = iota

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
