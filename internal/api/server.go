package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drflex-app/drflex-proxy/internal/chat"
	"github.com/drflex-app/drflex-proxy/internal/config"
	"github.com/drflex-app/drflex-proxy/internal/google"
	"github.com/drflex-app/drflex-proxy/internal/search"
)

// requestCeiling bounds a whole request, upstream fan-out included, to stay
// inside typical serverless execution limits.
const requestCeiling = 25 * time.Second

type Server struct {
	cfg          config.Config
	orchestrator *chat.Orchestrator
	resolver     *search.Resolver
	google       *google.Client
	logger       *zap.Logger
}

func NewServer(cfg config.Config, orchestrator *chat.Orchestrator, resolver *search.Resolver, googleClient *google.Client, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:          cfg,
		orchestrator: orchestrator,
		resolver:     resolver,
		google:       googleClient,
		logger:       logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)
	r.MethodNotAllowed(methodNotAllowed)

	r.Post("/drflex", s.handleChat)
	r.Post("/search-learning", s.handleSearchLearning)
	r.Post("/search-events", s.handleSearchEvents)
	r.Get("/calendar/events", s.handleCalendarEvents)
	r.Post("/calendar/refresh", s.handleCalendarRefresh)
	r.Get("/keep/notes", s.handleKeepNotes)
	r.Post("/keep/create", s.handleKeepCreate)
	r.Get("/health", s.health)
	r.Get("/ready", s.ready)

	return r
}

func (s *Server) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	return server.ListenAndServe()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		requestID := uuid.New().String()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func writeJSON(w http.ResponseWriter, statusCode int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func writeErrorDetails(w http.ResponseWriter, statusCode int, message, details string) {
	if details == "" {
		writeError(w, statusCode, message)
		return
	}
	writeJSON(w, statusCode, map[string]string{"error": message, "details": details})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type subsystemStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status     string                     `json:"status"`
	Subsystems map[string]subsystemStatus `json:"subsystems"`
}

// ready reports which upstream credentials are present. The LLM credential is
// the only hard requirement; search and Google degrade to fewer features.
func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	subsystems := map[string]subsystemStatus{}
	overall := http.StatusOK

	if s.llmAPIKey() == "" {
		subsystems["llm"] = subsystemStatus{Status: "error", Error: "missing API key"}
		overall = http.StatusServiceUnavailable
	} else {
		subsystems["llm"] = subsystemStatus{Status: "ok"}
	}

	if s.cfg.BraveAPIKey == "" {
		subsystems["search"] = subsystemStatus{Status: "skipped"}
	} else {
		subsystems["search"] = subsystemStatus{Status: "ok"}
	}

	if s.google.Configured() {
		subsystems["google"] = subsystemStatus{Status: "ok"}
	} else {
		subsystems["google"] = subsystemStatus{Status: "skipped"}
	}

	status := "ok"
	if overall != http.StatusOK {
		status = "degraded"
	}
	writeJSON(w, overall, readinessResponse{Status: status, Subsystems: subsystems})
}

func (s *Server) llmAPIKey() string {
	if s.cfg.LLMProvider == "openrouter" {
		return s.cfg.OpenRouterAPIKey
	}
	return s.cfg.OpenAIAPIKey
}

// ensureLLMConfigured guards handlers that need the completion API: missing
// credential is a configuration error surfaced before any upstream call.
func (s *Server) ensureLLMConfigured(w http.ResponseWriter) bool {
	if s.llmAPIKey() == "" {
		writeError(w, http.StatusInternalServerError, "Missing API key")
		return false
	}
	return true
}
