package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trusthire/server/internal/auth"
	"trusthire/server/internal/config"
	"trusthire/server/internal/realtime"
)

type Server struct {
	cfg    config.Config
	store  Store
	hub    *realtime.Hub
	logger *slog.Logger
}

func NewServer(cfg config.Config, store Store, hub *realtime.Hub, logger *slog.Logger) *Server {
	return &Server{cfg: cfg, store: store, hub: hub, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/refresh", s.handleRefresh)
	r.With(s.authMiddleware).Post("/auth/logout", s.handleLogout)
	r.With(s.authMiddleware).Get("/auth/me", s.handleGetMe)

	r.With(s.authMiddleware).Get("/dashboard", s.handleDashboard)

	r.With(s.authMiddleware, s.requireStudent).Get("/jobs", s.handleListJobs)
	r.With(s.authMiddleware, s.requireStudent).Post("/jobs/{jobID}/apply", s.handleApply)
	r.With(s.authMiddleware, s.requireStudent).Post("/jobs/{jobID}/report", s.handleReportJob)
	r.With(s.authMiddleware, s.requireStudent).Get("/my-applications", s.handleMyApplications)

	r.Route("/company", func(r chi.Router) {
		r.Use(s.authMiddleware, s.requireRecruiter)
		r.Get("/", s.handleGetCompany)
		r.Post("/", s.handleCreateCompany)
		r.Patch("/", s.handleUpdateCompany)
	})
	r.Route("/verification", func(r chi.Router) {
		r.Use(s.authMiddleware, s.requireRecruiter)
		r.Get("/", s.handleGetVerification)
		r.Post("/", s.handleRequestVerification)
	})
	r.With(s.authMiddleware, s.requireRecruiter).Get("/my-jobs", s.handleMyJobs)
	r.With(s.authMiddleware, s.requireRecruiter).Post("/my-jobs", s.handlePostJob)
	r.With(s.authMiddleware, s.requireRecruiter).Get("/applications", s.handleRecruiterApplications)
	r.With(s.authMiddleware, s.requireRecruiter).Patch("/applications/{applicationID}", s.handleDecideApplication)

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware, s.requireAdmin)
		r.Get("/jobs", s.handleAdminListJobs)
		r.Patch("/jobs/{jobID}", s.handleAdminReviewJob)
		r.Get("/verifications", s.handleAdminListVerifications)
		r.Patch("/verifications/{requestID}", s.handleAdminReviewVerification)
		r.Get("/reports", s.handleAdminListReports)
		r.Patch("/reports/{reportID}", s.handleAdminResolveReport)
		r.Get("/users", s.handleAdminListUsers)
		r.Patch("/users/{userID}", s.handleAdminUpdateUserRole)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/contacts", s.handleListContacts)
		r.Get("/{contactID}", s.handleGetConversation)
		r.Post("/{contactID}", s.handleSendMessage)
		r.Get("/{contactID}/stream", s.handleStreamConversation)
	})

	return r
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}

		claims, err := auth.ParseToken(s.cfg.JWTSecret, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireStudent(next http.Handler) http.Handler {
	return requireRole(next, "student")
}

func (s *Server) requireRecruiter(next http.Handler) http.Handler {
	return requireRole(next, "recruiter")
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return requireRole(next, "admin")
}

func requireRole(next http.Handler, role string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil || claims.Role != role {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Flush() {
	if flusher, ok := rec.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type claimsKey struct{}

func claimsFromContext(ctx context.Context) *auth.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*auth.Claims)
	return claims
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return ""
}
