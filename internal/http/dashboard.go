package http

import (
	"context"
	"errors"
	"net/http"

	"trusthire/server/internal/model"
	"trusthire/server/internal/repository"
)

type studentDashboard struct {
	OpenJobs     int64 `json:"openJobs"`
	Applications int64 `json:"applications"`
}

type recruiterDashboard struct {
	Jobs         int64 `json:"jobs"`
	Applications int64 `json:"applications"`
	HasCompany   bool  `json:"hasCompany"`
	Verified     bool  `json:"verified"`
}

type adminDashboard struct {
	Users                int64 `json:"users"`
	Jobs                 int64 `json:"jobs"`
	PendingVerifications int64 `json:"pendingVerifications"`
	PendingReports       int64 `json:"pendingReports"`
}

// handleDashboard returns per-role counters. A failed counter degrades
// to zero instead of failing the whole dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return
	}

	switch claims.Role {
	case model.RoleStudent:
		writeJSON(w, http.StatusOK, studentDashboard{
			OpenJobs:     s.count(r.Context(), "open_jobs", func(ctx context.Context) (int64, error) { return s.store.CountJobsByStatus(ctx, model.StatusApproved) }),
			Applications: s.count(r.Context(), "applications", func(ctx context.Context) (int64, error) { return s.store.CountApplicationsByStudent(ctx, claims.UserID) }),
		})
	case model.RoleRecruiter:
		hasCompany := true
		if _, err := s.store.GetCompanyByRecruiter(r.Context(), claims.UserID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn("dashboard: company lookup failed", "error", err)
			}
			hasCompany = false
		}
		verified, err := s.store.IsRecruiterVerified(r.Context(), claims.UserID)
		if err != nil {
			s.logger.Warn("dashboard: verification lookup failed", "error", err)
			verified = false
		}
		writeJSON(w, http.StatusOK, recruiterDashboard{
			Jobs:         s.count(r.Context(), "jobs", func(ctx context.Context) (int64, error) { return s.store.CountJobsByRecruiter(ctx, claims.UserID) }),
			Applications: s.count(r.Context(), "applications", func(ctx context.Context) (int64, error) { return s.store.CountApplicationsForRecruiter(ctx, claims.UserID) }),
			HasCompany:   hasCompany,
			Verified:     verified,
		})
	case model.RoleAdmin:
		writeJSON(w, http.StatusOK, adminDashboard{
			Users:                s.count(r.Context(), "users", func(ctx context.Context) (int64, error) { return s.store.CountUsers(ctx) }),
			Jobs:                 s.count(r.Context(), "jobs", func(ctx context.Context) (int64, error) { return s.store.CountJobs(ctx) }),
			PendingVerifications: s.count(r.Context(), "pending_verifications", func(ctx context.Context) (int64, error) { return s.store.CountVerificationsByStatus(ctx, model.StatusPending) }),
			PendingReports:       s.count(r.Context(), "pending_reports", func(ctx context.Context) (int64, error) { return s.store.CountReportsByStatus(ctx, model.StatusPending) }),
		})
	default:
		writeError(w, http.StatusForbidden, "forbidden")
	}
}

func (s *Server) count(ctx context.Context, name string, fn func(context.Context) (int64, error)) int64 {
	n, err := fn(ctx)
	if err != nil {
		s.logger.Warn("dashboard: counter failed", "counter", name, "error", err)
		return 0
	}
	return n
}
