package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"trusthire/server/internal/model"
	"trusthire/server/internal/repository"
)

func (s *Server) handleAdminListJobs(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && status != model.StatusPending && status != model.StatusApproved && status != model.StatusRejected {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]jobSummary, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, mapJobSummary(job))
	}
	writeJSON(w, http.StatusOK, resp)
}

type reviewRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

func (s *Server) handleAdminReviewJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Status = strings.TrimSpace(strings.ToLower(req.Status))
	if req.Status != model.StatusApproved && req.Status != model.StatusRejected {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	updated, err := s.store.ReviewJob(r.Context(), jobID, req.Status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !updated {
		writeError(w, http.StatusConflict, "status_not_pending")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     jobID,
		"status": req.Status,
	})
}

type adminVerification struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"companyId"`
	CompanyName   string  `json:"companyName"`
	RecruiterID   string  `json:"recruiterId"`
	RecruiterName string  `json:"recruiterName"`
	Status        string  `json:"status"`
	Details       *string `json:"details,omitempty"`
	AdminNotes    *string `json:"adminNotes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func (s *Server) handleAdminListVerifications(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && status != model.StatusPending && status != model.StatusApproved && status != model.StatusRejected {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	reqs, err := s.store.ListVerifications(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]adminVerification, 0, len(reqs))
	for _, req := range reqs {
		resp = append(resp, adminVerification{
			ID:            req.ID,
			CompanyID:     req.CompanyID,
			CompanyName:   req.CompanyName,
			RecruiterID:   req.RecruiterID,
			RecruiterName: req.RecruiterName,
			Status:        req.Status,
			Details:       req.Details,
			AdminNotes:    req.AdminNotes,
			CreatedAt:     req.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminReviewVerification(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	requestID := chi.URLParam(r, "requestID")

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Status = strings.TrimSpace(strings.ToLower(req.Status))
	if req.Status != model.StatusApproved && req.Status != model.StatusRejected {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	updated, err := s.store.ReviewVerification(r.Context(), requestID, req.Status, req.AdminNotes, claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !updated {
		writeError(w, http.StatusConflict, "status_not_pending")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     requestID,
		"status": req.Status,
	})
}

type adminReport struct {
	ID         string `json:"id"`
	JobID      string `json:"jobId"`
	JobTitle   string `json:"jobTitle"`
	ReporterID string `json:"reporterId"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

func (s *Server) handleAdminListReports(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && status != model.StatusPending && status != model.StatusResolved {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	reports, err := s.store.ListReports(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]adminReport, 0, len(reports))
	for _, report := range reports {
		resp = append(resp, adminReport{
			ID:         report.ID,
			JobID:      report.JobID,
			JobTitle:   report.JobTitle,
			ReporterID: report.ReporterID,
			Reason:     report.Reason,
			Status:     report.Status,
			CreatedAt:  report.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminResolveReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	updated, err := s.store.ResolveReport(r.Context(), reportID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !updated {
		writeError(w, http.StatusConflict, "status_not_pending")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     reportID,
		"status": model.StatusResolved,
	})
}

type adminUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListUserAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]adminUser, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, adminUser{
			ID:       account.UserID,
			FullName: account.FullName,
			Role:     account.Role,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) handleAdminUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	userID := chi.URLParam(r, "userID")

	// Admins cannot change their own role; that would lock the last
	// admin out of moderation.
	if userID == claims.UserID {
		writeError(w, http.StatusForbidden, "cannot_change_own_role")
		return
	}

	var req updateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Role = strings.TrimSpace(strings.ToLower(req.Role))
	if req.Role != model.RoleStudent && req.Role != model.RoleRecruiter && req.Role != model.RoleAdmin {
		writeError(w, http.StatusBadRequest, "invalid_role")
		return
	}

	if err := s.store.UpdateUserRole(r.Context(), userID, req.Role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":   userID,
		"role": req.Role,
	})
}
