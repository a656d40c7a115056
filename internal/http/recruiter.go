package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"trusthire/server/internal/model"
	"trusthire/server/internal/repository"
)

type companyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Website     *string `json:"website,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
}

type companyResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Website     *string `json:"website,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func mapCompanyResponse(company model.Company) companyResponse {
	return companyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Industry:    company.Industry,
		Website:     company.Website,
		LogoURL:     company.LogoURL,
		CreatedAt:   company.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	company, err := s.store.GetCompanyByRecruiter(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "company_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, mapCompanyResponse(company))
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	company, err := s.store.CreateCompany(r.Context(), model.Company{
		RecruiterID: claims.UserID,
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusConflict, "company_exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusCreated, mapCompanyResponse(company))
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	company, err := s.store.UpdateCompany(r.Context(), model.Company{
		RecruiterID: claims.UserID,
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "company_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, mapCompanyResponse(company))
}

type verificationResponse struct {
	ID         string  `json:"id"`
	CompanyID  string  `json:"companyId"`
	Status     string  `json:"status"`
	Details    *string `json:"details,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

func mapVerificationResponse(req model.VerificationRequest) verificationResponse {
	return verificationResponse{
		ID:         req.ID,
		CompanyID:  req.CompanyID,
		Status:     req.Status,
		Details:    req.Details,
		AdminNotes: req.AdminNotes,
		CreatedAt:  req.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleGetVerification(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	req, err := s.store.GetVerificationByRecruiter(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "verification_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, mapVerificationResponse(req))
}

type verificationRequestBody struct {
	Details *string `json:"details,omitempty"`
}

// handleRequestVerification files the recruiter's one verification
// request. It needs a company profile first, and the unique constraint
// on recruiter_id makes resubmission a conflict regardless of outcome.
func (s *Server) handleRequestVerification(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var body verificationRequestBody
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request")
			return
		}
	}

	company, err := s.store.GetCompanyByRecruiter(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusPreconditionFailed, "company_required")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	req, err := s.store.CreateVerification(r.Context(), model.VerificationRequest{
		RecruiterID: claims.UserID,
		CompanyID:   company.ID,
		Details:     body.Details,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusConflict, "verification_exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusCreated, mapVerificationResponse(req))
}

func (s *Server) handleMyJobs(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	jobs, err := s.store.ListJobsByRecruiter(r.Context(), claims.UserID)
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

type postJobRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    *string `json:"location,omitempty"`
	JobType     string  `json:"jobType"`
	SalaryMin   *int64  `json:"salaryMin,omitempty"`
	SalaryMax   *int64  `json:"salaryMax,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// handlePostJob creates a posting in pending status. Only verified
// recruiters with a company profile may post.
func (s *Server) handlePostJob(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var req postJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.JobType = strings.TrimSpace(req.JobType)
	if req.Title == "" || req.Description == "" || req.JobType == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	if req.JobType != "full-time" && req.JobType != "internship" {
		writeError(w, http.StatusBadRequest, "invalid_job_type")
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_deadline")
			return
		}
		deadline = &parsed
	}

	company, err := s.store.GetCompanyByRecruiter(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusPreconditionFailed, "company_required")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	verified, err := s.store.IsRecruiterVerified(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !verified {
		writeError(w, http.StatusForbidden, "verification_required")
		return
	}

	job, err := s.store.CreateJob(r.Context(), model.Job{
		RecruiterID: claims.UserID,
		CompanyID:   company.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		JobType:     req.JobType,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Deadline:    deadline,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":     job.ID,
		"status": job.Status,
	})
}
