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

type jobSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    *string `json:"location,omitempty"`
	JobType     string  `json:"jobType"`
	SalaryMin   *int64  `json:"salaryMin,omitempty"`
	SalaryMax   *int64  `json:"salaryMax,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Status      string  `json:"status"`
	CompanyName string  `json:"companyName"`
	CompanyLogo *string `json:"companyLogo,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func mapJobSummary(job model.JobWithCompany) jobSummary {
	resp := jobSummary{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		JobType:     job.JobType,
		SalaryMin:   job.SalaryMin,
		SalaryMax:   job.SalaryMax,
		Status:      job.Status,
		CompanyName: job.CompanyName,
		CompanyLogo: job.CompanyLogo,
		CreatedAt:   job.CreatedAt.UTC().Format(time.RFC3339),
	}
	if job.Deadline != nil {
		deadline := job.Deadline.UTC().Format(time.RFC3339)
		resp.Deadline = &deadline
	}
	return resp
}

// handleListJobs serves the public board: approved jobs only, with
// optional type filter, free-text search and sort order.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobType := strings.TrimSpace(r.URL.Query().Get("type"))
	if jobType != "" && jobType != "full-time" && jobType != "internship" {
		writeError(w, http.StatusBadRequest, "invalid_job_type")
		return
	}
	sort := strings.TrimSpace(r.URL.Query().Get("sort"))

	jobs, err := s.store.ListApprovedJobs(r.Context(), jobType, sort)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	if query := strings.TrimSpace(r.URL.Query().Get("q")); query != "" {
		jobs = filterJobs(jobs, query)
	}

	resp := make([]jobSummary, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, mapJobSummary(job))
	}
	writeJSON(w, http.StatusOK, resp)
}

// filterJobs keeps jobs whose title, company or location contains the
// query, case-insensitively.
func filterJobs(jobs []model.JobWithCompany, query string) []model.JobWithCompany {
	query = strings.ToLower(query)
	matched := make([]model.JobWithCompany, 0, len(jobs))
	for _, job := range jobs {
		if strings.Contains(strings.ToLower(job.Title), query) ||
			strings.Contains(strings.ToLower(job.CompanyName), query) ||
			(job.Location != nil && strings.Contains(strings.ToLower(*job.Location), query)) {
			matched = append(matched, job)
		}
	}
	return matched
}

type applyRequest struct {
	CoverMessage *string `json:"coverMessage,omitempty"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	jobID := chi.URLParam(r, "jobID")

	var req applyRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request")
			return
		}
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	// Pending or rejected postings are not open for applications.
	if job.Status != model.StatusApproved {
		writeError(w, http.StatusNotFound, "job_not_found")
		return
	}

	app, err := s.store.CreateApplication(r.Context(), model.Application{
		JobID:        jobID,
		StudentID:    claims.UserID,
		CoverMessage: req.CoverMessage,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusConflict, "already_applied")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":     app.ID,
		"status": app.Status,
	})
}

type reportRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleReportJob(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	jobID := chi.URLParam(r, "jobID")

	var req reportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		writeError(w, http.StatusBadRequest, "missing_reason")
		return
	}

	if _, err := s.store.GetJob(r.Context(), jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	report, err := s.store.CreateReport(r.Context(), model.Report{
		JobID:      jobID,
		ReporterID: claims.UserID,
		Reason:     req.Reason,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":     report.ID,
		"status": report.Status,
	})
}

type applicationSummary struct {
	ID           string  `json:"id"`
	JobID        string  `json:"jobId"`
	JobTitle     string  `json:"jobTitle"`
	CompanyName  string  `json:"companyName"`
	CoverMessage *string `json:"coverMessage,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}

func (s *Server) handleMyApplications(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	apps, err := s.store.ListApplicationsByStudent(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]applicationSummary, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, applicationSummary{
			ID:           app.ID,
			JobID:        app.JobID,
			JobTitle:     app.JobTitle,
			CompanyName:  app.CompanyName,
			CoverMessage: app.CoverMessage,
			Status:       app.Status,
			CreatedAt:    app.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
