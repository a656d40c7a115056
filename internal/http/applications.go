package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"trusthire/server/internal/model"
)

type inboxApplication struct {
	ID           string  `json:"id"`
	JobID        string  `json:"jobId"`
	JobTitle     string  `json:"jobTitle"`
	StudentID    string  `json:"studentId"`
	StudentName  string  `json:"studentName"`
	CoverMessage *string `json:"coverMessage,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}

// handleRecruiterApplications lists every application against the
// recruiter's postings.
func (s *Server) handleRecruiterApplications(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	apps, err := s.store.ListApplicationsForRecruiter(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]inboxApplication, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, inboxApplication{
			ID:           app.ID,
			JobID:        app.JobID,
			JobTitle:     app.JobTitle,
			StudentID:    app.StudentID,
			StudentName:  app.StudentName,
			CoverMessage: app.CoverMessage,
			Status:       app.Status,
			CreatedAt:    app.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type decideApplicationRequest struct {
	Status string `json:"status"`
}

// handleDecideApplication accepts or rejects a pending application.
// The store only matches pending rows belonging to the recruiter's own
// jobs, so decided rows and other recruiters' rows both come back as
// status_not_pending.
func (s *Server) handleDecideApplication(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	applicationID := chi.URLParam(r, "applicationID")

	var req decideApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Status = strings.TrimSpace(strings.ToLower(req.Status))
	if req.Status != model.StatusAccepted && req.Status != model.StatusRejected {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	updated, err := s.store.UpdateApplicationStatus(r.Context(), applicationID, req.Status, claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !updated {
		writeError(w, http.StatusConflict, "status_not_pending")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":     applicationID,
		"status": req.Status,
	})
}
