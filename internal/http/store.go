package http

import (
	"context"
	"time"

	"trusthire/server/internal/model"
)

// Store is the persistence surface the handlers need. The production
// implementation is *repository.Store; tests use an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash, fullName, role string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, userID string) (model.User, error)
	GetRole(ctx context.Context, userID string) (string, error)
	GetProfile(ctx context.Context, userID string) (model.Profile, error)
	ListUserAccounts(ctx context.Context) ([]model.UserAccount, error)
	UpdateUserRole(ctx context.Context, userID, role string) error
	CountUsers(ctx context.Context) (int64, error)

	CreateRefreshSession(ctx context.Context, session model.RefreshSession) error
	GetRefreshSession(ctx context.Context, tokenHash string) (model.RefreshSession, error)
	RevokeRefreshSession(ctx context.Context, sessionID string, revokedAt time.Time) error
	RevokeRefreshSessionsByUser(ctx context.Context, userID string, revokedAt time.Time) error

	GetCompanyByRecruiter(ctx context.Context, recruiterID string) (model.Company, error)
	CreateCompany(ctx context.Context, company model.Company) (model.Company, error)
	UpdateCompany(ctx context.Context, company model.Company) (model.Company, error)

	GetVerificationByRecruiter(ctx context.Context, recruiterID string) (model.VerificationRequest, error)
	CreateVerification(ctx context.Context, req model.VerificationRequest) (model.VerificationRequest, error)
	ListVerifications(ctx context.Context, status string) ([]model.VerificationWithCompany, error)
	ReviewVerification(ctx context.Context, id, status string, adminNotes *string, reviewedBy string) (bool, error)
	IsRecruiterVerified(ctx context.Context, recruiterID string) (bool, error)
	CountVerificationsByStatus(ctx context.Context, status string) (int64, error)

	ListApprovedJobs(ctx context.Context, jobType, sort string) ([]model.JobWithCompany, error)
	GetJob(ctx context.Context, jobID string) (model.JobWithCompany, error)
	CreateJob(ctx context.Context, job model.Job) (model.Job, error)
	ListJobsByRecruiter(ctx context.Context, recruiterID string) ([]model.JobWithCompany, error)
	ListJobs(ctx context.Context, status string) ([]model.JobWithCompany, error)
	ReviewJob(ctx context.Context, jobID, status string) (bool, error)
	CountJobs(ctx context.Context) (int64, error)
	CountJobsByStatus(ctx context.Context, status string) (int64, error)
	CountJobsByRecruiter(ctx context.Context, recruiterID string) (int64, error)

	CreateApplication(ctx context.Context, app model.Application) (model.Application, error)
	ListApplicationsByStudent(ctx context.Context, studentID string) ([]model.ApplicationWithJob, error)
	ListApplicationsForRecruiter(ctx context.Context, recruiterID string) ([]model.ApplicationWithStudent, error)
	UpdateApplicationStatus(ctx context.Context, applicationID, status, recruiterID string) (bool, error)
	CountApplicationsByStudent(ctx context.Context, studentID string) (int64, error)
	CountApplicationsForRecruiter(ctx context.Context, recruiterID string) (int64, error)

	CreateReport(ctx context.Context, report model.Report) (model.Report, error)
	ListReports(ctx context.Context, status string) ([]model.ReportWithJob, error)
	ResolveReport(ctx context.Context, reportID string) (bool, error)
	CountReportsByStatus(ctx context.Context, status string) (int64, error)

	CreateMessage(ctx context.Context, senderID, receiverID, content string) (model.Message, error)
	ListConversation(ctx context.Context, userID, contactID string) ([]model.Message, error)
	MarkConversationRead(ctx context.Context, userID, contactID string) error
	ListContacts(ctx context.Context, userID string) ([]model.Contact, error)
}
