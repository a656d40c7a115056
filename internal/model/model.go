package model

import "time"

const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusAccepted = "accepted"
	StatusResolved = "resolved"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Profile struct {
	UserID   string
	FullName string
}

type RefreshSession struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
	UserAgent *string
	IPAddress *string
}

type Company struct {
	ID          string
	RecruiterID string
	Name        string
	Description *string
	Industry    *string
	Website     *string
	LogoURL     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type VerificationRequest struct {
	ID          string
	RecruiterID string
	CompanyID   string
	Status      string
	Details     *string
	AdminNotes  *string
	ReviewedBy  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Job struct {
	ID          string
	RecruiterID string
	CompanyID   string
	Title       string
	Description string
	Location    *string
	JobType     string
	SalaryMin   *int64
	SalaryMax   *int64
	Deadline    *time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Application struct {
	ID           string
	JobID        string
	StudentID    string
	CoverMessage *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Report struct {
	ID         string
	JobID      string
	ReporterID string
	Reason     string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Joined row shapes. One explicit type per query shape instead of untyped
// bags (jobs come back with their company, applications with their job).

type JobWithCompany struct {
	Job
	CompanyName string
	CompanyLogo *string
}

type ApplicationWithJob struct {
	Application
	JobTitle    string
	CompanyName string
}

type ApplicationWithStudent struct {
	Application
	JobTitle    string
	StudentName string
}

type VerificationWithCompany struct {
	VerificationRequest
	CompanyName   string
	RecruiterName string
}

type ReportWithJob struct {
	Report
	JobTitle string
}

type UserAccount struct {
	UserID   string
	FullName string
	Role     string
}

type Contact struct {
	UserID   string
	FullName string
}
