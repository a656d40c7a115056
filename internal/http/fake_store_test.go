package http

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"trusthire/server/internal/model"
	"trusthire/server/internal/repository"
)

// fakeStore is an in-memory Store used by the handler tests. It mirrors
// the database semantics the handlers rely on: unique constraints come
// back as ErrDuplicate, pending-only updates report whether they
// matched.
type fakeStore struct {
	mu sync.Mutex

	seq           int
	users         map[string]model.User
	emails        map[string]string
	profiles      map[string]model.Profile
	roles         map[string]string
	sessions      map[string]model.RefreshSession
	companies     map[string]model.Company
	companyByRec  map[string]string
	verifications map[string]model.VerificationRequest
	verifByRec    map[string]string
	jobs          map[string]model.Job
	applications  map[string]model.Application
	reports       map[string]model.Report
	messages      []model.Message
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         map[string]model.User{},
		emails:        map[string]string{},
		profiles:      map[string]model.Profile{},
		roles:         map[string]string{},
		sessions:      map[string]model.RefreshSession{},
		companies:     map[string]model.Company{},
		companyByRec:  map[string]string{},
		verifications: map[string]model.VerificationRequest{},
		verifByRec:    map[string]string{},
		jobs:          map[string]model.Job{},
		applications:  map[string]model.Application{},
		reports:       map[string]model.Report{},
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) now() time.Time {
	// Strictly increasing so "newest first" orderings are stable.
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Second)
}

func (f *fakeStore) CreateUser(_ context.Context, email, passwordHash, fullName, role string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.emails[email]; taken {
		return model.User{}, repository.ErrDuplicate
	}
	id := f.nextID("user")
	user := model.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: f.now(), UpdatedAt: f.now()}
	f.users[id] = user
	f.emails[email] = id
	f.profiles[id] = model.Profile{UserID: id, FullName: fullName}
	f.roles[id] = role
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.emails[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return f.users[id], nil
}

func (f *fakeStore) GetUserByID(_ context.Context, userID string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GetRole(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[userID]
	if !ok {
		return "", repository.ErrNotFound
	}
	return role, nil
}

func (f *fakeStore) GetProfile(_ context.Context, userID string) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	return profile, nil
}

func (f *fakeStore) ListUserAccounts(_ context.Context) ([]model.UserAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	accounts := []model.UserAccount{}
	for id := range f.users {
		role, ok := f.roles[id]
		if !ok {
			role = "unknown"
		}
		accounts = append(accounts, model.UserAccount{
			UserID:   id,
			FullName: f.profiles[id].FullName,
			Role:     role,
		})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].UserID < accounts[j].UserID })
	return accounts, nil
}

func (f *fakeStore) UpdateUserRole(_ context.Context, userID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return repository.ErrNotFound
	}
	f.roles[userID] = role
	return nil
}

func (f *fakeStore) CountUsers(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeStore) CreateRefreshSession(_ context.Context, session model.RefreshSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.TokenHash] = session
	return nil
}

func (f *fakeStore) GetRefreshSession(_ context.Context, tokenHash string) (model.RefreshSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[tokenHash]
	if !ok {
		return model.RefreshSession{}, repository.ErrNotFound
	}
	return session, nil
}

func (f *fakeStore) RevokeRefreshSession(_ context.Context, sessionID string, revokedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for hash, session := range f.sessions {
		if session.ID == sessionID {
			session.RevokedAt = &revokedAt
			f.sessions[hash] = session
		}
	}
	return nil
}

func (f *fakeStore) RevokeRefreshSessionsByUser(_ context.Context, userID string, revokedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for hash, session := range f.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &revokedAt
			f.sessions[hash] = session
		}
	}
	return nil
}

func (f *fakeStore) GetCompanyByRecruiter(_ context.Context, recruiterID string) (model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.companyByRec[recruiterID]
	if !ok {
		return model.Company{}, repository.ErrNotFound
	}
	return f.companies[id], nil
}

func (f *fakeStore) CreateCompany(_ context.Context, company model.Company) (model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.companyByRec[company.RecruiterID]; exists {
		return model.Company{}, repository.ErrDuplicate
	}
	company.ID = f.nextID("company")
	company.CreatedAt = f.now()
	company.UpdatedAt = f.now()
	f.companies[company.ID] = company
	f.companyByRec[company.RecruiterID] = company.ID
	return company, nil
}

func (f *fakeStore) UpdateCompany(_ context.Context, company model.Company) (model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.companyByRec[company.RecruiterID]
	if !ok {
		return model.Company{}, repository.ErrNotFound
	}
	existing := f.companies[id]
	company.ID = existing.ID
	company.CreatedAt = existing.CreatedAt
	company.UpdatedAt = f.now()
	f.companies[id] = company
	return company, nil
}

func (f *fakeStore) GetVerificationByRecruiter(_ context.Context, recruiterID string) (model.VerificationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.verifByRec[recruiterID]
	if !ok {
		return model.VerificationRequest{}, repository.ErrNotFound
	}
	return f.verifications[id], nil
}

func (f *fakeStore) CreateVerification(_ context.Context, req model.VerificationRequest) (model.VerificationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.verifByRec[req.RecruiterID]; exists {
		return model.VerificationRequest{}, repository.ErrDuplicate
	}
	req.ID = f.nextID("verif")
	req.Status = model.StatusPending
	req.CreatedAt = f.now()
	req.UpdatedAt = f.now()
	f.verifications[req.ID] = req
	f.verifByRec[req.RecruiterID] = req.ID
	return req, nil
}

func (f *fakeStore) ListVerifications(_ context.Context, status string) ([]model.VerificationWithCompany, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reqs := []model.VerificationWithCompany{}
	for _, req := range f.verifications {
		if status != "" && req.Status != status {
			continue
		}
		reqs = append(reqs, model.VerificationWithCompany{
			VerificationRequest: req,
			CompanyName:         f.companies[req.CompanyID].Name,
			RecruiterName:       f.profiles[req.RecruiterID].FullName,
		})
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ID < reqs[j].ID })
	return reqs, nil
}

func (f *fakeStore) ReviewVerification(_ context.Context, id, status string, adminNotes *string, reviewedBy string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.verifications[id]
	if !ok || req.Status != model.StatusPending {
		return false, nil
	}
	req.Status = status
	req.AdminNotes = adminNotes
	req.ReviewedBy = &reviewedBy
	req.UpdatedAt = f.now()
	f.verifications[id] = req
	return true, nil
}

func (f *fakeStore) IsRecruiterVerified(_ context.Context, recruiterID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.verifByRec[recruiterID]
	if !ok {
		return false, nil
	}
	return f.verifications[id].Status == model.StatusApproved, nil
}

func (f *fakeStore) CountVerificationsByStatus(_ context.Context, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, req := range f.verifications {
		if req.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) withCompany(job model.Job) model.JobWithCompany {
	return model.JobWithCompany{
		Job:         job,
		CompanyName: f.companies[job.CompanyID].Name,
		CompanyLogo: f.companies[job.CompanyID].LogoURL,
	}
}

func (f *fakeStore) ListApprovedJobs(_ context.Context, jobType, sortOrder string) ([]model.JobWithCompany, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	jobs := []model.JobWithCompany{}
	for _, job := range f.jobs {
		if job.Status != model.StatusApproved {
			continue
		}
		if jobType != "" && job.JobType != jobType {
			continue
		}
		jobs = append(jobs, f.withCompany(job))
	}
	if sortOrder == "location" {
		sort.Slice(jobs, func(i, j int) bool {
			li, lj := "", ""
			if jobs[i].Location != nil {
				li = strings.ToLower(*jobs[i].Location)
			}
			if jobs[j].Location != nil {
				lj = strings.ToLower(*jobs[j].Location)
			}
			return li < lj
		})
	} else {
		sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.After(jobs[j].CreatedAt) })
	}
	return jobs, nil
}

func (f *fakeStore) GetJob(_ context.Context, jobID string) (model.JobWithCompany, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok {
		return model.JobWithCompany{}, repository.ErrNotFound
	}
	return f.withCompany(job), nil
}

func (f *fakeStore) CreateJob(_ context.Context, job model.Job) (model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job.ID = f.nextID("job")
	job.Status = model.StatusPending
	job.CreatedAt = f.now()
	job.UpdatedAt = f.now()
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeStore) ListJobsByRecruiter(_ context.Context, recruiterID string) ([]model.JobWithCompany, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	jobs := []model.JobWithCompany{}
	for _, job := range f.jobs {
		if job.RecruiterID == recruiterID {
			jobs = append(jobs, f.withCompany(job))
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.After(jobs[j].CreatedAt) })
	return jobs, nil
}

func (f *fakeStore) ListJobs(_ context.Context, status string) ([]model.JobWithCompany, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	jobs := []model.JobWithCompany{}
	for _, job := range f.jobs {
		if status != "" && job.Status != status {
			continue
		}
		jobs = append(jobs, f.withCompany(job))
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.After(jobs[j].CreatedAt) })
	return jobs, nil
}

func (f *fakeStore) ReviewJob(_ context.Context, jobID, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok || job.Status != model.StatusPending {
		return false, nil
	}
	job.Status = status
	job.UpdatedAt = f.now()
	f.jobs[jobID] = job
	return true, nil
}

func (f *fakeStore) CountJobs(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.jobs)), nil
}

func (f *fakeStore) CountJobsByStatus(_ context.Context, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, job := range f.jobs {
		if job.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountJobsByRecruiter(_ context.Context, recruiterID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, job := range f.jobs {
		if job.RecruiterID == recruiterID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateApplication(_ context.Context, app model.Application) (model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.applications {
		if existing.JobID == app.JobID && existing.StudentID == app.StudentID {
			return model.Application{}, repository.ErrDuplicate
		}
	}
	app.ID = f.nextID("app")
	app.Status = model.StatusPending
	app.CreatedAt = f.now()
	app.UpdatedAt = f.now()
	f.applications[app.ID] = app
	return app, nil
}

func (f *fakeStore) ListApplicationsByStudent(_ context.Context, studentID string) ([]model.ApplicationWithJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apps := []model.ApplicationWithJob{}
	for _, app := range f.applications {
		if app.StudentID != studentID {
			continue
		}
		job := f.jobs[app.JobID]
		apps = append(apps, model.ApplicationWithJob{
			Application: app,
			JobTitle:    job.Title,
			CompanyName: f.companies[job.CompanyID].Name,
		})
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	return apps, nil
}

func (f *fakeStore) ListApplicationsForRecruiter(_ context.Context, recruiterID string) ([]model.ApplicationWithStudent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apps := []model.ApplicationWithStudent{}
	for _, app := range f.applications {
		job := f.jobs[app.JobID]
		if job.RecruiterID != recruiterID {
			continue
		}
		apps = append(apps, model.ApplicationWithStudent{
			Application: app,
			JobTitle:    job.Title,
			StudentName: f.profiles[app.StudentID].FullName,
		})
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	return apps, nil
}

func (f *fakeStore) UpdateApplicationStatus(_ context.Context, applicationID, status, recruiterID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.applications[applicationID]
	if !ok || app.Status != model.StatusPending {
		return false, nil
	}
	if f.jobs[app.JobID].RecruiterID != recruiterID {
		return false, nil
	}
	app.Status = status
	app.UpdatedAt = f.now()
	f.applications[applicationID] = app
	return true, nil
}

func (f *fakeStore) CountApplicationsByStudent(_ context.Context, studentID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, app := range f.applications {
		if app.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountApplicationsForRecruiter(_ context.Context, recruiterID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, app := range f.applications {
		if f.jobs[app.JobID].RecruiterID == recruiterID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateReport(_ context.Context, report model.Report) (model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report.ID = f.nextID("report")
	report.Status = model.StatusPending
	report.CreatedAt = f.now()
	report.UpdatedAt = f.now()
	f.reports[report.ID] = report
	return report, nil
}

func (f *fakeStore) ListReports(_ context.Context, status string) ([]model.ReportWithJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reports := []model.ReportWithJob{}
	for _, report := range f.reports {
		if status != "" && report.Status != status {
			continue
		}
		reports = append(reports, model.ReportWithJob{
			Report:   report,
			JobTitle: f.jobs[report.JobID].Title,
		})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID < reports[j].ID })
	return reports, nil
}

func (f *fakeStore) ResolveReport(_ context.Context, reportID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[reportID]
	if !ok || report.Status != model.StatusPending {
		return false, nil
	}
	report.Status = model.StatusResolved
	report.UpdatedAt = f.now()
	f.reports[reportID] = report
	return true, nil
}

func (f *fakeStore) CountReportsByStatus(_ context.Context, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, report := range f.reports {
		if report.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateMessage(_ context.Context, senderID, receiverID, content string) (model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := model.Message{
		ID:         f.nextID("msg"),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  f.now(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeStore) ListConversation(_ context.Context, userID, contactID string) ([]model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := []model.Message{}
	for _, msg := range f.messages {
		if (msg.SenderID == userID && msg.ReceiverID == contactID) ||
			(msg.SenderID == contactID && msg.ReceiverID == userID) {
			msgs = append(msgs, msg)
		}
	}
	return msgs, nil
}

func (f *fakeStore) MarkConversationRead(_ context.Context, userID, contactID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, msg := range f.messages {
		if msg.SenderID == contactID && msg.ReceiverID == userID && !msg.Read {
			f.messages[i].Read = true
		}
	}
	return nil
}

func (f *fakeStore) ListContacts(_ context.Context, userID string) ([]model.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]struct{}{}
	contacts := []model.Contact{}
	for _, msg := range f.messages {
		var other string
		switch userID {
		case msg.SenderID:
			other = msg.ReceiverID
		case msg.ReceiverID:
			other = msg.SenderID
		default:
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		contacts = append(contacts, model.Contact{UserID: other, FullName: f.profiles[other].FullName})
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].FullName < contacts[j].FullName })
	return contacts, nil
}
