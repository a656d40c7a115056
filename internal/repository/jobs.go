package repository

import (
	"context"

	"trusthire/server/internal/model"
)

const jobWithCompanyColumns = `
	j.id, j.recruiter_id, j.company_id, j.title, j.description, j.location, j.job_type,
	j.salary_min, j.salary_max, j.deadline, j.status, j.created_at, j.updated_at,
	c.name, c.logo_url
`

func scanJobRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}) ([]model.JobWithCompany, error) {
	defer rows.Close()
	jobs := []model.JobWithCompany{}
	for rows.Next() {
		var job model.JobWithCompany
		if err := rows.Scan(
			&job.ID,
			&job.RecruiterID,
			&job.CompanyID,
			&job.Title,
			&job.Description,
			&job.Location,
			&job.JobType,
			&job.SalaryMin,
			&job.SalaryMax,
			&job.Deadline,
			&job.Status,
			&job.CreatedAt,
			&job.UpdatedAt,
			&job.CompanyName,
			&job.CompanyLogo,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// ListApprovedJobs is the public board. jobType narrows to one posting
// type when set; sort is "latest" or "location" (anything else falls
// back to latest).
func (s *Store) ListApprovedJobs(ctx context.Context, jobType, sort string) ([]model.JobWithCompany, error) {
	query := `
		SELECT ` + jobWithCompanyColumns + `
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.status = 'approved'
	`
	args := []any{}
	if jobType != "" {
		query += ` AND j.job_type = $1`
		args = append(args, jobType)
	}
	if sort == "location" {
		query += ` ORDER BY j.location ASC NULLS LAST, j.created_at DESC`
	} else {
		query += ` ORDER BY j.created_at DESC`
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanJobRows(rows)
}

func (s *Store) GetJob(ctx context.Context, jobID string) (model.JobWithCompany, error) {
	var job model.JobWithCompany
	row := s.pool.QueryRow(ctx, `
		SELECT `+jobWithCompanyColumns+`
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.id = $1
	`, jobID)
	err := row.Scan(
		&job.ID,
		&job.RecruiterID,
		&job.CompanyID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.JobType,
		&job.SalaryMin,
		&job.SalaryMax,
		&job.Deadline,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompanyName,
		&job.CompanyLogo,
	)
	return job, scanErr(err)
}

func (s *Store) CreateJob(ctx context.Context, job model.Job) (model.Job, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO jobs (recruiter_id, company_id, title, description, location, job_type, salary_min, salary_max, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, created_at, updated_at
	`, job.RecruiterID, job.CompanyID, job.Title, job.Description, job.Location, job.JobType, job.SalaryMin, job.SalaryMax, job.Deadline)
	if err := row.Scan(&job.ID, &job.Status, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return model.Job{}, execErr(err)
	}
	return job, nil
}

func (s *Store) ListJobsByRecruiter(ctx context.Context, recruiterID string) ([]model.JobWithCompany, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+jobWithCompanyColumns+`
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.recruiter_id = $1
		ORDER BY j.created_at DESC
	`, recruiterID)
	if err != nil {
		return nil, err
	}
	return scanJobRows(rows)
}

// ListJobs is the moderation view: every job regardless of status,
// optionally narrowed to one status.
func (s *Store) ListJobs(ctx context.Context, status string) ([]model.JobWithCompany, error) {
	query := `
		SELECT ` + jobWithCompanyColumns + `
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
	`
	args := []any{}
	if status != "" {
		query += ` WHERE j.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY j.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanJobRows(rows)
}

// ReviewJob decides a pending job; decided jobs stay decided.
func (s *Store) ReviewJob(ctx context.Context, jobID, status string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE jobs
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = 'pending'
	`, status, jobID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountJobs(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, err
}

func (s *Store) CountJobsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (s *Store) CountJobsByRecruiter(ctx context.Context, recruiterID string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE recruiter_id = $1`, recruiterID).Scan(&count)
	return count, err
}
