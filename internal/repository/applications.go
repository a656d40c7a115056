package repository

import (
	"context"

	"trusthire/server/internal/model"
)

func (s *Store) CreateApplication(ctx context.Context, app model.Application) (model.Application, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO applications (job_id, student_id, cover_message)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`, app.JobID, app.StudentID, app.CoverMessage)
	if err := row.Scan(&app.ID, &app.Status, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return model.Application{}, execErr(err)
	}
	return app, nil
}

func (s *Store) ListApplicationsByStudent(ctx context.Context, studentID string) ([]model.ApplicationWithJob, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.job_id, a.student_id, a.cover_message, a.status, a.created_at, a.updated_at,
		       j.title, c.name
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []model.ApplicationWithJob{}
	for rows.Next() {
		var app model.ApplicationWithJob
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.StudentID,
			&app.CoverMessage,
			&app.Status,
			&app.CreatedAt,
			&app.UpdatedAt,
			&app.JobTitle,
			&app.CompanyName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ListApplicationsForRecruiter is the recruiter inbox: every application
// against any of the recruiter's jobs, newest first.
func (s *Store) ListApplicationsForRecruiter(ctx context.Context, recruiterID string) ([]model.ApplicationWithStudent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.job_id, a.student_id, a.cover_message, a.status, a.created_at, a.updated_at,
		       j.title, COALESCE(p.full_name, '')
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		LEFT JOIN profiles p ON p.user_id = a.student_id
		WHERE j.recruiter_id = $1
		ORDER BY a.created_at DESC
	`, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []model.ApplicationWithStudent{}
	for rows.Next() {
		var app model.ApplicationWithStudent
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.StudentID,
			&app.CoverMessage,
			&app.Status,
			&app.CreatedAt,
			&app.UpdatedAt,
			&app.JobTitle,
			&app.StudentName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// UpdateApplicationStatus decides a pending application, and only when
// the job it targets belongs to the calling recruiter.
func (s *Store) UpdateApplicationStatus(ctx context.Context, applicationID, status, recruiterID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE applications a
		SET status = $1, updated_at = now()
		FROM jobs j
		WHERE a.id = $2 AND a.status = 'pending'
		  AND j.id = a.job_id AND j.recruiter_id = $3
	`, status, applicationID, recruiterID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountApplicationsByStudent(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE student_id = $1`, studentID).Scan(&count)
	return count, err
}

func (s *Store) CountApplicationsForRecruiter(ctx context.Context, recruiterID string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.recruiter_id = $1
	`, recruiterID).Scan(&count)
	return count, err
}
