package repository

import (
	"context"

	"trusthire/server/internal/model"
)

func (s *Store) GetVerificationByRecruiter(ctx context.Context, recruiterID string) (model.VerificationRequest, error) {
	var req model.VerificationRequest
	row := s.pool.QueryRow(ctx, `
		SELECT id, recruiter_id, company_id, status, details, admin_notes, reviewed_by, created_at, updated_at
		FROM verification_requests
		WHERE recruiter_id = $1
	`, recruiterID)
	err := row.Scan(
		&req.ID,
		&req.RecruiterID,
		&req.CompanyID,
		&req.Status,
		&req.Details,
		&req.AdminNotes,
		&req.ReviewedBy,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, scanErr(err)
}

func (s *Store) CreateVerification(ctx context.Context, req model.VerificationRequest) (model.VerificationRequest, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO verification_requests (recruiter_id, company_id, details)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`, req.RecruiterID, req.CompanyID, req.Details)
	if err := row.Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return model.VerificationRequest{}, execErr(err)
	}
	return req, nil
}

func (s *Store) ListVerifications(ctx context.Context, status string) ([]model.VerificationWithCompany, error) {
	query := `
		SELECT v.id, v.recruiter_id, v.company_id, v.status, v.details, v.admin_notes, v.reviewed_by, v.created_at, v.updated_at,
		       c.name, COALESCE(p.full_name, '')
		FROM verification_requests v
		JOIN companies c ON c.id = v.company_id
		LEFT JOIN profiles p ON p.user_id = v.recruiter_id
	`
	args := []any{}
	if status != "" {
		query += ` WHERE v.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY v.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := []model.VerificationWithCompany{}
	for rows.Next() {
		var req model.VerificationWithCompany
		if err := rows.Scan(
			&req.ID,
			&req.RecruiterID,
			&req.CompanyID,
			&req.Status,
			&req.Details,
			&req.AdminNotes,
			&req.ReviewedBy,
			&req.CreatedAt,
			&req.UpdatedAt,
			&req.CompanyName,
			&req.RecruiterName,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// ReviewVerification decides a pending request. The WHERE clause only
// matches pending rows, so a second decision reports false instead of
// flipping an already reviewed request.
func (s *Store) ReviewVerification(ctx context.Context, id, status string, adminNotes *string, reviewedBy string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE verification_requests
		SET status = $1, admin_notes = $2, reviewed_by = $3, updated_at = now()
		WHERE id = $4 AND status = 'pending'
	`, status, adminNotes, reviewedBy, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) IsRecruiterVerified(ctx context.Context, recruiterID string) (bool, error) {
	var verified bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM verification_requests WHERE recruiter_id = $1 AND status = 'approved'
		)
	`, recruiterID).Scan(&verified)
	return verified, err
}

func (s *Store) CountVerificationsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM verification_requests WHERE status = $1`, status).Scan(&count)
	return count, err
}
