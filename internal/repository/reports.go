package repository

import (
	"context"

	"trusthire/server/internal/model"
)

func (s *Store) CreateReport(ctx context.Context, report model.Report) (model.Report, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO reports (job_id, reporter_id, reason)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`, report.JobID, report.ReporterID, report.Reason)
	if err := row.Scan(&report.ID, &report.Status, &report.CreatedAt, &report.UpdatedAt); err != nil {
		return model.Report{}, execErr(err)
	}
	return report, nil
}

func (s *Store) ListReports(ctx context.Context, status string) ([]model.ReportWithJob, error) {
	query := `
		SELECT r.id, r.job_id, r.reporter_id, r.reason, r.status, r.created_at, r.updated_at, j.title
		FROM reports r
		JOIN jobs j ON j.id = r.job_id
	`
	args := []any{}
	if status != "" {
		query += ` WHERE r.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []model.ReportWithJob{}
	for rows.Next() {
		var report model.ReportWithJob
		if err := rows.Scan(
			&report.ID,
			&report.JobID,
			&report.ReporterID,
			&report.Reason,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
			&report.JobTitle,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (s *Store) ResolveReport(ctx context.Context, reportID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE reports
		SET status = 'resolved', updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`, reportID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountReportsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE status = $1`, status).Scan(&count)
	return count, err
}
