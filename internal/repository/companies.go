package repository

import (
	"context"

	"trusthire/server/internal/model"
)

func (s *Store) GetCompanyByRecruiter(ctx context.Context, recruiterID string) (model.Company, error) {
	var company model.Company
	row := s.pool.QueryRow(ctx, `
		SELECT id, recruiter_id, name, description, industry, website, logo_url, created_at, updated_at
		FROM companies
		WHERE recruiter_id = $1
	`, recruiterID)
	err := row.Scan(
		&company.ID,
		&company.RecruiterID,
		&company.Name,
		&company.Description,
		&company.Industry,
		&company.Website,
		&company.LogoURL,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	return company, scanErr(err)
}

func (s *Store) CreateCompany(ctx context.Context, company model.Company) (model.Company, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO companies (recruiter_id, name, description, industry, website, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, company.RecruiterID, company.Name, company.Description, company.Industry, company.Website, company.LogoURL)
	if err := row.Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt); err != nil {
		return model.Company{}, execErr(err)
	}
	return company, nil
}

func (s *Store) UpdateCompany(ctx context.Context, company model.Company) (model.Company, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE companies
		SET name = $1, description = $2, industry = $3, website = $4, logo_url = $5, updated_at = now()
		WHERE recruiter_id = $6
		RETURNING id, created_at, updated_at
	`, company.Name, company.Description, company.Industry, company.Website, company.LogoURL, company.RecruiterID)
	if err := row.Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt); err != nil {
		return model.Company{}, scanErr(err)
	}
	return company, nil
}
