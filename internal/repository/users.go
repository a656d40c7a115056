package repository

import (
	"context"

	"trusthire/server/internal/model"
)

// CreateUser inserts the account, profile and role rows in one
// transaction so a signup never leaves a partial identity behind.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, fullName, role string) (model.User, error) {
	var user model.User

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return user, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at, updated_at
	`, email, passwordHash)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return model.User{}, execErr(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO profiles (user_id, full_name) VALUES ($1, $2)
	`, user.ID, fullName); err != nil {
		return model.User{}, err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
	`, user.ID, role); err != nil {
		return model.User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	return user, scanErr(err)
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	return user, scanErr(err)
}

func (s *Store) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	row := s.pool.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID)
	err := row.Scan(&role)
	return role, scanErr(err)
}

func (s *Store) GetProfile(ctx context.Context, userID string) (model.Profile, error) {
	profile := model.Profile{UserID: userID}
	row := s.pool.QueryRow(ctx, `SELECT full_name FROM profiles WHERE user_id = $1`, userID)
	err := row.Scan(&profile.FullName)
	return profile, scanErr(err)
}

// ListUserAccounts returns every account with its role. Accounts without
// a role row come back as "unknown" so moderation can still see them.
func (s *Store) ListUserAccounts(ctx context.Context) ([]model.UserAccount, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, COALESCE(p.full_name, ''), COALESCE(r.role, 'unknown')
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		LEFT JOIN user_roles r ON r.user_id = u.id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []model.UserAccount{}
	for rows.Next() {
		var account model.UserAccount
		if err := rows.Scan(&account.UserID, &account.FullName, &account.Role); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// UpdateUserRole upserts the role row so accounts that lost their role
// can be repaired. A missing account is reported as ErrNotFound.
func (s *Store) UpdateUserRole(ctx context.Context, userID, role string) error {
	var exists bool
	if err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, userID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`, userID, role)
	return err
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
