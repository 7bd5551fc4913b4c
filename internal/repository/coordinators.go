package repository

import (
	"context"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

func (r *Repository) GetCoordinatorByID(id int64) (*domain.Coordinator, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, is_active, created_at, version
		FROM coordinators WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	coordinator := &domain.Coordinator{
		ID: id,
	}

	dst := []any{&coordinator.Username, &coordinator.PasswordHash, &coordinator.FullName, &coordinator.Email, &coordinator.Role, &coordinator.IsActive, &coordinator.CreatedAt, &coordinator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return coordinator, nil
}

func (r *Repository) GetCoordinatorByUsername(username string) (*domain.Coordinator, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, is_active, created_at, version
		FROM coordinators WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	coordinator := &domain.Coordinator{
		Username: username,
	}

	dst := []any{&coordinator.ID, &coordinator.PasswordHash, &coordinator.FullName, &coordinator.Email, &coordinator.Role, &coordinator.IsActive, &coordinator.CreatedAt, &coordinator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return coordinator, nil
}

func (r *Repository) GetCoordinatorByEmail(email string) (*domain.Coordinator, error) {
	query := `
		SELECT id, username, password_hash, full_name, role, is_active, created_at, version
		FROM coordinators WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	coordinator := &domain.Coordinator{
		Email: email,
	}

	dst := []any{&coordinator.ID, &coordinator.Username, &coordinator.PasswordHash, &coordinator.FullName, &coordinator.Role, &coordinator.IsActive, &coordinator.CreatedAt, &coordinator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return coordinator, nil
}

func (r *Repository) GetAllCoordinators() ([]*domain.Coordinator, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, is_active, created_at, version FROM coordinators
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coordinators := make([]*domain.Coordinator, 0)
	for rows.Next() {
		coordinator := &domain.Coordinator{}
		dst := []any{&coordinator.ID, &coordinator.Username, &coordinator.PasswordHash, &coordinator.FullName, &coordinator.Email, &coordinator.Role, &coordinator.IsActive, &coordinator.CreatedAt, &coordinator.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		coordinators = append(coordinators, coordinator)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coordinators, nil
}

func (r *Repository) CreateCoordinator(coordinator *domain.Coordinator) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO coordinators (username, password_hash, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	args := []any{coordinator.Username, coordinator.PasswordHash, coordinator.FullName, coordinator.Email, coordinator.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&coordinator.ID, &coordinator.IsActive, &coordinator.CreatedAt, &coordinator.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCoordinator(coordinator *domain.Coordinator) error {
	query := `
		UPDATE coordinators
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{coordinator.PasswordHash, coordinator.Email, coordinator.Role, coordinator.IsActive, coordinator.ID, coordinator.Version}
	dst := []any{&coordinator.Username, &coordinator.FullName, &coordinator.CreatedAt, &coordinator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCoordinator(id int64) error {
	query := `
		DELETE FROM coordinators WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM coordinators WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
