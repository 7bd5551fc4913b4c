package repository

import (
	"context"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

func (r *Repository) CreateWorker(worker *domain.Worker) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO workers (name, home_pool, coordinator_id, preferred_band)
		VALUES ($1, $2, $3, $4)
		RETURNING id, borrow_status, created_at, version
	`

	args := []any{worker.Name, worker.HomePool, worker.CoordinatorID, worker.PreferredBand}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&worker.ID, &worker.BorrowStatus, &worker.CreatedAt, &worker.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkerByID(id int64) (*domain.Worker, error) {
	query := `
		SELECT name, home_pool, coordinator_id, preferred_band, borrow_status, lent_to, created_at, version
		FROM workers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	worker := &domain.Worker{
		ID: id,
	}

	dst := []any{&worker.Name, &worker.HomePool, &worker.CoordinatorID, &worker.PreferredBand, &worker.BorrowStatus, &worker.LentTo, &worker.CreatedAt, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return worker, nil
}

// GetWorkersByCoordinator returns the coordinator's effective roster: owned
// workers that are not lent away, plus workers currently lent to them.
func (r *Repository) GetWorkersByCoordinator(coordinatorID int64) ([]*domain.Worker, error) {
	query := `
		SELECT id, name, home_pool, coordinator_id, preferred_band, borrow_status, lent_to, created_at, version
		FROM workers
		WHERE (coordinator_id = $1 AND borrow_status <> 'lent') OR lent_to = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, coordinatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]*domain.Worker, 0)
	for rows.Next() {
		worker := &domain.Worker{}
		dst := []any{&worker.ID, &worker.Name, &worker.HomePool, &worker.CoordinatorID, &worker.PreferredBand, &worker.BorrowStatus, &worker.LentTo, &worker.CreatedAt, &worker.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

func (r *Repository) UpdateWorker(worker *domain.Worker) error {
	query := `
		UPDATE workers
		SET
			name = $1,
			preferred_band = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING home_pool, coordinator_id, borrow_status, lent_to, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{worker.Name, worker.PreferredBand, worker.ID, worker.Version}
	dst := []any{&worker.HomePool, &worker.CoordinatorID, &worker.BorrowStatus, &worker.LentTo, &worker.CreatedAt, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// LendWorker hands an owned worker to another coordinator until reclaimed.
func (r *Repository) LendWorker(worker *domain.Worker, toCoordinatorID int64) error {
	query := `
		UPDATE workers
		SET
			borrow_status = 'lent',
			lent_to = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING borrow_status, lent_to, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&worker.BorrowStatus, &worker.LentTo, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, toCoordinatorID, worker.ID, worker.Version).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// ReclaimWorker ends a loan and returns the worker to its owner's roster.
func (r *Repository) ReclaimWorker(worker *domain.Worker) error {
	query := `
		UPDATE workers
		SET
			borrow_status = 'none',
			lent_to = NULL,
			version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING borrow_status, lent_to, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&worker.BorrowStatus, &worker.LentTo, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, worker.ID, worker.Version).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorker(id int64) error {
	query := `
		DELETE FROM workers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
