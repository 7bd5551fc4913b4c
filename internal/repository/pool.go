package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

// GetPoolWorkers lists the workers of one home pool. With onlyAvailable set,
// only unclaimed reserve workers are returned.
func (r *Repository) GetPoolWorkers(pool string, onlyAvailable bool) ([]*domain.Worker, error) {
	query := `
		SELECT id, name, home_pool, coordinator_id, preferred_band, borrow_status, lent_to, created_at, version
		FROM workers
		WHERE home_pool = $1
	`
	if onlyAvailable {
		query += ` AND coordinator_id IS NULL`
	}
	query += ` ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, pool)
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

// ClaimPoolWorker attaches an unclaimed reserve worker to the coordinator.
// The coordinator_id IS NULL guard makes concurrent claims race on the
// database row; the loser gets ErrClaimConflict and must pick again.
func (r *Repository) ClaimPoolWorker(worker *domain.Worker, coordinatorID int64) error {
	query := `
		UPDATE workers
		SET
			coordinator_id = $1,
			borrow_status = 'on-loan',
			version = version + 1
		WHERE id = $2 AND version = $3 AND coordinator_id IS NULL
		RETURNING coordinator_id, borrow_status, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&worker.CoordinatorID, &worker.BorrowStatus, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, coordinatorID, worker.ID, worker.Version).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClaimConflict
		}
		return err
	}

	return nil
}

// ReleasePoolWorker returns a claimed worker to its reserve pool.
func (r *Repository) ReleasePoolWorker(worker *domain.Worker) error {
	query := `
		UPDATE workers
		SET
			coordinator_id = NULL,
			borrow_status = 'none',
			lent_to = NULL,
			version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING coordinator_id, borrow_status, lent_to, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&worker.CoordinatorID, &worker.BorrowStatus, &worker.LentTo, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, worker.ID, worker.Version).Scan(dst...); err != nil {
		return err
	}

	return nil
}
