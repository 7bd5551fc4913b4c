package repository

import (
	"context"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

func (r *Repository) CreateLeavePeriod(leave *domain.LeavePeriod) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO leave_periods (worker_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	args := []any{leave.WorkerID, leave.StartDate, leave.EndDate, leave.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&leave.ID, &leave.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetLeavePeriodsByWorker(workerID int64) ([]*domain.LeavePeriod, error) {
	query := `
		SELECT id, start_date, end_date, reason, created_at
		FROM leave_periods
		WHERE worker_id = $1
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := make([]*domain.LeavePeriod, 0)
	for rows.Next() {
		leave := &domain.LeavePeriod{
			WorkerID: workerID,
		}
		dst := []any{&leave.ID, &leave.StartDate, &leave.EndDate, &leave.Reason, &leave.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaves, nil
}

func (r *Repository) GetLeavePeriodByID(id int64) (*domain.LeavePeriod, error) {
	query := `
		SELECT worker_id, start_date, end_date, reason, created_at
		FROM leave_periods WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	leave := &domain.LeavePeriod{
		ID: id,
	}

	dst := []any{&leave.WorkerID, &leave.StartDate, &leave.EndDate, &leave.Reason, &leave.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return leave, nil
}

func (r *Repository) DeleteLeavePeriod(id int64) error {
	query := `
		DELETE FROM leave_periods WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
