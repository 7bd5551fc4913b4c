package repository

import (
	"context"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

// UpsertOverride writes a manual override with last-write-wins semantics:
// a second override for the same worker and day replaces the first.
func (r *Repository) UpsertOverride(override *domain.ManualOverride) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO manual_overrides (coordinator_id, worker_id, override_date, band)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (worker_id, override_date)
		DO UPDATE SET coordinator_id = EXCLUDED.coordinator_id, band = EXCLUDED.band, created_at = now()
		RETURNING id, created_at
	`

	args := []any{override.CoordinatorID, override.WorkerID, override.Date, override.Band}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&override.ID, &override.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetOverrideByID(id int64) (*domain.ManualOverride, error) {
	query := `
		SELECT coordinator_id, worker_id, override_date, band, created_at
		FROM manual_overrides WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	override := &domain.ManualOverride{
		ID: id,
	}

	dst := []any{&override.CoordinatorID, &override.WorkerID, &override.Date, &override.Band, &override.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return override, nil
}

// GetOverridesByCoordinator lists the overrides the coordinator placed for
// one calendar month, ordered so the newest write for a day sorts last.
func (r *Repository) GetOverridesByCoordinator(coordinatorID int64, month, year int32) ([]*domain.ManualOverride, error) {
	query := `
		SELECT id, worker_id, override_date, band, created_at
		FROM manual_overrides
		WHERE coordinator_id = $1
			AND EXTRACT(MONTH FROM override_date) = $2
			AND EXTRACT(YEAR FROM override_date) = $3
		ORDER BY created_at, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, coordinatorID, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make([]*domain.ManualOverride, 0)
	for rows.Next() {
		override := &domain.ManualOverride{
			CoordinatorID: coordinatorID,
		}
		dst := []any{&override.ID, &override.WorkerID, &override.Date, &override.Band, &override.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

func (r *Repository) DeleteOverride(id int64) error {
	query := `
		DELETE FROM manual_overrides WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
