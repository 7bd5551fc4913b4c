package repository

import (
	"context"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

// GetCatalogSnapshot loads everything one scheduling run needs in a single
// transaction: the coordinator's effective roster, the leave periods touching
// the month and the overrides placed inside it. The scheduler never goes back
// to the database, so concurrent catalog edits cannot tear a running pass.
func (r *Repository) GetCatalogSnapshot(coordinatorID int64, month, year int32) (*domain.CatalogSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	snapshot := &domain.CatalogSnapshot{
		CoordinatorID: coordinatorID,
		Month:         month,
		Year:          year,
		Workers:       make([]*domain.Worker, 0),
		LeavePeriods:  make([]*domain.LeavePeriod, 0),
		Overrides:     make([]*domain.ManualOverride, 0),
	}

	monthStart := time.Date(int(year), time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	query := `
		SELECT id, name, home_pool, coordinator_id, preferred_band, borrow_status, lent_to, created_at, version
		FROM workers
		WHERE (coordinator_id = $1 AND borrow_status <> 'lent') OR lent_to = $1
		ORDER BY id
	`

	rows, err := tx.QueryContext(ctx, query, coordinatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		worker := &domain.Worker{}
		dst := []any{&worker.ID, &worker.Name, &worker.HomePool, &worker.CoordinatorID, &worker.PreferredBand, &worker.BorrowStatus, &worker.LentTo, &worker.CreatedAt, &worker.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		snapshot.Workers = append(snapshot.Workers, worker)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT lp.id, lp.worker_id, lp.start_date, lp.end_date, lp.reason, lp.created_at
		FROM leave_periods lp
		JOIN workers w ON w.id = lp.worker_id
		WHERE ((w.coordinator_id = $1 AND w.borrow_status <> 'lent') OR w.lent_to = $1)
			AND lp.start_date <= $2 AND lp.end_date >= $3
		ORDER BY lp.id
	`

	leaveRows, err := tx.QueryContext(ctx, query, coordinatorID, monthEnd, monthStart)
	if err != nil {
		return nil, err
	}
	defer leaveRows.Close()

	for leaveRows.Next() {
		leave := &domain.LeavePeriod{}
		dst := []any{&leave.ID, &leave.WorkerID, &leave.StartDate, &leave.EndDate, &leave.Reason, &leave.CreatedAt}
		if err := leaveRows.Scan(dst...); err != nil {
			return nil, err
		}
		snapshot.LeavePeriods = append(snapshot.LeavePeriods, leave)
	}
	if err := leaveRows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT mo.id, mo.coordinator_id, mo.worker_id, mo.override_date, mo.band, mo.created_at
		FROM manual_overrides mo
		JOIN workers w ON w.id = mo.worker_id
		WHERE ((w.coordinator_id = $1 AND w.borrow_status <> 'lent') OR w.lent_to = $1)
			AND mo.override_date >= $2 AND mo.override_date <= $3
		ORDER BY mo.created_at, mo.id
	`

	overrideRows, err := tx.QueryContext(ctx, query, coordinatorID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	defer overrideRows.Close()

	for overrideRows.Next() {
		override := &domain.ManualOverride{}
		dst := []any{&override.ID, &override.CoordinatorID, &override.WorkerID, &override.Date, &override.Band, &override.CreatedAt}
		if err := overrideRows.Scan(dst...); err != nil {
			return nil, err
		}
		snapshot.Overrides = append(snapshot.Overrides, override)
	}
	if err := overrideRows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
