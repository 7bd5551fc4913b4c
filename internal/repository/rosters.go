package repository

import (
	"context"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

// InsertRoster persists a generated roster. Each coordinator keeps at most
// one roster per month, so an earlier run for the same month is replaced.
func (r *Repository) InsertRoster(roster *domain.Roster) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM rosters WHERE coordinator_id = $1 AND month = $2 AND year = $3`
	if _, err := tx.ExecContext(ctx, query, roster.CoordinatorID, roster.Month, roster.Year); err != nil {
		return err
	}

	query = `
		INSERT INTO rosters (coordinator_id, month, year, seed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{roster.CoordinatorID, roster.Month, roster.Year, roster.Seed}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&roster.ID, &roster.CreatedAt, &roster.Version); err != nil {
		return err
	}

	for _, a := range roster.Assignments {
		query := `
			INSERT INTO roster_assignments (roster_id, day, worker_id, status)
			VALUES ($1, $2, $3, $4)
		`

		if _, err := tx.ExecContext(ctx, query, roster.ID, a.Day, a.WorkerID, a.Status); err != nil {
			return err
		}
	}

	for _, wh := range roster.Ledger {
		query := `
			INSERT INTO roster_ledger (roster_id, worker_id, worker_name, hours)
			VALUES ($1, $2, $3, $4)
		`

		if _, err := tx.ExecContext(ctx, query, roster.ID, wh.WorkerID, wh.Name, wh.Hours); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRoster(coordinatorID int64, month, year int32) (*domain.Roster, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	roster := &domain.Roster{
		CoordinatorID: coordinatorID,
		Month:         month,
		Year:          year,
	}

	query := `
		SELECT id, seed, created_at, version
		FROM rosters
		WHERE coordinator_id = $1 AND month = $2 AND year = $3
	`

	if err := r.dbpool.QueryRowContext(ctx, query, coordinatorID, month, year).Scan(&roster.ID, &roster.Seed, &roster.CreatedAt, &roster.Version); err != nil {
		return nil, err
	}

	query = `
		SELECT day, worker_id, status
		FROM roster_assignments
		WHERE roster_id = $1
		ORDER BY day, worker_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, roster.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster.Assignments = make([]domain.Assignment, 0)
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.Day, &a.WorkerID, &a.Status); err != nil {
			return nil, err
		}
		roster.Assignments = append(roster.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT worker_id, worker_name, hours
		FROM roster_ledger
		WHERE roster_id = $1
		ORDER BY worker_id
	`

	ledgerRows, err := r.dbpool.QueryContext(ctx, query, roster.ID)
	if err != nil {
		return nil, err
	}
	defer ledgerRows.Close()

	roster.Ledger = make([]domain.WorkerHours, 0)
	for ledgerRows.Next() {
		var wh domain.WorkerHours
		if err := ledgerRows.Scan(&wh.WorkerID, &wh.Name, &wh.Hours); err != nil {
			return nil, err
		}
		roster.Ledger = append(roster.Ledger, wh)
	}
	if err := ledgerRows.Err(); err != nil {
		return nil, err
	}

	return roster, nil
}
