package repository

import (
	"database/sql"
	"errors"

	"github.com/turnoshq/roster-manager/backend/internal/config"
)

// ErrClaimConflict reports that a reserve-pool claim lost the race: another
// coordinator claimed the worker between read and write.
var ErrClaimConflict = errors.New("worker was claimed by another coordinator")

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
