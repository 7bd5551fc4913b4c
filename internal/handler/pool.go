package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
	"github.com/turnoshq/roster-manager/backend/internal/repository"
)

func (h *Handler) GetPoolWorkers(w http.ResponseWriter, r *http.Request) {
	pool := chi.URLParam(r, "pool")
	onlyAvailable := r.URL.Query().Get("available") == "true"

	workers, err := h.repository.GetPoolWorkers(pool, onlyAvailable)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched pool workers", workers)
}

// ClaimPoolWorker attaches an unclaimed reserve worker to the caller. Two
// coordinators racing for the same worker is expected during planning season;
// the loser gets a retryable error and picks someone else.
func (h *Handler) ClaimPoolWorker(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)

	workerIDParam := chi.URLParam(r, "id")
	workerID, err := strconv.ParseInt(workerIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid worker ID")
		return
	}

	worker, err := h.repository.GetWorkerByID(workerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "worker not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if worker.HomePool != chi.URLParam(r, "pool") {
		h.errorResponse(w, r, "worker belongs to another pool")
		return
	}
	if worker.CoordinatorID != nil {
		h.errorResponse(w, r, "worker was already claimed, pick another one")
		return
	}

	if err := h.repository.ClaimPoolWorker(worker, myInfo.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrClaimConflict):
			h.errorResponse(w, r, "worker was already claimed, pick another one")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker claimed", worker)
}
