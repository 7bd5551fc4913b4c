package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)

	var req struct {
		Name          string  `json:"name" validate:"required"`
		HomePool      string  `json:"homePool" validate:"required"`
		PreferredBand *string `json:"preferredBand" validate:"omitempty,oneof=6am-2pm 9am-6pm 6pm-2am 10pm-6am"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker := &domain.Worker{
		Name:          req.Name,
		HomePool:      req.HomePool,
		CoordinatorID: &myInfo.ID,
	}
	if req.PreferredBand != nil {
		band := domain.ShiftBand(*req.PreferredBand)
		worker.PreferredBand = &band
	}

	if err := h.repository.CreateWorker(worker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "workers_coordinator_id_fkey":
				h.badRequest(w, r, errors.New("coordinator does not exist"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker created", worker)
}

func (h *Handler) GetMyWorkers(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)

	workers, err := h.repository.GetWorkersByCoordinator(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched worker list", workers)
}

func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)
	h.successResponse(w, r, "fetched worker info", worker)
}

func (h *Handler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          *string `json:"name"`
		PreferredBand *string `json:"preferredBand" validate:"omitempty,oneof=6am-2pm 9am-6pm 6pm-2am 10pm-6am rotation"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.PreferredBand != nil {
		// "rotation" drops the fixed preference and hands the worker back to
		// the rotation pattern.
		if *req.PreferredBand == "rotation" {
			worker.PreferredBand = nil
		} else {
			band := domain.ShiftBand(*req.PreferredBand)
			worker.PreferredBand = &band
		}
	}

	if err := h.repository.UpdateWorker(worker); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "worker update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker updated", worker)
}

func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	if worker.BorrowStatus == domain.BorrowLent {
		h.errorResponse(w, r, "reclaim the worker before deleting them")
		return
	}

	// A claimed pool worker belongs to the pool, so removing them from the
	// roster means releasing the claim, not deleting the record.
	if worker.BorrowStatus == domain.BorrowOnLoan {
		if err := h.repository.ReleasePoolWorker(worker); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "release failed, please retry")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		h.successResponse(w, r, "worker released to the reserve pool", nil)
		return
	}

	if err := h.repository.DeleteWorker(worker.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "worker deleted", nil)
}

func (h *Handler) LendWorker(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	var req struct {
		ToCoordinatorID int64 `json:"toCoordinatorID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if worker.CoordinatorID == nil || *worker.CoordinatorID != myInfo.ID {
		h.errorResponse(w, r, "only the owning coordinator can lend a worker")
		return
	}
	if worker.BorrowStatus != domain.BorrowNone {
		h.errorResponse(w, r, "worker is already lent or on loan")
		return
	}
	if req.ToCoordinatorID == myInfo.ID {
		h.errorResponse(w, r, "cannot lend a worker to yourself")
		return
	}

	if _, err := h.repository.GetCoordinatorByID(req.ToCoordinatorID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "target coordinator not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.LendWorker(worker, req.ToCoordinatorID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "lend failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker lent", worker)
}

func (h *Handler) ReclaimWorker(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	if worker.CoordinatorID == nil || *worker.CoordinatorID != myInfo.ID {
		h.errorResponse(w, r, "only the owning coordinator can reclaim a worker")
		return
	}
	if worker.BorrowStatus != domain.BorrowLent {
		h.errorResponse(w, r, "worker is not lent out")
		return
	}

	if err := h.repository.ReclaimWorker(worker); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "reclaim failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker reclaimed", worker)
}

func (h *Handler) ReleaseWorker(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	if worker.BorrowStatus != domain.BorrowOnLoan {
		h.errorResponse(w, r, "worker was not claimed from a reserve pool")
		return
	}
	if worker.CoordinatorID == nil || *worker.CoordinatorID != myInfo.ID {
		h.errorResponse(w, r, "only the claiming coordinator can release a worker")
		return
	}

	if err := h.repository.ReleasePoolWorker(worker); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "release failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker released to the reserve pool", worker)
}
