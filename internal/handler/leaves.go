package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
	"github.com/turnoshq/roster-manager/backend/internal/utils"
)

func (h *Handler) CreateLeavePeriod(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	var req struct {
		StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
		Reason    string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	leave := &domain.LeavePeriod{
		WorkerID:  worker.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	}

	if err := utils.ValidateLeavePeriod(leave); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreateLeavePeriod(leave); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave period recorded", leave)
}

func (h *Handler) GetLeavePeriods(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	leaves, err := h.repository.GetLeavePeriodsByWorker(worker.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched leave periods", leaves)
}

func (h *Handler) DeleteLeavePeriod(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	leaveIDParam := chi.URLParam(r, "leaveID")
	leaveID, err := strconv.ParseInt(leaveIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid leave period ID")
		return
	}

	leave, err := h.repository.GetLeavePeriodByID(leaveID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "leave period not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if leave.WorkerID != worker.ID {
		h.errorResponse(w, r, "leave period belongs to another worker")
		return
	}

	if err := h.repository.DeleteLeavePeriod(leaveID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave period deleted", nil)
}
