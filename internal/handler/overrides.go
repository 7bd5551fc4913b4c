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

// UpsertOverride pins a worker to a band on one day. Writing the same
// (worker, day) again replaces the band, so retried requests are harmless.
func (h *Handler) UpsertOverride(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)

	var req struct {
		WorkerID int64  `json:"workerID" validate:"required"`
		Date     string `json:"date" validate:"required,datetime=2006-01-02"`
		Band     string `json:"band" validate:"required,oneof=6am-2pm 9am-6pm 6pm-2am 10pm-6am"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker, err := h.repository.GetWorkerByID(req.WorkerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "worker not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !worker.OwnedBy(myInfo.ID) {
		h.errorResponse(w, r, "worker is not on your roster")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	override := &domain.ManualOverride{
		CoordinatorID: myInfo.ID,
		WorkerID:      req.WorkerID,
		Date:          date,
		Band:          domain.ShiftBand(req.Band),
	}

	if err := h.repository.UpsertOverride(override); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "override saved", override)
}

func (h *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)

	month, year, err := parseMonthYear(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	overrides, err := h.repository.GetOverridesByCoordinator(myInfo.ID, month, year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched overrides", overrides)
}

func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)

	overrideIDParam := chi.URLParam(r, "id")
	overrideID, err := strconv.ParseInt(overrideIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid override ID")
		return
	}

	override, err := h.repository.GetOverrideByID(overrideID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "override not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if override.CoordinatorID != myInfo.ID && myInfo.Role != domain.RoleAdmin {
		h.errorResponse(w, r, "override belongs to another coordinator")
		return
	}

	if err := h.repository.DeleteOverride(overrideID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "override deleted", nil)
}

// parseMonthYear reads the month and year query parameters shared by the
// override and roster endpoints.
func parseMonthYear(r *http.Request) (int32, int32, error) {
	monthParam := r.URL.Query().Get("month")
	yearParam := r.URL.Query().Get("year")

	month, err := strconv.ParseInt(monthParam, 10, 32)
	if err != nil {
		return 0, 0, errors.New("month must be a number")
	}

	year, err := strconv.ParseInt(yearParam, 10, 32)
	if err != nil {
		return 0, 0, errors.New("year must be a number")
	}

	if err := utils.ValidateMonthYear(int32(month), int32(year)); err != nil {
		return 0, 0, err
	}

	return int32(month), int32(year), nil
}
