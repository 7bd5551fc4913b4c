package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
	"github.com/turnoshq/roster-manager/backend/internal/scheduler"
	"github.com/turnoshq/roster-manager/backend/internal/utils"
)

// GenerateRoster runs one scheduling pass over the caller's catalog and
// replaces any earlier roster for the month. The response carries the roster,
// the hour ledger and the gap report; a summary of the gaps also goes out by
// email so coordinators notice shortfalls without watching the screen.
func (h *Handler) GenerateRoster(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)

	var req struct {
		Month int32  `json:"month" validate:"required,min=1,max=12"`
		Year  int32  `json:"year" validate:"required,min=1"`
		Seed  *int64 `json:"seed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	snapshot, err := h.repository.GetCatalogSnapshot(myInfo.ID, req.Month, req.Year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// A caller-provided seed reproduces an earlier run exactly.
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	params := &scheduler.Parameters{
		HourCeiling:        h.config.Roster.HourCeiling,
		ShiftHours:         h.config.Roster.ShiftHours,
		MaxConsecutiveDays: h.config.Roster.MaxConsecutiveDays,
		OverfillThreshold:  h.config.Roster.OverfillThreshold,
		EnableOverfill:     h.config.Roster.EnableOverfill,
		Seed:               seed,
	}

	policy := h.coveragePolicy(len(snapshot.Workers))

	s, err := scheduler.New(params, policy, snapshot)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	roster := s.Schedule()

	if err := h.repository.InsertRoster(roster); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report := scheduler.BuildGapReport(roster, policy, params.HourCeiling)

	if err := h.queueGapReportMail(myInfo, roster, report); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "roster generated", struct {
		Roster    *domain.Roster    `json:"roster"`
		GapReport *domain.GapReport `json:"gapReport"`
	}{
		Roster:    roster,
		GapReport: report,
	})
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Coordinator)

	month, year, err := parseMonthYear(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	roster, err := h.repository.GetRoster(myInfo.ID, month, year)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no roster has been generated for this month")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// Stored rosters predating a schema change could come back misshapen;
	// refuse to serve one missing a (worker, day) cell.
	numDays := time.Date(int(year), time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if err := utils.ValidateRosterShape(roster, int32(numDays), len(roster.Ledger)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched roster", roster)
}

// coveragePolicy builds the band minimums for a run. With enough staff the
// configured bands get a second line, so big teams do not idle on rest days
// while the floor runs on single coverage.
func (h *Handler) coveragePolicy(workerCount int) *scheduler.CoveragePolicy {
	policy := scheduler.NewCoveragePolicy()

	if !h.config.Roster.AutoSecondLine || workerCount < 2*len(domain.Bands) {
		return policy
	}

	secondLine := h.config.Roster.SecondLineBands
	if len(secondLine) == 0 {
		for _, band := range domain.Bands {
			policy.SetMinimum(band, 2)
		}
		return policy
	}

	for _, name := range secondLine {
		// A typo in SECOND_LINE_BANDS falls back to single coverage rather
		// than failing the run.
		if utils.ValidateBandName(name) != nil {
			continue
		}
		policy.SetMinimum(domain.ShiftBand(name), 2)
	}

	return policy
}

func (h *Handler) queueGapReportMail(myInfo *domain.Coordinator, roster *domain.Roster, report *domain.GapReport) error {
	underTarget := 0
	scheduledHours := int32(0)
	for _, wh := range roster.Ledger {
		scheduledHours += wh.Hours
		if wh.Hours < h.config.Roster.HourCeiling {
			underTarget++
		}
	}

	mailMessage := domain.MailMessage{
		Type: "gap_report",
		To:   myInfo.Email,
		Data: domain.GapReportMailData{
			FullName:       myInfo.FullName,
			Month:          roster.Month,
			Year:           roster.Year,
			ShortfallCount: len(report.Shortfalls),
			UnderTarget:    underTarget,
			WorkerCount:    len(roster.Ledger),
			ScheduledHours: scheduledHours,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"roster_mail_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
