package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

func TestValidateLeavePeriod(t *testing.T) {
	valid := &domain.LeavePeriod{
		StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, ValidateLeavePeriod(valid))

	singleDay := &domain.LeavePeriod{
		StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, ValidateLeavePeriod(singleDay))

	inverted := &domain.LeavePeriod{
		StartDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.Error(t, ValidateLeavePeriod(inverted))
}

func TestValidateMonthYear(t *testing.T) {
	assert.NoError(t, ValidateMonthYear(1, 2026))
	assert.NoError(t, ValidateMonthYear(12, 2026))
	assert.Error(t, ValidateMonthYear(0, 2026))
	assert.Error(t, ValidateMonthYear(13, 2026))
	assert.Error(t, ValidateMonthYear(6, 0))
}

func TestValidateBandName(t *testing.T) {
	for _, band := range domain.Bands {
		assert.NoError(t, ValidateBandName(string(band)))
	}
	assert.Error(t, ValidateBandName("graveyard"))
	assert.Error(t, ValidateBandName(""))
}

func TestValidateRosterShape(t *testing.T) {
	roster := &domain.Roster{
		Assignments: []domain.Assignment{
			{Day: 1, WorkerID: 1, Status: domain.StatusRest},
			{Day: 1, WorkerID: 2, Status: domain.DayStatus(domain.BandDaytime)},
			{Day: 2, WorkerID: 1, Status: domain.DayStatus(domain.BandDaytime)},
			{Day: 2, WorkerID: 2, Status: domain.StatusRest},
		},
	}
	assert.NoError(t, ValidateRosterShape(roster, 2, 2))

	short := &domain.Roster{Assignments: roster.Assignments[:3]}
	assert.Error(t, ValidateRosterShape(short, 2, 2))

	duplicated := &domain.Roster{
		Assignments: []domain.Assignment{
			{Day: 1, WorkerID: 1, Status: domain.StatusRest},
			{Day: 1, WorkerID: 1, Status: domain.DayStatus(domain.BandDaytime)},
		},
	}
	assert.Error(t, ValidateRosterShape(duplicated, 1, 2))
}
