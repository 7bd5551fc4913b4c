package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

func TestBuildGapReport_FlagsEveryBandBelowMinimum(t *testing.T) {
	// A two-day roster with a single worker: only one band per day is
	// staffed, the other three must show up as shortfalls.
	roster := &domain.Roster{
		Month: 2,
		Year:  2026,
		Assignments: []domain.Assignment{
			{Day: 1, WorkerID: 1, Status: domain.DayStatus(domain.BandDaytime)},
			{Day: 2, WorkerID: 1, Status: domain.StatusRest},
		},
		Ledger: []domain.WorkerHours{
			{WorkerID: 1, Name: "Lucia Garcia", Hours: 8},
		},
	}

	report := BuildGapReport(roster, NewCoveragePolicy(), 176)

	numDays := daysInMonth(2, 2026)
	// Day 1 misses three bands, every other day misses all four.
	wantShortfalls := 3 + int(numDays-1)*len(domain.Bands)
	assert.Len(t, report.Shortfalls, wantShortfalls)

	for _, sf := range report.Shortfalls {
		assert.Equal(t, int32(1), sf.Required)
		if sf.Day == 1 {
			assert.NotEqual(t, domain.BandDaytime, sf.Band)
		}
	}

	require.Len(t, report.Deviations, 1)
	assert.Equal(t, int32(8), report.Deviations[0].ActualHours)
	assert.Equal(t, int32(176), report.Deviations[0].TargetHours)
}

func TestBuildGapReport_QuietWhenCoverageAndTargetMet(t *testing.T) {
	roster := &domain.Roster{
		Month:       2,
		Year:        2026,
		Assignments: []domain.Assignment{},
		Ledger: []domain.WorkerHours{
			{WorkerID: 1, Name: "Lucia Garcia", Hours: 176},
		},
	}

	numDays := daysInMonth(2, 2026)
	for day := int32(1); day <= numDays; day++ {
		for i, band := range domain.Bands {
			roster.Assignments = append(roster.Assignments, domain.Assignment{
				Day:      day,
				WorkerID: int64(i + 1),
				Status:   domain.DayStatus(band),
			})
		}
	}

	report := BuildGapReport(roster, NewCoveragePolicy(), 176)

	assert.Empty(t, report.Shortfalls)
	assert.Empty(t, report.Deviations)
}

func TestCoveragePolicy_Defaults(t *testing.T) {
	policy := NewCoveragePolicy()

	for _, band := range domain.Bands {
		assert.Equal(t, int32(1), policy.MinimumHeadcount(band))
	}

	policy.SetMinimum(domain.BandDaytime, 2)
	assert.Equal(t, int32(2), policy.MinimumHeadcount(domain.BandDaytime))
	assert.Equal(t, int32(1), policy.MinimumHeadcount(domain.BandEvening))
}

func TestCoveragePolicy_DefaultBandForWrapsAround(t *testing.T) {
	policy := NewCoveragePolicy()

	for i := 0; i < 2*len(domain.Bands); i++ {
		assert.Equal(t, domain.Bands[i%len(domain.Bands)], policy.DefaultBandFor(i))
	}
}
