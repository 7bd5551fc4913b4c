package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func snapshotWithWorker(id int64) *CatalogSnapshot {
	coordinatorID := int64(1)
	return &CatalogSnapshot{
		CoordinatorID: 1,
		Month:         6,
		Year:          2026,
		Workers: []*Worker{
			{ID: id, Name: "Lucia Garcia", HomePool: "Legacy", CoordinatorID: &coordinatorID},
		},
	}
}

func TestCatalogSnapshot_OverrideLatestWins(t *testing.T) {
	snap := snapshotWithWorker(7)
	day5 := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	snap.Overrides = []*ManualOverride{
		{ID: 1, WorkerID: 7, Date: day5, Band: BandEvening},
		{ID: 2, WorkerID: 7, Date: day5, Band: BandOvernight},
	}

	band, ok := snap.Override(7, 5)
	assert.True(t, ok)
	assert.Equal(t, BandOvernight, band)
}

func TestCatalogSnapshot_OverrideForUnknownWorkerIgnored(t *testing.T) {
	snap := snapshotWithWorker(7)
	snap.Overrides = []*ManualOverride{
		{ID: 1, WorkerID: 99, Date: time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), Band: BandEvening},
	}

	_, ok := snap.Override(99, 5)
	assert.False(t, ok)
}

func TestCatalogSnapshot_OverrideIgnoresTimeOfDay(t *testing.T) {
	snap := snapshotWithWorker(7)
	snap.Overrides = []*ManualOverride{
		{ID: 1, WorkerID: 7, Date: time.Date(2026, 6, 5, 16, 30, 0, 0, time.UTC), Band: BandDaytime},
	}

	band, ok := snap.Override(7, 5)
	assert.True(t, ok)
	assert.Equal(t, BandDaytime, band)
}

func TestCatalogSnapshot_IsOnLeaveUnionOfPeriods(t *testing.T) {
	snap := snapshotWithWorker(7)
	snap.LeavePeriods = []*LeavePeriod{
		{ID: 1, WorkerID: 7, StartDate: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)},
		{ID: 2, WorkerID: 7, StartDate: time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)},
	}

	assert.False(t, snap.IsOnLeave(7, 1))
	for day := int32(2); day <= 6; day++ {
		assert.Truef(t, snap.IsOnLeave(7, day), "day %d should be covered", day)
	}
	assert.False(t, snap.IsOnLeave(7, 7))
	assert.False(t, snap.IsOnLeave(99, 3))
}

func TestLeavePeriod_CoversInclusiveBounds(t *testing.T) {
	lp := &LeavePeriod{
		StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.False(t, lp.Covers(time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC)))
	assert.True(t, lp.Covers(time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, lp.Covers(time.Date(2026, 6, 15, 23, 59, 0, 0, time.UTC)))
	assert.False(t, lp.Covers(time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)))
}

func TestWorker_OwnedBy(t *testing.T) {
	owner := int64(1)
	borrower := int64(2)

	tests := []struct {
		name          string
		worker        Worker
		coordinatorID int64
		want          bool
	}{
		{
			name:          "owned and not lent",
			worker:        Worker{CoordinatorID: &owner, BorrowStatus: BorrowNone},
			coordinatorID: owner,
			want:          true,
		},
		{
			name:          "lent away",
			worker:        Worker{CoordinatorID: &owner, BorrowStatus: BorrowLent, LentTo: &borrower},
			coordinatorID: owner,
			want:          false,
		},
		{
			name:          "lent to me",
			worker:        Worker{CoordinatorID: &owner, BorrowStatus: BorrowLent, LentTo: &borrower},
			coordinatorID: borrower,
			want:          true,
		},
		{
			name:          "in the reserve pool",
			worker:        Worker{CoordinatorID: nil, BorrowStatus: BorrowNone},
			coordinatorID: owner,
			want:          false,
		},
		{
			name:          "claimed from the reserve pool",
			worker:        Worker{CoordinatorID: &borrower, BorrowStatus: BorrowOnLoan},
			coordinatorID: borrower,
			want:          true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.worker.OwnedBy(tt.coordinatorID))
		})
	}
}

func TestDayStatus_IsShift(t *testing.T) {
	assert.True(t, DayStatus(BandEarlyMorning).IsShift())
	assert.True(t, DayStatus(BandOvernight).IsShift())
	assert.False(t, StatusRest.IsShift())
	assert.False(t, StatusLeave.IsShift())
	assert.False(t, DayStatus("").IsShift())
}
