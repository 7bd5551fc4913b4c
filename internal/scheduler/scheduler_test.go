package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

func bandPtr(b domain.ShiftBand) *domain.ShiftBand { return &b }

func int64Ptr(v int64) *int64 { return &v }

func testWorker(id int64, name string, band *domain.ShiftBand) *domain.Worker {
	return &domain.Worker{
		ID:            id,
		Name:          name,
		HomePool:      "Legacy",
		CoordinatorID: int64Ptr(1),
		PreferredBand: band,
		BorrowStatus:  domain.BorrowNone,
	}
}

func testSnapshot(month, year int32, workers []*domain.Worker) *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		CoordinatorID: 1,
		Month:         month,
		Year:          year,
		Workers:       workers,
		LeavePeriods:  []*domain.LeavePeriod{},
		Overrides:     []*domain.ManualOverride{},
	}
}

// eightWorkers builds two workers per band, enough staff for full 24/7
// coverage inside the hour ceiling.
func eightWorkers() []*domain.Worker {
	names := []string{"Lucia", "Marco", "Elena", "Jorge", "Rosa", "Pedro", "Carla", "Diego"}
	workers := make([]*domain.Worker, 0, 8)
	for i, name := range names {
		workers = append(workers, testWorker(int64(i+1), name, bandPtr(domain.Bands[i/2])))
	}
	return workers
}

// statusGrid pivots the assignment list into workerID -> day -> status and
// fails the test if any (worker, day) pair appears twice.
func statusGrid(t *testing.T, roster *domain.Roster) map[int64]map[int32]domain.DayStatus {
	t.Helper()

	grid := make(map[int64]map[int32]domain.DayStatus)
	for _, a := range roster.Assignments {
		if grid[a.WorkerID] == nil {
			grid[a.WorkerID] = make(map[int32]domain.DayStatus)
		}
		_, dup := grid[a.WorkerID][a.Day]
		require.Falsef(t, dup, "worker %d has two assignments on day %d", a.WorkerID, a.Day)
		grid[a.WorkerID][a.Day] = a.Status
	}
	return grid
}

// checkInvariants asserts the guarantees every generated roster must hold:
// one status per worker per day, hours under the ceiling, the rest rule, and
// a ledger consistent with the assignment list.
func checkInvariants(t *testing.T, roster *domain.Roster, params *Parameters) {
	t.Helper()

	numDays := daysInMonth(roster.Month, roster.Year)
	grid := statusGrid(t, roster)

	hours := make(map[int64]int32)
	for workerID, days := range grid {
		require.Lenf(t, days, int(numDays), "worker %d is missing days", workerID)

		run := int32(0)
		for day := int32(1); day <= numDays; day++ {
			status := days[day]
			require.NotEmpty(t, status)
			if status.IsShift() {
				hours[workerID] += params.ShiftHours
				run++
				assert.LessOrEqualf(t, run, params.MaxConsecutiveDays,
					"worker %d works more than %d consecutive days around day %d", workerID, params.MaxConsecutiveDays, day)
			} else {
				run = 0
			}
		}

		assert.LessOrEqualf(t, hours[workerID], params.HourCeiling, "worker %d is over the hour ceiling", workerID)
	}

	for _, wh := range roster.Ledger {
		assert.Equalf(t, hours[wh.WorkerID], wh.Hours, "ledger mismatch for worker %d", wh.WorkerID)
	}
}

func TestSchedule_FullCoverageWithTwoWorkersPerBand(t *testing.T) {
	params := DefaultParameters(42)
	snap := testSnapshot(6, 2026, eightWorkers())

	s, err := New(params, NewCoveragePolicy(), snap)
	require.NoError(t, err)

	roster := s.Schedule()
	checkInvariants(t, roster, params)

	report := BuildGapReport(roster, NewCoveragePolicy(), params.HourCeiling)
	assert.Empty(t, report.Shortfalls, "two workers per band should cover every band every day")
}

func TestSchedule_UnderstaffedMonthReportsShortfalls(t *testing.T) {
	// Four workers cannot cover four bands for 30 days inside a 176h ceiling;
	// the run must still complete and the reporter must flag the gaps.
	workers := []*domain.Worker{
		testWorker(1, "Lucia", bandPtr(domain.BandEarlyMorning)),
		testWorker(2, "Marco", bandPtr(domain.BandDaytime)),
		testWorker(3, "Elena", bandPtr(domain.BandEvening)),
		testWorker(4, "Jorge", bandPtr(domain.BandOvernight)),
	}
	params := DefaultParameters(7)
	snap := testSnapshot(6, 2026, workers)

	s, err := New(params, NewCoveragePolicy(), snap)
	require.NoError(t, err)

	roster := s.Schedule()
	checkInvariants(t, roster, params)

	report := BuildGapReport(roster, NewCoveragePolicy(), params.HourCeiling)
	assert.NotEmpty(t, report.Shortfalls)
}

func TestSchedule_SecondLineBandCovered(t *testing.T) {
	// Three workers prefer the daytime band, which requires two lines in
	// February; the minimum must be met on all 28 days.
	workers := []*domain.Worker{
		testWorker(1, "Lucia", bandPtr(domain.BandDaytime)),
		testWorker(2, "Marco", bandPtr(domain.BandDaytime)),
		testWorker(3, "Elena", bandPtr(domain.BandDaytime)),
		testWorker(4, "Jorge", bandPtr(domain.BandEarlyMorning)),
		testWorker(5, "Rosa", bandPtr(domain.BandEarlyMorning)),
		testWorker(6, "Pedro", bandPtr(domain.BandEvening)),
		testWorker(7, "Carla", bandPtr(domain.BandEvening)),
		testWorker(8, "Diego", bandPtr(domain.BandOvernight)),
	}
	policy := NewCoveragePolicy()
	policy.SetMinimum(domain.BandDaytime, 2)

	params := DefaultParameters(99)
	snap := testSnapshot(2, 2026, workers)

	s, err := New(params, policy, snap)
	require.NoError(t, err)

	roster := s.Schedule()
	checkInvariants(t, roster, params)

	report := BuildGapReport(roster, policy, params.HourCeiling)
	for _, sf := range report.Shortfalls {
		assert.NotEqualf(t, domain.BandDaytime, sf.Band, "daytime band short on day %d", sf.Day)
	}
}

func TestSchedule_SecondLineBandUnderstaffedReportsEveryDay(t *testing.T) {
	// Only one worker prefers the daytime band: every single day of February
	// must surface as a daytime shortfall.
	workers := []*domain.Worker{
		testWorker(1, "Lucia", bandPtr(domain.BandDaytime)),
		testWorker(2, "Jorge", bandPtr(domain.BandEarlyMorning)),
		testWorker(3, "Pedro", bandPtr(domain.BandEvening)),
		testWorker(4, "Diego", bandPtr(domain.BandOvernight)),
	}
	policy := NewCoveragePolicy()
	policy.SetMinimum(domain.BandDaytime, 2)

	params := DefaultParameters(5)
	snap := testSnapshot(2, 2026, workers)

	s, err := New(params, policy, snap)
	require.NoError(t, err)

	roster := s.Schedule()

	report := BuildGapReport(roster, policy, params.HourCeiling)
	daytimeShortDays := make(map[int32]bool)
	for _, sf := range report.Shortfalls {
		if sf.Band == domain.BandDaytime {
			assert.Equal(t, int32(2), sf.Required)
			daytimeShortDays[sf.Day] = true
		}
	}
	assert.Len(t, daytimeShortDays, 28)
}

func TestSchedule_LeaveDaysNeverWorked(t *testing.T) {
	workers := eightWorkers()
	snap := testSnapshot(6, 2026, workers)
	snap.LeavePeriods = []*domain.LeavePeriod{
		{
			ID:        1,
			WorkerID:  1,
			StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}
	// An override inside the leave window must be dropped for those days.
	snap.Overrides = []*domain.ManualOverride{
		{ID: 1, CoordinatorID: 1, WorkerID: 1, Date: time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC), Band: domain.BandOvernight},
	}

	params := DefaultParameters(11)
	s, err := New(params, NewCoveragePolicy(), snap)
	require.NoError(t, err)

	roster := s.Schedule()
	checkInvariants(t, roster, params)

	grid := statusGrid(t, roster)
	for day := int32(10); day <= 15; day++ {
		assert.Equalf(t, domain.StatusLeave, grid[1][day], "day %d should be leave", day)
	}
}

func TestSchedule_OverrideOutranksPreference(t *testing.T) {
	workers := eightWorkers() // worker 1 prefers the early-morning band
	snap := testSnapshot(6, 2026, workers)
	snap.Overrides = []*domain.ManualOverride{
		{ID: 1, CoordinatorID: 1, WorkerID: 1, Date: time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), Band: domain.BandOvernight},
	}

	params := DefaultParameters(3)
	s, err := New(params, NewCoveragePolicy(), snap)
	require.NoError(t, err)

	roster := s.Schedule()
	checkInvariants(t, roster, params)

	grid := statusGrid(t, roster)
	assert.Equal(t, domain.DayStatus(domain.BandOvernight), grid[1][5])

	// Every other day follows the normal resolution: preferred band or rest.
	numDays := daysInMonth(6, 2026)
	for day := int32(1); day <= numDays; day++ {
		if day == 5 {
			continue
		}
		status := grid[1][day]
		if status.IsShift() {
			assert.Equalf(t, domain.DayStatus(domain.BandEarlyMorning), status, "unexpected band on day %d", day)
		}
	}
}

func TestSchedule_RotationPatternSpreadsUnpreferencedWorkers(t *testing.T) {
	// No preferences at all: day one must still fill all four bands via the
	// rotation fallback.
	workers := make([]*domain.Worker, 0, 8)
	names := []string{"Lucia", "Marco", "Elena", "Jorge", "Rosa", "Pedro", "Carla", "Diego"}
	for i, name := range names {
		workers = append(workers, testWorker(int64(i+1), name, nil))
	}

	params := DefaultParameters(21)
	snap := testSnapshot(6, 2026, workers)

	s, err := New(params, NewCoveragePolicy(), snap)
	require.NoError(t, err)

	roster := s.Schedule()
	checkInvariants(t, roster, params)

	firstDay := make(map[domain.DayStatus]int)
	for _, a := range roster.Assignments {
		if a.Day == 1 && a.Status.IsShift() {
			firstDay[a.Status]++
		}
	}
	for _, band := range domain.Bands {
		assert.GreaterOrEqualf(t, firstDay[domain.DayStatus(band)], 1, "band %s empty on day 1", band)
	}
}

func TestSchedule_CatchUpReachesTargetWithoutOverfill(t *testing.T) {
	// With the overfill pass off, the day loop only meets the band minimums,
	// leaving every worker around 120h. The catch-up pass alone must lift the
	// whole roster to the hour target without breaking the rest rule.
	params := DefaultParameters(6)
	params.EnableOverfill = false
	snap := testSnapshot(6, 2026, eightWorkers())

	s, err := New(params, NewCoveragePolicy(), snap)
	require.NoError(t, err)

	roster := s.Schedule()
	checkInvariants(t, roster, params)

	for _, wh := range roster.Ledger {
		assert.Equalf(t, params.HourCeiling, wh.Hours, "worker %d below the hour target", wh.WorkerID)
	}
}

func TestSchedule_OverridesExemptFromRestRule(t *testing.T) {
	// Seven override days in a row are honored verbatim even though the
	// automatic passes would have forced a rest day into the run.
	workers := []*domain.Worker{testWorker(1, "Lucia", bandPtr(domain.BandDaytime))}
	snap := testSnapshot(6, 2026, workers)
	for day := 1; day <= 7; day++ {
		snap.Overrides = append(snap.Overrides, &domain.ManualOverride{
			ID:            int64(day),
			CoordinatorID: 1,
			WorkerID:      1,
			Date:          time.Date(2026, 6, day, 0, 0, 0, 0, time.UTC),
			Band:          domain.BandOvernight,
		})
	}

	s, err := New(DefaultParameters(2), NewCoveragePolicy(), snap)
	require.NoError(t, err)

	grid := statusGrid(t, s.Schedule())
	for day := int32(1); day <= 7; day++ {
		assert.Equalf(t, domain.DayStatus(domain.BandOvernight), grid[1][day], "override dropped on day %d", day)
	}
}

func TestSchedule_SingleWorkerRespectsRestRuleAndCeiling(t *testing.T) {
	workers := []*domain.Worker{testWorker(1, "Lucia", bandPtr(domain.BandEarlyMorning))}

	params := DefaultParameters(1)
	snap := testSnapshot(7, 2026, workers) // 31 days

	s, err := New(params, NewCoveragePolicy(), snap)
	require.NoError(t, err)

	roster := s.Schedule()
	checkInvariants(t, roster, params)
}

func TestSchedule_DeterministicForFixedSeed(t *testing.T) {
	build := func() *domain.Roster {
		snap := testSnapshot(6, 2026, eightWorkers())
		s, err := New(DefaultParameters(1234), NewCoveragePolicy(), snap)
		require.NoError(t, err)
		return s.Schedule()
	}

	first := build()
	second := build()

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Ledger, second.Ledger)
}

func TestSchedule_LatestOverrideWins(t *testing.T) {
	// Two writes for the same (worker, day): only the newer value applies.
	snap := testSnapshot(6, 2026, eightWorkers())
	day5 := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	snap.Overrides = []*domain.ManualOverride{
		{ID: 1, CoordinatorID: 1, WorkerID: 1, Date: day5, Band: domain.BandEvening},
		{ID: 2, CoordinatorID: 1, WorkerID: 1, Date: day5, Band: domain.BandOvernight},
	}

	params := DefaultParameters(8)
	s, err := New(params, NewCoveragePolicy(), snap)
	require.NoError(t, err)

	roster := s.Schedule()
	grid := statusGrid(t, roster)
	assert.Equal(t, domain.DayStatus(domain.BandOvernight), grid[1][5])
}

func TestNew_ConfigurationErrors(t *testing.T) {
	base := func() *domain.CatalogSnapshot { return testSnapshot(6, 2026, eightWorkers()) }

	tests := []struct {
		name   string
		params *Parameters
		policy *CoveragePolicy
		snap   *domain.CatalogSnapshot
	}{
		{
			name:   "invalid month",
			params: DefaultParameters(1),
			policy: NewCoveragePolicy(),
			snap:   testSnapshot(13, 2026, eightWorkers()),
		},
		{
			name:   "empty roster",
			params: DefaultParameters(1),
			policy: NewCoveragePolicy(),
			snap:   testSnapshot(6, 2026, nil),
		},
		{
			name:   "empty worker name",
			params: DefaultParameters(1),
			policy: NewCoveragePolicy(),
			snap:   testSnapshot(6, 2026, []*domain.Worker{testWorker(1, "", nil)}),
		},
		{
			name:   "leave ends before it starts",
			params: DefaultParameters(1),
			policy: NewCoveragePolicy(),
			snap: func() *domain.CatalogSnapshot {
				s := base()
				s.LeavePeriods = []*domain.LeavePeriod{{
					ID:        1,
					WorkerID:  1,
					StartDate: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
				}}
				return s
			}(),
		},
		{
			name:   "zero band minimum",
			params: DefaultParameters(1),
			policy: func() *CoveragePolicy {
				p := NewCoveragePolicy()
				p.SetMinimum(domain.BandEvening, 0)
				return p
			}(),
			snap: base(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params, tt.policy, tt.snap)
			assert.Error(t, err)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, int32(28), daysInMonth(2, 2026))
	assert.Equal(t, int32(29), daysInMonth(2, 2024))
	assert.Equal(t, int32(30), daysInMonth(6, 2026))
	assert.Equal(t, int32(31), daysInMonth(12, 2026))
}
