package scheduler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

// Scheduler generates the month roster for one coordinator. It owns all
// running state of the run and must not be reused across runs.
type Scheduler struct {
	params   *Parameters
	policy   *CoveragePolicy
	snapshot *domain.CatalogSnapshot
	rng      *rand.Rand

	numDays  int32
	ordinals map[int64]int // worker ID -> position in the rotation pattern
	states   map[int64]*workerState
	statuses map[int64][]domain.DayStatus // worker ID -> per-day status, index day-1
}

func New(params *Parameters, policy *CoveragePolicy, snapshot *domain.CatalogSnapshot) (*Scheduler, error) {
	if snapshot.Month < 1 || snapshot.Month > 12 {
		return nil, fmt.Errorf("month %d is not in 1..12", snapshot.Month)
	}
	if snapshot.Year < 1 {
		return nil, fmt.Errorf("year %d is invalid", snapshot.Year)
	}
	if len(snapshot.Workers) == 0 {
		return nil, fmt.Errorf("coordinator %d has no workers to schedule", snapshot.CoordinatorID)
	}
	if params.HourCeiling <= 0 || params.ShiftHours <= 0 || params.MaxConsecutiveDays <= 0 {
		return nil, fmt.Errorf("hour ceiling, shift hours and max consecutive days must all be positive")
	}

	for _, w := range snapshot.Workers {
		if w.Name == "" {
			return nil, fmt.Errorf("worker %d has an empty name", w.ID)
		}
		if w.PreferredBand != nil && !domain.IsValidBand(*w.PreferredBand) {
			return nil, fmt.Errorf("worker %q has unknown preferred band %q", w.Name, *w.PreferredBand)
		}
	}

	for _, lp := range snapshot.LeavePeriods {
		if lp.EndDate.Before(lp.StartDate) {
			return nil, fmt.Errorf("leave period %d for worker %d ends before it starts", lp.ID, lp.WorkerID)
		}
	}

	for _, ov := range snapshot.Overrides {
		if !domain.IsValidBand(ov.Band) {
			return nil, fmt.Errorf("override %d carries unknown band %q", ov.ID, ov.Band)
		}
	}

	for _, band := range domain.Bands {
		if policy.MinimumHeadcount(band) < 1 {
			return nil, fmt.Errorf("band %q has a minimum headcount below 1", band)
		}
	}

	s := &Scheduler{
		params:   params,
		policy:   policy,
		snapshot: snapshot,
		rng:      rand.New(rand.NewSource(params.Seed)),
		numDays:  daysInMonth(snapshot.Month, snapshot.Year),
		ordinals: make(map[int64]int, len(snapshot.Workers)),
		states:   make(map[int64]*workerState, len(snapshot.Workers)),
		statuses: make(map[int64][]domain.DayStatus, len(snapshot.Workers)),
	}

	for i, w := range snapshot.Workers {
		s.ordinals[w.ID] = i
		s.states[w.ID] = &workerState{}
		s.statuses[w.ID] = make([]domain.DayStatus, s.numDays)
	}

	return s, nil
}

// Schedule runs the forward day pass over every calendar day, then the
// catch-up pass. It is total: every outcome, including under-covered days,
// is valid roster data for the gap reporter to flag.
func (s *Scheduler) Schedule() *domain.Roster {
	for day := int32(1); day <= s.numDays; day++ {
		s.scheduleDay(day)
	}

	s.catchUp()

	return s.buildRoster()
}

func (s *Scheduler) buildRoster() *domain.Roster {
	roster := &domain.Roster{
		CoordinatorID: s.snapshot.CoordinatorID,
		Month:         s.snapshot.Month,
		Year:          s.snapshot.Year,
		Seed:          s.params.Seed,
		Assignments:   make([]domain.Assignment, 0, int(s.numDays)*len(s.snapshot.Workers)),
		Ledger:        make([]domain.WorkerHours, 0, len(s.snapshot.Workers)),
		CreatedAt:     time.Now(),
	}

	for day := int32(1); day <= s.numDays; day++ {
		for _, w := range s.snapshot.Workers {
			roster.Assignments = append(roster.Assignments, domain.Assignment{
				Day:      day,
				WorkerID: w.ID,
				Status:   s.statuses[w.ID][day-1],
			})
		}
	}

	for _, w := range s.snapshot.Workers {
		roster.Ledger = append(roster.Ledger, domain.WorkerHours{
			WorkerID: w.ID,
			Name:     w.Name,
			Hours:    s.states[w.ID].hours,
		})
	}

	return roster
}
