package scheduler

import (
	"sort"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

// resolveBand decides which band a worker belongs to today: manual override
// first, then the fixed preference, then the rotation pattern.
func (s *Scheduler) resolveBand(w *domain.Worker, day int32) domain.ShiftBand {
	if band, ok := s.snapshot.Override(w.ID, day); ok {
		return band
	}
	if w.PreferredBand != nil {
		return *w.PreferredBand
	}
	return s.policy.DefaultBandFor(s.ordinals[w.ID])
}

func (s *Scheduler) assign(w *domain.Worker, day int32, band domain.ShiftBand) {
	s.statuses[w.ID][day-1] = domain.DayStatus(band)

	st := s.states[w.ID]
	st.hours += s.params.ShiftHours
	st.consecutive++
}

// fits checks the two hard constraints of the automatic passes: the projected
// hours stay under the ceiling and the rest rule is not broken.
func (s *Scheduler) fits(w *domain.Worker) bool {
	st := s.states[w.ID]
	return st.hours+s.params.ShiftHours <= s.params.HourCeiling &&
		st.consecutive < s.params.MaxConsecutiveDays
}

// scheduleDay settles every worker's status for one day. Manual overrides are
// exempt from the ceiling and rest checks; the automatic passes never are.
func (s *Scheduler) scheduleDay(day int32) {
	covered := make(map[domain.ShiftBand]int32, len(domain.Bands))
	assigned := make(map[int64]bool, len(s.snapshot.Workers))

	// Partition: leave days are settled immediately and reset the streak.
	eligible := make([]*domain.Worker, 0, len(s.snapshot.Workers))
	for _, w := range s.snapshot.Workers {
		if s.snapshot.IsOnLeave(w.ID, day) {
			s.statuses[w.ID][day-1] = domain.StatusLeave
			s.states[w.ID].consecutive = 0
			continue
		}
		eligible = append(eligible, w)
	}

	// Manual overrides outrank everything except leave and are honored
	// verbatim; they still count toward hours, streaks and coverage.
	for _, w := range eligible {
		if band, ok := s.snapshot.Override(w.ID, day); ok {
			s.assign(w, day, band)
			assigned[w.ID] = true
			covered[band]++
		}
	}

	// Workers furthest behind on hours pick first; ties break by an unbiased
	// random permutation so nobody is systematically over- or under-scheduled.
	candidates := make([]*domain.Worker, 0, len(eligible))
	for _, w := range eligible {
		if !assigned[w.ID] {
			candidates = append(candidates, w)
		}
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return s.states[candidates[i].ID].hours < s.states[candidates[j].ID].hours
	})

	// Minimum pass: fill each band in fixed order up to its policy minimum.
	// A band that cannot be filled stays short; the gap reporter flags it.
	for _, band := range domain.Bands {
		need := s.policy.MinimumHeadcount(band) - covered[band]
		for _, w := range candidates {
			if need <= 0 {
				break
			}
			if assigned[w.ID] || s.resolveBand(w, day) != band || !s.fits(w) {
				continue
			}
			s.assign(w, day, band)
			assigned[w.ID] = true
			covered[band]++
			need--
		}
	}

	// Overfill pass: workers behind the pace needed to reach the monthly
	// target may join their band even though its minimum is already met.
	if s.params.EnableOverfill {
		pace := float64(day) / float64(s.numDays)
		for _, w := range candidates {
			if assigned[w.ID] || !s.fits(w) {
				continue
			}
			lag := float64(s.states[w.ID].hours) / pace / float64(s.params.HourCeiling)
			if lag >= s.params.OverfillThreshold {
				continue
			}
			band := s.resolveBand(w, day)
			s.assign(w, day, band)
			assigned[w.ID] = true
			covered[band]++
		}
	}

	// Whoever is left rested today.
	for _, w := range eligible {
		if !assigned[w.ID] {
			s.statuses[w.ID][day-1] = domain.StatusRest
			s.states[w.ID].consecutive = 0
		}
	}
}

// catchUp pushes under-target workers toward the monthly hour target by
// flipping REST days to shifts. Coverage is already settled, so band minimums
// are deliberately ignored here; leave, the ceiling and the rest rule are not.
func (s *Scheduler) catchUp() {
	for _, w := range s.snapshot.Workers {
		st := s.states[w.ID]

		for day := int32(1); day <= s.numDays; day++ {
			if st.hours+s.params.ShiftHours > s.params.HourCeiling {
				break
			}
			if s.statuses[w.ID][day-1] != domain.StatusRest {
				continue
			}
			if s.shiftRunWith(w.ID, day) > s.params.MaxConsecutiveDays {
				continue
			}

			s.statuses[w.ID][day-1] = domain.DayStatus(s.resolveBand(w, day))
			st.hours += s.params.ShiftHours
		}
	}
}

// shiftRunWith is the consecutive working-day run length that would result
// from flipping the given day to a shift.
func (s *Scheduler) shiftRunWith(workerID int64, day int32) int32 {
	run := int32(1)
	for d := day - 1; d >= 1 && s.statuses[workerID][d-1].IsShift(); d-- {
		run++
	}
	for d := day + 1; d <= s.numDays && s.statuses[workerID][d-1].IsShift(); d++ {
		run++
	}
	return run
}
