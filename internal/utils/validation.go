package utils

import (
	"fmt"

	"github.com/turnoshq/roster-manager/backend/internal/domain"
)

func ValidateLeavePeriod(lp *domain.LeavePeriod) error {
	if lp.EndDate.Before(lp.StartDate) {
		return fmt.Errorf("leave period cannot end before it starts")
	}
	return nil
}

func ValidateMonthYear(month, year int32) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d is not in 1..12", month)
	}
	if year < 1 {
		return fmt.Errorf("year %d is invalid", year)
	}
	return nil
}

func ValidateBandName(name string) error {
	if !domain.IsValidBand(domain.ShiftBand(name)) {
		return fmt.Errorf("unknown shift band %q", name)
	}
	return nil
}

// ValidateRosterShape checks that a stored roster still carries exactly one
// status per worker per day. Useful as a guard when re-reading rosters that
// predate schema changes.
func ValidateRosterShape(roster *domain.Roster, numDays int32, workerCount int) error {
	if int32(len(roster.Assignments)) != numDays*int32(workerCount) {
		return fmt.Errorf("roster has %d assignments, want %d", len(roster.Assignments), numDays*int32(workerCount))
	}

	seen := make(map[[2]int64]bool, len(roster.Assignments))
	for _, a := range roster.Assignments {
		key := [2]int64{int64(a.Day), a.WorkerID}
		if seen[key] {
			return fmt.Errorf("worker %d has two statuses on day %d", a.WorkerID, a.Day)
		}
		seen[key] = true

		if a.Day < 1 || a.Day > numDays {
			return fmt.Errorf("assignment day %d is outside the month", a.Day)
		}
	}

	return nil
}
