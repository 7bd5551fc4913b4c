package scheduler

import "github.com/turnoshq/roster-manager/backend/internal/domain"

// BuildGapReport post-processes a generated roster into operator warnings:
// under-covered (day, band) pairs and workers off the monthly hour target.
// It reads the roster only and never feeds back into scheduling decisions.
func BuildGapReport(roster *domain.Roster, policy *CoveragePolicy, targetHours int32) *domain.GapReport {
	numDays := daysInMonth(roster.Month, roster.Year)

	headcount := make(map[int32]map[domain.ShiftBand]int32, numDays)
	for _, a := range roster.Assignments {
		if !a.Status.IsShift() {
			continue
		}
		if headcount[a.Day] == nil {
			headcount[a.Day] = make(map[domain.ShiftBand]int32, len(domain.Bands))
		}
		headcount[a.Day][domain.ShiftBand(a.Status)]++
	}

	report := &domain.GapReport{
		Shortfalls: []domain.CoverageShortfall{},
		Deviations: []domain.HourDeviation{},
	}

	for day := int32(1); day <= numDays; day++ {
		for _, band := range domain.Bands {
			required := policy.MinimumHeadcount(band)
			if got := headcount[day][band]; got < required {
				report.Shortfalls = append(report.Shortfalls, domain.CoverageShortfall{
					Day:      day,
					Band:     band,
					Assigned: got,
					Required: required,
				})
			}
		}
	}

	for _, wh := range roster.Ledger {
		if wh.Hours != targetHours {
			report.Deviations = append(report.Deviations, domain.HourDeviation{
				WorkerID:    wh.WorkerID,
				Name:        wh.Name,
				ActualHours: wh.Hours,
				TargetHours: targetHours,
			})
		}
	}

	return report
}
