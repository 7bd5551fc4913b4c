package domain

import "time"

// LeavePeriod marks an inclusive date range during which a worker cannot be
// scheduled. Periods may overlap; a day is on leave if any period covers it.
type LeavePeriod struct {
	ID        int64     `json:"id"`
	WorkerID  int64     `json:"workerID"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

func (lp *LeavePeriod) Covers(day time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(lp.StartDate)) && !d.After(dateOnly(lp.EndDate))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
