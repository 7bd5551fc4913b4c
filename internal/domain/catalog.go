package domain

import "time"

// CatalogSnapshot is an immutable read of everything a generation run consumes.
// The engine never goes back to live state once the snapshot is taken.
type CatalogSnapshot struct {
	CoordinatorID int64             `json:"coordinatorID"`
	Month         int32             `json:"month"`
	Year          int32             `json:"year"`
	Workers       []*Worker         `json:"workers"`
	LeavePeriods  []*LeavePeriod    `json:"leavePeriods"`
	Overrides     []*ManualOverride `json:"overrides"`
}

// DateOf maps a 1-based day number onto the calendar date of the target month.
func (c *CatalogSnapshot) DateOf(day int32) time.Time {
	return time.Date(int(c.Year), time.Month(c.Month), int(day), 0, 0, 0, 0, time.UTC)
}

func (c *CatalogSnapshot) Worker(id int64) *Worker {
	for _, w := range c.Workers {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (c *CatalogSnapshot) IsOnLeave(workerID int64, day int32) bool {
	date := c.DateOf(day)
	for _, lp := range c.LeavePeriods {
		if lp.WorkerID == workerID && lp.Covers(date) {
			return true
		}
	}
	return false
}

// Override returns the forced band for (worker, day), if any. Overrides for
// workers outside the snapshot are stale cross-coordinator entries and are
// ignored; when duplicates slip in, the newest write wins.
func (c *CatalogSnapshot) Override(workerID int64, day int32) (ShiftBand, bool) {
	if c.Worker(workerID) == nil {
		return "", false
	}

	date := c.DateOf(day)
	var band ShiftBand
	found := false
	for _, ov := range c.Overrides {
		if ov.WorkerID == workerID && sameDate(ov.Date, date) {
			band = ov.Band
			found = true
		}
	}

	return band, found
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
