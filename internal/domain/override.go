package domain

import "time"

// ManualOverride forces a worker onto a specific band for one day. At most one
// override exists per (worker, day); writing a new one replaces the old value.
type ManualOverride struct {
	ID            int64     `json:"id"`
	CoordinatorID int64     `json:"coordinatorID"`
	WorkerID      int64     `json:"workerID"`
	Date          time.Time `json:"date"`
	Band          ShiftBand `json:"band"`
	CreatedAt     time.Time `json:"createdAt"`
}
