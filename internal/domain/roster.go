package domain

import "time"

// DayStatus is either a shift band, REST or LEAVE. Every (worker, day) pair of
// a generated roster resolves to exactly one status.
type DayStatus string

const (
	StatusRest  DayStatus = "REST"
	StatusLeave DayStatus = "LEAVE"
)

func (s DayStatus) IsShift() bool {
	return s != StatusRest && s != StatusLeave && s != ""
}

type Assignment struct {
	Day      int32     `json:"day"`
	WorkerID int64     `json:"workerID"`
	Status   DayStatus `json:"status"`
}

type WorkerHours struct {
	WorkerID int64  `json:"workerID"`
	Name     string `json:"name"`
	Hours    int32  `json:"hours"`
}

type Roster struct {
	ID            int64         `json:"id"`
	CoordinatorID int64         `json:"coordinatorID"`
	Month         int32         `json:"month"`
	Year          int32         `json:"year"`
	Seed          int64         `json:"seed"`
	Assignments   []Assignment  `json:"assignments"`
	Ledger        []WorkerHours `json:"ledger"`
	CreatedAt     time.Time     `json:"createdAt"`
	Version       int32         `json:"-"`
}
