package domain

import "time"

type ShiftBand string

const (
	BandEarlyMorning ShiftBand = "6am-2pm"
	BandDaytime      ShiftBand = "9am-6pm"
	BandEvening      ShiftBand = "6pm-2am"
	BandOvernight    ShiftBand = "10pm-6am"
)

// Bands is the fixed fill order the scheduler walks every day.
var Bands = []ShiftBand{BandEarlyMorning, BandDaytime, BandEvening, BandOvernight}

func IsValidBand(b ShiftBand) bool {
	for _, band := range Bands {
		if band == b {
			return true
		}
	}
	return false
}

type BorrowStatus string

const (
	BorrowNone   BorrowStatus = "none"    // permanently owned by its coordinator
	BorrowLent   BorrowStatus = "lent"    // temporarily handed to another coordinator
	BorrowOnLoan BorrowStatus = "on-loan" // claimed from a reserve pool
)

type Worker struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	HomePool      string       `json:"homePool"`
	CoordinatorID *int64       `json:"coordinatorID"` // nil while the worker sits in the reserve pool
	PreferredBand *ShiftBand   `json:"preferredBand"` // nil means the rotation pattern decides
	BorrowStatus  BorrowStatus `json:"borrowStatus"`
	LentTo        *int64       `json:"lentTo"`
	CreatedAt     time.Time    `json:"createdAt"`
	Version       int32        `json:"-"`
}

// OwnedBy reports whether the worker currently belongs to the coordinator's
// roster, counting workers lent to them and excluding workers lent away.
func (w *Worker) OwnedBy(coordinatorID int64) bool {
	if w.LentTo != nil && *w.LentTo == coordinatorID {
		return true
	}
	if w.BorrowStatus == BorrowLent {
		return false
	}
	return w.CoordinatorID != nil && *w.CoordinatorID == coordinatorID
}
