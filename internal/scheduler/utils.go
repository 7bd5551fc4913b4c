package scheduler

import "time"

// daysInMonth returns the day count of the calendar month, leap years included.
func daysInMonth(month, year int32) int32 {
	return int32(time.Date(int(year), time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day())
}
