package domain

// CoverageShortfall flags a (day, band) pair staffed below the policy minimum.
type CoverageShortfall struct {
	Day      int32     `json:"day"`
	Band     ShiftBand `json:"band"`
	Assigned int32     `json:"assigned"`
	Required int32     `json:"required"`
}

// HourDeviation flags a worker whose final hour total missed the monthly target.
type HourDeviation struct {
	WorkerID    int64  `json:"workerID"`
	Name        string `json:"name"`
	ActualHours int32  `json:"actualHours"`
	TargetHours int32  `json:"targetHours"`
}

type GapReport struct {
	Shortfalls []CoverageShortfall `json:"shortfalls"`
	Deviations []HourDeviation     `json:"deviations"`
}
