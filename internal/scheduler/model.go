package scheduler

import "github.com/turnoshq/roster-manager/backend/internal/domain"

// Parameters control a single generation run.
type Parameters struct {
	HourCeiling        int32 // monthly working-hour ceiling, also the hour target
	ShiftHours         int32
	MaxConsecutiveDays int32
	OverfillThreshold  float64 // lag ratio below which a worker may join a band past its minimum
	EnableOverfill     bool
	Seed               int64 // same seed + same snapshot produces an identical roster
}

func DefaultParameters(seed int64) *Parameters {
	return &Parameters{
		HourCeiling:        176,
		ShiftHours:         8,
		MaxConsecutiveDays: 6,
		OverfillThreshold:  0.9,
		EnableOverfill:     true,
		Seed:               seed,
	}
}

// CoveragePolicy maps bands to headcount minimums and supplies the rotation
// fallback for workers without a fixed preference. It is configuration injected
// into the run; the scheduler never decides coverage on its own.
type CoveragePolicy struct {
	minimums map[domain.ShiftBand]int32
	pattern  []domain.ShiftBand
}

func NewCoveragePolicy() *CoveragePolicy {
	minimums := make(map[domain.ShiftBand]int32, len(domain.Bands))
	for _, band := range domain.Bands {
		minimums[band] = 1
	}

	return &CoveragePolicy{
		minimums: minimums,
		pattern:  append([]domain.ShiftBand{}, domain.Bands...),
	}
}

func (p *CoveragePolicy) SetMinimum(band domain.ShiftBand, n int32) {
	p.minimums[band] = n
}

func (p *CoveragePolicy) MinimumHeadcount(band domain.ShiftBand) int32 {
	if n, exists := p.minimums[band]; exists {
		return n
	}
	return 1
}

// DefaultBandFor spreads workers without a fixed preference evenly across the
// repeating pattern by their position in the roster.
func (p *CoveragePolicy) DefaultBandFor(ordinal int) domain.ShiftBand {
	return p.pattern[ordinal%len(p.pattern)]
}

// workerState is the running per-worker state threaded across days. It lives
// for exactly one run and is discarded afterwards.
type workerState struct {
	hours       int32
	consecutive int32
}
