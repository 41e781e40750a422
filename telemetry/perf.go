package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/biosim/island"
)

// Phases lists the phases of a simulated year in execution order.
var Phases = []string{
	island.PhaseProcreation,
	island.PhaseFeeding,
	island.PhaseMigration,
	island.PhaseAging,
}

// PerfSample holds timing data for a single year.
type PerfSample struct {
	YearDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks per-year timings over a rolling window. It
// implements island.PhaseTimer.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	yearStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (viewer only)
	lastFrameTime time.Time
	frameDuration time.Duration
}

var _ island.PhaseTimer = (*PerfCollector)(nil)

// NewPerfCollector creates a new performance collector averaging over
// windowSize years.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 50
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartYear begins timing a new simulated year.
func (p *PerfCollector) StartYear() {
	p.yearStart = time.Now()
	p.currentPhases = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndYear finishes timing the current year and records the sample.
func (p *PerfCollector) EndYear() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		YearDuration: now.Sub(p.yearStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for the viewer.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgYearDuration time.Duration
	MinYearDuration time.Duration
	MaxYearDuration time.Duration

	// Average duration and share of the year per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	YearsPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.YearDuration
		if i == 0 || s.YearDuration < stats.MinYearDuration {
			stats.MinYearDuration = s.YearDuration
		}
		stats.MaxYearDuration = max(stats.MaxYearDuration, s.YearDuration)
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	stats.AvgYearDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgYearDuration > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgYearDuration) * 100
		}
	}
	if stats.AvgYearDuration > 0 {
		stats.YearsPerSecond = float64(time.Second) / float64(stats.AvgYearDuration)
	}
	return stats
}

// Log writes the performance statistics to logger.
func (s PerfStats) Log(logger *slog.Logger) {
	attrs := []any{
		"avg_year_us", s.AvgYearDuration.Microseconds(),
		"min_year_us", s.MinYearDuration.Microseconds(),
		"max_year_us", s.MaxYearDuration.Microseconds(),
		"years_per_sec", int(s.YearsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	logger.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Year           int     `csv:"year"`
	AvgYearUS      int64   `csv:"avg_year_us"`
	MinYearUS      int64   `csv:"min_year_us"`
	MaxYearUS      int64   `csv:"max_year_us"`
	YearsPerSec    float64 `csv:"years_per_sec"`
	ProcreationPct float64 `csv:"procreation_pct"`
	FeedingPct     float64 `csv:"feeding_pct"`
	MigrationPct   float64 `csv:"migration_pct"`
	AgingPct       float64 `csv:"aging_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(year int) PerfStatsCSV {
	return PerfStatsCSV{
		Year:           year,
		AvgYearUS:      s.AvgYearDuration.Microseconds(),
		MinYearUS:      s.MinYearDuration.Microseconds(),
		MaxYearUS:      s.MaxYearDuration.Microseconds(),
		YearsPerSec:    s.YearsPerSecond,
		ProcreationPct: s.PhasePct[island.PhaseProcreation],
		FeedingPct:     s.PhasePct[island.PhaseFeeding],
		MigrationPct:   s.PhasePct[island.PhaseMigration],
		AgingPct:       s.PhasePct[island.PhaseAging],
	}
}
