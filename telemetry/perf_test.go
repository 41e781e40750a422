package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/biosim/island"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartYear()
		pc.StartPhase(island.PhaseProcreation)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(island.PhaseMigration)
		time.Sleep(200 * time.Microsecond)
		pc.EndYear()
	}

	stats := pc.Stats()
	if stats.AvgYearDuration <= 0 {
		t.Error("expected positive average year duration")
	}
	for _, phase := range []string{island.PhaseProcreation, island.PhaseMigration} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("expected %s phase to be tracked", phase)
		}
	}
	if stats.PhaseAvg[island.PhaseMigration] < stats.PhaseAvg[island.PhaseProcreation] {
		t.Error("longer phase reported shorter")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartYear()
		pc.StartPhase(island.PhaseFeeding)
		time.Sleep(10 * time.Microsecond)
		pc.EndYear()
	}

	stats := pc.Stats()
	if stats.AvgYearDuration <= 0 {
		t.Error("expected positive average year duration after window filled")
	}
	if stats.YearsPerSecond <= 0 {
		t.Error("expected positive years per second")
	}
	if stats.MinYearDuration > stats.MaxYearDuration {
		t.Errorf("min %v > max %v", stats.MinYearDuration, stats.MaxYearDuration)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgYearDuration != 0 || stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Errorf("empty collector stats = %+v", stats)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgYearDuration: 2 * time.Millisecond,
		PhasePct: map[string]float64{
			island.PhaseProcreation: 10,
			island.PhaseFeeding:     20,
			island.PhaseMigration:   60,
			island.PhaseAging:       10,
		},
	}
	row := stats.ToCSV(42)
	if row.Year != 42 || row.AvgYearUS != 2000 {
		t.Errorf("row = %+v", row)
	}
	if row.MigrationPct != 60 || row.AgingPct != 10 {
		t.Errorf("phase percentages = %+v", row)
	}
}
