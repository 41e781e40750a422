package main

import (
	"testing"
	"time"

	"github.com/pthm-cable/biosim/config"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  []time.Duration
		wantMean time.Duration
		wantStd  time.Duration
	}{
		{"empty", nil, 0, 0},
		{"single", []time.Duration{3 * time.Second}, 3 * time.Second, 0},
		{"equal", []time.Duration{time.Second, time.Second}, time.Second, 0},
		{"spread", []time.Duration{1 * time.Second, 3 * time.Second}, 2 * time.Second, 1414213562},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]runResult, len(tt.elapsed))
			for i, e := range tt.elapsed {
				results[i].Elapsed = e
			}
			mean, std := summarize(results)
			if d := mean - tt.wantMean; d > time.Microsecond || d < -time.Microsecond {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if d := std - tt.wantStd; d > time.Microsecond || d < -time.Microsecond {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func TestYearsPerSecond(t *testing.T) {
	r := runResult{Years: 500, Elapsed: 2 * time.Second}
	if got := r.YearsPerSecond(); got != 250 {
		t.Errorf("YearsPerSecond = %v, want 250", got)
	}
	if got := (runResult{Years: 10}).YearsPerSecond(); got != 0 {
		t.Errorf("zero elapsed YearsPerSecond = %v, want 0", got)
	}
}

func TestBenchmarkRun(t *testing.T) {
	r, err := benchmarkRun(config.Defaults(), 9, 5)
	if err != nil {
		t.Fatalf("benchmarkRun: %v", err)
	}
	if r.Years < 1 || r.Years > 5 {
		t.Errorf("years = %d, want 1..5", r.Years)
	}
	if r.Seed != 9 {
		t.Errorf("seed = %d, want 9", r.Seed)
	}
}
