package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"
)

// evalLog appends one CSV row per evaluation and tracks the best one.
// Columns follow the parameter list, so rows are written with encoding/csv.
type evalLog struct {
	f       *os.File
	w       *csv.Writer
	started time.Time

	count       int
	bestFitness float64
	best        []float64
}

func newEvalLog(path string, params *ParamVector) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}
	l := &evalLog{f: f, w: csv.NewWriter(f), started: time.Now()}

	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := l.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing eval log header: %w", err)
	}
	return l, nil
}

// Record logs the evaluated raw parameters. Lower fitness is better.
func (l *evalLog) Record(raw []float64, fitness, quality float64) error {
	l.count++
	if l.best == nil || fitness < l.bestFitness {
		l.bestFitness = fitness
		l.best = slices.Clone(raw)
	}

	row := make([]string, 0, 3+len(raw))
	row = append(row,
		strconv.Itoa(l.count),
		strconv.FormatFloat(fitness, 'f', 6, 64),
		strconv.FormatFloat(quality, 'f', 4, 64),
	)
	for _, v := range raw {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := l.w.Write(row); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

// Progress logs the running count, the best fitness and an estimate of the
// time left.
func (l *evalLog) Progress(budget int) {
	elapsed := time.Since(l.started)
	var eta time.Duration
	if l.count > 0 && budget > l.count {
		eta = elapsed / time.Duration(l.count) * time.Duration(budget-l.count)
	}
	slog.Info("evaluation",
		"eval", l.count,
		"budget", budget,
		"best_fitness", l.bestFitness,
		"elapsed", elapsed.Round(time.Second).String(),
		"eta", eta.Round(time.Second).String(),
	)
}

// Best returns the best parameters seen so far.
func (l *evalLog) Best() ([]float64, float64, bool) {
	return l.best, l.bestFitness, l.best != nil
}

// Count returns the number of recorded evaluations.
func (l *evalLog) Count() int { return l.count }

// Close flushes and closes the log file.
func (l *evalLog) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}
