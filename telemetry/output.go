package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
)

// CellRecord is one row of cells.csv.
type CellRecord struct {
	Year       int     `csv:"year"`
	Row        int     `csv:"row"`
	Col        int     `csv:"col"`
	Herbivores int     `csv:"herbivores"`
	Carnivores int     `csv:"carnivores"`
	Fodder     float64 `csv:"fodder"`
}

// csvFile appends records to a CSV file, writing the header only once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

// write marshals a slice of records.
func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	population *csvFile
	cells      *csvFile
	perf       *csvFile
	bookmarks  *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		dst  **csvFile
		name string
	}{
		{&om.population, "population.csv"},
		{&om.cells, "cells.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	}
	for _, spec := range files {
		f, err := createCSV(dir, spec.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*spec.dst = f
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteYear writes a year stats record to population.csv.
func (om *OutputManager) WriteYear(stats YearStats) error {
	if om == nil {
		return nil
	}
	if err := om.population.write([]YearStats{stats}); err != nil {
		return fmt.Errorf("writing population: %w", err)
	}
	return nil
}

// WriteCells writes one record per inhabited cell to cells.csv.
func (om *OutputManager) WriteCells(isl *island.Island) error {
	if om == nil {
		return nil
	}
	census := isl.Census()
	records := make([]CellRecord, 0, len(census.Cells))
	for _, at := range isl.Inhabited() {
		cell, _ := isl.CellAt(at)
		counts := census.Cells[at]
		records = append(records, CellRecord{
			Year:       census.Year,
			Row:        at.Row,
			Col:        at.Col,
			Herbivores: counts.Herbivores,
			Carnivores: counts.Carnivores,
			Fodder:     cell.Fodder,
		})
	}
	if len(records) == 0 {
		return nil
	}
	if err := om.cells.write(records); err != nil {
		return fmt.Errorf("writing cells: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, year int) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(year)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, c := range []*csvFile{om.population, om.cells, om.perf, om.bookmarks} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
