package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biosim/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
	BookmarkExtinction       BookmarkType = "extinction"
)

// cvWindow is the number of recent years the stability check looks at.
const cvWindow = 5

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Year        int          `csv:"year"`
	Description string       `csv:"description"`
}

// Log writes the bookmark to logger.
func (b Bookmark) Log(logger *slog.Logger) {
	logger.Info("bookmark",
		"type", string(b.Type),
		"year", b.Year,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting years in the population dynamics.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []YearStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPredMin   int // minimum predator count since the last recovery
	recentPreyPeak  int // peak prey count since the last crash
	stableYearCount int // consecutive years with stable populations
	prev            *YearStats
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < cvWindow {
		historySize = cvWindow
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]YearStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats YearStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.prev != nil {
		bookmarks = append(bookmarks, bd.checkExtinction(stats)...)

		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPreyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	// Stability includes the current year in its window.
	if b := bd.checkStableEcosystem(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.Carnivores > 0 && (stats.Carnivores < bd.recentPredMin || bd.recentPredMin == 0) {
		bd.recentPredMin = stats.Carnivores
	}
	if stats.Herbivores > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.Herbivores
	}
	s := stats
	bd.prev = &s

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats YearStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the latest entries, oldest first.
func (bd *BookmarkDetector) recent(n int) []YearStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	n = min(n, count)
	out := make([]YearStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(stats YearStats) []Bookmark {
	var out []Bookmark
	if bd.prev.Herbivores > 0 && stats.Herbivores == 0 {
		out = append(out, Bookmark{
			Type:        BookmarkExtinction,
			Year:        stats.Year,
			Description: fmt.Sprintf("Herbivores died out (last count %d)", bd.prev.Herbivores),
		})
	}
	if bd.prev.Carnivores > 0 && stats.Carnivores == 0 {
		out = append(out, Bookmark{
			Type:        BookmarkExtinction,
			Year:        stats.Year,
			Description: fmt.Sprintf("Carnivores died out (last count %d)", bd.prev.Carnivores),
		})
	}
	return out
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats YearStats) *Bookmark {
	cfg := bd.cfg.PredatorRecovery
	if bd.recentPredMin == 0 || bd.recentPredMin > cfg.MinPopulation {
		return nil
	}

	threshold := bd.recentPredMin * cfg.RecoveryMultiplier
	if stats.Carnivores >= threshold && stats.Carnivores >= cfg.MinFinal {
		// Reset the minimum after triggering
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.Carnivores

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Year:        stats.Year,
			Description: fmt.Sprintf("Carnivore population recovered from %d to %d", oldMin, stats.Carnivores),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats YearStats) *Bookmark {
	cfg := bd.cfg.PreyCrash
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Herbivores)/float64(bd.recentPreyPeak)
	if dropPercent > cfg.DropPercent && bd.recentPreyPeak-stats.Herbivores >= cfg.MinDrop {
		// Reset peak after crash
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.Herbivores

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Year:        stats.Year,
			Description: fmt.Sprintf("Herbivores crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Herbivores),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats YearStats) *Bookmark {
	cfg := bd.cfg.StableEcosystem
	if stats.Herbivores < cfg.MinPrey || stats.Carnivores < cfg.MinPred {
		bd.stableYearCount = 0
		return nil
	}

	window := bd.recent(cvWindow)
	if len(window) < cvWindow {
		return nil
	}

	prey := make([]float64, len(window))
	pred := make([]float64, len(window))
	for i, h := range window {
		prey[i] = float64(h.Herbivores)
		pred[i] = float64(h.Carnivores)
	}

	if coefficientOfVariation(prey) < cfg.CVThreshold && coefficientOfVariation(pred) < cfg.CVThreshold {
		bd.stableYearCount++
	} else {
		bd.stableYearCount = 0
	}

	if bd.stableYearCount == cfg.StableYears { // trigger once per stable stretch
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Year:        stats.Year,
			Description: fmt.Sprintf("Stable ecosystem with %d herbivores, %d carnivores over %d years", stats.Herbivores, stats.Carnivores, cfg.StableYears),
		}
	}

	return nil
}

func coefficientOfVariation(x []float64) float64 {
	mean, std := stat.MeanStdDev(x, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
