// Package systems implements the per-cell and per-roster rules of the yearly
// cycle: fodder regrowth, feeding, procreation, aging and migration choice.
package systems

// RegrowFodder returns the fodder after one year of regrowth. Cells without
// capacity and full cells are left unchanged. The result never exceeds
// capacity.
func RegrowFodder(fodder, capacity, vMax, alpha float64) float64 {
	if capacity <= 0 || fodder >= capacity {
		return fodder
	}
	growth := vMax * (1 - alpha*(capacity-fodder)/capacity)
	return min(capacity, fodder+growth)
}
