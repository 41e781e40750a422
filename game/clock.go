package game

// maxYearsPerFrame caps catch-up after a slow frame.
const maxYearsPerFrame = 8

// Clock converts wall time into whole simulated years at a given rate.
type Clock struct {
	YearsPerSec float32
	pending     float32
}

// Advance adds dt seconds and returns how many years are due.
func (c *Clock) Advance(dt float32) int {
	if dt <= 0 || c.YearsPerSec <= 0 {
		return 0
	}
	c.pending += dt * c.YearsPerSec
	n := int(c.pending)
	c.pending -= float32(n)
	if n > maxYearsPerFrame {
		n = maxYearsPerFrame
		c.pending = 0
	}
	return n
}

// Reset drops any partial year.
func (c *Clock) Reset() {
	c.pending = 0
}
