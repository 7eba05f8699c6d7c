package app

// Clock turns absolute timestamps into frame deltas.
type Clock struct {
	// MaxStep caps a single delta in seconds so a stall does not fling
	// the camera across the scene. Zero disables the cap.
	MaxStep float32

	last    float64
	started bool
}

// Tick returns the seconds elapsed since the previous tick. The first tick
// and any step backwards in time yield 0.
func (c *Clock) Tick(now float64) float32 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now - c.last
	c.last = now
	if dt < 0 {
		return 0
	}
	if c.MaxStep > 0 && float32(dt) > c.MaxStep {
		return c.MaxStep
	}
	return float32(dt)
}
