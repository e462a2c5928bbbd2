package component

import "github.com/milk9111/nightwalk/common"

const DefaultCrouchDuration = 0.2

// CrouchTween blends capsule height linearly over Duration. It is a single
// slot: Start discards any transition in flight.
type CrouchTween struct {
	From     float64
	To       float64
	Duration float64
	Elapsed  float64
	Active   bool
}

func (c *CrouchTween) Start(from, to, duration float64) {
	c.From = from
	c.To = to
	c.Duration = duration
	c.Elapsed = 0
	c.Active = true
}

// Step returns the height for this frame and advances the clock. The frame
// that reaches Duration returns To exactly and deactivates the tween.
func (c *CrouchTween) Step(dt float64) float64 {
	if !c.Active {
		return c.To
	}
	if c.Elapsed < c.Duration {
		h := c.HeightAt(c.Elapsed)
		c.Elapsed += dt
		return h
	}
	c.Active = false
	return c.To
}

// HeightAt is the closed form of the blend at elapsed time t.
func (c CrouchTween) HeightAt(t float64) float64 {
	if t >= c.Duration {
		return c.To
	}
	return common.Lerp(c.From, c.To, t/c.Duration)
}
