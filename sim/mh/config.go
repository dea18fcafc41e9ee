package mh

import (
	"fmt"
	"math"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/trace"
)

// MoveWeights is the proposal mixture. Weights are relative; they are
// normalized before use. Birth and Death must be both positive or both zero
// so that every birth has a reciprocal death.
type MoveWeights struct {
	Birth float64
	Death float64
	Shift float64
}

// DefaultMoveWeights proposes each move type with equal probability.
var DefaultMoveWeights = MoveWeights{Birth: 1, Death: 1, Shift: 1}

func (m MoveWeights) total() float64 { return m.Birth + m.Death + m.Shift }

func (m MoveWeights) isZero() bool { return m.total() == 0 }

// Config enumerates every option of the MH sampler.
type Config struct {
	// Iterations is the exact number of proposals made (>= 1).
	Iterations int
	// Start is the initial configuration (nil = empty). Every point must lie
	// in the window and the configuration must not violate a hard core.
	Start []sim.Point
	// Moves is the proposal mixture (zero value = DefaultMoveWeights).
	Moves MoveWeights
	// ShiftRadius is the half-width of the square shift proposal
	// (0 = 10% of the shorter window side).
	ShiftRadius float64
	// Schedule is the annealing schedule (zero value = no annealing).
	Schedule Schedule
	// FixedCount keeps the number of points fixed: only shifts are proposed.
	FixedCount bool
	// Periodic uses toroidal distances and wraps shifted points.
	Periodic bool
	Seed     int64
	// Trace receives one record per proposal (optional).
	Trace *trace.SimulationTrace
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults(w sim.Window) {
	if c.FixedCount {
		c.Moves = MoveWeights{Shift: 1}
	} else if c.Moves.isZero() {
		c.Moves = DefaultMoveWeights
	}
	if c.ShiftRadius == 0 {
		c.ShiftRadius = 0.1 * math.Min(w.Width(), w.Height())
	}
	c.Schedule.applyDefaults()
}

// Validate checks ranges. Call after ApplyDefaults.
func (c Config) Validate(w sim.Window) error {
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d: %w", c.Iterations, sim.ErrInvalidParameters)
	}
	weights := []struct {
		name string
		v    float64
	}{{"birth", c.Moves.Birth}, {"death", c.Moves.Death}, {"shift", c.Moves.Shift}}
	for _, wt := range weights {
		if math.IsNaN(wt.v) || math.IsInf(wt.v, 0) || wt.v < 0 {
			return fmt.Errorf("%s weight must be finite and non-negative, got %g: %w", wt.name, wt.v, sim.ErrInvalidParameters)
		}
	}
	if c.Moves.isZero() {
		return fmt.Errorf("at least one move weight must be positive: %w", sim.ErrInvalidParameters)
	}
	if (c.Moves.Birth > 0) != (c.Moves.Death > 0) {
		return fmt.Errorf("birth and death weights must both be positive or both zero, got %g/%g: %w",
			c.Moves.Birth, c.Moves.Death, sim.ErrInvalidParameters)
	}
	if math.IsNaN(c.ShiftRadius) || math.IsInf(c.ShiftRadius, 0) || c.ShiftRadius <= 0 {
		return fmt.Errorf("shift radius must be finite and positive, got %g: %w", c.ShiftRadius, sim.ErrInvalidParameters)
	}
	if err := c.Schedule.Validate(); err != nil {
		return err
	}
	for i, p := range c.Start {
		if !w.Contains(p) {
			return fmt.Errorf("start point %d (%g, %g) outside window: %w", i, p.X, p.Y, sim.ErrInvalidParameters)
		}
	}
	return nil
}
