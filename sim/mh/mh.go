// Package mh implements a birth-death-shift Metropolis-Hastings sampler for
// pairwise-interaction processes, with optional simulated annealing.
package mh

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/trace"
)

// MoveStats counts proposals and acceptances of one move type.
type MoveStats struct {
	Proposed int
	Accepted int
}

// AcceptanceRate is Accepted / Proposed (0 when nothing was proposed).
func (s MoveStats) AcceptanceRate() float64 {
	if s.Proposed == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Proposed)
}

// Stats aggregates MoveStats per move type.
type Stats struct {
	Birth MoveStats
	Death MoveStats
	Shift MoveStats
}

func (s *Stats) of(m Move) *MoveStats {
	switch m {
	case MoveBirth:
		return &s.Birth
	case MoveDeath:
		return &s.Death
	default:
		return &s.Shift
	}
}

// Result is the outcome of an MH run.
type Result struct {
	Points           []sim.Point
	Status           sim.Status
	Stats            Stats
	Iterations       int
	FinalTemperature float64
}

// chain is the mutable state of one run.
type chain struct {
	model  sim.Interaction
	cfg    Config
	window sim.Window
	prop   proposal
	state  *sim.Configuration
	rng    *rand.Rand
	stats  Stats
}

// Run performs cfg.Iterations Metropolis-Hastings proposals targeting model
// on w and returns the final configuration. Configuration errors are
// returned before any iteration; a completed run always has StatusSuccess.
func Run(model sim.Interaction, w sim.Window, cfg Config) (Result, error) {
	if model == nil {
		return Result{}, fmt.Errorf("nil interaction: %w", sim.ErrInvalidParameters)
	}
	if err := w.Validate(); err != nil {
		return Result{}, err
	}
	cfg.ApplyDefaults(w)
	if err := cfg.Validate(w); err != nil {
		return Result{}, err
	}

	c := &chain{
		model:  model,
		cfg:    cfg,
		window: w,
		prop:   newProposal(cfg.Moves),
		state: sim.NewConfiguration(w,
			sim.WithCellSize(model.Range()),
			sim.WithPeriodic(cfg.Periodic)),
	}
	if err := c.seed(cfg.Start); err != nil {
		return Result{}, err
	}

	c.rng = sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed)).ForSubsystem(sim.SubsystemMetropolis)
	logrus.Debugf("%s: MH start n=%d, iterations=%d, moves=%+v, schedule=%+v",
		model.Model(), c.state.Len(), cfg.Iterations, cfg.Moves, cfg.Schedule)

	decile := max(cfg.Iterations/10, 1)
	temp := 1.0
	for it := 0; it < cfg.Iterations; it++ {
		temp = cfg.Schedule.Temperature(it, cfg.Iterations)
		c.step(it, temp)
		if (it+1)%decile == 0 {
			logrus.Debugf("%s: iteration %d/%d, n=%d, T=%.4g", model.Model(), it+1, cfg.Iterations, c.state.Len(), temp)
		}
	}

	logrus.Infof("%s: MH finished %d iterations with %d points (birth %.3f, death %.3f, shift %.3f accepted)",
		model.Model(), cfg.Iterations, c.state.Len(),
		c.stats.Birth.AcceptanceRate(), c.stats.Death.AcceptanceRate(), c.stats.Shift.AcceptanceRate())
	return Result{
		Points:           c.state.SortedPoints(),
		Status:           sim.StatusSuccess,
		Stats:            c.stats,
		Iterations:       cfg.Iterations,
		FinalTemperature: temp,
	}, nil
}

// seed inserts the starting points and rejects states the model forbids.
func (c *chain) seed(start []sim.Point) error {
	for i, p := range start {
		if _, err := c.state.Insert(p); err != nil {
			return fmt.Errorf("start point %d: %w", i, err)
		}
	}
	for i := 0; i < c.state.Len(); i++ {
		id, p := c.state.At(i)
		if c.model.LocalEnergy(c.state, p, id).Forbidden {
			return fmt.Errorf("start point %d (%g, %g) violates the hard core of %s: %w",
				i, p.X, p.Y, c.model.Model(), sim.ErrInvalidParameters)
		}
	}
	return nil
}

// step makes one proposal at temperature temp.
func (c *chain) step(it int, temp float64) {
	move := c.prop.pick(c.rng.Float64())
	st := c.stats.of(move)
	st.Proposed++

	logRatio := math.Inf(-1)
	reason := "ratio"
	var apply func()

	switch move {
	case MoveBirth:
		u := sim.UniformPoint(c.rng, c.window)
		logRatio = c.prop.birthLogRatio(c.model, c.state, u)
		apply = func() { _, _ = c.state.Insert(u) }
	case MoveDeath:
		if c.state.Len() == 0 {
			reason = "empty"
			break
		}
		id, _ := c.state.At(c.rng.IntN(c.state.Len()))
		logRatio = c.prop.deathLogRatio(c.model, c.state, id)
		apply = func() { c.state.Remove(id) }
	case MoveShift:
		if c.state.Len() == 0 {
			reason = "empty"
			break
		}
		id, x := c.state.At(c.rng.IntN(c.state.Len()))
		s := c.cfg.ShiftRadius
		to := sim.Point{X: x.X + (2*c.rng.Float64()-1)*s, Y: x.Y + (2*c.rng.Float64()-1)*s}
		if c.cfg.Periodic {
			to = c.window.Wrap(to)
		} else if !c.window.Contains(to) {
			reason = "outside"
			break
		}
		logRatio = shiftLogRatio(c.model, c.state, id, to)
		apply = func() { _ = c.state.Move(id, to) }
	}
	if apply != nil && math.IsInf(logRatio, -1) {
		reason = "forbidden"
	}

	accepted := apply != nil && accept(logRatio, temp, c.rng.Float64())
	if accepted {
		apply()
		st.Accepted++
		reason = "accepted"
	}
	c.cfg.Trace.RecordMove(trace.MoveRecord{
		Iteration:   it,
		Move:        move.String(),
		Accepted:    accepted,
		Reason:      reason,
		LogRatio:    logRatio,
		Temperature: temp,
		Count:       c.state.Len(),
	})
}
