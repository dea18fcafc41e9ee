// Package perfect implements exact simulation of repulsive pairwise-interaction
// processes by dominated coupling from the past.
//
// A dominating spatial birth-death process with birth rate equal to the
// model's dominating rate and unit death rate is simulated backward from
// time 0. Two coupled processes, upper and lower, are then run forward from
// the backward horizon to time 0 over the same events with shared acceptance
// marks. When they agree at time 0 the common pattern is an exact draw from
// the model; otherwise the horizon is doubled, reusing every event already drawn.
package perfect

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/trace"
)

const (
	// DefaultMaxDoublings is the default number of horizon doublings.
	DefaultMaxDoublings = 10
	// DefaultInitialHorizon is the default number of backward events of the first attempt.
	DefaultInitialHorizon = 64
	// MaxDoublingsLimit keeps the event horizon within int range.
	MaxDoublingsLimit = 40
)

// Config controls one exact-sampling call.
type Config struct {
	Seed int64
	// MaxDoublings bounds the number of horizon doublings after the first
	// attempt; 0 allows a single attempt.
	MaxDoublings int
	// InitialHorizon is the number of backward events of the first attempt
	// (0 = DefaultInitialHorizon).
	InitialHorizon int
	// MaxEvents caps the horizon in events (0 = no cap beyond MaxDoublings).
	MaxEvents int
	// Trace receives one record per coupling attempt (optional).
	Trace *trace.SimulationTrace
}

// NewConfig returns a Config with default budgets.
func NewConfig(seed int64) Config {
	return Config{Seed: seed, MaxDoublings: DefaultMaxDoublings, InitialHorizon: DefaultInitialHorizon}
}

// Validate checks the budget fields.
func (c Config) Validate() error {
	if c.MaxDoublings < 0 {
		return fmt.Errorf("max doublings must be >= 0, got %d: %w", c.MaxDoublings, sim.ErrInvalidParameters)
	}
	if c.InitialHorizon < 0 {
		return fmt.Errorf("initial horizon must be >= 0, got %d: %w", c.InitialHorizon, sim.ErrInvalidParameters)
	}
	if c.MaxEvents < 0 {
		return fmt.Errorf("max events must be >= 0, got %d: %w", c.MaxEvents, sim.ErrInvalidParameters)
	}
	if c.MaxDoublings > MaxDoublingsLimit {
		return fmt.Errorf("max doublings %d overflows the event horizon: %w", c.MaxDoublings, sim.ErrInvalidParameters)
	}
	return nil
}

func (c Config) initialHorizon() int {
	if c.InitialHorizon == 0 {
		return DefaultInitialHorizon
	}
	return c.InitialHorizon
}

// Result is the outcome of one exact-sampling call.
type Result struct {
	// Points is the exact sample ordered by dominating birth index; empty
	// unless Status is StatusSuccess.
	Points []sim.Point
	Status sim.Status
	// Events is the horizon of the last attempt, in backward events.
	Events int
	// Doublings is the number of horizon doublings performed.
	Doublings int
	// StartTime is the (negative) backward time of the last horizon.
	StartTime float64
	// DominatingCount is the size of the dominating process at time 0.
	DominatingCount int
}

// Sample draws one exact realization of model on w.
//
// Configuration errors are returned before any sampling. A model without a
// finite dominating rate yields StatusUnsupportedParameters; an exhausted
// budget yields StatusNoCoalescence. Neither is an error.
func Sample(model sim.Interaction, w sim.Window, cfg Config) (Result, error) {
	if model == nil {
		return Result{}, fmt.Errorf("nil interaction: %w", sim.ErrInvalidParameters)
	}
	if err := w.Validate(); err != nil {
		return Result{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	rate, err := model.DominatingRate()
	if err != nil {
		if errors.Is(err, sim.ErrUnsupportedParameters) {
			logrus.Warnf("%s: no dominating rate, exact simulation unsupported: %v", model.Model(), err)
			return Result{Status: sim.StatusUnsupportedParameters}, nil
		}
		return Result{}, err
	}

	rngs := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	stream := sim.NewEventStream(rngs.SubsystemSeed(sim.SubsystemPerfect))
	events, err := newEventLog(w, rate, stream)
	if err != nil {
		return Result{}, err
	}
	logrus.Debugf("%s: dominating rate %g, %d points at time 0", model.Model(), rate, events.initial)

	horizon := cfg.initialHorizon()
	res := Result{Status: sim.StatusNoCoalescence, DominatingCount: events.initial}
	for attempt := 0; attempt <= cfg.MaxDoublings; attempt++ {
		capped := false
		if cfg.MaxEvents > 0 && horizon >= cfg.MaxEvents {
			horizon = cfg.MaxEvents
			capped = true
		}
		if err := events.extendTo(horizon); err != nil {
			return Result{}, err
		}
		c, err := couple(model, rate, events)
		if err != nil {
			return Result{}, err
		}

		res.Events = events.Len()
		res.Doublings = attempt
		res.StartTime = -events.elapsed
		cfg.Trace.RecordHorizon(trace.HorizonRecord{
			Attempt:   attempt,
			Events:    events.Len(),
			StartTime: -events.elapsed,
			Upper:     c.upper.Len(),
			Lower:     c.lower.Len(),
			Coalesced: c.coalesced(),
		})
		logrus.Debugf("%s: attempt %d, horizon %d events (t=%.4g), upper=%d lower=%d",
			model.Model(), attempt, events.Len(), -events.elapsed, c.upper.Len(), c.lower.Len())

		if c.coalesced() {
			res.Status = sim.StatusSuccess
			res.Points = c.lower.SortedPoints()
			logrus.Infof("%s: coalesced after %d events with %d points", model.Model(), events.Len(), len(res.Points))
			return res, nil
		}
		if capped {
			break
		}
		horizon *= 2
	}

	logrus.Warnf("%s: no coalescence within %d events", model.Model(), res.Events)
	return res, nil
}
