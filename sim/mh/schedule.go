package mh

import (
	"fmt"
	"math"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// ScheduleKind selects how the temperature decreases across iterations.
type ScheduleKind string

const (
	ScheduleNone      ScheduleKind = "none"
	ScheduleLinear    ScheduleKind = "linear"
	ScheduleGeometric ScheduleKind = "geometric"
)

// Schedule is a monotonically non-increasing temperature schedule from
// Start at the first iteration to End at the last. Acceptance ratios are
// raised to the power 1/T; End = 1 finishes with the untempered chain.
type Schedule struct {
	Kind  ScheduleKind
	Start float64
	End   float64
}

func (s *Schedule) applyDefaults() {
	if s.Kind == "" {
		s.Kind = ScheduleNone
	}
	if s.Kind == ScheduleNone {
		if s.Start == 0 {
			s.Start = 1
		}
		if s.End == 0 {
			s.End = 1
		}
		return
	}
	if s.End == 0 {
		s.End = 1
	}
	if s.Start == 0 {
		s.Start = s.End
	}
}

// Validate checks End > 0 and Start >= End. Without annealing both
// temperatures must be 1.
func (s Schedule) Validate() error {
	switch s.Kind {
	case ScheduleNone:
		if s.Start != 1 || s.End != 1 {
			return fmt.Errorf("temperatures %g -> %g need a linear or geometric schedule: %w", s.Start, s.End, sim.ErrInvalidParameters)
		}
	case ScheduleLinear, ScheduleGeometric:
	default:
		return fmt.Errorf("unknown schedule %q; valid: none, linear, geometric: %w", s.Kind, sim.ErrInvalidParameters)
	}
	if math.IsNaN(s.End) || math.IsInf(s.End, 0) || s.End <= 0 {
		return fmt.Errorf("final temperature must be finite and positive, got %g: %w", s.End, sim.ErrInvalidParameters)
	}
	if math.IsNaN(s.Start) || math.IsInf(s.Start, 0) || s.Start < s.End {
		return fmt.Errorf("initial temperature %g must be finite and >= final temperature %g: %w", s.Start, s.End, sim.ErrInvalidParameters)
	}
	return nil
}

// Temperature returns the temperature at iteration i of n.
func (s Schedule) Temperature(i, n int) float64 {
	if s.Kind != ScheduleLinear && s.Kind != ScheduleGeometric {
		return 1
	}
	if n <= 1 {
		return s.End
	}
	frac := float64(i) / float64(n-1)
	if s.Kind == ScheduleLinear {
		return s.Start + (s.End-s.Start)*frac
	}
	return s.Start * math.Pow(s.End/s.Start, frac)
}
