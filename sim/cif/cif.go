// Package cif implements the conditional intensity functions of the
// pairwise-interaction models supported by the engine. Every model satisfies
// sim.Interaction and is a pure function of its parameters and the
// configuration it is evaluated against.
package cif

import (
	"fmt"
	"math"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// Spec selects a model and carries the union of all model parameters.
// Fields a model does not use are ignored.
type Spec struct {
	Model sim.Model
	Beta  float64
	Gamma float64
	R     float64 // interaction radius (Strauss, StraussHard, Penttinen, DGS)
	H     float64 // hard-core distance (Hardcore, StraussHard)
	Delta float64 // hard-core distance (DiggleGratton, DGS)
	Rho   float64 // outer radius (DiggleGratton, DGS)
	Kappa float64 // shape exponent (DiggleGratton, DGS)
}

// New builds the interaction selected by s.Model.
func New(s Spec) (sim.Interaction, error) {
	switch s.Model {
	case sim.ModelStrauss:
		return NewStrauss(StraussParams{Beta: s.Beta, Gamma: s.Gamma, R: s.R})
	case sim.ModelStraussHard:
		return NewStraussHard(StraussHardParams{Beta: s.Beta, Gamma: s.Gamma, R: s.R, H: s.H})
	case sim.ModelHardcore:
		return NewHardcore(HardcoreParams{Beta: s.Beta, H: s.H})
	case sim.ModelDiggleGratton:
		return NewDiggleGratton(DiggleGrattonParams{Beta: s.Beta, Delta: s.Delta, Rho: s.Rho, Kappa: s.Kappa})
	case sim.ModelPenttinen:
		return NewPenttinen(PenttinenParams{Beta: s.Beta, Gamma: s.Gamma, R: s.R})
	case sim.ModelDGS:
		return NewDGS(DGSParams{Beta: s.Beta, Delta: s.Delta, Rho: s.Rho, Kappa: s.Kappa, Gamma: s.Gamma, R: s.R})
	default:
		return nil, fmt.Errorf("unknown model %v: %w", s.Model, sim.ErrInvalidParameters)
	}
}

// HardcoreDistance returns the minimum admissible inter-point distance
// enforced by m (0 when the model has no hard core). Models with gamma = 0
// act as hard cores at their interaction radius.
func HardcoreDistance(m sim.Interaction) float64 {
	switch v := m.(type) {
	case *Hardcore:
		return v.p.H
	case *StraussHard:
		if v.p.Gamma == 0 {
			return v.p.R
		}
		return v.p.H
	case *Strauss:
		if v.p.Gamma == 0 {
			return v.p.R
		}
	case *DiggleGratton:
		return v.p.Delta
	case *DGS:
		if v.p.Gamma == 0 {
			return math.Max(v.p.R, v.p.Delta)
		}
		return v.p.Delta
	case *Penttinen:
		if v.p.Gamma == 0 {
			return 2 * v.p.R
		}
	}
	return 0
}
