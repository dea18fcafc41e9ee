package cif

import (
	"math"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// DiggleGratton has pair factor
//
//	h(d) = 0                              d <= delta
//	h(d) = ((d - delta)/(rho - delta))^k  delta < d < rho
//	h(d) = 1                              d >= rho
//
// so every pair factor is at most 1 and beta dominates the intensity.
type DiggleGratton struct {
	p DiggleGrattonParams
}

func NewDiggleGratton(p DiggleGrattonParams) (*DiggleGratton, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &DiggleGratton{p: p}, nil
}

func (m *DiggleGratton) Model() sim.Model                 { return sim.ModelDiggleGratton }
func (m *DiggleGratton) Beta() float64                    { return m.p.Beta }
func (m *DiggleGratton) Range() float64                   { return m.p.Rho }
func (m *DiggleGratton) Params() DiggleGrattonParams      { return m.p }
func (m *DiggleGratton) DominatingRate() (float64, error) { return m.p.Beta, nil }

func (m *DiggleGratton) LocalEnergy(cfg *sim.Configuration, u sim.Point, exclude sim.PointID) sim.Energy {
	return diggleGrattonEnergy(cfg, u, exclude, m.p.Delta, m.p.Rho, m.p.Kappa)
}

func diggleGrattonEnergy(cfg *sim.Configuration, u sim.Point, exclude sim.PointID, delta, rho, kappa float64) sim.Energy {
	var e sim.Energy
	cfg.Neighbours(u, rho, exclude, func(_ sim.PointID, _ sim.Point, d float64) bool {
		e = e.Add(diggleGrattonPotential(d, delta, rho, kappa))
		return !e.Forbidden
	})
	return e
}

// diggleGrattonPotential is -log h(d).
func diggleGrattonPotential(d, delta, rho, kappa float64) float64 {
	switch {
	case d <= delta:
		return math.Inf(1)
	case d >= rho || kappa == 0:
		return 0
	default:
		return -kappa * math.Log((d-delta)/(rho-delta))
	}
}

// DGS adds a Strauss term at range r to the Diggle-Gratton potential:
// E(u; X) = sum over pairs of [-log h_DG(d) + 1{d <= r} * (-log gamma)].
type DGS struct {
	p       DGSParams
	penalty float64
}

func NewDGS(p DGSParams) (*DGS, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	warnAttractive(sim.ModelDGS, p.Gamma)
	return &DGS{p: p, penalty: pairPenalty(p.Gamma)}, nil
}

func (m *DGS) Model() sim.Model  { return sim.ModelDGS }
func (m *DGS) Beta() float64     { return m.p.Beta }
func (m *DGS) Range() float64    { return math.Max(m.p.Rho, m.p.R) }
func (m *DGS) Params() DGSParams { return m.p }

// DominatingRate is beta when the Strauss component is repulsive.
func (m *DGS) DominatingRate() (float64, error) {
	return repulsiveBound(m.p.Beta, m.p.Gamma)
}

func (m *DGS) LocalEnergy(cfg *sim.Configuration, u sim.Point, exclude sim.PointID) sim.Energy {
	var e sim.Energy
	cfg.Neighbours(u, m.Range(), exclude, func(_ sim.PointID, _ sim.Point, d float64) bool {
		if d < m.p.Rho {
			e = e.Add(diggleGrattonPotential(d, m.p.Delta, m.p.Rho, m.p.Kappa))
		}
		if d <= m.p.R {
			e = e.Add(m.penalty)
		}
		return !e.Forbidden
	})
	return e
}
