package cif

import (
	"math"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// Penttinen weights each pair by the normalized overlap area of discs of
// radius r centred at the two points:
//
//	a(d) = (2/pi) * (acos(z) - z*sqrt(1 - z^2)),  z = d/(2r) < 1
//
// and lambda(u; X) = beta * gamma^(sum of a(d)).
type Penttinen struct {
	p       PenttinenParams
	penalty float64
}

func NewPenttinen(p PenttinenParams) (*Penttinen, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	warnAttractive(sim.ModelPenttinen, p.Gamma)
	return &Penttinen{p: p, penalty: pairPenalty(p.Gamma)}, nil
}

func (m *Penttinen) Model() sim.Model        { return sim.ModelPenttinen }
func (m *Penttinen) Beta() float64           { return m.p.Beta }
func (m *Penttinen) Range() float64          { return 2 * m.p.R }
func (m *Penttinen) Params() PenttinenParams { return m.p }

func (m *Penttinen) DominatingRate() (float64, error) {
	return repulsiveBound(m.p.Beta, m.p.Gamma)
}

func (m *Penttinen) LocalEnergy(cfg *sim.Configuration, u sim.Point, exclude sim.PointID) sim.Energy {
	if m.p.R == 0 {
		return sim.Energy{}
	}
	var e sim.Energy
	cfg.Neighbours(u, m.Range(), exclude, func(_ sim.PointID, _ sim.Point, d float64) bool {
		a := overlapFraction(d / m.Range())
		if a == 0 {
			return true
		}
		if math.IsInf(m.penalty, 1) {
			e = sim.Forbidden
			return false
		}
		e = e.Add(a * m.penalty)
		return true
	})
	return e
}

// overlapFraction is the intersection area of two unit-radius discs whose
// centres are 2z apart, divided by the area of one disc.
func overlapFraction(z float64) float64 {
	if z >= 1 {
		return 0
	}
	if z <= 0 {
		return 1
	}
	return (2 / math.Pi) * (math.Acos(z) - z*math.Sqrt(1-z*z))
}
