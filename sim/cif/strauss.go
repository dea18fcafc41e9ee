package cif

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// Strauss: lambda(u; X) = beta * gamma^t(u, X), t = #{x in X : |u - x| <= r}.
type Strauss struct {
	p       StraussParams
	penalty float64 // -log(gamma); +Inf when gamma == 0
}

// NewStrauss validates p and builds the model. gamma > 1 is accepted with a
// warning: the process only exists on bounded windows and cannot be dominated.
func NewStrauss(p StraussParams) (*Strauss, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	warnAttractive(sim.ModelStrauss, p.Gamma)
	return &Strauss{p: p, penalty: pairPenalty(p.Gamma)}, nil
}

func (m *Strauss) Model() sim.Model      { return sim.ModelStrauss }
func (m *Strauss) Beta() float64         { return m.p.Beta }
func (m *Strauss) Range() float64        { return m.p.R }
func (m *Strauss) Params() StraussParams { return m.p }

// DominatingRate is beta for gamma <= 1.
func (m *Strauss) DominatingRate() (float64, error) {
	return repulsiveBound(m.p.Beta, m.p.Gamma)
}

func (m *Strauss) LocalEnergy(cfg *sim.Configuration, u sim.Point, exclude sim.PointID) sim.Energy {
	t := 0
	cfg.Neighbours(u, m.p.R, exclude, func(_ sim.PointID, _ sim.Point, _ float64) bool {
		t++
		return !math.IsInf(m.penalty, 1)
	})
	return countEnergy(t, m.penalty)
}

// Hardcore: lambda(u; X) = beta if no point of X lies closer than h, else 0.
type Hardcore struct {
	p HardcoreParams
}

func NewHardcore(p HardcoreParams) (*Hardcore, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Hardcore{p: p}, nil
}

func (m *Hardcore) Model() sim.Model                 { return sim.ModelHardcore }
func (m *Hardcore) Beta() float64                    { return m.p.Beta }
func (m *Hardcore) Range() float64                   { return m.p.H }
func (m *Hardcore) Params() HardcoreParams           { return m.p }
func (m *Hardcore) DominatingRate() (float64, error) { return m.p.Beta, nil }

func (m *Hardcore) LocalEnergy(cfg *sim.Configuration, u sim.Point, exclude sim.PointID) sim.Energy {
	if violatesHardcore(cfg, u, exclude, m.p.H) {
		return sim.Forbidden
	}
	return sim.Energy{}
}

// StraussHard combines the Strauss penalty at range r with a hard core h <= r.
type StraussHard struct {
	p       StraussHardParams
	penalty float64
}

func NewStraussHard(p StraussHardParams) (*StraussHard, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	warnAttractive(sim.ModelStraussHard, p.Gamma)
	return &StraussHard{p: p, penalty: pairPenalty(p.Gamma)}, nil
}

func (m *StraussHard) Model() sim.Model          { return sim.ModelStraussHard }
func (m *StraussHard) Beta() float64             { return m.p.Beta }
func (m *StraussHard) Range() float64            { return m.p.R }
func (m *StraussHard) Params() StraussHardParams { return m.p }
func (m *StraussHard) DominatingRate() (float64, error) {
	return repulsiveBound(m.p.Beta, m.p.Gamma)
}

func (m *StraussHard) LocalEnergy(cfg *sim.Configuration, u sim.Point, exclude sim.PointID) sim.Energy {
	t := 0
	forbidden := false
	cfg.Neighbours(u, m.p.R, exclude, func(_ sim.PointID, _ sim.Point, d float64) bool {
		if d < m.p.H {
			forbidden = true
			return false
		}
		t++
		return true
	})
	if forbidden {
		return sim.Forbidden
	}
	return countEnergy(t, m.penalty)
}

// violatesHardcore reports whether some point other than exclude lies strictly closer than h.
func violatesHardcore(cfg *sim.Configuration, u sim.Point, exclude sim.PointID, h float64) bool {
	if h <= 0 {
		return false
	}
	found := false
	cfg.Neighbours(u, h, exclude, func(_ sim.PointID, _ sim.Point, d float64) bool {
		if d < h {
			found = true
			return false
		}
		return true
	})
	return found
}

// pairPenalty converts an interaction parameter into a per-pair energy.
func pairPenalty(gamma float64) float64 {
	if gamma == 0 {
		return math.Inf(1)
	}
	return -math.Log(gamma)
}

func countEnergy(t int, penalty float64) sim.Energy {
	if t == 0 {
		return sim.Energy{}
	}
	if math.IsInf(penalty, 1) {
		return sim.Forbidden
	}
	return sim.Energy{Value: float64(t) * penalty}
}

// repulsiveBound: beta dominates lambda exactly when every pair factor is <= 1.
func repulsiveBound(beta, gamma float64) (float64, error) {
	if gamma > 1 {
		return 0, sim.ErrUnsupportedParameters
	}
	return beta, nil
}

func warnAttractive(m sim.Model, gamma float64) {
	if gamma > 1 {
		logrus.Warnf("%s with gamma=%g > 1 is attractive: defined on bounded windows only and not supported by exact simulation", m, gamma)
	}
}
