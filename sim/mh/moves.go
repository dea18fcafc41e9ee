package mh

import (
	"math"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// Move is a proposal type.
type Move int

const (
	MoveBirth Move = iota
	MoveDeath
	MoveShift
)

func (m Move) String() string {
	switch m {
	case MoveBirth:
		return "birth"
	case MoveDeath:
		return "death"
	case MoveShift:
		return "shift"
	default:
		return "unknown"
	}
}

// proposal holds the normalized move probabilities.
type proposal struct {
	pBirth, pDeath, pShift float64
}

func newProposal(w MoveWeights) proposal {
	t := w.total()
	return proposal{pBirth: w.Birth / t, pDeath: w.Death / t, pShift: w.Shift / t}
}

// pick maps a uniform draw onto a move type.
func (p proposal) pick(u float64) Move {
	switch {
	case u < p.pBirth:
		return MoveBirth
	case u < p.pBirth+p.pDeath:
		return MoveDeath
	default:
		return MoveShift
	}
}

// birthLogRatio is the log Hastings ratio for adding u to cfg:
//
//	lambda(u; X) * |W| / (n + 1) * pDeath / pBirth
//
// -Inf when u is forbidden.
func (p proposal) birthLogRatio(model sim.Interaction, cfg *sim.Configuration, u sim.Point) float64 {
	logLambda := sim.LogIntensity(model, cfg, u, sim.NoPoint)
	if math.IsInf(logLambda, -1) {
		return logLambda
	}
	n := float64(cfg.Len())
	return logLambda + math.Log(cfg.Window().Area()) - math.Log(n+1) + math.Log(p.pDeath) - math.Log(p.pBirth)
}

// deathLogRatio is the log Hastings ratio for removing the point stored
// under id from cfg, the exact reciprocal of birthLogRatio:
//
//	n / (|W| * lambda(x; X \ x)) * pBirth / pDeath
func (p proposal) deathLogRatio(model sim.Interaction, cfg *sim.Configuration, id sim.PointID) float64 {
	x, ok := cfg.Get(id)
	if !ok {
		return math.Inf(-1)
	}
	logLambda := sim.LogIntensity(model, cfg, x, id)
	if math.IsInf(logLambda, -1) {
		return math.Inf(1)
	}
	n := float64(cfg.Len())
	return math.Log(n) - math.Log(cfg.Window().Area()) - logLambda + math.Log(p.pBirth) - math.Log(p.pDeath)
}

// shiftLogRatio is the log ratio lambda(to; X \ x) / lambda(x; X \ x) for
// moving the point stored under id. The proposal is symmetric.
func shiftLogRatio(model sim.Interaction, cfg *sim.Configuration, id sim.PointID, to sim.Point) float64 {
	x, ok := cfg.Get(id)
	if !ok {
		return math.Inf(-1)
	}
	logNew := sim.LogIntensity(model, cfg, to, id)
	if math.IsInf(logNew, -1) {
		return logNew
	}
	logOld := sim.LogIntensity(model, cfg, x, id)
	if math.IsInf(logOld, -1) {
		return math.Inf(1)
	}
	return logNew - logOld
}

// accept decides a proposal with tempered ratio exp(logRatio / temperature).
func accept(logRatio, temperature, u float64) bool {
	if math.IsInf(logRatio, -1) || math.IsNaN(logRatio) {
		return false
	}
	if logRatio >= 0 {
		return true
	}
	return math.Log(u) <= logRatio/temperature
}
