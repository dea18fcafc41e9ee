package sim

import (
	"fmt"
	"math"
)

// Model enumerates the pairwise-interaction models known to the engine.
// The set is closed; samplers select behaviour through the Interaction
// interface, never by name.
type Model int

const (
	ModelStrauss Model = iota + 1
	ModelStraussHard
	ModelHardcore
	ModelDiggleGratton
	ModelPenttinen
	ModelDGS
)

// AllModels lists every model in declaration order.
var AllModels = []Model{
	ModelStrauss, ModelStraussHard, ModelHardcore,
	ModelDiggleGratton, ModelPenttinen, ModelDGS,
}

func (m Model) String() string {
	switch m {
	case ModelStrauss:
		return "Strauss"
	case ModelStraussHard:
		return "StraussHard"
	case ModelHardcore:
		return "Hardcore"
	case ModelDiggleGratton:
		return "DiggleGratton"
	case ModelPenttinen:
		return "Penttinen"
	case ModelDGS:
		return "DGS"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Valid reports whether m is one of the declared models.
func (m Model) Valid() bool {
	return m >= ModelStrauss && m <= ModelDGS
}

// Energy is the local energy of a candidate point: the sum of its pair
// potentials with every other point in range. Forbidden marks an absolute
// exclusion (hard-core violation) and takes precedence over Value.
type Energy struct {
	Value     float64
	Forbidden bool
}

// Forbidden is the energy of a point that violates a hard core.
var Forbidden = Energy{Value: math.Inf(1), Forbidden: true}

// Add accumulates a pair potential. An infinite potential forbids the point.
func (e Energy) Add(v float64) Energy {
	if e.Forbidden || math.IsInf(v, 1) {
		return Forbidden
	}
	e.Value += v
	return e
}

// Interaction is the conditional intensity of a pairwise-interaction process:
// lambda(u; X) = Beta() * exp(-LocalEnergy(X, u)).
type Interaction interface {
	// Model identifies the variant.
	Model() Model

	// Beta is the first-order intensity.
	Beta() float64

	// Range is the interaction range; points farther apart do not interact.
	Range() float64

	// LocalEnergy sums the pair potentials between u and every point of cfg
	// within Range(), ignoring the point stored under exclude.
	// Must not modify cfg.
	LocalEnergy(cfg *Configuration, u Point, exclude PointID) Energy

	// DominatingRate returns an upper bound of lambda(u; X) over all u and X.
	// Returns ErrUnsupportedParameters when no finite bound exists.
	DominatingRate() (float64, error)
}

// Intensity evaluates lambda(u; cfg \ {exclude}) for model m. Zero when forbidden.
func Intensity(m Interaction, cfg *Configuration, u Point, exclude PointID) float64 {
	e := m.LocalEnergy(cfg, u, exclude)
	if e.Forbidden {
		return 0
	}
	return m.Beta() * math.Exp(-e.Value)
}

// LogIntensity evaluates log lambda(u; cfg \ {exclude}); -Inf when forbidden.
func LogIntensity(m Interaction, cfg *Configuration, u Point, exclude PointID) float64 {
	e := m.LocalEnergy(cfg, u, exclude)
	if e.Forbidden || m.Beta() == 0 {
		return math.Inf(-1)
	}
	return math.Log(m.Beta()) - e.Value
}
