// Package cluster generates Neyman-Scott cluster processes: a Poisson
// pattern of parents, each replaced by a Poisson number of offspring
// displaced by an isotropic kernel. These generators are independent of the
// Gibbs samplers and share no state with them.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// cauchyTailMass is the fraction of the Cauchy kernel allowed to fall
// outside the expanded parent window.
const cauchyTailMass = 0.01

// ErrInvalidCluster wraps every parameter error of this package.
var ErrInvalidCluster = errors.New("invalid cluster process")

// Process is a cluster process with a specific offspring kernel.
type Process interface {
	// Name is the lower-case kernel name.
	Name() string
	Validate() error
	// Generate draws parents on the expanded window and offspring inside w.
	Generate(w sim.Window, rng *rand.Rand) (parents, offspring []sim.Point, err error)
}

// Thomas: Gaussian offspring displacement with standard deviation Sigma.
type Thomas struct {
	Kappa float64 `yaml:"kappa"` // parent intensity
	Mu    float64 `yaml:"mu"`    // mean offspring per parent
	Sigma float64 `yaml:"sigma"`
}

// Matern: offspring uniform in the disc of radius R around the parent.
type Matern struct {
	Kappa float64 `yaml:"kappa"`
	Mu    float64 `yaml:"mu"`
	R     float64 `yaml:"r"`
}

// Cauchy: bivariate Cauchy displacement with scale Eta.
type Cauchy struct {
	Kappa float64 `yaml:"kappa"`
	Mu    float64 `yaml:"mu"`
	Eta   float64 `yaml:"eta"`
}

func (Thomas) Name() string { return "thomas" }
func (Matern) Name() string { return "matern" }
func (Cauchy) Name() string { return "cauchy" }

func (p Thomas) Validate() error { return validate(p.Kappa, p.Mu, "sigma", p.Sigma) }
func (p Matern) Validate() error { return validate(p.Kappa, p.Mu, "r", p.R) }
func (p Cauchy) Validate() error { return validate(p.Kappa, p.Mu, "eta", p.Eta) }

func (p Thomas) Generate(w sim.Window, rng *rand.Rand) ([]sim.Point, []sim.Point, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	norm := distuv.Normal{Mu: 0, Sigma: p.Sigma, Src: rng}
	return generate(w, rng, p.Kappa, p.Mu, 4*p.Sigma, func() (float64, float64) {
		return norm.Rand(), norm.Rand()
	})
}

func (p Matern) Generate(w sim.Window, rng *rand.Rand) ([]sim.Point, []sim.Point, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	return generate(w, rng, p.Kappa, p.Mu, p.R, func() (float64, float64) {
		r := p.R * math.Sqrt(rng.Float64())
		theta := 2 * math.Pi * rng.Float64()
		return r * math.Cos(theta), r * math.Sin(theta)
	})
}

// Generate uses the representation eta * Z / sqrt(W) with Z standard
// bivariate normal and W chi-squared with one degree of freedom.
func (p Cauchy) Generate(w sim.Window, rng *rand.Rand) ([]sim.Point, []sim.Point, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	chi := distuv.ChiSquared{K: 1, Src: rng}
	expand := p.Eta * math.Sqrt(1/(cauchyTailMass*cauchyTailMass)-1)
	return generate(w, rng, p.Kappa, p.Mu, expand, func() (float64, float64) {
		s := p.Eta / math.Sqrt(chi.Rand())
		return s * norm.Rand(), s * norm.Rand()
	})
}

// Offspring runs p and discards the parents.
func Offspring(p Process, w sim.Window, rng *rand.Rand) ([]sim.Point, error) {
	_, off, err := p.Generate(w, rng)
	return off, err
}

// MeanIntensity is the expected number of offspring per unit area.
func MeanIntensity(kappa, mu float64) float64 { return kappa * mu }

func generate(w sim.Window, rng *rand.Rand, kappa, mu, expand float64, displace func() (float64, float64)) ([]sim.Point, []sim.Point, error) {
	if err := w.Validate(); err != nil {
		return nil, nil, err
	}
	parents := sim.PoissonPattern(rng, rng, w.Expand(expand), kappa)
	var offspring []sim.Point
	for _, c := range parents {
		n := sim.PoissonCount(rng, mu)
		for range n {
			dx, dy := displace()
			q := sim.Point{X: c.X + dx, Y: c.Y + dy}
			if w.Contains(q) {
				offspring = append(offspring, q)
			}
		}
	}
	return parents, offspring, nil
}

func validate(kappa, mu float64, scaleName string, scale float64) error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"kappa", kappa}, {"mu", mu}, {scaleName, scale}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return fmt.Errorf("%s must be finite and positive, got %g: %w", f.name, f.v, ErrInvalidCluster)
		}
	}
	return nil
}
