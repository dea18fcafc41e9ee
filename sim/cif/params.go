package cif

import (
	"fmt"
	"math"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// StraussParams parameterizes the Strauss process.
type StraussParams struct {
	Beta  float64 // first-order intensity (> 0)
	Gamma float64 // interaction parameter (>= 0; > 1 only on finite windows)
	R     float64 // interaction radius (>= 0)
}

// StraussHardParams parameterizes the Strauss process with a hard core.
type StraussHardParams struct {
	Beta  float64
	Gamma float64
	R     float64 // interaction radius
	H     float64 // hard-core distance, 0 <= H <= R
}

// HardcoreParams parameterizes the pure hard-core process.
type HardcoreParams struct {
	Beta float64
	H    float64 // hard-core distance (>= 0)
}

// DiggleGrattonParams parameterizes the Diggle-Gratton process.
type DiggleGrattonParams struct {
	Beta  float64
	Delta float64 // hard-core distance, 0 <= Delta < Rho
	Rho   float64 // outer radius of the interaction annulus
	Kappa float64 // shape exponent (>= 0)
}

// PenttinenParams parameterizes the Penttinen area-interaction-type process.
type PenttinenParams struct {
	Beta  float64
	Gamma float64 // interaction parameter (>= 0)
	R     float64 // disc radius; points interact below 2R
}

// DGSParams parameterizes the combined Diggle-Gratton-Strauss process.
type DGSParams struct {
	Beta  float64
	Delta float64
	Rho   float64
	Kappa float64
	Gamma float64 // Strauss interaction parameter
	R     float64 // Strauss interaction radius
}

func (p StraussParams) Validate() error {
	return firstErr(
		checkPositive("beta", p.Beta),
		checkNonNegative("gamma", p.Gamma),
		checkNonNegative("r", p.R),
	)
}

func (p StraussHardParams) Validate() error {
	if err := firstErr(
		checkPositive("beta", p.Beta),
		checkNonNegative("gamma", p.Gamma),
		checkNonNegative("r", p.R),
		checkNonNegative("hc", p.H),
	); err != nil {
		return err
	}
	if p.H > p.R {
		return fmt.Errorf("hard core %g exceeds interaction radius %g: %w", p.H, p.R, sim.ErrInvalidParameters)
	}
	return nil
}

func (p HardcoreParams) Validate() error {
	return firstErr(
		checkPositive("beta", p.Beta),
		checkNonNegative("hc", p.H),
	)
}

func (p DiggleGrattonParams) Validate() error {
	if err := firstErr(
		checkPositive("beta", p.Beta),
		checkNonNegative("delta", p.Delta),
		checkPositive("rho", p.Rho),
		checkNonNegative("kappa", p.Kappa),
	); err != nil {
		return err
	}
	if p.Delta >= p.Rho {
		return fmt.Errorf("delta %g must be smaller than rho %g: %w", p.Delta, p.Rho, sim.ErrInvalidParameters)
	}
	return nil
}

func (p PenttinenParams) Validate() error {
	return firstErr(
		checkPositive("beta", p.Beta),
		checkNonNegative("gamma", p.Gamma),
		checkNonNegative("r", p.R),
	)
}

func (p DGSParams) Validate() error {
	if err := (DiggleGrattonParams{Beta: p.Beta, Delta: p.Delta, Rho: p.Rho, Kappa: p.Kappa}).Validate(); err != nil {
		return err
	}
	return firstErr(
		checkNonNegative("gamma", p.Gamma),
		checkNonNegative("r", p.R),
	)
}

func checkPositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s must be finite and positive, got %g: %w", name, v, sim.ErrInvalidParameters)
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s must be finite and non-negative, got %g: %w", name, v, sim.ErrInvalidParameters)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
