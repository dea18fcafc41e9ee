package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/cif"
	"github.com/gibbs-sim/gibbs-sim/sim/internal/testutil"
	"github.com/gibbs-sim/gibbs-sim/sim/mh"
	"github.com/gibbs-sim/gibbs-sim/sim/trace"
)

var generous = Budget{MaxDoublings: 14}

func TestPerfectEntryPoints_Succeed(t *testing.T) {
	w := sim.UnitSquare()
	tests := []struct {
		name string
		run  func() (Result, error)
		hc   float64
	}{
		{"strauss", func() (Result, error) {
			return PerfectStrauss(w, cif.StraussParams{Beta: 100, Gamma: 0.5, R: 0.1}, Budget{}, 42)
		}, 0},
		{"straush", func() (Result, error) {
			return PerfectStraussHard(w, cif.StraussHardParams{Beta: 100, Gamma: 0.5, R: 0.07, H: 0.03}, generous, 11)
		}, 0.03},
		{"hardcore", func() (Result, error) {
			return PerfectHardcore(w, cif.HardcoreParams{Beta: 100, H: 0.05}, generous, 11)
		}, 0.05},
		{"diggra", func() (Result, error) {
			return PerfectDiggleGratton(w, cif.DiggleGrattonParams{Beta: 100, Delta: 0.02, Rho: 0.06, Kappa: 1}, generous, 11)
		}, 0.02},
		{"penttinen", func() (Result, error) {
			return PerfectPenttinen(w, cif.PenttinenParams{Beta: 100, Gamma: 0, R: 0.02}, generous, 11)
		}, 0.04},
		{"dgs", func() (Result, error) {
			return PerfectDGS(w, cif.DGSParams{Beta: 100, Delta: 0.02, Rho: 0.06, Kappa: 1, Gamma: 0.5, R: 0.04}, generous, 11)
		}, 0.02},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.run()

			require.NoError(t, err)
			require.Equal(t, sim.StatusSuccess, res.Status)
			assert.Equal(t, 0, len(res.Coords)%2, "coords are x,y pairs")
			assert.Equal(t, res.N(), len(res.Points()))
			assert.Greater(t, res.Diagnostics.Events, 0)
			testutil.AssertInWindow(t, res.Points(), w)
			testutil.AssertHardcore(t, res.Points(), tt.hc)
		})
	}
}

func TestPerfect_MatchesModelEntryPoint(t *testing.T) {
	// GIVEN the same model through the generic and typed entry points
	p := cif.StraussParams{Beta: 100, Gamma: 0.5, R: 0.1}
	typed, err := PerfectStrauss(sim.UnitSquare(), p, DefaultBudget, 42)
	require.NoError(t, err)
	generic, err := Perfect(sim.UnitSquare(), cif.Spec{Model: sim.ModelStrauss, Beta: p.Beta, Gamma: p.Gamma, R: p.R}, DefaultBudget, 42)
	require.NoError(t, err)

	// THEN results are identical
	assert.Equal(t, typed, generic)
}

func TestPerfect_ZeroBudgetUsesDefaults(t *testing.T) {
	spec := cif.Spec{Model: sim.ModelStrauss, Beta: 100, Gamma: 0.5, R: 0.1}
	a, err := Perfect(sim.UnitSquare(), spec, Budget{}, 9)
	require.NoError(t, err)
	b, err := Perfect(sim.UnitSquare(), spec, DefaultBudget, 9)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPerfect_Unsupported_Status(t *testing.T) {
	res, err := PerfectStrauss(sim.UnitSquare(), cif.StraussParams{Beta: 100, Gamma: 1.5, R: 0.1}, DefaultBudget, 1)

	require.NoError(t, err)
	assert.Equal(t, sim.StatusUnsupportedParameters, res.Status)
	assert.Equal(t, 2, int(res.Status))
	assert.Empty(t, res.Coords)
}

func TestPerfect_NoCoalescence_Status(t *testing.T) {
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	res, err := PerfectHardcore(sim.UnitSquare(), cif.HardcoreParams{Beta: 5000, H: 0.05}, Budget{MaxDoublings: 4, Trace: tr}, 3)

	require.NoError(t, err)
	assert.Equal(t, sim.StatusNoCoalescence, res.Status)
	assert.Equal(t, 1, int(res.Status))
	assert.Empty(t, res.Coords)
	assert.Len(t, tr.Horizons, 5)
}

func TestPerfect_MaxEventsOnly_DoublesUpToCap(t *testing.T) {
	// GIVEN a budget that only caps the horizon
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	b := Budget{MaxEvents: 100, Trace: tr}

	// WHEN an infeasible hard core is sampled
	res, err := PerfectHardcore(sim.UnitSquare(), cif.HardcoreParams{Beta: 5000, H: 0.05}, b, 3)

	// THEN the horizon doubles from the default until the cap
	require.NoError(t, err)
	assert.Equal(t, sim.StatusNoCoalescence, res.Status)
	assert.Equal(t, 100, res.Diagnostics.Events)
	assert.Equal(t, 1, res.Diagnostics.Doublings)
	require.Len(t, tr.Horizons, 2)
	assert.Equal(t, 64, tr.Horizons[0].Events)
}

func TestPerfect_InvalidParameters_Error(t *testing.T) {
	_, err := PerfectDiggleGratton(sim.UnitSquare(), cif.DiggleGrattonParams{Beta: 100, Delta: 0.2, Rho: 0.1}, DefaultBudget, 1)
	assert.ErrorIs(t, err, sim.ErrInvalidParameters)

	_, err = PerfectHardcore(sim.Window{XMin: 0, XMax: 0, YMin: 0, YMax: 1}, cif.HardcoreParams{Beta: 10, H: 0.01}, DefaultBudget, 1)
	assert.ErrorIs(t, err, sim.ErrInvalidParameters)

	_, err = Perfect(sim.UnitSquare(), cif.Spec{Model: sim.Model(42), Beta: 1}, DefaultBudget, 1)
	assert.ErrorIs(t, err, sim.ErrInvalidParameters)

	_, err = PerfectStrauss(sim.UnitSquare(), cif.StraussParams{Beta: 1}, Budget{MaxDoublings: 41}, 1)
	assert.ErrorIs(t, err, sim.ErrInvalidParameters)
}

func TestMetropolis_DiggleGratton(t *testing.T) {
	req := MetropolisRequest{
		Model:  cif.Spec{Model: sim.ModelDiggleGratton, Beta: 100, Delta: 0.02, Rho: 0.1, Kappa: 1},
		Window: sim.UnitSquare(),
		Config: mh.Config{Iterations: 10000, Seed: 1},
	}

	res, err := Metropolis(req)

	require.NoError(t, err)
	assert.Equal(t, sim.StatusSuccess, res.Status)
	assert.Equal(t, 10000, res.Diagnostics.Iterations)
	assert.Equal(t, 1.0, res.Diagnostics.FinalTemperature)
	assert.Greater(t, res.Diagnostics.Moves.Birth.Accepted, 0)
	assert.Greater(t, res.N(), 0)
	testutil.AssertHardcore(t, res.Points(), 0.02)
}

func TestMetropolis_InvalidConfig_Error(t *testing.T) {
	_, err := Metropolis(MetropolisRequest{
		Model:  cif.Spec{Model: sim.ModelStrauss, Beta: 10, Gamma: 0.5, R: 0.1},
		Window: sim.UnitSquare(),
	})
	assert.ErrorIs(t, err, sim.ErrInvalidParameters, "zero iterations")

	_, err = Metropolis(MetropolisRequest{
		Model:  cif.Spec{Model: sim.ModelStrauss, Beta: -10},
		Window: sim.UnitSquare(),
		Config: mh.Config{Iterations: 10},
	})
	assert.ErrorIs(t, err, sim.ErrInvalidParameters)
}

func TestResult_Points_Unflattens(t *testing.T) {
	r := Result{Coords: []float64{0.1, 0.2, 0.3, 0.4}}
	assert.Equal(t, 2, r.N())
	assert.Equal(t, []sim.Point{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}}, r.Points())
}
