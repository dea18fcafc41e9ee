package mh

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/cif"
)

func TestBirthDeath_RatiosAreReciprocal(t *testing.T) {
	models := []cif.Spec{
		{Model: sim.ModelStrauss, Beta: 80, Gamma: 0.4, R: 0.1},
		{Model: sim.ModelDiggleGratton, Beta: 80, Delta: 0.01, Rho: 0.08, Kappa: 1.5},
		{Model: sim.ModelPenttinen, Beta: 80, Gamma: 0.3, R: 0.05},
		{Model: sim.ModelDGS, Beta: 80, Delta: 0.01, Rho: 0.08, Kappa: 1, Gamma: 0.6, R: 0.05},
	}
	for _, spec := range models {
		t.Run(spec.Model.String(), func(t *testing.T) {
			m, err := cif.New(spec)
			require.NoError(t, err)
			w := sim.Window{XMin: 0, XMax: 2, YMin: 0, YMax: 1}
			prop := newProposal(MoveWeights{Birth: 2, Death: 1, Shift: 1})
			rng := rand.New(rand.NewPCG(11, 0))

			for trial := 0; trial < 50; trial++ {
				// GIVEN a random configuration X and a candidate u
				cfg := sim.NewConfiguration(w, sim.WithCellSize(m.Range()))
				for i := 0; i < 30; i++ {
					_, err := cfg.Insert(sim.UniformPoint(rng, w))
					require.NoError(t, err)
				}
				u := sim.UniformPoint(rng, w)

				// WHEN the birth ratio of u into X and the death ratio of u
				// out of X + u are computed
				birth := prop.birthLogRatio(m, cfg, u)
				if math.IsInf(birth, -1) {
					continue
				}
				id, err := cfg.Insert(u)
				require.NoError(t, err)
				death := prop.deathLogRatio(m, cfg, id)

				// THEN they are exact reciprocals
				assert.InDelta(t, 0, birth+death, 1e-9)
			}
		})
	}
}

func TestBirthLogRatio_Value(t *testing.T) {
	// GIVEN a Poisson-like model (gamma = 1) on a window of area 2 with 3 points
	m, err := cif.NewStrauss(cif.StraussParams{Beta: 10, Gamma: 1, R: 0.1})
	require.NoError(t, err)
	w := sim.Window{XMin: 0, XMax: 2, YMin: 0, YMax: 1}
	cfg := sim.NewConfiguration(w)
	for _, p := range []sim.Point{{X: 0.1, Y: 0.1}, {X: 1, Y: 0.5}, {X: 1.9, Y: 0.9}} {
		_, err := cfg.Insert(p)
		require.NoError(t, err)
	}
	prop := newProposal(MoveWeights{Birth: 1, Death: 1, Shift: 1})

	// THEN R = beta * |W| / (n + 1)
	assert.InDelta(t, math.Log(10*2/4.0), prop.birthLogRatio(m, cfg, sim.Point{X: 0.5, Y: 0.5}), 1e-12)
}

func TestShiftLogRatio(t *testing.T) {
	m, err := cif.NewStrauss(cif.StraussParams{Beta: 10, Gamma: 0.5, R: 0.1})
	require.NoError(t, err)
	cfg := sim.NewConfiguration(sim.UnitSquare(), sim.WithCellSize(0.1))
	_, err = cfg.Insert(sim.Point{X: 0.5, Y: 0.5})
	require.NoError(t, err)
	id, err := cfg.Insert(sim.Point{X: 0.55, Y: 0.5})
	require.NoError(t, err)

	// moving out of range removes one factor of gamma
	assert.InDelta(t, math.Log(2), shiftLogRatio(m, cfg, id, sim.Point{X: 0.8, Y: 0.5}), 1e-12)
	// moving within range changes nothing
	assert.InDelta(t, 0, shiftLogRatio(m, cfg, id, sim.Point{X: 0.5, Y: 0.56}), 1e-12)
}

func TestForbiddenProposals(t *testing.T) {
	m, err := cif.NewHardcore(cif.HardcoreParams{Beta: 10, H: 0.1})
	require.NoError(t, err)
	cfg := sim.NewConfiguration(sim.UnitSquare(), sim.WithCellSize(0.1))
	_, err = cfg.Insert(sim.Point{X: 0.5, Y: 0.5})
	require.NoError(t, err)
	id, err := cfg.Insert(sim.Point{X: 0.8, Y: 0.8})
	require.NoError(t, err)
	prop := newProposal(DefaultMoveWeights)

	assert.True(t, math.IsInf(prop.birthLogRatio(m, cfg, sim.Point{X: 0.52, Y: 0.5}), -1))
	assert.True(t, math.IsInf(shiftLogRatio(m, cfg, id, sim.Point{X: 0.55, Y: 0.5}), -1))
	assert.False(t, accept(math.Inf(-1), 1, 0.5))
}

func TestAccept_Tempering(t *testing.T) {
	tests := []struct {
		name     string
		logRatio float64
		temp     float64
		u        float64
		want     bool
	}{
		{"favourable always accepted", 0.3, 1, 0.999, true},
		{"below threshold", -1, 1, math.Exp(-1) * 0.99, true},
		{"above threshold", -1, 1, math.Exp(-1) * 1.01, false},
		{"hot chain flattens ratio", -1, 4, math.Exp(-0.25) * 0.99, true},
		{"cold chain sharpens ratio", -1, 0.25, math.Exp(-1) * 0.99, false},
		{"nan rejected", math.NaN(), 1, 0.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accept(tt.logRatio, tt.temp, tt.u))
		})
	}
}

func TestProposal_Pick(t *testing.T) {
	p := newProposal(MoveWeights{Birth: 1, Death: 1, Shift: 2})
	assert.Equal(t, MoveBirth, p.pick(0.1))
	assert.Equal(t, MoveDeath, p.pick(0.3))
	assert.Equal(t, MoveShift, p.pick(0.6))
	assert.Equal(t, "shift", MoveShift.String())
}
