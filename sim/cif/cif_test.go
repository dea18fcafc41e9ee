package cif

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// pairConfig places one point on the left edge of the unit square and
// returns the configuration plus a query point exactly d to its right.
func pairConfig(t *testing.T, m sim.Interaction, d float64) (*sim.Configuration, sim.Point) {
	t.Helper()
	cfg := sim.NewConfiguration(sim.UnitSquare(), sim.WithCellSize(m.Range()))
	_, err := cfg.Insert(sim.Point{X: 0, Y: 0.5})
	require.NoError(t, err)
	return cfg, sim.Point{X: d, Y: 0.5}
}

func TestStrauss_LocalEnergy(t *testing.T) {
	m, err := NewStrauss(StraussParams{Beta: 100, Gamma: 0.5, R: 0.1})
	require.NoError(t, err)

	tests := []struct {
		name string
		d    float64
		want float64
	}{
		{"inside range", 0.05, math.Log(2)},
		{"on the boundary", 0.1, math.Log(2)},
		{"beyond range", 0.1001, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, u := pairConfig(t, m, tt.d)
			e := m.LocalEnergy(cfg, u, sim.NoPoint)
			assert.False(t, e.Forbidden)
			assert.InDelta(t, tt.want, e.Value, 1e-12)
		})
	}
}

func TestStrauss_CountsEveryNeighbour(t *testing.T) {
	// GIVEN three points within r of u and one beyond
	m, err := NewStrauss(StraussParams{Beta: 50, Gamma: 0.2, R: 0.1})
	require.NoError(t, err)
	cfg := sim.NewConfiguration(sim.UnitSquare(), sim.WithCellSize(0.1))
	for _, p := range []sim.Point{{X: 0.45, Y: 0.5}, {X: 0.55, Y: 0.5}, {X: 0.5, Y: 0.58}, {X: 0.7, Y: 0.7}} {
		_, err := cfg.Insert(p)
		require.NoError(t, err)
	}

	// THEN lambda = beta * gamma^3
	assert.InDelta(t, 50*math.Pow(0.2, 3), sim.Intensity(m, cfg, sim.Point{X: 0.5, Y: 0.5}, sim.NoPoint), 1e-9)
}

func TestStrauss_GammaZeroIsHardcore(t *testing.T) {
	m, err := NewStrauss(StraussParams{Beta: 100, Gamma: 0, R: 0.1})
	require.NoError(t, err)
	cfg, u := pairConfig(t, m, 0.09)
	assert.True(t, m.LocalEnergy(cfg, u, sim.NoPoint).Forbidden)
	assert.Equal(t, 0.1, HardcoreDistance(m))
}

func TestStrauss_GammaAboveOne_Unsupported(t *testing.T) {
	// GIVEN an attractive Strauss model
	m, err := NewStrauss(StraussParams{Beta: 100, Gamma: 1.5, R: 0.1})

	// THEN it is constructible but has no dominating rate
	require.NoError(t, err)
	_, err = m.DominatingRate()
	assert.ErrorIs(t, err, sim.ErrUnsupportedParameters)
}

func TestHardcore_LocalEnergy(t *testing.T) {
	m, err := NewHardcore(HardcoreParams{Beta: 200, H: 0.05})
	require.NoError(t, err)

	cfg, u := pairConfig(t, m, 0.049)
	assert.True(t, m.LocalEnergy(cfg, u, sim.NoPoint).Forbidden)

	cfg, u = pairConfig(t, m, 0.05)
	assert.Equal(t, sim.Energy{}, m.LocalEnergy(cfg, u, sim.NoPoint), "distance equal to h is allowed")

	rate, err := m.DominatingRate()
	require.NoError(t, err)
	assert.Equal(t, 200.0, rate)
}

func TestStraussHard_LocalEnergy(t *testing.T) {
	m, err := NewStraussHard(StraussHardParams{Beta: 100, Gamma: 0.25, R: 0.1, H: 0.03})
	require.NoError(t, err)

	cfg, u := pairConfig(t, m, 0.02)
	assert.True(t, m.LocalEnergy(cfg, u, sim.NoPoint).Forbidden)

	cfg, u = pairConfig(t, m, 0.06)
	assert.InDelta(t, math.Log(4), m.LocalEnergy(cfg, u, sim.NoPoint).Value, 1e-12)

	assert.Equal(t, 0.03, HardcoreDistance(m))
}

func TestDiggleGratton_Potential(t *testing.T) {
	m, err := NewDiggleGratton(DiggleGrattonParams{Beta: 100, Delta: 0.02, Rho: 0.1, Kappa: 2})
	require.NoError(t, err)

	tests := []struct {
		name      string
		d         float64
		forbidden bool
		want      float64
	}{
		{"inside delta", 0.01, true, 0},
		{"at delta", 0.02, true, 0},
		{"midway", 0.06, false, -2 * math.Log(0.5)},
		{"at rho", 0.1, false, 0},
		{"beyond rho", 0.2, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, u := pairConfig(t, m, tt.d)
			e := m.LocalEnergy(cfg, u, sim.NoPoint)
			assert.Equal(t, tt.forbidden, e.Forbidden)
			if !tt.forbidden {
				assert.InDelta(t, tt.want, e.Value, 1e-12)
			}
		})
	}
	assert.Equal(t, 0.02, HardcoreDistance(m))
}

func TestDiggleGratton_PairFactorAtMostOne(t *testing.T) {
	for d := 0.021; d < 0.2; d += 0.007 {
		v := diggleGrattonPotential(d, 0.02, 0.1, 1.5)
		assert.GreaterOrEqual(t, v, 0.0, "d=%v", d)
	}
}

func TestPenttinen_OverlapFraction(t *testing.T) {
	assert.Equal(t, 1.0, overlapFraction(0))
	assert.Equal(t, 0.0, overlapFraction(1))
	assert.Equal(t, 0.0, overlapFraction(1.5))
	// two unit discs whose centres are one radius apart
	want := (2 / math.Pi) * (math.Acos(0.5) - 0.5*math.Sqrt(0.75))
	assert.InDelta(t, want, overlapFraction(0.5), 1e-12)

	prev := 1.0
	for z := 0.05; z < 1; z += 0.05 {
		a := overlapFraction(z)
		assert.Less(t, a, prev, "overlap must decrease with distance")
		prev = a
	}
}

func TestPenttinen_LocalEnergy(t *testing.T) {
	m, err := NewPenttinen(PenttinenParams{Beta: 100, Gamma: 0.5, R: 0.05})
	require.NoError(t, err)
	assert.Equal(t, 0.1, m.Range())

	cfg, u := pairConfig(t, m, 0.05)
	want := overlapFraction(0.5) * math.Log(2)
	assert.InDelta(t, want, m.LocalEnergy(cfg, u, sim.NoPoint).Value, 1e-12)

	cfg, u = pairConfig(t, m, 0.11)
	assert.Equal(t, sim.Energy{}, m.LocalEnergy(cfg, u, sim.NoPoint))
}

func TestDGS_CombinesBothTerms(t *testing.T) {
	m, err := NewDGS(DGSParams{Beta: 100, Delta: 0.02, Rho: 0.1, Kappa: 1, Gamma: 0.5, R: 0.08})
	require.NoError(t, err)
	assert.Equal(t, 0.1, m.Range())

	// inside both ranges
	cfg, u := pairConfig(t, m, 0.06)
	want := -math.Log(0.5) + math.Log(2)
	assert.InDelta(t, want, m.LocalEnergy(cfg, u, sim.NoPoint).Value, 1e-12)

	// Diggle-Gratton range only
	cfg, u = pairConfig(t, m, 0.09)
	assert.InDelta(t, -math.Log(0.875), m.LocalEnergy(cfg, u, sim.NoPoint).Value, 1e-12)

	cfg, u = pairConfig(t, m, 0.01)
	assert.True(t, m.LocalEnergy(cfg, u, sim.NoPoint).Forbidden)
}

func TestLocalEnergy_ExcludeSkipsPoint(t *testing.T) {
	m, err := NewHardcore(HardcoreParams{Beta: 1, H: 0.1})
	require.NoError(t, err)
	cfg := sim.NewConfiguration(sim.UnitSquare(), sim.WithCellSize(0.1))
	id, err := cfg.Insert(sim.Point{X: 0.5, Y: 0.5})
	require.NoError(t, err)

	assert.True(t, m.LocalEnergy(cfg, sim.Point{X: 0.5, Y: 0.5}, sim.NoPoint).Forbidden)
	assert.False(t, m.LocalEnergy(cfg, sim.Point{X: 0.5, Y: 0.5}, id).Forbidden)
}

func TestDominatingRate_RepulsiveModelsUseBeta(t *testing.T) {
	specs := []Spec{
		{Model: sim.ModelStrauss, Beta: 7, Gamma: 1, R: 0.1},
		{Model: sim.ModelStraussHard, Beta: 7, Gamma: 0.3, R: 0.1, H: 0.01},
		{Model: sim.ModelHardcore, Beta: 7, H: 0.05},
		{Model: sim.ModelDiggleGratton, Beta: 7, Delta: 0.01, Rho: 0.05, Kappa: 1},
		{Model: sim.ModelPenttinen, Beta: 7, Gamma: 0.1, R: 0.05},
		{Model: sim.ModelDGS, Beta: 7, Delta: 0.01, Rho: 0.05, Kappa: 1, Gamma: 0.9, R: 0.03},
	}
	for _, s := range specs {
		t.Run(s.Model.String(), func(t *testing.T) {
			m, err := New(s)
			require.NoError(t, err)
			assert.Equal(t, s.Model, m.Model())
			rate, err := m.DominatingRate()
			require.NoError(t, err)
			assert.Equal(t, 7.0, rate)
		})
	}
}

func TestNew_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"unknown model", Spec{Model: sim.Model(42), Beta: 1}},
		{"zero beta", Spec{Model: sim.ModelStrauss, Beta: 0, Gamma: 0.5, R: 0.1}},
		{"negative gamma", Spec{Model: sim.ModelStrauss, Beta: 1, Gamma: -0.1, R: 0.1}},
		{"nan radius", Spec{Model: sim.ModelPenttinen, Beta: 1, Gamma: 0.5, R: math.NaN()}},
		{"hard core above radius", Spec{Model: sim.ModelStraussHard, Beta: 1, Gamma: 0.5, R: 0.1, H: 0.2}},
		{"negative hard core", Spec{Model: sim.ModelHardcore, Beta: 1, H: -1}},
		{"delta not below rho", Spec{Model: sim.ModelDiggleGratton, Beta: 1, Delta: 0.1, Rho: 0.1, Kappa: 1}},
		{"dgs negative kappa", Spec{Model: sim.ModelDGS, Beta: 1, Delta: 0.01, Rho: 0.1, Kappa: -1, Gamma: 0.5, R: 0.05}},
		{"infinite beta", Spec{Model: sim.ModelHardcore, Beta: math.Inf(1), H: 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.spec)
			assert.ErrorIs(t, err, sim.ErrInvalidParameters)
		})
	}
}

func TestHardcoreDistance(t *testing.T) {
	tests := []struct {
		spec Spec
		want float64
	}{
		{Spec{Model: sim.ModelStrauss, Beta: 1, Gamma: 0.5, R: 0.1}, 0},
		{Spec{Model: sim.ModelStraussHard, Beta: 1, Gamma: 0, R: 0.1, H: 0.02}, 0.1},
		{Spec{Model: sim.ModelPenttinen, Beta: 1, Gamma: 0, R: 0.05}, 0.1},
		{Spec{Model: sim.ModelDGS, Beta: 1, Delta: 0.01, Rho: 0.05, Kappa: 1, Gamma: 0, R: 0.03}, 0.03},
		{Spec{Model: sim.ModelDGS, Beta: 1, Delta: 0.01, Rho: 0.05, Kappa: 1, Gamma: 0.5, R: 0.03}, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.spec.Model.String(), func(t *testing.T) {
			m, err := New(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, HardcoreDistance(m))
		})
	}
}
