// Package testutil provides shared assertion helpers for the sampler test
// packages.
package testutil

import (
	"math"
	"sort"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// MinPairDistance is the smallest Euclidean distance between two points of
// pts (+Inf for fewer than two points).
func MinPairDistance(pts []sim.Point) float64 {
	best := math.Inf(1)
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			best = math.Min(best, math.Hypot(pts[i].X-pts[j].X, pts[i].Y-pts[j].Y))
		}
	}
	return best
}

// AssertHardcore fails if two points of pts are strictly closer than h.
func AssertHardcore(t *testing.T, pts []sim.Point, h float64) {
	t.Helper()
	if d := MinPairDistance(pts); d < h {
		t.Errorf("hard core violated: minimum pair distance %v < %v over %d points", d, h, len(pts))
	}
}

// AssertInWindow fails for any point outside w.
func AssertInWindow(t *testing.T, pts []sim.Point, w sim.Window) {
	t.Helper()
	for i, p := range pts {
		if !w.Contains(p) {
			t.Errorf("point %d (%v, %v) outside window %+v", i, p.X, p.Y, w)
		}
	}
}

// PoissonKSDistance is the Kolmogorov-Smirnov distance between the empirical
// distribution of counts and Poisson(mean).
func PoissonKSDistance(counts []int, mean float64) float64 {
	x := make([]float64, len(counts))
	hi := 0
	for i, c := range counts {
		x[i] = float64(c)
		hi = max(hi, c)
	}
	sort.Float64s(x)
	pois := distuv.Poisson{Lambda: mean}
	d := 0.0
	for k := 0; k <= hi; k++ {
		emp := stat.CDF(float64(k), stat.Empirical, x, nil)
		d = math.Max(d, math.Abs(emp-pois.CDF(float64(k))))
	}
	return d
}

// Counts converts integer counts to floats for gonum/stat.
func Counts(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}
