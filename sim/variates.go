package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// UniformPoint draws a point uniformly in w.
func UniformPoint(rng *rand.Rand, w Window) Point {
	return Point{
		X: w.XMin + rng.Float64()*w.Width(),
		Y: w.YMin + rng.Float64()*w.Height(),
	}
}

// PoissonCount draws a Poisson(mean) count. Non-positive means yield 0.
func PoissonCount(src rand.Source, mean float64) int {
	if mean <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: mean, Src: src}.Rand())
}

// ExpArrival draws an exponential waiting time with the given rate.
// Non-positive rates never fire and return +Inf.
func ExpArrival(src rand.Source, rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return distuv.Exponential{Rate: rate, Src: src}.Rand()
}

// PoissonPattern draws a homogeneous Poisson pattern of intensity lambda on w.
func PoissonPattern(rng *rand.Rand, src rand.Source, w Window, lambda float64) []Point {
	n := PoissonCount(src, lambda*w.Area())
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = UniformPoint(rng, w)
	}
	return pts
}
