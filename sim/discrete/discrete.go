// Package discrete provides truncated Poisson generators and index thinning.
package discrete

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidArgument is returned for non-finite or out-of-range arguments.
var ErrInvalidArgument = errors.New("invalid argument")

// ZeroTruncPoissonDalgaard draws Poisson(lambda) conditioned on being >= 1
// by inversion restricted to the upper tail.
func ZeroTruncPoissonDalgaard(rng *rand.Rand, lambda float64) (int, error) {
	return TruncPoissonDalgaard(rng, lambda, 1)
}

// ZeroTruncPoissonHarding draws Poisson(lambda) conditioned on being >= 1
// from the first arrival of a unit-rate process truncated to [0, lambda].
func ZeroTruncPoissonHarding(rng *rand.Rand, lambda float64) (int, error) {
	return TruncPoissonHarding(rng, lambda, 1)
}

// TruncPoissonDalgaard draws Poisson(lambda) conditioned on being >= k:
// U is uniform on (P(X < k), 1) and the result is the Poisson quantile of U.
func TruncPoissonDalgaard(rng *rand.Rand, lambda float64, k int) (int, error) {
	if err := checkArgs(lambda, k); err != nil {
		return 0, err
	}
	if k == 0 {
		return int(distuv.Poisson{Lambda: lambda, Src: rng}.Rand()), nil
	}
	pois := distuv.Poisson{Lambda: lambda}
	lower := pois.CDF(float64(k - 1))
	u := lower + rng.Float64()*(1-lower)
	if u <= lower || lower >= 1 {
		// The upper tail is below float resolution; the mode of the
		// conditional law is k.
		return k, nil
	}
	return quantile(pois, u, k), nil
}

// TruncPoissonHarding draws Poisson(lambda) conditioned on being >= k.
// On a unit-rate process over [0, lambda] with at least k arrivals, the
// k-th arrival time T is Gamma(k, 1) truncated to [0, lambda], and the
// remaining count is Poisson(lambda - T).
func TruncPoissonHarding(rng *rand.Rand, lambda float64, k int) (int, error) {
	if err := checkArgs(lambda, k); err != nil {
		return 0, err
	}
	if k == 0 {
		return int(distuv.Poisson{Lambda: lambda, Src: rng}.Rand()), nil
	}
	g := distuv.Gamma{Alpha: float64(k), Beta: 1}
	top := g.CDF(lambda)
	var t float64
	if top > 0 {
		t = g.Quantile(rng.Float64() * top)
	}
	t = math.Min(math.Max(t, 0), lambda)
	rest := lambda - t
	if math.IsNaN(rest) || rest <= 0 {
		return k, nil
	}
	return k + int(distuv.Poisson{Lambda: rest, Src: rng}.Rand()), nil
}

// ThinJumpEqual returns the indices in [0, n) kept by independent thinning
// with retention probability p. It jumps between retained indices with
// geometric gaps, so its cost is proportional to the number retained.
func ThinJumpEqual(rng *rand.Rand, n int, p float64) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("n must be >= 0, got %d: %w", n, ErrInvalidArgument)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("p must be in [0, 1], got %g: %w", p, ErrInvalidArgument)
	}
	if p == 0 || n == 0 {
		return []int{}, nil
	}
	if p == 1 {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	logq := math.Log1p(-p)
	out := make([]int, 0, int(float64(n)*p)+1)
	for i := -1; ; {
		u := 1 - rng.Float64() // (0, 1]
		gap := math.Floor(math.Log(u) / logq)
		if float64(i)+1+gap >= float64(n) {
			break
		}
		i += 1 + int(gap)
		out = append(out, i)
	}
	return out, nil
}

// quantile is the smallest x >= from with CDF(x) >= u.
func quantile(pois distuv.Poisson, u float64, from int) int {
	x := from
	cdf := pois.CDF(float64(x))
	for cdf < u {
		x++
		next := pois.CDF(float64(x))
		if next <= cdf {
			break
		}
		cdf = next
	}
	return x
}

func checkArgs(lambda float64, k int) error {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda <= 0 {
		return fmt.Errorf("lambda must be finite and positive, got %g: %w", lambda, ErrInvalidArgument)
	}
	if k < 0 {
		return fmt.Errorf("truncation point must be >= 0, got %d: %w", k, ErrInvalidArgument)
	}
	return nil
}
