// Package engine is the typed call surface of the simulator. Each exact
// sampler has one entry point per model; Metropolis serves every model
// through a generic interaction spec. Results carry flat coordinates and a
// status code; the error return is reserved for invalid configuration.
package engine

import (
	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/cif"
	"github.com/gibbs-sim/gibbs-sim/sim/mh"
	"github.com/gibbs-sim/gibbs-sim/sim/perfect"
	"github.com/gibbs-sim/gibbs-sim/sim/trace"
)

// Budget bounds an exact-sampling call. A budget with every bound zero
// selects the perfect package defaults. InitialHorizon 0 means
// perfect.DefaultInitialHorizon. When only MaxEvents is set, doubling
// continues until the horizon reaches it; otherwise MaxDoublings 0 allows a
// single attempt.
type Budget struct {
	MaxDoublings   int
	InitialHorizon int
	MaxEvents      int
	// Trace records every coupling attempt (optional).
	Trace *trace.SimulationTrace
}

// DefaultBudget matches perfect.NewConfig.
var DefaultBudget = Budget{
	MaxDoublings:   perfect.DefaultMaxDoublings,
	InitialHorizon: perfect.DefaultInitialHorizon,
}

func (b Budget) config(seed int64) perfect.Config {
	if b.MaxDoublings == 0 && b.InitialHorizon == 0 && b.MaxEvents == 0 {
		b.MaxDoublings = DefaultBudget.MaxDoublings
		b.InitialHorizon = DefaultBudget.InitialHorizon
	}
	if b.MaxDoublings == 0 && b.MaxEvents > 0 {
		b.MaxDoublings = perfect.MaxDoublingsLimit
	}
	return perfect.Config{
		Seed:           seed,
		MaxDoublings:   b.MaxDoublings,
		InitialHorizon: b.InitialHorizon,
		MaxEvents:      b.MaxEvents,
		Trace:          b.Trace,
	}
}

// Result is what every entry point returns: coordinates flattened as
// x0, y0, x1, y1, ... and a status code. Coords is empty unless Status is
// sim.StatusSuccess.
type Result struct {
	Coords []float64
	Status sim.Status
	// Diagnostics describes how the sampler got there; callers that only
	// need the pattern can ignore it.
	Diagnostics Diagnostics
}

// Diagnostics are sampler-specific run statistics. Fields of the other
// sampler stay zero.
type Diagnostics struct {
	// Exact sampling.
	Events          int
	Doublings       int
	DominatingCount int
	// Metropolis-Hastings.
	Iterations       int
	Moves            mh.Stats
	FinalTemperature float64
}

// N is the number of points in the result.
func (r Result) N() int { return len(r.Coords) / 2 }

// Points unflattens Coords.
func (r Result) Points() []sim.Point {
	pts := make([]sim.Point, 0, r.N())
	for i := 0; i+1 < len(r.Coords); i += 2 {
		pts = append(pts, sim.Point{X: r.Coords[i], Y: r.Coords[i+1]})
	}
	return pts
}

// PerfectStrauss draws an exact Strauss sample on w.
func PerfectStrauss(w sim.Window, p cif.StraussParams, b Budget, seed int64) (Result, error) {
	m, err := cif.NewStrauss(p)
	if err != nil {
		return Result{}, err
	}
	return perfectRun(m, w, b, seed)
}

// PerfectStraussHard draws an exact Strauss sample with a hard core on w.
func PerfectStraussHard(w sim.Window, p cif.StraussHardParams, b Budget, seed int64) (Result, error) {
	m, err := cif.NewStraussHard(p)
	if err != nil {
		return Result{}, err
	}
	return perfectRun(m, w, b, seed)
}

// PerfectHardcore draws an exact hard-core sample on w.
func PerfectHardcore(w sim.Window, p cif.HardcoreParams, b Budget, seed int64) (Result, error) {
	m, err := cif.NewHardcore(p)
	if err != nil {
		return Result{}, err
	}
	return perfectRun(m, w, b, seed)
}

// PerfectDiggleGratton draws an exact Diggle-Gratton sample on w.
func PerfectDiggleGratton(w sim.Window, p cif.DiggleGrattonParams, b Budget, seed int64) (Result, error) {
	m, err := cif.NewDiggleGratton(p)
	if err != nil {
		return Result{}, err
	}
	return perfectRun(m, w, b, seed)
}

// PerfectPenttinen draws an exact Penttinen sample on w.
func PerfectPenttinen(w sim.Window, p cif.PenttinenParams, b Budget, seed int64) (Result, error) {
	m, err := cif.NewPenttinen(p)
	if err != nil {
		return Result{}, err
	}
	return perfectRun(m, w, b, seed)
}

// PerfectDGS draws an exact Diggle-Gratton-Strauss sample on w.
func PerfectDGS(w sim.Window, p cif.DGSParams, b Budget, seed int64) (Result, error) {
	m, err := cif.NewDGS(p)
	if err != nil {
		return Result{}, err
	}
	return perfectRun(m, w, b, seed)
}

// Perfect dispatches on spec.Model. It is the generic form of the
// model-specific entry points above.
func Perfect(w sim.Window, spec cif.Spec, b Budget, seed int64) (Result, error) {
	m, err := cif.New(spec)
	if err != nil {
		return Result{}, err
	}
	return perfectRun(m, w, b, seed)
}

func perfectRun(m sim.Interaction, w sim.Window, b Budget, seed int64) (Result, error) {
	res, err := perfect.Sample(m, w, b.config(seed))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Coords: sim.Flatten(res.Points),
		Status: res.Status,
		Diagnostics: Diagnostics{
			Events:          res.Events,
			Doublings:       res.Doublings,
			DominatingCount: res.DominatingCount,
		},
	}, nil
}

// MetropolisRequest bundles the inputs of a Metropolis call.
type MetropolisRequest struct {
	Model  cif.Spec
	Window sim.Window
	Config mh.Config
}

// Metropolis runs the generic MH sampler for any supported model.
func Metropolis(req MetropolisRequest) (Result, error) {
	m, err := cif.New(req.Model)
	if err != nil {
		return Result{}, err
	}
	res, err := mh.Run(m, req.Window, req.Config)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Coords: sim.Flatten(res.Points),
		Status: res.Status,
		Diagnostics: Diagnostics{
			Iterations:       res.Iterations,
			Moves:            res.Stats,
			FinalTemperature: res.FinalTemperature,
		},
	}, nil
}
