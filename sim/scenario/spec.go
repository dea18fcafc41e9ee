// Package scenario loads YAML run descriptions and converts them into
// sampler inputs.
package scenario

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/cif"
	"github.com/gibbs-sim/gibbs-sim/sim/cluster"
	"github.com/gibbs-sim/gibbs-sim/sim/engine"
	"github.com/gibbs-sim/gibbs-sim/sim/mh"
	"github.com/gibbs-sim/gibbs-sim/sim/trace"
)

const (
	SamplerPerfect = "perfect"
	SamplerMH      = "mh"
	SamplerCluster = "cluster"
)

// scenarioValidate holds the struct-tag validator. Initialized in init()
// with the "finite" float check.
var scenarioValidate *validator.Validate

func init() {
	scenarioValidate = validator.New()
	_ = scenarioValidate.RegisterValidation("finite", validateFinite)
}

// validateFinite rejects NaN and infinite floats.
func validateFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Scenario is one simulation run. Loaded from YAML via Load(path).
type Scenario struct {
	Version string       `yaml:"version"`
	Seed    int64        `yaml:"seed"`
	Sampler string       `yaml:"sampler" validate:"required,oneof=perfect mh cluster"`
	Window  *WindowSpec  `yaml:"window,omitempty"`
	Model   *ModelSpec   `yaml:"model,omitempty" validate:"required_unless=Sampler cluster"`
	Perfect *PerfectSpec `yaml:"perfect,omitempty"`
	MH      *MHSpec      `yaml:"mh,omitempty" validate:"required_if=Sampler mh"`
	Cluster *ClusterSpec `yaml:"cluster,omitempty" validate:"required_if=Sampler cluster"`
	Trace   *TraceSpec   `yaml:"trace,omitempty"`
}

// WindowSpec is the observation rectangle (default: unit square).
type WindowSpec struct {
	XMin float64 `yaml:"xmin" validate:"finite"`
	XMax float64 `yaml:"xmax" validate:"finite,gtfield=XMin"`
	YMin float64 `yaml:"ymin" validate:"finite"`
	YMax float64 `yaml:"ymax" validate:"finite,gtfield=YMin"`
}

// ModelSpec names a CIF and carries its parameters. Unused fields must be
// left out; model-specific ranges are checked by the cif package.
type ModelSpec struct {
	Name  string  `yaml:"name" validate:"required"`
	Beta  float64 `yaml:"beta" validate:"finite,gt=0"`
	Gamma float64 `yaml:"gamma,omitempty" validate:"finite,gte=0"`
	R     float64 `yaml:"r,omitempty" validate:"finite,gte=0"`
	HC    float64 `yaml:"hc,omitempty" validate:"finite,gte=0"`
	Delta float64 `yaml:"delta,omitempty" validate:"finite,gte=0"`
	Rho   float64 `yaml:"rho,omitempty" validate:"finite,gte=0"`
	Kappa float64 `yaml:"kappa,omitempty" validate:"finite,gte=0"`
}

// PerfectSpec is the exact-sampling budget.
type PerfectSpec struct {
	MaxDoublings   int `yaml:"max_doublings" validate:"gte=0,lte=40"`
	InitialHorizon int `yaml:"initial_horizon,omitempty" validate:"gte=0"`
	MaxEvents      int `yaml:"max_events,omitempty" validate:"gte=0"`
}

// MHSpec configures the Metropolis-Hastings sampler.
type MHSpec struct {
	Iterations  int           `yaml:"iterations" validate:"gte=1"`
	ShiftRadius float64       `yaml:"shift_radius,omitempty" validate:"finite,gte=0"`
	FixedCount  bool          `yaml:"fixed_count,omitempty"`
	Periodic    bool          `yaml:"periodic,omitempty"`
	Moves       *MovesSpec    `yaml:"moves,omitempty"`
	Schedule    *ScheduleSpec `yaml:"schedule,omitempty"`
	Start       [][2]float64  `yaml:"start,omitempty"`
}

// MovesSpec holds relative proposal weights.
type MovesSpec struct {
	Birth float64 `yaml:"birth" validate:"finite,gte=0"`
	Death float64 `yaml:"death" validate:"finite,gte=0"`
	Shift float64 `yaml:"shift" validate:"finite,gte=0"`
}

// ScheduleSpec is the annealing schedule.
type ScheduleSpec struct {
	Kind  string  `yaml:"kind" validate:"omitempty,oneof=none linear geometric"`
	Start float64 `yaml:"start,omitempty" validate:"finite,gte=0"`
	End   float64 `yaml:"end,omitempty" validate:"finite,gte=0"`
}

// ClusterSpec selects a cluster kernel. Scale is sigma (thomas), r
// (matern) or eta (cauchy).
type ClusterSpec struct {
	Process       string  `yaml:"process" validate:"required,oneof=thomas matern cauchy"`
	Kappa         float64 `yaml:"kappa" validate:"finite,gt=0"`
	Mu            float64 `yaml:"mu" validate:"finite,gt=0"`
	Scale         float64 `yaml:"scale" validate:"finite,gt=0"`
	OffspringOnly bool    `yaml:"offspring_only,omitempty"`
}

// TraceSpec enables decision tracing.
type TraceSpec struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=none decisions"`
	MoveStride int    `yaml:"move_stride,omitempty" validate:"gte=0"`
}

// Load reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario from YAML bytes with the same strictness as Load.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.Version == "" {
		s.Version = "1"
	}
	return &s, nil
}

// Validate checks struct-tag ranges, then builds every sampler input so
// model-specific rules are reported before a run starts.
func (s *Scenario) Validate() error {
	if err := scenarioValidate.Struct(s); err != nil {
		return fmt.Errorf("scenario: %v: %w", err, sim.ErrInvalidParameters)
	}
	// Scenarios built in code leave Version empty; Parse defaults it to "1".
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unsupported scenario version %q: %w", s.Version, sim.ErrInvalidParameters)
	}
	if err := s.WindowValue().Validate(); err != nil {
		return err
	}
	switch s.Sampler {
	case SamplerCluster:
		p, err := s.ClusterProcess()
		if err != nil {
			return err
		}
		return p.Validate()
	default:
		spec, err := s.CifSpec()
		if err != nil {
			return err
		}
		if _, err := cif.New(spec); err != nil {
			return fmt.Errorf("model %s: %w", s.Model.Name, err)
		}
	}
	if s.Sampler == SamplerMH {
		cfg := s.MHConfig()
		w := s.WindowValue()
		cfg.ApplyDefaults(w)
		if err := cfg.Validate(w); err != nil {
			return err
		}
	}
	if s.Trace != nil && !trace.IsValidTraceLevel(s.Trace.Level) {
		return fmt.Errorf("unknown trace level %q: %w", s.Trace.Level, sim.ErrInvalidParameters)
	}
	return nil
}

// WindowValue returns the configured window, or the unit square.
func (s *Scenario) WindowValue() sim.Window {
	if s.Window == nil {
		return sim.UnitSquare()
	}
	return sim.Window{XMin: s.Window.XMin, XMax: s.Window.XMax, YMin: s.Window.YMin, YMax: s.Window.YMax}
}

// CifSpec resolves the model block.
func (s *Scenario) CifSpec() (cif.Spec, error) {
	if s.Model == nil {
		return cif.Spec{}, fmt.Errorf("scenario has no model: %w", sim.ErrInvalidParameters)
	}
	m, err := ParseModel(s.Model.Name)
	if err != nil {
		return cif.Spec{}, err
	}
	return cif.Spec{
		Model: m,
		Beta:  s.Model.Beta,
		Gamma: s.Model.Gamma,
		R:     s.Model.R,
		H:     s.Model.HC,
		Delta: s.Model.Delta,
		Rho:   s.Model.Rho,
		Kappa: s.Model.Kappa,
	}, nil
}

// Budget returns the exact-sampling budget (engine defaults when absent).
func (s *Scenario) Budget() engine.Budget {
	if s.Perfect == nil {
		return engine.DefaultBudget
	}
	return engine.Budget{
		MaxDoublings:   s.Perfect.MaxDoublings,
		InitialHorizon: s.Perfect.InitialHorizon,
		MaxEvents:      s.Perfect.MaxEvents,
	}
}

// MHConfig converts the mh block. Defaults are applied by the sampler.
func (s *Scenario) MHConfig() mh.Config {
	cfg := mh.Config{Seed: s.Seed}
	if s.MH == nil {
		return cfg
	}
	cfg.Iterations = s.MH.Iterations
	cfg.ShiftRadius = s.MH.ShiftRadius
	cfg.FixedCount = s.MH.FixedCount
	cfg.Periodic = s.MH.Periodic
	if s.MH.Moves != nil {
		cfg.Moves = mh.MoveWeights{Birth: s.MH.Moves.Birth, Death: s.MH.Moves.Death, Shift: s.MH.Moves.Shift}
	}
	if s.MH.Schedule != nil {
		cfg.Schedule = mh.Schedule{
			Kind:  mh.ScheduleKind(s.MH.Schedule.Kind),
			Start: s.MH.Schedule.Start,
			End:   s.MH.Schedule.End,
		}
	}
	for _, p := range s.MH.Start {
		cfg.Start = append(cfg.Start, sim.Point{X: p[0], Y: p[1]})
	}
	return cfg
}

// ClusterProcess builds the configured cluster kernel.
func (s *Scenario) ClusterProcess() (cluster.Process, error) {
	if s.Cluster == nil {
		return nil, fmt.Errorf("scenario has no cluster block: %w", sim.ErrInvalidParameters)
	}
	c := s.Cluster
	switch c.Process {
	case "thomas":
		return cluster.Thomas{Kappa: c.Kappa, Mu: c.Mu, Sigma: c.Scale}, nil
	case "matern":
		return cluster.Matern{Kappa: c.Kappa, Mu: c.Mu, R: c.Scale}, nil
	case "cauchy":
		return cluster.Cauchy{Kappa: c.Kappa, Mu: c.Mu, Eta: c.Scale}, nil
	default:
		return nil, fmt.Errorf("unknown cluster process %q; valid: thomas, matern, cauchy: %w", c.Process, sim.ErrInvalidParameters)
	}
}

// TraceValue builds the trace collector, or nil when tracing is off.
func (s *Scenario) TraceValue() *trace.SimulationTrace {
	if s.Trace == nil || s.Trace.Level == "" || trace.TraceLevel(s.Trace.Level) == trace.TraceLevelNone {
		return nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{
		Level:      trace.TraceLevel(s.Trace.Level),
		MoveStride: s.Trace.MoveStride,
	})
}
