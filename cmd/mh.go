package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gibbs-sim/gibbs-sim/sim/engine"
	"github.com/gibbs-sim/gibbs-sim/sim/scenario"
)

var (
	// CLI flags for Metropolis-Hastings
	iterations   int       // Number of proposals
	shiftRadius  float64   // Half-width of the shift proposal (0 = default)
	fixedCount   bool      // Condition on the number of points (shift moves only)
	periodic     bool      // Toroidal distances and wrapped shifts
	moveWeights  []float64 // birth,death,shift
	scheduleKind string    // Annealing schedule
	tempStart    float64   // Initial temperature
	tempEnd      float64   // Final temperature
)

// mhCmd runs the Metropolis-Hastings sampler
var mhCmd = &cobra.Command{
	Use:   "mh",
	Short: "Run the birth-death-shift Metropolis-Hastings sampler",
	Run: func(cmd *cobra.Command, args []string) {
		s, loaded := loadScenario(scenario.SamplerMH)
		applyCommonFlags(cmd, s, loaded)
		applyModelFlags(cmd, s, loaded)
		applyMHFlags(cmd, s, loaded)
		validateScenario(s)

		spec, err := s.CifSpec()
		if err != nil {
			logrus.Fatalf("Invalid model: %v", err)
		}
		cfg := s.MHConfig()
		cfg.Trace = s.TraceValue()

		start := time.Now()
		res, err := engine.Metropolis(engine.MetropolisRequest{Model: spec, Window: s.WindowValue(), Config: cfg})
		if err != nil {
			logrus.Fatalf("Metropolis-Hastings failed: %v", err)
		}
		elapsed := time.Since(start)

		logrus.Infof("%s: %d iterations, %d points, final temperature %.4g",
			spec.Model, res.Diagnostics.Iterations, res.N(), res.Diagnostics.FinalTemperature)
		report(scenario.SamplerMH, s.Model.Name, s.Seed, res, cfg.Trace, elapsed)
	},
}

// applyMHFlags merges the sampler flags into s.
func applyMHFlags(cmd *cobra.Command, s *scenario.Scenario, loaded bool) {
	if s.MH == nil {
		s.MH = &scenario.MHSpec{}
	}
	m := s.MH
	if useFlag(cmd, loaded, "iterations") {
		m.Iterations = iterations
	}
	if useFlag(cmd, loaded, "shift-radius") {
		m.ShiftRadius = shiftRadius
	}
	if useFlag(cmd, loaded, "fixed-count") {
		m.FixedCount = fixedCount
	}
	if useFlag(cmd, loaded, "periodic") {
		m.Periodic = periodic
	}
	if useFlag(cmd, loaded, "moves") {
		if len(moveWeights) != 3 {
			logrus.Fatalf("--moves needs 3 values birth,death,shift, got %d", len(moveWeights))
		}
		m.Moves = &scenario.MovesSpec{Birth: moveWeights[0], Death: moveWeights[1], Shift: moveWeights[2]}
	}
	if useFlag(cmd, loaded, "schedule") || useFlag(cmd, loaded, "temp-start") || useFlag(cmd, loaded, "temp-end") {
		if m.Schedule == nil {
			m.Schedule = &scenario.ScheduleSpec{}
		}
		if useFlag(cmd, loaded, "schedule") {
			m.Schedule.Kind = scheduleKind
		}
		if useFlag(cmd, loaded, "temp-start") {
			m.Schedule.Start = tempStart
		}
		if useFlag(cmd, loaded, "temp-end") {
			m.Schedule.End = tempEnd
		}
	}
}

func init() {
	addRunFlags(mhCmd)
	addModelFlags(mhCmd)
	mhCmd.Flags().IntVar(&iterations, "iterations", 10000, "Number of Metropolis-Hastings proposals")
	mhCmd.Flags().Float64Var(&shiftRadius, "shift-radius", 0, "Half-width of the shift proposal (0 = 10% of the shorter window side)")
	mhCmd.Flags().BoolVar(&fixedCount, "fixed-count", false, "Keep the number of points fixed (shift moves only)")
	mhCmd.Flags().BoolVar(&periodic, "periodic", false, "Use toroidal distances and wrap shifted points")
	mhCmd.Flags().Float64SliceVar(&moveWeights, "moves", []float64{1, 1, 1}, "Relative proposal weights birth,death,shift")
	mhCmd.Flags().StringVar(&scheduleKind, "schedule", "none", "Annealing schedule (none, linear, geometric)")
	mhCmd.Flags().Float64Var(&tempStart, "temp-start", 1, "Initial annealing temperature")
	mhCmd.Flags().Float64Var(&tempEnd, "temp-end", 1, "Final annealing temperature")

	rootCmd.AddCommand(mhCmd)
}
