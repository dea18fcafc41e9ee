package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gibbs-sim/gibbs-sim/sim/engine"
	"github.com/gibbs-sim/gibbs-sim/sim/scenario"
)

var (
	// CLI flags for exact sampling
	maxDoublings   int // Horizon doublings after the first attempt
	initialHorizon int // Backward events of the first attempt
	maxEvents      int // Hard cap on the horizon (0 = none)
)

// perfectCmd draws one exact realization by dominated coupling from the past
var perfectCmd = &cobra.Command{
	Use:   "perfect",
	Short: "Draw an exact sample by dominated coupling from the past",
	Run: func(cmd *cobra.Command, args []string) {
		s, loaded := loadScenario(scenario.SamplerPerfect)
		applyCommonFlags(cmd, s, loaded)
		applyModelFlags(cmd, s, loaded)
		if useFlag(cmd, loaded, "max-doublings") || useFlag(cmd, loaded, "initial-horizon") || useFlag(cmd, loaded, "max-events") {
			if s.Perfect == nil {
				b := engine.DefaultBudget
				s.Perfect = &scenario.PerfectSpec{MaxDoublings: b.MaxDoublings, InitialHorizon: b.InitialHorizon}
			}
			if useFlag(cmd, loaded, "max-doublings") {
				s.Perfect.MaxDoublings = maxDoublings
			}
			if useFlag(cmd, loaded, "initial-horizon") {
				s.Perfect.InitialHorizon = initialHorizon
			}
			if useFlag(cmd, loaded, "max-events") {
				s.Perfect.MaxEvents = maxEvents
			}
		}
		validateScenario(s)

		spec, err := s.CifSpec()
		if err != nil {
			logrus.Fatalf("Invalid model: %v", err)
		}
		budget := s.Budget()
		budget.Trace = s.TraceValue()

		start := time.Now()
		res, err := engine.Perfect(s.WindowValue(), spec, budget, s.Seed)
		if err != nil {
			logrus.Fatalf("Exact sampling failed: %v", err)
		}
		elapsed := time.Since(start)

		logrus.Infof("%s: status %s after %d events (%d doublings), %d points",
			spec.Model, res.Status, res.Diagnostics.Events, res.Diagnostics.Doublings, res.N())
		report(scenario.SamplerPerfect, s.Model.Name, s.Seed, res, budget.Trace, elapsed)
	},
}

func init() {
	addRunFlags(perfectCmd)
	addModelFlags(perfectCmd)
	perfectCmd.Flags().IntVar(&maxDoublings, "max-doublings", engine.DefaultBudget.MaxDoublings, "Maximum number of horizon doublings")
	perfectCmd.Flags().IntVar(&initialHorizon, "initial-horizon", engine.DefaultBudget.InitialHorizon, "Backward events in the first coupling attempt")
	perfectCmd.Flags().IntVar(&maxEvents, "max-events", 0, "Cap on the backward horizon in events (0 = no cap)")

	rootCmd.AddCommand(perfectCmd)
}
