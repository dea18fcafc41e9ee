package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gibbs-sim/gibbs-sim/sim/scenario"
)

var (
	// CLI flags shared by every sampling command
	seed         int64     // Seed for the run's random streams
	logLevel     string    // Log verbosity level
	scenarioPath string    // Optional YAML scenario; changed flags override it
	outputPath   string    // JSON result file ("" = stdout)
	metricsPath  string    // Prometheus textfile ("" = disabled)
	windowBounds []float64 // xmin,xmax,ymin,ymax
	traceLevel   string    // Decision trace level
	traceStride  int       // Keep one MH move record per stride

	// CLI flags for the interaction model
	modelName  string  // Short CIF name (see `gibbs-sim models`)
	beta       float64 // First-order intensity
	gamma      float64 // Interaction parameter
	radius     float64 // Interaction radius
	hardcore   float64 // Hard-core distance (hardcore, straush)
	delta      float64 // Hard-core distance (diggra, dgs)
	rho        float64 // Outer radius (diggra, dgs)
	kappaShape float64 // Shape exponent (diggra, dgs)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gibbs-sim",
	Short: "Simulator for planar pairwise-interaction point processes",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario returns the --scenario file, or a fresh scenario for the
// given sampler. loaded reports whether a file was read.
func loadScenario(sampler string) (s *scenario.Scenario, loaded bool) {
	if scenarioPath == "" {
		return &scenario.Scenario{Version: "1", Sampler: sampler}, false
	}
	s, err := scenario.Load(scenarioPath)
	if err != nil {
		logrus.Fatalf("Failed to load scenario %s: %v", scenarioPath, err)
	}
	if s.Sampler != sampler {
		logrus.Fatalf("Scenario %s is for sampler %q, not %q", scenarioPath, s.Sampler, sampler)
	}
	logrus.Infof("Loaded scenario %s", scenarioPath)
	return s, true
}

// useFlag reports whether the named flag should set its scenario field:
// always without a scenario file, otherwise only when given explicitly.
func useFlag(cmd *cobra.Command, loaded bool, name string) bool {
	return !loaded || cmd.Flags().Changed(name)
}

// applyCommonFlags merges the seed, window and trace flags into s.
func applyCommonFlags(cmd *cobra.Command, s *scenario.Scenario, loaded bool) {
	if useFlag(cmd, loaded, "seed") {
		s.Seed = seed
	}
	if useFlag(cmd, loaded, "window") {
		if len(windowBounds) != 4 {
			logrus.Fatalf("--window needs 4 values xmin,xmax,ymin,ymax, got %d", len(windowBounds))
		}
		s.Window = &scenario.WindowSpec{XMin: windowBounds[0], XMax: windowBounds[1], YMin: windowBounds[2], YMax: windowBounds[3]}
	}
	if useFlag(cmd, loaded, "trace-level") || useFlag(cmd, loaded, "trace-stride") {
		if s.Trace == nil {
			s.Trace = &scenario.TraceSpec{}
		}
		if useFlag(cmd, loaded, "trace-level") {
			s.Trace.Level = traceLevel
		}
		if useFlag(cmd, loaded, "trace-stride") {
			s.Trace.MoveStride = traceStride
		}
	}
}

// applyModelFlags merges the CIF flags into s.
func applyModelFlags(cmd *cobra.Command, s *scenario.Scenario, loaded bool) {
	if s.Model == nil {
		s.Model = &scenario.ModelSpec{}
	}
	m := s.Model
	fields := []struct {
		flag string
		set  func()
	}{
		{"model", func() { m.Name = modelName }},
		{"beta", func() { m.Beta = beta }},
		{"gamma", func() { m.Gamma = gamma }},
		{"r", func() { m.R = radius }},
		{"hc", func() { m.HC = hardcore }},
		{"delta", func() { m.Delta = delta }},
		{"rho", func() { m.Rho = rho }},
		{"kappa", func() { m.Kappa = kappaShape }},
	}
	for _, f := range fields {
		if useFlag(cmd, loaded, f.flag) {
			f.set()
		}
	}
}

// validateScenario aborts on any configuration error.
func validateScenario(s *scenario.Scenario) {
	if err := s.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
}

// addModelFlags registers the CIF flags on c.
func addModelFlags(c *cobra.Command) {
	c.Flags().StringVar(&modelName, "model", "strauss", "Interaction model (strauss, straush, hardcore, diggra, penttinen, dgs)")
	c.Flags().Float64Var(&beta, "beta", 100, "First-order intensity")
	c.Flags().Float64Var(&gamma, "gamma", 0.5, "Interaction parameter (strauss, straush, penttinen, dgs)")
	c.Flags().Float64Var(&radius, "r", 0.05, "Interaction radius (strauss, straush, penttinen, dgs)")
	c.Flags().Float64Var(&hardcore, "hc", 0, "Hard-core distance (hardcore, straush)")
	c.Flags().Float64Var(&delta, "delta", 0, "Hard-core distance (diggra, dgs)")
	c.Flags().Float64Var(&rho, "rho", 0, "Outer interaction radius (diggra, dgs)")
	c.Flags().Float64Var(&kappaShape, "kappa", 0, "Shape exponent (diggra, dgs)")
}

// addRunFlags registers the flags every sampling command shares.
func addRunFlags(c *cobra.Command) {
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for the run's random streams")
	c.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file; explicitly set flags override it")
	c.Flags().StringVar(&outputPath, "output", "", "Write the JSON result to this file instead of stdout")
	c.Flags().StringVar(&metricsPath, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	c.Flags().Float64SliceVar(&windowBounds, "window", []float64{0, 1, 0, 1}, "Observation window xmin,xmax,ymin,ymax")
	c.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
	c.Flags().IntVar(&traceStride, "trace-stride", 1, "Keep one MH move record out of every N iterations")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
