package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/scenario"
)

var (
	// CLI flags for cluster processes
	clusterProcess string  // Offspring kernel
	clusterKappa   float64 // Parent intensity
	clusterMu      float64 // Mean offspring per parent
	clusterScale   float64 // sigma, r or eta depending on the kernel
	offspringOnly  bool    // Omit parents from the output
)

// clusterCmd generates a Neyman-Scott cluster process
var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Generate a Thomas, Matern or Cauchy cluster process",
	Run: func(cmd *cobra.Command, args []string) {
		s, loaded := loadScenario(scenario.SamplerCluster)
		applyCommonFlags(cmd, s, loaded)
		if s.Cluster == nil {
			s.Cluster = &scenario.ClusterSpec{}
		}
		c := s.Cluster
		if useFlag(cmd, loaded, "process") {
			c.Process = clusterProcess
		}
		if useFlag(cmd, loaded, "parents") {
			c.Kappa = clusterKappa
		}
		if useFlag(cmd, loaded, "mu") {
			c.Mu = clusterMu
		}
		if useFlag(cmd, loaded, "scale") {
			c.Scale = clusterScale
		}
		if useFlag(cmd, loaded, "offspring-only") {
			c.OffspringOnly = offspringOnly
		}
		validateScenario(s)

		proc, err := s.ClusterProcess()
		if err != nil {
			logrus.Fatalf("Invalid cluster process: %v", err)
		}
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(s.Seed)).ForSubsystem(sim.SubsystemCluster)

		start := time.Now()
		parents, offspring, err := proc.Generate(s.WindowValue(), rng)
		if err != nil {
			logrus.Fatalf("Cluster generation failed: %v", err)
		}
		elapsed := time.Since(start)
		logrus.Infof("%s: %d parents, %d offspring in window", proc.Name(), len(parents), len(offspring))

		out := newRunOutput(scenario.SamplerCluster, proc.Name(), s.Seed, sim.StatusSuccess, offspring, elapsed)
		if !c.OffspringOnly {
			out.Parents = pairs(parents)
		}
		if err := writeOutput(out, outputPath); err != nil {
			logrus.Fatalf("Failed to write output: %v", err)
		}
		metrics := newRunMetrics()
		metrics.observe(out, elapsed)
		if err := metrics.write(metricsPath); err != nil {
			logrus.Fatalf("Failed to write metrics: %v", err)
		}
	},
}

func init() {
	addRunFlags(clusterCmd)
	clusterCmd.Flags().StringVar(&clusterProcess, "process", "thomas", "Offspring kernel (thomas, matern, cauchy)")
	clusterCmd.Flags().Float64Var(&clusterKappa, "parents", 10, "Intensity of the parent process")
	clusterCmd.Flags().Float64Var(&clusterMu, "mu", 5, "Mean number of offspring per parent")
	clusterCmd.Flags().Float64Var(&clusterScale, "scale", 0.05, "Kernel scale: sigma (thomas), radius (matern) or eta (cauchy)")
	clusterCmd.Flags().BoolVar(&offspringOnly, "offspring-only", false, "Omit parents from the output")

	rootCmd.AddCommand(clusterCmd)
}
