package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/scenario"
)

// modelParams lists the parameters each model reads, in flag names.
var modelParams = map[sim.Model]string{
	sim.ModelStrauss:       "beta, gamma, r",
	sim.ModelStraussHard:   "beta, gamma, r, hc",
	sim.ModelHardcore:      "beta, hc",
	sim.ModelDiggleGratton: "beta, delta, rho, kappa",
	sim.ModelPenttinen:     "beta, gamma, r",
	sim.ModelDGS:           "beta, delta, rho, kappa, gamma, r",
}

// knownCif reports whether name is a CIF the engine implements.
func knownCif(name string) bool {
	_, err := scenario.ParseModel(name)
	return err == nil
}

// modelsCmd lists the supported interaction models
var modelsCmd = &cobra.Command{
	Use:   "models [name...]",
	Short: "List the supported interaction models, or check names",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", name, knownCif(name))
			}
			return
		}
		for _, name := range scenario.ModelNames() {
			m, _ := scenario.ParseModel(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-14s %s\n", name, m, modelParams[m])
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
