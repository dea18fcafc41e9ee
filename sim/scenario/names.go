package scenario

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// modelNames maps the short CIF names used in scenario files and on the
// command line to models.
var modelNames = map[string]sim.Model{
	"strauss":   sim.ModelStrauss,
	"straush":   sim.ModelStraussHard,
	"hardcore":  sim.ModelHardcore,
	"diggra":    sim.ModelDiggleGratton,
	"penttinen": sim.ModelPenttinen,
	"dgs":       sim.ModelDGS,
}

// ParseModel resolves a short CIF name (case-insensitive).
func ParseModel(name string) (sim.Model, error) {
	m, ok := modelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown model %q; valid: %s: %w", name, strings.Join(ModelNames(), ", "), sim.ErrInvalidParameters)
	}
	return m, nil
}

// ModelName is the short name of m, or "" for an undeclared model.
func ModelName(m sim.Model) string {
	for name, v := range modelNames {
		if v == m {
			return name
		}
	}
	return ""
}

// ModelNames lists the short names in sorted order.
func ModelNames() []string {
	names := make([]string, 0, len(modelNames))
	for name := range modelNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
