// Package sim provides the core types of the Gibbs point-process engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - interaction.go: the Interaction interface every model implements, and
//     the energy form of the conditional intensity
//   - configuration.go: the point set samplers mutate, with its neighbour grid
//   - rng.go: seed partitioning and the counter-based event stream
//
// # Architecture
//
// The sim package defines interfaces and bridge types; implementations live in
// sub-packages:
//   - sim/cif/: the conditional intensity functions (Strauss, Hardcore, ...)
//   - sim/perfect/: exact sampling by dominated coupling from the past
//   - sim/mh/: birth-death-shift Metropolis-Hastings with annealing
//   - sim/engine/: the typed entry points callers use
//   - sim/scenario/: YAML run descriptions
//   - sim/trace/: decision trace recording
//   - sim/cluster/, sim/discrete/: standalone variate generators
//
// # Key Interfaces
//
//   - Interaction: local energy of a candidate point against a configuration,
//     interaction range, and the dominating rate used by exact sampling
package sim
