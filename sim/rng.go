package sim

import (
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical point patterns.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemPerfect is the RNG subsystem for the dominated CFTP sampler.
	SubsystemPerfect = "perfect"

	// SubsystemMetropolis is the RNG subsystem for the Metropolis-Hastings sampler.
	SubsystemMetropolis = "metropolis"

	// SubsystemCluster is the RNG subsystem for cluster-process generators.
	SubsystemCluster = "cluster"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewPCG(p.SubsystemSeed(name), 0))
	p.subsystems[name] = rng
	return rng
}

// SubsystemSeed returns the derived 64-bit seed for the named subsystem.
func (p *PartitionedRNG) SubsystemSeed(name string) uint64 {
	return uint64(int64(p.key) ^ fnv1a64(name))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === EventStream ===

// EventStream is a counter-based random stream: every event index owns an
// independent sub-stream, so values for index k can be regenerated at any
// time and drawing more indices never perturbs the ones already drawn.
//
// The *rand.Rand returned by At shares one PCG source; it is only valid
// until the next call to At.
//
// Thread-safety: NOT thread-safe.
type EventStream struct {
	seed uint64
	pcg  *rand.PCG
	rng  *rand.Rand
}

// NewEventStream creates a stream from a subsystem seed.
func NewEventStream(seed uint64) *EventStream {
	pcg := rand.NewPCG(seed, 0)
	return &EventStream{seed: seed, pcg: pcg, rng: rand.New(pcg)}
}

// At positions the stream at the start of event k's sub-stream.
func (s *EventStream) At(k uint64) *rand.Rand {
	s.pcg.Seed(s.seed, mix64(k))
	return s.rng
}

// Source returns the underlying source, positioned wherever the last At left it.
func (s *EventStream) Source() rand.Source {
	return s.pcg
}

// mix64 is the splitmix64 finalizer. Adjacent event indices map to
// distinct PCG start states.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
