package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// RandomSource is the only randomness the simulation core consumes.
// *rand.Rand satisfies it; tests inject scripted sources.
type RandomSource interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical fleet configuration
// MUST produce identical snapshots at every tick.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemTankers is the RNG subsystem shared by every tanker (arrival times).
	SubsystemTankers = "tankers"
)

// SubsystemStation returns the subsystem name for station N.
// Each station draws its client orders from its own stream, so adding a station
// to the fleet does not perturb the orders of the others.
func SubsystemStation(id int) string {
	return fmt.Sprintf("stations/%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from the simulation goroutine.
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
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
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

// IntRange is a half-open integer interval [Min, Max).
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Draw returns a uniform value in [Min, Max).
func (r IntRange) Draw(rng RandomSource) int {
	return r.Min + rng.Intn(r.Max-r.Min)
}

// Valid reports whether the range is non-empty.
func (r IntRange) Valid() bool {
	return r.Max > r.Min
}

func (r IntRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Min, r.Max)
}
