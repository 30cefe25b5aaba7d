// Package sim provides the tick-driven fuel logistics simulation core.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - container.go: FuelContainer volume accounting and reservations
//   - order.go: ClientOrder countdown (pending → appeared → served) and fuel choice
//   - station.go: GasStation tick, order serving and refill evaluation
//   - tanker.go: Tanker delivery phases (idle → en_route → unloading → returning)
//   - dispatch.go: assignment of refill requests to existing or newly bought tankers
//   - simulator.go: the world aggregate and the fixed per-tick order
//
// # Determinism
//
// All randomness flows through RandomSource values handed out by a
// PartitionedRNG keyed by the run seed: one stream per station and one shared
// by the tanker pool. The same seed and FleetConfig reproduce the same run.
//
// # Errors
//
// Contract violations (see errors.go) panic with a wrapped sentinel error.
// They signal bugs in the caller, not conditions to recover from.
//
// Sub-packages:
//   - sim/trace/: assignment and delivery trace recording
//   - sim/telemetry/: Prometheus exposition of fleet snapshots
package sim
