// Package sim provides the production sequencing and capacity simulation engine
// for the glass factory.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - order.go: Order model, priorities and due dates
//   - classifier.go and batch.go: urgency tiers and same-material batches
//   - sequencer.go: the global processing sequence handed to the simulator
//   - simulator.go: the day-by-day station occupancy walk
//
// # Architecture
//
// The sim package defines the data model and the pure pipeline stages; the
// orchestration and analysis layers live in sub-packages:
//   - sim/planner/: Engine that re-runs classify → sequence → simulate per query,
//     forecast and impact (counterfactual) queries
//   - sim/risk/: closed-form critical ratio, queue snapshots, bottlenecks and
//     recommendations
//   - sim/trace/: sequencing decision trace
//
// # Key Interfaces
//
//   - DataSource: the external record store (orders, production progress, capacities)
//   - Sequencer: order the pending set into one global processing sequence
//
// Station capacities are never held in package state. A StationRegistry memoizes
// them until Invalidate is called, and each pipeline pass works on an immutable
// Stations snapshot.
package sim
