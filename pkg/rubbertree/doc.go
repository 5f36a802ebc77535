/*
Package rubbertree turns a lattice of endpoints into an ordered DNS
provisioning plan that keeps a service discoverable through endpoint and
compartment failures.

# Plan structure

The vulcanizer emits three layers for a multi-cell lattice:

	┌──────────────────────── PRIMARY ────────────────────────┐
	│  name: weight-1 answers, one per overlapping slice of   │
	│  the interleaved endpoint ring. Any single endpoint      │
	│  failure leaves healthy slices standing.                 │
	└──────────────────────────┬──────────────────────────────┘
	                           │ weight-0 alias ("secondary for <name>")
	┌──────────────────────── SECONDARY ──────────────────────┐
	│  secondary.name: promoted fallback answers, plus one    │
	│  weight-0 alias per (dimension, value) pair pointing at │
	│  a sub-tree built from SimulateFailure(dimension,value) │
	└─────────────────────────────────────────────────────────┘

A resolver that evaluates health checks and backtracks through weighted
answers walks down this structure at query time: primary answers first,
then the secondary tree that excludes whichever compartment failed.

Answers with several distinct health checks lower to alias chains (see
package answer), so one logical answer may occupy several plan entries.
The plan is deliberately static: it is computed once and installed, and
the resolver does all failure handling at query time.

The emitted order is the provisioning order. Entries must be applied in
order because later entries reference earlier names through alias
targets.
*/
package rubbertree
