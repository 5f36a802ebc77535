/*
Package shard assigns callers to shuffle shards: small sub-lattices of the
endpoint population chosen so that any two callers share only a bounded
number of endpoints.

In traditional sharding an identifier maps to one item out of N, limiting
the blast radius of a poison request or a per-caller overload to 1/N of
the fleet. With shuffle sharding each identifier maps to K items, and a
client that tolerates partial availability (or discovers endpoints through
a health-checked answer tree) reduces the blast radius to roughly
1/(N choose K).

Two implementations are provided:

  - SimpleSignatureSharder derives the shard by salted hashing of the
    caller identifier. It is stateless and deterministic; overlap between
    two shards is probabilistic.
  - StatefulSearchingSharder performs a randomized backtracking search
    constrained by a FragmentLedger, guaranteeing that no two shards it
    ever returns overlap in more than a configured number of endpoints.

Assigner wraps the stateful sharder and records a durable audit entry per
assignment.
*/
package shard
