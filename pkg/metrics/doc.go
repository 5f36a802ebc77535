/*
Package metrics exposes Prometheus collectors for plan production, shard
assignment and fragment ledger activity. Collectors are registered at
package load; the embedding application mounts Handler() wherever it
serves metrics.
*/
package metrics
