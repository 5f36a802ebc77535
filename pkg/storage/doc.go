/*
Package storage provides persistence for shard state: the fragment ledger
and shard assignment records.

The storage package implements the Store interface using BoltDB as the
underlying database. Fragments are stored as opaque canonical keys;
assignments are serialized as JSON. Each concern gets its own bucket:

	fragments    canonical fragment -> save timestamp
	assignments  assignment id      -> ShardAssignment JSON

Transaction model follows BoltDB: db.View for reads (concurrent,
snapshot-isolated) and db.Update for writes (serialized, fsynced on
commit). A fragment saved by a committed transaction is therefore visible
to every later search on the same store.

BoltDB serializes writers within one process. Multiple processes
assigning shards against a shared overlap budget need either external
serialization of whole ShuffleShard calls or a ledger backend with
transactional semantics over the fragment key; this package does not
provide the latter.

MemoryStore is a map-backed implementation for tests and single-process
use.
*/
package storage
