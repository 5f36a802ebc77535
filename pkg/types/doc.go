/*
Package types defines the shared value types for the rubbertree planner.

Endpoint carries opaque DNS record data plus zero or more health check ids.
Endpoints are ordered and compared by their record data only, so a
health-checked endpoint and a plain endpoint flow through the same
containers and pipelines.

RecordEntry is the output contract: one entry of an ordered DNS
provisioning plan. A plan is a list of RecordEntry values that an external
DNS provisioning client applies in order. Later entries may reference the
names of earlier ones through alias targets, so order is load-bearing.

ShardAssignment is the audit record produced when a caller identity is
assigned a shuffle shard.
*/
package types
