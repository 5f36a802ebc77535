package types

import (
	"strings"
	"time"
)

// Endpoint is a single service endpoint expressed as DNS record data.
// Value is the opaque record data (e.g. an IP address for an "A" record)
// and acts as the endpoint's identity: two endpoints with equal Value are
// duplicates. HealthCheckIDs associates zero or more health checks with
// the endpoint; the ids do not participate in ordering or equality.
type Endpoint struct {
	Value          string
	HealthCheckIDs []string
}

// NewEndpoint creates an endpoint with no associated health checks.
func NewEndpoint(value string) Endpoint {
	return Endpoint{Value: value}
}

// NewHealthCheckedEndpoint creates an endpoint associated with one or more
// health check ids.
func NewHealthCheckedEndpoint(value string, healthCheckIDs ...string) Endpoint {
	return Endpoint{Value: value, HealthCheckIDs: healthCheckIDs}
}

// HealthChecked reports whether the endpoint carries at least one health
// check id.
func (e Endpoint) HealthChecked() bool {
	return len(e.HealthCheckIDs) > 0
}

// Compare orders endpoints lexicographically by Value only.
func (e Endpoint) Compare(other Endpoint) int {
	return strings.Compare(e.Value, other.Value)
}

// Equal reports whether two endpoints share the same Value.
func (e Endpoint) Equal(other Endpoint) bool {
	return e.Value == other.Value
}

func (e Endpoint) String() string {
	return e.Value
}

// AliasTarget points a record entry at another DNS name instead of
// carrying record data of its own.
type AliasTarget struct {
	DNSName              string `json:"dns_name"`
	HostedZoneID         string `json:"zone_id"`
	EvaluateTargetHealth bool   `json:"evaluate_target_health"`
}

// RecordEntry is one entry in a DNS provisioning plan. Exactly one of the
// two payloads is populated: Values (+TTL, optional HealthCheckID) for a
// data-bearing entry, or Alias for an alias entry. Entries sharing
// (Name, Type) are disambiguated by SetIdentifier.
//
// Weight 0 means "only use if no weight-1 sibling is healthy".
type RecordEntry struct {
	Name          string       `json:"name"`
	Type          string       `json:"type"`
	TTL           int64        `json:"ttl,omitempty"`
	Weight        int64        `json:"weight"`
	SetIdentifier string       `json:"set_identifier"`
	Values        []string     `json:"values,omitempty"`
	HealthCheckID string       `json:"health_check_id,omitempty"`
	Alias         *AliasTarget `json:"alias,omitempty"`
}

// ShardAssignment records that a caller identity was assigned a shuffle
// shard covering the listed endpoint values.
type ShardAssignment struct {
	ID             string    `json:"id"`
	Identifier     string    `json:"identifier"`
	EndpointValues []string  `json:"endpoint_values"`
	CreatedAt      time.Time `json:"created_at"`
}
