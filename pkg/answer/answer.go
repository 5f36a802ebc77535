package answer

import (
	"slices"

	"github.com/cloudpine/rubbertree/pkg/types"
)

// Set is an ordered answer set of endpoints, sorted ascending by record
// value and deduplicated by value. A Set lowers to one "leaf" DNS record
// entry plus, when its members carry more than one distinct health check,
// a chain of alias entries expressing a logical AND of those checks.
type Set struct {
	endpoints []types.Endpoint
}

// New creates a Set containing the given endpoints. Duplicate values are
// dropped.
func New(endpoints ...types.Endpoint) *Set {
	s := &Set{}
	s.AddAll(endpoints)
	return s
}

// Add inserts an endpoint in sorted position. It reports false if an
// endpoint with the same value is already present.
func (s *Set) Add(endpoint types.Endpoint) bool {
	i, found := slices.BinarySearchFunc(s.endpoints, endpoint, types.Endpoint.Compare)
	if found {
		return false
	}
	s.endpoints = slices.Insert(s.endpoints, i, endpoint)
	return true
}

// AddAll inserts each endpoint in turn, skipping duplicates.
func (s *Set) AddAll(endpoints []types.Endpoint) {
	for _, endpoint := range endpoints {
		s.Add(endpoint)
	}
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.endpoints)
}

// Endpoints returns the members in ascending value order.
func (s *Set) Endpoints() []types.Endpoint {
	return slices.Clone(s.endpoints)
}

// ToRecords lowers the answer set to an ordered list of DNS record
// entries for the given zone, name, type and TTL.
//
// The first entry is always the "leafnode": a weight-1 entry carrying the
// member record values sorted ascending. When the members reference a
// single distinct health check it is bound directly to the leaf and the
// leaf is the only entry.
//
// When the members reference h > 1 distinct health checks, the DNS
// product only binds one health check per entry, so the remaining h-1
// checks are expressed as a chain of alias entries. Each alias consumes
// one health check, renames the previous entry node under a checksum
// prefix and targets it with health evaluation enabled. The final emitted
// entry carries the requested name and is the reachable entry node; the
// entries must be provisioned in the returned order so that alias targets
// always refer to already-installed names.
func (s *Set) ToRecords(zoneID, name, recordType string, ttl int64) []types.RecordEntry {
	// Distinct health check ids in ascending order. The leaf takes the
	// first alphabetical id, not the id of the smallest member value.
	var healthCheckIDs []string
	for _, endpoint := range s.endpoints {
		healthCheckIDs = append(healthCheckIDs, endpoint.HealthCheckIDs...)
	}
	slices.Sort(healthCheckIDs)
	healthCheckIDs = slices.Compact(healthCheckIDs)

	values := make([]string, len(s.endpoints))
	for i, endpoint := range s.endpoints {
		values[i] = endpoint.Value
	}

	leaf := types.RecordEntry{
		Name:          name,
		Type:          recordType,
		TTL:           ttl,
		Weight:        1,
		SetIdentifier: "leafnode",
		Values:        values,
	}

	remaining := healthCheckIDs
	if len(remaining) > 0 {
		leaf.HealthCheckID = remaining[0]
		remaining = remaining[1:]
	}

	entries := []types.RecordEntry{leaf}

	// Chain one alias per remaining health check. Each alias inherits the
	// entry-node identity, then the old entry node is renamed under a
	// checksum of its data-bearing fields and becomes the alias target.
	for _, healthCheckID := range remaining {
		entry := &entries[len(entries)-1]
		sum := Checksum(*entry)
		targetName := sum + "." + entry.Name

		alias := types.RecordEntry{
			Name:          entry.Name,
			Type:          entry.Type,
			Weight:        entry.Weight,
			HealthCheckID: healthCheckID,
			SetIdentifier: "Alias to " + sum,
			Alias: &types.AliasTarget{
				DNSName:              targetName,
				HostedZoneID:         zoneID,
				EvaluateTargetHealth: true,
			},
		}

		entry.Name = targetName
		entries = append(entries, alias)
	}

	return entries
}
