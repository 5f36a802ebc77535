package rubbertree

import (
	"errors"
	"slices"
	"time"

	"github.com/cloudpine/rubbertree/pkg/answer"
	"github.com/cloudpine/rubbertree/pkg/lattice"
	"github.com/cloudpine/rubbertree/pkg/metrics"
	"github.com/cloudpine/rubbertree/pkg/sublist"
	"github.com/cloudpine/rubbertree/pkg/types"
)

// MaxRecordsPerEntry is the largest number of record values the
// downstream DNS product accepts in one entry.
const MaxRecordsPerEntry = 8

// ErrTooManyRecords is returned when recordsPerEntry exceeds
// MaxRecordsPerEntry.
var ErrTooManyRecords = errors.New("rubber tree supports 8 or fewer records per record set")

// Vulcanize pre-computes the full ordered DNS plan for a lattice: a
// primary weighted layer of resilient answers covering every
// single-endpoint failure, plus a zero-weighted secondary tree covering
// the failure of each dimension value. A single-cell lattice gets the flat
// plan of VulcanizeEndpoints only, with no secondary tree. The returned
// entries must be provisioned in order, as later entries alias the names
// of earlier ones.
func Vulcanize(zoneID, name, recordType string, ttl int64, l *lattice.Lattice, recordsPerEntry int) ([]types.RecordEntry, error) {
	start := time.Now()

	coordinates := l.AllCoordinates()

	// A one-by-one lattice is a special case.
	if len(coordinates) == 1 {
		vulcanized, err := VulcanizeEndpoints(zoneID, name, recordType, ttl, l.AllEndpoints(), recordsPerEntry)
		if err != nil {
			return nil, err
		}
		observePlan(vulcanized, start)
		return vulcanized, nil
	}

	// Sorted by coordinate arity; every coordinate shares the lattice
	// arity, so this is a stable no-op reserved for mixed-arity layouts.
	slices.SortStableFunc(coordinates, func(a, b []string) int {
		return len(a) - len(b)
	})

	// Splice each cell's endpoints into the combined order at evenly
	// spaced positions, so overlapping slices naturally mix cells.
	var spliced []types.Endpoint
	for _, coordinate := range coordinates {
		endpoints, err := l.EndpointsForSector(coordinate)
		if err != nil {
			return nil, err
		}
		step := (len(spliced) + len(endpoints)) / len(endpoints)
		for i, endpoint := range endpoints {
			spliced = slices.Insert(spliced, i*step, endpoint)
		}
	}

	vulcanized, err := VulcanizeEndpoints(zoneID, name, recordType, ttl, spliced, recordsPerEntry)
	if err != nil {
		return nil, err
	}

	// The zero-weighted endpoint-failure fallbacks become the primary
	// answers of the secondary level.
	secondaryName := "secondary." + name
	for i := range vulcanized {
		if vulcanized[i].Weight == 0 {
			vulcanized[i].Name = secondaryName
			vulcanized[i].Weight = 1
		}
	}

	// Simulate a failure of each value of each dimension in turn and hang
	// a flat sub-tree of the survivors off the secondary level.
	for _, dimensionName := range l.DimensionNames() {
		values, err := l.DimensionValues(dimensionName)
		if err != nil {
			return nil, err
		}
		for _, value := range values {
			subTreePrefix := truncate(dimensionName, 30) + "-" + truncate(value, 30)
			subTreeName := subTreePrefix + "." + secondaryName

			survivors, err := l.SimulateFailure(dimensionName, value)
			if err != nil {
				return nil, err
			}
			subTree, err := VulcanizeEndpoints(zoneID, subTreeName, recordType, ttl, survivors.AllEndpoints(), recordsPerEntry)
			if err != nil {
				return nil, err
			}
			vulcanized = append(vulcanized, subTree...)

			vulcanized = append(vulcanized, types.RecordEntry{
				Name:          secondaryName,
				Type:          recordType,
				Weight:        0,
				SetIdentifier: subTreePrefix,
				Alias: &types.AliasTarget{
					DNSName:              subTreeName,
					HostedZoneID:         zoneID,
					EvaluateTargetHealth: true,
				},
			})
		}
	}

	// Finally, route the root name to the secondary level when every
	// primary answer is unhealthy.
	vulcanized = append(vulcanized, types.RecordEntry{
		Name:          name,
		Type:          recordType,
		Weight:        0,
		SetIdentifier: "secondary for " + name,
		Alias: &types.AliasTarget{
			DNSName:              secondaryName,
			HostedZoneID:         zoneID,
			EvaluateTargetHealth: true,
		},
	})

	observePlan(vulcanized, start)
	return vulcanized, nil
}

// VulcanizeEndpoints pre-computes the ordered DNS plan for a flat
// endpoint list: answers that cover the failure of any single endpoint,
// without a secondary tree.
func VulcanizeEndpoints(zoneID, name, recordType string, ttl int64, endpoints []types.Endpoint, recordsPerEntry int) ([]types.RecordEntry, error) {
	if recordsPerEntry > MaxRecordsPerEntry {
		return nil, ErrTooManyRecords
	}

	var entries []types.RecordEntry

	if len(endpoints) > recordsPerEntry {
		// More records than fit in one entry. Construct a pseudo-ring by
		// appending the head of the list to the tail, then emit one
		// answer per overlapping slice: every endpoint's failure leaves
		// at least one fully healthy slice.
		ring := slices.Clone(endpoints)
		ring = append(ring, ring[:recordsPerEntry-1]...)

		for i := range endpoints {
			set := answer.New(ring[i : i+recordsPerEntry]...)
			entries = append(entries, set.ToRecords(zoneID, name, recordType, ttl)...)
		}

		return entries, nil
	}

	// Everything fits in one entry. Emit the full answer as the primary,
	// then one zero-weighted fallback answer per size-(recordsPerEntry-1)
	// sublist; with exactly recordsPerEntry endpoints that is one per
	// possible single-record failure.
	set := answer.New(endpoints...)
	entries = append(entries, set.ToRecords(zoneID, name, recordType, ttl)...)

	gen, err := sublist.New(endpoints, recordsPerEntry-1)
	if err != nil {
		return nil, err
	}
	for {
		fragment, ok := gen.Next()
		if !ok {
			break
		}
		set := answer.New(fragment...)
		records := set.ToRecords(zoneID, name, recordType, ttl)
		records[len(records)-1].Weight = 0
		entries = append(entries, records...)
	}

	return entries, nil
}

func observePlan(entries []types.RecordEntry, start time.Time) {
	metrics.PlansVulcanized.Inc()
	metrics.RecordEntriesEmitted.Add(float64(len(entries)))
	metrics.VulcanizeDuration.Observe(time.Since(start).Seconds())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
