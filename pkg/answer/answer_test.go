package answer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudpine/rubbertree/pkg/types"
)

func TestAddRejectsDuplicates(t *testing.T) {
	s := New()

	assert.True(t, s.Add(types.NewEndpoint("2.2.2.2")))
	assert.True(t, s.Add(types.NewEndpoint("1.1.1.1")))
	assert.False(t, s.Add(types.NewEndpoint("2.2.2.2")))
	assert.Equal(t, 2, s.Len())

	// Members come back sorted ascending by value
	members := s.Endpoints()
	assert.Equal(t, "1.1.1.1", members[0].Value)
	assert.Equal(t, "2.2.2.2", members[1].Value)
}

func TestToRecordsPlainEndpoints(t *testing.T) {
	s := New(
		types.NewEndpoint("3.3.3.3"),
		types.NewEndpoint("1.1.1.1"),
		types.NewEndpoint("2.2.2.2"),
	)

	records := s.ToRecords("Z123", "www.example.com", "A", 60)

	require.Len(t, records, 1)
	leaf := records[0]
	assert.Equal(t, "www.example.com", leaf.Name)
	assert.Equal(t, "A", leaf.Type)
	assert.Equal(t, int64(60), leaf.TTL)
	assert.Equal(t, int64(1), leaf.Weight)
	assert.Equal(t, "leafnode", leaf.SetIdentifier)
	assert.Equal(t, []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"}, leaf.Values)
	assert.Empty(t, leaf.HealthCheckID)
	assert.Nil(t, leaf.Alias)
}

func TestToRecordsSingleHealthCheck(t *testing.T) {
	s := New(
		types.NewHealthCheckedEndpoint("1.1.1.1", "hcid1"),
		types.NewHealthCheckedEndpoint("2.2.2.2", "hcid1"),
	)

	records := s.ToRecords("Z123", "www.example.com", "A", 60)

	require.Len(t, records, 1)
	assert.Equal(t, "hcid1", records[0].HealthCheckID)
}

// TestToRecordsAliasChain covers the three-endpoint alias chain: the
// health check ids are associated in reverse of the value order, and the
// leaf must still receive the first alphabetical id.
func TestToRecordsAliasChain(t *testing.T) {
	s := New(
		types.NewHealthCheckedEndpoint("1.1.1.1", "hcid3"),
		types.NewHealthCheckedEndpoint("2.2.2.2", "hcid2"),
		types.NewHealthCheckedEndpoint("3.3.3.3", "hcid1"),
	)

	records := s.ToRecords("Z123", "www.example.com", "A", 60)
	require.Len(t, records, 3)

	leaf, middle, entry := records[0], records[1], records[2]

	// Leaf: sorted record values, first alphabetical health check,
	// renamed under the checksum of its data
	assert.Equal(t, []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"}, leaf.Values)
	assert.Equal(t, "hcid1", leaf.HealthCheckID)
	assert.Equal(t, "leafnode", leaf.SetIdentifier)
	assert.Regexp(t, regexp.MustCompile(`^-?[0-9a-z]+\.www\.example\.com$`), leaf.Name)

	// Middle alias consumes the next health check and targets the leaf
	require.NotNil(t, middle.Alias)
	assert.Equal(t, "hcid2", middle.HealthCheckID)
	assert.Equal(t, leaf.Name, middle.Alias.DNSName)
	assert.Equal(t, "Z123", middle.Alias.HostedZoneID)
	assert.True(t, middle.Alias.EvaluateTargetHealth)
	assert.Regexp(t, regexp.MustCompile(`^-?[0-9a-z]+\.www\.example\.com$`), middle.Name)

	// The final entry node keeps the requested name
	require.NotNil(t, entry.Alias)
	assert.Equal(t, "www.example.com", entry.Name)
	assert.Equal(t, "hcid3", entry.HealthCheckID)
	assert.Equal(t, middle.Name, entry.Alias.DNSName)

	// The whole chain shares name-carrying properties
	for _, record := range records {
		assert.Equal(t, "A", record.Type)
		assert.Equal(t, int64(1), record.Weight)
	}
}

func TestChainLength(t *testing.T) {
	tests := []struct {
		name         string
		healthChecks [][]string
		want         int
	}{
		{name: "no checks", healthChecks: [][]string{nil, nil}, want: 1},
		{name: "one distinct check", healthChecks: [][]string{{"hc1"}, {"hc1"}}, want: 1},
		{name: "two distinct checks", healthChecks: [][]string{{"hc1"}, {"hc2"}}, want: 2},
		{name: "four distinct on one member", healthChecks: [][]string{{"hc1", "hc2", "hc3", "hc4"}, nil}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for i, ids := range tt.healthChecks {
				s.Add(types.Endpoint{Value: string(rune('a' + i)), HealthCheckIDs: ids})
			}

			records := s.ToRecords("Z123", "svc.example.com", "A", 60)
			assert.Len(t, records, tt.want)
			assert.Equal(t, "svc.example.com", records[len(records)-1].Name)
		})
	}
}

func TestChecksumStability(t *testing.T) {
	entry := types.RecordEntry{
		Type:   "A",
		TTL:    60,
		Values: []string{"1.1.1.1", "2.2.2.2"},
	}

	first := Checksum(entry)
	second := Checksum(entry)
	assert.Equal(t, first, second)
	assert.Regexp(t, regexp.MustCompile(`^-?[0-9a-z]+$`), first)

	// Any data-bearing field change moves the checksum
	changedTTL := entry
	changedTTL.TTL = 61
	assert.NotEqual(t, first, Checksum(changedTTL))

	changedValues := entry
	changedValues.Values = []string{"1.1.1.1", "3.3.3.3"}
	assert.NotEqual(t, first, Checksum(changedValues))

	// Alias entries hash the target, not the values
	aliased := types.RecordEntry{
		Type: "A",
		Alias: &types.AliasTarget{
			DNSName:              "target.example.com",
			HostedZoneID:         "Z123",
			EvaluateTargetHealth: true,
		},
	}
	assert.NotEqual(t, first, Checksum(aliased))
	assert.Equal(t, Checksum(aliased), Checksum(aliased))
}
