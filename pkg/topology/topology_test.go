package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudpine/rubbertree/pkg/lattice"
	"github.com/cloudpine/rubbertree/pkg/rubbertree"
	"github.com/cloudpine/rubbertree/pkg/types"
)

const sampleTopology = `
dimensions: [AvailabilityZone, SoftwareVersion]
sectors:
  - coordinate: [us-east-1a, v2.1]
    endpoints:
      - value: 192.0.2.10
        health_checks: [hc-10]
      - value: 192.0.2.11
        health_checks: [hc-11]
  - coordinate: [us-east-1b, v2.2]
    endpoints:
      - value: 192.0.2.20
        health_checks: [hc-20]
      - value: 192.0.2.21
`

func TestParseTopology(t *testing.T) {
	l, err := Parse([]byte(sampleTopology))
	require.NoError(t, err)

	assert.Equal(t, []string{"AvailabilityZone", "SoftwareVersion"}, l.DimensionNames())
	assert.Len(t, l.AllEndpoints(), 4)
	assert.Equal(t, map[string]int{"AvailabilityZone": 2, "SoftwareVersion": 2}, l.Dimensionality())

	endpoints, err := l.EndpointsForSector([]string{"us-east-1a", "v2.1"})
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "192.0.2.10", endpoints[0].Value)
	assert.Equal(t, []string{"hc-10"}, endpoints[0].HealthCheckIDs)

	// Endpoints without health checks parse as plain records
	endpoints, err = l.EndpointsForSector([]string{"us-east-1b", "v2.2"})
	require.NoError(t, err)
	assert.False(t, endpoints[1].HealthChecked())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "no dimensions",
			doc:  "sectors: []",
			want: ErrNoDimensions,
		},
		{
			name: "empty endpoint value",
			doc: `
dimensions: [AZ]
sectors:
  - coordinate: [us-east-1a]
    endpoints:
      - value: ""
`,
			want: ErrEmptyValue,
		},
		{
			name: "arity mismatch",
			doc: `
dimensions: [AZ, Version]
sectors:
  - coordinate: [us-east-1a]
    endpoints:
      - value: 192.0.2.10
`,
			want: lattice.ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("dimensions: ["))
	assert.Error(t, err)
}

func TestPlanRoundTrip(t *testing.T) {
	l, err := Parse([]byte(sampleTopology))
	require.NoError(t, err)

	plan, err := rubbertree.Vulcanize("Z123", "svc.example.com", "A", 60, l, 2)
	require.NoError(t, err)

	encoded, err := EncodePlan(plan)
	require.NoError(t, err)

	decoded, err := DecodePlan(encoded)
	require.NoError(t, err)
	assert.Equal(t, plan, decoded)
}

func TestPlanEncodingFieldNames(t *testing.T) {
	entries := []types.RecordEntry{
		{
			Name:          "svc.example.com",
			Type:          "A",
			Weight:        0,
			SetIdentifier: "secondary for svc.example.com",
			Alias: &types.AliasTarget{
				DNSName:              "secondary.svc.example.com",
				HostedZoneID:         "Z123",
				EvaluateTargetHealth: true,
			},
		},
	}

	encoded, err := EncodePlan(entries)
	require.NoError(t, err)

	assert.Contains(t, string(encoded), `"set_identifier"`)
	assert.Contains(t, string(encoded), `"dns_name"`)
	assert.Contains(t, string(encoded), `"zone_id"`)
	assert.Contains(t, string(encoded), `"evaluate_target_health"`)
}
