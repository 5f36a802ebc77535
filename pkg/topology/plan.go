package topology

import (
	"encoding/json"
	"fmt"

	"github.com/cloudpine/rubbertree/pkg/types"
)

// EncodePlan renders an ordered provisioning plan as JSON for handing to
// an external DNS provisioning client. Entry order is preserved and
// load-bearing: the consumer must apply entries in order.
func EncodePlan(entries []types.RecordEntry) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return data, nil
}

// DecodePlan parses a plan previously produced by EncodePlan.
func DecodePlan(data []byte) ([]types.RecordEntry, error) {
	var entries []types.RecordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return entries, nil
}
