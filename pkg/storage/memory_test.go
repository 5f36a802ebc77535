package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudpine/rubbertree/pkg/types"
)

func TestMemoryFragmentLedger(t *testing.T) {
	store := NewMemoryStore()

	used, err := store.IsFragmentUsed("A/B")
	require.NoError(t, err)
	assert.False(t, used)

	require.NoError(t, store.SaveFragment("A/B"))

	used, err = store.IsFragmentUsed("A/B")
	require.NoError(t, err)
	assert.True(t, used)
	assert.Equal(t, 1, store.FragmentCount())
}

func TestMemoryAssignments(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.CreateAssignment(&types.ShardAssignment{
		ID:         "assignment-1",
		Identifier: "customer-1",
	}))

	got, err := store.GetAssignment("assignment-1")
	require.NoError(t, err)
	assert.Equal(t, "customer-1", got.Identifier)

	_, err = store.GetAssignment("missing")
	assert.Error(t, err)

	require.NoError(t, store.DeleteAssignment("assignment-1"))
	all, err := store.ListAssignments()
	require.NoError(t, err)
	assert.Empty(t, all)
}
