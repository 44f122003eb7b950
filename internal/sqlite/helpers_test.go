package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// fixedNow is the clock used by test backends: 2025-03-14.
func fixedNow() time.Time {
	return time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
}

var testToday = types.NewDate(2025, time.March, 14)

// setupBackend creates an attached Backend in a temp dir with a fixed
// clock. The backend is detached on cleanup.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(WithClock(fixedNow))
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

// sampleItem returns a valid item with every optional attribute set.
func sampleItem() types.Item {
	return types.Item{
		Name:           "Mantel clock",
		Description:    "Brass mantel clock with key",
		Category:       types.CategoryAntique,
		Action:         types.ActionKeep,
		DateAdded:      types.NewDate(2024, time.January, 1),
		LastUpdated:    types.NewDate(2024, time.January, 1),
		AgeYears:       types.Ptr[uint32](70),
		DateAcquired:   types.Ptr(types.NewDate(1980, time.May, 15)),
		PurchasePrice:  types.Ptr(45.5),
		EstimatedValue: types.Ptr(120.0),
		Creator:        types.Ptr("Seth Thomas"),
		Working:        types.Ptr(true),
		Provenance:     types.Ptr("Estate sale"),
	}
}

// mustInsert inserts item and returns the assigned ID.
func mustInsert(t *testing.T, b *Backend, item types.Item) int64 {
	t.Helper()
	id, err := b.Insert(context.Background(), &item)
	require.NoError(t, err)
	return id
}

// mustGet returns the stored item with the given ID.
func mustGet(t *testing.T, b *Backend, id int64) types.Item {
	t.Helper()
	item, err := b.Get(context.Background(), id)
	require.NoError(t, err)
	return *item
}
