package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func TestNewBackend(t *testing.T) {
	catalog := NewBackend()
	require.NoError(t, catalog.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	defer catalog.Detach()

	item := types.Item{
		Name:        "Hand plane",
		Description: "No. 4 smoothing plane",
		Category:    types.CategoryTool,
	}
	id, err := catalog.Insert(context.Background(), &item)
	require.NoError(t, err)

	got, err := catalog.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Hand plane", got.Name)
	assert.Equal(t, types.CategoryTool, got.Category)
}
