package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func TestUpdateFieldsChangesOnlyNamedFields(t *testing.T) {
	b := setupBackend(t)
	id := mustInsert(t, b, sampleItem())
	before := mustGet(t, b, id)

	updated, err := b.UpdateFields(context.Background(), id, map[string]string{"name": "X"})
	require.NoError(t, err)

	after := mustGet(t, b, id)
	assert.Equal(t, "X", after.Name)
	assert.Equal(t, testToday, after.LastUpdated)
	if diff := cmp.Diff(before, after, cmpopts.IgnoreFields(types.Item{}, "Name", "LastUpdated")); diff != "" {
		t.Errorf("update touched other fields (-before +after):\n%s", diff)
	}
	assert.Empty(t, cmp.Diff(after, *updated), "returned item must match the stored record")
}

func TestUpdateFieldsTypedValues(t *testing.T) {
	b := setupBackend(t)
	id := mustInsert(t, b, sampleItem())

	updated, err := b.UpdateFields(context.Background(), id, map[string]string{
		"category":        "Tool",
		"action":          "Sell",
		"age_years":       "12",
		"date_acquired":   "2001-09-30",
		"estimated_value": "19.99",
		"working":         "false",
		"provenance":      "Flea market",
	})
	require.NoError(t, err)

	got := mustGet(t, b, id)
	assert.Equal(t, types.CategoryTool, got.Category)
	assert.Equal(t, types.ActionSell, got.Action)
	assert.Equal(t, types.Ptr[uint32](12), got.AgeYears)
	assert.Equal(t, types.Ptr(types.NewDate(2001, time.September, 30)), got.DateAcquired)
	assert.Equal(t, types.Ptr(19.99), got.EstimatedValue)
	assert.Equal(t, types.Ptr(false), got.Working)
	assert.Equal(t, types.Ptr("Flea market"), got.Provenance)
	assert.Equal(t, got, *updated)
}

func TestUpdateFieldsClearsOptionalWithEmptyValue(t *testing.T) {
	b := setupBackend(t)
	id := mustInsert(t, b, sampleItem())

	_, err := b.UpdateFields(context.Background(), id, map[string]string{
		"creator":        "",
		"working":        "",
		"purchase_price": "",
		"date_acquired":  "",
	})
	require.NoError(t, err)

	got := mustGet(t, b, id)
	assert.Nil(t, got.Creator)
	assert.Nil(t, got.Working)
	assert.Nil(t, got.PurchasePrice)
	assert.Nil(t, got.DateAcquired)
	assert.NotNil(t, got.Provenance)
}

func TestUpdateFieldsRejectsWithoutWriting(t *testing.T) {
	tests := []struct {
		name    string
		updates map[string]string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "unknown field",
			updates: map[string]string{"bogus": "X"},
			check: func(t *testing.T, err error) {
				var uerr *types.UnknownFieldError
				require.ErrorAs(t, err, &uerr)
				assert.Equal(t, "bogus", uerr.Field)
			},
		},
		{
			name:    "unknown field alongside valid ones",
			updates: map[string]string{"name": "Renamed", "bogus": "X"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, types.ErrUnknownField)
			},
		},
		{
			name:    "unknown field reported before bad value",
			updates: map[string]string{"age_years": "old", "zzz": "X"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, types.ErrUnknownField)
			},
		},
		{
			name:    "id is not settable",
			updates: map[string]string{"id": "7"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, types.ErrUnknownField)
			},
		},
		{
			name:    "last_updated is not settable",
			updates: map[string]string{"last_updated": "2020-01-01"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, types.ErrUnknownField)
			},
		},
		{
			name:    "bad boolean",
			updates: map[string]string{"working": "notabool"},
			check: func(t *testing.T, err error) {
				var cerr *types.CoercionError
				require.ErrorAs(t, err, &cerr)
				assert.Equal(t, "working", cerr.Field)
				assert.ErrorIs(t, err, types.ErrInvalidBool)
			},
		},
		{
			name:    "bad value alongside valid ones",
			updates: map[string]string{"name": "Renamed", "date_added": "2023-02-30"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, types.ErrInvalidDate)
			},
		},
		{
			name:    "first bad value in name order is reported",
			updates: map[string]string{"working": "maybe", "age_years": "-1"},
			check: func(t *testing.T, err error) {
				var cerr *types.CoercionError
				require.ErrorAs(t, err, &cerr)
				assert.Equal(t, "age_years", cerr.Field)
			},
		},
		{
			name:    "merged record fails validation",
			updates: map[string]string{"name": "   ", "purchase_price": "-5"},
			check: func(t *testing.T, err error) {
				var verr *types.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{"Name cannot be empty.", "Purchase price cannot be negative."}, verr.Problems)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			id := mustInsert(t, b, sampleItem())
			before := mustGet(t, b, id)

			updated, err := b.UpdateFields(context.Background(), id, tt.updates)
			assert.Nil(t, updated)
			tt.check(t, err)

			after := mustGet(t, b, id)
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("stored record changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestUpdateFieldsNotFound(t *testing.T) {
	b := setupBackend(t)

	_, err := b.UpdateFields(context.Background(), 404, map[string]string{"name": "X"})
	var nerr *types.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, int64(404), nerr.ID)
}

func TestUpdateFieldsEmptyMapRefreshesLastUpdated(t *testing.T) {
	b := setupBackend(t)
	id := mustInsert(t, b, sampleItem())
	before := mustGet(t, b, id)

	updated, err := b.UpdateFields(context.Background(), id, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, testToday, updated.LastUpdated)

	after := mustGet(t, b, id)
	assert.Empty(t, cmp.Diff(before, after, cmpopts.IgnoreFields(types.Item{}, "LastUpdated")))

	_, err = b.UpdateFields(context.Background(), 404, nil)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdateFieldsRestoresDeletedItem(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()
	id := mustInsert(t, b, sampleItem())
	require.NoError(t, b.SoftDelete(ctx, id))

	_, err := b.UpdateFields(ctx, id, map[string]string{"deleted": "false"})
	require.NoError(t, err)

	items, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
}

func TestPlanUpdateSortsByName(t *testing.T) {
	planned, err := planUpdate(map[string]string{"working": "true", "action": "Keep", "name": "N"})
	require.NoError(t, err)

	var names []string
	for _, u := range planned {
		names = append(names, u.field.Name)
	}
	assert.Equal(t, []string{"action", "name", "working"}, names)
	assert.Equal(t, true, planned[2].value)
}
