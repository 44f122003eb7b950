package sqlite

import (
	"context"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

type fieldUpdate struct {
	field types.Field
	value any
}

// UpdateFields applies a sparse map of field name to raw string value to
// the item with the given ID. Every name is resolved first, then every
// value coerced, then the merged record validated; the first failure
// returns before anything is written. The UPDATE touches only the named
// columns and last_updated. An empty map refreshes last_updated only.
func (b *Backend) UpdateFields(ctx context.Context, id int64, updates map[string]string) (*types.Item, error) {
	unlock, err := b.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	planned, err := planUpdate(updates)
	if err != nil {
		return nil, err
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &types.StorageError{Op: "begin update", Err: err}
	}
	defer tx.Rollback()

	current, err := b.getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	merged := current.Clone()
	for _, u := range planned {
		u.field.Set(&merged, u.value)
	}
	merged.LastUpdated = b.stamp(merged.DateAdded)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	upd := b.sq.Update(itemsTable)
	for _, u := range planned {
		upd = upd.Set(u.field.Name, encodeValue(u.field.Kind, u.value))
	}
	query, args, err := upd.
		Set("last_updated", merged.LastUpdated.String()).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, &types.StorageError{Op: "build update", Err: err}
	}
	b.logStatement("update fields", query, args)

	if err := execOne(ctx, tx, "update item", id, query, args); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, &types.StorageError{Op: "commit update", Err: err}
	}
	return &merged, nil
}

// planUpdate resolves and coerces updates in sorted name order. Unknown
// names are reported before any value is parsed.
func planUpdate(updates map[string]string) ([]fieldUpdate, error) {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)

	planned := make([]fieldUpdate, 0, len(names))
	for _, name := range names {
		f, ok := types.LookupField(name)
		if !ok || !f.Settable {
			return nil, &types.UnknownFieldError{Field: name}
		}
		planned = append(planned, fieldUpdate{field: f})
	}
	for i, name := range names {
		v, err := types.CoerceField(name, updates[name])
		if err != nil {
			return nil, err
		}
		planned[i].value = v
	}
	return planned, nil
}
