// This file implements the item operations of the Catalog interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Insert validates item and stores it as a new record. A zero DateAdded
// defaults to today and a zero LastUpdated to DateAdded. On success
// item.ID, item.DateAdded and item.LastUpdated hold the stored values.
func (b *Backend) Insert(ctx context.Context, item *types.Item) (int64, error) {
	if item == nil {
		return 0, types.ErrNilItem
	}

	unlock, err := b.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	rec := item.Clone()
	rec.ID = 0
	if rec.DateAdded.IsZero() {
		rec.DateAdded = b.today()
	}
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = rec.DateAdded
	}
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	cols, vals := encodeItem(&rec)
	query, args, err := b.sq.Insert(itemsTable).Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return 0, &types.StorageError{Op: "build insert", Err: err}
	}
	b.logStatement("insert", query, args)

	res, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &types.StorageError{Op: "insert item", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &types.StorageError{Op: "insert item", Err: err}
	}

	item.ID = id
	item.DateAdded = rec.DateAdded
	item.LastUpdated = rec.LastUpdated
	return id, nil
}

// Get returns the item with the given ID, soft-deleted or not.
func (b *Backend) Get(ctx context.Context, id int64) (*types.Item, error) {
	unlock, err := b.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	item, err := b.getItem(ctx, b.db, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (b *Backend) getItem(ctx context.Context, q querier, id int64) (types.Item, error) {
	query, args, err := b.sq.Select(itemColumns...).From(itemsTable).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return types.Item{}, &types.StorageError{Op: "build select", Err: err}
	}
	b.logStatement("get", query, args)

	item, err := scanItem(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Item{}, &types.NotFoundError{ID: id}
	}
	if err != nil {
		return types.Item{}, &types.StorageError{Op: "get item", Err: err}
	}
	return item, nil
}

// List returns every item that is not soft-deleted, ordered by ID.
func (b *Backend) List(ctx context.Context) ([]types.Item, error) {
	return b.Filter(ctx, types.ItemFilter{})
}

// Filter returns the items matching every set criterion, ordered by ID.
func (b *Backend) Filter(ctx context.Context, filter types.ItemFilter) ([]types.Item, error) {
	unlock, err := b.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	query, args, err := b.sq.Select(itemColumns...).From(itemsTable).
		Where(whereClause(compileFilter(filter))).
		OrderBy("id").ToSql()
	if err != nil {
		return nil, &types.StorageError{Op: "build filter", Err: err}
	}
	b.logStatement("filter", query, args)

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &types.StorageError{Op: "filter items", Err: err}
	}
	defer rows.Close()

	items := make([]types.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, &types.StorageError{Op: "filter items", Err: err}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.StorageError{Op: "filter items", Err: err}
	}
	return items, nil
}

// Replace validates item and overwrites every field of the stored record
// with the same ID. A zero DateAdded keeps the stored value. LastUpdated is
// stamped by the backend.
func (b *Backend) Replace(ctx context.Context, item *types.Item) error {
	if item == nil {
		return types.ErrNilItem
	}

	unlock, err := b.lock()
	if err != nil {
		return err
	}
	defer unlock()

	rec := item.Clone()
	if err := rec.Validate(); err != nil {
		return err
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return &types.StorageError{Op: "begin replace", Err: err}
	}
	defer tx.Rollback()

	current, err := b.getItem(ctx, tx, rec.ID)
	if err != nil {
		return err
	}
	if rec.DateAdded.IsZero() {
		rec.DateAdded = current.DateAdded
	}
	rec.LastUpdated = b.stamp(rec.DateAdded)

	cols, vals := encodeItem(&rec)
	upd := b.sq.Update(itemsTable)
	for i, col := range cols {
		upd = upd.Set(col, vals[i])
	}
	query, args, err := upd.Where(squirrel.Eq{"id": rec.ID}).ToSql()
	if err != nil {
		return &types.StorageError{Op: "build update", Err: err}
	}
	b.logStatement("replace", query, args)

	if err := execOne(ctx, tx, "replace item", rec.ID, query, args); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &types.StorageError{Op: "commit replace", Err: err}
	}
	item.DateAdded = rec.DateAdded
	item.LastUpdated = rec.LastUpdated
	return nil
}

// SoftDelete marks the item deleted and refreshes LastUpdated. The record
// stays retrievable through Get.
func (b *Backend) SoftDelete(ctx context.Context, id int64) error {
	unlock, err := b.lock()
	if err != nil {
		return err
	}
	defer unlock()

	query, args, err := b.sq.Update(itemsTable).
		Set("deleted", int64(1)).
		Set("last_updated", squirrel.Expr("max(?, date_added)", b.today().String())).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return &types.StorageError{Op: "build update", Err: err}
	}
	b.logStatement("soft delete", query, args)

	return execOne(ctx, b.db, "soft delete item", id, query, args)
}

// execOne runs a statement that must affect exactly the row with the given
// ID and maps zero affected rows to *NotFoundError.
func execOne(ctx context.Context, q querier, op string, id int64, query string, args []any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return &types.StorageError{Op: op, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &types.StorageError{Op: op, Err: err}
	}
	if n == 0 {
		return &types.NotFoundError{ID: id}
	}
	return nil
}
