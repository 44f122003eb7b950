package sqlite

import (
	"errors"
	"fmt"
	"math"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var errColumnType = errors.New("unexpected column type")

// encodeValue converts a typed field value into its column value. Enums
// and dates become text, booleans 0/1, and nil stays NULL.
func encodeValue(kind types.FieldKind, v any) any {
	if v == nil {
		return nil
	}
	switch kind {
	case types.KindCategory:
		return v.(types.Category).String()
	case types.KindAction:
		return v.(types.Action).String()
	case types.KindBool:
		if v.(bool) {
			return int64(1)
		}
		return int64(0)
	case types.KindDate:
		return v.(types.Date).String()
	case types.KindInteger:
		return int64(v.(uint32))
	default:
		return v
	}
}

// decodeValue converts a scanned column value into the field's typed value.
// NULL decodes to nil. Unknown enum labels and malformed dates are errors.
func decodeValue(kind types.FieldKind, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch kind {
	case types.KindText:
		return asText(raw)
	case types.KindCategory:
		s, err := asText(raw)
		if err != nil {
			return nil, err
		}
		return types.ParseCategory(s)
	case types.KindAction:
		s, err := asText(raw)
		if err != nil {
			return nil, err
		}
		return types.ParseAction(s)
	case types.KindDate:
		s, err := asText(raw)
		if err != nil {
			return nil, err
		}
		return types.ParseDate(s)
	case types.KindBool:
		n, ok := raw.(int64)
		if !ok {
			return nil, fmt.Errorf("%w %T for bool", errColumnType, raw)
		}
		return n != 0, nil
	case types.KindInteger:
		n, ok := raw.(int64)
		if !ok {
			return nil, fmt.Errorf("%w %T for integer", errColumnType, raw)
		}
		if n < 0 || n > math.MaxUint32 {
			return nil, fmt.Errorf("integer %d out of range", n)
		}
		return uint32(n), nil
	case types.KindFloat:
		switch n := raw.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		}
		return nil, fmt.Errorf("%w %T for float", errColumnType, raw)
	default:
		return nil, fmt.Errorf("unknown field kind %v", kind)
	}
}

func asText(raw any) (string, error) {
	switch s := raw.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return "", fmt.Errorf("%w %T for text", errColumnType, raw)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one row selected with itemColumns.
func scanItem(row rowScanner) (types.Item, error) {
	raw := make([]any, len(itemColumns))
	dest := make([]any, len(raw))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := row.Scan(dest...); err != nil {
		return types.Item{}, err
	}

	var item types.Item
	id, ok := raw[0].(int64)
	if !ok {
		return types.Item{}, fmt.Errorf("column id: %w %T", errColumnType, raw[0])
	}
	item.ID = id

	for i, f := range types.Fields() {
		v, err := decodeValue(f.Kind, raw[i+1])
		if err != nil {
			return types.Item{}, fmt.Errorf("item %d column %s: %w", id, f.Name, err)
		}
		if v == nil && !f.Nullable {
			return types.Item{}, fmt.Errorf("item %d column %s: unexpected NULL", id, f.Name)
		}
		f.Set(&item, v)
	}
	return item, nil
}

// encodeItem returns the field-table columns of item and their values, in
// field order. The id column is not included.
func encodeItem(item *types.Item) ([]string, []any) {
	fields := types.Fields()
	cols := make([]string, len(fields))
	vals := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
		vals[i] = encodeValue(f.Kind, f.Get(item))
	}
	return cols, vals
}
