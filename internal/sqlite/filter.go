package sqlite

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Op is a predicate operator.
type Op string

// Supported operators.
const (
	OpContains Op = "contains" // case-sensitive substring
	OpEq       Op = "="
	OpGte      Op = ">="
	OpLte      Op = "<="
)

// Predicate is one compiled filter criterion. Column and Op come from a
// closed set; Value is always bound as a parameter.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// ToSql implements squirrel.Sqlizer.
func (p Predicate) ToSql() (string, []any, error) {
	switch p.Op {
	case OpContains:
		return "instr(" + p.Column + ", ?) > 0", []any{p.Value}, nil
	case OpEq:
		return squirrel.Eq{p.Column: p.Value}.ToSql()
	case OpGte:
		return squirrel.GtOrEq{p.Column: p.Value}.ToSql()
	case OpLte:
		return squirrel.LtOrEq{p.Column: p.Value}.ToSql()
	default:
		return "", nil, fmt.Errorf("unsupported operator %q", p.Op)
	}
}

// compileFilter turns f into predicates in ItemFilter field order. Only set
// criteria produce predicates, except deleted: an unset Deleted compiles to
// deleted = 0 so that filtering and listing share one deletion policy.
func compileFilter(f types.ItemFilter) []Predicate {
	var preds []Predicate

	preds = contains(preds, "name", f.Name)
	preds = contains(preds, "description", f.Description)
	preds = contains(preds, "creator", f.Creator)
	preds = contains(preds, "provenance", f.Provenance)

	preds = exact(preds, "category", types.KindCategory, f.Category)
	preds = exact(preds, "action", types.KindAction, f.Action)
	preds = exact(preds, "working", types.KindBool, f.Working)
	if f.Deleted == nil {
		preds = append(preds, Predicate{Column: "deleted", Op: OpEq, Value: int64(0)})
	} else {
		preds = exact(preds, "deleted", types.KindBool, f.Deleted)
	}

	preds = between(preds, "date_added", types.KindDate, f.DateAddedMin, f.DateAddedMax)
	preds = between(preds, "last_updated", types.KindDate, f.LastUpdatedMin, f.LastUpdatedMax)
	preds = between(preds, "date_acquired", types.KindDate, f.DateAcquiredMin, f.DateAcquiredMax)
	preds = between(preds, "age_years", types.KindInteger, f.AgeYearsMin, f.AgeYearsMax)
	preds = between(preds, "purchase_price", types.KindFloat, f.PurchasePriceMin, f.PurchasePriceMax)
	preds = between(preds, "estimated_value", types.KindFloat, f.EstimatedValueMin, f.EstimatedValueMax)

	return preds
}

// contains adds a substring predicate. An empty substring matches
// everything and adds nothing.
func contains(preds []Predicate, column string, v *string) []Predicate {
	if v == nil || *v == "" {
		return preds
	}
	return append(preds, Predicate{Column: column, Op: OpContains, Value: *v})
}

func exact[T any](preds []Predicate, column string, kind types.FieldKind, v *T) []Predicate {
	if v == nil {
		return preds
	}
	return append(preds, Predicate{Column: column, Op: OpEq, Value: encodeValue(kind, *v)})
}

func between[T any](preds []Predicate, column string, kind types.FieldKind, lo, hi *T) []Predicate {
	if lo != nil {
		preds = append(preds, Predicate{Column: column, Op: OpGte, Value: encodeValue(kind, *lo)})
	}
	if hi != nil {
		preds = append(preds, Predicate{Column: column, Op: OpLte, Value: encodeValue(kind, *hi)})
	}
	return preds
}

// whereClause joins predicates with AND.
func whereClause(preds []Predicate) squirrel.And {
	and := make(squirrel.And, len(preds))
	for i, p := range preds {
		and[i] = p
	}
	return and
}
